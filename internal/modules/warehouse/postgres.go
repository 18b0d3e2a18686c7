package warehouse

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/obelyakova/warehouse-api/internal/apierr"
	"github.com/obelyakova/warehouse-api/internal/modules/product"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL warehouse repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) CreateWarehouse(ctx context.Context, wh *Warehouse) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO warehouses (id, name) VALUES ($1, $2)`, wh.ID, wh.Name)
	return err
}

func (r *postgresRepo) GetWarehouseByID(ctx context.Context, id string) (*Warehouse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apierr.NotFound("warehouse")
	}
	wh := &Warehouse{}
	err = r.db.QueryRowContext(ctx, `
		SELECT id, name, created_at, updated_at
		FROM warehouses WHERE id = $1`, uid).
		Scan(&wh.ID, &wh.Name, &wh.CreatedAt, &wh.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apierr.NotFound("warehouse")
	}
	if err != nil {
		return nil, err
	}
	return wh, nil
}

func (r *postgresRepo) ListWarehouses(ctx context.Context) ([]*Warehouse, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, created_at, updated_at
		FROM warehouses ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var warehouses []*Warehouse
	for rows.Next() {
		wh := &Warehouse{}
		if err := rows.Scan(&wh.ID, &wh.Name, &wh.CreatedAt, &wh.UpdatedAt); err != nil {
			return nil, err
		}
		warehouses = append(warehouses, wh)
	}
	return warehouses, rows.Err()
}

func (r *postgresRepo) UpdateWarehouse(ctx context.Context, wh *Warehouse) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE warehouses SET name = $2, updated_at = now() WHERE id = $1`,
		wh.ID, wh.Name)
	return err
}

// DeleteWarehouse removes descendants bottom-up inside one transaction:
// shipments of the warehouse's products, then the products, then the
// warehouse itself.
func (r *postgresRepo) DeleteWarehouse(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return apierr.NotFound("warehouse")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		DELETE FROM shipments
		WHERE product_id IN (SELECT id FROM products WHERE warehouse_id = $1)`, uid)
	if err != nil {
		return fmt.Errorf("delete shipments: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM products WHERE warehouse_id = $1`, uid); err != nil {
		return fmt.Errorf("delete products: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM warehouses WHERE id = $1`, uid)
	if err != nil {
		return fmt.Errorf("delete warehouse: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apierr.NotFound("warehouse")
	}

	return tx.Commit()
}

func (r *postgresRepo) ListAvailableProducts(ctx context.Context, warehouseID string) ([]*product.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.name, p.warehouse_id, p.quantity, p.created_at, p.updated_at
		FROM products p
		WHERE p.warehouse_id = $1
		  AND NOT EXISTS (SELECT 1 FROM shipments s WHERE s.product_id = p.id)
		ORDER BY p.created_at`, warehouseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*product.Product
	for rows.Next() {
		p := &product.Product{}
		if err := rows.Scan(&p.ID, &p.Name, &p.WarehouseID, &p.Quantity, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
