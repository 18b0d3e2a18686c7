package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/obelyakova/warehouse-api/internal/apierr"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL product repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) CreateProduct(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (id, name, warehouse_id, quantity)
		VALUES ($1, $2, $3, $4)`,
		p.ID, p.Name, p.WarehouseID, p.Quantity)
	return err
}

func (r *postgresRepo) GetProductByID(ctx context.Context, id string) (*Product, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apierr.NotFound("product")
	}
	p := &Product{}
	err = r.db.QueryRowContext(ctx, `
		SELECT id, name, warehouse_id, quantity, created_at, updated_at
		FROM products WHERE id = $1`, uid).
		Scan(&p.ID, &p.Name, &p.WarehouseID, &p.Quantity, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apierr.NotFound("product")
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListUnshipped excludes any product that already has a shipment. This is
// the listing the availability invariant rests on.
func (r *postgresRepo) ListUnshipped(ctx context.Context) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.name, p.warehouse_id, p.quantity, p.created_at, p.updated_at
		FROM products p
		WHERE NOT EXISTS (SELECT 1 FROM shipments s WHERE s.product_id = p.id)
		ORDER BY p.created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p := &Product{}
		if err := rows.Scan(&p.ID, &p.Name, &p.WarehouseID, &p.Quantity, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *postgresRepo) UpdateProduct(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name = $2, warehouse_id = $3, quantity = $4, updated_at = now()
		WHERE id = $1`,
		p.ID, p.Name, p.WarehouseID, p.Quantity)
	return err
}

// DeleteProduct removes the product's shipment first, then the product, in
// a single transaction. The ownership rule lives here rather than in an
// ON DELETE CASCADE clause.
func (r *postgresRepo) DeleteProduct(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return apierr.NotFound("product")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM shipments WHERE product_id = $1`, uid); err != nil {
		return fmt.Errorf("delete shipment: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, uid)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apierr.NotFound("product")
	}

	return tx.Commit()
}

func (r *postgresRepo) WarehouseExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM warehouses WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}
