package shipment

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/obelyakova/warehouse-api/internal/apierr"
	"github.com/obelyakova/warehouse-api/internal/modules/product"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL shipment repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) CreateShipment(ctx context.Context, s *Shipment) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO shipments (id, product_id) VALUES ($1, $2)`, s.ID, s.Product.ID)

	// Two concurrent claims can both pass the availability check; the
	// unique index on product_id decides the winner. 23505 is
	// unique_violation, 23503 foreign_key_violation (product deleted in
	// between).
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && (pqErr.Code == "23505" || pqErr.Code == "23503") {
		return apierr.Validation("product", "not a valid choice")
	}
	return err
}

const selectShipment = `
	SELECT s.id, s.created_at,
	       p.id, p.name, p.warehouse_id, p.quantity, p.created_at, p.updated_at
	FROM shipments s
	JOIN products p ON p.id = s.product_id`

func (r *postgresRepo) GetShipmentByID(ctx context.Context, id string) (*Shipment, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apierr.NotFound("shipment")
	}
	s, err := scanShipment(r.db.QueryRowContext(ctx, selectShipment+` WHERE s.id = $1`, uid))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apierr.NotFound("shipment")
	}
	return s, err
}

func (r *postgresRepo) ListShipments(ctx context.Context) ([]*Shipment, error) {
	rows, err := r.db.QueryContext(ctx, selectShipment+` ORDER BY s.created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shipments []*Shipment
	for rows.Next() {
		s, err := scanShipment(rows)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, s)
	}
	return shipments, rows.Err()
}

func (r *postgresRepo) AvailableProduct(ctx context.Context, productID string) (*product.Product, error) {
	p := &product.Product{}
	err := r.db.QueryRowContext(ctx, `
		SELECT p.id, p.name, p.warehouse_id, p.quantity, p.created_at, p.updated_at
		FROM products p
		WHERE p.id = $1
		  AND NOT EXISTS (SELECT 1 FROM shipments s WHERE s.product_id = p.id)`,
		productID).
		Scan(&p.ID, &p.Name, &p.WarehouseID, &p.Quantity, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apierr.NotFound("product")
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanShipment(row rowScanner) (*Shipment, error) {
	s := &Shipment{Product: &product.Product{}}
	err := row.Scan(
		&s.ID, &s.CreatedAt,
		&s.Product.ID, &s.Product.Name, &s.Product.WarehouseID,
		&s.Product.Quantity, &s.Product.CreatedAt, &s.Product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}
