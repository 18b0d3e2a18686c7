package product

import "context"

// Repository defines product data storage.
type Repository interface {
	CreateProduct(ctx context.Context, p *Product) error
	GetProductByID(ctx context.Context, id string) (*Product, error)

	// ListUnshipped returns products that have no shipment against them.
	ListUnshipped(ctx context.Context) ([]*Product, error)

	UpdateProduct(ctx context.Context, p *Product) error

	// DeleteProduct removes the product and its shipment, if any, in one
	// transaction.
	DeleteProduct(ctx context.Context, id string) error

	WarehouseExists(ctx context.Context, id string) (bool, error)
}
