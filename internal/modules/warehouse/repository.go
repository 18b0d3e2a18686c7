package warehouse

import (
	"context"

	"github.com/obelyakova/warehouse-api/internal/modules/product"
)

// Repository defines warehouse data storage.
type Repository interface {
	CreateWarehouse(ctx context.Context, wh *Warehouse) error
	GetWarehouseByID(ctx context.Context, id string) (*Warehouse, error)
	ListWarehouses(ctx context.Context) ([]*Warehouse, error)
	UpdateWarehouse(ctx context.Context, wh *Warehouse) error

	// DeleteWarehouse removes the warehouse, its products, and their
	// shipments in one transaction.
	DeleteWarehouse(ctx context.Context, id string) error

	// ListAvailableProducts returns the warehouse's products that have no
	// shipment against them.
	ListAvailableProducts(ctx context.Context, warehouseID string) ([]*product.Product, error)
}
