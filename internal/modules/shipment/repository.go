package shipment

import (
	"context"

	"github.com/obelyakova/warehouse-api/internal/modules/product"
)

// Repository defines shipment data storage.
type Repository interface {
	// CreateShipment inserts the claim. The shipments table carries a
	// unique constraint on the product reference; a violation must come
	// back as the same ValidationError the eligibility check produces, so
	// a lost race is indistinguishable from picking a shipped product.
	CreateShipment(ctx context.Context, s *Shipment) error

	GetShipmentByID(ctx context.Context, id string) (*Shipment, error)
	ListShipments(ctx context.Context) ([]*Shipment, error)

	// AvailableProduct returns the product if it exists and has no
	// shipment against it; otherwise a NotFoundError.
	AvailableProduct(ctx context.Context, productID string) (*product.Product, error)
}
