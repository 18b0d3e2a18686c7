package shipment

import (
	"time"

	"github.com/google/uuid"

	"github.com/obelyakova/warehouse-api/internal/modules/product"
)

// Shipment is an append-only claim on a product. Its existence marks the
// product as shipped; a product can carry at most one shipment.
//
// On the wire the product reference is expanded into the full product
// projection, not returned as a bare id.
type Shipment struct {
	ID        uuid.UUID        `json:"id"`
	Product   *product.Product `json:"product"`
	CreatedAt time.Time        `json:"created_at"`
}
