package product

import (
	"time"

	"github.com/google/uuid"
)

// Product is a stock record held by exactly one warehouse. A product with a
// shipment against it is considered claimed and drops out of listings.
type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	WarehouseID uuid.UUID `json:"warehouse"`
	Quantity    int       `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
