package warehouse

import (
	"time"

	"github.com/google/uuid"
)

// Warehouse is a named container of products.
type Warehouse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
