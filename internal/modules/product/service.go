package product

import (
	"context"

	"github.com/google/uuid"

	"github.com/obelyakova/warehouse-api/internal/apierr"
)

// Service defines product business logic.
type Service interface {
	// CreateProduct stocks a product in a warehouse. Quantity must be >= 1.
	CreateProduct(ctx context.Context, req CreateRequest) (*Product, error)

	// GetProduct returns a product by id regardless of shipment state.
	GetProduct(ctx context.Context, id string) (*Product, error)

	// ListProducts returns products that have not been shipped.
	ListProducts(ctx context.Context) ([]*Product, error)

	// UpdateProduct applies a partial update; quantity is re-validated on
	// every write.
	UpdateProduct(ctx context.Context, id string, req UpdateRequest) (*Product, error)

	// DeleteProduct removes a product and cascades to its shipment.
	DeleteProduct(ctx context.Context, id string) error
}

// CreateRequest holds data for stocking a product.
type CreateRequest struct {
	Name      string `json:"name"`
	Warehouse string `json:"warehouse"`
	Quantity  int    `json:"quantity"`
}

// UpdateRequest carries a partial update; omitted fields are untouched.
type UpdateRequest struct {
	Name      *string `json:"name"`
	Warehouse *string `json:"warehouse"`
	Quantity  *int    `json:"quantity"`
}

type service struct {
	repo Repository
}

// NewService creates a new product service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateProduct(ctx context.Context, req CreateRequest) (*Product, error) {
	verr := &apierr.ValidationError{}

	if req.Name == "" {
		verr.Add("name", "this field is required")
	}
	if req.Quantity < 1 {
		verr.Add("quantity", "ensure this value is greater than or equal to 1")
	}

	warehouseID, err := s.resolveWarehouse(ctx, req.Warehouse, verr)
	if err != nil {
		return nil, err
	}

	if !verr.Empty() {
		return nil, verr
	}

	p := &Product{
		ID:          uuid.New(),
		Name:        req.Name,
		WarehouseID: warehouseID,
		Quantity:    req.Quantity,
	}
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetProductByID(ctx, id)
}

func (s *service) ListProducts(ctx context.Context) ([]*Product, error) {
	return s.repo.ListUnshipped(ctx)
}

func (s *service) UpdateProduct(ctx context.Context, id string, req UpdateRequest) (*Product, error) {
	p, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	verr := &apierr.ValidationError{}

	if req.Name != nil && *req.Name == "" {
		verr.Add("name", "this field may not be blank")
	}
	if req.Quantity != nil && *req.Quantity < 1 {
		verr.Add("quantity", "ensure this value is greater than or equal to 1")
	}

	var warehouseID uuid.UUID
	if req.Warehouse != nil {
		warehouseID, err = s.resolveWarehouse(ctx, *req.Warehouse, verr)
		if err != nil {
			return nil, err
		}
	}

	if !verr.Empty() {
		return nil, verr
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Warehouse != nil {
		p.WarehouseID = warehouseID
	}
	if req.Quantity != nil {
		p.Quantity = *req.Quantity
	}

	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.DeleteProduct(ctx, id)
}

// resolveWarehouse validates the warehouse reference, recording a field
// error on verr when it does not resolve.
func (s *service) resolveWarehouse(ctx context.Context, raw string, verr *apierr.ValidationError) (uuid.UUID, error) {
	if raw == "" {
		verr.Add("warehouse", "this field is required")
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		verr.Add("warehouse", "object does not exist")
		return uuid.Nil, nil
	}
	exists, err := s.repo.WarehouseExists(ctx, id.String())
	if err != nil {
		return uuid.Nil, err
	}
	if !exists {
		verr.Add("warehouse", "object does not exist")
	}
	return id, nil
}
