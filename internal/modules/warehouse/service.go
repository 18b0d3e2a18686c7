package warehouse

import (
	"context"

	"github.com/google/uuid"

	"github.com/obelyakova/warehouse-api/internal/apierr"
	"github.com/obelyakova/warehouse-api/internal/modules/product"
)

// Service defines warehouse business logic.
type Service interface {
	CreateWarehouse(ctx context.Context, name string) (*Warehouse, error)
	GetWarehouse(ctx context.Context, id string) (*Warehouse, error)
	ListWarehouses(ctx context.Context) ([]*Warehouse, error)
	UpdateWarehouse(ctx context.Context, id, name string) (*Warehouse, error)

	// DeleteWarehouse removes the warehouse and cascades to its products
	// and their shipments.
	DeleteWarehouse(ctx context.Context, id string) error

	// ListAvailableProducts returns the warehouse's unshipped products.
	ListAvailableProducts(ctx context.Context, id string) ([]*product.Product, error)
}

type service struct {
	repo Repository
}

// NewService creates a new warehouse service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateWarehouse(ctx context.Context, name string) (*Warehouse, error) {
	if name == "" {
		return nil, apierr.Validation("name", "this field is required")
	}
	wh := &Warehouse{ID: uuid.New(), Name: name}
	if err := s.repo.CreateWarehouse(ctx, wh); err != nil {
		return nil, err
	}
	return wh, nil
}

func (s *service) GetWarehouse(ctx context.Context, id string) (*Warehouse, error) {
	return s.repo.GetWarehouseByID(ctx, id)
}

func (s *service) ListWarehouses(ctx context.Context) ([]*Warehouse, error) {
	return s.repo.ListWarehouses(ctx)
}

func (s *service) UpdateWarehouse(ctx context.Context, id, name string) (*Warehouse, error) {
	wh, err := s.repo.GetWarehouseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, apierr.Validation("name", "this field may not be blank")
	}
	wh.Name = name
	if err := s.repo.UpdateWarehouse(ctx, wh); err != nil {
		return nil, err
	}
	return wh, nil
}

func (s *service) DeleteWarehouse(ctx context.Context, id string) error {
	return s.repo.DeleteWarehouse(ctx, id)
}

func (s *service) ListAvailableProducts(ctx context.Context, id string) ([]*product.Product, error) {
	// 404 on an unknown warehouse rather than an empty list.
	if _, err := s.repo.GetWarehouseByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.ListAvailableProducts(ctx, id)
}
