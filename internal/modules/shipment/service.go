package shipment

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/obelyakova/warehouse-api/internal/apierr"
)

// Service defines shipment business logic.
type Service interface {
	// CreateShipment claims a product. The eligible set is exactly the
	// products without an existing shipment; anything else fails
	// validation on the product field.
	CreateShipment(ctx context.Context, req CreateRequest) (*Shipment, error)

	GetShipment(ctx context.Context, id string) (*Shipment, error)
	ListShipments(ctx context.Context) ([]*Shipment, error)
}

// CreateRequest is the claim payload.
type CreateRequest struct {
	Product string `json:"product"`
}

type service struct {
	repo Repository
}

// NewService creates a new shipment service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateShipment(ctx context.Context, req CreateRequest) (*Shipment, error) {
	if req.Product == "" {
		return nil, apierr.Validation("product", "this field is required")
	}
	if _, err := uuid.Parse(req.Product); err != nil {
		return nil, notAValidChoice()
	}

	p, err := s.repo.AvailableProduct(ctx, req.Product)
	if err != nil {
		var nf *apierr.NotFoundError
		if errors.As(err, &nf) {
			return nil, notAValidChoice()
		}
		return nil, err
	}

	sh := &Shipment{ID: uuid.New(), Product: p}
	if err := s.repo.CreateShipment(ctx, sh); err != nil {
		return nil, err
	}
	return sh, nil
}

func (s *service) GetShipment(ctx context.Context, id string) (*Shipment, error) {
	return s.repo.GetShipmentByID(ctx, id)
}

func (s *service) ListShipments(ctx context.Context) ([]*Shipment, error) {
	return s.repo.ListShipments(ctx)
}

func notAValidChoice() error {
	return apierr.Validation("product", "not a valid choice")
}
