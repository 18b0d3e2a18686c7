package shipment_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obelyakova/warehouse-api/internal/apierr"
	"github.com/obelyakova/warehouse-api/internal/modules/product"
	"github.com/obelyakova/warehouse-api/internal/modules/shipment"
)

// fakeRepo mirrors the storage contract: claims are keyed by product id and
// a second claim for the same product fails the way the unique constraint
// does.
type fakeRepo struct {
	products  map[uuid.UUID]*product.Product
	shipments []*shipment.Shipment
	claimed   map[uuid.UUID]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		products: map[uuid.UUID]*product.Product{},
		claimed:  map[uuid.UUID]bool{},
	}
}

func (f *fakeRepo) stock(name string) *product.Product {
	p := &product.Product{ID: uuid.New(), Name: name, WarehouseID: uuid.New(), Quantity: 5}
	f.products[p.ID] = p
	return p
}

func (f *fakeRepo) CreateShipment(_ context.Context, s *shipment.Shipment) error {
	if f.claimed[s.Product.ID] {
		return apierr.Validation("product", "not a valid choice")
	}
	f.claimed[s.Product.ID] = true
	f.shipments = append(f.shipments, s)
	return nil
}

func (f *fakeRepo) GetShipmentByID(_ context.Context, id string) (*shipment.Shipment, error) {
	for _, s := range f.shipments {
		if s.ID.String() == id {
			return s, nil
		}
	}
	return nil, apierr.NotFound("shipment")
}

func (f *fakeRepo) ListShipments(_ context.Context) ([]*shipment.Shipment, error) {
	return f.shipments, nil
}

func (f *fakeRepo) AvailableProduct(_ context.Context, productID string) (*product.Product, error) {
	uid, err := uuid.Parse(productID)
	if err != nil {
		return nil, apierr.NotFound("product")
	}
	p, ok := f.products[uid]
	if !ok || f.claimed[uid] {
		return nil, apierr.NotFound("product")
	}
	return p, nil
}

func productFieldError(t *testing.T, err error) {
	t.Helper()
	var verr *apierr.ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
	assert.Equal(t, []string{"not a valid choice"}, verr.Fields["product"])
}

func TestCreateShipmentExpandsProduct(t *testing.T) {
	repo := newFakeRepo()
	p := repo.stock("Widget")
	svc := shipment.NewService(repo)

	s, err := svc.CreateShipment(context.Background(), shipment.CreateRequest{Product: p.ID.String()})
	require.NoError(t, err)
	require.NotNil(t, s.Product)
	assert.Equal(t, "Widget", s.Product.Name)
	assert.Equal(t, 5, s.Product.Quantity)
}

func TestCreateShipmentClaimsOnce(t *testing.T) {
	repo := newFakeRepo()
	p := repo.stock("Widget")
	svc := shipment.NewService(repo)

	_, err := svc.CreateShipment(context.Background(), shipment.CreateRequest{Product: p.ID.String()})
	require.NoError(t, err)

	_, err = svc.CreateShipment(context.Background(), shipment.CreateRequest{Product: p.ID.String()})
	productFieldError(t, err)
	assert.Len(t, repo.shipments, 1)
}

func TestCreateShipmentUnknownProduct(t *testing.T) {
	svc := shipment.NewService(newFakeRepo())

	_, err := svc.CreateShipment(context.Background(), shipment.CreateRequest{Product: uuid.New().String()})
	productFieldError(t, err)
}

func TestCreateShipmentMalformedProduct(t *testing.T) {
	svc := shipment.NewService(newFakeRepo())

	_, err := svc.CreateShipment(context.Background(), shipment.CreateRequest{Product: "banana"})
	productFieldError(t, err)
}

func TestCreateShipmentMissingProduct(t *testing.T) {
	svc := shipment.NewService(newFakeRepo())

	_, err := svc.CreateShipment(context.Background(), shipment.CreateRequest{})
	var verr *apierr.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "product")
}

// A claim that loses the race passes the availability check but fails the
// insert; the error must be the same 400 on the product field.
func TestCreateShipmentLostRace(t *testing.T) {
	repo := newFakeRepo()
	p := repo.stock("Widget")
	svc := shipment.NewService(repo)

	// Simulate the rival committing between check and insert.
	repo.claimed[p.ID] = false
	available, err := repo.AvailableProduct(context.Background(), p.ID.String())
	require.NoError(t, err)
	repo.claimed[p.ID] = true

	err = repo.CreateShipment(context.Background(), &shipment.Shipment{ID: uuid.New(), Product: available})
	productFieldError(t, err)

	_, err = svc.CreateShipment(context.Background(), shipment.CreateRequest{Product: p.ID.String()})
	productFieldError(t, err)
}

func TestGetShipment(t *testing.T) {
	repo := newFakeRepo()
	p := repo.stock("Widget")
	svc := shipment.NewService(repo)

	created, err := svc.CreateShipment(context.Background(), shipment.CreateRequest{Product: p.ID.String()})
	require.NoError(t, err)

	got, err := svc.GetShipment(context.Background(), created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, p.ID, got.Product.ID)
}

func TestListShipments(t *testing.T) {
	repo := newFakeRepo()
	first := repo.stock("Widget")
	second := repo.stock("Gadget")
	svc := shipment.NewService(repo)

	_, err := svc.CreateShipment(context.Background(), shipment.CreateRequest{Product: first.ID.String()})
	require.NoError(t, err)
	_, err = svc.CreateShipment(context.Background(), shipment.CreateRequest{Product: second.ID.String()})
	require.NoError(t, err)

	shipments, err := svc.ListShipments(context.Background())
	require.NoError(t, err)
	assert.Len(t, shipments, 2)
}
