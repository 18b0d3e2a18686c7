package product_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obelyakova/warehouse-api/internal/apierr"
	"github.com/obelyakova/warehouse-api/internal/modules/product"
)

type fakeRepo struct {
	warehouses map[uuid.UUID]bool
	products   []*product.Product
	shipped    map[uuid.UUID]bool
}

func newFakeRepo(warehouseIDs ...uuid.UUID) *fakeRepo {
	f := &fakeRepo{
		warehouses: map[uuid.UUID]bool{},
		shipped:    map[uuid.UUID]bool{},
	}
	for _, id := range warehouseIDs {
		f.warehouses[id] = true
	}
	return f
}

func (f *fakeRepo) CreateProduct(_ context.Context, p *product.Product) error {
	f.products = append(f.products, p)
	return nil
}

func (f *fakeRepo) GetProductByID(_ context.Context, id string) (*product.Product, error) {
	for _, p := range f.products {
		if p.ID.String() == id {
			return p, nil
		}
	}
	return nil, apierr.NotFound("product")
}

func (f *fakeRepo) ListUnshipped(_ context.Context) ([]*product.Product, error) {
	var out []*product.Product
	for _, p := range f.products {
		if !f.shipped[p.ID] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdateProduct(_ context.Context, p *product.Product) error {
	for i, existing := range f.products {
		if existing.ID == p.ID {
			f.products[i] = p
			return nil
		}
	}
	return apierr.NotFound("product")
}

func (f *fakeRepo) DeleteProduct(_ context.Context, id string) error {
	for i, p := range f.products {
		if p.ID.String() == id {
			delete(f.shipped, p.ID)
			f.products = append(f.products[:i], f.products[i+1:]...)
			return nil
		}
	}
	return apierr.NotFound("product")
}

func (f *fakeRepo) WarehouseExists(_ context.Context, id string) (bool, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return false, nil
	}
	return f.warehouses[uid], nil
}

func fieldErrors(t *testing.T, err error) map[string][]string {
	t.Helper()
	var verr *apierr.ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
	return verr.Fields
}

func TestCreateProduct(t *testing.T) {
	warehouseID := uuid.New()
	svc := product.NewService(newFakeRepo(warehouseID))

	p, err := svc.CreateProduct(context.Background(), product.CreateRequest{
		Name:      "Widget",
		Warehouse: warehouseID.String(),
		Quantity:  5,
	})
	require.NoError(t, err)
	assert.Equal(t, "Widget", p.Name)
	assert.Equal(t, warehouseID, p.WarehouseID)
	assert.Equal(t, 5, p.Quantity)
}

func TestCreateProductZeroQuantity(t *testing.T) {
	warehouseID := uuid.New()
	svc := product.NewService(newFakeRepo(warehouseID))

	_, err := svc.CreateProduct(context.Background(), product.CreateRequest{
		Name:      "Widget",
		Warehouse: warehouseID.String(),
		Quantity:  0,
	})
	assert.Contains(t, fieldErrors(t, err), "quantity")
}

func TestCreateProductUnknownWarehouse(t *testing.T) {
	svc := product.NewService(newFakeRepo())

	_, err := svc.CreateProduct(context.Background(), product.CreateRequest{
		Name:      "Widget",
		Warehouse: uuid.New().String(),
		Quantity:  1,
	})
	assert.Contains(t, fieldErrors(t, err), "warehouse")
}

func TestCreateProductMalformedWarehouse(t *testing.T) {
	svc := product.NewService(newFakeRepo())

	_, err := svc.CreateProduct(context.Background(), product.CreateRequest{
		Name:      "Widget",
		Warehouse: "not-a-uuid",
		Quantity:  1,
	})
	assert.Contains(t, fieldErrors(t, err), "warehouse")
}

func TestListHidesShippedProducts(t *testing.T) {
	warehouseID := uuid.New()
	repo := newFakeRepo(warehouseID)
	svc := product.NewService(repo)

	kept, err := svc.CreateProduct(context.Background(), product.CreateRequest{
		Name: "Widget", Warehouse: warehouseID.String(), Quantity: 5,
	})
	require.NoError(t, err)
	claimed, err := svc.CreateProduct(context.Background(), product.CreateRequest{
		Name: "Gadget", Warehouse: warehouseID.String(), Quantity: 3,
	})
	require.NoError(t, err)

	repo.shipped[claimed.ID] = true

	listed, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, kept.ID, listed[0].ID)

	// Direct lookup still works for the shipped product.
	got, err := svc.GetProduct(context.Background(), claimed.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Gadget", got.Name)
}

func TestUpdateProductPartial(t *testing.T) {
	warehouseID := uuid.New()
	svc := product.NewService(newFakeRepo(warehouseID))

	p, err := svc.CreateProduct(context.Background(), product.CreateRequest{
		Name: "Widget", Warehouse: warehouseID.String(), Quantity: 5,
	})
	require.NoError(t, err)

	qty := 9
	updated, err := svc.UpdateProduct(context.Background(), p.ID.String(), product.UpdateRequest{Quantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, 9, updated.Quantity)
	assert.Equal(t, "Widget", updated.Name)
}

func TestUpdateProductZeroQuantityRejected(t *testing.T) {
	warehouseID := uuid.New()
	svc := product.NewService(newFakeRepo(warehouseID))

	p, err := svc.CreateProduct(context.Background(), product.CreateRequest{
		Name: "Widget", Warehouse: warehouseID.String(), Quantity: 5,
	})
	require.NoError(t, err)

	qty := 0
	_, err = svc.UpdateProduct(context.Background(), p.ID.String(), product.UpdateRequest{Quantity: &qty})
	assert.Contains(t, fieldErrors(t, err), "quantity")

	got, err := svc.GetProduct(context.Background(), p.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 5, got.Quantity)
}

func TestDeleteUnknownProduct(t *testing.T) {
	svc := product.NewService(newFakeRepo())

	err := svc.DeleteProduct(context.Background(), uuid.New().String())
	var nf *apierr.NotFoundError
	assert.True(t, errors.As(err, &nf))
}
