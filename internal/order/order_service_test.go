package order

import (
	"context"
	"testing"
	"time"

	"go-fieldforce/internal/messaging/kafka"
	ordererrors "go-fieldforce/internal/order/errors"
	"go-fieldforce/internal/product"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeTxRunner struct{}

func (f *fakeTxRunner) RunInTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type fakeOrderRepo struct {
	orders       []Order
	items        []Item
	findByIDFn   func(ctx context.Context, companyID, id string) (*Order, error)
	updateColsFn func(ctx context.Context, companyID, id string, cols map[string]interface{}) (int64, error)
}

func (f *fakeOrderRepo) WithTx(tx *gorm.DB) Repository { return f }
func (f *fakeOrderRepo) Create(ctx context.Context, o *Order) error {
	f.orders = append(f.orders, *o)
	return nil
}
func (f *fakeOrderRepo) CreateItems(ctx context.Context, items []Item) error {
	f.items = append(f.items, items...)
	return nil
}
func (f *fakeOrderRepo) FindAllByCompany(ctx context.Context, companyID string) ([]Order, error) {
	return f.orders, nil
}
func (f *fakeOrderRepo) FindAllByRep(ctx context.Context, companyID, companyUserID string) ([]Order, error) {
	var out []Order
	for _, o := range f.orders {
		if o.CompanyUserID.String() == companyUserID {
			out = append(out, o)
		}
	}
	return out, nil
}
func (f *fakeOrderRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Order, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, companyID, id)
	}
	for i := range f.orders {
		if f.orders[i].ID.String() == id {
			return &f.orders[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeOrderRepo) UpdateColumns(ctx context.Context, companyID, id string, cols map[string]interface{}) (int64, error) {
	if f.updateColsFn != nil {
		return f.updateColsFn(ctx, companyID, id, cols)
	}
	return 1, nil
}

type fakeProductRepo struct {
	products map[string]product.Product
	prices   map[string]product.Price
}

func (f *fakeProductRepo) WithTx(tx *gorm.DB) product.Repository { return f }
func (f *fakeProductRepo) Create(ctx context.Context, p *product.Product) error {
	return nil
}
func (f *fakeProductRepo) FindAllByCompany(ctx context.Context, companyID string) ([]product.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*product.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}
func (f *fakeProductRepo) UpdateColumns(ctx context.Context, companyID, id string, cols map[string]interface{}) (int64, error) {
	return 0, nil
}
func (f *fakeProductRepo) Delete(ctx context.Context, companyID, id string) (int64, error) {
	return 0, nil
}
func (f *fakeProductRepo) CreatePrice(ctx context.Context, p *product.Price) error {
	return nil
}
func (f *fakeProductRepo) CloseOpenPrice(ctx context.Context, companyID, productID string, at time.Time) (int64, error) {
	return 0, nil
}
func (f *fakeProductRepo) FindOpenPrice(ctx context.Context, companyID, productID string) (*product.Price, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeProductRepo) FindOpenPrices(ctx context.Context, companyID string, productIDs []string) ([]product.Price, error) {
	var out []product.Price
	for _, id := range productIDs {
		if p, ok := f.prices[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}
func (f *fakeProductRepo) ListPrices(ctx context.Context, companyID, productID string) ([]product.Price, error) {
	return nil, nil
}

type fakeCounter struct {
	next int64
}

func (f *fakeCounter) GetNextValue(ctx context.Context, companyID string, counterType string) (int64, error) {
	f.next++
	return f.next, nil
}

type fakeOutbox struct {
	events []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *gorm.DB) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.events = append(f.events, event)
	return nil
}
func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error   { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

func seedCatalog() (*fakeProductRepo, uuid.UUID, uuid.UUID) {
	widget := uuid.New()
	gadget := uuid.New()
	repo := &fakeProductRepo{
		products: map[string]product.Product{
			widget.String(): {ID: widget, SKU: "SKU-W", Name: "Widget"},
			gadget.String(): {ID: gadget, SKU: "SKU-G", Name: "Gadget"},
		},
		prices: map[string]product.Price{
			widget.String(): {ProductID: widget, PriceCents: 1000},
			gadget.String(): {ProductID: gadget, PriceCents: 250},
		},
	}
	return repo, widget, gadget
}

func TestCreateOrder_SnapshotsPricesAndTotals(t *testing.T) {
	catalog, widget, gadget := seedCatalog()
	repo := &fakeOrderRepo{}
	svc := NewService(&fakeTxRunner{}, repo, catalog, &fakeCounter{}, &fakeOutbox{})

	resp, err := svc.Create(context.Background(), uuid.NewString(), uuid.NewString(), CreateOrderRequest{
		Items: []CreateOrderItemRequest{
			{ProductID: widget.String(), Quantity: 3},
			{ProductID: gadget.String(), Quantity: 4},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "ORD-000001", resp.OrderNumber)
	assert.Equal(t, int64(3*1000+4*250), resp.TotalCents)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, int64(1000), resp.Items[0].UnitPriceCents)
	assert.Equal(t, "SKU-W", resp.Items[0].SKU)
	require.Len(t, repo.items, 2)
}

func TestCreateOrder_ProductWithoutOpenPriceFails(t *testing.T) {
	catalog, widget, _ := seedCatalog()
	delete(catalog.prices, widget.String())
	svc := NewService(&fakeTxRunner{}, &fakeOrderRepo{}, catalog, &fakeCounter{}, &fakeOutbox{})

	_, err := svc.Create(context.Background(), uuid.NewString(), uuid.NewString(), CreateOrderRequest{
		Items: []CreateOrderItemRequest{{ProductID: widget.String(), Quantity: 1}},
	})

	assert.ErrorIs(t, err, ordererrors.ErrProductUnavailable)
}

func TestCreateOrder_SequentialNumbers(t *testing.T) {
	catalog, widget, _ := seedCatalog()
	svc := NewService(&fakeTxRunner{}, &fakeOrderRepo{}, catalog, &fakeCounter{}, &fakeOutbox{})
	companyID := uuid.NewString()

	first, err := svc.Create(context.Background(), companyID, uuid.NewString(), CreateOrderRequest{
		Items: []CreateOrderItemRequest{{ProductID: widget.String(), Quantity: 1}},
	})
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), companyID, uuid.NewString(), CreateOrderRequest{
		Items: []CreateOrderItemRequest{{ProductID: widget.String(), Quantity: 1}},
	})
	require.NoError(t, err)

	assert.Equal(t, "ORD-000001", first.OrderNumber)
	assert.Equal(t, "ORD-000002", second.OrderNumber)
}

func TestUpdateStatus_StampsTimestampViaCoalesce(t *testing.T) {
	orderID := uuid.New()
	var gotCols map[string]interface{}
	repo := &fakeOrderRepo{
		findByIDFn: func(ctx context.Context, companyID, id string) (*Order, error) {
			return &Order{ID: orderID, Status: StatusPending}, nil
		},
		updateColsFn: func(ctx context.Context, companyID, id string, cols map[string]interface{}) (int64, error) {
			gotCols = cols
			return 1, nil
		},
	}
	outbox := &fakeOutbox{}
	svc := NewService(&fakeTxRunner{}, repo, &fakeProductRepo{}, &fakeCounter{}, outbox)

	_, err := svc.UpdateStatus(context.Background(), uuid.NewString(), orderID.String(), UpdateOrderStatusRequest{
		Status: StatusShipped,
	})

	require.NoError(t, err)
	assert.Equal(t, StatusShipped, gotCols["status"])
	assert.Equal(t, gorm.Expr("COALESCE(shipped_at, NOW())"), gotCols["shipped_at"])
	require.Len(t, outbox.events, 1)
	assert.Equal(t, "order_status_changed", outbox.events[0].EventType)
}

func TestUpdateStatus_FinalOrdersAreImmutable(t *testing.T) {
	orderID := uuid.New()
	repo := &fakeOrderRepo{
		findByIDFn: func(ctx context.Context, companyID, id string) (*Order, error) {
			return &Order{ID: orderID, Status: StatusClosed}, nil
		},
	}
	svc := NewService(&fakeTxRunner{}, repo, &fakeProductRepo{}, &fakeCounter{}, &fakeOutbox{})

	_, err := svc.UpdateStatus(context.Background(), uuid.NewString(), orderID.String(), UpdateOrderStatusRequest{
		Status: StatusProcessing,
	})

	assert.ErrorIs(t, err, ordererrors.ErrOrderFinal)
}

func TestListOrders_RepSeesOnlyOwn(t *testing.T) {
	repID := uuid.New()
	otherID := uuid.New()
	repo := &fakeOrderRepo{
		orders: []Order{
			{ID: uuid.New(), CompanyUserID: repID},
			{ID: uuid.New(), CompanyUserID: otherID},
		},
	}
	svc := NewService(&fakeTxRunner{}, repo, &fakeProductRepo{}, &fakeCounter{}, &fakeOutbox{})

	mine, err := svc.List(context.Background(), uuid.NewString(), repID.String(), "rep")
	require.NoError(t, err)
	all, err := svc.List(context.Background(), uuid.NewString(), repID.String(), "manager")
	require.NoError(t, err)

	assert.Len(t, mine, 1)
	assert.Len(t, all, 2)
}
