package product

import (
	"context"
	"testing"
	"time"

	producterrors "go-fieldforce/internal/product/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeTxRunner struct{}

func (f *fakeTxRunner) RunInTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

// priceBook tracks a single product's price rows in memory so rotation
// behavior can be asserted end to end.
type priceBook struct {
	product Product
	prices  []Price
}

func (b *priceBook) openRows() []Price {
	var out []Price
	for _, p := range b.prices {
		if p.EndsAt == nil {
			out = append(out, p)
		}
	}
	return out
}

type bookRepo struct {
	book     *priceBook
	createFn func(ctx context.Context, p *Product) error
}

func (r *bookRepo) WithTx(tx *gorm.DB) Repository { return r }

func (r *bookRepo) Create(ctx context.Context, p *Product) error {
	if r.createFn != nil {
		return r.createFn(ctx, p)
	}
	r.book.product = *p
	return nil
}

func (r *bookRepo) FindAllByCompany(ctx context.Context, companyID string) ([]Product, error) {
	return []Product{r.book.product}, nil
}

func (r *bookRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Product, error) {
	if r.book.product.ID.String() != id {
		return nil, gorm.ErrRecordNotFound
	}
	p := r.book.product
	return &p, nil
}

func (r *bookRepo) UpdateColumns(ctx context.Context, companyID, id string, cols map[string]interface{}) (int64, error) {
	return 1, nil
}

func (r *bookRepo) Delete(ctx context.Context, companyID, id string) (int64, error) {
	return 1, nil
}

func (r *bookRepo) CreatePrice(ctx context.Context, p *Price) error {
	r.book.prices = append(r.book.prices, *p)
	return nil
}

func (r *bookRepo) CloseOpenPrice(ctx context.Context, companyID, productID string, at time.Time) (int64, error) {
	var closed int64
	for i := range r.book.prices {
		if r.book.prices[i].EndsAt == nil {
			t := at
			r.book.prices[i].EndsAt = &t
			closed++
		}
	}
	return closed, nil
}

func (r *bookRepo) FindOpenPrice(ctx context.Context, companyID, productID string) (*Price, error) {
	for i := range r.book.prices {
		if r.book.prices[i].EndsAt == nil {
			p := r.book.prices[i]
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *bookRepo) FindOpenPrices(ctx context.Context, companyID string, productIDs []string) ([]Price, error) {
	return r.openRowsCopy(), nil
}

func (r *bookRepo) openRowsCopy() []Price {
	return r.book.openRows()
}

func (r *bookRepo) ListPrices(ctx context.Context, companyID, productID string) ([]Price, error) {
	return r.book.prices, nil
}

func TestCreateProduct_InsertsOpenPriceRow(t *testing.T) {
	book := &priceBook{}
	repo := &bookRepo{book: book}
	svc := NewService(&fakeTxRunner{}, repo)

	resp, err := svc.Create(context.Background(), uuid.NewString(), CreateProductRequest{
		SKU: "SKU-001", Name: "Widget", PriceCents: 12500,
	})

	require.NoError(t, err)
	require.NotNil(t, resp.PriceCents)
	assert.Equal(t, int64(12500), *resp.PriceCents)
	require.Len(t, book.openRows(), 1)
	assert.Equal(t, int64(12500), book.openRows()[0].PriceCents)
}

func TestCreateProduct_DuplicateSKUMapsToConflict(t *testing.T) {
	repo := &bookRepo{
		book: &priceBook{},
		createFn: func(ctx context.Context, p *Product) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_product_sku"}
		},
	}
	svc := NewService(&fakeTxRunner{}, repo)

	_, err := svc.Create(context.Background(), uuid.NewString(), CreateProductRequest{
		SKU: "SKU-001", Name: "Widget", PriceCents: 100,
	})

	assert.ErrorIs(t, err, producterrors.ErrSKUTaken)
}

func TestSetPrice_KeepsAtMostOneOpenRow(t *testing.T) {
	book := &priceBook{}
	repo := &bookRepo{book: book}
	svc := NewService(&fakeTxRunner{}, repo)
	companyID := uuid.NewString()

	_, err := svc.Create(context.Background(), companyID, CreateProductRequest{
		SKU: "SKU-001", Name: "Widget", PriceCents: 100,
	})
	require.NoError(t, err)
	productID := book.product.ID.String()

	for _, cents := range []int64{200, 300, 450} {
		_, err := svc.SetPrice(context.Background(), companyID, productID, SetPriceRequest{PriceCents: cents})
		require.NoError(t, err)
	}

	open := book.openRows()
	require.Len(t, open, 1)
	assert.Equal(t, int64(450), open[0].PriceCents)
	assert.Len(t, book.prices, 4)

	// closed rows carry the boundary timestamps
	for _, p := range book.prices {
		if p.EndsAt != nil {
			assert.False(t, p.EndsAt.Before(p.StartsAt))
		}
	}
}

func TestUpdateProduct_NoFieldsReturnsBadRequest(t *testing.T) {
	svc := NewService(&fakeTxRunner{}, &bookRepo{book: &priceBook{}})

	_, err := svc.Update(context.Background(), uuid.NewString(), uuid.NewString(), UpdateProductRequest{})

	assert.ErrorIs(t, err, producterrors.ErrNoFieldsToUpdate)
}
