package product

import (
	"context"
	"errors"
	"time"

	producterrors "go-fieldforce/internal/product/errors"
	"go-fieldforce/internal/shared/apperror"
	"go-fieldforce/internal/shared/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, companyID string, req CreateProductRequest) (ProductResponse, error)
	List(ctx context.Context, companyID string) ([]ProductResponse, error)
	Get(ctx context.Context, companyID, id string) (ProductResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateProductRequest) (ProductResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	SetPrice(ctx context.Context, companyID, id string, req SetPriceRequest) (PriceResponse, error)
	ListPrices(ctx context.Context, companyID, id string) ([]PriceResponse, error)
}

type service struct {
	txr    database.TxRunner
	repo   Repository
	logger *zap.Logger
}

func NewService(txr database.TxRunner, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("product.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("product.service")
	}
	return &service{txr: txr, repo: repo, logger: l}
}

// Create inserts the product together with its first open price row.
func (s *service) Create(ctx context.Context, companyID string, req CreateProductRequest) (ProductResponse, error) {
	cid, err := uuid.Parse(companyID)
	if err != nil {
		return ProductResponse{}, apperror.InvalidField("company_id")
	}

	unit := "pcs"
	if req.Unit != nil {
		unit = *req.Unit
	}

	p := &Product{
		ID:          uuid.New(),
		CompanyID:   cid,
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		Unit:        unit,
	}
	price := &Price{
		ID:         uuid.New(),
		CompanyID:  cid,
		ProductID:  p.ID,
		PriceCents: req.PriceCents,
		StartsAt:   time.Now().UTC(),
	}

	err = s.txr.RunInTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, p); err != nil {
			return mapRepositoryError(err)
		}
		return mapRepositoryError(s.repo.WithTx(tx).CreatePrice(ctx, price))
	})
	if err != nil {
		return ProductResponse{}, err
	}

	s.logger.Info("product created",
		zap.String("company_id", companyID),
		zap.String("product_id", p.ID.String()),
		zap.String("sku", p.SKU),
	)
	return toProductResponse(p, price), nil
}

func (s *service) List(ctx context.Context, companyID string) ([]ProductResponse, error) {
	products, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if len(products) == 0 {
		return []ProductResponse{}, nil
	}

	ids := make([]string, 0, len(products))
	for i := range products {
		ids = append(ids, products[i].ID.String())
	}
	openPrices, err := s.repo.FindOpenPrices(ctx, companyID, ids)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	byProduct := make(map[uuid.UUID]*Price, len(openPrices))
	for i := range openPrices {
		byProduct[openPrices[i].ProductID] = &openPrices[i]
	}

	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, toProductResponse(&products[i], byProduct[products[i].ID]))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, companyID, id string) (ProductResponse, error) {
	p, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return ProductResponse{}, mapRepositoryError(err)
	}

	open, err := s.repo.FindOpenPrice(ctx, companyID, id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return ProductResponse{}, mapRepositoryError(err)
		}
		open = nil
	}
	return toProductResponse(p, open), nil
}

func (s *service) Update(ctx context.Context, companyID, id string, req UpdateProductRequest) (ProductResponse, error) {
	cols := map[string]interface{}{}
	if req.Name != nil {
		cols["name"] = *req.Name
	}
	if req.Description != nil {
		cols["description"] = *req.Description
	}
	if req.Unit != nil {
		cols["unit"] = *req.Unit
	}
	if len(cols) == 0 {
		return ProductResponse{}, producterrors.ErrNoFieldsToUpdate
	}
	cols["updated_at"] = time.Now().UTC()

	affected, err := s.repo.UpdateColumns(ctx, companyID, id, cols)
	if err != nil {
		return ProductResponse{}, mapRepositoryError(err)
	}
	if affected == 0 {
		return ProductResponse{}, producterrors.ErrProductNotFound
	}

	return s.Get(ctx, companyID, id)
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	affected, err := s.repo.Delete(ctx, companyID, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if affected == 0 {
		return producterrors.ErrProductNotFound
	}

	s.logger.Info("product deleted", zap.String("company_id", companyID), zap.String("product_id", id))
	return nil
}

// SetPrice rotates the price history in one transaction: the open row is
// closed at the instant the new one starts, so the timeline never overlaps
// and never gains a second open row.
func (s *service) SetPrice(ctx context.Context, companyID, id string, req SetPriceRequest) (PriceResponse, error) {
	p, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return PriceResponse{}, mapRepositoryError(err)
	}

	now := time.Now().UTC()
	price := &Price{
		ID:         uuid.New(),
		CompanyID:  p.CompanyID,
		ProductID:  p.ID,
		PriceCents: req.PriceCents,
		StartsAt:   now,
	}

	err = s.txr.RunInTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.repo.WithTx(tx).CloseOpenPrice(ctx, companyID, id, now); err != nil {
			return mapRepositoryError(err)
		}
		return mapRepositoryError(s.repo.WithTx(tx).CreatePrice(ctx, price))
	})
	if err != nil {
		return PriceResponse{}, err
	}

	s.logger.Info("price rotated",
		zap.String("company_id", companyID),
		zap.String("product_id", id),
		zap.Int64("price_cents", req.PriceCents),
	)
	return toPriceResponse(price), nil
}

func (s *service) ListPrices(ctx context.Context, companyID, id string) ([]PriceResponse, error) {
	if _, err := s.repo.FindByIDAndCompany(ctx, companyID, id); err != nil {
		return nil, mapRepositoryError(err)
	}

	prices, err := s.repo.ListPrices(ctx, companyID, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	out := make([]PriceResponse, 0, len(prices))
	for i := range prices {
		out = append(out, toPriceResponse(&prices[i]))
	}
	return out, nil
}
