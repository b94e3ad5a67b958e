package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-fieldforce/internal/events"
	"go-fieldforce/internal/messaging/kafka"
	ordererrors "go-fieldforce/internal/order/errors"
	"go-fieldforce/internal/policy"
	"go-fieldforce/internal/product"
	"go-fieldforce/internal/shared/apperror"
	"go-fieldforce/internal/shared/contextutil"
	"go-fieldforce/internal/shared/counter"
	"go-fieldforce/internal/shared/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const orderCounterType = "order_number"

type Service interface {
	Create(ctx context.Context, companyID, actorCompanyUserID string, req CreateOrderRequest) (OrderResponse, error)
	List(ctx context.Context, companyID, actorCompanyUserID, role string) ([]OrderResponse, error)
	Get(ctx context.Context, companyID, actorCompanyUserID, role, id string) (OrderResponse, error)
	UpdateStatus(ctx context.Context, companyID, id string, req UpdateOrderStatusRequest) (OrderResponse, error)
}

type service struct {
	txr      database.TxRunner
	repo     Repository
	products product.Repository
	counters counter.Repository
	outbox   kafka.OutboxRepository
	logger   *zap.Logger
}

func NewService(
	txr database.TxRunner,
	repo Repository,
	products product.Repository,
	counters counter.Repository,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("order.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("order.service")
	}
	return &service{
		txr:      txr,
		repo:     repo,
		products: products,
		counters: counters,
		outbox:   outbox,
		logger:   l,
	}
}

// Create snapshots each item against the product's open price row and writes
// the order, its items and the sequence-numbered header in one transaction.
func (s *service) Create(ctx context.Context, companyID, actorCompanyUserID string, req CreateOrderRequest) (OrderResponse, error) {
	cid, err := uuid.Parse(companyID)
	if err != nil {
		return OrderResponse{}, apperror.InvalidField("company_id")
	}
	actor, err := uuid.Parse(actorCompanyUserID)
	if err != nil {
		return OrderResponse{}, apperror.InvalidField("company_user_id")
	}

	items, total, err := s.buildItems(ctx, companyID, cid, req.Items)
	if err != nil {
		return OrderResponse{}, err
	}

	seq, err := s.counters.GetNextValue(ctx, companyID, orderCounterType)
	if err != nil {
		return OrderResponse{}, err
	}

	o := &Order{
		ID:            uuid.New(),
		CompanyID:     cid,
		OrderNumber:   fmt.Sprintf("ORD-%06d", seq),
		CompanyUserID: actor,
		Status:        StatusPending,
		TotalCents:    total,
		Notes:         req.Notes,
	}
	if req.ShopID != nil {
		sid, err := uuid.Parse(*req.ShopID)
		if err != nil {
			return OrderResponse{}, apperror.InvalidField("shop_id")
		}
		o.ShopID = &sid
	}
	for i := range items {
		items[i].OrderID = o.ID
	}

	err = s.txr.RunInTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, o); err != nil {
			return err
		}
		return s.repo.WithTx(tx).CreateItems(ctx, items)
	})
	if err != nil {
		return OrderResponse{}, err
	}
	o.Items = items

	s.logger.Info("order created",
		zap.String("company_id", companyID),
		zap.String("order_id", o.ID.String()),
		zap.String("order_number", o.OrderNumber),
		zap.Int64("total_cents", total),
	)
	return toOrderResponse(o, true), nil
}

func (s *service) buildItems(ctx context.Context, companyID string, cid uuid.UUID, reqs []CreateOrderItemRequest) ([]Item, int64, error) {
	ids := make([]string, 0, len(reqs))
	for _, it := range reqs {
		ids = append(ids, it.ProductID)
	}

	openPrices, err := s.products.FindOpenPrices(ctx, companyID, ids)
	if err != nil {
		return nil, 0, err
	}
	priceByProduct := make(map[string]product.Price, len(openPrices))
	for _, p := range openPrices {
		priceByProduct[p.ProductID.String()] = p
	}

	var items []Item
	var total int64
	for _, it := range reqs {
		open, ok := priceByProduct[it.ProductID]
		if !ok {
			return nil, 0, ordererrors.ErrProductUnavailable
		}
		p, err := s.products.FindByIDAndCompany(ctx, companyID, it.ProductID)
		if err != nil {
			return nil, 0, ordererrors.ErrProductUnavailable
		}

		lineTotal := open.PriceCents * int64(it.Quantity)
		items = append(items, Item{
			ID:             uuid.New(),
			CompanyID:      cid,
			ProductID:      p.ID,
			SKU:            p.SKU,
			Name:           p.Name,
			UnitPriceCents: open.PriceCents,
			Quantity:       it.Quantity,
			TotalCents:     lineTotal,
		})
		total += lineTotal
	}
	return items, total, nil
}

func (s *service) List(ctx context.Context, companyID, actorCompanyUserID, role string) ([]OrderResponse, error) {
	var rows []Order
	var err error
	if policy.CanReadAll(role) {
		rows, err = s.repo.FindAllByCompany(ctx, companyID)
	} else {
		rows, err = s.repo.FindAllByRep(ctx, companyID, actorCompanyUserID)
	}
	if err != nil {
		return nil, err
	}

	out := make([]OrderResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toOrderResponse(&rows[i], false))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, companyID, actorCompanyUserID, role, id string) (OrderResponse, error) {
	o, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrderResponse{}, ordererrors.ErrOrderNotFound
		}
		return OrderResponse{}, err
	}
	if !policy.CanReadAll(role) && o.CompanyUserID.String() != actorCompanyUserID {
		return OrderResponse{}, ordererrors.ErrOrderNotFound
	}
	return toOrderResponse(o, true), nil
}

// UpdateStatus stamps the matching timestamp at most once: re-entering a
// status keeps the first stamp thanks to COALESCE.
func (s *service) UpdateStatus(ctx context.Context, companyID, id string, req UpdateOrderStatusRequest) (OrderResponse, error) {
	if !ValidStatus(req.Status) {
		return OrderResponse{}, ordererrors.ErrInvalidStatus
	}

	o, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrderResponse{}, ordererrors.ErrOrderNotFound
		}
		return OrderResponse{}, err
	}
	if o.Status == StatusClosed || o.Status == StatusCancelled {
		return OrderResponse{}, ordererrors.ErrOrderFinal
	}

	cols := map[string]interface{}{
		"status":     req.Status,
		"updated_at": time.Now().UTC(),
	}
	switch req.Status {
	case StatusProcessing:
		cols["processing_at"] = gorm.Expr("COALESCE(processing_at, NOW())")
	case StatusShipped:
		cols["shipped_at"] = gorm.Expr("COALESCE(shipped_at, NOW())")
	case StatusClosed:
		cols["closed_at"] = gorm.Expr("COALESCE(closed_at, NOW())")
	}

	rid := contextutil.GetRequestID(ctx)
	err = s.txr.RunInTx(ctx, func(tx *gorm.DB) error {
		affected, err := s.repo.WithTx(tx).UpdateColumns(ctx, companyID, id, cols)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ordererrors.ErrOrderNotFound
		}
		return s.queueStatusEvent(ctx, tx, rid, o, req.Status)
	})
	if err != nil {
		return OrderResponse{}, err
	}

	s.logger.Info("order status changed",
		zap.String("company_id", companyID),
		zap.String("order_id", id),
		zap.String("old_status", o.Status),
		zap.String("new_status", req.Status),
	)

	updated, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return OrderResponse{}, err
	}
	return toOrderResponse(updated, true), nil
}

func (s *service) queueStatusEvent(ctx context.Context, tx *gorm.DB, rid string, o *Order, newStatus string) error {
	event := events.OrderStatusChangedEvent{
		EventType:  "order_status_changed",
		RequestID:  rid,
		OrderID:    o.ID.String(),
		CompanyID:  o.CompanyID.String(),
		OldStatus:  o.Status,
		NewStatus:  newStatus,
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "order",
		AggregateID:   event.OrderID,
		EventType:     event.EventType,
		Topic:         events.OrderStatusChangedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}
