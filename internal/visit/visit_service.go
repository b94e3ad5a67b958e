package visit

import (
	"context"
	"errors"
	"time"

	"go-fieldforce/internal/policy"
	"go-fieldforce/internal/shared/apperror"
	"go-fieldforce/internal/shop"
	shoperrors "go-fieldforce/internal/shop/errors"
	visiterrors "go-fieldforce/internal/visit/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Start(ctx context.Context, companyID, actorCompanyUserID string, req StartVisitRequest) (VisitResponse, error)
	End(ctx context.Context, companyID, actorCompanyUserID, role, id string) (VisitResponse, error)
	List(ctx context.Context, companyID, actorCompanyUserID, role string) ([]VisitResponse, error)
}

type service struct {
	repo   Repository
	shops  shop.Repository
	logger *zap.Logger
}

func NewService(repo Repository, shops shop.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("visit.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("visit.service")
	}
	return &service{repo: repo, shops: shops, logger: l}
}

// Start opens a visit after three gates: the rep covers the shop, the rep
// has no other open visit, and the reported position is checked against the
// shop's geofence. An out-of-fence start is allowed but recorded unverified.
func (s *service) Start(ctx context.Context, companyID, actorCompanyUserID string, req StartVisitRequest) (VisitResponse, error) {
	cid, err := uuid.Parse(companyID)
	if err != nil {
		return VisitResponse{}, apperror.InvalidField("company_id")
	}
	actor, err := uuid.Parse(actorCompanyUserID)
	if err != nil {
		return VisitResponse{}, apperror.InvalidField("company_user_id")
	}

	sh, err := s.shops.FindByIDAndCompany(ctx, companyID, req.ShopID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return VisitResponse{}, shoperrors.ErrShopNotFound
		}
		return VisitResponse{}, err
	}

	assigned, err := s.shops.IsAssigned(ctx, companyID, req.ShopID, actorCompanyUserID)
	if err != nil {
		return VisitResponse{}, err
	}
	if !assigned {
		return VisitResponse{}, visiterrors.ErrNotAssignedToShop
	}

	if _, err := s.repo.FindOpenByRep(ctx, companyID, actorCompanyUserID); err == nil {
		return VisitResponse{}, visiterrors.ErrVisitAlreadyOpen
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return VisitResponse{}, err
	}

	v := &Visit{
		ID:               uuid.New(),
		CompanyID:        cid,
		ShopID:           sh.ID,
		CompanyUserID:    actor,
		StartedAt:        time.Now().UTC(),
		StartLat:         *req.Latitude,
		StartLng:         *req.Longitude,
		GeofenceVerified: sh.WithinGeofence(*req.Latitude, *req.Longitude),
		Notes:            req.Notes,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return VisitResponse{}, err
	}

	s.logger.Info("visit started",
		zap.String("company_id", companyID),
		zap.String("visit_id", v.ID.String()),
		zap.String("shop_id", req.ShopID),
		zap.Bool("geofence_verified", v.GeofenceVerified),
	)
	return toVisitResponse(v), nil
}

func (s *service) End(ctx context.Context, companyID, actorCompanyUserID, role, id string) (VisitResponse, error) {
	v, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return VisitResponse{}, visiterrors.ErrVisitNotFound
		}
		return VisitResponse{}, err
	}
	if !policy.CanReadAll(role) && v.CompanyUserID.String() != actorCompanyUserID {
		return VisitResponse{}, visiterrors.ErrVisitNotFound
	}
	if v.EndedAt != nil {
		return VisitResponse{}, visiterrors.ErrVisitAlreadyEnded
	}

	now := time.Now().UTC()
	affected, err := s.repo.End(ctx, companyID, id, now)
	if err != nil {
		return VisitResponse{}, err
	}
	if affected == 0 {
		return VisitResponse{}, visiterrors.ErrVisitAlreadyEnded
	}

	v.EndedAt = &now

	s.logger.Info("visit ended",
		zap.String("company_id", companyID),
		zap.String("visit_id", id),
	)
	return toVisitResponse(v), nil
}

func (s *service) List(ctx context.Context, companyID, actorCompanyUserID, role string) ([]VisitResponse, error) {
	var rows []Visit
	var err error
	if policy.CanReadAll(role) {
		rows, err = s.repo.FindAllByCompany(ctx, companyID)
	} else {
		rows, err = s.repo.FindAllByRep(ctx, companyID, actorCompanyUserID)
	}
	if err != nil {
		return nil, err
	}

	out := make([]VisitResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toVisitResponse(&rows[i]))
	}
	return out, nil
}
