package shop

import (
	"context"
	"time"

	"go-fieldforce/internal/company"
	"go-fieldforce/internal/policy"
	"go-fieldforce/internal/shared/apperror"
	shoperrors "go-fieldforce/internal/shop/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, companyID string, req CreateShopRequest) (ShopResponse, error)
	List(ctx context.Context, companyID string) ([]ShopResponse, error)
	Get(ctx context.Context, companyID, id string) (ShopResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateShopRequest) (ShopResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	AssignRep(ctx context.Context, companyID, shopID, companyUserID string) error
	UnassignRep(ctx context.Context, companyID, shopID, companyUserID string) error
	ListReps(ctx context.Context, companyID, shopID string) ([]string, error)
}

type service struct {
	repo      Repository
	companies company.Repository
	logger    *zap.Logger
}

func NewService(repo Repository, companies company.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("shop.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("shop.service")
	}
	return &service{repo: repo, companies: companies, logger: l}
}

func (s *service) Create(ctx context.Context, companyID string, req CreateShopRequest) (ShopResponse, error) {
	cid, err := uuid.Parse(companyID)
	if err != nil {
		return ShopResponse{}, apperror.InvalidField("company_id")
	}

	radius := 150.0
	if req.GeofenceRadiusM != nil {
		radius = *req.GeofenceRadiusM
	}

	sh := &Shop{
		ID:              uuid.New(),
		CompanyID:       cid,
		Code:            req.Code,
		Name:            req.Name,
		Address:         req.Address,
		Latitude:        *req.Latitude,
		Longitude:       *req.Longitude,
		GeofenceRadiusM: radius,
	}

	if err := s.repo.Create(ctx, sh); err != nil {
		return ShopResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("shop created",
		zap.String("company_id", companyID),
		zap.String("shop_id", sh.ID.String()),
		zap.String("code", sh.Code),
	)
	return toShopResponse(sh), nil
}

func (s *service) List(ctx context.Context, companyID string) ([]ShopResponse, error) {
	rows, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	out := make([]ShopResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toShopResponse(&rows[i]))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, companyID, id string) (ShopResponse, error) {
	sh, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return ShopResponse{}, mapRepositoryError(err)
	}
	return toShopResponse(sh), nil
}

// Update applies only the fields present in the request. Moving the pin
// clears the location verification stamp.
func (s *service) Update(ctx context.Context, companyID, id string, req UpdateShopRequest) (ShopResponse, error) {
	cols := map[string]interface{}{}
	if req.Name != nil {
		cols["name"] = *req.Name
	}
	if req.Address != nil {
		cols["address"] = *req.Address
	}
	if req.Latitude != nil {
		cols["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		cols["longitude"] = *req.Longitude
	}
	if req.GeofenceRadiusM != nil {
		cols["geofence_radius_m"] = *req.GeofenceRadiusM
	}
	if len(cols) == 0 {
		return ShopResponse{}, shoperrors.ErrNoFieldsToUpdate
	}

	if req.Latitude != nil || req.Longitude != nil {
		cols["location_verified_at"] = nil
		cols["location_verified_by"] = nil
	}
	cols["updated_at"] = time.Now().UTC()

	affected, err := s.repo.UpdateColumns(ctx, companyID, id, cols)
	if err != nil {
		return ShopResponse{}, mapRepositoryError(err)
	}
	if affected == 0 {
		return ShopResponse{}, shoperrors.ErrShopNotFound
	}

	return s.Get(ctx, companyID, id)
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	affected, err := s.repo.Delete(ctx, companyID, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if affected == 0 {
		return shoperrors.ErrShopNotFound
	}

	s.logger.Info("shop deleted", zap.String("company_id", companyID), zap.String("shop_id", id))
	return nil
}

func (s *service) AssignRep(ctx context.Context, companyID, shopID, companyUserID string) error {
	sh, err := s.repo.FindByIDAndCompany(ctx, companyID, shopID)
	if err != nil {
		return mapRepositoryError(err)
	}

	membership, err := s.companies.GetMembershipByID(ctx, companyID, companyUserID)
	if err != nil {
		return shoperrors.ErrAssigneeNotRep
	}
	if membership.Role != policy.RoleRep || membership.Status != company.StatusActive {
		return shoperrors.ErrAssigneeNotRep
	}

	a := &Assignment{
		ID:            uuid.New(),
		CompanyID:     sh.CompanyID,
		ShopID:        sh.ID,
		CompanyUserID: membership.ID,
	}
	if err := s.repo.Assign(ctx, a); err != nil {
		return mapRepositoryError(err)
	}

	s.logger.Info("rep assigned",
		zap.String("company_id", companyID),
		zap.String("shop_id", shopID),
		zap.String("company_user_id", companyUserID),
	)
	return nil
}

func (s *service) UnassignRep(ctx context.Context, companyID, shopID, companyUserID string) error {
	affected, err := s.repo.Unassign(ctx, companyID, shopID, companyUserID)
	if err != nil {
		return mapRepositoryError(err)
	}
	if affected == 0 {
		return shoperrors.ErrAssignmentNotFound
	}

	s.logger.Info("rep unassigned",
		zap.String("company_id", companyID),
		zap.String("shop_id", shopID),
		zap.String("company_user_id", companyUserID),
	)
	return nil
}

func (s *service) ListReps(ctx context.Context, companyID, shopID string) ([]string, error) {
	if _, err := s.repo.FindByIDAndCompany(ctx, companyID, shopID); err != nil {
		return nil, mapRepositoryError(err)
	}

	rows, err := s.repo.FindRepsByShop(ctx, companyID, shopID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	ids := make([]string, 0, len(rows))
	for i := range rows {
		ids = append(ids, rows[i].CompanyUserID.String())
	}
	return ids, nil
}
