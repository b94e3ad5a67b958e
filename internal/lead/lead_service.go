package lead

import (
	"context"
	"errors"
	"time"

	leaderrors "go-fieldforce/internal/lead/errors"
	"go-fieldforce/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, companyID, actorCompanyUserID string, req CreateLeadRequest) (LeadResponse, error)
	List(ctx context.Context, companyID string) ([]LeadResponse, error)
	Get(ctx context.Context, companyID, id string) (LeadResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateLeadRequest) (LeadResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("lead.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("lead.service")
	}
	return &service{repo: repo, logger: l}
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaderrors.ErrLeadNotFound
	}
	return err
}

func (s *service) Create(ctx context.Context, companyID, actorCompanyUserID string, req CreateLeadRequest) (LeadResponse, error) {
	cid, err := uuid.Parse(companyID)
	if err != nil {
		return LeadResponse{}, apperror.InvalidField("company_id")
	}
	actor, err := uuid.Parse(actorCompanyUserID)
	if err != nil {
		return LeadResponse{}, apperror.InvalidField("company_user_id")
	}

	l := &Lead{
		ID:          uuid.New(),
		CompanyID:   cid,
		Name:        req.Name,
		ContactName: req.ContactName,
		Phone:       req.Phone,
		Email:       req.Email,
		Status:      StatusNew,
		Notes:       req.Notes,
		CreatedBy:   actor,
	}
	if err := s.repo.Create(ctx, l); err != nil {
		return LeadResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("lead created",
		zap.String("company_id", companyID),
		zap.String("lead_id", l.ID.String()),
	)
	return toLeadResponse(l), nil
}

func (s *service) List(ctx context.Context, companyID string) ([]LeadResponse, error) {
	rows, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	out := make([]LeadResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toLeadResponse(&rows[i]))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, companyID, id string) (LeadResponse, error) {
	l, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return LeadResponse{}, mapRepositoryError(err)
	}
	return toLeadResponse(l), nil
}

// Update builds the column set from the fields present. A move to converted
// stamps converted_at exactly once; later transitions leave the stamp alone.
func (s *service) Update(ctx context.Context, companyID, id string, req UpdateLeadRequest) (LeadResponse, error) {
	cols := map[string]interface{}{}
	if req.Name != nil {
		cols["name"] = *req.Name
	}
	if req.ContactName != nil {
		cols["contact_name"] = *req.ContactName
	}
	if req.Phone != nil {
		cols["phone"] = *req.Phone
	}
	if req.Email != nil {
		cols["email"] = *req.Email
	}
	if req.Notes != nil {
		cols["notes"] = *req.Notes
	}
	if req.Status != nil {
		if !ValidStatus(*req.Status) {
			return LeadResponse{}, leaderrors.ErrInvalidStatus
		}
		cols["status"] = *req.Status
		if *req.Status == StatusConverted {
			cols["converted_at"] = gorm.Expr("COALESCE(converted_at, NOW())")
		}
	}
	if len(cols) == 0 {
		return LeadResponse{}, leaderrors.ErrNoFieldsToUpdate
	}
	cols["updated_at"] = time.Now().UTC()

	affected, err := s.repo.UpdateColumns(ctx, companyID, id, cols)
	if err != nil {
		return LeadResponse{}, mapRepositoryError(err)
	}
	if affected == 0 {
		return LeadResponse{}, leaderrors.ErrLeadNotFound
	}

	return s.Get(ctx, companyID, id)
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	affected, err := s.repo.Delete(ctx, companyID, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if affected == 0 {
		return leaderrors.ErrLeadNotFound
	}

	s.logger.Info("lead deleted", zap.String("company_id", companyID), zap.String("lead_id", id))
	return nil
}
