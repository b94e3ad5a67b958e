package attendance

import (
	"context"
	"errors"
	"strings"
	"time"

	attendanceerrors "go-fieldforce/internal/attendance/errors"
	"go-fieldforce/internal/policy"
	"go-fieldforce/internal/shared/apperror"
	"go-fieldforce/internal/shop"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	ClockIn(ctx context.Context, companyID, actorCompanyUserID string, req ClockInRequest) (LogResponse, error)
	ClockOut(ctx context.Context, companyID, actorCompanyUserID string, req ClockOutRequest) (LogResponse, error)
	List(ctx context.Context, companyID, actorCompanyUserID, role string) ([]LogResponse, error)
}

type service struct {
	repo   Repository
	shops  shop.Repository
	logger *zap.Logger
}

func NewService(repo Repository, shops shop.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{repo: repo, shops: shops, logger: l}
}

// ClockIn checks for an open session first, and the unique index backs the
// check up: if a concurrent request slips past, the insert fails and maps to
// the same 400.
func (s *service) ClockIn(ctx context.Context, companyID, actorCompanyUserID string, req ClockInRequest) (LogResponse, error) {
	cid, err := uuid.Parse(companyID)
	if err != nil {
		return LogResponse{}, apperror.InvalidField("company_id")
	}
	actor, err := uuid.Parse(actorCompanyUserID)
	if err != nil {
		return LogResponse{}, apperror.InvalidField("company_user_id")
	}

	if _, err := s.repo.FindOpenByRep(ctx, companyID, actorCompanyUserID); err == nil {
		return LogResponse{}, attendanceerrors.ErrAlreadyClockedIn
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return LogResponse{}, err
	}

	l := &Log{
		ID:            uuid.New(),
		CompanyID:     cid,
		CompanyUserID: actor,
		ClockInAt:     time.Now().UTC(),
		ClockInLat:    req.Latitude,
		ClockInLng:    req.Longitude,
		Notes:         req.Notes,
	}

	if req.ShopID != nil {
		sh, err := s.shops.FindByIDAndCompany(ctx, companyID, *req.ShopID)
		if err == nil {
			l.ShopID = &sh.ID
			if req.Latitude != nil && req.Longitude != nil {
				l.GeofenceVerified = sh.WithinGeofence(*req.Latitude, *req.Longitude)
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return LogResponse{}, err
		}
	}

	if err := s.repo.Create(ctx, l); err != nil {
		return LogResponse{}, mapClockInError(err)
	}

	s.logger.Info("clock in",
		zap.String("company_id", companyID),
		zap.String("company_user_id", actorCompanyUserID),
		zap.Bool("geofence_verified", l.GeofenceVerified),
	)
	return toLogResponse(l), nil
}

func mapClockInError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_attendance_open" {
		return attendanceerrors.ErrAlreadyClockedIn
	}
	if strings.Contains(err.Error(), "uq_attendance_open") {
		return attendanceerrors.ErrAlreadyClockedIn
	}
	return err
}

func (s *service) ClockOut(ctx context.Context, companyID, actorCompanyUserID string, req ClockOutRequest) (LogResponse, error) {
	now := time.Now().UTC()
	cols := map[string]interface{}{}
	if req.Latitude != nil {
		cols["clock_out_lat"] = *req.Latitude
	}
	if req.Longitude != nil {
		cols["clock_out_lng"] = *req.Longitude
	}
	if req.Notes != nil {
		cols["notes"] = *req.Notes
	}

	affected, err := s.repo.CloseOpen(ctx, companyID, actorCompanyUserID, now, cols)
	if err != nil {
		return LogResponse{}, err
	}
	if affected == 0 {
		return LogResponse{}, attendanceerrors.ErrNotClockedIn
	}

	s.logger.Info("clock out",
		zap.String("company_id", companyID),
		zap.String("company_user_id", actorCompanyUserID),
	)

	rows, err := s.repo.FindAllByRep(ctx, companyID, actorCompanyUserID)
	if err != nil || len(rows) == 0 {
		return LogResponse{}, err
	}
	return toLogResponse(&rows[0]), nil
}

func (s *service) List(ctx context.Context, companyID, actorCompanyUserID, role string) ([]LogResponse, error) {
	var rows []Log
	var err error
	if policy.CanReadAll(role) {
		rows, err = s.repo.FindAllByCompany(ctx, companyID)
	} else {
		rows, err = s.repo.FindAllByRep(ctx, companyID, actorCompanyUserID)
	}
	if err != nil {
		return nil, err
	}

	out := make([]LogResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toLogResponse(&rows[i]))
	}
	return out, nil
}
