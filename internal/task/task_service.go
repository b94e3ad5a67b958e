package task

import (
	"context"
	"errors"
	"time"

	"go-fieldforce/internal/policy"
	"go-fieldforce/internal/shared/apperror"
	taskerrors "go-fieldforce/internal/task/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, companyID, actorCompanyUserID string, req CreateTaskRequest) (TaskResponse, error)
	List(ctx context.Context, companyID, actorCompanyUserID, role string) ([]TaskResponse, error)
	Get(ctx context.Context, companyID, actorCompanyUserID, role, id string) (TaskResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateTaskRequest) (TaskResponse, error)
	Complete(ctx context.Context, companyID, actorCompanyUserID, role, id string) (TaskResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("task.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("task.service")
	}
	return &service{repo: repo, logger: l}
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return taskerrors.ErrTaskNotFound
	}
	return err
}

func (s *service) Create(ctx context.Context, companyID, actorCompanyUserID string, req CreateTaskRequest) (TaskResponse, error) {
	cid, err := uuid.Parse(companyID)
	if err != nil {
		return TaskResponse{}, apperror.InvalidField("company_id")
	}
	actor, err := uuid.Parse(actorCompanyUserID)
	if err != nil {
		return TaskResponse{}, apperror.InvalidField("company_user_id")
	}
	assignee, err := uuid.Parse(req.CompanyUserID)
	if err != nil {
		return TaskResponse{}, apperror.InvalidField("company_user_id")
	}

	t := &Task{
		ID:            uuid.New(),
		CompanyID:     cid,
		CompanyUserID: assignee,
		Title:         req.Title,
		Description:   req.Description,
		Status:        StatusPending,
		DueAt:         req.DueAt,
		CreatedBy:     actor,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return TaskResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("task created",
		zap.String("company_id", companyID),
		zap.String("task_id", t.ID.String()),
		zap.String("assignee", req.CompanyUserID),
	)
	return toTaskResponse(t), nil
}

func (s *service) List(ctx context.Context, companyID, actorCompanyUserID, role string) ([]TaskResponse, error) {
	var rows []Task
	var err error
	if policy.CanReadAll(role) {
		rows, err = s.repo.FindAllByCompany(ctx, companyID)
	} else {
		rows, err = s.repo.FindAllByAssignee(ctx, companyID, actorCompanyUserID)
	}
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	out := make([]TaskResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toTaskResponse(&rows[i]))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, companyID, actorCompanyUserID, role, id string) (TaskResponse, error) {
	t, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return TaskResponse{}, mapRepositoryError(err)
	}
	if !policy.CanReadAll(role) && t.CompanyUserID.String() != actorCompanyUserID {
		return TaskResponse{}, taskerrors.ErrTaskNotFound
	}
	return toTaskResponse(t), nil
}

func (s *service) Update(ctx context.Context, companyID, id string, req UpdateTaskRequest) (TaskResponse, error) {
	cols := map[string]interface{}{}
	if req.CompanyUserID != nil {
		assignee, err := uuid.Parse(*req.CompanyUserID)
		if err != nil {
			return TaskResponse{}, apperror.InvalidField("company_user_id")
		}
		cols["company_user_id"] = assignee
	}
	if req.Title != nil {
		cols["title"] = *req.Title
	}
	if req.Description != nil {
		cols["description"] = *req.Description
	}
	if req.DueAt != nil {
		cols["due_at"] = *req.DueAt
	}
	if req.Status != nil {
		if !ValidStatus(*req.Status) {
			return TaskResponse{}, taskerrors.ErrInvalidStatus
		}
		cols["status"] = *req.Status
		if *req.Status == StatusCompleted {
			cols["completed_at"] = gorm.Expr("COALESCE(completed_at, NOW())")
		}
	}
	if len(cols) == 0 {
		return TaskResponse{}, taskerrors.ErrNoFieldsToUpdate
	}
	cols["updated_at"] = time.Now().UTC()

	affected, err := s.repo.UpdateColumns(ctx, companyID, id, cols)
	if err != nil {
		return TaskResponse{}, mapRepositoryError(err)
	}
	if affected == 0 {
		return TaskResponse{}, taskerrors.ErrTaskNotFound
	}

	t, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return TaskResponse{}, mapRepositoryError(err)
	}
	return toTaskResponse(t), nil
}

// Complete lets a rep close out their own task; managers can complete any.
// The completion stamp survives repeated calls unchanged.
func (s *service) Complete(ctx context.Context, companyID, actorCompanyUserID, role, id string) (TaskResponse, error) {
	t, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return TaskResponse{}, mapRepositoryError(err)
	}
	if !policy.CanReadAll(role) && t.CompanyUserID.String() != actorCompanyUserID {
		return TaskResponse{}, taskerrors.ErrNotAssignee
	}
	if t.Status == StatusCancelled {
		return TaskResponse{}, taskerrors.ErrTaskNotPending
	}

	affected, err := s.repo.UpdateColumns(ctx, companyID, id, map[string]interface{}{
		"status":       StatusCompleted,
		"completed_at": gorm.Expr("COALESCE(completed_at, NOW())"),
		"updated_at":   time.Now().UTC(),
	})
	if err != nil {
		return TaskResponse{}, mapRepositoryError(err)
	}
	if affected == 0 {
		return TaskResponse{}, taskerrors.ErrTaskNotFound
	}

	s.logger.Info("task completed",
		zap.String("company_id", companyID),
		zap.String("task_id", id),
		zap.String("actor", actorCompanyUserID),
	)

	updated, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return TaskResponse{}, mapRepositoryError(err)
	}
	return toTaskResponse(updated), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	affected, err := s.repo.Delete(ctx, companyID, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if affected == 0 {
		return taskerrors.ErrTaskNotFound
	}

	s.logger.Info("task deleted", zap.String("company_id", companyID), zap.String("task_id", id))
	return nil
}
