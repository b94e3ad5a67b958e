package task

import (
	"context"
	"testing"

	taskerrors "go-fieldforce/internal/task/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeTaskRepo struct {
	createFn     func(ctx context.Context, t *Task) error
	findAllFn    func(ctx context.Context, companyID string) ([]Task, error)
	findByRepFn  func(ctx context.Context, companyID, companyUserID string) ([]Task, error)
	findByIDFn   func(ctx context.Context, companyID, id string) (*Task, error)
	updateColsFn func(ctx context.Context, companyID, id string, cols map[string]interface{}) (int64, error)
	deleteFn     func(ctx context.Context, companyID, id string) (int64, error)
}

func (f *fakeTaskRepo) WithTx(tx *gorm.DB) Repository { return f }
func (f *fakeTaskRepo) Create(ctx context.Context, t *Task) error {
	return f.createFn(ctx, t)
}
func (f *fakeTaskRepo) FindAllByCompany(ctx context.Context, companyID string) ([]Task, error) {
	return f.findAllFn(ctx, companyID)
}
func (f *fakeTaskRepo) FindAllByAssignee(ctx context.Context, companyID, companyUserID string) ([]Task, error) {
	return f.findByRepFn(ctx, companyID, companyUserID)
}
func (f *fakeTaskRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Task, error) {
	return f.findByIDFn(ctx, companyID, id)
}
func (f *fakeTaskRepo) UpdateColumns(ctx context.Context, companyID, id string, cols map[string]interface{}) (int64, error) {
	return f.updateColsFn(ctx, companyID, id, cols)
}
func (f *fakeTaskRepo) Delete(ctx context.Context, companyID, id string) (int64, error) {
	return f.deleteFn(ctx, companyID, id)
}

func TestCompleteTask_RepCannotCompleteOthersTask(t *testing.T) {
	assignee := uuid.New()
	repo := &fakeTaskRepo{
		findByIDFn: func(ctx context.Context, companyID, id string) (*Task, error) {
			return &Task{ID: uuid.New(), CompanyUserID: assignee, Status: StatusPending}, nil
		},
	}
	svc := NewService(repo)

	_, err := svc.Complete(context.Background(), uuid.NewString(), uuid.NewString(), "rep", uuid.NewString())

	assert.ErrorIs(t, err, taskerrors.ErrNotAssignee)
}

func TestCompleteTask_AssigneeStampsOnce(t *testing.T) {
	assignee := uuid.New()
	taskID := uuid.New()
	var gotCols map[string]interface{}
	repo := &fakeTaskRepo{
		findByIDFn: func(ctx context.Context, companyID, id string) (*Task, error) {
			return &Task{ID: taskID, CompanyUserID: assignee, Status: StatusPending}, nil
		},
		updateColsFn: func(ctx context.Context, companyID, id string, cols map[string]interface{}) (int64, error) {
			gotCols = cols
			return 1, nil
		},
	}
	svc := NewService(repo)

	_, err := svc.Complete(context.Background(), uuid.NewString(), assignee.String(), "rep", taskID.String())

	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, gotCols["status"])
	assert.Equal(t, gorm.Expr("COALESCE(completed_at, NOW())"), gotCols["completed_at"])
}

func TestCompleteTask_CancelledTaskRejected(t *testing.T) {
	assignee := uuid.New()
	repo := &fakeTaskRepo{
		findByIDFn: func(ctx context.Context, companyID, id string) (*Task, error) {
			return &Task{ID: uuid.New(), CompanyUserID: assignee, Status: StatusCancelled}, nil
		},
	}
	svc := NewService(repo)

	_, err := svc.Complete(context.Background(), uuid.NewString(), assignee.String(), "rep", uuid.NewString())

	assert.ErrorIs(t, err, taskerrors.ErrTaskNotPending)
}

func TestUpdateTask_NoFieldsReturnsBadRequest(t *testing.T) {
	svc := NewService(&fakeTaskRepo{})

	_, err := svc.Update(context.Background(), uuid.NewString(), uuid.NewString(), UpdateTaskRequest{})

	assert.ErrorIs(t, err, taskerrors.ErrNoFieldsToUpdate)
}

func TestListTasks_ScopesByRole(t *testing.T) {
	repID := uuid.New()
	companyRows := []Task{{ID: uuid.New()}, {ID: uuid.New()}, {ID: uuid.New()}}
	repRows := []Task{{ID: uuid.New(), CompanyUserID: repID}}
	repo := &fakeTaskRepo{
		findAllFn: func(ctx context.Context, companyID string) ([]Task, error) {
			return companyRows, nil
		},
		findByRepFn: func(ctx context.Context, companyID, companyUserID string) ([]Task, error) {
			return repRows, nil
		},
	}
	svc := NewService(repo)

	all, err := svc.List(context.Background(), uuid.NewString(), repID.String(), "boss")
	require.NoError(t, err)
	mine, err := svc.List(context.Background(), uuid.NewString(), repID.String(), "rep")
	require.NoError(t, err)

	assert.Len(t, all, 3)
	assert.Len(t, mine, 1)
}
