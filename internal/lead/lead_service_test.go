package lead

import (
	"context"
	"testing"

	leaderrors "go-fieldforce/internal/lead/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeLeadRepo struct {
	createFn     func(ctx context.Context, l *Lead) error
	findAllFn    func(ctx context.Context, companyID string) ([]Lead, error)
	findByIDFn   func(ctx context.Context, companyID, id string) (*Lead, error)
	updateColsFn func(ctx context.Context, companyID, id string, cols map[string]interface{}) (int64, error)
	deleteFn     func(ctx context.Context, companyID, id string) (int64, error)
}

func (f *fakeLeadRepo) WithTx(tx *gorm.DB) Repository { return f }
func (f *fakeLeadRepo) Create(ctx context.Context, l *Lead) error {
	return f.createFn(ctx, l)
}
func (f *fakeLeadRepo) FindAllByCompany(ctx context.Context, companyID string) ([]Lead, error) {
	return f.findAllFn(ctx, companyID)
}
func (f *fakeLeadRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Lead, error) {
	return f.findByIDFn(ctx, companyID, id)
}
func (f *fakeLeadRepo) UpdateColumns(ctx context.Context, companyID, id string, cols map[string]interface{}) (int64, error) {
	return f.updateColsFn(ctx, companyID, id, cols)
}
func (f *fakeLeadRepo) Delete(ctx context.Context, companyID, id string) (int64, error) {
	return f.deleteFn(ctx, companyID, id)
}

func TestUpdateLead_NoFieldsReturnsBadRequest(t *testing.T) {
	svc := NewService(&fakeLeadRepo{})

	_, err := svc.Update(context.Background(), uuid.NewString(), uuid.NewString(), UpdateLeadRequest{})

	assert.ErrorIs(t, err, leaderrors.ErrNoFieldsToUpdate)
}

func TestUpdateLead_RejectsUnknownStatus(t *testing.T) {
	svc := NewService(&fakeLeadRepo{})
	status := "won"

	_, err := svc.Update(context.Background(), uuid.NewString(), uuid.NewString(), UpdateLeadRequest{Status: &status})

	assert.ErrorIs(t, err, leaderrors.ErrInvalidStatus)
}

func TestUpdateLead_ConvertedStampsViaCoalesce(t *testing.T) {
	var gotCols map[string]interface{}
	leadID := uuid.New()
	repo := &fakeLeadRepo{
		updateColsFn: func(ctx context.Context, companyID, id string, cols map[string]interface{}) (int64, error) {
			gotCols = cols
			return 1, nil
		},
		findByIDFn: func(ctx context.Context, companyID, id string) (*Lead, error) {
			return &Lead{ID: leadID, Status: StatusConverted}, nil
		},
	}
	svc := NewService(repo)
	status := StatusConverted

	_, err := svc.Update(context.Background(), uuid.NewString(), leadID.String(), UpdateLeadRequest{Status: &status})

	require.NoError(t, err)
	assert.Equal(t, StatusConverted, gotCols["status"])
	// a re-conversion must not move the original stamp
	assert.Equal(t, gorm.Expr("COALESCE(converted_at, NOW())"), gotCols["converted_at"])
}

func TestUpdateLead_MissingRowIsNotFound(t *testing.T) {
	repo := &fakeLeadRepo{
		updateColsFn: func(ctx context.Context, companyID, id string, cols map[string]interface{}) (int64, error) {
			return 0, nil
		},
	}
	svc := NewService(repo)
	name := "Renamed"

	_, err := svc.Update(context.Background(), uuid.NewString(), uuid.NewString(), UpdateLeadRequest{Name: &name})

	assert.ErrorIs(t, err, leaderrors.ErrLeadNotFound)
}

func TestDeleteLead_MissingRowIsNotFound(t *testing.T) {
	repo := &fakeLeadRepo{
		deleteFn: func(ctx context.Context, companyID, id string) (int64, error) {
			return 0, nil
		},
	}
	svc := NewService(repo)

	err := svc.Delete(context.Background(), uuid.NewString(), uuid.NewString())

	assert.ErrorIs(t, err, leaderrors.ErrLeadNotFound)
}
