package attendance

import (
	"context"
	"testing"
	"time"

	attendanceerrors "go-fieldforce/internal/attendance/errors"
	"go-fieldforce/internal/policy"
	"go-fieldforce/internal/shop"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeAttendanceRepo struct {
	createFn    func(ctx context.Context, l *Log) error
	findOpenFn  func(ctx context.Context, companyID, companyUserID string) (*Log, error)
	closeOpenFn func(ctx context.Context, companyID, companyUserID string, at time.Time, cols map[string]interface{}) (int64, error)
	findAllFn   func(ctx context.Context, companyID string) ([]Log, error)
	findByRepFn func(ctx context.Context, companyID, companyUserID string) ([]Log, error)
}

func (f *fakeAttendanceRepo) WithTx(tx *gorm.DB) Repository { return f }
func (f *fakeAttendanceRepo) Create(ctx context.Context, l *Log) error {
	return f.createFn(ctx, l)
}
func (f *fakeAttendanceRepo) FindOpenByRep(ctx context.Context, companyID, companyUserID string) (*Log, error) {
	return f.findOpenFn(ctx, companyID, companyUserID)
}
func (f *fakeAttendanceRepo) CloseOpen(ctx context.Context, companyID, companyUserID string, at time.Time, cols map[string]interface{}) (int64, error) {
	return f.closeOpenFn(ctx, companyID, companyUserID, at, cols)
}
func (f *fakeAttendanceRepo) FindAllByCompany(ctx context.Context, companyID string) ([]Log, error) {
	return f.findAllFn(ctx, companyID)
}
func (f *fakeAttendanceRepo) FindAllByRep(ctx context.Context, companyID, companyUserID string) ([]Log, error) {
	return f.findByRepFn(ctx, companyID, companyUserID)
}

type stubShopRepo struct {
	shop *shop.Shop
}

func (f *stubShopRepo) WithTx(tx *gorm.DB) shop.Repository { return f }
func (f *stubShopRepo) Create(ctx context.Context, s *shop.Shop) error {
	return nil
}
func (f *stubShopRepo) FindAllByCompany(ctx context.Context, companyID string) ([]shop.Shop, error) {
	return nil, nil
}
func (f *stubShopRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*shop.Shop, error) {
	if f.shop == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.shop, nil
}
func (f *stubShopRepo) UpdateColumns(ctx context.Context, companyID, id string, cols map[string]interface{}) (int64, error) {
	return 0, nil
}
func (f *stubShopRepo) Delete(ctx context.Context, companyID, id string) (int64, error) {
	return 0, nil
}
func (f *stubShopRepo) Assign(ctx context.Context, a *shop.Assignment) error {
	return nil
}
func (f *stubShopRepo) Unassign(ctx context.Context, companyID, shopID, companyUserID string) (int64, error) {
	return 0, nil
}
func (f *stubShopRepo) IsAssigned(ctx context.Context, companyID, shopID, companyUserID string) (bool, error) {
	return true, nil
}
func (f *stubShopRepo) FindRepsByShop(ctx context.Context, companyID, shopID string) ([]shop.Assignment, error) {
	return nil, nil
}

func noOpenSession(ctx context.Context, companyID, companyUserID string) (*Log, error) {
	return nil, gorm.ErrRecordNotFound
}

func TestClockIn_RejectsSecondOpenSession(t *testing.T) {
	repo := &fakeAttendanceRepo{
		findOpenFn: func(ctx context.Context, companyID, companyUserID string) (*Log, error) {
			return &Log{ID: uuid.New()}, nil
		},
	}
	svc := NewService(repo, &stubShopRepo{})

	_, err := svc.ClockIn(context.Background(), uuid.NewString(), uuid.NewString(), ClockInRequest{})

	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyClockedIn)
}

func TestClockIn_RecordsGeofenceVerification(t *testing.T) {
	sh := &shop.Shop{ID: uuid.New(), Latitude: -6.1754, Longitude: 106.8272, GeofenceRadiusM: 150}

	var created *Log
	repo := &fakeAttendanceRepo{
		findOpenFn: noOpenSession,
		createFn: func(ctx context.Context, l *Log) error {
			created = l
			return nil
		},
	}
	svc := NewService(repo, &stubShopRepo{shop: sh})

	lat, lng := -6.1754, 106.8272
	shopID := sh.ID.String()
	resp, err := svc.ClockIn(context.Background(), uuid.NewString(), uuid.NewString(), ClockInRequest{
		ShopID: &shopID, Latitude: &lat, Longitude: &lng,
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.True(t, resp.GeofenceVerified)
	assert.Equal(t, sh.ID, *created.ShopID)
}

func TestClockIn_OutsideGeofenceStillClocksIn(t *testing.T) {
	sh := &shop.Shop{ID: uuid.New(), Latitude: -6.1754, Longitude: 106.8272, GeofenceRadiusM: 150}

	repo := &fakeAttendanceRepo{
		findOpenFn: noOpenSession,
		createFn:   func(ctx context.Context, l *Log) error { return nil },
	}
	svc := NewService(repo, &stubShopRepo{shop: sh})

	lat, lng := -6.9, 107.6
	shopID := sh.ID.String()
	resp, err := svc.ClockIn(context.Background(), uuid.NewString(), uuid.NewString(), ClockInRequest{
		ShopID: &shopID, Latitude: &lat, Longitude: &lng,
	})

	require.NoError(t, err)
	assert.False(t, resp.GeofenceVerified)
}

func TestClockOut_WithoutOpenSession(t *testing.T) {
	repo := &fakeAttendanceRepo{
		closeOpenFn: func(ctx context.Context, companyID, companyUserID string, at time.Time, cols map[string]interface{}) (int64, error) {
			return 0, nil
		},
	}
	svc := NewService(repo, &stubShopRepo{})

	_, err := svc.ClockOut(context.Background(), uuid.NewString(), uuid.NewString(), ClockOutRequest{})

	assert.ErrorIs(t, err, attendanceerrors.ErrNotClockedIn)
}

func TestClockOut_PassesLocationColumns(t *testing.T) {
	var gotCols map[string]interface{}
	now := time.Now().UTC()
	repo := &fakeAttendanceRepo{
		closeOpenFn: func(ctx context.Context, companyID, companyUserID string, at time.Time, cols map[string]interface{}) (int64, error) {
			gotCols = cols
			return 1, nil
		},
		findByRepFn: func(ctx context.Context, companyID, companyUserID string) ([]Log, error) {
			return []Log{{ID: uuid.New(), CompanyUserID: uuid.New(), ClockInAt: now, ClockOutAt: &now}}, nil
		},
	}
	svc := NewService(repo, &stubShopRepo{})

	lat, lng := -6.2, 106.8
	resp, err := svc.ClockOut(context.Background(), uuid.NewString(), uuid.NewString(), ClockOutRequest{
		Latitude: &lat, Longitude: &lng,
	})

	require.NoError(t, err)
	assert.Equal(t, lat, gotCols["clock_out_lat"])
	assert.Equal(t, lng, gotCols["clock_out_lng"])
	assert.NotNil(t, resp.ClockOutAt)
}

func TestList_RepOnlySeesOwnLogs(t *testing.T) {
	repCalled := false
	repo := &fakeAttendanceRepo{
		findByRepFn: func(ctx context.Context, companyID, companyUserID string) ([]Log, error) {
			repCalled = true
			return []Log{}, nil
		},
	}
	svc := NewService(repo, &stubShopRepo{})

	_, err := svc.List(context.Background(), uuid.NewString(), uuid.NewString(), policy.RoleRep)

	require.NoError(t, err)
	assert.True(t, repCalled)
}
