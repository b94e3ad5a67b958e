package staff

import (
	"context"
	"testing"
	"time"

	"go-fieldforce/internal/company"
	"go-fieldforce/internal/messaging/kafka"
	"go-fieldforce/internal/shared/apperror"
	"go-fieldforce/internal/shop"
	stafferrors "go-fieldforce/internal/staff/errors"
	"go-fieldforce/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// deactivationWorld is the in-memory tenant the deactivation tests mutate:
// one target rep, one replacement rep, and a set of shop assignments.
type deactivationWorld struct {
	companyID     uuid.UUID
	targetID      uuid.UUID
	replacementID uuid.UUID
	shopSolo      uuid.UUID
	shopShared    uuid.UUID

	assignments  []shop.Assignment
	memberStatus map[uuid.UUID]string
	memberRole   map[uuid.UUID]string
}

func newDeactivationWorld() *deactivationWorld {
	w := &deactivationWorld{
		companyID:     uuid.New(),
		targetID:      uuid.New(),
		replacementID: uuid.New(),
		shopSolo:      uuid.New(),
		shopShared:    uuid.New(),
		memberStatus:  map[uuid.UUID]string{},
		memberRole:    map[uuid.UUID]string{},
	}
	w.memberStatus[w.targetID] = company.StatusActive
	w.memberRole[w.targetID] = "rep"
	w.memberStatus[w.replacementID] = company.StatusActive
	w.memberRole[w.replacementID] = "rep"

	// Target solely covers shopSolo and shares shopShared with the
	// replacement rep.
	w.assignments = []shop.Assignment{
		{ID: uuid.New(), CompanyID: w.companyID, ShopID: w.shopSolo, CompanyUserID: w.targetID},
		{ID: uuid.New(), CompanyID: w.companyID, ShopID: w.shopShared, CompanyUserID: w.targetID},
		{ID: uuid.New(), CompanyID: w.companyID, ShopID: w.shopShared, CompanyUserID: w.replacementID},
	}
	return w
}

func (w *deactivationWorld) assignmentsOf(companyUserID uuid.UUID) []shop.Assignment {
	var out []shop.Assignment
	for _, a := range w.assignments {
		if a.CompanyUserID == companyUserID {
			out = append(out, a)
		}
	}
	return out
}

func (w *deactivationWorld) repsOf(shopID uuid.UUID) []uuid.UUID {
	var out []uuid.UUID
	for _, a := range w.assignments {
		if a.ShopID == shopID {
			out = append(out, a.CompanyUserID)
		}
	}
	return out
}

type worldStaffRepo struct {
	w *deactivationWorld
}

func (r *worldStaffRepo) WithTx(tx *gorm.DB) Repository { return r }

func (r *worldStaffRepo) ListMembers(ctx context.Context, companyID string) ([]Member, error) {
	var out []Member
	for id, status := range r.w.memberStatus {
		out = append(out, Member{
			CompanyUserID: id,
			UserID:        uuid.New(),
			FullName:      "Member " + id.String()[:8],
			Role:          r.w.memberRole[id],
			Status:        status,
		})
	}
	return out, nil
}

func (r *worldStaffRepo) GetMember(ctx context.Context, companyID, companyUserID string) (*Member, error) {
	id, err := uuid.Parse(companyUserID)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	status, ok := r.w.memberStatus[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &Member{
		CompanyUserID: id,
		UserID:        uuid.New(),
		FullName:      "Member",
		Role:          r.w.memberRole[id],
		Status:        status,
	}, nil
}

func (r *worldStaffRepo) UpdateMembershipColumns(ctx context.Context, companyID, companyUserID string, cols map[string]interface{}) (int64, error) {
	id := uuid.MustParse(companyUserID)
	if _, ok := r.w.memberStatus[id]; !ok {
		return 0, nil
	}
	if status, ok := cols["status"].(string); ok {
		r.w.memberStatus[id] = status
	}
	return 1, nil
}

func (r *worldStaffRepo) ListRepShopLoads(ctx context.Context, companyID, companyUserID string) ([]ShopLoad, error) {
	id := uuid.MustParse(companyUserID)
	counts := map[uuid.UUID]int64{}
	for _, a := range r.w.assignments {
		counts[a.ShopID]++
	}

	var out []ShopLoad
	for _, a := range r.w.assignmentsOf(id) {
		out = append(out, ShopLoad{
			ShopID:   a.ShopID,
			Code:     "SHOP-" + a.ShopID.String()[:8],
			Name:     "Shop",
			RepCount: counts[a.ShopID],
		})
	}
	return out, nil
}

func (r *worldStaffRepo) DeleteAllAssignments(ctx context.Context, companyID, companyUserID string) (int64, error) {
	id := uuid.MustParse(companyUserID)
	var kept []shop.Assignment
	var deleted int64
	for _, a := range r.w.assignments {
		if a.CompanyUserID == id {
			deleted++
			continue
		}
		kept = append(kept, a)
	}
	r.w.assignments = kept
	return deleted, nil
}

type worldShopRepo struct {
	w *deactivationWorld
}

func (r *worldShopRepo) WithTx(tx *gorm.DB) shop.Repository { return r }
func (r *worldShopRepo) Create(ctx context.Context, s *shop.Shop) error {
	return nil
}
func (r *worldShopRepo) FindAllByCompany(ctx context.Context, companyID string) ([]shop.Shop, error) {
	return nil, nil
}
func (r *worldShopRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*shop.Shop, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *worldShopRepo) UpdateColumns(ctx context.Context, companyID, id string, cols map[string]interface{}) (int64, error) {
	return 0, nil
}
func (r *worldShopRepo) Delete(ctx context.Context, companyID, id string) (int64, error) {
	return 0, nil
}

func (r *worldShopRepo) Assign(ctx context.Context, a *shop.Assignment) error {
	for _, existing := range r.w.assignments {
		if existing.ShopID == a.ShopID && existing.CompanyUserID == a.CompanyUserID {
			return nil
		}
	}
	r.w.assignments = append(r.w.assignments, *a)
	return nil
}

func (r *worldShopRepo) Unassign(ctx context.Context, companyID, shopID, companyUserID string) (int64, error) {
	sid := uuid.MustParse(shopID)
	cuid := uuid.MustParse(companyUserID)
	var kept []shop.Assignment
	var deleted int64
	for _, a := range r.w.assignments {
		if a.ShopID == sid && a.CompanyUserID == cuid {
			deleted++
			continue
		}
		kept = append(kept, a)
	}
	r.w.assignments = kept
	return deleted, nil
}

func (r *worldShopRepo) IsAssigned(ctx context.Context, companyID, shopID, companyUserID string) (bool, error) {
	return false, nil
}
func (r *worldShopRepo) FindRepsByShop(ctx context.Context, companyID, shopID string) ([]shop.Assignment, error) {
	return nil, nil
}

type worldCompanyRepo struct {
	w *deactivationWorld
}

func (r *worldCompanyRepo) WithTx(tx *gorm.DB) company.Repository { return r }
func (r *worldCompanyRepo) GetByID(ctx context.Context, id string) (*company.Company, error) {
	return &company.Company{ID: r.w.companyID, Status: company.StatusActive, StaffLimit: 10}, nil
}
func (r *worldCompanyRepo) GetBySlug(ctx context.Context, slug string) (*company.Company, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *worldCompanyRepo) FindMembershipsByUser(ctx context.Context, userID string) ([]company.CompanyUser, error) {
	return nil, nil
}
func (r *worldCompanyRepo) GetMembership(ctx context.Context, companyID, userID string) (*company.CompanyUser, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *worldCompanyRepo) GetMembershipByID(ctx context.Context, companyID, id string) (*company.CompanyUser, error) {
	mid, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	status, ok := r.w.memberStatus[mid]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &company.CompanyUser{
		ID:        mid,
		CompanyID: r.w.companyID,
		Role:      r.w.memberRole[mid],
		Status:    status,
	}, nil
}
func (r *worldCompanyRepo) CountActiveMembers(ctx context.Context, companyID string) (int64, error) {
	var n int64
	for _, status := range r.w.memberStatus {
		if status == company.StatusActive {
			n++
		}
	}
	return n, nil
}
func (r *worldCompanyRepo) CreateMembership(ctx context.Context, cu *company.CompanyUser) error {
	r.w.memberStatus[cu.ID] = cu.Status
	r.w.memberRole[cu.ID] = cu.Role
	return nil
}

type fakeUserRepo struct{}

func (f *fakeUserRepo) WithTx(tx *gorm.DB) user.Repository { return f }
func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	return nil
}
func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*user.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUserRepo) UpdateColumns(ctx context.Context, id string, cols map[string]interface{}) error {
	return nil
}
func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return nil
}
func (f *fakeUserRepo) StampVerified(ctx context.Context, id string) error {
	return nil
}
func (f *fakeUserRepo) StampLastLogin(ctx context.Context, id string) error {
	return nil
}

type fakeTokenService struct{}

func (f *fakeTokenService) Create(ctx context.Context, userID, kind string, ttl time.Duration) (string, error) {
	return "plaintext-token", nil
}
func (f *fakeTokenService) CreateInTx(ctx context.Context, tx *gorm.DB, userID, kind string, ttl time.Duration) (string, error) {
	return "plaintext-token", nil
}
func (f *fakeTokenService) Consume(ctx context.Context, plaintext, kind string) (string, error) {
	return "", nil
}

type fakeOutbox struct {
	events []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *gorm.DB) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.events = append(f.events, event)
	return nil
}
func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error {
	return nil
}
func (f *fakeOutbox) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type fakeTxRunner struct{}

func (f *fakeTxRunner) RunInTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func newWorldService(w *deactivationWorld) Service {
	return NewService(
		&fakeTxRunner{},
		&worldStaffRepo{w: w},
		&worldShopRepo{w: w},
		&fakeUserRepo{},
		&worldCompanyRepo{w: w},
		&fakeTokenService{},
		&fakeOutbox{},
		NewOptionsCache(nil),
	)
}

func TestDeactivate_UnresolvedSoloShopFailsWithoutChanges(t *testing.T) {
	w := newDeactivationWorld()
	svc := newWorldService(w)
	before := len(w.assignments)

	err := svc.Deactivate(context.Background(), w.companyID.String(), w.targetID.String(), nil)

	require.Error(t, err)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPStatus)
	assert.Contains(t, appErr.Message, "SHOP-"+w.shopSolo.String()[:8])

	assert.Len(t, w.assignments, before)
	assert.Equal(t, company.StatusActive, w.memberStatus[w.targetID])
}

func TestDeactivate_ValidReassignmentMovesSoloShop(t *testing.T) {
	w := newDeactivationWorld()
	svc := newWorldService(w)

	err := svc.Deactivate(context.Background(), w.companyID.String(), w.targetID.String(), map[string]string{
		w.shopSolo.String(): w.replacementID.String(),
	})

	require.NoError(t, err)
	assert.Empty(t, w.assignmentsOf(w.targetID))
	assert.Equal(t, []uuid.UUID{w.replacementID}, w.repsOf(w.shopSolo))
	assert.Equal(t, company.StatusInactive, w.memberStatus[w.targetID])

	// shared shop keeps its surviving rep
	assert.Equal(t, []uuid.UUID{w.replacementID}, w.repsOf(w.shopShared))
}

func TestDeactivate_ReplacementMustBeActiveRep(t *testing.T) {
	w := newDeactivationWorld()
	w.memberRole[w.replacementID] = "manager"
	svc := newWorldService(w)

	err := svc.Deactivate(context.Background(), w.companyID.String(), w.targetID.String(), map[string]string{
		w.shopSolo.String(): w.replacementID.String(),
	})

	assert.ErrorIs(t, err, stafferrors.ErrReplacementInvalid)
	assert.Equal(t, company.StatusActive, w.memberStatus[w.targetID])
}

func TestDeactivate_TargetMustBeActive(t *testing.T) {
	w := newDeactivationWorld()
	w.memberStatus[w.targetID] = company.StatusInactive
	svc := newWorldService(w)

	err := svc.Deactivate(context.Background(), w.companyID.String(), w.targetID.String(), nil)

	assert.ErrorIs(t, err, stafferrors.ErrAlreadyInactive)
}

func TestDeactivatePreview_PartitionsSoloAndShared(t *testing.T) {
	w := newDeactivationWorld()
	svc := newWorldService(w)

	resp, err := svc.DeactivatePreview(context.Background(), w.companyID.String(), w.targetID.String())

	require.NoError(t, err)
	require.Len(t, resp.SoloShops, 1)
	require.Len(t, resp.SharedShops, 1)
	assert.Equal(t, w.shopSolo.String(), resp.SoloShops[0].ShopID)
	assert.Equal(t, w.shopShared.String(), resp.SharedShops[0].ShopID)
}

func TestCreateStaff_EnforcesStaffLimit(t *testing.T) {
	w := newDeactivationWorld()
	repo := &worldCompanyRepo{w: w}
	svc := NewService(
		&fakeTxRunner{},
		&worldStaffRepo{w: w},
		&worldShopRepo{w: w},
		&fakeUserRepo{},
		&limitedCompanyRepo{worldCompanyRepo: repo, limit: 2},
		&fakeTokenService{},
		&fakeOutbox{},
		NewOptionsCache(nil),
	)

	_, err := svc.Create(context.Background(), w.companyID.String(), CreateStaffRequest{
		Email: "new@acme.test", FullName: "New Rep", Role: "rep",
	})

	assert.ErrorIs(t, err, stafferrors.ErrStaffLimitReached)
}

func TestCreateStaff_QueuesInviteMail(t *testing.T) {
	w := newDeactivationWorld()
	outbox := &fakeOutbox{}
	svc := NewService(
		&fakeTxRunner{},
		&worldStaffRepo{w: w},
		&worldShopRepo{w: w},
		&fakeUserRepo{},
		&worldCompanyRepo{w: w},
		&fakeTokenService{},
		outbox,
		NewOptionsCache(nil),
	)

	resp, err := svc.Create(context.Background(), w.companyID.String(), CreateStaffRequest{
		Email: "new@acme.test", FullName: "New Rep", Role: "rep",
	})

	require.NoError(t, err)
	assert.Equal(t, "rep", resp.Role)
	require.Len(t, outbox.events, 1)
	assert.Equal(t, "mail_requested", outbox.events[0].EventType)
}

// limitedCompanyRepo overrides the plan limit so the cap check trips.
type limitedCompanyRepo struct {
	*worldCompanyRepo
	limit int
}

func (r *limitedCompanyRepo) GetByID(ctx context.Context, id string) (*company.Company, error) {
	return &company.Company{ID: r.w.companyID, Status: company.StatusActive, StaffLimit: r.limit}, nil
}
