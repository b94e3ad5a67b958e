package auth

import (
	"context"
	"testing"
	"time"

	autherrors "go-fieldforce/internal/auth/errors"
	"go-fieldforce/internal/company"
	"go-fieldforce/internal/messaging/kafka"
	"go-fieldforce/internal/policy"
	"go-fieldforce/internal/token"
	"go-fieldforce/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	byEmail     map[string]*user.User
	lastLoginID string
	newPassword string
	verifiedID  string
}

func (f *fakeUserRepo) WithTx(tx *gorm.DB) user.Repository { return f }
func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	f.byEmail[u.Email] = u
	return nil
}
func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*user.User, error) {
	for _, u := range f.byEmail {
		if u.ID.String() == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUserRepo) UpdateColumns(ctx context.Context, id string, cols map[string]interface{}) error {
	return nil
}
func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id, hash string) error {
	f.newPassword = hash
	return nil
}
func (f *fakeUserRepo) StampVerified(ctx context.Context, id string) error {
	f.verifiedID = id
	return nil
}
func (f *fakeUserRepo) StampLastLogin(ctx context.Context, id string) error {
	f.lastLoginID = id
	return nil
}

type fakeCompanyRepo struct {
	companies   map[string]*company.Company // by slug
	memberships []company.CompanyUser
}

func (f *fakeCompanyRepo) WithTx(tx *gorm.DB) company.Repository { return f }
func (f *fakeCompanyRepo) GetByID(ctx context.Context, id string) (*company.Company, error) {
	for _, c := range f.companies {
		if c.ID.String() == id {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeCompanyRepo) GetBySlug(ctx context.Context, slug string) (*company.Company, error) {
	if c, ok := f.companies[slug]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeCompanyRepo) FindMembershipsByUser(ctx context.Context, userID string) ([]company.CompanyUser, error) {
	var out []company.CompanyUser
	for _, m := range f.memberships {
		if m.UserID.String() == userID && m.Status == company.StatusActive {
			out = append(out, m)
		}
	}
	return out, nil
}
func (f *fakeCompanyRepo) GetMembership(ctx context.Context, companyID, userID string) (*company.CompanyUser, error) {
	for i, m := range f.memberships {
		if m.CompanyID.String() == companyID && m.UserID.String() == userID {
			return &f.memberships[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeCompanyRepo) GetMembershipByID(ctx context.Context, companyID, id string) (*company.CompanyUser, error) {
	for i, m := range f.memberships {
		if m.CompanyID.String() == companyID && m.ID.String() == id {
			return &f.memberships[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeCompanyRepo) CountActiveMembers(ctx context.Context, companyID string) (int64, error) {
	return int64(len(f.memberships)), nil
}
func (f *fakeCompanyRepo) CreateMembership(ctx context.Context, cu *company.CompanyUser) error {
	f.memberships = append(f.memberships, *cu)
	return nil
}

type fakeTokenService struct {
	created   map[string]string // plaintext -> userID/kind
	consumeFn func(plaintext, kind string) (string, error)
}

func (f *fakeTokenService) Create(ctx context.Context, userID, kind string, ttl time.Duration) (string, error) {
	return f.CreateInTx(ctx, nil, userID, kind, ttl)
}
func (f *fakeTokenService) CreateInTx(ctx context.Context, tx *gorm.DB, userID, kind string, ttl time.Duration) (string, error) {
	if f.created == nil {
		f.created = map[string]string{}
	}
	plaintext := uuid.NewString()
	f.created[plaintext] = userID + "/" + kind
	return plaintext, nil
}
func (f *fakeTokenService) Consume(ctx context.Context, plaintext, kind string) (string, error) {
	if f.consumeFn != nil {
		return f.consumeFn(plaintext, kind)
	}
	return "", nil
}

type fakeOutbox struct {
	events []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *gorm.DB) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, e kafka.OutboxEvent) error {
	f.events = append(f.events, e)
	return nil
}
func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error              { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id, reason string) error    { return nil }

type fakeTxRunner struct{}

func (fakeTxRunner) RunInTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func seededFixture(t *testing.T) (*fakeUserRepo, *fakeCompanyRepo, *user.User, *company.Company, *company.CompanyUser) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	assert.NoError(t, err)

	now := time.Now().UTC()
	u := &user.User{
		ID:           uuid.New(),
		Email:        "a@x.com",
		PasswordHash: string(hash),
		FullName:     "Ada Seller",
		VerifiedAt:   &now,
	}
	comp := &company.Company{
		ID:     uuid.New(),
		Name:   "Acme Distribution",
		Slug:   "acme",
		Status: company.StatusActive,
		Plan:   "starter",
	}
	membership := &company.CompanyUser{
		ID:        uuid.New(),
		CompanyID: comp.ID,
		UserID:    u.ID,
		Role:      policy.RoleManager,
		Status:    company.StatusActive,
	}

	users := &fakeUserRepo{byEmail: map[string]*user.User{u.Email: u}}
	companies := &fakeCompanyRepo{
		companies:   map[string]*company.Company{comp.Slug: comp},
		memberships: []company.CompanyUser{*membership},
	}
	return users, companies, u, comp, membership
}

func newTestService(users *fakeUserRepo, companies *fakeCompanyRepo, tokens token.Service, outbox kafka.OutboxRepository) Service {
	if tokens == nil {
		tokens = &fakeTokenService{}
	}
	if outbox == nil {
		outbox = &fakeOutbox{}
	}
	return NewService(fakeTxRunner{}, users, companies, tokens, outbox)
}

func TestLogin_Success(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	users, companies, u, comp, membership := seededFixture(t)
	svc := newTestService(users, companies, nil, nil)

	tok, session, err := svc.Login(context.Background(), "a@x.com", "password123", "acme")
	assert.NoError(t, err)
	assert.NotEmpty(t, tok)
	assert.Equal(t, u.ID.String(), session.UserID)
	assert.Equal(t, comp.ID.String(), session.CompanyID)
	assert.Equal(t, membership.ID.String(), session.CompanyUserID)
	assert.Equal(t, policy.RoleManager, session.Role)
	assert.Equal(t, u.ID.String(), users.lastLoginID)
}

func TestLogin_WrongPassword(t *testing.T) {
	users, companies, _, _, _ := seededFixture(t)
	svc := newTestService(users, companies, nil, nil)

	_, _, err := svc.Login(context.Background(), "a@x.com", "nope", "acme")
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	assert.Empty(t, users.lastLoginID)
}

func TestLogin_UnverifiedEmail(t *testing.T) {
	users, companies, u, _, _ := seededFixture(t)
	u.VerifiedAt = nil
	svc := newTestService(users, companies, nil, nil)

	_, _, err := svc.Login(context.Background(), "a@x.com", "password123", "acme")
	assert.ErrorIs(t, err, autherrors.ErrEmailNotVerified)
}

func TestLogin_SlugMismatch(t *testing.T) {
	users, companies, _, _, _ := seededFixture(t)
	svc := newTestService(users, companies, nil, nil)

	_, _, err := svc.Login(context.Background(), "a@x.com", "password123", "other-co")
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestLogin_NoActiveMembership(t *testing.T) {
	users, companies, _, _, _ := seededFixture(t)
	companies.memberships[0].Status = company.StatusInactive
	svc := newTestService(users, companies, nil, nil)

	_, _, err := svc.Login(context.Background(), "a@x.com", "password123", "acme")
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestForgotPassword_UnknownEmailSilently(t *testing.T) {
	users, companies, _, _, _ := seededFixture(t)
	outbox := &fakeOutbox{}
	svc := newTestService(users, companies, nil, outbox)

	err := svc.ForgotPassword(context.Background(), "nobody@x.com")
	assert.NoError(t, err)
	assert.Empty(t, outbox.events)
}

func TestForgotPassword_QueuesMail(t *testing.T) {
	users, companies, u, _, _ := seededFixture(t)
	outbox := &fakeOutbox{}
	tokens := &fakeTokenService{}
	svc := newTestService(users, companies, tokens, outbox)

	err := svc.ForgotPassword(context.Background(), "a@x.com")
	assert.NoError(t, err)
	assert.Len(t, outbox.events, 1)
	assert.Equal(t, u.ID.String(), outbox.events[0].AggregateID)
	assert.Len(t, tokens.created, 1)
}

func TestResetPassword_InvalidToken(t *testing.T) {
	users, companies, _, _, _ := seededFixture(t)
	tokens := &fakeTokenService{consumeFn: func(plaintext, kind string) (string, error) { return "", nil }}
	svc := newTestService(users, companies, tokens, nil)

	err := svc.ResetPassword(context.Background(), "garbage", "newpassword1")
	assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	assert.Empty(t, users.newPassword)
}

func TestResetPassword_Success(t *testing.T) {
	users, companies, u, _, _ := seededFixture(t)
	tokens := &fakeTokenService{consumeFn: func(plaintext, kind string) (string, error) { return u.ID.String(), nil }}
	svc := newTestService(users, companies, tokens, nil)

	err := svc.ResetPassword(context.Background(), "valid", "newpassword1")
	assert.NoError(t, err)
	assert.NotEmpty(t, users.newPassword)
}

func TestVerifyEmail_StampsUser(t *testing.T) {
	users, companies, u, _, _ := seededFixture(t)
	tokens := &fakeTokenService{consumeFn: func(plaintext, kind string) (string, error) { return u.ID.String(), nil }}
	svc := newTestService(users, companies, tokens, nil)

	err := svc.VerifyEmail(context.Background(), "valid")
	assert.NoError(t, err)
	assert.Equal(t, u.ID.String(), users.verifiedID)
}
