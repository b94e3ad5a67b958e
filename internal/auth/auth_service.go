package auth

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"time"

	autherrors "go-fieldforce/internal/auth/errors"
	"go-fieldforce/internal/company"
	"go-fieldforce/internal/events"
	"go-fieldforce/internal/messaging/kafka"
	"go-fieldforce/internal/policy"
	"go-fieldforce/internal/shared/contextutil"
	"go-fieldforce/internal/shared/database"
	"go-fieldforce/internal/token"
	"go-fieldforce/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	sessionTTL       = 7 * 24 * time.Hour
	verifyTokenTTL   = 24 * time.Hour
	resetTokenTTL    = time.Hour
)

type Service interface {
	Login(ctx context.Context, email, password, companySlug string) (accessToken string, session Session, err error)
	Me(ctx context.Context, userID, companyID string) (*MeResponse, error)
	Register(ctx context.Context, req RegisterRequest) (Session, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, tokenPlain, password string) error
	VerifyEmail(ctx context.Context, tokenPlain string) error
}

type service struct {
	txr       database.TxRunner
	users     user.Repository
	companies company.Repository
	tokens    token.Service
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(
	txr database.TxRunner,
	users user.Repository,
	companies company.Repository,
	tokens token.Service,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		txr:       txr,
		users:     users,
		companies: companies,
		tokens:    tokens,
		outbox:    outbox,
		logger:    l,
	}
}

func (s *service) Login(ctx context.Context, email, password, companySlug string) (string, Session, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", Session{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", Session{}, autherrors.ErrInvalidCredentials
	}

	if u.VerifiedAt == nil {
		return "", Session{}, autherrors.ErrEmailNotVerified
	}

	memberships, err := s.companies.FindMembershipsByUser(ctx, u.ID.String())
	if err != nil {
		return "", Session{}, err
	}
	if len(memberships) == 0 {
		return "", Session{}, autherrors.ErrInvalidCredentials
	}

	membership, comp, err := s.resolveMembership(ctx, memberships, companySlug)
	if err != nil {
		return "", Session{}, err
	}

	accessToken, err := s.generateToken(u.ID.String(), comp.ID.String(), membership.ID.String(), membership.Role)
	if err != nil {
		return "", Session{}, autherrors.ErrTokenGenerationFailed
	}

	if err := s.users.StampLastLogin(ctx, u.ID.String()); err != nil {
		s.logger.Warn("stamp last login failed", zap.String("user_id", u.ID.String()), zap.Error(err))
	}

	s.logger.Info("login success",
		zap.String("user_id", u.ID.String()),
		zap.String("company_id", comp.ID.String()),
		zap.String("role", membership.Role),
	)

	return accessToken, Session{
		UserID:        u.ID.String(),
		CompanyID:     comp.ID.String(),
		CompanyUserID: membership.ID.String(),
		Role:          membership.Role,
		Email:         u.Email,
		FullName:      u.FullName,
		CompanyName:   comp.Name,
		CompanySlug:   comp.Slug,
	}, nil
}

// resolveMembership picks the membership for the requested slug, or the
// first active one when no slug was sent. Inactive companies never log in.
func (s *service) resolveMembership(
	ctx context.Context,
	memberships []company.CompanyUser,
	companySlug string,
) (*company.CompanyUser, *company.Company, error) {
	if companySlug != "" {
		comp, err := s.companies.GetBySlug(ctx, companySlug)
		if err != nil {
			return nil, nil, autherrors.ErrInvalidCredentials
		}
		if comp.Status != company.StatusActive {
			return nil, nil, autherrors.ErrInvalidCredentials
		}
		for i := range memberships {
			if memberships[i].CompanyID == comp.ID {
				return &memberships[i], comp, nil
			}
		}
		return nil, nil, autherrors.ErrInvalidCredentials
	}

	for i := range memberships {
		comp, err := s.companies.GetByID(ctx, memberships[i].CompanyID.String())
		if err != nil {
			continue
		}
		if comp.Status == company.StatusActive {
			return &memberships[i], comp, nil
		}
	}
	return nil, nil, autherrors.ErrInvalidCredentials
}

func (s *service) Me(ctx context.Context, userID, companyID string) (*MeResponse, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, autherrors.ErrInvalidCredentials
	}
	comp, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, autherrors.ErrInvalidCredentials
	}
	membership, err := s.companies.GetMembership(ctx, companyID, userID)
	if err != nil {
		return nil, autherrors.ErrInvalidCredentials
	}

	resp := &MeResponse{Role: membership.Role}
	resp.User.ID = u.ID.String()
	resp.User.Email = u.Email
	resp.User.FullName = u.FullName
	resp.User.Phone = u.Phone
	resp.Company.ID = comp.ID.String()
	resp.Company.Name = comp.Name
	resp.Company.Slug = comp.Slug
	resp.Company.Plan = comp.Plan
	return resp, nil
}

// Register bootstraps a tenant: company, boss user, membership and the
// email-verification token all land in one transaction.
func (s *service) Register(ctx context.Context, req RegisterRequest) (Session, error) {
	rid := contextutil.GetRequestID(ctx)

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return Session{}, err
	}

	comp := &company.Company{
		ID:     uuid.New(),
		Name:   req.CompanyName,
		Slug:   req.CompanySlug,
		Status: company.StatusActive,
		Plan:   "starter",
	}
	u := &user.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hashed),
		FullName:     req.FullName,
	}
	membership := &company.CompanyUser{
		ID:        uuid.New(),
		CompanyID: comp.ID,
		UserID:    u.ID,
		Role:      policy.RoleBoss,
		Status:    company.StatusActive,
	}

	err = s.txr.RunInTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(comp).Error; err != nil {
			return mapRegistrationError(err)
		}
		if err := s.users.WithTx(tx).Create(ctx, u); err != nil {
			return mapRegistrationError(err)
		}
		if err := s.companies.WithTx(tx).CreateMembership(ctx, membership); err != nil {
			return mapRegistrationError(err)
		}

		plaintext, err := s.tokens.CreateInTx(ctx, tx, u.ID.String(), token.KindEmailVerify, verifyTokenTTL)
		if err != nil {
			return err
		}

		return s.queueMail(ctx, tx, events.MailRequestedEvent{
			EventType:  "mail_requested",
			RequestID:  rid,
			Kind:       events.MailKindVerifyEmail,
			UserID:     u.ID.String(),
			Email:      u.Email,
			Token:      plaintext,
			OccurredAt: time.Now().UTC(),
		})
	})
	if err != nil {
		return Session{}, err
	}

	s.logger.Info("company registered",
		zap.String("request_id", rid),
		zap.String("company_id", comp.ID.String()),
		zap.String("user_id", u.ID.String()),
	)

	return Session{
		UserID:        u.ID.String(),
		CompanyID:     comp.ID.String(),
		CompanyUserID: membership.ID.String(),
		Role:          membership.Role,
		Email:         u.Email,
		FullName:      u.FullName,
		CompanyName:   comp.Name,
		CompanySlug:   comp.Slug,
	}, nil
}

// ForgotPassword always succeeds from the caller's point of view so email
// addresses cannot be enumerated.
func (s *service) ForgotPassword(ctx context.Context, email string) error {
	rid := contextutil.GetRequestID(ctx)

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Debug("forgot password for unknown email", zap.String("request_id", rid))
			return nil
		}
		return err
	}

	return s.txr.RunInTx(ctx, func(tx *gorm.DB) error {
		plaintext, err := s.tokens.CreateInTx(ctx, tx, u.ID.String(), token.KindPasswordReset, resetTokenTTL)
		if err != nil {
			return err
		}

		return s.queueMail(ctx, tx, events.MailRequestedEvent{
			EventType:  "mail_requested",
			RequestID:  rid,
			Kind:       events.MailKindPasswordReset,
			UserID:     u.ID.String(),
			Email:      u.Email,
			Token:      plaintext,
			OccurredAt: time.Now().UTC(),
		})
	})
}

func (s *service) ResetPassword(ctx context.Context, tokenPlain, password string) error {
	userID, err := s.tokens.Consume(ctx, tokenPlain, token.KindPasswordReset)
	if err != nil {
		return err
	}
	if userID == "" {
		return autherrors.ErrInvalidToken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePassword(ctx, userID, string(hashed)); err != nil {
		return err
	}

	s.logger.Info("password reset", zap.String("user_id", userID))
	return nil
}

func (s *service) VerifyEmail(ctx context.Context, tokenPlain string) error {
	userID, err := s.tokens.Consume(ctx, tokenPlain, token.KindEmailVerify)
	if err != nil {
		return err
	}
	if userID == "" {
		return autherrors.ErrInvalidToken
	}

	if err := s.users.StampVerified(ctx, userID); err != nil {
		return err
	}

	s.logger.Info("email verified", zap.String("user_id", userID))
	return nil
}

func (s *service) queueMail(ctx context.Context, tx *gorm.DB, event events.MailRequestedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     event.RequestID,
		AggregateType: "user",
		AggregateID:   event.UserID,
		EventType:     event.EventType,
		Topic:         events.MailRequestedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

// session token, HS256, 7 days
func (s *service) generateToken(userID, companyID, companyUserID, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id":         userID,
		"company_id":      companyID,
		"company_user_id": companyUserID,
		"role":            role,
		"exp":             time.Now().Add(sessionTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
