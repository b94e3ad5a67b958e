package user

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go-fieldforce/internal/events"
	"go-fieldforce/internal/messaging/kafka"
	"go-fieldforce/internal/shared/contextutil"
	"go-fieldforce/internal/shared/database"
	"go-fieldforce/internal/token"
	usererrors "go-fieldforce/internal/user/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const verifyTokenTTL = 24 * time.Hour

type Service interface {
	GetProfile(ctx context.Context, userID string) (ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (ProfileResponse, error)
}

type service struct {
	txr    database.TxRunner
	repo   Repository
	tokens token.Service
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(
	txr database.TxRunner,
	repo Repository,
	tokens token.Service,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{txr: txr, repo: repo, tokens: tokens, outbox: outbox, logger: l}
}

func (s *service) GetProfile(ctx context.Context, userID string) (ProfileResponse, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return ProfileResponse{}, mapProfileError(err)
	}
	return toProfileResponse(u), nil
}

// UpdateProfile applies a partial update. Changing the email address drops
// the verification stamp and re-issues a verification token in the same
// transaction, so the account is never marked verified for an address it
// has not proven.
func (s *service) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (ProfileResponse, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return ProfileResponse{}, mapProfileError(err)
	}

	cols := map[string]interface{}{}
	if req.FullName != nil {
		cols["full_name"] = *req.FullName
	}
	if req.Phone != nil {
		cols["phone"] = *req.Phone
	}

	emailChanged := false
	var newEmail string
	if req.Email != nil {
		newEmail = strings.ToLower(strings.TrimSpace(*req.Email))
		if newEmail != u.Email {
			emailChanged = true
			cols["email"] = newEmail
			cols["verified_at"] = nil
		}
	}

	if len(cols) == 0 {
		return ProfileResponse{}, usererrors.ErrNoFieldsToUpdate
	}

	rid := contextutil.GetRequestID(ctx)
	err = s.txr.RunInTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).UpdateColumns(ctx, userID, cols); err != nil {
			return mapProfileError(err)
		}
		if !emailChanged {
			return nil
		}

		plaintext, err := s.tokens.CreateInTx(ctx, tx, userID, token.KindEmailVerify, verifyTokenTTL)
		if err != nil {
			return err
		}
		return s.queueVerifyMail(ctx, tx, rid, userID, newEmail, plaintext)
	})
	if err != nil {
		return ProfileResponse{}, err
	}

	if emailChanged {
		s.logger.Info("profile email changed",
			zap.String("request_id", rid),
			zap.String("user_id", userID),
		)
	}

	updated, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return ProfileResponse{}, mapProfileError(err)
	}
	return toProfileResponse(updated), nil
}

func (s *service) queueVerifyMail(ctx context.Context, tx *gorm.DB, rid, userID, email, tokenPlain string) error {
	event := events.MailRequestedEvent{
		EventType:  "mail_requested",
		RequestID:  rid,
		Kind:       events.MailKindVerifyEmail,
		UserID:     userID,
		Email:      email,
		Token:      tokenPlain,
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "user",
		AggregateID:   userID,
		EventType:     event.EventType,
		Topic:         events.MailRequestedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func mapProfileError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usererrors.ErrUserNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_user_email" {
		return usererrors.ErrEmailTaken
	}
	if strings.Contains(err.Error(), "uq_user_email") {
		return usererrors.ErrEmailTaken
	}
	return err
}
