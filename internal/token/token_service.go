package token

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	// Create issues a fresh token for (userID, kind), invalidating any prior
	// live one, and returns the plaintext exactly once.
	Create(ctx context.Context, userID, kind string, ttl time.Duration) (string, error)
	// CreateInTx is Create bound to a caller-owned transaction.
	CreateInTx(ctx context.Context, tx *gorm.DB, userID, kind string, ttl time.Duration) (string, error)
	// Consume returns the owning user id, or "" when the token is unknown,
	// expired, of the wrong kind, or already used.
	Consume(ctx context.Context, plaintext, kind string) (string, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("token.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("token.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, userID, kind string, ttl time.Duration) (string, error) {
	return s.create(ctx, s.repo, userID, kind, ttl)
}

func (s *service) CreateInTx(ctx context.Context, tx *gorm.DB, userID, kind string, ttl time.Duration) (string, error) {
	return s.create(ctx, s.repo.WithTx(tx), userID, kind, ttl)
}

func (s *service) create(ctx context.Context, repo Repository, userID, kind string, ttl time.Duration) (string, error) {
	if err := repo.InvalidateLive(ctx, userID, kind); err != nil {
		s.logger.Error("invalidate live tokens failed",
			zap.String("user_id", userID),
			zap.String("kind", kind),
			zap.Error(err),
		)
		return "", err
	}

	plaintext, err := randomToken()
	if err != nil {
		return "", err
	}

	t := &Token{
		ID:        uuid.New(),
		UserID:    uuid.MustParse(userID),
		Kind:      kind,
		TokenHash: HashToken(plaintext),
		ExpiresAt: time.Now().UTC().Add(ttl),
	}

	if err := repo.Create(ctx, t); err != nil {
		s.logger.Error("persist token failed",
			zap.String("user_id", userID),
			zap.String("kind", kind),
			zap.Error(err),
		)
		return "", err
	}

	return plaintext, nil
}

func (s *service) Consume(ctx context.Context, plaintext, kind string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	userID, err := s.repo.ConsumeByHash(ctx, HashToken(plaintext), kind)
	if err != nil {
		s.logger.Error("consume token failed", zap.String("kind", kind), zap.Error(err))
		return "", err
	}
	return userID, nil
}

// HashToken is the persisted form of a token plaintext.
func HashToken(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
