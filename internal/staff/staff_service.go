package staff

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"go-fieldforce/internal/company"
	"go-fieldforce/internal/events"
	"go-fieldforce/internal/messaging/kafka"
	"go-fieldforce/internal/policy"
	"go-fieldforce/internal/shared/apperror"
	"go-fieldforce/internal/shared/contextutil"
	"go-fieldforce/internal/shared/database"
	"go-fieldforce/internal/shop"
	stafferrors "go-fieldforce/internal/staff/errors"
	"go-fieldforce/internal/token"
	"go-fieldforce/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const inviteTokenTTL = 72 * time.Hour

type Service interface {
	List(ctx context.Context, companyID string) ([]StaffResponse, error)
	Get(ctx context.Context, companyID, companyUserID string) (StaffResponse, error)
	Create(ctx context.Context, companyID string, req CreateStaffRequest) (StaffResponse, error)
	Update(ctx context.Context, companyID, companyUserID string, req UpdateStaffRequest) (StaffResponse, error)
	Options(ctx context.Context, companyID string) ([]StaffOption, error)
	DeactivatePreview(ctx context.Context, companyID, companyUserID string) (DeactivatePreviewResponse, error)
	Deactivate(ctx context.Context, companyID, companyUserID string, reassignments map[string]string) error
}

type service struct {
	txr       database.TxRunner
	repo      Repository
	shops     shop.Repository
	users     user.Repository
	companies company.Repository
	tokens    token.Service
	outbox    kafka.OutboxRepository
	options   *OptionsCache
	logger    *zap.Logger
}

func NewService(
	txr database.TxRunner,
	repo Repository,
	shops shop.Repository,
	users user.Repository,
	companies company.Repository,
	tokens token.Service,
	outbox kafka.OutboxRepository,
	options *OptionsCache,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("staff.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("staff.service")
	}
	return &service{
		txr:       txr,
		repo:      repo,
		shops:     shops,
		users:     users,
		companies: companies,
		tokens:    tokens,
		outbox:    outbox,
		options:   options,
		logger:    l,
	}
}

func (s *service) List(ctx context.Context, companyID string) ([]StaffResponse, error) {
	members, err := s.repo.ListMembers(ctx, companyID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	out := make([]StaffResponse, 0, len(members))
	for i := range members {
		out = append(out, toStaffResponse(&members[i]))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, companyID, companyUserID string) (StaffResponse, error) {
	m, err := s.repo.GetMember(ctx, companyID, companyUserID)
	if err != nil {
		return StaffResponse{}, mapRepositoryError(err)
	}
	return toStaffResponse(m), nil
}

// Create enrolls a user into the company. An unknown email gets a fresh user
// row with an unusable random password; the invite mail carries a reset token
// so the invitee can set their own.
func (s *service) Create(ctx context.Context, companyID string, req CreateStaffRequest) (StaffResponse, error) {
	if !policy.ValidRole(req.Role) {
		return StaffResponse{}, stafferrors.ErrInvalidRole
	}

	cid, err := uuid.Parse(companyID)
	if err != nil {
		return StaffResponse{}, apperror.InvalidField("company_id")
	}

	comp, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return StaffResponse{}, mapRepositoryError(err)
	}

	rid := contextutil.GetRequestID(ctx)
	var membership *company.CompanyUser
	var invitee *user.User

	err = s.txr.RunInTx(ctx, func(tx *gorm.DB) error {
		active, err := s.companies.WithTx(tx).CountActiveMembers(ctx, companyID)
		if err != nil {
			return err
		}
		if active >= int64(comp.StaffLimit) {
			return stafferrors.ErrStaffLimitReached
		}

		invitee, err = s.users.WithTx(tx).GetByEmail(ctx, req.Email)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			invitee, err = s.createInvitedUser(ctx, tx, req)
		}
		if err != nil {
			return err
		}

		membership = &company.CompanyUser{
			ID:        uuid.New(),
			CompanyID: cid,
			UserID:    invitee.ID,
			Role:      req.Role,
			Status:    company.StatusActive,
		}
		if err := s.companies.WithTx(tx).CreateMembership(ctx, membership); err != nil {
			return mapRepositoryError(err)
		}

		plaintext, err := s.tokens.CreateInTx(ctx, tx, invitee.ID.String(), token.KindPasswordReset, inviteTokenTTL)
		if err != nil {
			return err
		}

		return s.queueInviteMail(ctx, tx, rid, invitee, plaintext)
	})
	if err != nil {
		return StaffResponse{}, err
	}

	s.options.Invalidate(ctx, companyID)

	s.logger.Info("staff created",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("company_user_id", membership.ID.String()),
		zap.String("role", membership.Role),
	)

	return StaffResponse{
		CompanyUserID: membership.ID.String(),
		UserID:        invitee.ID.String(),
		Email:         invitee.Email,
		FullName:      invitee.FullName,
		Phone:         invitee.Phone,
		Role:          membership.Role,
		Status:        membership.Status,
		CreatedAt:     membership.CreatedAt,
	}, nil
}

// createInvitedUser stamps verified_at up front: the inviting manager vouches
// for the address, and the invitee proves control of it by consuming the
// invite token.
func (s *service) createInvitedUser(ctx context.Context, tx *gorm.DB, req CreateStaffRequest) (*user.User, error) {
	placeholder := make([]byte, 32)
	if _, err := rand.Read(placeholder); err != nil {
		return nil, err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(hex.EncodeToString(placeholder)), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	u := &user.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hashed),
		FullName:     req.FullName,
		Phone:        req.Phone,
		VerifiedAt:   &now,
	}
	if err := s.users.WithTx(tx).Create(ctx, u); err != nil {
		return nil, mapRepositoryError(err)
	}
	return u, nil
}

func (s *service) Update(ctx context.Context, companyID, companyUserID string, req UpdateStaffRequest) (StaffResponse, error) {
	m, err := s.repo.GetMember(ctx, companyID, companyUserID)
	if err != nil {
		return StaffResponse{}, mapRepositoryError(err)
	}

	membershipCols := map[string]interface{}{}
	userCols := map[string]interface{}{}

	if req.Role != nil {
		if !policy.ValidRole(*req.Role) {
			return StaffResponse{}, stafferrors.ErrInvalidRole
		}
		membershipCols["role"] = *req.Role
	}
	if req.FullName != nil {
		userCols["full_name"] = *req.FullName
	}
	if req.Phone != nil {
		userCols["phone"] = *req.Phone
	}

	if len(membershipCols) == 0 && len(userCols) == 0 {
		return StaffResponse{}, stafferrors.ErrNoFieldsToUpdate
	}

	err = s.txr.RunInTx(ctx, func(tx *gorm.DB) error {
		if len(membershipCols) > 0 {
			membershipCols["updated_at"] = time.Now().UTC()
			affected, err := s.repo.WithTx(tx).UpdateMembershipColumns(ctx, companyID, companyUserID, membershipCols)
			if err != nil {
				return mapRepositoryError(err)
			}
			if affected == 0 {
				return stafferrors.ErrStaffNotFound
			}
		}
		if len(userCols) > 0 {
			userCols["updated_at"] = time.Now().UTC()
			if err := s.users.WithTx(tx).UpdateColumns(ctx, m.UserID.String(), userCols); err != nil {
				return mapRepositoryError(err)
			}
		}
		return nil
	})
	if err != nil {
		return StaffResponse{}, err
	}

	s.options.Invalidate(ctx, companyID)
	return s.Get(ctx, companyID, companyUserID)
}

func (s *service) Options(ctx context.Context, companyID string) ([]StaffOption, error) {
	return s.options.Get(ctx, companyID, func(ctx context.Context) ([]StaffOption, error) {
		members, err := s.repo.ListMembers(ctx, companyID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		opts := make([]StaffOption, 0, len(members))
		for i := range members {
			if members[i].Status != company.StatusActive {
				continue
			}
			opts = append(opts, StaffOption{
				CompanyUserID: members[i].CompanyUserID.String(),
				FullName:      members[i].FullName,
				Role:          members[i].Role,
			})
		}
		return opts, nil
	})
}

func (s *service) DeactivatePreview(ctx context.Context, companyID, companyUserID string) (DeactivatePreviewResponse, error) {
	if _, err := s.repo.GetMember(ctx, companyID, companyUserID); err != nil {
		return DeactivatePreviewResponse{}, mapRepositoryError(err)
	}

	loads, err := s.repo.ListRepShopLoads(ctx, companyID, companyUserID)
	if err != nil {
		return DeactivatePreviewResponse{}, mapRepositoryError(err)
	}

	resp := DeactivatePreviewResponse{
		SoloShops:   []ShopRef{},
		SharedShops: []ShopRef{},
	}
	for _, l := range loads {
		if l.RepCount <= 1 {
			resp.SoloShops = append(resp.SoloShops, toShopRef(l))
		} else {
			resp.SharedShops = append(resp.SharedShops, toShopRef(l))
		}
	}
	return resp, nil
}

// Deactivate removes a member from duty without stranding any shop. Every
// shop the target solely covers must come with a replacement rep; the whole
// operation commits or rolls back as one transaction.
func (s *service) Deactivate(ctx context.Context, companyID, companyUserID string, reassignments map[string]string) error {
	cid, err := uuid.Parse(companyID)
	if err != nil {
		return apperror.InvalidField("company_id")
	}

	target, err := s.repo.GetMember(ctx, companyID, companyUserID)
	if err != nil {
		return mapRepositoryError(err)
	}
	if target.Status != company.StatusActive {
		return stafferrors.ErrAlreadyInactive
	}

	loads, err := s.repo.ListRepShopLoads(ctx, companyID, companyUserID)
	if err != nil {
		return mapRepositoryError(err)
	}

	var solo []ShopLoad
	for _, l := range loads {
		if l.RepCount <= 1 {
			solo = append(solo, l)
		}
	}

	replacements, err := s.resolveReplacements(ctx, companyID, companyUserID, solo, reassignments)
	if err != nil {
		return err
	}

	err = s.txr.RunInTx(ctx, func(tx *gorm.DB) error {
		txShops := s.shops.WithTx(tx)

		for _, l := range solo {
			affected, err := txShops.Unassign(ctx, companyID, l.ShopID.String(), companyUserID)
			if err != nil {
				return err
			}
			if affected == 0 {
				return fmt.Errorf("assignment for shop %s vanished mid-deactivation", l.Code)
			}

			if err := txShops.Assign(ctx, &shop.Assignment{
				ID:            uuid.New(),
				CompanyID:     cid,
				ShopID:        l.ShopID,
				CompanyUserID: replacements[l.ShopID.String()],
			}); err != nil {
				return err
			}
		}

		if _, err := s.repo.WithTx(tx).DeleteAllAssignments(ctx, companyID, companyUserID); err != nil {
			return err
		}

		affected, err := s.repo.WithTx(tx).UpdateMembershipColumns(ctx, companyID, companyUserID, map[string]interface{}{
			"status":     company.StatusInactive,
			"updated_at": time.Now().UTC(),
		})
		if err != nil {
			return err
		}
		if affected == 0 {
			return stafferrors.ErrStaffNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.options.Invalidate(ctx, companyID)

	s.logger.Info("staff deactivated",
		zap.String("company_id", companyID),
		zap.String("company_user_id", companyUserID),
		zap.Int("solo_shops_reassigned", len(solo)),
	)
	return nil
}

// resolveReplacements validates the caller-supplied map against the solo
// shops. Unresolved shops fail the whole call before anything mutates.
func (s *service) resolveReplacements(
	ctx context.Context,
	companyID, targetID string,
	solo []ShopLoad,
	reassignments map[string]string,
) (map[string]uuid.UUID, error) {
	var unresolved []string
	out := make(map[string]uuid.UUID, len(solo))

	for _, l := range solo {
		replacementID, ok := reassignments[l.ShopID.String()]
		if !ok || replacementID == "" {
			unresolved = append(unresolved, l.Code)
			continue
		}
		if replacementID == targetID {
			return nil, stafferrors.ErrReplacementInvalid
		}

		replacement, err := s.companies.GetMembershipByID(ctx, companyID, replacementID)
		if err != nil {
			return nil, stafferrors.ErrReplacementInvalid
		}
		if replacement.Role != policy.RoleRep || replacement.Status != company.StatusActive {
			return nil, stafferrors.ErrReplacementInvalid
		}

		out[l.ShopID.String()] = replacement.ID
	}

	if len(unresolved) > 0 {
		sort.Strings(unresolved)
		return nil, apperror.New(
			apperror.CodeInvalidInput,
			fmt.Sprintf("These shops need a replacement rep before deactivation: %s", strings.Join(unresolved, ", ")),
			http.StatusBadRequest,
		)
	}
	return out, nil
}

func (s *service) queueInviteMail(ctx context.Context, tx *gorm.DB, rid string, invitee *user.User, tokenPlain string) error {
	event := events.MailRequestedEvent{
		EventType:  "mail_requested",
		RequestID:  rid,
		Kind:       events.MailKindStaffInvite,
		UserID:     invitee.ID.String(),
		Email:      invitee.Email,
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
		AggregateID:   event.UserID,
		EventType:     event.EventType,
		Topic:         events.MailRequestedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}
