package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/vnphone/staff-portal/internal"
	"github.com/vnphone/staff-portal/internal/activity"
	"github.com/vnphone/staff-portal/internal/staff"
)

// ErrNoSession means the subject has no usable account, whatever the token says.
var ErrNoSession = errors.New("no active session")

// StaffStore is the slice of the staff repository the resolver needs.
type StaffStore interface {
	GetByID(ctx context.Context, id string) (*staff.Staff, error)
	FindByIdentifier(ctx context.Context, identifier string) (*staff.Staff, error)
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
}

type LoginResult struct {
	Token string
	Staff *staff.Staff
}

type SessionResolver struct {
	store    StaffStore
	codec    *TokenCodec
	recorder activity.RecorderAPI
	logger   *slog.Logger
	now      func() time.Time
}

func NewSessionResolver(store StaffStore, codec *TokenCodec, recorder activity.RecorderAPI, logger *slog.Logger) *SessionResolver {
	return &SessionResolver{
		store:    store,
		codec:    codec,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
}

// Resolve loads the account behind a verified subject. Only active accounts have a session.
func (s *SessionResolver) Resolve(ctx context.Context, staffID string) (*staff.Staff, error) {
	if staffID == "" {
		return nil, ErrNoSession
	}

	member, err := s.store.GetByID(ctx, staffID)
	if err != nil {
		return nil, fmt.Errorf("resolve session %s: %w", staffID, err)
	}
	if member == nil || !member.IsActive() {
		return nil, ErrNoSession
	}
	return member, nil
}

// Login looks an account up by email or phone and issues a token for active accounts.
func (s *SessionResolver) Login(ctx context.Context, identifier string) (*LoginResult, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, internal.ErrMissingIdentifier
	}

	method := "phone"
	if strings.Contains(identifier, "@") {
		method = "email"
		identifier = strings.ToLower(identifier)
	}

	member, err := s.store.FindByIdentifier(ctx, identifier)
	if err != nil {
		s.logger.Error("failed to look up staff", "error", err, "method", method)
		return nil, internal.NewInternalError(internal.MsgGenericFailure, err)
	}
	if member == nil {
		return nil, internal.ErrAccountNotFound
	}

	switch member.Status {
	case staff.StatusActive:
	case staff.StatusPending:
		return nil, internal.ErrAccountPending
	default:
		return nil, internal.ErrAccountInactive
	}

	token, err := s.codec.Sign(Payload{
		StaffID:  member.ID,
		Email:    member.Email,
		Role:     string(member.Role),
		Nickname: member.Nickname,
		Company:  string(member.Company),
	})
	if err != nil {
		s.logger.Error("failed to sign token", "error", err, "staff_id", member.ID)
		return nil, internal.NewInternalError(internal.MsgGenericFailure, err)
	}

	now := s.now()
	if err := s.store.TouchLastLogin(ctx, member.ID, now); err != nil {
		s.logger.Warn("failed to update last login", "error", err, "staff_id", member.ID)
	} else {
		member.LastLoginAt = &now
	}

	s.recorder.Record(ctx, member.ID, activity.ActionLogin, map[string]interface{}{"method": method})

	s.logger.Info("staff logged in", "staff_id", member.ID, "method", method)
	return &LoginResult{Token: token, Staff: member}, nil
}
