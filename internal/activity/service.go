package activity

import (
	"context"
	"log/slog"

	"github.com/vnphone/staff-portal/internal"
	activityDatamodel "github.com/vnphone/staff-portal/internal/core/datamodel/activity"
)

type RepositoryAPI interface {
	Create(ctx context.Context, log *activityDatamodel.ActivityLog) error
	// List returns the newest entries first, joined with their author.
	List(ctx context.Context, limit int) ([]*Entry, error)
}

// RecorderAPI is what other modules use to leave an audit trail.
type RecorderAPI interface {
	Record(ctx context.Context, staffID string, action Action, details map[string]interface{})
}

type Service struct {
	repo     RepositoryAPI
	recorder RecorderAPI
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, recorder RecorderAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		recorder: recorder,
		logger:   logger,
	}
}

// ClampLimit applies the default and the ceiling to a requested page size.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

func (s *Service) List(ctx context.Context, limit int) ([]*Entry, error) {
	entries, err := s.repo.List(ctx, ClampLimit(limit))
	if err != nil {
		s.logger.Error("failed to list activity logs", "error", err)
		return nil, internal.NewInternalError(internal.MsgGenericFailure, err)
	}
	if entries == nil {
		entries = []*Entry{}
	}
	return entries, nil
}

// Append validates a client-reported action and records it best effort.
func (s *Service) Append(ctx context.Context, staffID string, dto AppendDTO) error {
	action := Action(dto.Action)
	if !action.Valid() {
		return internal.ErrInvalidAction
	}
	s.recorder.Record(ctx, staffID, action, dto.Details)
	return nil
}
