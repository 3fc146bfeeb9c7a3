package staff

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/vnphone/staff-portal/internal"
	"github.com/vnphone/staff-portal/internal/activity"
	staffDatamodel "github.com/vnphone/staff-portal/internal/core/datamodel/staff"
)

// ErrDuplicateAccount is returned by repositories when a unique column collides on insert.
var ErrDuplicateAccount = errors.New("staff account already exists")

// RepositoryAPI lookups return nil, nil when no row matches.
type RepositoryAPI interface {
	Create(ctx context.Context, s *staffDatamodel.Staff) error
	GetByID(ctx context.Context, id string) (*Staff, error)
	FindByIdentifier(ctx context.Context, identifier string) (*Staff, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	List(ctx context.Context) ([]*Staff, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) error
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
	CountByStatus(ctx context.Context) (map[Status]int64, error)
}

type Service struct {
	repo     RepositoryAPI
	recorder activity.RecorderAPI
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, recorder activity.RecorderAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		recorder: recorder,
		logger:   logger,
	}
}

// Register creates a pending staff account awaiting admin approval.
func (s *Service) Register(ctx context.Context, dto RegisterDTO) (*Staff, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	taken, err := s.repo.ExistsByEmail(ctx, dto.Email)
	if err != nil {
		s.logger.Error("failed to check email", "error", err)
		return nil, internal.ErrRegistrationFailed.WithCause(err)
	}
	if taken {
		return nil, internal.ErrEmailTaken
	}

	taken, err = s.repo.ExistsByPhone(ctx, dto.Phone)
	if err != nil {
		s.logger.Error("failed to check phone", "error", err)
		return nil, internal.ErrRegistrationFailed.WithCause(err)
	}
	if taken {
		return nil, internal.ErrPhoneTaken
	}

	record := &staffDatamodel.Staff{
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
		Nickname:  dto.Nickname,
		Email:     dto.Email,
		Phone:     dto.Phone,
		Company:   dto.Company,
		Role:      string(RoleStaff),
		Status:    string(StatusPending),
	}
	if err := s.repo.Create(ctx, record); err != nil {
		if errors.Is(err, ErrDuplicateAccount) {
			// Lost a race with a concurrent registration.
			if phoneTaken, _ := s.repo.ExistsByPhone(ctx, dto.Phone); phoneTaken {
				return nil, internal.ErrPhoneTaken
			}
			return nil, internal.ErrEmailTaken
		}
		s.logger.Error("failed to create staff", "error", err, "email", dto.Email)
		return nil, internal.ErrRegistrationFailed.WithCause(err)
	}

	s.logger.Info("staff registered", "staff_id", record.ID, "company", record.Company)
	return FromDataModel(record), nil
}

// List returns every account, newest first.
func (s *Service) List(ctx context.Context) ([]*Staff, error) {
	members, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list staff", "error", err)
		return nil, internal.NewInternalError(internal.MsgGenericFailure, err)
	}
	if members == nil {
		members = []*Staff{}
	}
	return members, nil
}

// Update applies an admin's status and role changes to another account.
func (s *Service) Update(ctx context.Context, adminID, id string, dto UpdateStaffDTO) (*Staff, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	target, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to load staff", "error", err, "staff_id", id)
		return nil, internal.NewInternalError(internal.MsgGenericFailure, err)
	}
	if target == nil {
		return nil, internal.ErrStaffNotFound
	}

	resulting := target.Status
	if dto.Status != nil {
		resulting = Status(*dto.Status)
	}
	if dto.Role != nil && resulting != StatusActive {
		return nil, internal.ErrRoleNeedsActive
	}

	updates := map[string]interface{}{}
	if dto.Status != nil {
		updates["status"] = *dto.Status
		if resulting == StatusActive && adminID != "" {
			updates["approved_by"] = adminID
		}
	}
	if dto.Role != nil {
		updates["role"] = *dto.Role
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		s.logger.Error("failed to update staff", "error", err, "staff_id", id)
		return nil, internal.NewInternalError(internal.MsgGenericFailure, err)
	}

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil || updated == nil {
		s.logger.Error("failed to reload staff", "error", err, "staff_id", id)
		return nil, internal.NewInternalError(internal.MsgGenericFailure, err)
	}

	s.recorder.Record(ctx, adminID, activity.ActionAdminUpdateStaff, map[string]interface{}{
		"target_staff_id": id,
		"updates":         updates,
	})

	s.logger.Info("staff updated", "staff_id", id, "admin_id", adminID, "status", updated.Status, "role", updated.Role)
	return updated, nil
}

func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		s.logger.Error("failed to count staff", "error", err)
		return nil, internal.NewInternalError(internal.MsgGenericFailure, err)
	}

	o := &Overview{
		Pending:  counts[StatusPending],
		Active:   counts[StatusActive],
		Inactive: counts[StatusInactive],
	}
	for _, n := range counts {
		o.Total += n
	}
	return o, nil
}
