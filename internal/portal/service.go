package portal

import (
	"context"
	"log/slog"

	"github.com/vnphone/staff-portal/internal/activity"
	"github.com/vnphone/staff-portal/internal/staff"
)

type SessionResolverAPI interface {
	Resolve(ctx context.Context, staffID string) (*staff.Staff, error)
}

type OverviewAPI interface {
	Overview(ctx context.Context) (*staff.Overview, error)
}

type Service struct {
	sessions SessionResolverAPI
	staff    OverviewAPI
	recorder activity.RecorderAPI
	sheetURL string
	logger   *slog.Logger
}

func NewService(sessions SessionResolverAPI, overview OverviewAPI, recorder activity.RecorderAPI, sheetURL string, logger *slog.Logger) *Service {
	return &Service{
		sessions: sessions,
		staff:    overview,
		recorder: recorder,
		sheetURL: sheetURL,
		logger:   logger,
	}
}

// Dashboard resolves the caller's account and picks the workspace for their company.
// Errors from the resolver are returned unchanged.
func (s *Service) Dashboard(ctx context.Context, staffID string) (*DashboardResponse, error) {
	member, err := s.sessions.Resolve(ctx, staffID)
	if err != nil {
		return nil, err
	}

	ws := WorkspaceFor(member.Company)
	s.recorder.Record(ctx, member.ID, activity.ActionViewDashboard, map[string]interface{}{
		"catalog": string(ws.Catalog),
	})

	return &DashboardResponse{
		Staff:       member,
		Company:     member.Company,
		Catalog:     ws.Catalog,
		CartEnabled: ws.CartEnabled,
	}, nil
}

func (s *Service) Admin(ctx context.Context) (*AdminResponse, error) {
	o, err := s.staff.Overview(ctx)
	if err != nil {
		return nil, err
	}
	return &AdminResponse{
		Pending:  o.Pending,
		Active:   o.Active,
		Total:    o.Total,
		SheetURL: s.sheetURL,
	}, nil
}
