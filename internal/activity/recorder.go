package activity

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vnphone/staff-portal/internal/core/events"
)

// Recorder appends audit entries off the request path. Record never fails the caller;
// write errors end up in the log only.
type Recorder struct {
	bus    *events.EventBus
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewRecorder(bus *events.EventBus, repo RepositoryAPI, logger *slog.Logger) *Recorder {
	r := &Recorder{bus: bus, repo: repo, logger: logger}
	bus.Subscribe(events.EventTypeActivityRecorded, r.handleRecorded)
	return r
}

func (r *Recorder) Record(ctx context.Context, staffID string, action Action, details map[string]interface{}) {
	if staffID == "" || !action.Valid() {
		r.logger.Warn("dropping activity entry", "staff_id", staffID, "action", action)
		return
	}
	r.bus.Publish(ctx, events.NewActivityRecordedEvent(staffID, string(action), details))
}

func (r *Recorder) handleRecorded(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.ActivityRecordedEvent)
	if !ok {
		return fmt.Errorf("expected ActivityRecordedEvent, got %T", event)
	}

	entry := &Entry{
		StaffID:   e.StaffID,
		Action:    Action(e.Action),
		Details:   e.Details,
		CreatedAt: e.OccurredAt(),
	}
	if err := r.repo.Create(ctx, ToDataModel(entry)); err != nil {
		return fmt.Errorf("write activity %s for %s: %w", e.Action, e.StaffID, err)
	}
	return nil
}
