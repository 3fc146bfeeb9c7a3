package events

import (
	"time"

	"github.com/google/uuid"
)

const EventTypeActivityRecorded = "activity.recorded"

// ActivityRecordedEvent carries one audit entry to the activity writer.
type ActivityRecordedEvent struct {
	BaseEvent
	StaffID string
	Action  string
	Details map[string]interface{}
}

func NewActivityRecordedEvent(staffID, action string, details map[string]interface{}) *ActivityRecordedEvent {
	if details == nil {
		details = map[string]interface{}{}
	}
	return &ActivityRecordedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.NewString(),
			Type:      EventTypeActivityRecorded,
			Timestamp: time.Now().UTC(),
			Data: map[string]interface{}{
				"staff_id": staffID,
				"action":   action,
			},
		},
		StaffID: staffID,
		Action:  action,
		Details: details,
	}
}
