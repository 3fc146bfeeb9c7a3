package activity

import (
	"time"

	activityDatamodel "github.com/vnphone/staff-portal/internal/core/datamodel/activity"
)

type Action string

const (
	ActionLogin            Action = "login"
	ActionViewDashboard    Action = "view_dashboard"
	ActionViewProduct      Action = "view_product"
	ActionAddToCart        Action = "add_to_cart"
	ActionOpenQuote        Action = "open_quote"
	ActionExportQuote      Action = "export_quote"
	ActionAdminUpdateStaff Action = "admin_update_staff"
)

var allActions = map[Action]struct{}{
	ActionLogin:            {},
	ActionViewDashboard:    {},
	ActionViewProduct:      {},
	ActionAddToCart:        {},
	ActionOpenQuote:        {},
	ActionExportQuote:      {},
	ActionAdminUpdateStaff: {},
}

func (a Action) Valid() bool {
	_, ok := allActions[a]
	return ok
}

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

type StaffSummary struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
	Company  string `json:"company"`
}

type Entry struct {
	ID        string                 `json:"id"`
	StaffID   string                 `json:"staff_id"`
	Action    Action                 `json:"action"`
	Details   map[string]interface{} `json:"details"`
	CreatedAt time.Time              `json:"created_at"`
	Staff     *StaffSummary          `json:"staff"`
}

func ToDataModel(e *Entry) *activityDatamodel.ActivityLog {
	details := e.Details
	if details == nil {
		details = map[string]interface{}{}
	}
	return &activityDatamodel.ActivityLog{
		ID:        e.ID,
		StaffID:   e.StaffID,
		Action:    string(e.Action),
		Details:   details,
		CreatedAt: e.CreatedAt,
	}
}

func FromDataModel(a *activityDatamodel.ActivityLog) *Entry {
	return &Entry{
		ID:        a.ID,
		StaffID:   a.StaffID,
		Action:    Action(a.Action),
		Details:   a.Details,
		CreatedAt: a.CreatedAt,
	}
}
