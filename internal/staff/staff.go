package staff

import (
	"time"

	staffDatamodel "github.com/vnphone/staff-portal/internal/core/datamodel/staff"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusActive, StatusInactive:
		return true
	}
	return false
}

type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStaff
}

// Company decides which catalog a member of staff works from.
type Company string

const (
	CompanyVNPhone  Company = "vnphone"
	CompanySiamchai Company = "siamchai"
)

func (c Company) Valid() bool {
	return c == CompanyVNPhone || c == CompanySiamchai
}

type Staff struct {
	ID          string     `json:"id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Nickname    string     `json:"nickname"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Company     Company    `json:"company"`
	Role        Role       `json:"role"`
	Status      Status     `json:"status"`
	ApprovedBy  *string    `json:"approved_by"`
	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (s *Staff) IsActive() bool {
	return s.Status == StatusActive
}

func (s *Staff) IsAdmin() bool {
	return s.Role == RoleAdmin
}

func ToDataModel(s *Staff) *staffDatamodel.Staff {
	return &staffDatamodel.Staff{
		ID:          s.ID,
		FirstName:   s.FirstName,
		LastName:    s.LastName,
		Nickname:    s.Nickname,
		Email:       s.Email,
		Phone:       s.Phone,
		Company:     string(s.Company),
		Role:        string(s.Role),
		Status:      string(s.Status),
		ApprovedBy:  s.ApprovedBy,
		LastLoginAt: s.LastLoginAt,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func FromDataModel(s *staffDatamodel.Staff) *Staff {
	return &Staff{
		ID:          s.ID,
		FirstName:   s.FirstName,
		LastName:    s.LastName,
		Nickname:    s.Nickname,
		Email:       s.Email,
		Phone:       s.Phone,
		Company:     Company(s.Company),
		Role:        Role(s.Role),
		Status:      Status(s.Status),
		ApprovedBy:  s.ApprovedBy,
		LastLoginAt: s.LastLoginAt,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// Overview is the headcount shown on the admin page.
type Overview struct {
	Pending  int64 `json:"pending"`
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
	Total    int64 `json:"total"`
}
