package auth

import "github.com/vnphone/staff-portal/internal/staff"

const (
	MsgLoggedIn  = "เข้าสู่ระบบสำเร็จ"
	MsgLoggedOut = "ออกจากระบบแล้ว"
)

// LoginDTO takes either an email address or a phone number.
type LoginDTO struct {
	Identifier string `json:"identifier"`
}

type SessionStaff struct {
	ID       string        `json:"id"`
	Nickname string        `json:"nickname"`
	Role     staff.Role    `json:"role"`
	Company  staff.Company `json:"company"`
}

type LoginResponse struct {
	Message string       `json:"message"`
	Staff   SessionStaff `json:"staff"`
}

type LogoutResponse struct {
	Message string `json:"message"`
}

type MeResponse struct {
	Staff *staff.Staff `json:"staff"`
}
