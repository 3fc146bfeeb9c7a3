package staff

import (
	"strings"

	"github.com/vnphone/staff-portal/internal"
	"github.com/vnphone/staff-portal/internal/core/common/validation"
)

const MsgRegistered = "สมัครสำเร็จ รอ admin อนุมัติ"

type RegisterDTO struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Nickname  string `json:"nickname"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Company   string `json:"company"`
}

// Validate trims every field in place and lower-cases the email.
func (d *RegisterDTO) Validate() error {
	d.FirstName = strings.TrimSpace(d.FirstName)
	d.LastName = strings.TrimSpace(d.LastName)
	d.Nickname = strings.TrimSpace(d.Nickname)
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	d.Phone = strings.TrimSpace(d.Phone)
	d.Company = strings.TrimSpace(d.Company)

	required := validation.NewValidator()
	required.Field("first_name", d.FirstName).Required()
	required.Field("last_name", d.LastName).Required()
	required.Field("nickname", d.Nickname).Required()
	required.Field("email", d.Email).Required()
	required.Field("phone", d.Phone).Required()
	required.Field("company", d.Company).Required()
	if err := required.Validate(internal.ErrMissingFields); err != nil {
		return err
	}

	company := validation.NewValidator()
	company.Field("company", d.Company).OneOf(string(CompanyVNPhone), string(CompanySiamchai))
	if err := company.Validate(internal.ErrInvalidCompany); err != nil {
		return err
	}
	return nil
}

type UpdateStaffDTO struct {
	Status *string `json:"status,omitempty"`
	Role   *string `json:"role,omitempty"`
}

func (d UpdateStaffDTO) Validate() error {
	if d.Status == nil && d.Role == nil {
		return internal.ErrNothingToUpdate
	}
	if d.Status != nil && !Status(*d.Status).Valid() {
		return internal.ErrInvalidStatus
	}
	if d.Role != nil && !Role(*d.Role).Valid() {
		return internal.ErrInvalidRole
	}
	return nil
}

type RegisteredStaff struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
	Status   Status `json:"status"`
}

type RegisterResponse struct {
	Message string          `json:"message"`
	Staff   RegisteredStaff `json:"staff"`
}

type ListResponse struct {
	Staff []*Staff `json:"staff"`
}

type UpdateResponse struct {
	Staff *Staff `json:"staff"`
}
