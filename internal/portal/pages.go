package portal

import (
	"github.com/vnphone/staff-portal/internal/catalog"
	"github.com/vnphone/staff-portal/internal/staff"
)

type Field struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Type        string `json:"type"`
	Placeholder string `json:"placeholder,omitempty"`
	Required    bool   `json:"required"`
}

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// PageDescriptor tells the presentation layer what a form page contains and where it submits.
type PageDescriptor struct {
	Page      string   `json:"page"`
	Title     string   `json:"title"`
	SubmitTo  string   `json:"submit_to"`
	Fields    []Field  `json:"fields"`
	Companies []Option `json:"companies,omitempty"`
}

var LoginPage = PageDescriptor{
	Page:     "login",
	Title:    "เข้าสู่ระบบ",
	SubmitTo: "/api/auth/login",
	Fields: []Field{
		{Name: "identifier", Label: "อีเมล หรือ เบอร์โทร", Type: "text", Placeholder: "email@example.com หรือ 0812345678", Required: true},
	},
}

var RegisterPage = PageDescriptor{
	Page:     "register",
	Title:    "สมัครใช้งาน",
	SubmitTo: "/api/auth/register",
	Fields: []Field{
		{Name: "company", Label: "บริษัท", Type: "choice", Required: true},
		{Name: "first_name", Label: "ชื่อจริง", Type: "text", Required: true},
		{Name: "last_name", Label: "นามสกุล", Type: "text", Required: true},
		{Name: "nickname", Label: "ชื่อเล่น", Type: "text", Required: true},
		{Name: "email", Label: "อีเมล", Type: "email", Placeholder: "email@example.com", Required: true},
		{Name: "phone", Label: "เบอร์โทร", Type: "tel", Placeholder: "0812345678", Required: true},
	},
	Companies: []Option{
		{Value: string(staff.CompanyVNPhone), Label: "VN Phone"},
		{Value: string(staff.CompanySiamchai), Label: "สยามชัย"},
	},
}

// Workspace is what a company's staff work from on the dashboard.
type Workspace struct {
	Catalog     catalog.Kind
	CartEnabled bool
}

// WorkspaceFor maps company affiliation to its catalog. Siamchai sells for cash from a
// cart; everyone else works the installment table.
func WorkspaceFor(company staff.Company) Workspace {
	if company == staff.CompanySiamchai {
		return Workspace{Catalog: catalog.KindCash, CartEnabled: true}
	}
	return Workspace{Catalog: catalog.KindInstallment}
}

type DashboardResponse struct {
	Staff       *staff.Staff  `json:"staff"`
	Company     staff.Company `json:"company"`
	Catalog     catalog.Kind  `json:"catalog"`
	CartEnabled bool          `json:"cart_enabled"`
}

type AdminResponse struct {
	Pending  int64  `json:"pending"`
	Active   int64  `json:"active"`
	Total    int64  `json:"total"`
	SheetURL string `json:"sheet_url"`
}
