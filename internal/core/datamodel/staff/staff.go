package staff

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Staff struct {
	ID          string     `gorm:"column:id;type:uuid;primaryKey"`
	FirstName   string     `gorm:"column:first_name;not null"`
	LastName    string     `gorm:"column:last_name;not null"`
	Nickname    string     `gorm:"column:nickname;not null"`
	Email       string     `gorm:"column:email;uniqueIndex;not null"`
	Phone       string     `gorm:"column:phone;uniqueIndex;not null"`
	Company     string     `gorm:"column:company;not null"`
	Role        string     `gorm:"column:role;not null;default:staff"`
	Status      string     `gorm:"column:status;not null;default:pending;index"`
	ApprovedBy  *string    `gorm:"column:approved_by;type:uuid"`
	LastLoginAt *time.Time `gorm:"column:last_login_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Staff) TableName() string {
	return "staff"
}

func (s *Staff) BeforeCreate(_ *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
