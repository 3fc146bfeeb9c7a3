package activity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ActivityLog struct {
	ID        string            `gorm:"column:id;type:uuid;primaryKey"`
	StaffID   string            `gorm:"column:staff_id;type:uuid;not null;index"`
	Action    string            `gorm:"column:action;not null"`
	Details   datatypes.JSONMap `gorm:"column:details"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime;index"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}

func (a *ActivityLog) BeforeCreate(_ *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
