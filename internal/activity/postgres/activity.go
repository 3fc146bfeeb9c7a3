package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/vnphone/staff-portal/internal/activity"
	activityDatamodel "github.com/vnphone/staff-portal/internal/core/datamodel/activity"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActivityRepository writes through gorm and reads the joined listing with sqlx.
type ActivityRepository struct {
	db   *gorm.DB
	read *sqlx.DB
}

func NewActivityRepository(db *gorm.DB, read *sqlx.DB) activity.RepositoryAPI {
	return &ActivityRepository{db: db, read: read}
}

func (r *ActivityRepository) Create(ctx context.Context, log *activityDatamodel.ActivityLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

type entryRow struct {
	ID            string            `db:"id"`
	StaffID       string            `db:"staff_id"`
	Action        string            `db:"action"`
	Details       datatypes.JSONMap `db:"details"`
	CreatedAt     time.Time         `db:"created_at"`
	StaffNickname sql.NullString    `db:"staff_nickname"`
	StaffCompany  sql.NullString    `db:"staff_company"`
	StaffFound    sql.NullString    `db:"staff_found"`
}

const listQuery = `
SELECT a.id, a.staff_id, a.action, a.details, a.created_at,
       s.id AS staff_found, s.nickname AS staff_nickname, s.company AS staff_company
FROM activity_logs a
LEFT JOIN staff s ON s.id = a.staff_id
ORDER BY a.created_at DESC
LIMIT ?`

func (r *ActivityRepository) List(ctx context.Context, limit int) ([]*activity.Entry, error) {
	var rows []entryRow
	if err := r.read.SelectContext(ctx, &rows, r.read.Rebind(listQuery), limit); err != nil {
		return nil, fmt.Errorf("list activity logs: %w", err)
	}

	entries := make([]*activity.Entry, 0, len(rows))
	for _, row := range rows {
		entry := &activity.Entry{
			ID:        row.ID,
			StaffID:   row.StaffID,
			Action:    activity.Action(row.Action),
			Details:   row.Details,
			CreatedAt: row.CreatedAt,
		}
		if entry.Details == nil {
			entry.Details = map[string]interface{}{}
		}
		if row.StaffFound.Valid {
			entry.Staff = &activity.StaffSummary{
				ID:       row.StaffFound.String,
				Nickname: row.StaffNickname.String,
				Company:  row.StaffCompany.String,
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
