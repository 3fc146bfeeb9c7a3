package postgres

import (
	"context"
	"errors"
	"time"

	staffDatamodel "github.com/vnphone/staff-portal/internal/core/datamodel/staff"
	"github.com/vnphone/staff-portal/internal/staff"
	"gorm.io/gorm"
)

// StaffRepository implements staff.RepositoryAPI using GORM. The connection is expected
// to be opened with TranslateError so unique violations surface as gorm.ErrDuplicatedKey.
type StaffRepository struct {
	db *gorm.DB
}

func NewStaffRepository(db *gorm.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

func (r *StaffRepository) Create(ctx context.Context, s *staffDatamodel.Staff) error {
	err := r.db.WithContext(ctx).Create(s).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return staff.ErrDuplicateAccount
	}
	return err
}

func (r *StaffRepository) first(ctx context.Context, query string, args ...interface{}) (*staff.Staff, error) {
	var row staffDatamodel.Staff
	err := r.db.WithContext(ctx).Where(query, args...).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return staff.FromDataModel(&row), nil
}

func (r *StaffRepository) GetByID(ctx context.Context, id string) (*staff.Staff, error) {
	return r.first(ctx, "id = ?", id)
}

// FindByIdentifier matches either the email or the phone column.
func (r *StaffRepository) FindByIdentifier(ctx context.Context, identifier string) (*staff.Staff, error) {
	return r.first(ctx, "email = ? OR phone = ?", identifier, identifier)
}

func (r *StaffRepository) exists(ctx context.Context, column, value string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&staffDatamodel.Staff{}).
		Where(column+" = ?", value).
		Count(&count).Error
	return count > 0, err
}

func (r *StaffRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email", email)
}

func (r *StaffRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	return r.exists(ctx, "phone", phone)
}

func (r *StaffRepository) List(ctx context.Context) ([]*staff.Staff, error) {
	var rows []*staffDatamodel.Staff
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	members := make([]*staff.Staff, 0, len(rows))
	for _, row := range rows {
		members = append(members, staff.FromDataModel(row))
	}
	return members, nil
}

func (r *StaffRepository) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	fields := make(map[string]interface{}, len(updates)+1)
	for k, v := range updates {
		fields[k] = v
	}
	fields["updated_at"] = time.Now()

	return r.db.WithContext(ctx).
		Model(&staffDatamodel.Staff{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *StaffRepository) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&staffDatamodel.Staff{}).
		Where("id = ?", id).
		Update("last_login_at", at).Error
}

func (r *StaffRepository) CountByStatus(ctx context.Context) (map[staff.Status]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&staffDatamodel.Staff{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[staff.Status]int64, len(rows))
	for _, row := range rows {
		counts[staff.Status(row.Status)] = row.Count
	}
	return counts, nil
}
