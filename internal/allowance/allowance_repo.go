package allowance

import (
	"context"
	"errors"
	"fmt"
	"time"

	allowanceerrors "github.com/ymnkynp/monkey-timeoff/internal/allowance/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=allowance_repo.go -destination=mock/allowance_repo_mock.go -package=mock
type Repository interface {
	GetEntitlement(ctx context.Context, employeeID string, year int) (*Entitlement, error)
	UpsertEntitlement(ctx context.Context, e *Entitlement) error
	ApprovedDays(ctx context.Context, employeeID string, year int) (int, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetEntitlement(ctx context.Context, employeeID string, year int) (*Entitlement, error) {
	var e Entitlement
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("year = ?", year).
		First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, allowanceerrors.ErrEntitlementNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *repository) UpsertEntitlement(ctx context.Context, e *Entitlement) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "year"}},
			DoUpdates: clause.AssignmentColumns([]string{"days", "updated_at"}),
		}).
		Create(e).Error
}

// ApprovedDays sums the booked days of APPROVED deductible leaves starting
// in the given year. A leave spanning new year is charged to its start
// year. Types flagged non-deductible (sick leave, typically) are skipped;
// a code with no leave_types row counts as deductible.
func (r *repository) ApprovedDays(ctx context.Context, employeeID string, year int) (int, error) {
	yearStart := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC)

	var total int64
	err := r.db.WithContext(ctx).
		Table("leaves").
		Joins("LEFT JOIN leave_types ON leave_types.code = leaves.leave_type").
		Where("leaves.employee_id = ?", employeeID).
		Where("leaves.status = ?", "APPROVED").
		Where("leaves.start_date BETWEEN ? AND ?", yearStart, yearEnd).
		Where("leaves.deleted_at IS NULL").
		Where("leave_types.deductible IS NULL OR leave_types.deductible").
		Select("COALESCE(SUM(leaves.total_days), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return int(total), nil
}

// BalanceKey is the redis key for one employee-year balance. The leave
// service deletes it whenever a transition touches APPROVED.
func BalanceKey(employeeID string, year int) string {
	return fmt.Sprintf("allowance:balance:%s:%d", employeeID, year)
}
