package leave

import (
	"context"
	"database/sql"
	"errors"
	"time"

	leaveerrors "github.com/ymnkynp/monkey-timeoff/internal/leave/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	FindByID(ctx context.Context, id string) (*Leave, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]Leave, error)
	FindApprovedInRange(ctx context.Context, start, end time.Time) ([]Leave, error)
	Update(ctx context.Context, l *Leave) error
	CreateApprovalRecord(ctx context.Context, r *ApprovalRecord) error
	UpdateApprovalRecord(ctx context.Context, r *ApprovalRecord) error
	FindApprovalRecords(ctx context.Context, leaveID string) ([]ApprovalRecord, error)
	FindPendingByApprover(ctx context.Context, approverID string) ([]Leave, error)
	HasApprovedOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx rebinds the repository onto an open transaction so that leave and
// approval-record writes commit or roll back together.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	db := r.db.Session(&gorm.Session{NewDB: true})
	db.Statement.ConnPool = tx
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Leave, error) {
	var l Leave
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrLeaveNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]Leave, error) {
	var leaves []Leave
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("start_date DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindApprovedInRange(ctx context.Context, start, end time.Time) ([]Leave, error) {
	var leaves []Leave
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusApproved).
		Where("NOT (end_date < ? OR start_date > ?)", start, end).
		Order("start_date ASC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) Update(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *repository) CreateApprovalRecord(ctx context.Context, rec *ApprovalRecord) error {
	err := r.db.WithContext(ctx).Create(rec).Error
	return mapDuplicateRecord(err)
}

func (r *repository) UpdateApprovalRecord(ctx context.Context, rec *ApprovalRecord) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *repository) FindApprovalRecords(ctx context.Context, leaveID string) ([]ApprovalRecord, error) {
	var records []ApprovalRecord
	err := r.db.WithContext(ctx).
		Where("leave_id = ?", leaveID).
		Order("approver_role ASC").
		Find(&records).Error
	return records, err
}

func (r *repository) FindPendingByApprover(ctx context.Context, approverID string) ([]Leave, error) {
	var leaves []Leave
	err := r.db.WithContext(ctx).
		Joins("JOIN approval_records ON approval_records.leave_id = leaves.id").
		Where("approval_records.approver_id = ?", approverID).
		Where("approval_records.decision_status = ?", DecisionPending).
		Where("leaves.deleted_at IS NULL").
		Order("leaves.start_date ASC").
		Find(&leaves).Error
	return leaves, err
}

// HasApprovedOverlap reports whether the employee already holds an APPROVED
// leave intersecting [start, end], bounds inclusive.
func (r *repository) HasApprovedOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Leave{}).
		Where("employee_id = ?", employeeID).
		Where("status = ?", StatusApproved).
		Where("NOT (end_date < ? OR start_date > ?)", start, end).
		Count(&count).Error
	return count > 0, err
}

// mapDuplicateRecord translates the (leave_id, approver_role) unique
// violation into the stable conflict error.
func mapDuplicateRecord(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return leaveerrors.ErrDuplicateApprovalRecord
	}
	return err
}
