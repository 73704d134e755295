package employee

import (
	"context"
	"errors"

	employeeerrors "github.com/ymnkynp/monkey-timeoff/internal/employee/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, e *Employee) error
	FindAll(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	Update(ctx context.Context, e *Employee) error
	GetDepartmentManagerID(ctx context.Context, employeeID string) (*uuid.UUID, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, e *Employee) error {
	err := r.db.WithContext(ctx).Create(e).Error
	return mapUniqueEmail(err)
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).Order("full_name ASC").Find(&employees).Error
	return employees, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employeeerrors.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *repository) Update(ctx context.Context, e *Employee) error {
	err := r.db.WithContext(ctx).Save(e).Error
	return mapUniqueEmail(err)
}

// GetDepartmentManagerID resolves the manager through the employee's
// department. Returns nil when the employee has no department or the
// department has no manager configured.
func (r *repository) GetDepartmentManagerID(ctx context.Context, employeeID string) (*uuid.UUID, error) {
	var row struct {
		ManagerID *uuid.UUID
	}
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("departments.manager_id").
		Joins("JOIN departments ON departments.id = employees.department_id").
		Where("employees.id = ?", employeeID).
		Where("departments.deleted_at IS NULL").
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return row.ManagerID, nil
}

func mapUniqueEmail(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return employeeerrors.ErrDuplicateEmail
	}
	return err
}
