package department

import (
	"context"

	departmenterrors "github.com/ymnkynp/monkey-timeoff/internal/department/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EmployeeDirectory is the slice of the employee module this package
// needs to vet a manager assignment.
type EmployeeDirectory interface {
	IsActive(ctx context.Context, id string) (bool, error)
}

//go:generate mockgen -source=department_service.go -destination=mock/department_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetAll(ctx context.Context) ([]DepartmentResponse, error)
	GetByID(ctx context.Context, id string) (DepartmentResponse, error)
	AssignManager(ctx context.Context, departmentID string, req AssignManagerRequest) (DepartmentResponse, error)
}

type service struct {
	repo      Repository
	directory EmployeeDirectory
	logger    *zap.Logger
}

func NewService(repo Repository, directory EmployeeDirectory, logger ...*zap.Logger) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
	}
	return &service{repo: repo, directory: directory, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error) {
	d := &Department{
		ID:   uuid.New(),
		Name: req.Name,
	}

	if err := s.repo.Create(ctx, d); err != nil {
		s.logger.Error("create department persist failed", zap.Error(err))
		return DepartmentResponse{}, err
	}

	s.logger.Info("create department success", zap.String("department_id", d.ID.String()))
	return mapToResponse(*d), nil
}

func (s *service) GetAll(ctx context.Context) ([]DepartmentResponse, error) {
	departments, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(departments), nil
}

func (s *service) GetByID(ctx context.Context, id string) (DepartmentResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return DepartmentResponse{}, departmenterrors.ErrInvalidDepartmentID
	}
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return DepartmentResponse{}, err
	}
	return mapToResponse(*d), nil
}

// AssignManager sets the approver for every employee of the department.
// An inactive or unknown manager is rejected here so leave submissions
// only ever resolve against live approvers.
func (s *service) AssignManager(ctx context.Context, departmentID string, req AssignManagerRequest) (DepartmentResponse, error) {
	if _, err := uuid.Parse(departmentID); err != nil {
		return DepartmentResponse{}, departmenterrors.ErrInvalidDepartmentID
	}

	d, err := s.repo.FindByID(ctx, departmentID)
	if err != nil {
		return DepartmentResponse{}, err
	}

	if req.ManagerID == "" {
		d.ManagerID = nil
	} else {
		managerUUID, err := uuid.Parse(req.ManagerID)
		if err != nil {
			return DepartmentResponse{}, departmenterrors.ErrInvalidManagerID
		}

		active, err := s.directory.IsActive(ctx, req.ManagerID)
		if err != nil {
			return DepartmentResponse{}, err
		}
		if !active {
			s.logger.Warn("assign manager rejected",
				zap.String("department_id", departmentID),
				zap.String("manager_id", req.ManagerID),
			)
			return DepartmentResponse{}, departmenterrors.ErrManagerNotEligible
		}
		d.ManagerID = &managerUUID
	}

	if err := s.repo.Update(ctx, d); err != nil {
		s.logger.Error("assign manager persist failed", zap.Error(err))
		return DepartmentResponse{}, err
	}

	s.logger.Info("assign manager success",
		zap.String("department_id", departmentID),
		zap.String("manager_id", req.ManagerID),
	)
	return mapToResponse(*d), nil
}

func mapToResponse(d Department) DepartmentResponse {
	resp := DepartmentResponse{
		ID:   d.ID.String(),
		Name: d.Name,
	}
	if d.ManagerID != nil {
		id := d.ManagerID.String()
		resp.ManagerID = &id
	}
	return resp
}

func mapToListResponse(departments []Department) []DepartmentResponse {
	out := make([]DepartmentResponse, 0, len(departments))
	for _, d := range departments {
		out = append(out, mapToResponse(d))
	}
	return out
}
