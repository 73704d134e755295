package employee

import (
	"context"

	employeeerrors "github.com/ymnkynp/monkey-timeoff/internal/employee/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	AssignStandin(ctx context.Context, employeeID string, req AssignStandinRequest) (EmployeeResponse, error)
	SetActive(ctx context.Context, employeeID string, active bool) (EmployeeResponse, error)

	// Directory lookups consumed by the leave approval flow.
	GetManager(ctx context.Context, employeeID string) (uuid.UUID, error)
	GetStandin(ctx context.Context, employeeID string) (*uuid.UUID, error)
	IsActive(ctx context.Context, id string) (bool, error)
	AutoApproveEnabled(ctx context.Context, employeeID string) (bool, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	s.logger.Debug("create employee requested", zap.String("email", req.Email))

	e := &Employee{
		ID:       uuid.New(),
		FullName: req.FullName,
		Email:    req.Email,
		Active:   true,
	}
	if req.DepartmentID != "" {
		departmentUUID, err := uuid.Parse(req.DepartmentID)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
		}
		e.DepartmentID = &departmentUUID
	}

	if err := s.repo.Create(ctx, e); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.logger.Info("create employee success", zap.String("employee_id", e.ID.String()))
	return mapToResponse(*e), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(employees), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, err
	}
	return mapToResponse(*e), nil
}

// AssignStandin validates the standin at configuration time: self-standin
// and inactive or missing standins are rejected here, so approver
// resolution never has to.
func (s *service) AssignStandin(ctx context.Context, employeeID string, req AssignStandinRequest) (EmployeeResponse, error) {
	s.logger.Debug("assign standin requested",
		zap.String("employee_id", employeeID),
		zap.String("standin_id", req.StandinID),
	)

	if _, err := uuid.Parse(employeeID); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	e, err := s.repo.FindByID(ctx, employeeID)
	if err != nil {
		return EmployeeResponse{}, err
	}

	if req.StandinID == "" {
		e.StandinID = nil
	} else {
		standinUUID, err := uuid.Parse(req.StandinID)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidStandinID
		}
		if standinUUID == e.ID {
			s.logger.Warn("assign standin rejected: self-reference",
				zap.String("employee_id", employeeID),
			)
			return EmployeeResponse{}, employeeerrors.ErrSelfStandinNotAllowed
		}

		standin, err := s.repo.FindByID(ctx, req.StandinID)
		if err != nil {
			if err == employeeerrors.ErrEmployeeNotFound {
				return EmployeeResponse{}, employeeerrors.ErrStandinNotFound
			}
			return EmployeeResponse{}, err
		}
		if !standin.Active {
			return EmployeeResponse{}, employeeerrors.ErrStandinInactive
		}

		e.StandinID = &standinUUID
	}

	if err := s.repo.Update(ctx, e); err != nil {
		s.logger.Error("assign standin persist failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.logger.Info("assign standin success",
		zap.String("employee_id", employeeID),
		zap.String("standin_id", req.StandinID),
	)
	return mapToResponse(*e), nil
}

func (s *service) SetActive(ctx context.Context, employeeID string, active bool) (EmployeeResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	e, err := s.repo.FindByID(ctx, employeeID)
	if err != nil {
		return EmployeeResponse{}, err
	}

	e.Active = active
	if err := s.repo.Update(ctx, e); err != nil {
		s.logger.Error("set active persist failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.logger.Info("set active success",
		zap.String("employee_id", employeeID),
		zap.Bool("active", active),
	)
	return mapToResponse(*e), nil
}

func (s *service) GetManager(ctx context.Context, employeeID string) (uuid.UUID, error) {
	managerID, err := s.repo.GetDepartmentManagerID(ctx, employeeID)
	if err != nil {
		return uuid.Nil, err
	}
	if managerID == nil {
		return uuid.Nil, nil
	}
	return *managerID, nil
}

func (s *service) GetStandin(ctx context.Context, employeeID string) (*uuid.UUID, error) {
	e, err := s.repo.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return e.StandinID, nil
}

func (s *service) IsActive(ctx context.Context, id string) (bool, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == employeeerrors.ErrEmployeeNotFound {
			// A dangling standin id behaves like an inactive one.
			return false, nil
		}
		return false, err
	}
	return e.Active, nil
}

func (s *service) AutoApproveEnabled(ctx context.Context, employeeID string) (bool, error) {
	e, err := s.repo.FindByID(ctx, employeeID)
	if err != nil {
		return false, err
	}
	return e.AutoApproveLeave, nil
}

func mapToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:               e.ID.String(),
		FullName:         e.FullName,
		Email:            e.Email,
		Active:           e.Active,
		AutoApproveLeave: e.AutoApproveLeave,
	}
	if e.DepartmentID != nil {
		v := e.DepartmentID.String()
		resp.DepartmentID = &v
	}
	if e.StandinID != nil {
		v := e.StandinID.String()
		resp.StandinID = &v
	}
	return resp
}

func mapToListResponse(employees []Employee) []EmployeeResponse {
	resp := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		resp[i] = mapToResponse(e)
	}
	return resp
}
