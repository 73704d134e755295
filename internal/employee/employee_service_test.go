package employee_test

import (
	"context"
	"testing"

	"github.com/ymnkynp/monkey-timeoff/internal/employee"
	employeeerrors "github.com/ymnkynp/monkey-timeoff/internal/employee/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeEmployeeRepository struct {
	createFn                 func(ctx context.Context, e *employee.Employee) error
	findAllFn                func(ctx context.Context) ([]employee.Employee, error)
	findByIDFn               func(ctx context.Context, id string) (*employee.Employee, error)
	updateFn                 func(ctx context.Context, e *employee.Employee) error
	getDepartmentManagerIDFn func(ctx context.Context, employeeID string) (*uuid.UUID, error)
}

func (f *fakeEmployeeRepository) Create(ctx context.Context, e *employee.Employee) error {
	if f.createFn != nil {
		return f.createFn(ctx, e)
	}
	return nil
}

func (f *fakeEmployeeRepository) FindAll(ctx context.Context) ([]employee.Employee, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, employeeerrors.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, e *employee.Employee) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, e)
	}
	return nil
}

func (f *fakeEmployeeRepository) GetDepartmentManagerID(ctx context.Context, employeeID string) (*uuid.UUID, error) {
	if f.getDepartmentManagerIDFn != nil {
		return f.getDepartmentManagerIDFn(ctx, employeeID)
	}
	return nil, nil
}

func TestEmployeeService_AssignStandin(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()
	standinID := uuid.New()

	employeesByID := func(people map[uuid.UUID]*employee.Employee) func(ctx context.Context, id string) (*employee.Employee, error) {
		return func(ctx context.Context, id string) (*employee.Employee, error) {
			if e, ok := people[uuid.MustParse(id)]; ok {
				copied := *e
				return &copied, nil
			}
			return nil, employeeerrors.ErrEmployeeNotFound
		}
	}

	t.Run("success", func(t *testing.T) {
		repo := &fakeEmployeeRepository{
			findByIDFn: employeesByID(map[uuid.UUID]*employee.Employee{
				employeeID: {ID: employeeID, Active: true},
				standinID:  {ID: standinID, Active: true},
			}),
		}
		var updated *employee.Employee
		repo.updateFn = func(ctx context.Context, e *employee.Employee) error {
			updated = e
			return nil
		}
		svc := employee.NewService(repo)

		resp, err := svc.AssignStandin(ctx, employeeID.String(), employee.AssignStandinRequest{StandinID: standinID.String()})

		assert.NoError(t, err)
		assert.Equal(t, standinID.String(), *resp.StandinID)
		assert.Equal(t, standinID, *updated.StandinID)
	})

	t.Run("success empty standin clears assignment", func(t *testing.T) {
		existing := standinID
		repo := &fakeEmployeeRepository{
			findByIDFn: employeesByID(map[uuid.UUID]*employee.Employee{
				employeeID: {ID: employeeID, Active: true, StandinID: &existing},
			}),
		}
		svc := employee.NewService(repo)

		resp, err := svc.AssignStandin(ctx, employeeID.String(), employee.AssignStandinRequest{})

		assert.NoError(t, err)
		assert.Nil(t, resp.StandinID)
	})

	t.Run("negative self standin", func(t *testing.T) {
		repo := &fakeEmployeeRepository{
			findByIDFn: employeesByID(map[uuid.UUID]*employee.Employee{
				employeeID: {ID: employeeID, Active: true},
			}),
		}
		svc := employee.NewService(repo)

		_, err := svc.AssignStandin(ctx, employeeID.String(), employee.AssignStandinRequest{StandinID: employeeID.String()})

		assert.ErrorIs(t, err, employeeerrors.ErrSelfStandinNotAllowed)
	})

	t.Run("negative unknown standin", func(t *testing.T) {
		repo := &fakeEmployeeRepository{
			findByIDFn: employeesByID(map[uuid.UUID]*employee.Employee{
				employeeID: {ID: employeeID, Active: true},
			}),
		}
		svc := employee.NewService(repo)

		_, err := svc.AssignStandin(ctx, employeeID.String(), employee.AssignStandinRequest{StandinID: uuid.NewString()})

		assert.ErrorIs(t, err, employeeerrors.ErrStandinNotFound)
	})

	t.Run("negative inactive standin", func(t *testing.T) {
		repo := &fakeEmployeeRepository{
			findByIDFn: employeesByID(map[uuid.UUID]*employee.Employee{
				employeeID: {ID: employeeID, Active: true},
				standinID:  {ID: standinID, Active: false},
			}),
		}
		svc := employee.NewService(repo)

		_, err := svc.AssignStandin(ctx, employeeID.String(), employee.AssignStandinRequest{StandinID: standinID.String()})

		assert.ErrorIs(t, err, employeeerrors.ErrStandinInactive)
	})
}

func TestEmployeeService_DirectoryLookups(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()
	managerID := uuid.New()

	t.Run("manager resolves through department", func(t *testing.T) {
		repo := &fakeEmployeeRepository{
			getDepartmentManagerIDFn: func(ctx context.Context, eid string) (*uuid.UUID, error) {
				assert.Equal(t, employeeID.String(), eid)
				return &managerID, nil
			},
		}
		svc := employee.NewService(repo)

		got, err := svc.GetManager(ctx, employeeID.String())

		assert.NoError(t, err)
		assert.Equal(t, managerID, got)
	})

	t.Run("no manager configured resolves to nil uuid", func(t *testing.T) {
		svc := employee.NewService(&fakeEmployeeRepository{})

		got, err := svc.GetManager(ctx, employeeID.String())

		assert.NoError(t, err)
		assert.Equal(t, uuid.Nil, got)
	})

	t.Run("dangling id counts as inactive", func(t *testing.T) {
		svc := employee.NewService(&fakeEmployeeRepository{})

		active, err := svc.IsActive(ctx, uuid.NewString())

		assert.NoError(t, err)
		assert.False(t, active)
	})

	t.Run("auto approve flag surfaces", func(t *testing.T) {
		repo := &fakeEmployeeRepository{
			findByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
				return &employee.Employee{ID: employeeID, Active: true, AutoApproveLeave: true}, nil
			},
		}
		svc := employee.NewService(repo)

		enabled, err := svc.AutoApproveEnabled(ctx, employeeID.String())

		assert.NoError(t, err)
		assert.True(t, enabled)
	})
}
