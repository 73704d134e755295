package allowance_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ymnkynp/monkey-timeoff/internal/allowance"
	allowanceerrors "github.com/ymnkynp/monkey-timeoff/internal/allowance/errors"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeAllowanceRepository struct {
	getEntitlementFn   func(ctx context.Context, employeeID string, year int) (*allowance.Entitlement, error)
	upsertFn           func(ctx context.Context, e *allowance.Entitlement) error
	approvedDaysFn     func(ctx context.Context, employeeID string, year int) (int, error)
	approvedDaysCalled int
}

func (f *fakeAllowanceRepository) GetEntitlement(ctx context.Context, employeeID string, year int) (*allowance.Entitlement, error) {
	if f.getEntitlementFn != nil {
		return f.getEntitlementFn(ctx, employeeID, year)
	}
	return nil, allowanceerrors.ErrEntitlementNotFound
}

func (f *fakeAllowanceRepository) UpsertEntitlement(ctx context.Context, e *allowance.Entitlement) error {
	if f.upsertFn != nil {
		return f.upsertFn(ctx, e)
	}
	return nil
}

func (f *fakeAllowanceRepository) ApprovedDays(ctx context.Context, employeeID string, year int) (int, error) {
	f.approvedDaysCalled++
	if f.approvedDaysFn != nil {
		return f.approvedDaysFn(ctx, employeeID, year)
	}
	return 0, nil
}

func TestAllowanceService_GetBalance(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()

	t.Run("success cache miss computes and caches", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		repo := &fakeAllowanceRepository{
			getEntitlementFn: func(ctx context.Context, eid string, year int) (*allowance.Entitlement, error) {
				return &allowance.Entitlement{EmployeeID: employeeID, Year: year, Days: 25}, nil
			},
			approvedDaysFn: func(ctx context.Context, eid string, year int) (int, error) {
				return 7, nil
			},
		}
		svc := allowance.NewService(repo, rdb)

		key := allowance.BalanceKey(employeeID.String(), 2026)
		expected := allowance.BalanceResponse{
			EmployeeID:    employeeID.String(),
			Year:          2026,
			EntitledDays:  25,
			UsedDays:      7,
			RemainingDays: 18,
		}
		payload, err := json.Marshal(expected)
		assert.NoError(t, err)

		redisMock.ExpectGet(key).RedisNil()
		redisMock.ExpectSet(key, payload, 15*time.Minute).SetVal("OK")

		resp, err := svc.GetBalance(ctx, employeeID.String(), 2026)

		assert.NoError(t, err)
		assert.Equal(t, expected, resp)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("success cache hit skips repository", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		repo := &fakeAllowanceRepository{}
		svc := allowance.NewService(repo, rdb)

		cached := allowance.BalanceResponse{
			EmployeeID:    employeeID.String(),
			Year:          2026,
			EntitledDays:  25,
			UsedDays:      10,
			RemainingDays: 15,
		}
		payload, err := json.Marshal(cached)
		assert.NoError(t, err)

		key := allowance.BalanceKey(employeeID.String(), 2026)
		redisMock.ExpectGet(key).SetVal(string(payload))

		resp, err := svc.GetBalance(ctx, employeeID.String(), 2026)

		assert.NoError(t, err)
		assert.Equal(t, cached, resp)
		assert.Zero(t, repo.approvedDaysCalled)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("negative no entitlement configured", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		svc := allowance.NewService(&fakeAllowanceRepository{}, rdb)

		key := allowance.BalanceKey(employeeID.String(), 2026)
		redisMock.ExpectGet(key).RedisNil()

		_, err := svc.GetBalance(ctx, employeeID.String(), 2026)

		assert.ErrorIs(t, err, allowanceerrors.ErrEntitlementNotFound)
	})

	t.Run("negative invalid employee id", func(t *testing.T) {
		svc := allowance.NewService(&fakeAllowanceRepository{}, nil)

		_, err := svc.GetBalance(ctx, "not-a-uuid", 2026)

		assert.ErrorIs(t, err, allowanceerrors.ErrInvalidEmployeeID)
	})

	t.Run("negative implausible year", func(t *testing.T) {
		svc := allowance.NewService(&fakeAllowanceRepository{}, nil)

		_, err := svc.GetBalance(ctx, employeeID.String(), 1999)

		assert.ErrorIs(t, err, allowanceerrors.ErrInvalidYear)
	})
}

func TestAllowanceService_SetEntitlement(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()

	t.Run("success upsert invalidates and recomputes", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()

		var stored *allowance.Entitlement
		repo := &fakeAllowanceRepository{
			upsertFn: func(ctx context.Context, e *allowance.Entitlement) error {
				stored = e
				return nil
			},
			getEntitlementFn: func(ctx context.Context, eid string, year int) (*allowance.Entitlement, error) {
				return stored, nil
			},
			approvedDaysFn: func(ctx context.Context, eid string, year int) (int, error) {
				return 5, nil
			},
		}
		svc := allowance.NewService(repo, rdb)

		key := allowance.BalanceKey(employeeID.String(), 2026)
		expected := allowance.BalanceResponse{
			EmployeeID:    employeeID.String(),
			Year:          2026,
			EntitledDays:  30,
			UsedDays:      5,
			RemainingDays: 25,
		}
		payload, err := json.Marshal(expected)
		assert.NoError(t, err)

		redisMock.ExpectDel(key).SetVal(1)
		redisMock.ExpectGet(key).RedisNil()
		redisMock.ExpectSet(key, payload, 15*time.Minute).SetVal("OK")

		resp, err := svc.SetEntitlement(ctx, allowance.SetEntitlementRequest{
			EmployeeID: employeeID.String(),
			Year:       2026,
			Days:       30,
		})

		assert.NoError(t, err)
		assert.Equal(t, expected, resp)
		assert.Equal(t, 30, stored.Days)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("negative negative days", func(t *testing.T) {
		svc := allowance.NewService(&fakeAllowanceRepository{}, nil)

		_, err := svc.SetEntitlement(ctx, allowance.SetEntitlementRequest{
			EmployeeID: employeeID.String(),
			Year:       2026,
			Days:       -1,
		})

		assert.ErrorIs(t, err, allowanceerrors.ErrInvalidDays)
	})
}
