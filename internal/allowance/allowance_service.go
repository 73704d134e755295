package allowance

import (
	"context"
	"encoding/json"
	"time"

	allowanceerrors "github.com/ymnkynp/monkey-timeoff/internal/allowance/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const balanceCacheTTL = 15 * time.Minute

//go:generate mockgen -source=allowance_service.go -destination=mock/allowance_service_mock.go -package=mock
type Service interface {
	GetBalance(ctx context.Context, employeeID string, year int) (BalanceResponse, error)
	SetEntitlement(ctx context.Context, req SetEntitlementRequest) (BalanceResponse, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("allowance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("allowance.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

// GetBalance reads through a redis cache. Balances are derived data; the
// leave service invalidates the key on every transition that touches
// APPROVED, so a hit is always consistent with the ledger.
func (s *service) GetBalance(ctx context.Context, employeeID string, year int) (BalanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return BalanceResponse{}, allowanceerrors.ErrInvalidEmployeeID
	}
	if year < 2000 || year > 2200 {
		return BalanceResponse{}, allowanceerrors.ErrInvalidYear
	}

	cacheKey := BalanceKey(employeeID, year)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp BalanceResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		ent, err := s.repo.GetEntitlement(ctx, employeeID, year)
		if err != nil {
			return nil, err
		}
		used, err := s.repo.ApprovedDays(ctx, employeeID, year)
		if err != nil {
			return nil, err
		}

		resp := BalanceResponse{
			EmployeeID:    employeeID,
			Year:          year,
			EntitledDays:  ent.Days,
			UsedDays:      used,
			RemainingDays: ent.Days - used,
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, balanceCacheTTL)
			}
		}

		return resp, nil
	})

	if err != nil {
		return BalanceResponse{}, err
	}

	return v.(BalanceResponse), nil
}

func (s *service) SetEntitlement(ctx context.Context, req SetEntitlementRequest) (BalanceResponse, error) {
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return BalanceResponse{}, allowanceerrors.ErrInvalidEmployeeID
	}
	if req.Year < 2000 || req.Year > 2200 {
		return BalanceResponse{}, allowanceerrors.ErrInvalidYear
	}
	if req.Days < 0 {
		return BalanceResponse{}, allowanceerrors.ErrInvalidDays
	}

	ent := &Entitlement{
		ID:         uuid.New(),
		EmployeeID: employeeUUID,
		Year:       req.Year,
		Days:       req.Days,
	}
	if err := s.repo.UpsertEntitlement(ctx, ent); err != nil {
		s.logger.Error("upsert entitlement failed",
			zap.String("employee_id", req.EmployeeID),
			zap.Int("year", req.Year),
			zap.Error(err),
		)
		return BalanceResponse{}, err
	}

	if s.rdb != nil {
		cacheKey := BalanceKey(req.EmployeeID, req.Year)
		if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
			s.logger.Error("failed to invalidate balance cache",
				zap.String("key", cacheKey),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("entitlement set",
		zap.String("employee_id", req.EmployeeID),
		zap.Int("year", req.Year),
		zap.Int("days", req.Days),
	)

	return s.GetBalance(ctx, req.EmployeeID, req.Year)
}
