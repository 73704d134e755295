package leavetype

import (
	"context"
	"errors"

	leavetypeerrors "github.com/ymnkynp/monkey-timeoff/internal/leavetype/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=leavetype_service.go -destination=mock/leavetype_service_mock.go -package=mock
type Service interface {
	Upsert(ctx context.Context, req UpsertLeaveTypeRequest) (LeaveTypeResponse, error)
	GetAll(ctx context.Context) ([]LeaveTypeResponse, error)

	// AutoApprove is the per-type policy consumed by the leave flow.
	AutoApprove(ctx context.Context, leaveType string) (bool, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavetype.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavetype.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Upsert(ctx context.Context, req UpsertLeaveTypeRequest) (LeaveTypeResponse, error) {
	lt := &LeaveType{
		ID:          uuid.New(),
		Code:        req.Code,
		Name:        req.Name,
		AutoApprove: req.AutoApprove,
		Deductible:  req.Deductible,
	}

	if err := s.repo.Upsert(ctx, lt); err != nil {
		s.logger.Error("upsert leave type persist failed", zap.Error(err))
		return LeaveTypeResponse{}, err
	}

	s.logger.Info("upsert leave type success",
		zap.String("code", lt.Code),
		zap.Bool("auto_approve", lt.AutoApprove),
	)
	return mapToResponse(*lt), nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveTypeResponse, error) {
	types, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]LeaveTypeResponse, 0, len(types))
	for _, lt := range types {
		out = append(out, mapToResponse(lt))
	}
	return out, nil
}

// AutoApprove reports whether requests of the given type skip approval.
// A type with no configured row keeps the safe default of false.
func (s *service) AutoApprove(ctx context.Context, leaveType string) (bool, error) {
	lt, err := s.repo.FindByCode(ctx, leaveType)
	if err != nil {
		if errors.Is(err, leavetypeerrors.ErrLeaveTypeNotFound) {
			return false, nil
		}
		return false, err
	}
	return lt.AutoApprove, nil
}

func mapToResponse(lt LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:          lt.ID.String(),
		Code:        lt.Code,
		Name:        lt.Name,
		AutoApprove: lt.AutoApprove,
		Deductible:  lt.Deductible,
	}
}
