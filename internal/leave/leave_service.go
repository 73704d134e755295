package leave

import (
	"context"
	"database/sql"
	"time"

	"github.com/ymnkynp/monkey-timeoff/internal/allowance"
	"github.com/ymnkynp/monkey-timeoff/internal/events"
	leaveerrors "github.com/ymnkynp/monkey-timeoff/internal/leave/errors"
	"github.com/ymnkynp/monkey-timeoff/internal/messaging/kafka"
	"github.com/ymnkynp/monkey-timeoff/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Directory answers who approves for whom. Backed by the employee module;
// kept as an interface so the approval flow stays testable in isolation.
type Directory interface {
	// GetManager resolves the employee's department manager.
	// Returns uuid.Nil with no error when none is configured.
	GetManager(ctx context.Context, employeeID string) (uuid.UUID, error)
	// GetStandin returns the configured standin, or nil.
	GetStandin(ctx context.Context, employeeID string) (*uuid.UUID, error)
	IsActive(ctx context.Context, id string) (bool, error)
	AutoApproveEnabled(ctx context.Context, employeeID string) (bool, error)
}

// LeaveTypePolicy exposes the per-type auto-approval flag.
type LeaveTypePolicy interface {
	AutoApprove(ctx context.Context, leaveType string) (bool, error)
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, employeeID string, req SubmitLeaveRequest) (LeaveResponse, error)
	Decide(ctx context.Context, approverID, leaveID string, req DecideLeaveRequest) (LeaveResponse, error)
	Revoke(ctx context.Context, actorID, leaveID string) (LeaveResponse, error)
	Cancel(ctx context.Context, actorID, leaveID string) (LeaveResponse, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	GetAllByEmployee(ctx context.Context, employeeID string) ([]LeaveResponse, error)
	GetPendingForApprover(ctx context.Context, approverID string) ([]LeaveResponse, error)
}

type service struct {
	db             *sql.DB
	repo           Repository
	directory      Directory
	types          LeaveTypePolicy
	outbox         kafka.OutboxRepository
	rdb            *redis.Client
	standinEnabled bool
	logger         *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	directory Directory,
	types LeaveTypePolicy,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	standinEnabled bool,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:             db,
		repo:           repo,
		directory:      directory,
		types:          types,
		outbox:         outboxRepo,
		rdb:            rdb,
		standinEnabled: standinEnabled,
		logger:         l,
	}
}

func (s *service) Submit(ctx context.Context, employeeID string, req SubmitLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("submit leave requested",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	if startDate.After(endDate) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	autoApprove, err := s.autoApprovalApplies(ctx, employeeID, req.LeaveType)
	if err != nil {
		s.logger.Error("submit leave auto-approval lookup failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l := &Leave{
		ID:         uuid.New(),
		EmployeeID: employeeUUID,
		LeaveType:  req.LeaveType,
		StartDate:  startDate,
		EndDate:    endDate,
		TotalDays:  totalDays(startDate, endDate),
		Comment:    req.Comment,
		Status:     StatusNew,
	}

	if autoApprove {
		return s.submitAutoApproved(ctx, tx, qtx, l, rid)
	}

	approvers, err := s.resolveApprovers(ctx, employeeUUID)
	if err != nil {
		s.logger.Warn("submit leave approver resolution failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("submit leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	records := make([]ApprovalRecord, 0, len(approvers))
	approverIDs := make([]string, 0, len(approvers))
	for _, a := range approvers {
		rec := ApprovalRecord{
			ID:             uuid.New(),
			LeaveID:        l.ID,
			ApproverID:     a.ID,
			ApproverRole:   a.Role,
			DecisionStatus: DecisionPending,
		}
		if err := qtx.CreateApprovalRecord(ctx, &rec); err != nil {
			s.logger.Error("submit leave approval record persist failed",
				zap.String("approver_id", a.ID.String()),
				zap.String("approver_role", a.Role),
				zap.Error(err),
			)
			return LeaveResponse{}, err
		}
		records = append(records, rec)
		approverIDs = append(approverIDs, a.ID.String())
	}

	// Non-blocking schedule check: a standin who is themself away on an
	// approved leave over the requested range still gets the request, with
	// a warning attached.
	conflicts := make(map[uuid.UUID]string)
	for _, a := range approvers {
		if a.Role != RoleStandin {
			continue
		}
		overlap, err := qtx.HasApprovedOverlap(ctx, a.ID.String(), startDate, endDate)
		if err != nil {
			s.logger.Error("submit leave standin conflict check failed", zap.Error(err))
			return LeaveResponse{}, err
		}
		if overlap {
			conflicts[a.ID] = "standin has an approved leave overlapping the requested range"
			s.logger.Warn("submit leave standin schedule conflict",
				zap.String("leave_id", l.ID.String()),
				zap.String("standin_id", a.ID.String()),
			)
		}
	}

	base := s.notificationFor(l, rid)
	base.Kind = events.NotificationSubmissionConfirmed
	base.RecipientID = employeeID
	base.ApproverIDs = approverIDs
	base.PendingCount = len(approvers)
	if err := s.enqueueNotification(ctx, tx, base); err != nil {
		return LeaveResponse{}, err
	}
	for _, a := range approvers {
		n := s.notificationFor(l, rid)
		n.Kind = events.NotificationApprovalNeeded
		n.RecipientID = a.ID.String()
		n.PendingCount = len(approvers)
		n.ConflictWarning = conflicts[a.ID]
		if err := s.enqueueNotification(ctx, tx, n); err != nil {
			return LeaveResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("submit leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", employeeID),
		zap.Int("approvers", len(approvers)),
	)

	return mapToResponse(*l, records), nil
}

// submitAutoApproved creates the leave already APPROVED with no approval
// records at all; there is nothing for anyone to decide.
func (s *service) submitAutoApproved(
	ctx context.Context,
	tx *sql.Tx,
	qtx Repository,
	l *Leave,
	rid string,
) (LeaveResponse, error) {
	l.Status = StatusApproved

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("submit leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	n := s.notificationFor(l, rid)
	n.Kind = events.NotificationAutoApproved
	n.RecipientID = l.EmployeeID.String()
	if err := s.enqueueNotification(ctx, tx, n); err != nil {
		return LeaveResponse{}, err
	}

	// The manager is informed, not asked.
	managerID, err := s.directory.GetManager(ctx, l.EmployeeID.String())
	if err != nil {
		return LeaveResponse{}, err
	}
	if managerID != uuid.Nil {
		n := s.notificationFor(l, rid)
		n.Kind = events.NotificationAutoApproved
		n.RecipientID = managerID.String()
		if err := s.enqueueNotification(ctx, tx, n); err != nil {
			return LeaveResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.invalidateAllowance(ctx, l)
	s.logger.Info("submit leave auto-approved",
		zap.String("request_id", rid),
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", l.EmployeeID.String()),
	)

	return mapToResponse(*l, nil), nil
}

func (s *service) Decide(ctx context.Context, approverID, leaveID string, req DecideLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("decide leave requested",
		zap.String("request_id", rid),
		zap.String("leave_id", leaveID),
		zap.String("approver_id", approverID),
		zap.String("decision", req.Decision),
	)

	approverUUID, err := uuid.Parse(approverID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(leaveID); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	var decision string
	switch req.Decision {
	case "APPROVE":
		decision = DecisionApproved
	case "REJECT":
		decision = DecisionRejected
	default:
		return LeaveResponse{}, leaveerrors.ErrInvalidDecision
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, leaveID)
	if err != nil {
		return LeaveResponse{}, err
	}
	if l.Status == StatusCancelled {
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	records, err := qtx.FindApprovalRecords(ctx, leaveID)
	if err != nil {
		s.logger.Error("decide leave load records failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	var rec *ApprovalRecord
	for i := range records {
		if records[i].ApproverID == approverUUID {
			rec = &records[i]
			break
		}
	}
	if rec == nil {
		s.logger.Warn("decide leave actor is not an approver",
			zap.String("leave_id", leaveID),
			zap.String("approver_id", approverID),
		)
		return LeaveResponse{}, leaveerrors.ErrNotAnApprover
	}
	if l.Status == StatusPendedRevoke && rec.ApproverRole != RoleManager {
		return LeaveResponse{}, leaveerrors.ErrManagerOnlyAction
	}
	if rec.DecisionStatus != DecisionPending {
		s.logger.Warn("decide leave replay on decided record",
			zap.String("leave_id", leaveID),
			zap.String("approver_id", approverID),
			zap.String("decision_status", rec.DecisionStatus),
		)
		return LeaveResponse{}, leaveerrors.ErrAlreadyDecided
	}

	now := time.Now().UTC()
	rec.DecisionStatus = decision
	rec.DecidedAt = &now
	if req.Comment != "" {
		rec.Comment = req.Comment
	}
	if err := qtx.UpdateApprovalRecord(ctx, rec); err != nil {
		s.logger.Error("decide leave record persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	// Recompute from a fresh read of the full record set so a concurrent
	// decision committed by the other approver is taken into account.
	records, err = qtx.FindApprovalRecords(ctx, leaveID)
	if err != nil {
		s.logger.Error("decide leave reload records failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	prevStatus := l.Status
	if prevStatus == StatusPendedRevoke {
		// The manager is re-affirming (or withdrawing) a revoke, not
		// approving the original request: approving the revoke cancels
		// the leave, rejecting it restores the approval.
		if decision == DecisionApproved {
			l.Status = StatusRejected
		} else {
			l.Status = StatusApproved
		}
	} else {
		l.Status = AggregateDecision(records)
	}
	l.LastActorID = &approverUUID

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("decide leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	n := s.notificationFor(l, rid)
	n.RecipientID = l.EmployeeID.String()
	switch l.Status {
	case StatusApproved:
		n.Kind = events.NotificationFullyApproved
	case StatusRejected:
		n.Kind = events.NotificationRejected
	default:
		n.Kind = events.NotificationPartiallyApproved
		n.PendingCount = PendingCount(records)
	}
	if err := s.enqueueNotification(ctx, tx, n); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if prevStatus == StatusApproved || l.Status == StatusApproved || prevStatus == StatusPendedRevoke {
		s.invalidateAllowance(ctx, l)
	}

	s.logger.Info("decide leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", leaveID),
		zap.String("approver_id", approverID),
		zap.String("decision", decision),
		zap.String("status", l.Status),
	)

	return mapToResponse(*l, records), nil
}

func (s *service) Revoke(ctx context.Context, actorID, leaveID string) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("revoke leave requested",
		zap.String("request_id", rid),
		zap.String("leave_id", leaveID),
		zap.String("actor_id", actorID),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(leaveID); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("revoke leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, leaveID)
	if err != nil {
		return LeaveResponse{}, err
	}

	// Scheduling authority rests with the department manager; a standin
	// never takes part in revokes.
	managerID, err := s.directory.GetManager(ctx, l.EmployeeID.String())
	if err != nil {
		s.logger.Error("revoke leave manager lookup failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if managerID == uuid.Nil || managerID != actorUUID {
		s.logger.Warn("revoke leave by non-manager",
			zap.String("leave_id", leaveID),
			zap.String("actor_id", actorID),
		)
		return LeaveResponse{}, leaveerrors.ErrManagerOnlyAction
	}

	if l.Status != StatusApproved {
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	records, err := qtx.FindApprovalRecords(ctx, leaveID)
	if err != nil {
		s.logger.Error("revoke leave load records failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	l.LastActorID = &actorUUID

	if len(records) == 0 {
		// Auto-approved (or pre-workflow) leave: nothing to re-affirm,
		// the revoke takes effect immediately.
		l.Status = StatusRejected
		if err := qtx.Update(ctx, l); err != nil {
			s.logger.Error("revoke leave persist failed", zap.Error(err))
			return LeaveResponse{}, err
		}

		n := s.notificationFor(l, rid)
		n.Kind = events.NotificationRejected
		n.RecipientID = l.EmployeeID.String()
		if err := s.enqueueNotification(ctx, tx, n); err != nil {
			return LeaveResponse{}, err
		}

		if err := tx.Commit(); err != nil {
			s.logger.Error("revoke leave commit failed", zap.Error(err))
			return LeaveResponse{}, err
		}

		s.invalidateAllowance(ctx, l)
		s.logger.Info("revoke leave immediate",
			zap.String("leave_id", leaveID),
			zap.String("manager_id", actorID),
		)
		return mapToResponse(*l, nil), nil
	}

	// Only the MANAGER slot is reset: the standin confirmed coverage for
	// the original request and has no say in taking it back.
	for i := range records {
		if records[i].ApproverRole != RoleManager {
			continue
		}
		records[i].DecisionStatus = DecisionPending
		records[i].DecidedAt = nil
		records[i].Comment = ""
		if err := qtx.UpdateApprovalRecord(ctx, &records[i]); err != nil {
			s.logger.Error("revoke leave record reset failed", zap.Error(err))
			return LeaveResponse{}, err
		}
	}

	l.Status = StatusPendedRevoke
	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("revoke leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	n := s.notificationFor(l, rid)
	n.Kind = events.NotificationRevokeRequested
	n.RecipientID = l.EmployeeID.String()
	if err := s.enqueueNotification(ctx, tx, n); err != nil {
		return LeaveResponse{}, err
	}
	mn := s.notificationFor(l, rid)
	mn.Kind = events.NotificationApprovalNeeded
	mn.RecipientID = managerID.String()
	mn.PendingCount = 1
	if err := s.enqueueNotification(ctx, tx, mn); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("revoke leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.invalidateAllowance(ctx, l)
	s.logger.Info("revoke leave pended",
		zap.String("leave_id", leaveID),
		zap.String("manager_id", actorID),
	)

	return mapToResponse(*l, records), nil
}

func (s *service) Cancel(ctx context.Context, actorID, leaveID string) (LeaveResponse, error) {
	s.logger.Debug("cancel leave requested",
		zap.String("leave_id", leaveID),
		zap.String("actor_id", actorID),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(leaveID); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("cancel leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, leaveID)
	if err != nil {
		return LeaveResponse{}, err
	}
	if l.EmployeeID != actorUUID {
		return LeaveResponse{}, leaveerrors.ErrNotLeaveOwner
	}
	if l.Status != StatusNew {
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	l.Status = StatusCancelled
	l.LastActorID = &actorUUID
	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("cancel leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("cancel leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("cancel leave success", zap.String("leave_id", leaveID))
	return mapToResponse(*l, nil), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	records, err := s.repo.FindApprovalRecords(ctx, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	return mapToResponse(*l, records), nil
}

func (s *service) GetAllByEmployee(ctx context.Context, employeeID string) ([]LeaveResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, leaveerrors.ErrInvalidEmployeeID
	}

	leaves, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetPendingForApprover(ctx context.Context, approverID string) ([]LeaveResponse, error) {
	if _, err := uuid.Parse(approverID); err != nil {
		return nil, leaveerrors.ErrInvalidActorID
	}

	leaves, err := s.repo.FindPendingByApprover(ctx, approverID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) autoApprovalApplies(ctx context.Context, employeeID, leaveType string) (bool, error) {
	employeeFlag, err := s.directory.AutoApproveEnabled(ctx, employeeID)
	if err != nil {
		return false, err
	}
	if employeeFlag {
		return true, nil
	}
	return s.types.AutoApprove(ctx, leaveType)
}

// resolveApprovers consults the directory and applies the pure resolution
// rule. An inactive standin falls back to manager-only; the record set of
// already-submitted leaves is never touched by that fallback.
func (s *service) resolveApprovers(ctx context.Context, employeeID uuid.UUID) ([]Approver, error) {
	managerID, err := s.directory.GetManager(ctx, employeeID.String())
	if err != nil {
		return nil, err
	}

	var standinID *uuid.UUID
	if s.standinEnabled {
		standinID, err = s.directory.GetStandin(ctx, employeeID.String())
		if err != nil {
			return nil, err
		}
		if standinID != nil {
			active, err := s.directory.IsActive(ctx, standinID.String())
			if err != nil {
				return nil, err
			}
			if !active {
				s.logger.Warn("standin inactive, falling back to manager-only",
					zap.String("employee_id", employeeID.String()),
					zap.String("standin_id", standinID.String()),
				)
				standinID = nil
			}
		}
	}

	return ResolveApprovers(employeeID, managerID, standinID, s.standinEnabled)
}

func (s *service) notificationFor(l *Leave, rid string) events.LeaveNotification {
	return events.LeaveNotification{
		RequestID:  rid,
		LeaveID:    l.ID.String(),
		EmployeeID: l.EmployeeID.String(),
		LeaveType:  l.LeaveType,
		StartDate:  l.StartDate.Format("2006-01-02"),
		EndDate:    l.EndDate.Format("2006-01-02"),
		OccurredAt: time.Now().UTC(),
	}
}

// enqueueNotification stages the notification in the outbox inside the
// current transaction: it commits with the state transition, and delivery
// failures later never undo the decision.
func (s *service) enqueueNotification(ctx context.Context, tx *sql.Tx, n events.LeaveNotification) error {
	if s.outbox == nil {
		return nil
	}

	event, err := kafka.NewLeaveNotificationEvent(n)
	if err != nil {
		s.logger.Error("stage notification failed", zap.Error(err))
		return err
	}

	if err = s.outbox.WithTx(tx).Create(ctx, event); err != nil {
		s.logger.Error("notification outbox persist failed",
			zap.String("leave_id", n.LeaveID),
			zap.String("kind", n.Kind),
			zap.Error(err),
		)
	}
	return err
}

// invalidateAllowance drops the cached balance for every year the leave
// touches; the next balance read recomputes from the ledger.
func (s *service) invalidateAllowance(ctx context.Context, l *Leave) {
	if s.rdb == nil {
		return
	}
	for year := l.StartDate.Year(); year <= l.EndDate.Year(); year++ {
		key := allowance.BalanceKey(l.EmployeeID.String(), year)
		if err := s.rdb.Del(ctx, key).Err(); err != nil {
			s.logger.Error("allowance cache invalidation failed",
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}
}

func totalDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l Leave, records []ApprovalRecord) LeaveResponse {
	resp := LeaveResponse{
		ID:         l.ID.String(),
		EmployeeID: l.EmployeeID.String(),
		LeaveType:  l.LeaveType,
		StartDate:  l.StartDate.Format("2006-01-02"),
		EndDate:    l.EndDate.Format("2006-01-02"),
		TotalDays:  l.TotalDays,
		Comment:    l.Comment,
		Status:     l.Status,
	}
	if l.LastActorID != nil {
		v := l.LastActorID.String()
		resp.LastActorID = &v
	}
	for _, rec := range records {
		r := ApprovalRecordResponse{
			ID:             rec.ID.String(),
			ApproverID:     rec.ApproverID.String(),
			ApproverRole:   rec.ApproverRole,
			DecisionStatus: rec.DecisionStatus,
			Comment:        rec.Comment,
		}
		if rec.DecidedAt != nil {
			v := rec.DecidedAt.Format(time.RFC3339)
			r.DecidedAt = &v
		}
		resp.Approvals = append(resp.Approvals, r)
	}
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l, nil)
	}
	return resp
}
