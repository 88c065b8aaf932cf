package leave

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go-vacation/internal/events"
	leaveerrors "go-vacation/internal/leave/errors"
	"go-vacation/internal/messaging/kafka"
	"go-vacation/internal/period"
	"go-vacation/internal/profile"
	"go-vacation/internal/rbac"
	"go-vacation/internal/shared/apperror"
	"go-vacation/internal/shared/contextutil"
	"go-vacation/internal/shared/dateutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

type Service interface {
	Submit(ctx context.Context, actor Actor, req SubmitLeaveRequest) (LeaveResponse, error)
	Update(ctx context.Context, actor Actor, id string, req SubmitLeaveRequest) (LeaveResponse, error)
	GetByID(ctx context.Context, actor Actor, id string) (LeaveResponse, error)
	ListMine(ctx context.Context, actor Actor) ([]LeaveResponse, error)
	ListPendingForManager(ctx context.Context, actor Actor) ([]LeaveResponse, error)
	ListPendingForHR(ctx context.Context) ([]LeaveResponse, error)
	ManagerApprove(ctx context.Context, actor Actor, id string) (LeaveResponse, error)
	FinalApprove(ctx context.Context, actor Actor, id string) (LeaveResponse, error)
	Reject(ctx context.Context, actor Actor, id string, req RejectLeaveRequest) (LeaveResponse, error)
	Dashboard(ctx context.Context, actor Actor) (DashboardResponse, error)
	CalendarEvents(ctx context.Context) ([]CalendarEvent, error)
	ExportApproved(ctx context.Context) ([]byte, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	profiles profile.Repository
	periods  period.Repository
	outbox   kafka.OutboxRepository
	rdb      *redis.Client
	sf       *singleflight.Group
	mode     ApprovalMode
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	profiles profile.Repository,
	periods period.Repository,
	mode ApprovalMode,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, profiles, periods, nil, nil, mode, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	profiles profile.Repository,
	periods period.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	mode ApprovalMode,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		profiles: profiles,
		periods:  periods,
		outbox:   outboxRepo,
		rdb:      rdb,
		sf:       &singleflight.Group{},
		mode:     mode,
		now:      time.Now,
		logger:   l,
	}
}

func (s *service) Submit(ctx context.Context, actor Actor, req SubmitLeaveRequest) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("submit leave requested",
		zap.String("actor_id", actor.UserID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	start, end, err := parseRange(req)
	if err != nil {
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("submit leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	ptx := s.periods.WithTx(tx)

	me, err := s.profiles.WithTx(tx).FindByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrProfileRequired
		}
		return LeaveResponse{}, err
	}

	v, periods, err := s.validate(ctx, qtx, ptx, me, start, end, nil)
	if err != nil {
		log.Warn("submit leave rejected",
			zap.String("profile_id", me.ID.String()),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	l := &Leave{
		ID:          uuid.New(),
		RequesterID: me.UserID,
		ProfileID:   me.ID,
		StartDate:   v.Start,
		EndDate:     v.End,
		TotalDays:   v.Days,
		Status:      StatusPendingManager,
		CreatedAt:   s.now().UTC(),
	}
	if err := qtx.Create(ctx, l); err != nil {
		log.Error("submit leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	allocations, err := Allocate(l.ID, v.Days, periods)
	if err != nil {
		log.Error("submit leave allocation failed",
			zap.String("leave_id", l.ID.String()),
			zap.Int("total_days", v.Days),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}
	if err := qtx.CreateAllocations(ctx, allocations); err != nil {
		log.Error("submit leave allocations persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	l.Allocations = allocations
	l.Profile = me

	if err := s.enqueueNotification(ctx, tx, l, events.LeaveSubmitted, ""); err != nil {
		log.Error("submit leave outbox persist failed", zap.String("leave_id", l.ID.String()), zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("submit leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	log.Info("submit leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("profile_id", me.ID.String()),
		zap.Int("total_days", l.TotalDays),
		zap.Int("allocations", len(allocations)),
	)
	return mapToResponse(*l), nil
}

// Update lets the requester move the dates of a leave nobody has acted
// on yet. The allocation plan is rebuilt from scratch.
func (s *service) Update(ctx context.Context, actor Actor, id string, req SubmitLeaveRequest) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}
	start, end, err := parseRange(req)
	if err != nil {
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("update leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	ptx := s.periods.WithTx(tx)

	l, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if l.RequesterID.String() != actor.UserID {
		return LeaveResponse{}, leaveerrors.ErrNotRequester
	}
	if l.Status != StatusPendingManager {
		return LeaveResponse{}, leaveerrors.ErrNotEditable
	}
	if l.Profile == nil {
		return LeaveResponse{}, leaveerrors.ErrProfileRequired
	}

	v, periods, err := s.validate(ctx, qtx, ptx, l.Profile, start, end, &l.ID)
	if err != nil {
		log.Warn("update leave rejected", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	l.StartDate, l.EndDate, l.TotalDays = v.Start, v.End, v.Days
	if err := qtx.Update(ctx, l); err != nil {
		log.Error("update leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	allocations, err := Allocate(l.ID, v.Days, periods)
	if err != nil {
		return LeaveResponse{}, err
	}
	if err := qtx.DeleteAllocations(ctx, id); err != nil {
		return LeaveResponse{}, err
	}
	if err := qtx.CreateAllocations(ctx, allocations); err != nil {
		return LeaveResponse{}, err
	}
	l.Allocations = allocations

	if err := tx.Commit(); err != nil {
		log.Error("update leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	log.Info("update leave success", zap.String("leave_id", id), zap.Int("total_days", l.TotalDays))
	return mapToResponse(*l), nil
}

func (s *service) validate(
	ctx context.Context,
	qtx Repository,
	ptx period.Repository,
	me *profile.Profile,
	start, end time.Time,
	excludeID *uuid.UUID,
) (ValidatedRequest, []period.Period, error) {
	periods, err := ptx.FindOpenWithBalance(ctx, me.ID.String())
	if err != nil {
		return ValidatedRequest{}, nil, err
	}

	var taken []Leave
	if me.OrgUnit != "" {
		taken, err = qtx.FindTakenInOrgUnit(ctx, me.OrgUnit)
		if err != nil {
			return ValidatedRequest{}, nil, err
		}
	}

	v, err := ValidateRequest(ValidationInput{
		Start:     start,
		End:       end,
		HireDate:  me.HireDate,
		OrgUnit:   me.OrgUnit,
		Periods:   periods,
		Taken:     taken,
		ExcludeID: excludeID,
	})
	return v, periods, err
}

func (s *service) GetByID(ctx context.Context, actor Actor, id string) (LeaveResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}

	if l.RequesterID.String() != actor.UserID && !rbac.IsHR(actor.Role) {
		me, err := s.findProfile(ctx, s.profiles, actor.UserID)
		if err != nil {
			return LeaveResponse{}, err
		}
		if me == nil || l.Profile == nil || !l.Profile.ReportsTo(me.ID) {
			return LeaveResponse{}, apperror.ErrForbidden
		}
	}
	return mapToResponse(*l), nil
}

func (s *service) ListMine(ctx context.Context, actor Actor) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindByRequester(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) ListPendingForManager(ctx context.Context, actor Actor) ([]LeaveResponse, error) {
	me, err := s.findProfile(ctx, s.profiles, actor.UserID)
	if err != nil {
		return nil, err
	}
	if me == nil {
		return []LeaveResponse{}, nil
	}

	leaves, err := s.repo.FindByManager(ctx, me.ID.String(), StatusPendingManager)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) ListPendingForHR(ctx context.Context) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindByStatus(ctx, StatusPendingHR)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) ManagerApprove(ctx context.Context, actor Actor, id string) (LeaveResponse, error) {
	return s.decide(ctx, actor, id, ActionManagerApprove, "")
}

func (s *service) FinalApprove(ctx context.Context, actor Actor, id string) (LeaveResponse, error) {
	return s.decide(ctx, actor, id, ActionFinalApprove, "")
}

func (s *service) Reject(ctx context.Context, actor Actor, id string, req RejectLeaveRequest) (LeaveResponse, error) {
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return LeaveResponse{}, leaveerrors.ErrRejectionReasonRequired
	}
	return s.decide(ctx, actor, id, ActionReject, reason)
}

// decide runs one workflow action inside a transaction. Reaching
// APPROVED_FINAL charges the allocation plan to the ledger; any balance
// shortfall rolls back the whole action.
func (s *service) decide(ctx context.Context, actor Actor, id string, action Action, reason string) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("leave decision requested",
		zap.String("leave_id", id),
		zap.String("actor_id", actor.UserID),
		zap.String("action", string(action)),
	)

	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}
	actorID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return LeaveResponse{}, apperror.ErrUnauthorized
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("leave decision begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}

	me, err := s.findProfile(ctx, s.profiles.WithTx(tx), actor.UserID)
	if err != nil {
		return LeaveResponse{}, err
	}
	if err := authorizeDecision(actor, actorID, me, l, action); err != nil {
		log.Warn("leave decision forbidden",
			zap.String("leave_id", id),
			zap.String("actor_id", actor.UserID),
			zap.String("action", string(action)),
		)
		return LeaveResponse{}, err
	}

	next, err := l.Status.Next(action, s.mode)
	if err != nil {
		log.Warn("leave decision invalid transition",
			zap.String("leave_id", id),
			zap.String("from_status", string(l.Status)),
			zap.String("action", string(action)),
		)
		return LeaveResponse{}, err
	}

	if next == StatusApprovedFinal {
		if err := s.charge(ctx, tx, l); err != nil {
			log.Warn("leave final approval aborted",
				zap.String("leave_id", id),
				zap.Error(err),
			)
			return LeaveResponse{}, err
		}
	}

	l.stamp(next, actorID, s.now().UTC(), reason)
	if err := qtx.Update(ctx, l); err != nil {
		log.Error("leave decision persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	if next.IsTerminal() {
		decidedBy := ""
		if me != nil {
			decidedBy = me.DisplayName()
		}
		if err := s.enqueueNotification(ctx, tx, l, events.LeaveDecided, decidedBy); err != nil {
			log.Error("leave decision outbox persist failed", zap.String("leave_id", id), zap.Error(err))
			return LeaveResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("leave decision commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	if next == StatusApprovedFinal {
		s.invalidateCalendar(ctx)
	}

	log.Info("leave decision success",
		zap.String("leave_id", id),
		zap.String("status", string(next)),
	)
	return mapToResponse(*l), nil
}

// charge deducts the allocation plan from the ledger within tx.
func (s *service) charge(ctx context.Context, tx *sql.Tx, l *Leave) error {
	if l.AllocatedDays() != l.TotalDays {
		return leaveerrors.ErrAllocationShortfall
	}
	if _, err := period.ApplyDeductions(ctx, s.periods.WithTx(tx), deductions(l.Allocations)); err != nil {
		return mapLedgerError(err)
	}
	return nil
}

// authorizeDecision: HR and ADMIN may act on any leave, a manager only on
// the leaves of direct reports. Final approval is reserved to HR. Nobody
// decides on their own leave.
func authorizeDecision(actor Actor, actorID uuid.UUID, me *profile.Profile, l *Leave, action Action) error {
	if l.RequesterID == actorID {
		return leaveerrors.ErrNotApprover
	}
	if rbac.IsHR(actor.Role) {
		return nil
	}
	if action == ActionFinalApprove {
		return leaveerrors.ErrNotApprover
	}
	if me == nil || l.Profile == nil || !l.Profile.ReportsTo(me.ID) {
		return leaveerrors.ErrNotApprover
	}
	return nil
}

func (s *service) Dashboard(ctx context.Context, actor Actor) (DashboardResponse, error) {
	leaves, err := s.repo.FindByRequester(ctx, actor.UserID)
	if err != nil {
		return DashboardResponse{}, err
	}
	resp := DashboardResponse{Leaves: mapToListResponse(leaves)}

	me, err := s.findProfile(ctx, s.profiles, actor.UserID)
	if err != nil {
		return DashboardResponse{}, err
	}
	if me == nil {
		return resp, nil
	}
	resp.HasProfile = true

	resp.IsManager, err = s.profiles.HasTeam(ctx, me.ID.String())
	if err != nil {
		return DashboardResponse{}, err
	}

	periods, err := s.periods.FindByProfile(ctx, me.ID.String())
	if err != nil {
		return DashboardResponse{}, err
	}
	resp.OpenBalance = period.OpenBalance(periods)
	if active := period.Active(periods); active != nil {
		p := mapPeriod(*active)
		resp.ActivePeriod = &p
	}
	return resp, nil
}

// findProfile returns nil without error for users that have no profile,
// such as staff accounts.
func (s *service) findProfile(ctx context.Context, repo profile.Repository, userID string) (*profile.Profile, error) {
	me, err := repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return me, nil
}

func parseRange(req SubmitLeaveRequest) (time.Time, time.Time, error) {
	start, err := dateutil.Parse(req.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	end, err := dateutil.Parse(req.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return start, end, nil
}
