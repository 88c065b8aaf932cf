package onboarding

import (
	"context"
	"database/sql"
	"errors"
	"time"

	onboardingerrors "go-vacation/internal/onboarding/errors"
	"go-vacation/internal/period"
	"go-vacation/internal/profile"
	"go-vacation/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	RequiresOnboarding(ctx context.Context, userID string) (bool, error)
	Status(ctx context.Context, userID string) (StatusResponse, error)
	Complete(ctx context.Context, userID string, req CompleteRequest) (StatusResponse, error)
}

// Accruer is satisfied by *period.AccrualEngine.
type Accruer interface {
	EnsurePeriods(ctx context.Context, profileID uuid.UUID, hireDate time.Time) ([]period.Period, error)
}

type service struct {
	db       *sql.DB
	profiles profile.Repository
	periods  period.Repository
	accruer  Accruer
	logger   *zap.Logger
}

func NewService(db *sql.DB, profiles profile.Repository, periods period.Repository, accruer Accruer, logger ...*zap.Logger) Service {
	l := zap.L().Named("onboarding.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("onboarding.service")
	}
	return &service{db: db, profiles: profiles, periods: periods, accruer: accruer, logger: l}
}

// RequiresOnboarding is false for users without a profile. Periods owed
// to a blocked user are created first so the onboarding screen can list
// them.
func (s *service) RequiresOnboarding(ctx context.Context, userID string) (bool, error) {
	p, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	if p.OnboardingComplete {
		return false, nil
	}

	if _, err := s.accruer.EnsurePeriods(ctx, p.ID, p.HireDate); err != nil {
		contextutil.GetLogger(ctx, s.logger).Warn("onboarding accrual failed",
			zap.String("profile_id", p.ID.String()),
			zap.Error(err),
		)
	}
	return true, nil
}

func (s *service) Status(ctx context.Context, userID string) (StatusResponse, error) {
	p, err := s.findProfile(ctx, s.profiles, userID)
	if err != nil {
		return StatusResponse{}, err
	}
	if !p.OnboardingComplete {
		if _, err := s.accruer.EnsurePeriods(ctx, p.ID, p.HireDate); err != nil {
			return StatusResponse{}, err
		}
	}

	periods, err := s.periods.FindByProfile(ctx, p.ID.String())
	if err != nil {
		return StatusResponse{}, err
	}
	return StatusResponse{Completed: p.OnboardingComplete, Periods: mapPeriods(periods)}, nil
}

// Complete applies the manual balance adjustments and marks the profile
// onboarded in a single transaction.
func (s *service) Complete(ctx context.Context, userID string, req CompleteRequest) (StatusResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("complete onboarding begin tx failed", zap.Error(err))
		return StatusResponse{}, err
	}
	defer tx.Rollback()

	ptx := s.periods.WithTx(tx)
	prtx := s.profiles.WithTx(tx)

	me, err := s.findProfile(ctx, prtx, userID)
	if err != nil {
		return StatusResponse{}, err
	}
	if me.OnboardingComplete {
		return StatusResponse{}, onboardingerrors.ErrAlreadyOnboarded
	}

	seen := make(map[string]struct{}, len(req.Balances))
	for _, b := range req.Balances {
		if _, dup := seen[b.PeriodID]; dup {
			return StatusResponse{}, onboardingerrors.ErrDuplicatePeriod
		}
		seen[b.PeriodID] = struct{}{}

		p, err := ptx.FindByIDForUpdate(ctx, b.PeriodID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return StatusResponse{}, onboardingerrors.ErrUnknownPeriod
			}
			return StatusResponse{}, err
		}
		if p.ProfileID != me.ID {
			return StatusResponse{}, onboardingerrors.ErrUnknownPeriod
		}
		if err := p.Adjust(*b.AvailableDays); err != nil {
			return StatusResponse{}, err
		}
		if err := ptx.Update(ctx, p); err != nil {
			log.Error("complete onboarding period persist failed",
				zap.String("period_id", b.PeriodID),
				zap.Error(err),
			)
			return StatusResponse{}, err
		}
	}

	if err := prtx.MarkOnboarded(ctx, me.ID.String()); err != nil {
		log.Error("complete onboarding mark failed", zap.Error(err))
		return StatusResponse{}, err
	}

	periods, err := ptx.FindByProfile(ctx, me.ID.String())
	if err != nil {
		return StatusResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("complete onboarding commit failed", zap.Error(err))
		return StatusResponse{}, err
	}

	log.Info("complete onboarding success",
		zap.String("profile_id", me.ID.String()),
		zap.Int("adjusted_periods", len(req.Balances)),
	)
	return StatusResponse{Completed: true, Periods: mapPeriods(periods)}, nil
}

func (s *service) findProfile(ctx context.Context, repo profile.Repository, userID string) (*profile.Profile, error) {
	p, err := repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, onboardingerrors.ErrProfileRequired
		}
		return nil, err
	}
	return p, nil
}
