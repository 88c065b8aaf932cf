package period

import (
	"context"
	"time"

	"go-vacation/internal/shared/dateutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SweepReport summarises one accrual run over every profile.
type SweepReport struct {
	Profiles int `json:"profiles"`
	Created  int `json:"created"`
	Failed   int `json:"failed"`
}

// AccrualEngine creates the yearly periods a profile is owed up to today.
type AccrualEngine struct {
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewAccrualEngine(repo Repository, logger ...*zap.Logger) *AccrualEngine {
	l := zap.L().Named("period.accrual")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("period.accrual")
	}
	return &AccrualEngine{repo: repo, now: time.Now, logger: l}
}

// WithClock returns a copy of the engine reading today from now.
func (e *AccrualEngine) WithClock(now func() time.Time) *AccrualEngine {
	cp := *e
	cp.now = now
	return &cp
}

// WithRepository returns a copy of the engine writing through repo,
// typically one bound to a transaction.
func (e *AccrualEngine) WithRepository(repo Repository) *AccrualEngine {
	cp := *e
	cp.repo = repo
	return &cp
}

// EnsurePeriods creates every missing period between the last known one
// (or the hire date) and today. Running it twice creates nothing new.
func (e *AccrualEngine) EnsurePeriods(ctx context.Context, profileID uuid.UUID, hireDate time.Time) ([]Period, error) {
	latest, err := e.repo.FindLatest(ctx, profileID.String())
	if err != nil {
		return nil, err
	}

	boundary := dateutil.Date(hireDate)
	if latest != nil {
		boundary = dateutil.AddDays(latest.EndDate, 1)
	}
	today := dateutil.Today(e.now)

	var created []Period
	for !boundary.After(today) {
		p := New(profileID, boundary)

		exists, err := e.repo.ExistsByStart(ctx, profileID.String(), p.StartDate)
		if err != nil {
			return created, err
		}
		if !exists {
			if err := e.repo.Create(ctx, &p); err != nil {
				if !isDuplicatePeriod(err) {
					e.logger.Error("create period failed",
						zap.String("profile_id", profileID.String()),
						zap.String("start_date", dateutil.Format(p.StartDate)),
						zap.Error(err),
					)
					return created, err
				}
			} else {
				created = append(created, p)
			}
		}
		boundary = dateutil.AddDays(p.EndDate, 1)
	}

	if len(created) > 0 {
		e.logger.Info("periods accrued",
			zap.String("profile_id", profileID.String()),
			zap.Int("created", len(created)),
		)
	}
	return created, nil
}

// Sweep runs EnsurePeriods for every profile. A failing profile is logged
// and skipped.
func (e *AccrualEngine) Sweep(ctx context.Context) (SweepReport, error) {
	anchors, err := e.repo.ListAnchors(ctx)
	if err != nil {
		e.logger.Error("list accrual anchors failed", zap.Error(err))
		return SweepReport{}, err
	}

	report := SweepReport{Profiles: len(anchors)}
	for _, a := range anchors {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}
		created, err := e.EnsurePeriods(ctx, a.ProfileID, a.HireDate)
		report.Created += len(created)
		if err != nil {
			report.Failed++
			e.logger.Warn("accrual for profile failed",
				zap.String("profile_id", a.ProfileID.String()),
				zap.Error(err),
			)
		}
	}

	e.logger.Info("accrual sweep finished",
		zap.Int("profiles", report.Profiles),
		zap.Int("created", report.Created),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}
