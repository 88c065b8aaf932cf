package period_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"go-vacation/internal/period"
	"go-vacation/internal/shared/dateutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

// memoryRepository keeps periods in a slice; enough for accrual runs.
type memoryRepository struct {
	periods   []period.Period
	anchors   []period.Anchor
	createErr func(p *period.Period) error
}

func (m *memoryRepository) WithTx(*sql.Tx) period.Repository { return m }

func (m *memoryRepository) Create(_ context.Context, p *period.Period) error {
	if m.createErr != nil {
		if err := m.createErr(p); err != nil {
			return err
		}
	}
	m.periods = append(m.periods, *p)
	return nil
}

func (m *memoryRepository) ExistsByStart(_ context.Context, profileID string, start time.Time) (bool, error) {
	for _, p := range m.periods {
		if p.ProfileID.String() == profileID && p.StartDate.Equal(start) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryRepository) FindLatest(_ context.Context, profileID string) (*period.Period, error) {
	var latest *period.Period
	for i := range m.periods {
		p := m.periods[i]
		if p.ProfileID.String() != profileID {
			continue
		}
		if latest == nil || p.StartDate.After(latest.StartDate) {
			latest = &p
		}
	}
	return latest, nil
}

func (m *memoryRepository) FindByProfile(_ context.Context, profileID string) ([]period.Period, error) {
	var out []period.Period
	for _, p := range m.periods {
		if p.ProfileID.String() == profileID {
			out = append(out, p)
		}
	}
	period.SortOldestFirst(out)
	return out, nil
}

func (m *memoryRepository) FindOpenWithBalance(ctx context.Context, profileID string) ([]period.Period, error) {
	all, _ := m.FindByProfile(ctx, profileID)
	var out []period.Period
	for _, p := range all {
		if p.IsOpen() && p.AvailableDays > 0 {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memoryRepository) FindByIDForUpdate(_ context.Context, id string) (*period.Period, error) {
	for i := range m.periods {
		if m.periods[i].ID.String() == id {
			p := m.periods[i]
			return &p, nil
		}
	}
	return nil, errors.New("not found")
}

func (m *memoryRepository) Update(_ context.Context, p *period.Period) error {
	for i := range m.periods {
		if m.periods[i].ID == p.ID {
			m.periods[i] = *p
		}
	}
	return nil
}

func (m *memoryRepository) ListAnchors(context.Context) ([]period.Anchor, error) {
	return m.anchors, nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func starts(periods []period.Period) []string {
	out := make([]string, len(periods))
	for i, p := range periods {
		out[i] = dateutil.Format(p.StartDate)
	}
	return out
}

func TestAccrualEngine_EnsurePeriods(t *testing.T) {
	ctx := context.Background()
	profileID := uuid.New()
	hire := date(2020, time.March, 10)

	t.Run("creates one period per elapsed boundary", func(t *testing.T) {
		repo := &memoryRepository{}
		engine := period.NewAccrualEngine(repo).WithClock(fixedClock(date(2023, time.March, 10)))

		created, err := engine.EnsurePeriods(ctx, profileID, hire)

		assert.NoError(t, err)
		assert.Equal(t, []string{"2020-03-10", "2021-03-10", "2022-03-10", "2023-03-10"}, starts(created))
		for _, p := range created {
			assert.Equal(t, 30, p.AvailableDays)
			assert.Equal(t, period.StatusOpen, p.Status)
		}
	})

	t.Run("day before anniversary creates nothing new", func(t *testing.T) {
		repo := &memoryRepository{}
		engine := period.NewAccrualEngine(repo).WithClock(fixedClock(date(2021, time.March, 9)))

		created, err := engine.EnsurePeriods(ctx, profileID, hire)

		assert.NoError(t, err)
		assert.Equal(t, []string{"2020-03-10"}, starts(created))
	})

	t.Run("hire date in the future creates nothing", func(t *testing.T) {
		repo := &memoryRepository{}
		engine := period.NewAccrualEngine(repo).WithClock(fixedClock(date(2020, time.March, 9)))

		created, err := engine.EnsurePeriods(ctx, profileID, hire)

		assert.NoError(t, err)
		assert.Empty(t, created)
	})

	t.Run("single run equals yearly runs", func(t *testing.T) {
		once := &memoryRepository{}
		_, err := period.NewAccrualEngine(once).
			WithClock(fixedClock(date(2026, time.June, 1))).
			EnsurePeriods(ctx, profileID, hire)
		assert.NoError(t, err)

		incremental := &memoryRepository{}
		for y := 2020; y <= 2026; y++ {
			for _, day := range []time.Time{date(y, time.January, 1), date(y, time.June, 1)} {
				if day.After(date(2026, time.June, 1)) {
					continue
				}
				_, err := period.NewAccrualEngine(incremental).
					WithClock(fixedClock(day)).
					EnsurePeriods(ctx, profileID, hire)
				assert.NoError(t, err)
			}
		}

		got, _ := incremental.FindByProfile(ctx, profileID.String())
		want, _ := once.FindByProfile(ctx, profileID.String())
		assert.Equal(t, starts(want), starts(got))
	})

	t.Run("rerun is idempotent", func(t *testing.T) {
		repo := &memoryRepository{}
		engine := period.NewAccrualEngine(repo).WithClock(fixedClock(date(2024, time.January, 1)))

		_, err := engine.EnsurePeriods(ctx, profileID, hire)
		assert.NoError(t, err)
		created, err := engine.EnsurePeriods(ctx, profileID, hire)

		assert.NoError(t, err)
		assert.Empty(t, created)
		assert.Len(t, repo.periods, 4)
	})

	t.Run("leap day hire keeps periods contiguous", func(t *testing.T) {
		repo := &memoryRepository{}
		engine := period.NewAccrualEngine(repo).WithClock(fixedClock(date(2027, time.January, 1)))

		created, err := engine.EnsurePeriods(ctx, profileID, date(2024, time.February, 29))

		assert.NoError(t, err)
		assert.Equal(t, []string{"2024-02-29", "2025-02-28", "2026-02-28"}, starts(created))
		for i := 1; i < len(created); i++ {
			assert.Equal(t, dateutil.AddDays(created[i-1].EndDate, 1), created[i].StartDate)
		}
	})

	t.Run("concurrent insert counts as existing", func(t *testing.T) {
		repo := &memoryRepository{
			createErr: func(p *period.Period) error {
				if p.StartDate.Equal(date(2020, time.March, 10)) {
					return &pgconn.PgError{Code: "23505", ConstraintName: "uq_period_profile_start"}
				}
				return nil
			},
		}
		engine := period.NewAccrualEngine(repo).WithClock(fixedClock(date(2021, time.April, 1)))

		created, err := engine.EnsurePeriods(ctx, profileID, hire)

		assert.NoError(t, err)
		assert.Equal(t, []string{"2021-03-10"}, starts(created))
	})

	t.Run("negative create failure stops", func(t *testing.T) {
		repo := &memoryRepository{
			createErr: func(*period.Period) error { return errors.New("db down") },
		}
		engine := period.NewAccrualEngine(repo).WithClock(fixedClock(date(2021, time.April, 1)))

		created, err := engine.EnsurePeriods(ctx, profileID, hire)

		assert.EqualError(t, err, "db down")
		assert.Empty(t, created)
	})
}

func TestAccrualEngine_Sweep(t *testing.T) {
	ctx := context.Background()
	healthy := uuid.New()
	broken := uuid.New()

	repo := &memoryRepository{
		anchors: []period.Anchor{
			{ProfileID: broken, HireDate: date(2022, time.January, 1)},
			{ProfileID: healthy, HireDate: date(2022, time.January, 1)},
		},
		createErr: func(p *period.Period) error {
			if p.ProfileID == broken {
				return errors.New("constraint violated")
			}
			return nil
		},
	}
	engine := period.NewAccrualEngine(repo).WithClock(fixedClock(date(2023, time.June, 1)))

	report, err := engine.Sweep(ctx)

	assert.NoError(t, err)
	assert.Equal(t, period.SweepReport{Profiles: 2, Created: 2, Failed: 1}, report)

	again, err := engine.Sweep(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 0, again.Created)
}
