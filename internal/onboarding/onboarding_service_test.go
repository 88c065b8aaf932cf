package onboarding_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"go-vacation/internal/onboarding"
	onboardingerrors "go-vacation/internal/onboarding/errors"
	"go-vacation/internal/period"
	perioderrors "go-vacation/internal/period/errors"
	periodMock "go-vacation/internal/period/mock"
	"go-vacation/internal/profile"
	profileMock "go-vacation/internal/profile/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type fakeAccruer struct {
	calls int
	err   error
}

func (f *fakeAccruer) EnsurePeriods(ctx context.Context, profileID uuid.UUID, hireDate time.Time) ([]period.Period, error) {
	f.calls++
	return nil, f.err
}

type serviceDeps struct {
	db       *sql.DB
	sqlMock  sqlmock.Sqlmock
	profiles *profileMock.MockRepository
	periods  *periodMock.MockRepository
	accruer  *fakeAccruer
	service  onboarding.Service
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)
	db, sqlMock, _ := sqlmock.New()
	t.Cleanup(func() { db.Close() })

	deps := &serviceDeps{
		db:       db,
		sqlMock:  sqlMock,
		profiles: profileMock.NewMockRepository(ctrl),
		periods:  periodMock.NewMockRepository(ctrl),
		accruer:  &fakeAccruer{},
	}
	deps.profiles.EXPECT().WithTx(gomock.Any()).Return(deps.profiles).AnyTimes()
	deps.periods.EXPECT().WithTx(gomock.Any()).Return(deps.periods).AnyTimes()
	deps.service = onboarding.NewService(db, deps.profiles, deps.periods, deps.accruer)
	return deps
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func newcomer() *profile.Profile {
	return &profile.Profile{
		ID:       uuid.New(),
		UserID:   uuid.New(),
		HireDate: time.Date(2021, time.March, 1, 0, 0, 0, 0, time.UTC),
	}
}

func days(n int) *int { return &n }

func TestOnboardingService_RequiresOnboarding(t *testing.T) {
	ctx := context.Background()

	t.Run("pending profile runs accrual and blocks", func(t *testing.T) {
		deps := setupServiceTest(t)
		p := newcomer()
		deps.profiles.EXPECT().FindByUserID(ctx, p.UserID.String()).Return(p, nil)

		required, err := deps.service.RequiresOnboarding(ctx, p.UserID.String())

		require.NoError(t, err)
		assert.True(t, required)
		assert.Equal(t, 1, deps.accruer.calls)
	})

	t.Run("accrual failure still blocks", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.accruer.err = errors.New("db down")
		p := newcomer()
		deps.profiles.EXPECT().FindByUserID(ctx, p.UserID.String()).Return(p, nil)

		required, err := deps.service.RequiresOnboarding(ctx, p.UserID.String())

		require.NoError(t, err)
		assert.True(t, required)
	})

	t.Run("completed profile passes", func(t *testing.T) {
		deps := setupServiceTest(t)
		p := newcomer()
		p.OnboardingComplete = true
		deps.profiles.EXPECT().FindByUserID(ctx, p.UserID.String()).Return(p, nil)

		required, err := deps.service.RequiresOnboarding(ctx, p.UserID.String())

		require.NoError(t, err)
		assert.False(t, required)
		assert.Zero(t, deps.accruer.calls)
	})

	t.Run("missing profile passes", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.profiles.EXPECT().FindByUserID(ctx, "staff").Return(nil, gorm.ErrRecordNotFound)

		required, err := deps.service.RequiresOnboarding(ctx, "staff")

		require.NoError(t, err)
		assert.False(t, required)
	})
}

func TestOnboardingService_Status(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)
	p := newcomer()
	periods := []period.Period{period.New(p.ID, p.HireDate), period.New(p.ID, p.HireDate.AddDate(1, 0, 0))}

	deps.profiles.EXPECT().FindByUserID(ctx, p.UserID.String()).Return(p, nil)
	deps.periods.EXPECT().FindByProfile(ctx, p.ID.String()).Return(periods, nil)

	resp, err := deps.service.Status(ctx, p.UserID.String())

	require.NoError(t, err)
	assert.False(t, resp.Completed)
	assert.Len(t, resp.Periods, 2)
	assert.Equal(t, "2021-03-01", resp.Periods[0].StartDate)
	assert.Equal(t, "2022-02-28", resp.Periods[0].EndDate)
}

func TestOnboardingService_Complete(t *testing.T) {
	ctx := context.Background()

	t.Run("adjusts balances and marks the profile", func(t *testing.T) {
		deps := setupServiceTest(t)
		p := newcomer()
		first := period.New(p.ID, p.HireDate)
		second := period.New(p.ID, p.HireDate.AddDate(1, 0, 0))

		expectTx(t, deps.sqlMock, true)
		deps.profiles.EXPECT().FindByUserID(ctx, p.UserID.String()).Return(p, nil)
		deps.periods.EXPECT().FindByIDForUpdate(ctx, first.ID.String()).Return(&first, nil)
		deps.periods.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, got *period.Period) error {
			assert.Equal(t, 0, got.AvailableDays)
			assert.Equal(t, period.StatusClosed, got.Status)
			return nil
		})
		deps.periods.EXPECT().FindByIDForUpdate(ctx, second.ID.String()).Return(&second, nil)
		deps.periods.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, got *period.Period) error {
			assert.Equal(t, 12, got.AvailableDays)
			assert.Equal(t, period.StatusOpen, got.Status)
			return nil
		})
		deps.profiles.EXPECT().MarkOnboarded(ctx, p.ID.String()).Return(nil)
		deps.periods.EXPECT().FindByProfile(ctx, p.ID.String()).Return([]period.Period{first, second}, nil)

		resp, err := deps.service.Complete(ctx, p.UserID.String(), onboarding.CompleteRequest{
			Balances: []onboarding.PeriodBalance{
				{PeriodID: first.ID.String(), AvailableDays: days(0)},
				{PeriodID: second.ID.String(), AvailableDays: days(12)},
			},
		})

		require.NoError(t, err)
		assert.True(t, resp.Completed)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative period of someone else", func(t *testing.T) {
		deps := setupServiceTest(t)
		p := newcomer()
		foreign := period.New(uuid.New(), p.HireDate)

		expectTx(t, deps.sqlMock, false)
		deps.profiles.EXPECT().FindByUserID(ctx, p.UserID.String()).Return(p, nil)
		deps.periods.EXPECT().FindByIDForUpdate(ctx, foreign.ID.String()).Return(&foreign, nil)
		deps.profiles.EXPECT().MarkOnboarded(gomock.Any(), gomock.Any()).Times(0)

		_, err := deps.service.Complete(ctx, p.UserID.String(), onboarding.CompleteRequest{
			Balances: []onboarding.PeriodBalance{{PeriodID: foreign.ID.String(), AvailableDays: days(10)}},
		})

		assert.ErrorIs(t, err, onboardingerrors.ErrUnknownPeriod)
	})

	t.Run("negative balance above entitlement", func(t *testing.T) {
		deps := setupServiceTest(t)
		p := newcomer()
		first := period.New(p.ID, p.HireDate)

		expectTx(t, deps.sqlMock, false)
		deps.profiles.EXPECT().FindByUserID(ctx, p.UserID.String()).Return(p, nil)
		deps.periods.EXPECT().FindByIDForUpdate(ctx, first.ID.String()).Return(&first, nil)
		deps.periods.EXPECT().Update(gomock.Any(), gomock.Any()).Times(0)

		_, err := deps.service.Complete(ctx, p.UserID.String(), onboarding.CompleteRequest{
			Balances: []onboarding.PeriodBalance{{PeriodID: first.ID.String(), AvailableDays: days(31)}},
		})

		assert.ErrorIs(t, err, perioderrors.ErrInvalidAdjustment)
	})

	t.Run("negative duplicate period", func(t *testing.T) {
		deps := setupServiceTest(t)
		p := newcomer()
		first := period.New(p.ID, p.HireDate)

		expectTx(t, deps.sqlMock, false)
		deps.profiles.EXPECT().FindByUserID(ctx, p.UserID.String()).Return(p, nil)
		deps.periods.EXPECT().FindByIDForUpdate(ctx, first.ID.String()).Return(&first, nil)
		deps.periods.EXPECT().Update(ctx, gomock.Any()).Return(nil)

		_, err := deps.service.Complete(ctx, p.UserID.String(), onboarding.CompleteRequest{
			Balances: []onboarding.PeriodBalance{
				{PeriodID: first.ID.String(), AvailableDays: days(10)},
				{PeriodID: first.ID.String(), AvailableDays: days(5)},
			},
		})

		assert.ErrorIs(t, err, onboardingerrors.ErrDuplicatePeriod)
	})

	t.Run("negative already onboarded", func(t *testing.T) {
		deps := setupServiceTest(t)
		p := newcomer()
		p.OnboardingComplete = true

		expectTx(t, deps.sqlMock, false)
		deps.profiles.EXPECT().FindByUserID(ctx, p.UserID.String()).Return(p, nil)

		_, err := deps.service.Complete(ctx, p.UserID.String(), onboarding.CompleteRequest{})

		assert.ErrorIs(t, err, onboardingerrors.ErrAlreadyOnboarded)
	})

	t.Run("negative no profile", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, false)
		deps.profiles.EXPECT().FindByUserID(ctx, "staff").Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Complete(ctx, "staff", onboarding.CompleteRequest{})

		assert.ErrorIs(t, err, onboardingerrors.ErrProfileRequired)
	})
}
