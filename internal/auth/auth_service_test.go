package auth_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"go-vacation/internal/auth"
	autherrors "go-vacation/internal/auth/errors"
	authMock "go-vacation/internal/auth/mock"
	"go-vacation/internal/auth/token"
	"go-vacation/internal/profile"
	profileMock "go-vacation/internal/profile/mock"
	"go-vacation/internal/rbac"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db       *sql.DB
	sqlMock  sqlmock.Sqlmock
	repo     *authMock.MockRepository
	profiles *profileMock.MockRepository
	issuer   *token.Issuer
	service  auth.Service
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)
	db, sqlMock, _ := sqlmock.New()
	t.Cleanup(func() { db.Close() })

	deps := &serviceDeps{
		db:       db,
		sqlMock:  sqlMock,
		repo:     authMock.NewMockRepository(ctrl),
		profiles: profileMock.NewMockRepository(ctrl),
		issuer:   token.NewIssuer("test-secret"),
	}
	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo).AnyTimes()
	deps.profiles.EXPECT().WithTx(gomock.Any()).Return(deps.profiles).AnyTimes()
	deps.service = auth.NewService(db, deps.repo, deps.profiles, deps.issuer)
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

func sampleUser(t *testing.T, password string) *auth.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &auth.User{
		ID:        uuid.New(),
		Username:  "ana",
		FirstName: "Ana",
		LastName:  "Souza",
		Email:     "ana@example.com",
		Password:  string(hashed),
		Role:      rbac.RoleManager,
		IsActive:  true,
	}
}

func validRegister() auth.RegisterRequest {
	return auth.RegisterRequest{
		Username:        "ana",
		FirstName:       "Ana",
		LastName:        "Souza",
		Email:           "Ana@Example.com",
		Password:        "password123",
		PasswordConfirm: "password123",
		EmployeeNumber:  "M-100",
		JobTitle:        "Analyst",
		OrgUnit:         "Finance",
		Location:        "HQ",
		HireDate:        "2023-01-10",
		BirthDate:       "1990-05-04",
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success issues tokens with role", func(t *testing.T) {
		deps := setupServiceTest(t)
		user := sampleUser(t, "password123")
		deps.repo.EXPECT().GetByEmail(ctx, user.Email).Return(user, nil)

		pair, resp, err := deps.service.Login(ctx, user.Email, "password123")

		require.NoError(t, err)
		assert.Equal(t, "Ana Souza", resp.Name)

		claims, err := deps.issuer.Parse(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID.String(), claims.UserID)
		assert.Equal(t, rbac.RoleManager, claims.Role)
		assert.NotEmpty(t, pair.RefreshToken)
	})

	t.Run("negative wrong password", func(t *testing.T) {
		deps := setupServiceTest(t)
		user := sampleUser(t, "password123")
		deps.repo.EXPECT().GetByEmail(ctx, user.Email).Return(user, nil)

		_, _, err := deps.service.Login(ctx, user.Email, "wrongpass")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative unknown email", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().GetByEmail(ctx, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)

		_, _, err := deps.service.Login(ctx, "nobody@example.com", "password123")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative inactive", func(t *testing.T) {
		deps := setupServiceTest(t)
		user := sampleUser(t, "password123")
		user.IsActive = false
		deps.repo.EXPECT().GetByEmail(ctx, user.Email).Return(user, nil)

		_, _, err := deps.service.Login(ctx, user.Email, "password123")

		assert.ErrorIs(t, err, autherrors.ErrInactiveUser)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		user := sampleUser(t, "password123")
		refresh, err := deps.issuer.Generate(user.ID.String(), user.Role, false, token.RefreshTTL)
		require.NoError(t, err)
		deps.repo.EXPECT().GetByID(ctx, user.ID.String()).Return(user, nil)

		pair, resp, err := deps.service.RefreshToken(ctx, refresh)

		require.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.Equal(t, user.Email, resp.Email)
	})

	t.Run("negative garbage token", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, _, err := deps.service.RefreshToken(ctx, "not-a-token")

		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})
}

func TestAuthService_GetMe(t *testing.T) {
	ctx := context.Background()

	t.Run("includes profile id", func(t *testing.T) {
		deps := setupServiceTest(t)
		user := sampleUser(t, "password123")
		profileID := uuid.New()
		deps.repo.EXPECT().GetByID(ctx, user.ID.String()).Return(user, nil)
		deps.profiles.EXPECT().FindByUserID(ctx, user.ID.String()).Return(&profile.Profile{ID: profileID}, nil)

		resp, err := deps.service.GetMe(ctx, user.ID.String())

		require.NoError(t, err)
		assert.Equal(t, profileID.String(), resp.ProfileID)
	})

	t.Run("staff without profile", func(t *testing.T) {
		deps := setupServiceTest(t)
		user := sampleUser(t, "password123")
		user.IsStaff = true
		deps.repo.EXPECT().GetByID(ctx, user.ID.String()).Return(user, nil)
		deps.profiles.EXPECT().FindByUserID(ctx, user.ID.String()).Return(nil, gorm.ErrRecordNotFound)

		resp, err := deps.service.GetMe(ctx, user.ID.String())

		require.NoError(t, err)
		assert.True(t, resp.IsStaff)
		assert.Empty(t, resp.ProfileID)
	})

	t.Run("negative invalid id", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.GetMe(ctx, "abc")

		assert.ErrorIs(t, err, autherrors.ErrInvalidUserID)
	})
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("success creates user and profile", func(t *testing.T) {
		deps := setupServiceTest(t)
		req := validRegister()

		expectTx(t, deps.sqlMock, true)
		deps.profiles.EXPECT().EmailTaken(ctx, "ana@example.com", "").Return(false, nil)
		deps.profiles.EXPECT().EmployeeNumberTaken(ctx, "M-100", "").Return(false, nil)
		var userID uuid.UUID
		deps.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u *auth.User) error {
			assert.Equal(t, "ana@example.com", u.Email)
			assert.Equal(t, rbac.RoleEmployee, u.Role)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("password123")))
			userID = u.ID
			return nil
		})
		deps.profiles.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, p *profile.Profile) error {
			assert.Equal(t, userID, p.UserID)
			assert.Equal(t, "Finance", p.OrgUnit)
			assert.Equal(t, "2023-01-10", p.HireDate.Format("2006-01-02"))
			require.NotNil(t, p.BirthDate)
			assert.False(t, p.OnboardingComplete)
			return nil
		})

		resp, err := deps.service.Register(ctx, req)

		require.NoError(t, err)
		assert.NotEmpty(t, resp.ProfileID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative password mismatch", func(t *testing.T) {
		deps := setupServiceTest(t)
		req := validRegister()
		req.PasswordConfirm = "different1"

		_, err := deps.service.Register(ctx, req)

		assert.ErrorIs(t, err, autherrors.ErrPasswordMismatch)
	})

	t.Run("negative duplicate email", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, false)
		deps.profiles.EXPECT().EmailTaken(ctx, "ana@example.com", "").Return(true, nil)

		_, err := deps.service.Register(ctx, validRegister())

		assert.ErrorIs(t, err, autherrors.ErrEmailAlreadyRegistered)
	})

	t.Run("negative duplicate employee number", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, false)
		deps.profiles.EXPECT().EmailTaken(ctx, "ana@example.com", "").Return(false, nil)
		deps.profiles.EXPECT().EmployeeNumberTaken(ctx, "M-100", "").Return(true, nil)

		_, err := deps.service.Register(ctx, validRegister())

		assert.ErrorIs(t, err, autherrors.ErrEmployeeNumberAlreadyRegistered)
	})

	t.Run("negative username race maps unique violation", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, false)
		deps.profiles.EXPECT().EmailTaken(ctx, gomock.Any(), "").Return(false, nil)
		deps.profiles.EXPECT().EmployeeNumberTaken(ctx, gomock.Any(), "").Return(false, nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_users_username"})

		_, err := deps.service.Register(ctx, validRegister())

		assert.ErrorIs(t, err, autherrors.ErrUsernameAlreadyRegistered)
	})

	t.Run("negative profile failure rolls back", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, false)
		deps.profiles.EXPECT().EmailTaken(ctx, gomock.Any(), "").Return(false, nil)
		deps.profiles.EXPECT().EmployeeNumberTaken(ctx, gomock.Any(), "").Return(false, nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		deps.profiles.EXPECT().Create(ctx, gomock.Any()).Return(errors.New("db down"))

		_, err := deps.service.Register(ctx, validRegister())

		assert.EqualError(t, err, "db down")
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative bad hire date", func(t *testing.T) {
		deps := setupServiceTest(t)
		req := validRegister()
		req.HireDate = "10/01/2023"

		_, err := deps.service.Register(ctx, req)

		assert.ErrorIs(t, err, autherrors.ErrInvalidDateFormat)
	})
}

func TestAuthService_RegisterAdminEmail(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)
	svc := auth.NewServiceWithAdmins(deps.db, deps.repo, deps.profiles, deps.issuer, []string{" ANA@example.com "})

	expectTx(t, deps.sqlMock, true)
	deps.profiles.EXPECT().EmailTaken(ctx, "ana@example.com", "").Return(false, nil)
	deps.profiles.EXPECT().EmployeeNumberTaken(ctx, "M-100", "").Return(false, nil)
	deps.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u *auth.User) error {
		assert.Equal(t, rbac.RoleAdmin, u.Role)
		assert.True(t, u.IsStaff)
		return nil
	})
	deps.profiles.EXPECT().Create(ctx, gomock.Any()).Return(nil)

	resp, err := svc.Register(ctx, validRegister())

	require.NoError(t, err)
	assert.Equal(t, rbac.RoleAdmin, resp.Role)
	assert.True(t, resp.IsStaff)
}

func TestAuthService_ChangeRole(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.NewString()

	t.Run("success promotes and keeps staff flag", func(t *testing.T) {
		deps := setupServiceTest(t)
		user := sampleUser(t, "password123")
		user.Role = rbac.RoleEmployee
		deps.repo.EXPECT().GetByID(ctx, user.ID.String()).Return(user, nil)
		deps.repo.EXPECT().UpdateRole(ctx, user.ID.String(), rbac.RoleHR, false).Return(nil)

		resp, err := deps.service.ChangeRole(ctx, actorID, user.ID.String(), auth.ChangeRoleRequest{Role: "hr"})

		require.NoError(t, err)
		assert.Equal(t, rbac.RoleHR, resp.Role)
		assert.False(t, resp.IsStaff)
	})

	t.Run("success sets staff flag", func(t *testing.T) {
		deps := setupServiceTest(t)
		user := sampleUser(t, "password123")
		staff := true
		deps.repo.EXPECT().GetByID(ctx, user.ID.String()).Return(user, nil)
		deps.repo.EXPECT().UpdateRole(ctx, user.ID.String(), rbac.RoleAdmin, true).Return(nil)

		resp, err := deps.service.ChangeRole(ctx, actorID, user.ID.String(),
			auth.ChangeRoleRequest{Role: rbac.RoleAdmin, IsStaff: &staff})

		require.NoError(t, err)
		assert.True(t, resp.IsStaff)
	})

	t.Run("negative own role", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.ChangeRole(ctx, actorID, actorID, auth.ChangeRoleRequest{Role: rbac.RoleEmployee})

		assert.ErrorIs(t, err, autherrors.ErrOwnRoleChange)
	})

	t.Run("negative unknown role", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.ChangeRole(ctx, actorID, uuid.NewString(), auth.ChangeRoleRequest{Role: "INTERN"})

		assert.ErrorIs(t, err, autherrors.ErrInvalidRole)
	})

	t.Run("negative invalid id", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.ChangeRole(ctx, actorID, "abc", auth.ChangeRoleRequest{Role: rbac.RoleHR})

		assert.ErrorIs(t, err, autherrors.ErrInvalidUserID)
	})

	t.Run("negative user not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.NewString()
		deps.repo.EXPECT().GetByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.ChangeRole(ctx, actorID, id, auth.ChangeRoleRequest{Role: rbac.RoleHR})

		assert.ErrorIs(t, err, autherrors.ErrUserNotFound)
	})
}

func TestAuthService_EnsureAdmins(t *testing.T) {
	ctx := context.Background()

	t.Run("promotes registered users and skips the rest", func(t *testing.T) {
		deps := setupServiceTest(t)
		employee := sampleUser(t, "password123")
		employee.Role = rbac.RoleEmployee
		admin := sampleUser(t, "password123")
		admin.Email = "root@example.com"
		admin.Role = rbac.RoleAdmin
		admin.IsStaff = true

		deps.repo.EXPECT().GetByEmail(ctx, "ana@example.com").Return(employee, nil)
		deps.repo.EXPECT().UpdateRole(ctx, employee.ID.String(), rbac.RoleAdmin, true).Return(nil)
		deps.repo.EXPECT().GetByEmail(ctx, "root@example.com").Return(admin, nil)
		deps.repo.EXPECT().GetByEmail(ctx, "later@example.com").Return(nil, gorm.ErrRecordNotFound)

		err := deps.service.EnsureAdmins(ctx, []string{"Ana@Example.com", "root@example.com", "", "later@example.com"})

		assert.NoError(t, err)
	})

	t.Run("negative lookup failure", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().GetByEmail(ctx, "ana@example.com").Return(nil, errors.New("db down"))

		err := deps.service.EnsureAdmins(ctx, []string{"ana@example.com"})

		assert.EqualError(t, err, "db down")
	})
}
