package auth

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	autherrors "go-vacation/internal/auth/errors"
	"go-vacation/internal/auth/token"
	"go-vacation/internal/profile"
	"go-vacation/internal/rbac"
	"go-vacation/internal/shared/contextutil"
	"go-vacation/internal/shared/dateutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (TokenPair, AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (TokenPair, AuthResponse, error)
	GetMe(ctx context.Context, userID string) (AuthResponse, error)
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
	ChangeRole(ctx context.Context, actorID, userID string, req ChangeRoleRequest) (AuthResponse, error)
	EnsureAdmins(ctx context.Context, emails []string) error
}

// TokenIssuer is satisfied by *token.Issuer.
type TokenIssuer interface {
	Generate(userID, role string, isStaff bool, ttl time.Duration) (string, error)
	Parse(raw string) (*token.Claims, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	profiles    profile.Repository
	issuer      TokenIssuer
	adminEmails map[string]struct{}
	logger      *zap.Logger
}

func NewService(db *sql.DB, repo Repository, profiles profile.Repository, issuer TokenIssuer, logger ...*zap.Logger) Service {
	return NewServiceWithAdmins(db, repo, profiles, issuer, nil, logger...)
}

// NewServiceWithAdmins registers users whose email is in adminEmails as
// ADMIN staff instead of EMPLOYEE.
func NewServiceWithAdmins(
	db *sql.DB,
	repo Repository,
	profiles profile.Repository,
	issuer TokenIssuer,
	adminEmails []string,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	admins := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		if e = normalizeEmail(e); e != "" {
			admins[e] = struct{}{}
		}
	}
	return &service{db: db, repo: repo, profiles: profiles, issuer: issuer, adminEmails: admins, logger: l}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *service) Login(ctx context.Context, email, password string) (TokenPair, AuthResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error("login lookup failed", zap.Error(err))
		}
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		log.Warn("login rejected", zap.String("user_id", user.ID.String()))
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInactiveUser
	}

	pair, err := s.issue(user)
	if err != nil {
		log.Error("login token generation failed", zap.String("user_id", user.ID.String()), zap.Error(err))
		return TokenPair{}, AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	log.Info("login success", zap.String("user_id", user.ID.String()), zap.String("role", user.Role))
	return pair, mapToResponse(user), nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (TokenPair, AuthResponse, error) {
	claims, err := s.issuer.Parse(refreshToken)
	if err != nil {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	user, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}
	if !user.IsActive {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInactiveUser
	}

	pair, err := s.issue(user)
	if err != nil {
		return TokenPair{}, AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	return pair, mapToResponse(user), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (AuthResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return AuthResponse{}, autherrors.ErrInvalidUserID
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuthResponse{}, autherrors.ErrUserNotFound
		}
		return AuthResponse{}, err
	}
	resp := mapToResponse(user)

	p, err := s.profiles.FindByUserID(ctx, userID)
	switch {
	case err == nil:
		resp.ProfileID = p.ID.String()
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return AuthResponse{}, err
	}
	return resp, nil
}

// Register creates the user and its employee profile in one transaction.
func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if req.Password != req.PasswordConfirm {
		return AuthResponse{}, autherrors.ErrPasswordMismatch
	}
	hireDate, err := dateutil.Parse(req.HireDate)
	if err != nil {
		return AuthResponse{}, autherrors.ErrInvalidDateFormat
	}
	var birthDate *time.Time
	if req.BirthDate != "" {
		d, err := dateutil.Parse(req.BirthDate)
		if err != nil {
			return AuthResponse{}, autherrors.ErrInvalidDateFormat
		}
		birthDate = &d
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("register begin tx failed", zap.Error(err))
		return AuthResponse{}, err
	}
	defer tx.Rollback()

	ptx := s.profiles.WithTx(tx)

	email := normalizeEmail(req.Email)
	taken, err := ptx.EmailTaken(ctx, email, "")
	if err != nil {
		return AuthResponse{}, err
	}
	if taken {
		return AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
	}
	taken, err = ptx.EmployeeNumberTaken(ctx, req.EmployeeNumber, "")
	if err != nil {
		return AuthResponse{}, err
	}
	if taken {
		return AuthResponse{}, autherrors.ErrEmployeeNumberAlreadyRegistered
	}

	user := &User{
		ID:        uuid.New(),
		Username:  strings.TrimSpace(req.Username),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     email,
		Password:  string(hashed),
		Role:      rbac.RoleEmployee,
		IsActive:  true,
	}
	if _, ok := s.adminEmails[email]; ok {
		user.Role = rbac.RoleAdmin
		user.IsStaff = true
	}
	if err := s.repo.WithTx(tx).Create(ctx, user); err != nil {
		log.Warn("register user persist failed", zap.Error(err))
		return AuthResponse{}, mapRegisterError(err)
	}

	p := &profile.Profile{
		ID:             uuid.New(),
		UserID:         user.ID,
		EmployeeNumber: strings.TrimSpace(req.EmployeeNumber),
		JobTitle:       req.JobTitle,
		OrgUnit:        strings.TrimSpace(req.OrgUnit),
		Location:       req.Location,
		HireDate:       hireDate,
		BirthDate:      birthDate,
	}
	if err := ptx.Create(ctx, p); err != nil {
		log.Warn("register profile persist failed", zap.Error(err))
		return AuthResponse{}, mapRegisterError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("register commit failed", zap.Error(err))
		return AuthResponse{}, err
	}

	log.Info("register success",
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role),
		zap.String("profile_id", p.ID.String()),
	)
	resp := mapToResponse(user)
	resp.ProfileID = p.ID.String()
	return resp, nil
}

// ChangeRole sets the role and staff flag of another user. The new role
// takes effect on the user's next login or refresh.
func (s *service) ChangeRole(ctx context.Context, actorID, userID string, req ChangeRoleRequest) (AuthResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if _, err := uuid.Parse(userID); err != nil {
		return AuthResponse{}, autherrors.ErrInvalidUserID
	}
	if actorID == userID {
		return AuthResponse{}, autherrors.ErrOwnRoleChange
	}
	if !rbac.ValidRole(req.Role) {
		return AuthResponse{}, autherrors.ErrInvalidRole
	}
	role := rbac.NormalizeRole(req.Role)

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuthResponse{}, autherrors.ErrUserNotFound
		}
		return AuthResponse{}, err
	}

	isStaff := user.IsStaff
	if req.IsStaff != nil {
		isStaff = *req.IsStaff
	}
	if err := s.repo.UpdateRole(ctx, userID, role, isStaff); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuthResponse{}, autherrors.ErrUserNotFound
		}
		log.Error("role update failed", zap.String("user_id", userID), zap.Error(err))
		return AuthResponse{}, err
	}

	log.Info("role changed",
		zap.String("actor_id", actorID),
		zap.String("user_id", userID),
		zap.String("from", user.Role),
		zap.String("to", role),
		zap.Bool("is_staff", isStaff),
	)
	user.Role = role
	user.IsStaff = isStaff
	return mapToResponse(user), nil
}

// EnsureAdmins promotes already registered users to ADMIN staff. Emails
// with no account are skipped; Register promotes them on sign-up.
func (s *service) EnsureAdmins(ctx context.Context, emails []string) error {
	log := contextutil.GetLogger(ctx, s.logger)

	for _, email := range emails {
		email = normalizeEmail(email)
		if email == "" {
			continue
		}
		user, err := s.repo.GetByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				log.Info("admin email not registered yet", zap.String("email", email))
				continue
			}
			return err
		}
		if user.Role == rbac.RoleAdmin && user.IsStaff {
			continue
		}
		if err := s.repo.UpdateRole(ctx, user.ID.String(), rbac.RoleAdmin, true); err != nil {
			return err
		}
		log.Info("admin promoted", zap.String("user_id", user.ID.String()), zap.String("from", user.Role))
	}
	return nil
}

func (s *service) issue(user *User) (TokenPair, error) {
	access, err := s.issuer.Generate(user.ID.String(), user.Role, user.IsStaff, token.AccessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.issuer.Generate(user.ID.String(), user.Role, user.IsStaff, token.RefreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
