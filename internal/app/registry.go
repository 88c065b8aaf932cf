package app

import (
	"context"
	"database/sql"

	"go-vacation/internal/auth"
	"go-vacation/internal/auth/token"
	"go-vacation/internal/config"
	"go-vacation/internal/leave"
	"go-vacation/internal/messaging/kafka"
	"go-vacation/internal/middleware"
	"go-vacation/internal/onboarding"
	"go-vacation/internal/period"
	"go-vacation/internal/preference"
	"go-vacation/internal/profile"
	"go-vacation/internal/rbac"
	"go-vacation/internal/rbac/infra"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const apiPrefix = "/api/v1"

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	router.Use(middleware.RequestID(), middleware.ContextLogger(zap.L()))

	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	profileRepo := profile.NewRepository(gormDB)
	periodRepo := period.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer)
	if err := rbacService.LoadPolicy(); err != nil {
		return err
	}

	// --- Services ---
	issuer := token.NewIssuer(cfg.JWTSecret)
	accrual := period.NewAccrualEngine(periodRepo)
	authService := auth.NewServiceWithAdmins(db, authRepo, profileRepo, issuer, cfg.AdminEmails)
	profileService := profile.NewService(db, profileRepo)
	onboardingService := onboarding.NewService(db, profileRepo, periodRepo, accrual)
	leaveService := leave.NewServiceWithOutbox(
		db, leaveRepo, profileRepo, periodRepo, outboxRepo, rdb,
		leave.ParseApprovalMode(cfg.ApprovalMode),
	)
	preferenceService := preference.NewService(rdb)

	if err := authService.EnsureAdmins(context.Background(), cfg.AdminEmails); err != nil {
		return err
	}

	// --- Handlers ---
	h := handlers{
		auth:       auth.NewHandler(authService, cfg.IsProduction()),
		profile:    profile.NewHandler(profileService),
		onboarding: onboarding.NewHandler(onboardingService),
		leave:      leave.NewHandler(leaveService),
		preference: preference.NewHandler(preferenceService),
		rbac:       rbac.NewHandler(rbacService),
	}

	authenticate := middleware.AuthMiddleware(issuer)
	registerRoutes(router.Group(apiPrefix), h, rbacService, rdb, authenticate, newOnboardingGate(onboardingService))
	return nil
}

type handlers struct {
	auth       *auth.Handler
	profile    *profile.Handler
	onboarding *onboarding.Handler
	leave      *leave.Handler
	preference *preference.Handler
	rbac       *rbac.Handler
}

// newOnboardingGate closes every authenticated route except onboarding
// itself. Login, register, refresh and logout carry no user and are never
// gated.
func newOnboardingGate(checker middleware.OnboardingChecker) gin.HandlerFunc {
	return middleware.OnboardingGate(checker, onboarding.ExemptPrefix)
}

// registerRoutes mounts every module. Each authenticated group runs
// authenticate then gate.
func registerRoutes(
	api *gin.RouterGroup,
	h handlers,
	rbacService rbac.Service,
	rdb *redis.Client,
	authenticate, gate gin.HandlerFunc,
) {
	auth.RegisterRoutes(api, h.auth, authenticate, gate)
	auth.RegisterUserRoutes(api, h.auth, rbacService, authenticate, gate)
	onboarding.RegisterRoutes(api, h.onboarding, authenticate, gate)
	preference.RegisterRoutes(api, h.preference, authenticate, gate)
	profile.RegisterRoutes(api, h.profile, rbacService, authenticate, gate)
	leave.RegisterRoutes(api, h.leave, rbacService, rdb, authenticate, gate)
	rbac.RegisterRoutes(api, h.rbac, rbacService, authenticate, gate)
}
