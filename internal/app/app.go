package app

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Kenc01/MediChain-PH/internal/config"
	httpx "github.com/Kenc01/MediChain-PH/internal/http"
	"github.com/Kenc01/MediChain-PH/internal/http/handlers"
	"github.com/Kenc01/MediChain-PH/internal/http/middleware"
	"github.com/Kenc01/MediChain-PH/internal/infrastructure/audit"
	"github.com/Kenc01/MediChain-PH/internal/infrastructure/auth"
	"github.com/Kenc01/MediChain-PH/internal/infrastructure/database"
	"github.com/Kenc01/MediChain-PH/internal/infrastructure/notifications"
	"github.com/Kenc01/MediChain-PH/internal/infrastructure/repositories"
	"github.com/Kenc01/MediChain-PH/internal/jobs"
	"github.com/Kenc01/MediChain-PH/internal/services"
)

func Run(cfg *config.Config) error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "medichain-auth").Logger()

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	gdb, err := database.Open(cfg.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(gdb); err != nil {
		return err
	}
	cas, err := auth.NewCasbinService(gdb, cfg.CasbinModelPath)
	if err != nil {
		return err
	}
	rdb := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB).Client
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return err
	}

	// Infrastructure services
	passwordSvc := auth.NewPasswordService()
	codeSvc := auth.NewCodeService(cfg.ChallengeLength, 0)
	notificationSvc := notifications.NewTwilioService(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom, logger)
	auditLog := audit.NewZerologAuditLogger(logger)

	// Repositories
	userRepo := repositories.NewUserRepository(gdb)
	profileRepo := repositories.NewProfileRepository(gdb)
	verificationRepo := repositories.NewVerificationRepository(gdb)
	methodRepo := repositories.NewTwoFactorMethodRepository(gdb)
	qrRepo := repositories.NewQRTokenRepository(gdb)
	sessionRepo := repositories.NewSessionRepository(rdb)
	challengeRepo := repositories.NewChallengeRepository(rdb)

	// Domain services
	sessionSvc := services.NewSessionService(sessionRepo, userRepo, codeSvc, cfg.SessionTTL)
	authSvc := services.NewAuthService(userRepo, profileRepo, verificationRepo, sessionSvc, passwordSvc, auditLog)
	qrSvc := services.NewQRLoginService(qrRepo, userRepo, sessionSvc, codeSvc, cfg.QRTokenTTL, auditLog)
	challengeSvc := services.NewChallengeService(challengeRepo, methodRepo, userRepo, codeSvc, notificationSvc, cfg.ChallengeTTL, auditLog)
	emergencySvc := services.NewEmergencyAccessService(userRepo, sessionSvc, codeSvc, auditLog)
	approvalSvc := services.NewApprovalService(verificationRepo, auditLog)

	// Handlers and middleware
	authH := handlers.NewAuthHandlers(authSvc, emergencySvc, profileRepo)
	qrH := handlers.NewQRHandlers(qrSvc)
	tfH := handlers.NewTwoFactorHandlers(challengeSvc, emergencySvc)
	admH := handlers.NewAdminHandlers(approvalSvc)
	authMW := middleware.NewAuthMW(sessionSvc)
	casbinMW := middleware.NewCasbinMW(cas.E)

	r := httpx.BuildRouter(authH, qrH, tfH, admH, authMW, casbinMW, logger)

	seeded, err := seedAdminPolicy(cas.E)
	if err != nil {
		return err
	}
	if seeded {
		logger.Info().Msg("casbin: seeded default policies")
	}

	scheduler := jobs.NewScheduler(qrRepo, cfg.QRPurgeSchedule, logger)
	if err := scheduler.Start(); err != nil {
		return err
	}
	defer scheduler.Stop()

	addr := ":" + cfg.Port
	logger.Info().Str("addr", addr).Msg("listening")
	return http.ListenAndServe(addr, r)
}

// seedAdminPolicy installs the admin route grant on a first run. A policy
// table that already has rows is left untouched. Reports whether anything
// was written; a failed seed is fatal, admin routes would be dead otherwise.
func seedAdminPolicy(e *casbin.Enforcer) (bool, error) {
	policies, err := e.GetPolicy()
	if err != nil {
		return false, fmt.Errorf("failed to read casbin policies: %w", err)
	}
	if len(policies) > 0 {
		return false, nil
	}
	if _, err := e.AddPolicy("role_hospital_admin", "/api/admin/*", "(GET|POST)"); err != nil {
		return false, fmt.Errorf("failed to seed admin policy: %w", err)
	}
	if err := e.SavePolicy(); err != nil {
		return false, fmt.Errorf("failed to persist seeded policies: %w", err)
	}
	return true, nil
}
