package httpx

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Kenc01/MediChain-PH/domain"
	"github.com/Kenc01/MediChain-PH/internal/http/handlers"
	"github.com/Kenc01/MediChain-PH/internal/http/middleware"
)

// BuildRouter wires the HTTP surface. Public routes carry no session
// middleware; everything else authenticates first, then layers role and
// status guards.
func BuildRouter(
	ah *handlers.AuthHandlers,
	qh *handlers.QRHandlers,
	th *handlers.TwoFactorHandlers,
	adh *handlers.AdminHandlers,
	authmw *middleware.AuthMW,
	cb *middleware.CasbinMW,
	logger zerolog.Logger,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })
	r.GET("/api/hospitals", ah.ListHospitals)

	auth := r.Group("/api/auth")
	auth.POST("/register/patient", ah.RegisterPatient)
	auth.POST("/register/doctor", ah.RegisterDoctor)
	auth.POST("/register/hospital", ah.RegisterHospital)
	auth.POST("/login", ah.Login)
	auth.POST("/login/emergency", ah.EmergencyLogin)

	// The waiting device holds no session yet, so generate and poll are
	// public. Scan is the authenticated side of the handshake.
	auth.POST("/qr/generate", qh.Generate)
	auth.GET("/qr/poll/:token", qh.Poll)

	session := r.Group("/api/auth").Use(authmw.Authenticate())
	session.POST("/logout", ah.Logout)
	session.GET("/me", ah.Me)
	session.POST("/qr/scan", qh.Scan)

	active := r.Group("/api/auth").Use(authmw.Authenticate(), middleware.RequireActiveStatus())
	active.POST("/2fa/setup", th.Setup)
	active.POST("/2fa/challenge", th.Challenge)
	active.POST("/2fa/verify", th.Verify)
	active.POST("/emergency-code/generate", th.GenerateEmergencyCode)

	adm := r.Group("/api/admin").Use(
		authmw.Authenticate(),
		middleware.RequireRole(domain.RoleHospitalAdmin),
		middleware.RequireActiveStatus(),
		cb.Enforce(),
	)
	adm.GET("/verifications", adh.ListVerifications)
	adm.POST("/verifications/:id/approve", adh.ApproveVerification)
	adm.POST("/verifications/:id/reject", adh.RejectVerification)

	return r
}
