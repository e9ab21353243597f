package httpx

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/NdopnnoabasiJames/Backend-Template/internal/http/handlers"
	"github.com/NdopnnoabasiJames/Backend-Template/internal/http/middleware"
)

func BuildRouter(ah *handlers.AuthHandlers, uh *handlers.UserHandlers, nh *handlers.NotificationHandlers, ph *handlers.PolicyHandlers, hh *handlers.HealthHandlers, jwtmw *middleware.AuthMW, cb middleware.CasbinMiddleware, throttle *middleware.ThrottleMW, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))

	r.GET("/health", hh.Check)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public auth surface, throttled per client IP.
	auth := r.Group("/auth").Use(throttle.Limit())
	auth.POST("/register", ah.Register)
	auth.POST("/login", ah.Login)
	auth.POST("/phone/verify", ah.VerifyPhone)
	auth.POST("/phone/resend-otp", ah.ResendPhoneOTP)
	auth.POST("/email/verify", ah.VerifyEmail)
	auth.POST("/email/resend-otp", ah.ResendEmailOTP)
	auth.POST("/password/forgot-otp", ah.ForgotPasswordOTP)
	auth.POST("/password/reset-otp", ah.ResetPasswordOTP)
	auth.POST("/password/forgot", ah.ForgotPassword)
	auth.POST("/password/reset", ah.ResetPassword)

	v := r.Group("/").Use(jwtmw.WithJWT(), cb.Enforce())
	v.GET("/auth/me", ah.Me)

	adm := r.Group("/admin").Use(jwtmw.WithJWT(), cb.Enforce())
	adm.GET("/users", uh.List)
	adm.GET("/users/:id", uh.Get)
	adm.PATCH("/users/:id/status", uh.SetStatus)
	adm.DELETE("/users/:id", uh.Delete)
	adm.POST("/notifications/marketing", nh.SendMarketing)
	adm.GET("/policies", ph.List)
	adm.POST("/policies", ph.Add)
	adm.DELETE("/policies", ph.Remove)

	return r
}
