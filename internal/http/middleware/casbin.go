package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/NdopnnoabasiJames/Backend-Template/domain"
)

// CasbinMiddleware defines the interface for authorization middleware
type CasbinMiddleware interface {
	Enforce() gin.HandlerFunc
}

// CasbinMW wraps the casbin enforcer for middleware
type CasbinMW struct {
	enforcer domain.CasbinEnforcer
	logger   *slog.Logger
}

// NewCasbinMW creates new casbin middleware wrapper
func NewCasbinMW(enforcer domain.CasbinEnforcer, logger *slog.Logger) *CasbinMW {
	return &CasbinMW{enforcer: enforcer, logger: logger}
}

// Enforce returns the casbin authorization middleware. Policy subjects use
// the "role_" prefix with the lowercased role name, so an ADMIN user is
// matched against role_admin.
func (mw *CasbinMW) Enforce() gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		userID, userExists := c.Get("user_id")
		userRole, roleExists := c.Get("user_role")
		if !userExists || !roleExists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID or role not found in token"})
			c.Abort()
			return
		}

		path := c.Request.URL.Path
		method := c.Request.Method
		casbinRole := "role_" + strings.ToLower(userRole.(string))

		allowed, err := mw.enforcer.Enforce(casbinRole, path, method)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Authorization check failed"})
			c.Abort()
			return
		}

		if !allowed {
			mw.logger.Warn("access denied",
				"event", string(domain.AccessDeniedEvent),
				"user_id", userID,
				"role", casbinRole,
				"path", path,
				"method", method,
			)
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			c.Abort()
			return
		}

		c.Next()
	})
}
