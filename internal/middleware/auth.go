package middleware

import (
	"net/http"
	"strings"

	"github.com/Ashura8/proyectobackend/pkg/jwtutil"
	"github.com/Ashura8/proyectobackend/pkg/logger"
	"github.com/Ashura8/proyectobackend/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Context keys set by Authorize for downstream handlers.
const (
	ContextKeyUserID = "user_id"
	ContextKeyEmail  = "email"
	ContextKeyRole   = "role"
)

// Authorize validates the bearer token and, when allowedRoles is non-empty,
// checks the token's role against it. A missing or malformed header is a
// 401; a bad token or a role outside the allowed set is a 403.
func Authorize(jwtUtil *jwtutil.JWTUtil, allowedRoles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			// Get the Authorization header
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				log.Warn("Missing Authorization header")
				prometheus.RecordAuthError("missing_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
			}

			// Check if it's a Bearer token
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				log.Warn("Invalid Authorization header format")
				prometheus.RecordAuthError("invalid_auth_format")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token"})
			}

			// Validate the token
			claims, err := jwtUtil.ValidateToken(parts[1])
			if err != nil {
				log.Warn("Invalid JWT token", zap.Error(err))
				prometheus.RecordAuthError("invalid_token")
				return c.JSON(http.StatusForbidden, echo.Map{"error": "invalid or expired token"})
			}

			// Enforce role-based access when the route restricts roles
			if len(allowedRoles) > 0 && !contains(allowedRoles, claims.Role) {
				log.Warn("Role not allowed for route",
					zap.String("role", claims.Role),
					zap.Strings("allowed_roles", allowedRoles))
				prometheus.RecordAuthError("role_not_allowed")
				return c.JSON(http.StatusForbidden, echo.Map{
					"error":         "role not authorized for this route",
					"allowed_roles": allowedRoles,
				})
			}

			// Store user info in context for later use
			c.Set(ContextKeyUserID, claims.UserID)
			c.Set(ContextKeyEmail, claims.Email)
			c.Set(ContextKeyRole, claims.Role)

			log.Debug("JWT token validated successfully",
				zap.Uint("user_id", claims.UserID),
				zap.String("email", claims.Email),
				zap.String("role", claims.Role))

			// Token is valid, proceed with the request
			return next(c)
		}
	}
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
