package middleware

import (
	"net/http"
	"smart_parking_booking/internal/service"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	AuthorizationHeaderKey  = "Authorization"
	AuthorizationTypeBearer = "Bearer"
	UserIDKey               = "userID"
	UserRoleKey             = "userRole"
	UsernameKey             = "username"
)

type AuthMiddleware struct {
	authService *service.AuthService
	logger      *zerolog.Logger
}

func NewAuthMiddleware(authService *service.AuthService, logger *zerolog.Logger) *AuthMiddleware {
	return &AuthMiddleware{authService: authService, logger: logger}
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "error": message})
}

// Authenticate là middleware để xác thực JWT
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeaderKey)
		if authHeader == "" {
			abort(c, http.StatusUnauthorized, "Missing authorization header")
			return
		}

		fields := strings.Fields(authHeader)
		if len(fields) < 2 || !strings.EqualFold(fields[0], AuthorizationTypeBearer) {
			abort(c, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		_, claims, err := m.authService.ValidateToken(fields[1])
		if err != nil {
			m.logger.Debug().Err(err).Msg("rejected token")
			abort(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		userID, okUserID := claims["sub"].(string)
		userRole, okUserRole := claims["role"].(string)
		username, okUsername := claims["username"].(string)
		if !okUserID || !okUserRole || !okUsername {
			abort(c, http.StatusUnauthorized, "Invalid token claims")
			return
		}

		c.Set(UserIDKey, userID)
		c.Set(UserRoleKey, userRole)
		c.Set(UsernameKey, username)
		c.Next()
	}
}

// AuthorizeRole là middleware để kiểm tra vai trò, cần chạy sau Authenticate().
func (m *AuthMiddleware) AuthorizeRole(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := c.GetString(UserRoleKey)
		if userRole == "" {
			m.logger.Warn().Str("path", c.FullPath()).Msg("no role in context, Authenticate() must run first")
			abort(c, http.StatusForbidden, "Access denied")
			return
		}

		for _, reqRole := range requiredRoles {
			if userRole == reqRole {
				c.Next()
				return
			}
		}

		m.logger.Info().
			Str("role", userRole).
			Strs("required", requiredRoles).
			Str("username", c.GetString(UsernameKey)).
			Msg("role not permitted")
		abort(c, http.StatusForbidden, "Access denied")
	}
}
