package middleware

import (
	"net/http"
	"strings"

	"talentbridge_backend/internal/config"
	"talentbridge_backend/internal/model"
	"talentbridge_backend/internal/util"
	"talentbridge_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func tokenFromRequest(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return c.Query("token")
}

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			util.Abort(c, http.StatusUnauthorized, "Unauthorized", nil)
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			logger.Log.Debug("JWT rejected", zap.Error(err), zap.String("path", c.FullPath()))
			util.Abort(c, http.StatusUnauthorized, "Unauthorized", nil)
			return
		}

		c.Set("user", claims)
		c.Next()
	}
}

// TryAuthMiddleware sets the user when a valid token is present and lets
// anonymous requests through.
func TryAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := tokenFromRequest(c); tokenString != "" {
			if claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret); err == nil {
				c.Set("user", claims)
			}
		}
		c.Next()
	}
}

func RoleMiddleware(types ...model.UserType) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Abort(c, http.StatusUnauthorized, "Unauthorized", nil)
			return
		}

		for _, t := range types {
			if user.Type == t {
				c.Next()
				return
			}
		}

		util.Abort(c, http.StatusForbidden, "Forbidden", nil)
	}
}
