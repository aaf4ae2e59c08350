package middleware

import (
	"ai_course_backend/internal/config"
	"ai_course_backend/internal/util"
	"strings"

	"github.com/gin-gonic/gin"
)

// SessionMiddleware resolves the guest learner identity from the
// bearer token issued by POST /api/session.
func SessionMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseSessionToken(tokenString, cfg.Session.Secret)
		if err != nil || claims.LearnerID == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("learner_id", claims.LearnerID)
		c.Next()
	}
}
