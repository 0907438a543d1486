package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/akshay-shet/ecoskin-api/pkg/helpers"
	"github.com/akshay-shet/ecoskin-api/pkg/response"
)

// AuthRequired parses the access_token cookie and checks the session in
// Redis. A token whose session was dropped (logout, expiry) is rejected even
// if the JWT itself is still valid.
func AuthRequired(jwt *helpers.JWTManager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil || token == "" {
			unauthorized(c)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			unauthorized(c)
			return
		}

		sess, err := rdb.HGetAll(c.Request.Context(), "user:session:"+claims.UserID).Result()
		if err != nil || len(sess) == 0 || sess["session_id"] != claims.SessionID {
			unauthorized(c)
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("userName", sess["name"])
		c.Set("userEmail", sess["email"])
		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	response.Error[any](c, http.StatusUnauthorized, "authentication required", nil)
	c.Abort()
}
