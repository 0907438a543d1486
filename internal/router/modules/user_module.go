package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	ihttp "github.com/akshay-shet/ecoskin-api/internal/interface/http"
	"github.com/akshay-shet/ecoskin-api/internal/interface/middleware"
)

// UserModule mounts login/session and profile routes. Login and refresh are
// the only public endpoints in the API.
type UserModule struct {
	Handler *ihttp.UserHandler
	Auth    gin.HandlerFunc
	Redis   *redis.Client
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	loginLimit := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())
	rg.POST("/login", loginLimit, m.Handler.Login)
	rg.POST("/refresh", loginLimit, m.Handler.Refresh)

	auth := rg.Group("", m.Auth)
	auth.POST("/logout", m.Handler.Logout)
	auth.GET("/profile", m.Handler.GetProfile)
	auth.PATCH("/profile", m.Handler.UpdateProfile)
	auth.POST("/profile/avatar", m.Handler.UploadAvatar)
}
