package modules

import (
	"github.com/gin-gonic/gin"

	ihttp "github.com/akshay-shet/ecoskin-api/internal/interface/http"
)

// RoutineModule mounts the weekly routine tracker routes, including the
// edit-session endpoints.
type RoutineModule struct {
	Handler *ihttp.RoutineHandler
	Auth    gin.HandlerFunc
}

func (m *RoutineModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/routine", m.Auth)
	auth.GET("", m.Handler.Get)
	auth.PUT("", m.Handler.Replace)
	auth.DELETE("", m.Handler.Clear)
	auth.POST("/generate", m.Handler.Generate)
	auth.POST("/blank", m.Handler.StartBlank)
	auth.POST("/toggle", m.Handler.ToggleStep)

	edit := auth.Group("/edit")
	edit.POST("", m.Handler.BeginEdit)
	edit.POST("/steps", m.Handler.StageAddStep)
	edit.PUT("/steps", m.Handler.StageUpdateStep)
	edit.DELETE("/steps", m.Handler.StageDeleteStep)
	edit.PUT("/focus", m.Handler.StageWeeklyFocus)
	edit.POST("/save", m.Handler.SaveEdit)
	edit.POST("/cancel", m.Handler.CancelEdit)
}
