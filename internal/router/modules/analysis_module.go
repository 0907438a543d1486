package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	ihttp "github.com/akshay-shet/ecoskin-api/internal/interface/http"
	"github.com/akshay-shet/ecoskin-api/internal/interface/middleware"
)

// AnalysisModule mounts the photo-analysis routes. Every request here costs
// an external model call, so the whole group is rate limited per user.
type AnalysisModule struct {
	Handler *ihttp.AnalysisHandler
	Auth    gin.HandlerFunc
	Redis   *redis.Client
}

func (m *AnalysisModule) Register(rg *gin.RouterGroup) {
	limit := middleware.RateLimit(m.Redis, 20, time.Minute, middleware.KeyByUserID(), nil)
	auth := rg.Group("/analysis", m.Auth, limit)
	auth.POST("/skin", m.Handler.AnalyzeSkin)
	auth.POST("/remedies", m.Handler.Remedies)
	auth.POST("/outfit-colors", m.Handler.OutfitColors)
	auth.POST("/makeup", m.Handler.Makeup)
	auth.POST("/hair", m.Handler.AnalyzeHair)
	auth.POST("/hair-treatments", m.Handler.HairTreatments)
	auth.POST("/hair-advice", m.Handler.HairAdvice)
	auth.POST("/product", m.Handler.AnalyzeProduct)
	auth.POST("/daily-plan", m.Handler.DailyPlan)
	auth.POST("/try-on", m.Handler.VirtualTryOn)
	auth.POST("/time-lapse", m.Handler.TimeLapse)
	auth.POST("/chat", m.Handler.Chat)
}
