package modules

import (
	"github.com/gin-gonic/gin"

	ihttp "github.com/akshay-shet/ecoskin-api/internal/interface/http"
)

// JournalModule mounts the skin journal routes.
type JournalModule struct {
	Handler *ihttp.JournalHandler
	Auth    gin.HandlerFunc
}

func (m *JournalModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/journal", m.Auth)
	auth.POST("", m.Handler.Add)
	auth.GET("", m.Handler.List)
	auth.GET("/search", m.Handler.Search)
}
