package modules

import (
	"expvar"

	"github.com/gin-gonic/gin"
)

// DebugModule exposes expvar counters for local inspection. Mounted only
// when debug metrics are enabled in config.
type DebugModule struct {
	Auth gin.HandlerFunc
}

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/debug/vars", m.Auth, gin.WrapH(expvar.Handler()))
}
