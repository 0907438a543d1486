package router

import (
	"github.com/akshay-shet/ecoskin-api/internal/container"
	ihttp "github.com/akshay-shet/ecoskin-api/internal/interface/http"
	"github.com/akshay-shet/ecoskin-api/internal/interface/middleware"
	"github.com/akshay-shet/ecoskin-api/internal/router/modules"
)

// InitModules wires handlers from the container and registers every feature
// module on the registry.
func InitModules(reg *Registry) {
	ctn := container.Get()
	auth := middleware.AuthRequired(ctn.JWT, ctn.Redis)

	userHandler := ihttp.NewUserHandler(ctn.Profiles, ctn.Cookies)
	journalHandler := ihttp.NewJournalHandler(ctn.Profiles)
	routineHandler := ihttp.NewRoutineHandler(ctn.Routines)
	analysisHandler := ihttp.NewAnalysisHandler(ctn.Analysis)

	reg.Add(&modules.UserModule{Handler: userHandler, Auth: auth, Redis: ctn.Redis})
	reg.Add(&modules.JournalModule{Handler: journalHandler, Auth: auth})
	reg.Add(&modules.RoutineModule{Handler: routineHandler, Auth: auth})
	reg.Add(&modules.AnalysisModule{Handler: analysisHandler, Auth: auth, Redis: ctn.Redis})
	if ctn.Cfg.DebugMetricsEnabled {
		reg.Add(&modules.DebugModule{Auth: auth})
	}
}
