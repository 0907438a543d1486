package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/akshay-shet/ecoskin-api/config"
	"github.com/akshay-shet/ecoskin-api/internal/application"
	"github.com/akshay-shet/ecoskin-api/internal/domain/repository"
	"github.com/akshay-shet/ecoskin-api/internal/infrastructure/gemini"
	"github.com/akshay-shet/ecoskin-api/pkg/helpers"
)

// Container holds the singletons wired at startup. Modules pull what they
// need from here instead of importing each other.
type Container struct {
	Cfg *config.Config
	Log *logrus.Logger

	Pool   *pgxpool.Pool
	Redis  *redis.Client
	GCS    *storage.Client
	ES     *elasticsearch.Client
	Mail   *helpers.RabbitPublisher
	Gemini *gemini.Client

	JWT     *helpers.JWTManager
	Cookies *helpers.Manager

	Repo repository.ProfileRepository

	Profiles *application.ProfileService
	Routines *application.RoutineService
	Analysis *application.AnalysisService
}

var instance *Container

func Set(c *Container) { instance = c }

func Get() *Container { return instance }
