package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/akshay-shet/ecoskin-api/config"
	"github.com/akshay-shet/ecoskin-api/internal/application"
	"github.com/akshay-shet/ecoskin-api/internal/container"
	"github.com/akshay-shet/ecoskin-api/internal/infrastructure/gemini"
	"github.com/akshay-shet/ecoskin-api/internal/infrastructure/postgres"
	"github.com/akshay-shet/ecoskin-api/internal/interface/middleware"
	"github.com/akshay-shet/ecoskin-api/internal/router"
	"github.com/akshay-shet/ecoskin-api/pkg/helpers"
	"github.com/akshay-shet/ecoskin-api/pkg/validation"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := helpers.NewLogger(cfg.Env)

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.WithError(err).Fatal("postgres connection failed")
	}
	defer pool.Close()

	if err := runMigrations(cfg); err != nil {
		log.WithError(err).Fatal("migrations failed")
	}

	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.WithError(err).Fatal("redis connection failed")
	}
	defer rdb.Close()

	gcs, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
	if err != nil {
		log.WithError(err).Warn("object storage unavailable, visuals and avatars disabled")
		gcs = nil
	}

	es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		log.WithError(err).Warn("elasticsearch unavailable, journal search disabled")
		es = nil
	}

	var mail *helpers.RabbitPublisher
	if cfg.MailSendEnabled {
		mail, err = helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			log.WithError(err).Warn("rabbitmq unavailable, emails disabled")
			mail = nil
		} else {
			defer mail.Close()
		}
	}

	gem := gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiBaseURL, cfg.GeminiTextModel, cfg.GeminiImageModel, cfg.GeminiTimeout)
	jwt := helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)
	cookies := helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure)
	repo := postgres.NewProfileRepository(pool)

	mailOn := cfg.MailSendEnabled && mail != nil
	profiles := &application.ProfileService{
		Repo: repo, JWT: jwt, Redis: rdb,
		GCS: gcs, Bucket: cfg.GCSBucket,
		ES: es, ESIndex: cfg.ESJournalIndex,
		Gemini: gem, Mail: mail, MailOn: mailOn,
		Log: log, SessionTTL: cfg.RefreshTTL,
	}
	routines := &application.RoutineService{
		Repo: repo, Redis: rdb, Gemini: gem,
		Mail: mail, MailOn: mailOn,
		Log: log, EditTTL: cfg.EditSessionTTL,
	}
	analysis := &application.AnalysisService{
		Repo: repo, Gemini: gem,
		GCS: gcs, Bucket: cfg.GCSBucket,
		Log: log,
	}

	container.Set(&container.Container{
		Cfg: cfg, Log: log,
		Pool: pool, Redis: rdb, GCS: gcs, ES: es, Mail: mail, Gemini: gem,
		JWT: jwt, Cookies: cookies, Repo: repo,
		Profiles: profiles, Routines: routines, Analysis: analysis,
	})

	gin.SetMode(cfg.GinMode)
	validation.Init()
	engine := gin.New()
	engine.Use(gin.Recovery())
	if cfg.HTTPLogEnabled {
		engine.Use(gin.Logger())
	}
	engine.Use(middleware.RealIP())
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "app": cfg.AppName})
	})

	reg := router.NewRegistry(engine)
	reg.Use(middleware.RateLimit(rdb, 300, time.Minute, middleware.KeyByUserID(), middleware.AllowPrivateIP()))
	router.InitModules(reg)
	reg.RegisterAll()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{"port": cfg.Port, "env": cfg.Env}).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("forced shutdown")
	}
}

func runMigrations(cfg *config.Config) error {
	m, err := migrate.New("file://"+cfg.MigrationsDir, cfg.PostgresDSN())
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
