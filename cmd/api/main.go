package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/yourusername/trivia-quiz-api/internal/config"
	"github.com/yourusername/trivia-quiz-api/internal/handler"
	"github.com/yourusername/trivia-quiz-api/internal/logging"
	"github.com/yourusername/trivia-quiz-api/internal/middleware"
	pgRepo "github.com/yourusername/trivia-quiz-api/internal/repository/postgres"
	"github.com/yourusername/trivia-quiz-api/internal/router"
	"github.com/yourusername/trivia-quiz-api/internal/service"
	"github.com/yourusername/trivia-quiz-api/internal/service/quizmanager"
	"github.com/yourusername/trivia-quiz-api/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		bootLog := logging.New(config.AppConfig{Name: "trivia-quiz-api"}, config.LogConfig{})
		bootLog.Fatal().Err(err).Str("path", configPath).Msg("failed to load config")
	}

	logger := logging.New(cfg.App, cfg.Log)
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString(), cfg.Database.LogLevel)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to get sql.DB")
	}
	defer sqlDB.Close()

	// Применяем миграции
	if err := database.MigrateDB(db, cfg.Database.MigrationsPath, logger); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}

	healthChecks := map[string]handler.PingFunc{
		"postgres": sqlDB.PingContext,
	}

	// Redis нужен только для rate limiting
	var rateLimiter *middleware.RateLimiter
	if cfg.Redis.Enabled {
		redisClient, err := database.NewUniversalRedisClient(context.Background(), cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer redisClient.Close()
		logger.Info().Str("mode", cfg.Redis.Mode).Msg("connected to Redis")

		rateLimiter = middleware.NewRateLimiter(redisClient)
		healthChecks["redis"] = redisPing(redisClient)
	}

	// Инициализируем репозитории
	questionRepo := pgRepo.NewQuestionRepo(db)
	categoryRepo := pgRepo.NewCategoryRepo(db)

	// Инициализируем сервисы
	quizConfig := quizmanager.DefaultConfig()
	categoryService := service.NewCategoryService(categoryRepo, questionRepo, quizConfig)
	questionService := service.NewQuestionService(questionRepo, categoryRepo, quizConfig)
	quizService := service.NewQuizService(questionRepo, quizmanager.NewRandomQuestionSelector(quizConfig))

	engine := router.New(router.Deps{
		Config:          cfg,
		Logger:          logger,
		CategoryService: categoryService,
		QuestionService: questionService,
		QuizService:     quizService,
		RateLimiter:     rateLimiter,
		Metrics:         middleware.NewHTTPMetrics(),
		HealthChecks:    healthChecks,
	})

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Запускаем сервер в горутине
	go func() {
		logger.Info().Str("port", cfg.Server.Port).Str("prefix", cfg.Server.APIPrefix).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down server")

	// Создаем контекст с таймаутом для graceful shutdown сервера
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
		return
	}

	logger.Info().Msg("server exited properly")
}

func redisPing(client redis.UniversalClient) handler.PingFunc {
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}
