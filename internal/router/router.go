package router

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yourusername/trivia-quiz-api/internal/config"
	"github.com/yourusername/trivia-quiz-api/internal/handler"
	"github.com/yourusername/trivia-quiz-api/internal/middleware"
	"github.com/yourusername/trivia-quiz-api/internal/service"
)

// Deps содержит все, что нужно для сборки HTTP-роутера
type Deps struct {
	Config          *config.Config
	Logger          zerolog.Logger
	CategoryService *service.CategoryService
	QuestionService *service.QuestionService
	QuizService     *service.QuizService
	// RateLimiter: nil отключает ограничение частоты запросов на запись
	RateLimiter  *middleware.RateLimiter
	Metrics      *middleware.HTTPMetrics
	HealthChecks map[string]handler.PingFunc
}

// New собирает gin.Engine со всеми маршрутами API
func New(deps Deps) *gin.Engine {
	cfg := deps.Config

	router := gin.New()
	router.HandleMethodNotAllowed = true

	// В production не доверяем прокси-заголовкам (защита от IP spoofing)
	var trusted []string
	if !cfg.App.IsProduction() {
		trusted = []string{"127.0.0.1", "::1"}
	}
	if err := router.SetTrustedProxies(trusted); err != nil {
		deps.Logger.Warn().Err(err).Msg("failed to set trusted proxies")
	}

	router.Use(
		gin.Recovery(),
		middleware.RequestLogger(deps.Logger),
	)
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware())
	}
	router.Use(
		middleware.LegacyAllowHeaders(),
		middleware.PrefixCORS(cfg.Server.APIPrefix, cfg.CORS),
	)

	router.NoRoute(handler.NotFound)
	router.NoMethod(handler.MethodNotAllowed)

	healthHandler := handler.NewHealthHandler(deps.HealthChecks)
	router.GET("/healthz", healthHandler.Health)
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	categoryHandler := handler.NewCategoryHandler(deps.CategoryService)
	questionHandler := handler.NewQuestionHandler(deps.QuestionService)
	quizHandler := handler.NewQuizHandler(deps.QuizService)

	// Ограничение частоты применяется только к изменяющим запросам
	writeLimit := func(c *gin.Context) { c.Next() }
	if deps.RateLimiter != nil && cfg.RateLimit.Enabled {
		writeLimit = deps.RateLimiter.Limit(middleware.WriteRateLimitConfig(cfg.RateLimit))
	}

	api := router.Group(cfg.Server.APIPrefix)
	{
		categories := api.Group("/categories")
		{
			categories.GET("", categoryHandler.GetCategories)
			categories.GET("/:id/questions",
				middleware.ExtractUintParam("id", handler.CategoryIDKey),
				categoryHandler.GetCategoryQuestions,
			)
		}

		questions := api.Group("/questions")
		{
			questions.GET("", questionHandler.GetQuestions)
			questions.POST("", writeLimit, questionHandler.CreateOrSearchQuestions)
			questions.GET("/export", questionHandler.ExportQuestions)
			questions.POST("/batch", writeLimit, questionHandler.CreateQuestionsBatch)
			questions.DELETE("/:id",
				middleware.ExtractUintParam("id", handler.QuestionIDKey),
				writeLimit,
				questionHandler.DeleteQuestion,
			)
		}

		api.POST("/quizzes", quizHandler.PlayQuiz)
	}

	return router
}
