package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/RambhuSingh1819/Al-Based-Crop-Recommendation-for-Farmers/internal/advisor"
	"github.com/RambhuSingh1819/Al-Based-Crop-Recommendation-for-Farmers/internal/bootstrap"
	"github.com/RambhuSingh1819/Al-Based-Crop-Recommendation-for-Farmers/internal/cache"
	rabbitmqClient "github.com/RambhuSingh1819/Al-Based-Crop-Recommendation-for-Farmers/internal/platform/rabbitmq"
	"github.com/RambhuSingh1819/Al-Based-Crop-Recommendation-for-Farmers/internal/transport/http/handler"
	"github.com/RambhuSingh1819/Al-Based-Crop-Recommendation-for-Farmers/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), middleware.Metrics())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"*"},
	}))

	fieldAdvisor := advisor.New(
		app.Classifier,
		advisor.DefaultGuides(),
		advisor.Options{
			InferenceTimeout: time.Duration(app.Config.Vision.InferenceTimeoutMs) * time.Millisecond,
			BreakerFailures:  app.Config.Vision.BreakerFailures,
			BreakerOpenFor:   time.Duration(app.Config.Vision.BreakerOpenMs) * time.Millisecond,
		},
	)

	var advisoryCache handler.AdvisoryCache
	if app.Redis != nil {
		advisoryCache = cache.NewAdvisoryCache(
			app.Redis,
			time.Duration(app.Config.Redis.CacheTTLSeconds)*time.Second,
		)
	}

	var publisher handler.EventPublisher
	if app.MQConn != nil {
		publisher = rabbitmqClient.NewAnalysisPublisher(app.MQConn, app.Config.RabbitMQ.AnalysisEventQueue)
	}

	healthHandler := handler.NewHealthHandler(app)
	analyzeHandler := handler.NewAnalyzeHandler(fieldAdvisor, advisoryCache, publisher)

	router.GET("/", healthHandler.Root)
	router.GET("/healthz", healthHandler.Check)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.POST("/analyze", analyzeHandler.Analyze)

	return router
}
