package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/image-enlarge/internal/config"
	"github.com/phambaophuc/image-enlarge/internal/http/handlers"
	"github.com/phambaophuc/image-enlarge/internal/http/middleware"
	"github.com/phambaophuc/image-enlarge/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Router struct {
	imageHandler *handlers.ImageHandler
	metrics      *metrics.Metrics
	gatherer     prometheus.Gatherer
	config       *config.Config
	logger       *zap.Logger
}

func NewRouter(
	imageHandler *handlers.ImageHandler,
	m *metrics.Metrics,
	gatherer prometheus.Gatherer,
	cfg *config.Config,
	logger *zap.Logger,
) *Router {
	return &Router{
		imageHandler: imageHandler,
		metrics:      m,
		gatherer:     gatherer,
		config:       cfg,
		logger:       logger,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	if !r.config.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.MaxMultipartMemory = r.config.Storage.MaxFileSize

	router.Use(middleware.Logger(r.logger))
	router.Use(middleware.ErrorHandler(r.logger))
	router.Use(middleware.CORS(r.config.CORS.AllowedOrigins))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.Metrics(r.metrics))

	// Form-compatible endpoint used by the web client
	router.POST("/enlarge_image", r.imageHandler.EnlargeImageLegacy)

	// API version 1
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", r.imageHandler.HealthCheck)
		v1.GET("/stats", r.imageHandler.GetStats)
		v1.GET("/algorithms", r.imageHandler.ListAlgorithms)

		images := v1.Group("/images", middleware.ValidateContentType())
		{
			images.POST("/enlarge", r.imageHandler.EnlargeImage)
			images.POST("/batch/enlarge", r.imageHandler.BatchEnlarge)
		}

		jobs := v1.Group("/jobs")
		{
			jobs.POST("", r.imageHandler.CreateJob)
			jobs.GET("/:id", r.imageHandler.GetJob)
		}
	}

	if r.gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})))
	}

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"status":  "OK",
			"message": "Image enlarging is running",
		})
	})

	return router
}
