package handlers

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/phambaophuc/image-enlarge/internal/config"
	"github.com/phambaophuc/image-enlarge/internal/models"
	"github.com/phambaophuc/image-enlarge/internal/resample"
	"github.com/phambaophuc/image-enlarge/internal/services/processor"
	"github.com/phambaophuc/image-enlarge/internal/services/queue"
	"github.com/phambaophuc/image-enlarge/internal/services/storage"
	"go.uber.org/zap"
)

const (
	maxCacheAge       = 3600
	imageParamKey     = "image"
	imagesParamKey    = "images"
	downloadName      = "enlarged_image.png"
	invalidAlgorithm  = "Invalid algorithm selected"
	noImageProvided   = "No image file provided"
	returnURLQueryKey = "return_url"
)

type ImageHandler struct {
	processor *processor.ImageProcessor
	storage   *storage.StorageService
	queue     *queue.QueueService
	logger    *zap.Logger
	config    *config.Config
}

func NewImageHandler(
	processor *processor.ImageProcessor,
	storage *storage.StorageService,
	queue *queue.QueueService,
	logger *zap.Logger,
	config *config.Config,
) *ImageHandler {
	return &ImageHandler{
		processor: processor,
		storage:   storage,
		queue:     queue,
		logger:    logger,
		config:    config,
	}
}

// === MAIN API ENDPOINTS ===

// EnlargeImageLegacy serves POST /enlarge_image. Errors use a bare
// {"error": ...} body and the PNG is sent as an attachment.
func (h *ImageHandler) EnlargeImageLegacy(c *gin.Context) {
	file, header, err := h.getUploadedFile(c, imageParamKey)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": noImageProvided})
		return
	}
	defer file.Close()

	req, err := h.parseEnlargeParams(c)
	if err != nil {
		h.respondLegacyError(c, err)
		return
	}

	data, err := h.readUpload(file)
	if err != nil {
		h.respondLegacyError(c, err)
		return
	}

	result, err := h.enlarge(c.Request.Context(), data, req)
	if err != nil {
		h.logger.Error("Enlarge failed", zap.String("filename", header.Filename), zap.Error(err))
		h.respondLegacyError(c, err)
		return
	}

	path, err := h.storage.SaveLocal(result.data)
	if err != nil {
		h.logger.Error("Failed to save result", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.FileAttachment(path, downloadName)
}

// EnlargeImage serves POST /api/v1/images/enlarge.
func (h *ImageHandler) EnlargeImage(c *gin.Context) {
	file, header, err := h.getUploadedFile(c, imageParamKey)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, noImageProvided)
		return
	}
	defer file.Close()

	req, err := h.parseEnlargeParams(c)
	if err != nil {
		h.respondFromError(c, err)
		return
	}

	data, err := h.readUpload(file)
	if err != nil {
		h.respondFromError(c, err)
		return
	}

	result, err := h.enlarge(c.Request.Context(), data, req)
	if err != nil {
		h.logger.Error("Enlarge failed", zap.String("filename", header.Filename), zap.Error(err))
		h.respondFromError(c, err)
		return
	}

	path, err := h.storage.SaveLocal(result.data)
	if err != nil {
		h.logger.Error("Failed to save result", zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, "Failed to save enlarged image")
		return
	}

	if c.Query(returnURLQueryKey) != "true" {
		h.respondWithImage(c, result.data)
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data: models.EnlargedImage{
			ID:           uuid.New().String(),
			OriginalName: header.Filename,
			URL:          h.uploadToStorage(c.Request.Context(), result.data, header.Filename),
			LocalPath:    path,
			Algorithm:    req.Algorithm,
			ScaleFactor:  req.ScaleFactor,
			OriginalSize: result.originalSize,
			Size:         result.size,
			FileSize:     int64(len(result.data)),
			ProcessedAt:  time.Now(),
		},
	})
}

// BatchEnlarge serves POST /api/v1/images/batch/enlarge.
func (h *ImageHandler) BatchEnlarge(c *gin.Context) {
	files, err := h.parseMultipartFiles(c)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	req, err := h.parseEnlargeParams(c)
	if err != nil {
		h.respondFromError(c, err)
		return
	}

	var (
		readers  []io.Reader
		names    []string
		failures []models.BatchFailure
	)
	for _, fh := range files {
		data, err := h.readFileHeader(fh)
		if err != nil {
			failures = append(failures, models.BatchFailure{OriginalName: fh.Filename, Error: err.Error()})
			continue
		}
		readers = append(readers, bytes.NewReader(data))
		names = append(names, fh.Filename)
	}

	results := h.processor.BatchEnlarge(readers, req)
	response := h.buildBatchResponse(c.Request.Context(), results, names, req)
	response.Failed = append(failures, response.Failed...)

	c.JSON(http.StatusOK, models.APIResponse{
		Success: len(response.Images) > 0,
		Data:    response,
	})
}

// ListAlgorithms reports the accepted algorithm names and scale bounds.
func (h *ImageHandler) ListAlgorithms(c *gin.Context) {
	names := make([]string, 0, 3)
	for _, s := range resample.Strategies() {
		names = append(names, s.String())
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data: gin.H{
			"algorithms":       names,
			"max_scale_factor": h.processor.MaxScaleFactor(),
		},
	})
}

// HealthCheck
func (h *ImageHandler) HealthCheck(c *gin.Context) {
	services := h.storage.HealthCheck(c.Request.Context())
	if h.queue == nil {
		services["queue"] = "not configured"
	} else {
		services["queue"] = h.queue.HealthCheck()
	}

	overall := h.calculateOverallHealth(services)

	statusCode := http.StatusOK
	if overall == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, models.APIResponse{
		Success: overall == "healthy",
		Data: models.HealthCheck{
			Status:    overall,
			Timestamp: time.Now(),
			Services:  services,
		},
	})
}

func (h *ImageHandler) GetStats(c *gin.Context) {
	cacheStats, err := h.storage.GetCacheStats(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to get cache stats", zap.Error(err))
	}

	stats := map[string]interface{}{
		"cache":     cacheStats,
		"storage":   h.storage.Backend(),
		"timestamp": time.Now(),
	}

	if h.queue != nil {
		queueStats, err := h.queue.GetQueueStats()
		if err != nil {
			h.logger.Error("Failed to get queue stats", zap.Error(err))
		}
		stats["queue"] = queueStats
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    stats,
	})
}
