package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/phambaophuc/image-enlarge/internal/models"
	"github.com/phambaophuc/image-enlarge/internal/resample"
	"github.com/phambaophuc/image-enlarge/internal/services/processor"
	"github.com/phambaophuc/image-enlarge/internal/services/storage"
	"github.com/phambaophuc/image-enlarge/pkg/utils"
	"go.uber.org/zap"
)

type enlargement struct {
	data         []byte
	originalSize models.Dimensions
	size         models.Dimensions
}

// === REQUEST PARSING ===

func (h *ImageHandler) parseEnlargeParams(c *gin.Context) (*models.EnlargeRequest, error) {
	raw := c.PostForm("scaleFactor")
	if raw == "" {
		raw = c.PostForm("scale_factor")
	}
	if raw == "" {
		return nil, fmt.Errorf("%w: scaleFactor is required", resample.ErrInvalidScaleFactor)
	}

	scale, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: scaleFactor must be a number", resample.ErrInvalidScaleFactor)
	}

	req := &models.EnlargeRequest{
		Algorithm:   c.PostForm("algorithm"),
		ScaleFactor: scale,
	}
	if _, err := h.processor.ValidateRequest(req); err != nil {
		return nil, err
	}

	return req, nil
}

func (h *ImageHandler) parseMultipartFiles(c *gin.Context) ([]*multipart.FileHeader, error) {
	if err := c.Request.ParseMultipartForm(h.config.Storage.MaxFileSize); err != nil {
		return nil, fmt.Errorf("failed to parse form data: %v", err)
	}

	files := c.Request.MultipartForm.File[imagesParamKey]
	if len(files) == 0 {
		return nil, fmt.Errorf("no images provided")
	}

	return files, nil
}

// === FILE OPERATIONS ===

func (h *ImageHandler) getUploadedFile(c *gin.Context, paramKey string) (multipart.File, *multipart.FileHeader, error) {
	return c.Request.FormFile(paramKey)
}

func (h *ImageHandler) readUpload(file multipart.File) ([]byte, error) {
	if err := h.processor.ValidateImage(file, h.config.Storage.MaxFileSize); err != nil {
		return nil, err
	}
	return io.ReadAll(file)
}

func (h *ImageHandler) readFileHeader(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return h.readUpload(f)
}

// === PROCESSING LOGIC ===

func (h *ImageHandler) enlarge(ctx context.Context, data []byte, req *models.EnlargeRequest) (*enlargement, error) {
	cacheKey := h.storage.GenerateCacheKey(data, req)

	cached, err := h.storage.GetFromCache(ctx, cacheKey)
	if err != nil {
		h.logger.Warn("Cache lookup failed", zap.String("cache_key", cacheKey), zap.Error(err))
	}
	if cached != nil {
		h.logger.Info("Cache hit", zap.String("cache_key", cacheKey))
		originalSize, _ := processor.ImageDimensions(data)
		size, _ := processor.ImageDimensions(cached)
		return &enlargement{
			data:         cached,
			originalSize: originalSize,
			size:         size,
		}, nil
	}

	result, err := h.processor.EnlargeImage(bytes.NewReader(data), req)
	if err != nil {
		return nil, err
	}

	h.logger.Info("Image enlarged",
		zap.String("algorithm", req.Algorithm),
		zap.Float64("scale_factor", req.ScaleFactor),
		zap.Int("width", result.Size.Width),
		zap.Int("height", result.Size.Height),
		zap.Duration("elapsed", result.Elapsed),
	)

	if err := h.storage.SetCache(ctx, cacheKey, result.Buffer.Bytes()); err != nil {
		h.logger.Warn("Failed to cache data", zap.String("cache_key", cacheKey), zap.Error(err))
	}

	return &enlargement{
		data:         result.Buffer.Bytes(),
		originalSize: result.OriginalSize,
		size:         result.Size,
	}, nil
}

// === RESPONSE HANDLING ===

func (h *ImageHandler) respondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, models.APIResponse{
		Success: false,
		Error:   message,
	})
}

func (h *ImageHandler) respondFromError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.respondError(c, status, "Failed to process image")
		return
	}
	h.respondError(c, status, err.Error())
}

func (h *ImageHandler) respondLegacyError(c *gin.Context, err error) {
	if errors.Is(err, resample.ErrInvalidStrategy) {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidAlgorithm})
		return
	}
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func (h *ImageHandler) respondWithImage(c *gin.Context, data []byte) {
	c.Header("Cache-Control", fmt.Sprintf("public, max-age=%d", maxCacheAge))
	c.Data(http.StatusOK, models.ContentTypePNG, data)
}

// statusFor maps processing errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, resample.ErrInvalidStrategy),
		errors.Is(err, resample.ErrInvalidScaleFactor),
		errors.Is(err, resample.ErrMalformedInput),
		errors.Is(err, processor.ErrInvalidImage):
		return http.StatusBadRequest
	case errors.Is(err, resample.ErrAllocation),
		errors.Is(err, processor.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// === UTILITY METHODS ===

func (h *ImageHandler) calculateOverallHealth(services map[string]string) string {
	for _, status := range services {
		if status != "healthy" && status != "not configured" {
			return "unhealthy"
		}
	}
	return "healthy"
}

func (h *ImageHandler) buildBatchResponse(ctx context.Context, results []models.BatchImage, names []string, req *models.EnlargeRequest) models.BatchResponse {
	response := models.BatchResponse{Images: []models.EnlargedImage{}, ProcessedAt: time.Now()}
	var uploads []storage.UploadFile

	for i, res := range results {
		if res.Buffer == nil {
			response.Failed = append(response.Failed, models.BatchFailure{OriginalName: names[i], Error: res.Error})
			continue
		}

		path, err := h.storage.SaveLocal(res.Buffer.Bytes())
		if err != nil {
			h.logger.Error("Failed to save result", zap.String("filename", names[i]), zap.Error(err))
			response.Failed = append(response.Failed, models.BatchFailure{OriginalName: names[i], Error: "failed to save enlarged image"})
			continue
		}

		response.Images = append(response.Images, models.EnlargedImage{
			ID:           uuid.New().String(),
			OriginalName: names[i],
			LocalPath:    path,
			Algorithm:    req.Algorithm,
			ScaleFactor:  req.ScaleFactor,
			OriginalSize: res.OriginalSize,
			Size:         res.Size,
			FileSize:     res.FileSize,
			ProcessedAt:  time.Now(),
		})
		uploads = append(uploads, storage.UploadFile{
			Filename:    utils.ReplaceExt(names[i], models.FormatPNG),
			ContentType: models.ContentTypePNG,
			Data:        res.Buffer.Bytes(),
		})
	}

	if h.storage.Backend() == "none" || len(uploads) == 0 {
		return response
	}

	urls, err := h.storage.UploadMultiple(ctx, uploads)
	if err != nil {
		h.logger.Warn("Failed to upload some batch results", zap.Error(err))
	}
	for i, url := range urls {
		response.Images[i].URL = url
	}

	return response
}

// === STORAGE OPERATIONS ===

func (h *ImageHandler) uploadToStorage(ctx context.Context, data []byte, filename string) string {
	if h.storage.Backend() == "none" {
		return ""
	}

	newFilename := utils.ReplaceExt(filename, models.FormatPNG)
	url, err := h.storage.Upload(ctx, data, newFilename, models.ContentTypePNG)
	if err != nil {
		h.logger.Warn("Failed to upload to Storage", zap.Error(err))
		return ""
	}

	return url
}
