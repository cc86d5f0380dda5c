package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/image-enlarge/internal/models"
	"github.com/phambaophuc/image-enlarge/internal/services/queue"
	"go.uber.org/zap"
)

// CreateJob queues an enlargement of a remote image.
func (h *ImageHandler) CreateJob(c *gin.Context) {
	var req models.JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "invalid job request: "+err.Error())
		return
	}

	if _, err := h.processor.ValidateRequest(&models.EnlargeRequest{
		Algorithm:   req.Algorithm,
		ScaleFactor: req.ScaleFactor,
	}); err != nil {
		h.respondFromError(c, err)
		return
	}

	if h.queue == nil {
		h.respondError(c, http.StatusServiceUnavailable, "async processing is not available")
		return
	}

	job := queue.NewJob(&req)
	if err := h.queue.PublishJob(c.Request.Context(), job); err != nil {
		h.logger.Error("Failed to publish job", zap.String("job_id", job.ID), zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, "Failed to queue job")
		return
	}

	c.JSON(http.StatusAccepted, models.APIResponse{
		Success: true,
		Data:    job,
	})
}

func (h *ImageHandler) GetJob(c *gin.Context) {
	job, err := h.storage.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("Failed to load job", zap.String("job_id", c.Param("id")), zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, "Failed to load job")
		return
	}
	if job == nil {
		h.respondError(c, http.StatusNotFound, "job not found")
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    job,
	})
}
