package summaries

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"summarizer-backend/internal/documents"
	"summarizer-backend/internal/shared/server/middleware"
	"summarizer-backend/internal/shared/server/respond"
)

// HealthChecker probes the remote summarization service.
type HealthChecker interface {
	IsHealthy(ctx context.Context) bool
}

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc    *Service
	Health HealthChecker
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, health HealthChecker) *Handler {
	return &Handler{Svc: svc, Health: health}
}

// RegisterRoutes attaches summary routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/documents/:id/summaries", h.create)
	rg.GET("/documents/:id/summaries", h.list)
	rg.GET("/summaries/:id", h.get)
	rg.PUT("/summaries/:id", h.update)
	rg.DELETE("/summaries/:id", h.delete)
	rg.GET("/ai/health", h.aiHealth)
}

func (h *Handler) create(c *gin.Context) {
	ownerID := middleware.UserIDFromContext(c)
	documentID := c.Param("id")

	req := CreateSummaryRequest{SummaryRatio: DefaultRatio}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
			return
		}
		if req.SummaryRatio == 0 {
			req.SummaryRatio = DefaultRatio
		}
	}

	summary, err := h.Svc.Create(c.Request.Context(), ownerID, documentID, req.SummaryRatio)
	if err != nil {
		switch {
		case errors.Is(err, documents.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		case errors.Is(err, ErrNoContent):
			respond.Error(c, http.StatusConflict, "precondition_failed", err.Error(), nil)
		default:
			c.Set("documentId", documentID)
			c.Set("statusTransition", "processing->failed")
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create summary", nil)
		}
		return
	}

	c.Set("documentId", documentID)
	c.Set("summaryId", summary.ID)
	c.Set("statusTransition", "processing->completed")
	respond.JSON(c, http.StatusCreated, toResponse(summary))
}

func (h *Handler) list(c *gin.Context) {
	ownerID := middleware.UserIDFromContext(c)
	documentID := c.Param("id")

	out, err := h.Svc.ListByDocument(c.Request.Context(), ownerID, documentID)
	if err != nil {
		switch {
		case errors.Is(err, documents.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list summaries", nil)
		}
		return
	}

	resp := make([]SummaryResponse, 0, len(out))
	for _, summary := range out {
		resp = append(resp, toResponse(summary))
	}

	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) get(c *gin.Context) {
	ownerID := middleware.UserIDFromContext(c)
	summaryID := c.Param("id")

	summary, err := h.Svc.Get(c.Request.Context(), ownerID, summaryID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "summary not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch summary", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, toResponse(summary))
}

func (h *Handler) update(c *gin.Context) {
	ownerID := middleware.UserIDFromContext(c)
	summaryID := c.Param("id")

	var req UpdateSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "summaryText is required", nil)
		return
	}

	summary, err := h.Svc.UpdateText(c.Request.Context(), ownerID, summaryID, req.SummaryText)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidText):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "summary not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update summary", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, toResponse(summary))
}

func (h *Handler) delete(c *gin.Context) {
	ownerID := middleware.UserIDFromContext(c)
	summaryID := c.Param("id")

	if err := h.Svc.Delete(c.Request.Context(), ownerID, summaryID); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "summary not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete summary", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) aiHealth(c *gin.Context) {
	healthy := h.Health != nil && h.Health.IsHealthy(c.Request.Context())
	status := "unavailable"
	code := http.StatusServiceUnavailable
	if healthy {
		status = "healthy"
		code = http.StatusOK
	}
	respond.JSON(c, code, gin.H{"status": status})
}
