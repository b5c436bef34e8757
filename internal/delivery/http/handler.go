package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shoplens/backend/internal/domain"
)

// Searcher answers product queries
type Searcher interface {
	Search(ctx context.Context, request *domain.SearchRequest) (*domain.SearchResponse, error)
}

// Ingester bulk-loads product files into the catalog
type Ingester interface {
	InsertFromFile(ctx context.Context, path string) (*domain.InsertResponse, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	searcher Searcher
	ingester Ingester
}

// NewHandler creates a new HTTP handler
func NewHandler(searcher Searcher, ingester Ingester) *Handler {
	return &Handler{searcher: searcher, ingester: ingester}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "shoplens-backend",
		"version": "1.0.0",
	})
}

// Search handles free-text product search requests
func (h *Handler) Search(c *gin.Context) {
	if h.searcher == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "search is not configured"})
		return
	}

	var request domain.SearchRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be {\"query\": string}"})
		return
	}

	response, err := h.searcher.Search(c.Request.Context(), &request)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// InsertProducts bulk-loads a JSON product file into the catalog
func (h *Handler) InsertProducts(c *gin.Context) {
	if h.ingester == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ingestion is not configured"})
		return
	}

	var request domain.InsertRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be {\"file_path\": string}"})
		return
	}

	response, err := h.ingester.InsertFromFile(c.Request.Context(), request.FilePath)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// respondError maps domain errors to HTTP status codes
func (h *Handler) respondError(c *gin.Context, err error) {
	status := statusFor(err)
	event := zerolog.Ctx(c.Request.Context()).Warn()
	if status >= http.StatusInternalServerError {
		event = zerolog.Ctx(c.Request.Context()).Error()
	}
	event.Err(err).Int("status", status).Msg("request failed")

	c.JSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest), errors.Is(err, domain.ErrInvalidPayload):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNoResults), errors.Is(err, domain.ErrFileNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
