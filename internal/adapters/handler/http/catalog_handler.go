package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-reco-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-reco-engine/internal/core/services"
	"github.com/comitanigiacomo/kanso-reco-engine/internal/core/workers"
)

// SourceInvalidator drops any shared (redis) copy of the raw content
// documents alongside the in-process cache.
type SourceInvalidator interface {
	Invalidate(ctx context.Context)
}

type CatalogHandler struct {
	catalog     *services.CatalogService
	worker      *workers.RefreshWorker
	invalidator SourceInvalidator
}

// NewCatalogHandler wires the catalog endpoints. worker and invalidator are
// optional.
func NewCatalogHandler(catalog *services.CatalogService, worker *workers.RefreshWorker, invalidator SourceInvalidator) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, worker: worker, invalidator: invalidator}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/catalog/meta", h.Meta)
}

// RegisterAdminRoutes is mounted behind the auth middleware.
func (h *CatalogHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	router.POST("/catalog/refresh", h.Refresh)
}

func (h *CatalogHandler) Meta(c *gin.Context) {
	var langs []domain.LanguageCode
	if raw := c.Query("languages"); raw != "" {
		for _, l := range strings.Split(raw, ",") {
			langs = append(langs, domain.LanguageCode(strings.TrimSpace(l)))
		}
	}

	catalog, err := h.catalog.Load(c.Request.Context(), langs)
	if err != nil {
		if errors.Is(err, domain.ErrCatalogUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "habit catalog unavailable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_records": len(catalog.Records),
		"meta":          catalog.Meta,
	})
}

// Refresh invalidates every cache tier wholesale and schedules a warmup.
// There is no partial invalidation.
func (h *CatalogHandler) Refresh(c *gin.Context) {
	if h.invalidator != nil {
		h.invalidator.Invalidate(c.Request.Context())
	}
	h.catalog.ClearCache()

	if h.worker != nil {
		h.worker.Enqueue(workers.RefreshJob{Reason: "admin refresh", ClearFirst: false})
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "refresh scheduled"})
}
