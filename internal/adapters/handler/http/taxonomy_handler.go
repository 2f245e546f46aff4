package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-reco-engine/internal/core/services"
)

type TaxonomyHandler struct {
	svc *services.TaxonomyService
}

func NewTaxonomyHandler(svc *services.TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{svc: svc}
}

func (h *TaxonomyHandler) RegisterRoutes(router *gin.RouterGroup) {
	goals := router.Group("/goals")
	{
		goals.GET("", h.List)
		goals.GET("/resolve", h.Resolve)
	}
}

func (h *TaxonomyHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"goals": h.svc.CanonicalGoals()})
}

func (h *TaxonomyHandler) Resolve(c *gin.Context) {
	tag := c.Query("tag")
	if tag == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'tag' is required"})
		return
	}

	c.JSON(http.StatusOK, h.svc.Resolve(tag))
}
