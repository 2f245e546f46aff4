package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-reco-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-reco-engine/internal/core/services"
)

const defaultGlobalLimit = 10

type RankingHandler struct {
	svc      *services.RankingService
	taxonomy *services.TaxonomyService
}

func NewRankingHandler(svc *services.RankingService, taxonomy *services.TaxonomyService) *RankingHandler {
	return &RankingHandler{svc: svc, taxonomy: taxonomy}
}

func (h *RankingHandler) RegisterRoutes(router *gin.RouterGroup) {
	rankings := router.Group("/rankings")
	{
		rankings.GET("", h.Global)
		rankings.GET("/:goal", h.ForGoal)
	}
}

// Global returns the catalog ordered by raw effectiveness score, which is a
// different key than the per-goal rank ordering.
func (h *RankingHandler) Global(c *gin.Context) {
	limit := defaultGlobalLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	ranked, err := h.svc.GlobalRanking(c.Request.Context(), limit)
	if err != nil {
		if errors.Is(err, domain.ErrCatalogUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "habit catalog unavailable, try again later"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"limit": limit, "habits": ranked})
}

func (h *RankingHandler) ForGoal(c *gin.Context) {
	res := h.taxonomy.Resolve(c.Param("goal"))
	if !res.IsValid {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown goal category"})
		return
	}

	ranking, err := h.svc.RankForGoal(c.Request.Context(), res.MappedGoalID)
	if err != nil {
		if errors.Is(err, domain.ErrCatalogUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "habit catalog unavailable, try again later"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ranking)
}
