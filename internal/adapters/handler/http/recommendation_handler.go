package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-reco-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-reco-engine/internal/core/services"
)

type RecommendationHandler struct {
	svc *services.RecommendationService
}

func NewRecommendationHandler(svc *services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{svc: svc}
}

type recommendRequest struct {
	GoalCategories       []string `json:"goal_categories" binding:"required"`
	SkillLevel           string   `json:"skill_level"`
	TimeAvailableMinutes int      `json:"time_available_minutes"`
	CurrentHabits        []string `json:"current_habits"`
	Languages            []string `json:"languages"`
}

func (h *RecommendationHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/recommendations", h.Recommend)
}

func (h *RecommendationHandler) Recommend(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var skill domain.SkillLevel
	if req.SkillLevel != "" {
		parsed, err := domain.ParseSkillLevel(req.SkillLevel)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		skill = parsed
	}

	langs := make([]domain.LanguageCode, 0, len(req.Languages))
	for _, l := range req.Languages {
		langs = append(langs, domain.LanguageCode(l))
	}

	input := domain.RecommendationRequest{
		GoalCategories:       req.GoalCategories,
		SkillLevel:           skill,
		TimeAvailableMinutes: req.TimeAvailableMinutes,
		CurrentHabits:        req.CurrentHabits,
		Languages:            langs,
	}

	resp, err := h.svc.Recommend(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoGoalsRequested):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrCatalogUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "habit catalog unavailable, try again later"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}
