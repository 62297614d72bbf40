package delivery

import (
	"net/http"

	"crm-learner/internal/learning/dto"
	"crm-learner/internal/learning/usecase"

	"github.com/gin-gonic/gin"
)

type LearningHandler struct {
	insightUsecase usecase.InsightUsecase
}

func NewLearningHandler(insightUsecase usecase.InsightUsecase) *LearningHandler {
	return &LearningHandler{
		insightUsecase: insightUsecase,
	}
}

// Status reports per-kind row counts of the local store. It never
// triggers a sync; stale-but-available data is always preferred over an
// upstream error.
func (h *LearningHandler) Status(c *gin.Context) {
	status, err := h.insightUsecase.Status()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, status)
}

func (h *LearningHandler) Suggestions(c *gin.Context) {
	suggestions, err := h.insightUsecase.Suggestions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, suggestions)
}

func (h *LearningHandler) KBCandidates(c *gin.Context) {
	candidates, err := h.insightUsecase.KBCandidates()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.KBCandidatesResponse{KBCandidates: candidates})
}
