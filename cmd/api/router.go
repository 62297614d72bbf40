package api

import (
	"net/http"

	"crm-learner/internal/learning/delivery"
	"crm-learner/internal/learning/usecase"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, insightUsecase usecase.InsightUsecase) {
	learningHandler := delivery.NewLearningHandler(insightUsecase)

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Learning routes: read-only projections over the synced store
	learning := r.Group("/learning")
	{
		learning.GET("/status", learningHandler.Status)
		learning.GET("/suggestions", learningHandler.Suggestions)
		learning.GET("/kb-candidates", learningHandler.KBCandidates)
	}
}
