package api

import (
	"crm-learner/internal/learning/usecase"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	insightUsecase usecase.InsightUsecase
}

func NewHandler(insightUsecase usecase.InsightUsecase) *Handler {
	return &Handler{
		insightUsecase: insightUsecase,
	}
}

func (h *Handler) Start(addr string) error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	SetupRoutes(r, h.insightUsecase)

	return r.Run(addr)
}
