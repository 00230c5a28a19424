package handler

import (
	"gradesync/internal/domain"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// APIHandler объединяет все обработчики сервиса.
type APIHandler struct {
	*ProjectHandler
	*SyncHandler
	*EvaluationHandler
	*StatsHandler
}

// NewAPIHandler создает составной обработчик.
func NewAPIHandler(
	projectUseCase domain.ProjectUseCase,
	syncUseCase domain.SyncUseCase,
	evalUseCase domain.EvaluationUseCase,
	statsUseCase domain.StatsUseCase,
	logger *logrus.Logger,
) *APIHandler {
	return &APIHandler{
		ProjectHandler:    NewProjectHandler(projectUseCase, logger),
		SyncHandler:       NewSyncHandler(syncUseCase, projectUseCase, logger),
		EvaluationHandler: NewEvaluationHandler(evalUseCase, projectUseCase, logger),
		StatsHandler:      NewStatsHandler(statsUseCase, logger),
	}
}

// RegisterRoutes регистрирует все маршруты API.
func RegisterRoutes(e *echo.Echo, h *APIHandler) {
	api := e.Group("/api")

	api.GET("/projects", h.ListProjects)
	api.POST("/projects", h.CreateProject)
	api.GET("/projects/:id", h.GetProject)

	api.GET("/projects/:id/features", h.ListFeatures)
	api.POST("/projects/:id/features", h.AddFeatures)

	api.POST("/projects/:id/sync-loc", h.SyncLOC)
	api.GET("/projects/:id/loc", h.GetLOCItems)
	api.PUT("/projects/:id/loc/:featureId/grade", h.GradeLOCItem)

	api.GET("/projects/:id/evaluation", h.GetGroupEvaluation)
	api.PUT("/projects/:id/evaluation/:itemId", h.GradeGroupItem)

	api.GET("/repos/:owner/:repo/stats", h.GetContributorStats)
	api.GET("/repos/:owner/:repo/commits", h.GetCommits)
}
