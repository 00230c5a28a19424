package handler

import (
	"net/http"

	"gradesync/internal/domain"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// SyncHandler обрабатывает запросы синхронизации оценок с GitHub и Jira.
type SyncHandler struct {
	*BaseHandler
	syncUseCase    domain.SyncUseCase
	projectUseCase domain.ProjectUseCase
}

// NewSyncHandler создает новый экземпляр SyncHandler.
func NewSyncHandler(syncUseCase domain.SyncUseCase, projectUseCase domain.ProjectUseCase, logger *logrus.Logger) *SyncHandler {
	return &SyncHandler{
		BaseHandler:    NewBaseHandler(logger),
		syncUseCase:    syncUseCase,
		projectUseCase: projectUseCase,
	}
}

// SyncLOC обрабатывает POST /api/projects/:id/sync-loc.
// Возвращает полный обновленный набор строк, чтобы фронтенду
// не требовалось второе чтение.
func (h *SyncHandler) SyncLOC(c echo.Context) error {
	logEntry := h.logRequest(c, "sync_loc")
	projectID := c.Param("id")
	logEntry.WithField("project_id", projectID).Info("Starting sync")

	report, err := h.syncUseCase.Sync(c.Request().Context(), projectID)
	if err != nil {
		logEntry.WithError(err).Error("Sync failed")
		status, resp := mapDomainError(err)
		return c.JSON(status, resp)
	}

	features, err := h.projectUseCase.ListFeatures(c.Request().Context(), projectID)
	if err != nil {
		logEntry.WithError(err).Error("Failed to load features for sync response")
		status, resp := mapDomainError(err)
		return c.JSON(status, resp)
	}

	logEntry.WithFields(logrus.Fields{
		"project_id": projectID,
		"items":      len(report.Items),
		"partial":    report.Partial,
	}).Info("Sync completed")

	return c.JSON(http.StatusOK, toAPISyncResponse(report, features))
}
