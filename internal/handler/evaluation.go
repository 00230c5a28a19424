package handler

import (
	"net/http"

	"gradesync/internal/domain"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// EvaluationHandler обрабатывает чтение оценок и ручное оценивание.
type EvaluationHandler struct {
	*BaseHandler
	evalUseCase    domain.EvaluationUseCase
	projectUseCase domain.ProjectUseCase
}

// NewEvaluationHandler создает новый экземпляр EvaluationHandler.
func NewEvaluationHandler(evalUseCase domain.EvaluationUseCase, projectUseCase domain.ProjectUseCase, logger *logrus.Logger) *EvaluationHandler {
	return &EvaluationHandler{
		BaseHandler:    NewBaseHandler(logger),
		evalUseCase:    evalUseCase,
		projectUseCase: projectUseCase,
	}
}

type gradeLOCRequest struct {
	Complexity string `json:"complexity"`
	Quality    string `json:"quality"`
}

type gradeGroupRequest struct {
	Score   float64 `json:"score"`
	Comment string  `json:"comment"`
}

// GetLOCItems обрабатывает GET /api/projects/:id/loc (текущее состояние без синхронизации).
func (h *EvaluationHandler) GetLOCItems(c echo.Context) error {
	logEntry := h.logRequest(c, "get_loc_items")
	projectID := c.Param("id")

	items, err := h.evalUseCase.GetLOCItems(c.Request().Context(), projectID)
	if err != nil {
		logEntry.WithError(err).Warn("Failed to get loc items")
		status, resp := mapDomainError(err)
		return c.JSON(status, resp)
	}

	features, err := h.projectUseCase.ListFeatures(c.Request().Context(), projectID)
	if err != nil {
		status, resp := mapDomainError(err)
		return c.JSON(status, resp)
	}

	return c.JSON(http.StatusOK, toAPILOCItems(items, features))
}

// GetGroupEvaluation обрабатывает GET /api/projects/:id/evaluation.
func (h *EvaluationHandler) GetGroupEvaluation(c echo.Context) error {
	logEntry := h.logRequest(c, "get_group_evaluation")

	items, err := h.evalUseCase.GetGroupItems(c.Request().Context(), c.Param("id"))
	if err != nil {
		logEntry.WithError(err).Warn("Failed to get group evaluation")
		status, resp := mapDomainError(err)
		return c.JSON(status, resp)
	}

	return c.JSON(http.StatusOK, toAPIGroupItems(items))
}

// GradeLOCItem обрабатывает PUT /api/projects/:id/loc/:featureId/grade.
// Единственный путь записи полей преподавателя (complexity/quality).
func (h *EvaluationHandler) GradeLOCItem(c echo.Context) error {
	logEntry := h.logRequest(c, "grade_loc_item")
	projectID := c.Param("id")
	featureID := c.Param("featureId")

	var req gradeLOCRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_BODY", "invalid request body"))
	}

	item, err := h.evalUseCase.GradeLOCItem(c.Request().Context(), projectID, featureID, req.Complexity, req.Quality)
	if err != nil {
		logEntry.WithError(err).Warn("Failed to grade loc item")
		status, resp := mapDomainError(err)
		return c.JSON(status, resp)
	}

	logEntry.WithFields(logrus.Fields{
		"project_id": projectID,
		"feature_id": featureID,
		"complexity": item.Complexity,
		"quality":    item.Quality,
	}).Info("LOC item graded")

	features, err := h.projectUseCase.ListFeatures(c.Request().Context(), projectID)
	if err != nil {
		status, resp := mapDomainError(err)
		return c.JSON(status, resp)
	}

	rows := toAPILOCItems([]*domain.LOCEvaluationItem{item}, features)
	return c.JSON(http.StatusOK, rows[0])
}

// GradeGroupItem обрабатывает PUT /api/projects/:id/evaluation/:itemId.
func (h *EvaluationHandler) GradeGroupItem(c echo.Context) error {
	logEntry := h.logRequest(c, "grade_group_item")
	projectID := c.Param("id")
	itemID := c.Param("itemId")

	var req gradeGroupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_BODY", "invalid request body"))
	}

	item, err := h.evalUseCase.GradeGroupItem(c.Request().Context(), projectID, itemID, req.Score, req.Comment)
	if err != nil {
		logEntry.WithError(err).Warn("Failed to grade group item")
		status, resp := mapDomainError(err)
		return c.JSON(status, resp)
	}

	logEntry.WithFields(logrus.Fields{
		"project_id": projectID,
		"item_id":    itemID,
		"score":      item.Score,
	}).Info("Group item graded")

	return c.JSON(http.StatusOK, toAPIGroupItems([]*domain.GroupEvaluationItem{item})[0])
}
