package handler

import (
	"net/http"

	"gradesync/internal/domain"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// ProjectHandler обрабатывает HTTP-запросы для работы с проектами и реестром фич.
type ProjectHandler struct {
	*BaseHandler
	projectUseCase domain.ProjectUseCase
}

// NewProjectHandler создает новый экземпляр ProjectHandler.
func NewProjectHandler(projectUseCase domain.ProjectUseCase, logger *logrus.Logger) *ProjectHandler {
	return &ProjectHandler{
		BaseHandler:    NewBaseHandler(logger),
		projectUseCase: projectUseCase,
	}
}

type createProjectRequest struct {
	GroupID       string `json:"group_id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	GithubRepoURL string `json:"github_repo_url"`
	JiraKey       string `json:"jira_project_key"`
}

type addFeaturesRequest struct {
	Features []struct {
		Feature        string `json:"feature"`
		ScreenFunction string `json:"screen_function"`
		InCharge       string `json:"in_charge"`
		JiraIssueKey   string `json:"jira_issue_key"`
	} `json:"features"`
}

// CreateProject обрабатывает POST /api/projects.
func (h *ProjectHandler) CreateProject(c echo.Context) error {
	logEntry := h.logRequest(c, "create_project")

	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_BODY", "invalid request body"))
	}

	project, err := h.projectUseCase.CreateProject(c.Request().Context(), &domain.Project{
		GroupID:       req.GroupID,
		Name:          req.Name,
		Description:   req.Description,
		GithubRepoURL: req.GithubRepoURL,
		JiraKey:       req.JiraKey,
	})
	if err != nil {
		logEntry.WithError(err).Error("Failed to create project")
		status, resp := mapDomainError(err)
		return c.JSON(status, resp)
	}

	logEntry.WithField("project_id", project.ID).Info("Project created")
	return c.JSON(http.StatusCreated, toAPIProject(project))
}

// ListProjects обрабатывает GET /api/projects (опциональный фильтр ?group_id=).
func (h *ProjectHandler) ListProjects(c echo.Context) error {
	logEntry := h.logRequest(c, "list_projects")

	projects, err := h.projectUseCase.ListProjects(c.Request().Context(), c.QueryParam("group_id"))
	if err != nil {
		logEntry.WithError(err).Error("Failed to list projects")
		status, resp := mapDomainError(err)
		return c.JSON(status, resp)
	}

	result := make([]apiProject, len(projects))
	for i, p := range projects {
		result[i] = toAPIProject(p)
	}
	return c.JSON(http.StatusOK, result)
}

// GetProject обрабатывает GET /api/projects/:id.
func (h *ProjectHandler) GetProject(c echo.Context) error {
	logEntry := h.logRequest(c, "get_project")

	project, err := h.projectUseCase.GetProject(c.Request().Context(), c.Param("id"))
	if err != nil {
		logEntry.WithError(err).Warn("Failed to get project")
		status, resp := mapDomainError(err)
		return c.JSON(status, resp)
	}

	return c.JSON(http.StatusOK, toAPIProject(project))
}

// AddFeatures обрабатывает POST /api/projects/:id/features (загрузка реестра фич).
func (h *ProjectHandler) AddFeatures(c echo.Context) error {
	logEntry := h.logRequest(c, "add_features")
	projectID := c.Param("id")

	var req addFeaturesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_BODY", "invalid request body"))
	}

	features := make([]*domain.Feature, len(req.Features))
	for i, f := range req.Features {
		features[i] = &domain.Feature{
			Feature:        f.Feature,
			ScreenFunction: f.ScreenFunction,
			InCharge:       f.InCharge,
			JiraIssueKey:   f.JiraIssueKey,
		}
	}

	created, err := h.projectUseCase.AddFeatures(c.Request().Context(), projectID, features)
	if err != nil {
		logEntry.WithError(err).Error("Failed to add features")
		status, resp := mapDomainError(err)
		return c.JSON(status, resp)
	}

	logEntry.WithFields(logrus.Fields{"project_id": projectID, "count": len(created)}).Info("Features added")

	result := make([]apiFeature, len(created))
	for i, f := range created {
		result[i] = toAPIFeature(f)
	}
	return c.JSON(http.StatusCreated, result)
}

// ListFeatures обрабатывает GET /api/projects/:id/features.
func (h *ProjectHandler) ListFeatures(c echo.Context) error {
	logEntry := h.logRequest(c, "list_features")

	features, err := h.projectUseCase.ListFeatures(c.Request().Context(), c.Param("id"))
	if err != nil {
		logEntry.WithError(err).Warn("Failed to list features")
		status, resp := mapDomainError(err)
		return c.JSON(status, resp)
	}

	result := make([]apiFeature, len(features))
	for i, f := range features {
		result[i] = toAPIFeature(f)
	}
	return c.JSON(http.StatusOK, result)
}
