package handler

import (
	"net/http"
	"strconv"

	"gradesync/internal/domain"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const defaultCommitLimit = 30

// StatsHandler обрабатывает HTTP-запросы аналитики по репозиториям.
type StatsHandler struct {
	*BaseHandler
	statsUseCase domain.StatsUseCase
}

// NewStatsHandler создает новый экземпляр StatsHandler.
func NewStatsHandler(statsUseCase domain.StatsUseCase, logger *logrus.Logger) *StatsHandler {
	return &StatsHandler{
		BaseHandler:  NewBaseHandler(logger),
		statsUseCase: statsUseCase,
	}
}

// GetContributorStats обрабатывает GET /api/repos/:owner/:repo/stats.
func (h *StatsHandler) GetContributorStats(c echo.Context) error {
	logEntry := h.logRequest(c, "get_contributor_stats")
	repo := domain.RepoRef{Owner: c.Param("owner"), Name: c.Param("repo")}

	stats, partial, err := h.statsUseCase.GetContributorStats(c.Request().Context(), repo)
	if err != nil {
		logEntry.WithError(err).Error("Failed to get contributor stats")
		status, resp := mapDomainError(err)
		return c.JSON(status, resp)
	}

	logEntry.WithFields(logrus.Fields{
		"contributors": len(stats),
		"partial":      partial,
	}).Info("Contributor stats retrieved")
	return c.JSON(http.StatusOK, apiStatsResponse{
		Contributors: toAPIContributorStats(stats),
		Partial:      partial,
	})
}

// GetCommits обрабатывает GET /api/repos/:owner/:repo/commits (?limit=).
func (h *StatsHandler) GetCommits(c echo.Context) error {
	logEntry := h.logRequest(c, "get_commits")
	repo := domain.RepoRef{Owner: c.Param("owner"), Name: c.Param("repo")}

	limit := defaultCommitLimit
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	commits, partial, err := h.statsUseCase.GetRecentCommits(c.Request().Context(), repo, limit)
	if err != nil {
		logEntry.WithError(err).Error("Failed to get commits")
		status, resp := mapDomainError(err)
		return c.JSON(status, resp)
	}

	logEntry.WithFields(logrus.Fields{
		"commits": len(commits),
		"partial": partial,
	}).Info("Commits retrieved")
	return c.JSON(http.StatusOK, apiCommitsResponse{
		Commits: toAPICommits(commits),
		Partial: partial,
	})
}
