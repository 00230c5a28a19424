package handler

import (
	"errors"
	"net/http"
	"time"

	"gradesync/internal/domain"
)

// API-модели ответов (snake_case как в исходном фронтенде)

type apiProject struct {
	ID             string    `json:"id"`
	GroupID        string    `json:"group_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	GithubRepoURL  *string   `json:"github_repo_url"`
	JiraProjectKey *string   `json:"jira_project_key"`
	CreatedAt      time.Time `json:"created_at"`
}

type apiFeature struct {
	ID             string `json:"id"`
	Feature        string `json:"feature"`
	ScreenFunction string `json:"screen_function"`
	InCharge       string `json:"in_charge"`
	JiraIssueKey   string `json:"jira_issue_key,omitempty"`
}

type apiLOCItem struct {
	ID             string `json:"id"`
	FeatureID      string `json:"feature_id"`
	Feature        string `json:"feature"`
	ScreenFunction string `json:"screen_function"`
	InCharge       string `json:"in_charge"`
	Status         string `json:"status"`
	LOC            int    `json:"loc"`
	Complexity     string `json:"complexity"`
	Quality        string `json:"quality"`
}

type apiStaleness struct {
	FeatureID   string `json:"feature_id"`
	StaleStatus bool   `json:"stale_status"`
	StaleLOC    bool   `json:"stale_loc"`
}

type apiSyncResponse struct {
	Items   []apiLOCItem   `json:"items"`
	Partial bool           `json:"partial"`
	Stale   []apiStaleness `json:"stale,omitempty"`
}

type apiGroupItem struct {
	ID       string  `json:"id"`
	Category string  `json:"category"`
	MaxScore float64 `json:"max_score"`
	Score    float64 `json:"score"`
	Comment  string  `json:"comment"`
}

type apiContributorStat struct {
	Author       string `json:"author"`
	AvatarURL    string `json:"avatar_url,omitempty"`
	Commits      int    `json:"commits"`
	LinesAdded   int    `json:"lines_added"`
	LinesDeleted int    `json:"lines_deleted"`
	NetChange    int    `json:"net_change"`
}

type apiStatsResponse struct {
	Contributors []apiContributorStat `json:"contributors"`
	Partial      bool                 `json:"partial"`
}

type apiCommit struct {
	SHA          string    `json:"sha"`
	Author       string    `json:"author"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	Date         time.Time `json:"date"`
	Message      string    `json:"message"`
	LinesAdded   int       `json:"lines_added"`
	LinesDeleted int       `json:"lines_deleted"`
}

type apiCommitsResponse struct {
	Commits []apiCommit `json:"commits"`
	Partial bool        `json:"partial"`
}

// Вспомогательные функции преобразования доменных моделей в API модели

func toAPIProject(p *domain.Project) apiProject {
	return apiProject{
		ID:             p.ID,
		GroupID:        p.GroupID,
		Name:           p.Name,
		Description:    p.Description,
		GithubRepoURL:  nullable(p.GithubRepoURL),
		JiraProjectKey: nullable(p.JiraKey),
		CreatedAt:      p.CreatedAt,
	}
}

func toAPIFeature(f *domain.Feature) apiFeature {
	return apiFeature{
		ID:             f.ID,
		Feature:        f.Feature,
		ScreenFunction: f.ScreenFunction,
		InCharge:       f.InCharge,
		JiraIssueKey:   f.JiraIssueKey,
	}
}

// toAPILOCItems соединяет строки оценки с реестром фич для отображения.
func toAPILOCItems(items []*domain.LOCEvaluationItem, features []*domain.Feature) []apiLOCItem {
	byID := make(map[string]*domain.Feature, len(features))
	for _, f := range features {
		byID[f.ID] = f
	}

	result := make([]apiLOCItem, len(items))
	for i, item := range items {
		row := apiLOCItem{
			ID:         item.ID,
			FeatureID:  item.FeatureID,
			Status:     item.Status,
			LOC:        item.LOC,
			Complexity: item.Complexity,
			Quality:    item.Quality,
		}
		if f, ok := byID[item.FeatureID]; ok {
			row.Feature = f.Feature
			row.ScreenFunction = f.ScreenFunction
			row.InCharge = f.InCharge
		}
		result[i] = row
	}
	return result
}

func toAPISyncResponse(report *domain.SyncReport, features []*domain.Feature) apiSyncResponse {
	resp := apiSyncResponse{
		Items:   toAPILOCItems(report.Items, features),
		Partial: report.Partial,
	}
	for _, s := range report.Stale {
		resp.Stale = append(resp.Stale, apiStaleness{
			FeatureID:   s.FeatureID,
			StaleStatus: s.StaleStatus,
			StaleLOC:    s.StaleLOC,
		})
	}
	return resp
}

func toAPIGroupItems(items []*domain.GroupEvaluationItem) []apiGroupItem {
	result := make([]apiGroupItem, len(items))
	for i, item := range items {
		result[i] = apiGroupItem{
			ID:       item.ID,
			Category: item.Category,
			MaxScore: item.MaxScore,
			Score:    item.Score,
			Comment:  item.Comment,
		}
	}
	return result
}

func toAPIContributorStats(stats []*domain.ContributorStat) []apiContributorStat {
	result := make([]apiContributorStat, len(stats))
	for i, s := range stats {
		result[i] = apiContributorStat{
			Author:       s.Author,
			AvatarURL:    s.AvatarURL,
			Commits:      s.Commits,
			LinesAdded:   s.LinesAdded,
			LinesDeleted: s.LinesDeleted,
			NetChange:    s.NetChange,
		}
	}
	return result
}

func toAPICommits(commits []*domain.Commit) []apiCommit {
	result := make([]apiCommit, len(commits))
	for i, c := range commits {
		result[i] = apiCommit{
			SHA:          c.SHA,
			Author:       c.Author,
			AvatarURL:    c.AvatarURL,
			Date:         c.Date,
			Message:      c.Message,
			LinesAdded:   c.LinesAdded,
			LinesDeleted: c.LinesDeleted,
		}
	}
	return result
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func toErrorResponse(code, message string) domain.ErrorResponse {
	return domain.ErrorResponse{Error: domain.HTTPError{Code: code, Message: message}}
}

// mapDomainError переводит domain ошибку в HTTP статус и тело ответа.
// Ошибки провайдеров приходят обернутыми, поэтому сравнение через errors.Is.
func mapDomainError(err error) (int, domain.ErrorResponse) {
	for sentinel, httpErr := range domain.ErrorMapping {
		if errors.Is(err, sentinel) {
			return getHTTPStatusCode(sentinel), domain.ErrorResponse{Error: httpErr}
		}
	}
	return http.StatusInternalServerError, toErrorResponse("INTERNAL_ERROR", err.Error())
}

func getHTTPStatusCode(err error) int {
	switch err {
	// Conflict errors (409)
	case domain.ErrSyncInProgress:
		return http.StatusConflict

	// Not Found errors (404)
	case domain.ErrProjectNotFound, domain.ErrFeatureNotFound,
		domain.ErrEvaluationNotFound:
		return http.StatusNotFound

	// Bad Request errors (400) - валидация
	case domain.ErrInvalidProjectID, domain.ErrInvalidProjectName,
		domain.ErrInvalidFeatureID, domain.ErrInvalidGradeValue,
		domain.ErrScoreOutOfRange, domain.ErrRepoNotLinked:
		return http.StatusBadRequest

	// Upstream errors (502/429)
	case domain.ErrRateLimited:
		return http.StatusTooManyRequests
	case domain.ErrUpstreamUnavailable:
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}
