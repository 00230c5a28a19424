package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"gradesync/internal/domain"
)

// storyPointsField задает кастомное поле story points в Jira Cloud по умолчанию.
const storyPointsField = "customfield_10016"

// Client реализует domain.TaskStatusProvider поверх Jira Cloud REST API v3.
type Client struct {
	baseURL  string
	email    string
	apiToken string
	httpc    *http.Client
}

// NewClient создает новый Jira клиент с basic auth (email + API token).
func NewClient(baseURL, email, apiToken string) *Client {
	return &Client{
		baseURL:  baseURL,
		email:    email,
		apiToken: apiToken,
		httpc:    &http.Client{Timeout: 15 * time.Second},
	}
}

type issueResponse struct {
	Fields struct {
		Status struct {
			Name           string `json:"name"`
			StatusCategory struct {
				Key string `json:"key"`
			} `json:"statusCategory"`
		} `json:"status"`
		StoryPoints *float64 `json:"customfield_10016"`
	} `json:"fields"`
}

// GetStatus возвращает статус задачи по ключу.
// Пустой ключ и 404 от Jira дают типизированный "not linked", не ошибку.
func (c *Client) GetStatus(ctx context.Context, issueKey string) (domain.IssueStatus, error) {
	if issueKey == "" {
		return domain.NotLinked(), nil
	}

	reqURL := fmt.Sprintf("%s/rest/api/3/issue/%s?fields=%s",
		c.baseURL, url.PathEscape(issueKey), url.QueryEscape("status,"+storyPointsField))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return domain.IssueStatus{}, fmt.Errorf("build jira request: %w", err)
	}
	req.SetBasicAuth(c.email, c.apiToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return domain.IssueStatus{}, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.NotLinked(), nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return domain.IssueStatus{}, fmt.Errorf("%w: jira returned 429", domain.ErrRateLimited)
	case resp.StatusCode >= 500:
		return domain.IssueStatus{}, fmt.Errorf("%w: jira returned %d", domain.ErrUpstreamUnavailable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return domain.IssueStatus{}, fmt.Errorf("jira returned unexpected status %d", resp.StatusCode)
	}

	var issue issueResponse
	if err := json.NewDecoder(resp.Body).Decode(&issue); err != nil {
		return domain.IssueStatus{}, fmt.Errorf("decode jira response: %w", err)
	}

	status := domain.IssueStatus{
		Status: mapStatusCategory(issue.Fields.Status.StatusCategory.Key),
		Linked: true,
	}
	if issue.Fields.StoryPoints != nil {
		status.StoryPoints = *issue.Fields.StoryPoints
	}

	return status, nil
}

// mapStatusCategory сводит категории статусов Jira к трем статусам шаблона.
func mapStatusCategory(key string) string {
	switch key {
	case "done":
		return domain.StatusDone
	case "indeterminate":
		return domain.StatusInProgress
	default: // "new" и все неизвестное
		return domain.StatusToDo
	}
}
