package domain

import (
	"context"
	"strings"
	"time"
)

// Project представляет студенческий проект, привязанный к GitHub-репозиторию и Jira-проекту.
type Project struct {
	ID            string
	GroupID       string
	Name          string
	Description   string
	GithubRepoURL string // пустая строка = not linked
	JiraKey       string // пустая строка = not linked
	CreatedAt     time.Time
}

// RepoRef идентифицирует GitHub-репозиторий проекта.
type RepoRef struct {
	Owner string
	Name  string
}

// Linked сообщает, привязан ли репозиторий.
func (r RepoRef) Linked() bool {
	return r.Owner != "" && r.Name != ""
}

// RepoRefFromURL извлекает owner/name из URL GitHub-репозитория.
// Пустой или нераспознанный URL дает пустой RepoRef (not linked).
func RepoRefFromURL(repoURL string) RepoRef {
	trimmed := strings.TrimSuffix(strings.TrimPrefix(repoURL, "https://github.com/"), "/")
	trimmed = strings.TrimSuffix(trimmed, ".git")
	parts := strings.Split(trimmed, "/")
	if repoURL == trimmed || len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return RepoRef{}
	}
	return RepoRef{Owner: parts[0], Name: parts[1]}
}

// ProjectRepository определяет контракт для работы с хранилищем проектов.
type ProjectRepository interface {
	Create(ctx context.Context, project *Project) error
	Delete(ctx context.Context, projectID string) error
	GetByID(ctx context.Context, projectID string) (*Project, error)
	GetByGroupID(ctx context.Context, groupID string) ([]*Project, error)
	GetAll(ctx context.Context) ([]*Project, error)
}
