package domain

import "context"

// Feature представляет оцениваемую единицу проекта (фича/экран) с ответственным студентом.
// Список фич стабилен между синхронизациями и задается конфигурацией курса.
type Feature struct {
	ID             string
	ProjectID      string
	Feature        string
	ScreenFunction string
	InCharge       string // GitHub login ответственного
	JiraIssueKey   string // пустая строка = фича не привязана к Jira
}

// FeatureRepository определяет контракт для работы с реестром фич.
type FeatureRepository interface {
	GetByProjectID(ctx context.Context, projectID string) ([]*Feature, error)
	CreateBatch(ctx context.Context, features []*Feature) error
}
