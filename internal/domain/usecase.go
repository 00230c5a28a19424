package domain

import "context"

// ProjectUseCase определяет бизнес-логику для работы с проектами и реестром фич.
type ProjectUseCase interface {
	CreateProject(ctx context.Context, project *Project) (*Project, error)
	GetProject(ctx context.Context, projectID string) (*Project, error)
	ListProjects(ctx context.Context, groupID string) ([]*Project, error)
	AddFeatures(ctx context.Context, projectID string, features []*Feature) ([]*Feature, error)
	ListFeatures(ctx context.Context, projectID string) ([]*Feature, error)
}

// SyncUseCase определяет бизнес-логику синхронизации оценок с GitHub и Jira.
type SyncUseCase interface {
	Sync(ctx context.Context, projectID string) (*SyncReport, error)
}

// EvaluationUseCase определяет бизнес-логику чтения и ручного оценивания.
type EvaluationUseCase interface {
	GetLOCItems(ctx context.Context, projectID string) ([]*LOCEvaluationItem, error)
	GetGroupItems(ctx context.Context, projectID string) ([]*GroupEvaluationItem, error)
	GradeLOCItem(ctx context.Context, projectID, featureID, complexity, quality string) (*LOCEvaluationItem, error)
	GradeGroupItem(ctx context.Context, projectID, itemID string, score float64, comment string) (*GroupEvaluationItem, error)
}

// StatsUseCase определяет бизнес-логику для аналитики по контрибьюторам.
type StatsUseCase interface {
	GetContributorStats(ctx context.Context, repo RepoRef) ([]*ContributorStat, bool, error)
	GetRecentCommits(ctx context.Context, repo RepoRef, limit int) ([]*Commit, bool, error)
}
