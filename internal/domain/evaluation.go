package domain

import "context"

// Статусы задач (SWP391 Template 3).
const (
	StatusToDo       = "To Do"
	StatusInProgress = "In Progress"
	StatusDone       = "Done"
)

// Уровни сложности и качества, выставляемые преподавателем.
const (
	ComplexitySimple  = "Simple"
	ComplexityMedium  = "Medium"
	ComplexityComplex = "Complex"

	QualityHigh   = "High"
	QualityMedium = "Medium"
	QualityLow    = "Low"
)

// LOCEvaluationItem представляет строку оценки по фиче.
// Status и LOC принадлежат автоматике (перезаписываются каждым sync),
// Complexity и Quality принадлежат преподавателю (sync выставляет их только при создании).
type LOCEvaluationItem struct {
	ID         string
	FeatureID  string
	Status     string
	LOC        int
	Complexity string
	Quality    string
}

// GroupEvaluationItem представляет строку групповой оценки по критерию рубрики (Template 2).
type GroupEvaluationItem struct {
	ID        string
	ProjectID string
	Category  string
	MaxScore  float64
	Score     float64
	Comment   string
}

// FeatureStaleness помечает поля строки, оставшиеся от прошлой синхронизации
// из-за недоступного upstream.
type FeatureStaleness struct {
	FeatureID   string
	StaleStatus bool
	StaleLOC    bool
}

// SyncReport содержит итог синхронизации: полный набор строк плюс маркеры деградации.
type SyncReport struct {
	Items   []*LOCEvaluationItem
	Partial bool
	Stale   []FeatureStaleness
}

// EvaluationRepository определяет контракт хранилища оценок.
// ReplaceLOCItems атомарно замещает набор строк проекта: либо все строки,
// либо ни одной.
type EvaluationRepository interface {
	GetLOCItems(ctx context.Context, projectID string) ([]*LOCEvaluationItem, error)
	ReplaceLOCItems(ctx context.Context, projectID string, items []*LOCEvaluationItem) error
	UpdateLOCGrades(ctx context.Context, projectID, featureID, complexity, quality string) (*LOCEvaluationItem, error)
	GetGroupItems(ctx context.Context, projectID string) ([]*GroupEvaluationItem, error)
	SeedGroupItems(ctx context.Context, projectID string, items []*GroupEvaluationItem) error
	UpdateGroupScore(ctx context.Context, itemID string, score float64, comment string) (*GroupEvaluationItem, error)
}
