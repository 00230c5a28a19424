package domain

import "context"

// IssueStatus содержит результат запроса статуса задачи в трекере.
// Linked = false означает валидное состояние "фича не привязана", не ошибку.
type IssueStatus struct {
	Status      string
	Linked      bool
	StoryPoints float64
}

// NotLinked возвращает типизированный результат для непривязанной фичи.
func NotLinked() IssueStatus {
	return IssueStatus{Status: StatusToDo, Linked: false}
}

// TaskStatusProvider определяет контракт получения статуса задачи из трекера.
type TaskStatusProvider interface {
	GetStatus(ctx context.Context, issueKey string) (IssueStatus, error)
}
