package domain

import (
	"context"
	"time"
)

// UnknownAuthor помечает коммиты без определяемого автора.
// Такие коммиты остаются в выборке (итоги сходятся с провайдером),
// но никогда не атрибутируются фичам.
const UnknownAuthor = "unknown"

// Commit представляет нормализованный коммит из GitHub.
type Commit struct {
	SHA          string
	Author       string
	AvatarURL    string
	Date         time.Time
	Message      string
	LinesAdded   int
	LinesDeleted int
}

// ContributorStat содержит агрегированную статистику по одному автору.
// Чистая проекция множества коммитов, никогда не редактируется вручную.
type ContributorStat struct {
	Author       string
	AvatarURL    string
	Commits      int
	LinesAdded   int
	LinesDeleted int
	NetChange    int
}

// CommitFetchResult содержит результат обхода истории коммитов.
// Degraded = true, когда upstream отказал на середине обхода
// и Commits содержит только уже полученные страницы.
type CommitFetchResult struct {
	Commits  []*Commit
	Degraded bool
}

// CommitProvider определяет контракт получения истории коммитов
// (порядок upstream сохраняется: сначала самые свежие).
type CommitProvider interface {
	ListCommits(ctx context.Context, repo RepoRef) (*CommitFetchResult, error)
}
