package usecase

import (
	"context"

	"gradesync/internal/domain"
)

// StatsUseCase реализует аналитику по контрибьюторам репозитория.
type StatsUseCase struct {
	commitProvider domain.CommitProvider
}

// NewStatsUseCase создает новый экземпляр StatsUseCase.
func NewStatsUseCase(commitProvider domain.CommitProvider) domain.StatsUseCase {
	return &StatsUseCase{commitProvider: commitProvider}
}

// GetContributorStats возвращает агрегированную статистику по авторам репозитория.
// Второй результат сообщает о неполной выборке коммитов: суммы по урезанной
// истории нельзя выдавать за достоверные.
func (uc *StatsUseCase) GetContributorStats(ctx context.Context, repo domain.RepoRef) ([]*domain.ContributorStat, bool, error) {
	fetch, err := uc.commitProvider.ListCommits(ctx, repo)
	if err != nil {
		return nil, false, err
	}
	return Aggregate(fetch.Commits), fetch.Degraded, nil
}

// GetRecentCommits возвращает последние коммиты репозитория (порядок upstream).
// Второй результат сообщает о неполной выборке.
func (uc *StatsUseCase) GetRecentCommits(ctx context.Context, repo domain.RepoRef, limit int) ([]*domain.Commit, bool, error) {
	fetch, err := uc.commitProvider.ListCommits(ctx, repo)
	if err != nil {
		return nil, false, err
	}

	commits := fetch.Commits
	if limit > 0 && len(commits) > limit {
		commits = commits[:limit]
	}
	return commits, fetch.Degraded, nil
}
