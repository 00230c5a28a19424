package mocks

import (
	"context"

	"gradesync/internal/domain"

	"github.com/stretchr/testify/mock"
)

// CommitProvider реализует мок domain.CommitProvider.
type CommitProvider struct {
	mock.Mock
}

func (m *CommitProvider) ListCommits(ctx context.Context, repo domain.RepoRef) (*domain.CommitFetchResult, error) {
	args := m.Called(ctx, repo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommitFetchResult), args.Error(1)
}

// TaskStatusProvider реализует мок domain.TaskStatusProvider.
type TaskStatusProvider struct {
	mock.Mock
}

func (m *TaskStatusProvider) GetStatus(ctx context.Context, issueKey string) (domain.IssueStatus, error) {
	args := m.Called(ctx, issueKey)
	return args.Get(0).(domain.IssueStatus), args.Error(1)
}
