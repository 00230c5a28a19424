package mocks

import (
	"context"

	"gradesync/internal/domain"

	"github.com/stretchr/testify/mock"
)

// ProjectRepository реализует мок domain.ProjectRepository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *ProjectRepository) Delete(ctx context.Context, projectID string) error {
	args := m.Called(ctx, projectID)
	return args.Error(0)
}

func (m *ProjectRepository) GetByID(ctx context.Context, projectID string) (*domain.Project, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *ProjectRepository) GetByGroupID(ctx context.Context, groupID string) ([]*domain.Project, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Project), args.Error(1)
}

func (m *ProjectRepository) GetAll(ctx context.Context) ([]*domain.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Project), args.Error(1)
}

// FeatureRepository реализует мок domain.FeatureRepository.
type FeatureRepository struct {
	mock.Mock
}

func (m *FeatureRepository) GetByProjectID(ctx context.Context, projectID string) ([]*domain.Feature, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Feature), args.Error(1)
}

func (m *FeatureRepository) CreateBatch(ctx context.Context, features []*domain.Feature) error {
	args := m.Called(ctx, features)
	return args.Error(0)
}

// EvaluationRepository реализует мок domain.EvaluationRepository.
type EvaluationRepository struct {
	mock.Mock
}

func (m *EvaluationRepository) GetLOCItems(ctx context.Context, projectID string) ([]*domain.LOCEvaluationItem, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LOCEvaluationItem), args.Error(1)
}

func (m *EvaluationRepository) ReplaceLOCItems(ctx context.Context, projectID string, items []*domain.LOCEvaluationItem) error {
	args := m.Called(ctx, projectID, items)
	return args.Error(0)
}

func (m *EvaluationRepository) UpdateLOCGrades(ctx context.Context, projectID, featureID, complexity, quality string) (*domain.LOCEvaluationItem, error) {
	args := m.Called(ctx, projectID, featureID, complexity, quality)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LOCEvaluationItem), args.Error(1)
}

func (m *EvaluationRepository) GetGroupItems(ctx context.Context, projectID string) ([]*domain.GroupEvaluationItem, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.GroupEvaluationItem), args.Error(1)
}

func (m *EvaluationRepository) SeedGroupItems(ctx context.Context, projectID string, items []*domain.GroupEvaluationItem) error {
	args := m.Called(ctx, projectID, items)
	return args.Error(0)
}

func (m *EvaluationRepository) UpdateGroupScore(ctx context.Context, itemID string, score float64, comment string) (*domain.GroupEvaluationItem, error) {
	args := m.Called(ctx, itemID, score, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GroupEvaluationItem), args.Error(1)
}
