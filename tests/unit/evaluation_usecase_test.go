package usecase_test

import (
	"context"
	"testing"

	"gradesync/internal/domain"
	"gradesync/internal/usecase"
	"gradesync/tests/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestEvaluationUseCase_GradeLOCItem_Success(t *testing.T) {
	ctx := context.Background()
	projectRepo := &mocks.ProjectRepository{}
	evalRepo := &mocks.EvaluationRepository{}
	locks := usecase.NewProjectLocks()
	uc := usecase.NewEvaluationUseCase(projectRepo, evalRepo, locks)

	graded := &domain.LOCEvaluationItem{
		ID: "loc-f1", FeatureID: "f1",
		Status: domain.StatusDone, LOC: 120,
		Complexity: domain.ComplexityComplex, Quality: domain.QualityHigh,
	}

	projectRepo.On("GetByID", ctx, testProjectID).Return(testProject(), nil)
	// Обновление всегда ограничено проектом, под замком которого идет правка.
	evalRepo.On("UpdateLOCGrades", ctx, testProjectID, "f1", domain.ComplexityComplex, domain.QualityHigh).Return(graded, nil)

	item, err := uc.GradeLOCItem(ctx, testProjectID, "f1", domain.ComplexityComplex, domain.QualityHigh)

	assert.NoError(t, err)
	assert.Equal(t, graded, item)
	evalRepo.AssertExpectations(t)
}

func TestEvaluationUseCase_GradeLOCItem_ValidationErrors(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewEvaluationUseCase(&mocks.ProjectRepository{}, &mocks.EvaluationRepository{}, usecase.NewProjectLocks())

	testCases := []struct {
		name       string
		featureID  string
		complexity string
		quality    string
		expected   error
	}{
		{"Empty feature ID", "", domain.ComplexityMedium, domain.QualityMedium, domain.ErrInvalidFeatureID},
		{"Unknown complexity", "f1", "Extreme", domain.QualityMedium, domain.ErrInvalidGradeValue},
		{"Unknown quality", "f1", domain.ComplexityMedium, "Perfect", domain.ErrInvalidGradeValue},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			item, err := uc.GradeLOCItem(ctx, testProjectID, tc.featureID, tc.complexity, tc.quality)
			assert.ErrorIs(t, err, tc.expected)
			assert.Nil(t, item)
		})
	}
}

func TestEvaluationUseCase_GradeLOCItem_RejectedDuringSync(t *testing.T) {
	ctx := context.Background()
	locks := usecase.NewProjectLocks()
	uc := usecase.NewEvaluationUseCase(&mocks.ProjectRepository{}, &mocks.EvaluationRepository{}, locks)

	// Синхронизация держит замок проекта: правка преподавателя отклоняется,
	// а не перемешивается с atomic-replace.
	release, ok := locks.TryAcquire(testProjectID)
	assert.True(t, ok)
	defer release()

	item, err := uc.GradeLOCItem(ctx, testProjectID, "f1", domain.ComplexitySimple, domain.QualityLow)

	assert.ErrorIs(t, err, domain.ErrSyncInProgress)
	assert.Nil(t, item)
}

func TestEvaluationUseCase_GradeGroupItem_Success(t *testing.T) {
	ctx := context.Background()
	projectRepo := &mocks.ProjectRepository{}
	evalRepo := &mocks.EvaluationRepository{}
	uc := usecase.NewEvaluationUseCase(projectRepo, evalRepo, usecase.NewProjectLocks())

	items := []*domain.GroupEvaluationItem{
		{ID: "eval-1", ProjectID: testProjectID, Category: "1. Software Requirement Specification (SRS)", MaxScore: 1.0},
	}
	updated := &domain.GroupEvaluationItem{
		ID: "eval-1", ProjectID: testProjectID,
		Category: items[0].Category, MaxScore: 1.0, Score: 0.8, Comment: "Good use case diagrams.",
	}

	evalRepo.On("GetGroupItems", ctx, testProjectID).Return(items, nil)
	evalRepo.On("UpdateGroupScore", ctx, "eval-1", 0.8, "Good use case diagrams.").Return(updated, nil)

	item, err := uc.GradeGroupItem(ctx, testProjectID, "eval-1", 0.8, "Good use case diagrams.")

	assert.NoError(t, err)
	assert.Equal(t, updated, item)
}

func TestEvaluationUseCase_GradeGroupItem_ScoreOutOfRange(t *testing.T) {
	ctx := context.Background()
	evalRepo := &mocks.EvaluationRepository{}
	uc := usecase.NewEvaluationUseCase(&mocks.ProjectRepository{}, evalRepo, usecase.NewProjectLocks())

	items := []*domain.GroupEvaluationItem{
		{ID: "eval-1", ProjectID: testProjectID, Category: "SRS", MaxScore: 1.0},
	}
	evalRepo.On("GetGroupItems", ctx, testProjectID).Return(items, nil)

	item, err := uc.GradeGroupItem(ctx, testProjectID, "eval-1", 1.5, "")

	assert.ErrorIs(t, err, domain.ErrScoreOutOfRange)
	assert.Nil(t, item)
	evalRepo.AssertNotCalled(t, "UpdateGroupScore", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEvaluationUseCase_GradeGroupItem_NotFound(t *testing.T) {
	ctx := context.Background()
	evalRepo := &mocks.EvaluationRepository{}
	uc := usecase.NewEvaluationUseCase(&mocks.ProjectRepository{}, evalRepo, usecase.NewProjectLocks())

	evalRepo.On("GetGroupItems", ctx, testProjectID).Return([]*domain.GroupEvaluationItem{}, nil)

	item, err := uc.GradeGroupItem(ctx, testProjectID, "missing", 0.5, "")

	assert.ErrorIs(t, err, domain.ErrEvaluationNotFound)
	assert.Nil(t, item)
}

func TestEvaluationUseCase_GetLOCItems_ProjectNotFound(t *testing.T) {
	ctx := context.Background()
	projectRepo := &mocks.ProjectRepository{}
	uc := usecase.NewEvaluationUseCase(projectRepo, &mocks.EvaluationRepository{}, usecase.NewProjectLocks())

	projectRepo.On("GetByID", ctx, "missing").Return(nil, domain.ErrProjectNotFound)

	items, err := uc.GetLOCItems(ctx, "missing")

	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	assert.Nil(t, items)
}
