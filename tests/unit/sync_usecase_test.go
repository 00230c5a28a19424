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

const testProjectID = "proj-001"

func testProject() *domain.Project {
	return &domain.Project{
		ID:            testProjectID,
		GroupID:       "grp-001",
		Name:          "Jira GitHub Manager (Team 1)",
		GithubRepoURL: "https://github.com/WDP301-SP26/fe-repo",
		JiraKey:       "JGM",
	}
}

func testFeatures() []*domain.Feature {
	return []*domain.Feature{
		{ID: "f1", ProjectID: testProjectID, Feature: "Authentication", ScreenFunction: "Login Screen", InCharge: "alice", JiraIssueKey: "JGM-1"},
		{ID: "f2", ProjectID: testProjectID, Feature: "Dashboard", ScreenFunction: "Project List", InCharge: "bob", JiraIssueKey: "JGM-2"},
	}
}

func testCommits() []*domain.Commit {
	return []*domain.Commit{
		{SHA: "a1", Author: "alice", LinesAdded: 100, LinesDeleted: 10},
		{SHA: "a2", Author: "bob", LinesAdded: 50, LinesDeleted: 5},
	}
}

type syncFixture struct {
	projectRepo    *mocks.ProjectRepository
	featureRepo    *mocks.FeatureRepository
	evalRepo       *mocks.EvaluationRepository
	commitProvider *mocks.CommitProvider
	statusProvider *mocks.TaskStatusProvider
	locks          *usecase.ProjectLocks
	uc             domain.SyncUseCase
}

func newSyncFixture() *syncFixture {
	f := &syncFixture{
		projectRepo:    &mocks.ProjectRepository{},
		featureRepo:    &mocks.FeatureRepository{},
		evalRepo:       &mocks.EvaluationRepository{},
		commitProvider: &mocks.CommitProvider{},
		statusProvider: &mocks.TaskStatusProvider{},
		locks:          usecase.NewProjectLocks(),
	}
	f.uc = usecase.NewSyncUseCase(f.projectRepo, f.featureRepo, f.evalRepo, f.commitProvider, f.statusProvider, f.locks)
	return f
}

func TestSyncUseCase_Sync_FirstSyncCreatesItemsWithDefaults(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture()

	f.projectRepo.On("GetByID", mock.Anything, testProjectID).Return(testProject(), nil)
	f.featureRepo.On("GetByProjectID", mock.Anything, testProjectID).Return(testFeatures(), nil)
	f.evalRepo.On("GetLOCItems", mock.Anything, testProjectID).Return([]*domain.LOCEvaluationItem{}, nil)
	f.commitProvider.On("ListCommits", mock.Anything, domain.RepoRef{Owner: "WDP301-SP26", Name: "fe-repo"}).
		Return(&domain.CommitFetchResult{Commits: testCommits()}, nil)
	f.statusProvider.On("GetStatus", mock.Anything, "JGM-1").Return(domain.IssueStatus{Status: domain.StatusDone, Linked: true}, nil)
	f.statusProvider.On("GetStatus", mock.Anything, "JGM-2").Return(domain.IssueStatus{Status: domain.StatusInProgress, Linked: true}, nil)
	f.evalRepo.On("ReplaceLOCItems", mock.Anything, testProjectID, mock.Anything).Return(nil)

	report, err := f.uc.Sync(ctx, testProjectID)

	assert.NoError(t, err)
	assert.False(t, report.Partial)
	assert.Len(t, report.Items, 2)

	assert.Equal(t, "loc-f1", report.Items[0].ID)
	assert.Equal(t, "f1", report.Items[0].FeatureID)
	assert.Equal(t, domain.StatusDone, report.Items[0].Status)
	assert.Equal(t, 100, report.Items[0].LOC)
	assert.Equal(t, domain.ComplexityMedium, report.Items[0].Complexity)
	assert.Equal(t, domain.QualityMedium, report.Items[0].Quality)

	assert.Equal(t, "loc-f2", report.Items[1].ID)
	assert.Equal(t, domain.StatusInProgress, report.Items[1].Status)
	assert.Equal(t, 50, report.Items[1].LOC)

	f.evalRepo.AssertExpectations(t)
}

func TestSyncUseCase_Sync_Idempotent(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture()

	firstSyncItems := []*domain.LOCEvaluationItem{
		{ID: "loc-f1", FeatureID: "f1", Status: domain.StatusDone, LOC: 100, Complexity: domain.ComplexityMedium, Quality: domain.QualityMedium},
		{ID: "loc-f2", FeatureID: "f2", Status: domain.StatusInProgress, LOC: 50, Complexity: domain.ComplexityMedium, Quality: domain.QualityMedium},
	}

	f.projectRepo.On("GetByID", mock.Anything, testProjectID).Return(testProject(), nil)
	f.featureRepo.On("GetByProjectID", mock.Anything, testProjectID).Return(testFeatures(), nil)
	f.evalRepo.On("GetLOCItems", mock.Anything, testProjectID).Return([]*domain.LOCEvaluationItem{}, nil).Once()
	f.evalRepo.On("GetLOCItems", mock.Anything, testProjectID).Return(firstSyncItems, nil).Once()
	f.commitProvider.On("ListCommits", mock.Anything, mock.Anything).
		Return(&domain.CommitFetchResult{Commits: testCommits()}, nil)
	f.statusProvider.On("GetStatus", mock.Anything, "JGM-1").Return(domain.IssueStatus{Status: domain.StatusDone, Linked: true}, nil)
	f.statusProvider.On("GetStatus", mock.Anything, "JGM-2").Return(domain.IssueStatus{Status: domain.StatusInProgress, Linked: true}, nil)
	f.evalRepo.On("ReplaceLOCItems", mock.Anything, testProjectID, mock.Anything).Return(nil)

	first, err := f.uc.Sync(ctx, testProjectID)
	assert.NoError(t, err)

	second, err := f.uc.Sync(ctx, testProjectID)
	assert.NoError(t, err)

	// При неизменных upstream-данных второй проход дает идентичный набор:
	// те же ID, те же значения, без дублей.
	assert.Equal(t, first.Items, second.Items)
	assert.Len(t, second.Items, 2)
}

func TestSyncUseCase_Sync_PreservesManualGrades(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture()

	existing := []*domain.LOCEvaluationItem{
		{ID: "loc-f1", FeatureID: "f1", Status: domain.StatusInProgress, LOC: 100, Complexity: domain.ComplexityComplex, Quality: domain.QualityHigh},
		{ID: "loc-f2", FeatureID: "f2", Status: domain.StatusInProgress, LOC: 50, Complexity: domain.ComplexitySimple, Quality: domain.QualityLow},
	}

	// Alice дописала 20 строк, ее задача закрыта.
	commits := append(testCommits(), &domain.Commit{SHA: "a3", Author: "alice", LinesAdded: 20})

	f.projectRepo.On("GetByID", mock.Anything, testProjectID).Return(testProject(), nil)
	f.featureRepo.On("GetByProjectID", mock.Anything, testProjectID).Return(testFeatures(), nil)
	f.evalRepo.On("GetLOCItems", mock.Anything, testProjectID).Return(existing, nil)
	f.commitProvider.On("ListCommits", mock.Anything, mock.Anything).
		Return(&domain.CommitFetchResult{Commits: commits}, nil)
	f.statusProvider.On("GetStatus", mock.Anything, "JGM-1").Return(domain.IssueStatus{Status: domain.StatusDone, Linked: true}, nil)
	f.statusProvider.On("GetStatus", mock.Anything, "JGM-2").Return(domain.IssueStatus{Status: domain.StatusInProgress, Linked: true}, nil)
	f.evalRepo.On("ReplaceLOCItems", mock.Anything, testProjectID, mock.Anything).Return(nil)

	report, err := f.uc.Sync(ctx, testProjectID)

	assert.NoError(t, err)

	// Автоматика обновлена
	assert.Equal(t, domain.StatusDone, report.Items[0].Status)
	assert.Equal(t, 120, report.Items[0].LOC)
	// Оценки преподавателя нетронуты
	assert.Equal(t, domain.ComplexityComplex, report.Items[0].Complexity)
	assert.Equal(t, domain.QualityHigh, report.Items[0].Quality)

	assert.Equal(t, 50, report.Items[1].LOC)
	assert.Equal(t, domain.ComplexitySimple, report.Items[1].Complexity)
	assert.Equal(t, domain.QualityLow, report.Items[1].Quality)
}

func TestSyncUseCase_Sync_AttributionByExactIdentity(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture()

	commits := []*domain.Commit{
		{SHA: "c1", Author: "alice", LinesAdded: 100, LinesDeleted: 10},
		{SHA: "c2", Author: "charlie", LinesAdded: 500},
		{SHA: "c3", Author: domain.UnknownAuthor, LinesAdded: 999},
		{SHA: "c4", Author: "alice", LinesAdded: 20},
	}

	f.projectRepo.On("GetByID", mock.Anything, testProjectID).Return(testProject(), nil)
	f.featureRepo.On("GetByProjectID", mock.Anything, testProjectID).Return(testFeatures(), nil)
	f.evalRepo.On("GetLOCItems", mock.Anything, testProjectID).Return([]*domain.LOCEvaluationItem{}, nil)
	f.commitProvider.On("ListCommits", mock.Anything, mock.Anything).
		Return(&domain.CommitFetchResult{Commits: commits}, nil)
	f.statusProvider.On("GetStatus", mock.Anything, mock.Anything).Return(domain.NotLinked(), nil)
	f.evalRepo.On("ReplaceLOCItems", mock.Anything, testProjectID, mock.Anything).Return(nil)

	report, err := f.uc.Sync(ctx, testProjectID)

	assert.NoError(t, err)
	// Только коммиты alice; чужие и "unknown" не засчитываются.
	assert.Equal(t, 120, report.Items[0].LOC)
	assert.Equal(t, 0, report.Items[1].LOC)
}

func TestSyncUseCase_Sync_NotLinkedDefaultsToDo(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture()

	features := []*domain.Feature{
		{ID: "f1", ProjectID: testProjectID, Feature: "Report", InCharge: "alice"},
	}

	f.projectRepo.On("GetByID", mock.Anything, testProjectID).Return(testProject(), nil)
	f.featureRepo.On("GetByProjectID", mock.Anything, testProjectID).Return(features, nil)
	f.evalRepo.On("GetLOCItems", mock.Anything, testProjectID).Return([]*domain.LOCEvaluationItem{}, nil)
	f.commitProvider.On("ListCommits", mock.Anything, mock.Anything).
		Return(&domain.CommitFetchResult{}, nil)
	f.statusProvider.On("GetStatus", mock.Anything, "").Return(domain.NotLinked(), nil)
	f.evalRepo.On("ReplaceLOCItems", mock.Anything, testProjectID, mock.Anything).Return(nil)

	report, err := f.uc.Sync(ctx, testProjectID)

	assert.NoError(t, err)
	assert.False(t, report.Partial)
	assert.Equal(t, domain.StatusToDo, report.Items[0].Status)
}

func TestSyncUseCase_Sync_TrackerFailureKeepsPreviousStatus(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture()

	existing := []*domain.LOCEvaluationItem{
		{ID: "loc-f1", FeatureID: "f1", Status: domain.StatusDone, LOC: 100, Complexity: domain.ComplexityMedium, Quality: domain.QualityMedium},
		{ID: "loc-f2", FeatureID: "f2", Status: domain.StatusToDo, LOC: 50, Complexity: domain.ComplexityMedium, Quality: domain.QualityMedium},
	}

	f.projectRepo.On("GetByID", mock.Anything, testProjectID).Return(testProject(), nil)
	f.featureRepo.On("GetByProjectID", mock.Anything, testProjectID).Return(testFeatures(), nil)
	f.evalRepo.On("GetLOCItems", mock.Anything, testProjectID).Return(existing, nil)
	f.commitProvider.On("ListCommits", mock.Anything, mock.Anything).
		Return(&domain.CommitFetchResult{Commits: testCommits()}, nil)
	f.statusProvider.On("GetStatus", mock.Anything, "JGM-1").Return(domain.IssueStatus{}, domain.ErrUpstreamUnavailable)
	f.statusProvider.On("GetStatus", mock.Anything, "JGM-2").Return(domain.IssueStatus{Status: domain.StatusInProgress, Linked: true}, nil)
	f.evalRepo.On("ReplaceLOCItems", mock.Anything, testProjectID, mock.Anything).Return(nil)

	report, err := f.uc.Sync(ctx, testProjectID)

	assert.NoError(t, err)
	assert.True(t, report.Partial)

	// Отказавшая фича сохраняет прежний статус, а не сбрасывается в To Do.
	assert.Equal(t, domain.StatusDone, report.Items[0].Status)
	// Успешная фича обновлена.
	assert.Equal(t, domain.StatusInProgress, report.Items[1].Status)

	assert.Len(t, report.Stale, 1)
	assert.Equal(t, "f1", report.Stale[0].FeatureID)
	assert.True(t, report.Stale[0].StaleStatus)
	assert.False(t, report.Stale[0].StaleLOC)
}

func TestSyncUseCase_Sync_IngestorFailureKeepsPreviousLOC(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture()

	existing := []*domain.LOCEvaluationItem{
		{ID: "loc-f1", FeatureID: "f1", Status: domain.StatusInProgress, LOC: 100, Complexity: domain.ComplexityMedium, Quality: domain.QualityMedium},
		{ID: "loc-f2", FeatureID: "f2", Status: domain.StatusInProgress, LOC: 50, Complexity: domain.ComplexityMedium, Quality: domain.QualityMedium},
	}

	f.projectRepo.On("GetByID", mock.Anything, testProjectID).Return(testProject(), nil)
	f.featureRepo.On("GetByProjectID", mock.Anything, testProjectID).Return(testFeatures(), nil)
	f.evalRepo.On("GetLOCItems", mock.Anything, testProjectID).Return(existing, nil)
	f.commitProvider.On("ListCommits", mock.Anything, mock.Anything).Return(nil, domain.ErrUpstreamUnavailable)
	f.statusProvider.On("GetStatus", mock.Anything, "JGM-1").Return(domain.IssueStatus{Status: domain.StatusDone, Linked: true}, nil)
	f.statusProvider.On("GetStatus", mock.Anything, "JGM-2").Return(domain.IssueStatus{Status: domain.StatusDone, Linked: true}, nil)
	f.evalRepo.On("ReplaceLOCItems", mock.Anything, testProjectID, mock.Anything).Return(nil)

	report, err := f.uc.Sync(ctx, testProjectID)

	assert.NoError(t, err)
	assert.True(t, report.Partial)

	// LOC остается от прошлой синхронизации, статусы обновляются.
	assert.Equal(t, 100, report.Items[0].LOC)
	assert.Equal(t, 50, report.Items[1].LOC)
	assert.Equal(t, domain.StatusDone, report.Items[0].Status)
	assert.Equal(t, domain.StatusDone, report.Items[1].Status)

	assert.Len(t, report.Stale, 2)
	assert.True(t, report.Stale[0].StaleLOC)
	assert.False(t, report.Stale[0].StaleStatus)
}

func TestSyncUseCase_Sync_PartialCommitFetchKeepsPreviousLOC(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture()

	existing := []*domain.LOCEvaluationItem{
		{ID: "loc-f1", FeatureID: "f1", Status: domain.StatusInProgress, LOC: 100, Complexity: domain.ComplexityMedium, Quality: domain.QualityMedium},
		{ID: "loc-f2", FeatureID: "f2", Status: domain.StatusInProgress, LOC: 50, Complexity: domain.ComplexityMedium, Quality: domain.QualityMedium},
	}

	// Получена лишь часть страниц: сумма недосчитала бы LOC молча.
	partialFetch := &domain.CommitFetchResult{
		Commits:  []*domain.Commit{{SHA: "a1", Author: "alice", LinesAdded: 10}},
		Degraded: true,
	}

	f.projectRepo.On("GetByID", mock.Anything, testProjectID).Return(testProject(), nil)
	f.featureRepo.On("GetByProjectID", mock.Anything, testProjectID).Return(testFeatures(), nil)
	f.evalRepo.On("GetLOCItems", mock.Anything, testProjectID).Return(existing, nil)
	f.commitProvider.On("ListCommits", mock.Anything, mock.Anything).Return(partialFetch, nil)
	f.statusProvider.On("GetStatus", mock.Anything, mock.Anything).Return(domain.IssueStatus{Status: domain.StatusInProgress, Linked: true}, nil)
	f.evalRepo.On("ReplaceLOCItems", mock.Anything, testProjectID, mock.Anything).Return(nil)

	report, err := f.uc.Sync(ctx, testProjectID)

	assert.NoError(t, err)
	assert.True(t, report.Partial)
	assert.Equal(t, 100, report.Items[0].LOC)
	assert.Equal(t, 50, report.Items[1].LOC)
}

func TestSyncUseCase_Sync_NoLinkedRepoYieldsZeroLOC(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture()

	project := testProject()
	project.GithubRepoURL = ""

	f.projectRepo.On("GetByID", mock.Anything, testProjectID).Return(project, nil)
	f.featureRepo.On("GetByProjectID", mock.Anything, testProjectID).Return(testFeatures(), nil)
	f.evalRepo.On("GetLOCItems", mock.Anything, testProjectID).Return([]*domain.LOCEvaluationItem{}, nil)
	f.statusProvider.On("GetStatus", mock.Anything, mock.Anything).Return(domain.NotLinked(), nil)
	f.evalRepo.On("ReplaceLOCItems", mock.Anything, testProjectID, mock.Anything).Return(nil)

	report, err := f.uc.Sync(ctx, testProjectID)

	assert.NoError(t, err)
	assert.False(t, report.Partial)
	assert.Equal(t, 0, report.Items[0].LOC)
	assert.Equal(t, 0, report.Items[1].LOC)
	f.commitProvider.AssertNotCalled(t, "ListCommits", mock.Anything, mock.Anything)
}

func TestSyncUseCase_Sync_StoreWriteFailureIsHard(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture()

	f.projectRepo.On("GetByID", mock.Anything, testProjectID).Return(testProject(), nil)
	f.featureRepo.On("GetByProjectID", mock.Anything, testProjectID).Return(testFeatures(), nil)
	f.evalRepo.On("GetLOCItems", mock.Anything, testProjectID).Return([]*domain.LOCEvaluationItem{}, nil)
	f.commitProvider.On("ListCommits", mock.Anything, mock.Anything).
		Return(&domain.CommitFetchResult{Commits: testCommits()}, nil)
	f.statusProvider.On("GetStatus", mock.Anything, mock.Anything).Return(domain.NotLinked(), nil)
	f.evalRepo.On("ReplaceLOCItems", mock.Anything, testProjectID, mock.Anything).Return(domain.ErrStoreWrite)

	report, err := f.uc.Sync(ctx, testProjectID)

	assert.ErrorIs(t, err, domain.ErrStoreWrite)
	assert.Nil(t, report)
}

func TestSyncUseCase_Sync_ConcurrentSyncRejected(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture()

	release, ok := f.locks.TryAcquire(testProjectID)
	assert.True(t, ok)
	defer release()

	report, err := f.uc.Sync(ctx, testProjectID)

	assert.ErrorIs(t, err, domain.ErrSyncInProgress)
	assert.Nil(t, report)
	f.evalRepo.AssertNotCalled(t, "ReplaceLOCItems", mock.Anything, mock.Anything, mock.Anything)
}

func TestSyncUseCase_Sync_CancelledContextSkipsWrite(t *testing.T) {
	f := newSyncFixture()

	ctx, cancel := context.WithCancel(context.Background())

	f.projectRepo.On("GetByID", mock.Anything, testProjectID).Return(testProject(), nil)
	f.featureRepo.On("GetByProjectID", mock.Anything, testProjectID).Return(testFeatures(), nil)
	f.evalRepo.On("GetLOCItems", mock.Anything, testProjectID).Return([]*domain.LOCEvaluationItem{}, nil)
	f.commitProvider.On("ListCommits", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { cancel() }).
		Return(&domain.CommitFetchResult{Commits: testCommits()}, nil)
	f.statusProvider.On("GetStatus", mock.Anything, mock.Anything).Return(domain.NotLinked(), nil)

	report, err := f.uc.Sync(ctx, testProjectID)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, report)
	f.evalRepo.AssertNotCalled(t, "ReplaceLOCItems", mock.Anything, mock.Anything, mock.Anything)
}

func TestSyncUseCase_Sync_ValidationErrors(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture()

	report, err := f.uc.Sync(ctx, "")

	assert.ErrorIs(t, err, domain.ErrInvalidProjectID)
	assert.Nil(t, report)
}

func TestSyncUseCase_Sync_ProjectNotFound(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture()

	f.projectRepo.On("GetByID", mock.Anything, "missing").Return(nil, domain.ErrProjectNotFound)

	report, err := f.uc.Sync(ctx, "missing")

	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	assert.Nil(t, report)
}
