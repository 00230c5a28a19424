package usecase

import (
	"context"

	"gradesync/internal/domain"
)

// EvaluationUseCase реализует чтение оценок и ручное оценивание преподавателем.
type EvaluationUseCase struct {
	projectRepo domain.ProjectRepository
	evalRepo    domain.EvaluationRepository
	locks       *ProjectLocks
}

// NewEvaluationUseCase создает новый экземпляр EvaluationUseCase.
func NewEvaluationUseCase(
	projectRepo domain.ProjectRepository,
	evalRepo domain.EvaluationRepository,
	locks *ProjectLocks,
) domain.EvaluationUseCase {
	return &EvaluationUseCase{
		projectRepo: projectRepo,
		evalRepo:    evalRepo,
		locks:       locks,
	}
}

// GetLOCItems возвращает текущие строки LOC-оценки проекта.
func (uc *EvaluationUseCase) GetLOCItems(ctx context.Context, projectID string) ([]*domain.LOCEvaluationItem, error) {
	if _, err := uc.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	return uc.evalRepo.GetLOCItems(ctx, projectID)
}

// GetGroupItems возвращает строки групповой оценки проекта.
func (uc *EvaluationUseCase) GetGroupItems(ctx context.Context, projectID string) ([]*domain.GroupEvaluationItem, error) {
	if _, err := uc.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	return uc.evalRepo.GetGroupItems(ctx, projectID)
}

// GradeLOCItem выставляет complexity/quality по фиче. Берет тот же замок,
// что и синхронизация: правка преподавателя не должна пересечься с atomic-replace.
func (uc *EvaluationUseCase) GradeLOCItem(ctx context.Context, projectID, featureID, complexity, quality string) (*domain.LOCEvaluationItem, error) {
	if featureID == "" {
		return nil, domain.ErrInvalidFeatureID
	}
	if !validComplexity(complexity) || !validQuality(quality) {
		return nil, domain.ErrInvalidGradeValue
	}

	release, ok := uc.locks.TryAcquire(projectID)
	if !ok {
		return nil, domain.ErrSyncInProgress
	}
	defer release()

	if _, err := uc.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	return uc.evalRepo.UpdateLOCGrades(ctx, projectID, featureID, complexity, quality)
}

// GradeGroupItem выставляет балл и комментарий по критерию рубрики.
func (uc *EvaluationUseCase) GradeGroupItem(ctx context.Context, projectID, itemID string, score float64, comment string) (*domain.GroupEvaluationItem, error) {
	release, ok := uc.locks.TryAcquire(projectID)
	if !ok {
		return nil, domain.ErrSyncInProgress
	}
	defer release()

	items, err := uc.evalRepo.GetGroupItems(ctx, projectID)
	if err != nil {
		return nil, err
	}

	var target *domain.GroupEvaluationItem
	for _, item := range items {
		if item.ID == itemID {
			target = item
			break
		}
	}
	if target == nil {
		return nil, domain.ErrEvaluationNotFound
	}
	if score < 0 || score > target.MaxScore {
		return nil, domain.ErrScoreOutOfRange
	}

	return uc.evalRepo.UpdateGroupScore(ctx, itemID, score, comment)
}

func validComplexity(value string) bool {
	switch value {
	case domain.ComplexitySimple, domain.ComplexityMedium, domain.ComplexityComplex:
		return true
	}
	return false
}

func validQuality(value string) bool {
	switch value {
	case domain.QualityHigh, domain.QualityMedium, domain.QualityLow:
		return true
	}
	return false
}
