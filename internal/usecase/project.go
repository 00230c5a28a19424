package usecase

import (
	"context"
	"time"

	"gradesync/internal/domain"

	"github.com/google/uuid"
)

// Рубрика групповой оценки (SWP391 Template 2), засеивается каждому новому проекту.
var groupRubric = []struct {
	category string
	maxScore float64
}{
	{"1. Software Requirement Specification (SRS)", 1.0},
	{"2. Software Architecture & UI Design", 1.5},
	{"3. API Design & Documentation", 1.5},
	{"4. Project Source Code Quality", 3.5},
	{"5. Software Testing (Unit/Integration)", 1.5},
	{"6. Project Management (Jira/GitHub)", 1.0},
}

// ProjectUseCase реализует бизнес-логику для работы с проектами и реестром фич.
type ProjectUseCase struct {
	projectRepo domain.ProjectRepository
	featureRepo domain.FeatureRepository
	evalRepo    domain.EvaluationRepository
}

// NewProjectUseCase создает новый экземпляр ProjectUseCase.
func NewProjectUseCase(
	projectRepo domain.ProjectRepository,
	featureRepo domain.FeatureRepository,
	evalRepo domain.EvaluationRepository,
) domain.ProjectUseCase {
	return &ProjectUseCase{
		projectRepo: projectRepo,
		featureRepo: featureRepo,
		evalRepo:    evalRepo,
	}
}

// CreateProject создает проект и засеивает рубрику групповой оценки.
func (uc *ProjectUseCase) CreateProject(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	if project.Name == "" {
		return nil, domain.ErrInvalidProjectName
	}

	if project.ID == "" {
		project.ID = uuid.New().String()
	}
	project.CreatedAt = time.Now().UTC()

	if err := uc.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	items := make([]*domain.GroupEvaluationItem, len(groupRubric))
	for i, row := range groupRubric {
		items[i] = &domain.GroupEvaluationItem{
			ID:        uuid.New().String(),
			ProjectID: project.ID,
			Category:  row.category,
			MaxScore:  row.maxScore,
		}
	}
	if err := uc.evalRepo.SeedGroupItems(ctx, project.ID, items); err != nil {
		// Проект без рубрики не должен оставаться в хранилище.
		_ = uc.projectRepo.Delete(ctx, project.ID)
		return nil, err
	}

	return project, nil
}

// GetProject возвращает проект по ID.
func (uc *ProjectUseCase) GetProject(ctx context.Context, projectID string) (*domain.Project, error) {
	if projectID == "" {
		return nil, domain.ErrInvalidProjectID
	}
	return uc.projectRepo.GetByID(ctx, projectID)
}

// ListProjects возвращает проекты, опционально отфильтрованные по группе.
func (uc *ProjectUseCase) ListProjects(ctx context.Context, groupID string) ([]*domain.Project, error) {
	if groupID != "" {
		return uc.projectRepo.GetByGroupID(ctx, groupID)
	}
	return uc.projectRepo.GetAll(ctx)
}

// AddFeatures пополняет реестр фич проекта (обычно загрузка шаблона рубрики).
func (uc *ProjectUseCase) AddFeatures(ctx context.Context, projectID string, features []*domain.Feature) ([]*domain.Feature, error) {
	if _, err := uc.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	for _, f := range features {
		if f.ID == "" {
			f.ID = uuid.New().String()
		}
		f.ProjectID = projectID
	}

	if err := uc.featureRepo.CreateBatch(ctx, features); err != nil {
		return nil, err
	}
	return features, nil
}

// ListFeatures возвращает реестр фич проекта в стабильном порядке.
func (uc *ProjectUseCase) ListFeatures(ctx context.Context, projectID string) ([]*domain.Feature, error) {
	if _, err := uc.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	return uc.featureRepo.GetByProjectID(ctx, projectID)
}
