package usecase

import (
	"context"

	"gradesync/internal/domain"

	"golang.org/x/sync/errgroup"
)

// statusLookupLimit ограничивает конкурентные запросы статусов в трекер.
const statusLookupLimit = 8

// SyncUseCase реализует синхронизацию оценок с GitHub и Jira.
type SyncUseCase struct {
	projectRepo    domain.ProjectRepository
	featureRepo    domain.FeatureRepository
	evalRepo       domain.EvaluationRepository
	commitProvider domain.CommitProvider
	statusProvider domain.TaskStatusProvider
	locks          *ProjectLocks
}

// NewSyncUseCase создает новый экземпляр SyncUseCase.
func NewSyncUseCase(
	projectRepo domain.ProjectRepository,
	featureRepo domain.FeatureRepository,
	evalRepo domain.EvaluationRepository,
	commitProvider domain.CommitProvider,
	statusProvider domain.TaskStatusProvider,
	locks *ProjectLocks,
) domain.SyncUseCase {
	return &SyncUseCase{
		projectRepo:    projectRepo,
		featureRepo:    featureRepo,
		evalRepo:       evalRepo,
		commitProvider: commitProvider,
		statusProvider: statusProvider,
		locks:          locks,
	}
}

// Sync выполняет одну синхронизацию проекта: для каждой фичи реестра сливает
// статус из трекера и LOC из коммитов с сохраненной строкой и атомарно
// замещает набор строк. Идемпотентна: при неизменных upstream-данных повторный
// вызов дает побайтно идентичный набор. Поля преподавателя никогда не
// перезаписываются. При недоступном upstream прежние значения сохраняются,
// а отчет помечается как частичный.
func (uc *SyncUseCase) Sync(ctx context.Context, projectID string) (*domain.SyncReport, error) {
	if projectID == "" {
		return nil, domain.ErrInvalidProjectID
	}

	// Вторая одновременная синхронизация того же проекта отклоняется:
	// два atomic-replace могут перемешать старые и новые строки.
	release, ok := uc.locks.TryAcquire(projectID)
	if !ok {
		return nil, domain.ErrSyncInProgress
	}
	defer release()

	project, err := uc.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	features, err := uc.featureRepo.GetByProjectID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	existing, err := uc.evalRepo.GetLOCItems(ctx, projectID)
	if err != nil {
		return nil, err
	}
	existingByFeature := make(map[string]*domain.LOCEvaluationItem, len(existing))
	for _, item := range existing {
		existingByFeature[item.FeatureID] = item
	}

	// Коммиты и статусы независимы и запрашиваются конкурентно,
	// но слияние начинается только после завершения обоих.
	var (
		fetch      *domain.CommitFetchResult
		commitsErr error
		statuses   = make([]domain.IssueStatus, len(features))
		statusErrs = make([]error, len(features))
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		repo := domain.RepoRefFromURL(project.GithubRepoURL)
		if !repo.Linked() {
			// Без привязанного репозитория LOC легитимно равен нулю.
			fetch = &domain.CommitFetchResult{}
			return nil
		}
		fetch, commitsErr = uc.commitProvider.ListCommits(gctx, repo)
		return nil
	})

	sg, sgctx := errgroup.WithContext(gctx)
	sg.SetLimit(statusLookupLimit)
	for i, feature := range features {
		i, feature := i, feature
		sg.Go(func() error {
			statuses[i], statusErrs[i] = uc.statusProvider.GetStatus(sgctx, feature.JiraIssueKey)
			return nil
		})
	}
	g.Go(sg.Wait)

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// Отмененная синхронизация не пишет в хранилище.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Частичная выборка коммитов недосчитала бы LOC молча,
	// поэтому любая деградация ингестора сохраняет прежние значения.
	locDegraded := commitsErr != nil || fetch == nil || fetch.Degraded

	items := make([]*domain.LOCEvaluationItem, 0, len(features))
	var stale []domain.FeatureStaleness
	partial := locDegraded

	for i, feature := range features {
		in := mergeInput{
			feature:        feature,
			existing:       existingByFeature[feature.ID],
			statusDegraded: statusErrs[i] != nil,
			locDegraded:    locDegraded,
		}
		if statusErrs[i] == nil {
			in.status = statuses[i].Status
		}
		if !locDegraded {
			in.loc = AttributeLOC(fetch.Commits, feature.InCharge)
		}

		item, staleness := mergeItem(in)
		items = append(items, item)
		if staleness.StaleStatus || staleness.StaleLOC {
			stale = append(stale, staleness)
			partial = true
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := uc.evalRepo.ReplaceLOCItems(ctx, projectID, items); err != nil {
		return nil, err
	}

	return &domain.SyncReport{Items: items, Partial: partial, Stale: stale}, nil
}
