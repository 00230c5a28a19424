package usecase

import "gradesync/internal/domain"

// locItemID детерминированно выводит ID строки из ID фичи:
// одна строка на фичу, а не на синхронизацию.
func locItemID(featureID string) string {
	return "loc-" + featureID
}

// mergeInput описывает вход слияния по одной фиче.
// Degraded-флаги означают, что соответствующий upstream недоступен
// и свежего значения нет.
type mergeInput struct {
	feature        *domain.Feature
	existing       *domain.LOCEvaluationItem
	status         string
	statusDegraded bool
	loc            int
	locDegraded    bool
}

// mergeItem сливает свежие данные синхронизации с сохраненной строкой.
// Поля автоматики (status, loc) перезаписываются; поля преподавателя
// (complexity, quality) выставляются только при создании строки и далее
// никогда не трогаются. При деградации upstream прежнее значение
// сохраняется вместо сброса.
func mergeItem(in mergeInput) (*domain.LOCEvaluationItem, domain.FeatureStaleness) {
	item := &domain.LOCEvaluationItem{
		ID:         locItemID(in.feature.ID),
		FeatureID:  in.feature.ID,
		Status:     in.status,
		LOC:        in.loc,
		Complexity: domain.ComplexityMedium,
		Quality:    domain.QualityMedium,
	}

	staleness := domain.FeatureStaleness{FeatureID: in.feature.ID}

	if in.existing != nil {
		item.ID = in.existing.ID
		item.Complexity = in.existing.Complexity
		item.Quality = in.existing.Quality

		if in.statusDegraded {
			item.Status = in.existing.Status
			staleness.StaleStatus = true
		}
		if in.locDegraded {
			item.LOC = in.existing.LOC
			staleness.StaleLOC = true
		}
	} else {
		// Новая строка при недоступном upstream получает дефолты, но помечается.
		if in.statusDegraded {
			item.Status = domain.StatusToDo
			staleness.StaleStatus = true
		}
		if in.locDegraded {
			item.LOC = 0
			staleness.StaleLOC = true
		}
	}

	return item, staleness
}
