package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gradesync/internal/domain"
)

// EvaluationRepository реализует domain.EvaluationRepository поверх PostgreSQL.
// Единственное хранилище LOC- и групповых оценок; замена набора строк проекта
// выполняется атомарно в одной транзакции.
type EvaluationRepository struct {
	db *sql.DB
}

// NewEvaluationRepository создает новый экземпляр EvaluationRepository.
func NewEvaluationRepository(db *sql.DB) domain.EvaluationRepository {
	return &EvaluationRepository{db: db}
}

// GetLOCItems возвращает текущие строки LOC-оценки проекта в порядке реестра фич.
func (r *EvaluationRepository) GetLOCItems(ctx context.Context, projectID string) ([]*domain.LOCEvaluationItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT e.item_id, e.feature_id, e.status, e.loc, e.complexity, e.quality
		 FROM loc_evaluations e
		 JOIN features f ON f.feature_id = e.feature_id
		 WHERE e.project_id = $1
		 ORDER BY f.position, f.feature_id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get loc evaluations: %w", err)
	}
	defer rows.Close()

	items := make([]*domain.LOCEvaluationItem, 0)
	for rows.Next() {
		var item domain.LOCEvaluationItem
		if err := rows.Scan(&item.ID, &item.FeatureID, &item.Status, &item.LOC, &item.Complexity, &item.Quality); err != nil {
			return nil, fmt.Errorf("failed to scan loc evaluation: %w", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate loc evaluations: %w", err)
	}

	return items, nil
}

// ReplaceLOCItems атомарно замещает набор строк проекта: delete + insert
// в одной транзакции, либо все строки, либо ни одной.
func (r *EvaluationRepository) ReplaceLOCItems(ctx context.Context, projectID string, items []*domain.LOCEvaluationItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreWrite, err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `DELETE FROM loc_evaluations WHERE project_id = $1`, projectID)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreWrite, err)
	}

	for _, item := range items {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO loc_evaluations (item_id, project_id, feature_id, status, loc, complexity, quality)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			item.ID, projectID, item.FeatureID, item.Status, item.LOC, item.Complexity, item.Quality,
		)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrStoreWrite, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreWrite, err)
	}

	return nil
}

// UpdateLOCGrades обновляет только поля преподавателя (complexity/quality);
// автоматические status/loc этой операции недоступны. Запрос ограничен
// project_id: фича чужого проекта недостижима даже при совпадении ID.
func (r *EvaluationRepository) UpdateLOCGrades(ctx context.Context, projectID, featureID, complexity, quality string) (*domain.LOCEvaluationItem, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE loc_evaluations SET complexity = $3, quality = $4
		 WHERE project_id = $1 AND feature_id = $2
		 RETURNING item_id, feature_id, status, loc, complexity, quality`,
		projectID, featureID, complexity, quality)

	var item domain.LOCEvaluationItem
	err := row.Scan(&item.ID, &item.FeatureID, &item.Status, &item.LOC, &item.Complexity, &item.Quality)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEvaluationNotFound
		}
		return nil, fmt.Errorf("failed to update loc grades: %w", err)
	}

	return &item, nil
}

// GetGroupItems возвращает строки групповой оценки проекта в порядке рубрики.
func (r *EvaluationRepository) GetGroupItems(ctx context.Context, projectID string) ([]*domain.GroupEvaluationItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT item_id, project_id, category, max_score, score, comment
		 FROM group_evaluations WHERE project_id = $1 ORDER BY position, item_id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get group evaluations: %w", err)
	}
	defer rows.Close()

	items := make([]*domain.GroupEvaluationItem, 0)
	for rows.Next() {
		var item domain.GroupEvaluationItem
		if err := rows.Scan(&item.ID, &item.ProjectID, &item.Category, &item.MaxScore, &item.Score, &item.Comment); err != nil {
			return nil, fmt.Errorf("failed to scan group evaluation: %w", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate group evaluations: %w", err)
	}

	return items, nil
}

// SeedGroupItems создает строки рубрики для нового проекта одной транзакцией.
func (r *EvaluationRepository) SeedGroupItems(ctx context.Context, projectID string, items []*domain.GroupEvaluationItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for i, item := range items {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO group_evaluations (item_id, project_id, category, max_score, score, comment, position)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			item.ID, projectID, item.Category, item.MaxScore, item.Score, item.Comment, i,
		)
		if err != nil {
			return fmt.Errorf("failed to seed group evaluation %s: %w", item.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// UpdateGroupScore обновляет балл и комментарий по одному критерию рубрики.
func (r *EvaluationRepository) UpdateGroupScore(ctx context.Context, itemID string, score float64, comment string) (*domain.GroupEvaluationItem, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE group_evaluations SET score = $2, comment = $3
		 WHERE item_id = $1
		 RETURNING item_id, project_id, category, max_score, score, comment`,
		itemID, score, comment)

	var item domain.GroupEvaluationItem
	err := row.Scan(&item.ID, &item.ProjectID, &item.Category, &item.MaxScore, &item.Score, &item.Comment)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEvaluationNotFound
		}
		return nil, fmt.Errorf("failed to update group score: %w", err)
	}

	return &item, nil
}
