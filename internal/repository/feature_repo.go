package repository

import (
	"context"
	"database/sql"
	"fmt"

	"gradesync/internal/domain"
)

// FeatureRepository реализует domain.FeatureRepository поверх PostgreSQL.
type FeatureRepository struct {
	db *sql.DB
}

// NewFeatureRepository создает новый экземпляр FeatureRepository.
func NewFeatureRepository(db *sql.DB) domain.FeatureRepository {
	return &FeatureRepository{db: db}
}

// GetByProjectID возвращает реестр фич проекта в стабильном порядке.
func (r *FeatureRepository) GetByProjectID(ctx context.Context, projectID string) ([]*domain.Feature, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT feature_id, project_id, feature_name, screen_function, in_charge, jira_issue_key
		 FROM features WHERE project_id = $1 ORDER BY position, feature_id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get features: %w", err)
	}
	defer rows.Close()

	features := make([]*domain.Feature, 0)
	for rows.Next() {
		var f domain.Feature
		if err := rows.Scan(&f.ID, &f.ProjectID, &f.Feature, &f.ScreenFunction, &f.InCharge, &f.JiraIssueKey); err != nil {
			return nil, fmt.Errorf("failed to scan feature: %w", err)
		}
		features = append(features, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate features: %w", err)
	}

	return features, nil
}

// CreateBatch сохраняет реестр фич одной транзакцией. Новые фичи
// встают в конец реестра: позиция отсчитывается от текущего максимума.
func (r *FeatureRepository) CreateBatch(ctx context.Context, features []*domain.Feature) error {
	if len(features) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var next int
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position) + 1, 0) FROM features WHERE project_id = $1`,
		features[0].ProjectID).Scan(&next)
	if err != nil {
		return fmt.Errorf("failed to get next feature position: %w", err)
	}

	for i, f := range features {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO features (feature_id, project_id, feature_name, screen_function, in_charge, jira_issue_key, position)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			f.ID, f.ProjectID, f.Feature, f.ScreenFunction, f.InCharge, f.JiraIssueKey, next+i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert feature %s: %w", f.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
