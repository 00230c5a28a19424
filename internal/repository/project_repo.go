package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gradesync/internal/domain"
)

// ProjectRepository реализует domain.ProjectRepository поверх PostgreSQL.
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository создает новый экземпляр ProjectRepository.
func NewProjectRepository(db *sql.DB) domain.ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create сохраняет новый проект.
func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO projects (project_id, group_id, project_name, description, github_repo_url, jira_key, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		project.ID, project.GroupID, project.Name, project.Description,
		project.GithubRepoURL, project.JiraKey, project.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// Delete удаляет проект; связанные фичи и оценки удаляются каскадно.
func (r *ProjectRepository) Delete(ctx context.Context, projectID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE project_id = $1`, projectID)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// GetByID возвращает проект по ID.
func (r *ProjectRepository) GetByID(ctx context.Context, projectID string) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT project_id, group_id, project_name, description, github_repo_url, jira_key, created_at
		 FROM projects WHERE project_id = $1`, projectID)

	var p domain.Project
	err := row.Scan(&p.ID, &p.GroupID, &p.Name, &p.Description, &p.GithubRepoURL, &p.JiraKey, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return &p, nil
}

// GetByGroupID возвращает проекты группы.
func (r *ProjectRepository) GetByGroupID(ctx context.Context, groupID string) ([]*domain.Project, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT project_id, group_id, project_name, description, github_repo_url, jira_key, created_at
		 FROM projects WHERE group_id = $1 ORDER BY created_at, project_id`, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get projects by group: %w", err)
	}
	defer rows.Close()

	return scanProjects(rows)
}

// GetAll возвращает все проекты.
func (r *ProjectRepository) GetAll(ctx context.Context) ([]*domain.Project, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT project_id, group_id, project_name, description, github_repo_url, jira_key, created_at
		 FROM projects ORDER BY created_at, project_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to get projects: %w", err)
	}
	defer rows.Close()

	return scanProjects(rows)
}

func scanProjects(rows *sql.Rows) ([]*domain.Project, error) {
	projects := make([]*domain.Project, 0)
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.GroupID, &p.Name, &p.Description, &p.GithubRepoURL, &p.JiraKey, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate projects: %w", err)
	}
	return projects, nil
}
