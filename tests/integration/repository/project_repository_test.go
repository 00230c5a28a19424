package repository_test

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"gradesync/internal/domain"
	"gradesync/internal/repository"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type ProjectRepositoryTestSuite struct {
	suite.Suite
	db   *sql.DB
	repo domain.ProjectRepository
	ctx  context.Context
}

func (suite *ProjectRepositoryTestSuite) SetupSuite() {
	suite.ctx = context.Background()

	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		"postgres", "password", "localhost", "5433", "gradesync_test",
	)

	var err error
	suite.db, err = sql.Open("pgx", dsn)
	if err != nil {
		log.Fatalf("Failed to connect to test database: %v", err)
	}

	if err = suite.db.Ping(); err != nil {
		log.Fatalf("Failed to ping test database: %v", err)
	}

	suite.repo = repository.NewProjectRepository(suite.db)
	suite.cleanDatabase()
}

func (suite *ProjectRepositoryTestSuite) TearDownTest() {
	suite.cleanDatabase()
}

func (suite *ProjectRepositoryTestSuite) TearDownSuite() {
	if suite.db != nil {
		suite.db.Close()
	}
}

func (suite *ProjectRepositoryTestSuite) cleanDatabase() {
	tables := []string{"group_evaluations", "loc_evaluations", "features", "projects"}
	for _, table := range tables {
		_, err := suite.db.ExecContext(suite.ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			log.Printf("Failed to clean table %s: %v", table, err)
		}
	}
}

func (suite *ProjectRepositoryTestSuite) TestCreateAndGetByID() {
	project := &domain.Project{
		ID:            "proj-a",
		GroupID:       "grp-a",
		Name:          "Project A",
		Description:   "Test project",
		GithubRepoURL: "https://github.com/org/repo-a",
		JiraKey:       "PRA",
		CreatedAt:     time.Now().UTC().Truncate(time.Microsecond),
	}

	assert.NoError(suite.T(), suite.repo.Create(suite.ctx, project))

	stored, err := suite.repo.GetByID(suite.ctx, "proj-a")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), project.Name, stored.Name)
	assert.Equal(suite.T(), project.GithubRepoURL, stored.GithubRepoURL)
	assert.Equal(suite.T(), project.JiraKey, stored.JiraKey)
}

func (suite *ProjectRepositoryTestSuite) TestGetByID_NotFound() {
	_, err := suite.repo.GetByID(suite.ctx, "missing")
	assert.ErrorIs(suite.T(), err, domain.ErrProjectNotFound)
}

func (suite *ProjectRepositoryTestSuite) TestDelete() {
	assert.NoError(suite.T(), suite.repo.Create(suite.ctx, &domain.Project{
		ID:        "proj-del",
		GroupID:   "grp-del",
		Name:      "Doomed Project",
		CreatedAt: time.Now().UTC(),
	}))

	assert.NoError(suite.T(), suite.repo.Delete(suite.ctx, "proj-del"))

	_, err := suite.repo.GetByID(suite.ctx, "proj-del")
	assert.ErrorIs(suite.T(), err, domain.ErrProjectNotFound)
}

func (suite *ProjectRepositoryTestSuite) TestGetByGroupID() {
	for i, groupID := range []string{"grp-1", "grp-1", "grp-2"} {
		err := suite.repo.Create(suite.ctx, &domain.Project{
			ID:        fmt.Sprintf("proj-%d", i),
			GroupID:   groupID,
			Name:      fmt.Sprintf("Project %d", i),
			CreatedAt: time.Now().UTC(),
		})
		assert.NoError(suite.T(), err)
	}

	projects, err := suite.repo.GetByGroupID(suite.ctx, "grp-1")
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), projects, 2)

	all, err := suite.repo.GetAll(suite.ctx)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), all, 3)
}

func TestProjectRepositoryTestSuite(t *testing.T) {
	if os.Getenv("SKIP_INTEGRATION") != "" {
		t.Skip("Skipping integration tests")
	}
	suite.Run(t, new(ProjectRepositoryTestSuite))
}
