package services

import (
	"database/sql"
	"testing"

	"github.com/alimgiray/taskscope/internal/models"
	"github.com/alimgiray/taskscope/internal/repositories"
	"github.com/alimgiray/taskscope/pkg/database"
	"github.com/stretchr/testify/require"
)

// testServices wires the full service stack against an in-memory database.
type testServices struct {
	db       *sql.DB
	users    *UserService
	projects *ProjectService
	tasks    *TaskService

	taskRepo *repositories.TaskRepository
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=ON")
	require.NoError(t, err)
	// A fresh pool connection would get its own empty in-memory database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.RunMigrations(db))

	userRepo := repositories.NewUserRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	taskRepo := repositories.NewTaskRepository(db)

	return &testServices{
		db:       db,
		users:    NewUserService(userRepo),
		projects: NewProjectService(projectRepo),
		tasks:    NewTaskService(taskRepo, projectRepo, userRepo),
		taskRepo: taskRepo,
	}
}

func (s *testServices) user(t *testing.T, username string) *models.User {
	t.Helper()
	user, err := s.users.GetOrCreateByUsername(username)
	require.NoError(t, err)
	return user
}

func (s *testServices) project(t *testing.T, owner *models.User, name string) *models.Project {
	t.Helper()
	project := &models.Project{Name: name, OwnerID: owner.ID}
	require.NoError(t, s.projects.CreateProject(project))
	return project
}

func (s *testServices) task(t *testing.T, owner *models.User, project *models.Project, title string) *models.Task {
	t.Helper()
	task, err := s.tasks.CreateTask(owner.ID, &CreateTaskInput{
		Title:     title,
		ProjectID: project.ID.String(),
		Status:    models.StatusTodo,
		Priority:  models.DefaultPriority,
	})
	require.NoError(t, err)
	return task
}
