package handlers

import (
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/alimgiray/taskscope/internal/middleware"
	"github.com/alimgiray/taskscope/internal/models"
	"github.com/alimgiray/taskscope/internal/repositories"
	"github.com/alimgiray/taskscope/internal/services"
	"github.com/alimgiray/taskscope/pkg/config"
	"github.com/alimgiray/taskscope/pkg/database"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// testEnv runs the full HTTP stack against an in-memory database.
type testEnv struct {
	router *gin.Engine
	users  *services.UserService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)
	require.NoError(t, config.Load())

	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=ON")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.RunMigrations(db))

	userRepo := repositories.NewUserRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	taskRepo := repositories.NewTaskRepository(db)

	userService := services.NewUserService(userRepo)
	projectService := services.NewProjectService(projectRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo, userRepo)

	authHandler := NewAuthHandler(userService)
	projectHandler := NewProjectHandler(projectService)
	taskHandler := NewTaskHandler(taskService)
	exportHandler := NewExportHandler(projectService, taskService)
	healthHandler := NewHealthHandler()

	router := gin.New()
	router.Use(middleware.SessionMiddleware())

	router.POST("/auth/session", authHandler.CreateSession)
	router.GET("/auth/logout", authHandler.Logout)

	projects := router.Group("/projects")
	projects.Use(middleware.AuthRequired())
	{
		projects.GET("/", projectHandler.ListProjects)
		projects.POST("/", projectHandler.CreateProject)
		projects.DELETE("/:id", projectHandler.DeleteProject)
		projects.GET("/:id/export", exportHandler.ExportProjectTasks)
	}

	tasks := router.Group("/tasks")
	tasks.Use(middleware.AuthRequired())
	{
		tasks.GET("/", taskHandler.ListTasks)
		tasks.POST("/", taskHandler.CreateTask)
		tasks.PUT("/:id", taskHandler.UpdateTask)
		tasks.DELETE("/:id", taskHandler.DeleteTask)
	}

	router.GET("/health", healthHandler.HealthCheck)

	return &testEnv{router: router, users: userService}
}

// login materializes a user and returns a signed session cookie for them
func (e *testEnv) login(t *testing.T, username string) (*models.User, *http.Cookie) {
	t.Helper()

	user, err := e.users.GetOrCreateByUsername(username)
	require.NoError(t, err)

	value, err := middleware.NewSessionCookie(user.ID.String(), user.Username)
	require.NoError(t, err)

	return user, &http.Cookie{Name: "session", Value: value}
}

func (e *testEnv) request(t *testing.T, method, path string, cookie *http.Cookie, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) getJSON(t *testing.T, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	return e.request(t, http.MethodGet, path, cookie, "", "")
}

func (e *testEnv) postForm(t *testing.T, path string, cookie *http.Cookie, form string) *httptest.ResponseRecorder {
	return e.request(t, http.MethodPost, path, cookie, "application/x-www-form-urlencoded", form)
}

func (e *testEnv) postJSON(t *testing.T, path string, cookie *http.Cookie, body string) *httptest.ResponseRecorder {
	return e.request(t, http.MethodPost, path, cookie, "application/json", body)
}

func (e *testEnv) putJSON(t *testing.T, path string, cookie *http.Cookie, body string) *httptest.ResponseRecorder {
	return e.request(t, http.MethodPut, path, cookie, "application/json", body)
}

func (e *testEnv) delete(t *testing.T, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	return e.request(t, http.MethodDelete, path, cookie, "", "")
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// createProject drives the real endpoint and returns the new project's id
func (e *testEnv) createProject(t *testing.T, cookie *http.Cookie, name string) string {
	t.Helper()

	w := e.postForm(t, "/projects/", cookie, url.Values{"name": {name}}.Encode())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeJSON(t, w)["id"].(string)
}

// createTask drives the real endpoint and returns the new task's id
func (e *testEnv) createTask(t *testing.T, cookie *http.Cookie, body string) string {
	t.Helper()

	w := e.postJSON(t, "/tasks/", cookie, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeJSON(t, w)["id"].(string)
}

// listTasks fetches the caller's visible tasks as raw JSON objects
func (e *testEnv) listTasks(t *testing.T, cookie *http.Cookie) []map[string]interface{} {
	t.Helper()

	w := e.getJSON(t, "/tasks/", cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	raw := decodeJSON(t, w)["tasks"].([]interface{})
	tasks := make([]map[string]interface{}, 0, len(raw))
	for _, item := range raw {
		tasks = append(tasks, item.(map[string]interface{}))
	}
	return tasks
}

func findTask(tasks []map[string]interface{}, id string) map[string]interface{} {
	for _, task := range tasks {
		if task["id"] == id {
			return task
		}
	}
	return nil
}
