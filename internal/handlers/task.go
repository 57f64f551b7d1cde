package handlers

import (
	"net/http"
	"time"

	"github.com/alimgiray/taskscope/internal/models"
	"github.com/alimgiray/taskscope/internal/services"
	"github.com/alimgiray/taskscope/pkg/logger"
	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

type createTaskRequest struct {
	Title       string  `json:"title"`
	ProjectID   string  `json:"project_id"`
	Description string  `json:"description"`
	Priority    *int    `json:"priority"`
	Status      string  `json:"status"`
	DueDate     *string `json:"due_date"`
	AssigneeID  string  `json:"assignee_id"`
}

// ListTasks returns every task visible to the caller: tasks in their own
// projects plus tasks assigned to them.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	_, userID, ok := sessionUser(c)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListTasks(userID, c.Query("project"))
	if err != nil {
		logger.WithError(err).Error("failed to list tasks")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	data := make([]gin.H, 0, len(tasks))
	for _, t := range tasks {
		data = append(data, taskResponse(t))
	}

	c.JSON(http.StatusOK, gin.H{"tasks": data})
}

// CreateTask creates a task in a project owned by the caller
func (h *TaskHandler) CreateTask(c *gin.Context) {
	_, userID, ok := sessionUser(c)
	if !ok {
		return
	}

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.Title == "" || req.ProjectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title and project_id are required"})
		return
	}

	in := &services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		ProjectID:   req.ProjectID,
		Status:      models.StatusTodo,
		Priority:    models.DefaultPriority,
		AssigneeID:  req.AssigneeID,
	}
	if req.Status != "" {
		in.Status = req.Status
	}
	if req.Priority != nil {
		in.Priority = *req.Priority
	}
	if req.DueDate != nil && *req.DueDate != "" {
		due, err := time.Parse(models.DateFormat, *req.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid due_date format, expected YYYY-MM-DD"})
			return
		}
		in.DueDate = &due
	}

	task, err := h.taskService.CreateTask(userID, in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, taskResponse(task))
}

// UpdateTask applies a partial update to a task owned by the caller. Only
// keys present in the body change; the merged record is validated before
// anything is stored.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	_, userID, ok := sessionUser(c)
	if !ok {
		return
	}

	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	in := &services.UpdateTaskInput{}

	if in.Title, ok = stringField(c, body, "title"); !ok {
		return
	}
	if in.Description, ok = stringField(c, body, "description"); !ok {
		return
	}
	if in.Status, ok = stringField(c, body, "status"); !ok {
		return
	}

	if raw, present := body["priority"]; present {
		number, isNumber := raw.(float64)
		if !isNumber || number != float64(int(number)) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid value for priority"})
			return
		}
		priority := int(number)
		in.Priority = &priority
	}

	if raw, present := body["due_date"]; present {
		in.DueDateSet = true
		if raw != nil {
			value, isString := raw.(string)
			if !isString {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid value for due_date"})
				return
			}
			if value != "" {
				due, err := time.Parse(models.DateFormat, value)
				if err != nil {
					c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid due_date format, expected YYYY-MM-DD"})
					return
				}
				in.DueDate = &due
			}
		}
	}

	if raw, present := body["assignee_id"]; present {
		assigneeID, ok := assigneeField(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid value for assignee_id"})
			return
		}
		in.AssigneeID = &assigneeID
	}

	if _, err := h.taskService.UpdateTask(userID, c.Param("id"), in); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": "Task updated"})
}

// DeleteTask removes a task owned by the caller
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	_, userID, ok := sessionUser(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": "Task deleted"})
}

func taskResponse(t *models.Task) gin.H {
	return gin.H{
		"id":          t.ID,
		"title":       t.Title,
		"description": t.Description,
		"status":      t.Status,
		"priority":    t.Priority,
		"due_date":    t.DueDateString(),
		"project":     t.ProjectName,
		"assignee":    t.AssigneeUsername,
	}
}

// stringField extracts an optional string key from a partial-update body,
// answering 400 itself on a type mismatch.
func stringField(c *gin.Context, body map[string]interface{}, key string) (*string, bool) {
	raw, present := body[key]
	if !present {
		return nil, true
	}

	value, isString := raw.(string)
	if !isString {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid value for " + key})
		return nil, false
	}

	return &value, true
}

// assigneeField normalizes the assignee_id value: any falsy value clears the
// assignee, a non-empty string references a user.
func assigneeField(raw interface{}) (string, bool) {
	switch value := raw.(type) {
	case nil:
		return "", true
	case string:
		return value, true
	case bool:
		if !value {
			return "", true
		}
	case float64:
		if value == 0 {
			return "", true
		}
	}
	return "", false
}
