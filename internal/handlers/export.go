package handlers

import (
	"fmt"
	"net/http"

	"github.com/alimgiray/taskscope/internal/services"
	"github.com/alimgiray/taskscope/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler writes a project's tasks out as an xlsx sheet
type ExportHandler struct {
	projectService *services.ProjectService
	taskService    *services.TaskService
}

func NewExportHandler(projectService *services.ProjectService, taskService *services.TaskService) *ExportHandler {
	return &ExportHandler{
		projectService: projectService,
		taskService:    taskService,
	}
}

var exportColumns = []string{"Title", "Description", "Status", "Priority", "Due Date", "Assignee"}

// ExportProjectTasks streams an xlsx workbook of the project's tasks to the
// owner. Non-owners get the same not-found as any other scoped read.
func (h *ExportHandler) ExportProjectTasks(c *gin.Context) {
	_, userID, ok := sessionUser(c)
	if !ok {
		return
	}

	project, err := h.projectService.GetOwnedProject(c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	tasks, err := h.taskService.ListTasks(userID, project.ID.String())
	if err != nil {
		logger.WithError(err).Error("failed to load tasks for export")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, header := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for row, task := range tasks {
		dueDate := ""
		if s := task.DueDateString(); s != nil {
			dueDate = *s
		}
		assignee := ""
		if task.AssigneeUsername != nil {
			assignee = *task.AssigneeUsername
		}

		values := []interface{}{task.Title, task.Description, task.Status, task.Priority, dueDate, assignee}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", project.Name+"-tasks.xlsx"))

	if err := f.Write(c.Writer); err != nil {
		logger.WithError(err).Error("failed to write xlsx export")
	}
}
