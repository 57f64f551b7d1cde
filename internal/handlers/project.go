package handlers

import (
	"net/http"

	"github.com/alimgiray/taskscope/internal/models"
	"github.com/alimgiray/taskscope/internal/services"
	"github.com/alimgiray/taskscope/pkg/logger"
	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// ListProjects returns the caller's projects, optionally filtered by name substring
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	session, _, ok := sessionUser(c)
	if !ok {
		return
	}

	projects, err := h.projectService.ListProjects(session.UserID, c.Query("search"))
	if err != nil {
		logger.WithError(err).Error("failed to list projects")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	data := make([]gin.H, 0, len(projects))
	for _, p := range projects {
		data = append(data, gin.H{
			"id":          p.ID,
			"name":        p.Name,
			"description": p.Description,
		})
	}

	c.JSON(http.StatusOK, gin.H{"projects": data})
}

// CreateProject handles project creation from a form-encoded body
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	session, userID, ok := sessionUser(c)
	if !ok {
		return
	}

	name := c.PostForm("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Project name is required"})
		return
	}

	project := &models.Project{
		Name:        name,
		Description: c.PostForm("description"),
		OwnerID:     userID,
	}

	if err := h.projectService.CreateProject(project); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":          project.ID,
		"name":        project.Name,
		"description": project.Description,
		"owner":       session.Username,
	})
}

// DeleteProject removes a project owned by the caller, cascading to its tasks
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	_, userID, ok := sessionUser(c)
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": "Project deleted"})
}
