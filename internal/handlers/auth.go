package handlers

import (
	"net/http"
	"strings"

	"github.com/alimgiray/taskscope/internal/middleware"
	"github.com/alimgiray/taskscope/internal/services"
	"github.com/alimgiray/taskscope/pkg/logger"
	"github.com/gin-gonic/gin"
)

// AuthHandler issues and clears session cookies. The actual identity
// provider lives outside this system; this endpoint only materializes a
// user record and hands out the signed cookie the middleware verifies.
type AuthHandler struct {
	userService *services.UserService
}

func NewAuthHandler(userService *services.UserService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
	}
}

// CreateSession starts a session for the given username
func (h *AuthHandler) CreateSession(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username is required"})
		return
	}

	user, err := h.userService.GetOrCreateByUsername(username)
	if err != nil {
		logger.WithError(err).Error("failed to resolve user for session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := middleware.SetSession(c, user.ID.String(), user.Username); err != nil {
		logger.WithError(err).Error("failed to set session cookie")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"username": user.Username,
	})
}

// Logout clears the session cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSession(c)
	c.JSON(http.StatusOK, gin.H{"success": "Logged out"})
}
