package handlers

import (
	"net/http"

	"github.com/alimgiray/taskscope/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// sessionUser resolves the authenticated caller, answering 401 itself when
// the session is missing or unusable.
func sessionUser(c *gin.Context) (*middleware.SessionData, uuid.UUID, bool) {
	session := middleware.GetSession(c)
	if session == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return nil, uuid.Nil, false
	}

	userID, err := uuid.Parse(session.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
		return nil, uuid.Nil, false
	}

	return session, userID, true
}
