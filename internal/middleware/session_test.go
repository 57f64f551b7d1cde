package middleware

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alimgiray/taskscope/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionRouter(t *testing.T) *gin.Engine {
	t.Helper()

	require.NoError(t, config.Load())
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(SessionMiddleware())

	protected := router.Group("/protected")
	protected.Use(AuthRequired())
	protected.GET("/", func(c *gin.Context) {
		session := GetSession(c)
		c.JSON(http.StatusOK, gin.H{"user_id": session.UserID, "username": session.Username})
	})

	return router
}

func doRequest(router *gin.Engine, cookieValue string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, "/protected/", nil)
	if cookieValue != "" {
		req.AddCookie(&http.Cookie{Name: "session", Value: cookieValue})
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSessionCookieRoundTrip(t *testing.T) {
	router := newSessionRouter(t)

	cookie, err := NewSessionCookie("user-1", "alice")
	require.NoError(t, err)

	w := doRequest(router, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "user-1", body["user_id"])
	assert.Equal(t, "alice", body["username"])
}

func TestMissingSessionRejected(t *testing.T) {
	router := newSessionRouter(t)

	w := doRequest(router, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTamperedSignatureRejected(t *testing.T) {
	router := newSessionRouter(t)

	cookie, err := NewSessionCookie("user-1", "alice")
	require.NoError(t, err)

	parts := strings.SplitN(cookie, ".", 2)
	require.Len(t, parts, 2)

	// Forge the payload while keeping the old signature
	forged := SessionData{
		UserID:    "user-2",
		Username:  "mallory",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	data, err := json.Marshal(forged)
	require.NoError(t, err)

	w := doRequest(router, parts[0]+"."+base64.URLEncoding.EncodeToString(data))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestExpiredSessionRejected(t *testing.T) {
	router := newSessionRouter(t)

	expired := SessionData{
		UserID:    "user-1",
		Username:  "alice",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	data, err := json.Marshal(expired)
	require.NoError(t, err)

	encoded := base64.URLEncoding.EncodeToString(data)
	w := doRequest(router, createSignature(encoded)+"."+encoded)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGarbageCookieRejected(t *testing.T) {
	router := newSessionRouter(t)

	for _, value := range []string{"nonsense", "a.b.c", "sig.!!!notbase64!!!"} {
		w := doRequest(router, value)
		assert.Equal(t, http.StatusUnauthorized, w.Code, value)
	}
}
