package middleware

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestGinContext() *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)
	return c
}

func TestGetUserIDFromContext_GinContext(t *testing.T) {
	c := newTestGinContext()
	c.Set(string(userIDKey), "user-123")

	userID, ok := GetUserIDFromContext(c)
	assert.True(t, ok)
	assert.Equal(t, "user-123", userID)
}

func TestGetUserIDFromContext_RequestContext(t *testing.T) {
	c := newTestGinContext()
	ctx := context.WithValue(c.Request.Context(), userIDKey, "user-456")
	c.Request = c.Request.WithContext(ctx)

	userID, ok := GetUserIDFromContext(c)
	assert.True(t, ok)
	assert.Equal(t, "user-456", userID)
}

func TestGetUserIDFromContext_Missing(t *testing.T) {
	c := newTestGinContext()

	userID, ok := GetUserIDFromContext(c)
	assert.False(t, ok)
	assert.Empty(t, userID)
}
