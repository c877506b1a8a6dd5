//go:build !integration

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		handler        gin.HandlerFunc
		expectedStatus int
	}{
		{
			name: "successful request passes through",
			handler: func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"ok": true})
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "client error passes through",
			handler: func(c *gin.Context) {
				c.JSON(http.StatusBadRequest, gin.H{"ok": false})
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "server error passes through",
			handler: func(c *gin.Context) {
				c.JSON(http.StatusInternalServerError, gin.H{"ok": false})
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(RequestID())
			router.Use(RequestLogger())
			router.GET("/test", tt.handler)

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set("User-Agent", "test-agent")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
