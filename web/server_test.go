package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNewServer(t *testing.T) {
	var middlewareCalls int
	s := NewServer(
		WithMode(gin.TestMode),
		WithCustomHandler(func(c *gin.Context) {
			middlewareCalls++
			c.Next()
		}),
		WithRoutes(func(r gin.IRouter) {
			r.GET("/exchangerates", func(c *gin.Context) {
				c.String(http.StatusOK, "rates")
			})
		}),
	)

	tests := []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{path: "/", wantStatus: http.StatusOK},
		{path: "/healthcheck", wantStatus: http.StatusOK},
		{path: "/exchangerates", wantStatus: http.StatusOK, wantBody: "rates"},
		{path: "/unknown", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
		})
	}
	assert.Equal(t, len(tests), middlewareCalls)
}
