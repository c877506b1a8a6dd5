package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNewRouter(t *testing.T) {
	routes := NewProposalRoutes(newTestQuoteHandler(), nil, nil)
	healthHandler := NewHealthHandler()

	tests := []struct {
		name string
		cfg  RouterConfig
		test func(*testing.T, *gin.Engine)
	}{
		{
			name: "creates router with default config",
			cfg:  DefaultRouterConfig(),
			test: func(t *testing.T, router *gin.Engine) {
				assert.NotNil(t, router)
			},
		},
		{
			name: "creates router with rate limiting",
			cfg: RouterConfig{
				RateLimit:  5,
				RateWindow: time.Second,
			},
			test: func(t *testing.T, router *gin.Engine) {
				assert.NotNil(t, router)
			},
		},
		{
			name: "creates router with custom CORS origins",
			cfg: RouterConfig{
				RateLimit:   100,
				RateWindow:  time.Minute,
				CORSOrigins: []string{"https://portal.construsol.com.br"},
			},
			test: func(t *testing.T, router *gin.Engine) {
				assert.NotNil(t, router)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := NewRouter(routes, healthHandler, tt.cfg)
			if tt.test != nil {
				tt.test(t, router)
			}
		})
	}
}

func TestRouter_Endpoints(t *testing.T) {
	router := setupQuoteRouter()

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{
			name:           "healthz endpoint",
			method:         http.MethodGet,
			path:           "/healthz",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "readyz endpoint",
			method:         http.MethodGet,
			path:           "/readyz",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "metrics endpoint",
			method:         http.MethodGet,
			path:           "/metrics",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "systems endpoint",
			method:         http.MethodGet,
			path:           "/api/systems",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "quote with no body",
			method:         http.MethodPost,
			path:           "/api/quote",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "direct quote with no body",
			method:         http.MethodPost,
			path:           "/api/quote/direct",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown route",
			method:         http.MethodGet,
			path:           "/api/nope",
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestRouter_NilRoutes(t *testing.T) {
	router := NewRouter(nil, NewHealthHandler(), DefaultRouterConfig())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/quote", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_RateLimitEnforced(t *testing.T) {
	router := NewRouter(NewProposalRoutes(newTestQuoteHandler(), nil, nil), NewHealthHandler(), RouterConfig{
		RateLimit:  2,
		RateWindow: time.Minute,
	})

	codes := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/systems", nil)
		req.RemoteAddr = "10.0.0.9:1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, http.StatusOK, codes[0])
	assert.Equal(t, http.StatusOK, codes[1])
	assert.Equal(t, http.StatusTooManyRequests, codes[2])
	assert.Equal(t, http.StatusTooManyRequests, codes[3])
}
