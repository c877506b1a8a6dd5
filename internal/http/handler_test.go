package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/construsol/proposal-service/internal/catalog"
	"github.com/construsol/proposal-service/internal/domain/dto"
	"github.com/construsol/proposal-service/internal/domain/model"
	"github.com/construsol/proposal-service/internal/orchestrator"
	"github.com/construsol/proposal-service/internal/pipeline"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestQuoteHandler builds a quote handler over the seeded in-memory
// catalog with debounce disabled so tests run without artificial waits.
func newTestQuoteHandler() *Handler {
	cat := catalog.NewInMemory(catalog.SeedProducts()...)
	registry := pipeline.DefaultRegistry()
	pipe := pipeline.New(cat, registry)
	orch := orchestrator.New(pipe,
		orchestrator.WithDebounce(0),
		orchestrator.WithTimeout(2*time.Second),
	)
	return NewHandler(orch, pipe, registry)
}

func setupQuoteRouter() *gin.Engine {
	routes := NewProposalRoutes(newTestQuoteHandler(), nil, nil)
	return NewRouter(routes, NewHealthHandler(), DefaultRouterConfig())
}

func postQuote(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeQuoteResult(t *testing.T, w *httptest.ResponseRecorder) model.QuoteResult {
	t.Helper()
	var resp dto.SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	dataBytes, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var result model.QuoteResult
	require.NoError(t, json.Unmarshal(dataBytes, &result))
	return result
}

func TestComputeQuote(t *testing.T) {
	router := setupQuoteRouter()

	tests := []struct {
		name           string
		body           string
		expectedStatus int
		checkResponse  func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:           "valid request",
			body:           `{"area_telhado": 100, "comprimento_cumeeira": 8, "perimetro": 42}`,
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				result := decodeQuoteResult(t, w)
				assert.Equal(t, "telhado-shingle", result.ProposalType)
				assert.NotEmpty(t, result.Items)
				assert.True(t, result.Total.IsPositive())
			},
		},
		{
			name:           "explicit system",
			body:           `{"area_telhado": 80, "sistema": "ceramica-portuguesa"}`,
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				result := decodeQuoteResult(t, w)
				assert.Equal(t, "telhado-ceramico", result.ProposalType)
			},
		},
		{
			name:           "invalid JSON",
			body:           `invalid`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "zero area rejected",
			body:           `{"area_telhado": 0}`,
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.Contains(t, w.Body.String(), "area_telhado")
			},
		},
		{
			name:           "negative length and unknown system accumulate",
			body:           `{"area_telhado": 100, "perimetro": -1, "sistema": "nope"}`,
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.Contains(t, w.Body.String(), "perimetro")
				assert.Contains(t, w.Body.String(), "sistema")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postQuote(router, "/api/quote", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.checkResponse != nil {
				tt.checkResponse(t, w)
			}
		})
	}
}

func TestComputeQuote_CacheHeader(t *testing.T) {
	router := setupQuoteRouter()
	body := `{"area_telhado": 120, "comprimento_cumeeira": 9}`

	first := postQuote(router, "/api/quote", body)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "miss", first.Header().Get(QuoteCacheHeader))

	second := postQuote(router, "/api/quote", body)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "hit", second.Header().Get(QuoteCacheHeader))

	assert.Equal(t, decodeQuoteResult(t, first).Total.String(), decodeQuoteResult(t, second).Total.String())
}

func TestComputeQuoteDirect(t *testing.T) {
	router := setupQuoteRouter()
	body := `{"area_telhado": 100, "comprimento_cumeeira": 8}`

	w := postQuote(router, "/api/quote/direct", body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get(QuoteCacheHeader))

	result := decodeQuoteResult(t, w)
	assert.Equal(t, "telhado-shingle", result.ProposalType)
	assert.NotEmpty(t, result.Items)

	// Direct computation never populates the cache
	again := postQuote(router, "/api/quote", body)
	require.Equal(t, http.StatusOK, again.Code)
	assert.Equal(t, "miss", again.Header().Get(QuoteCacheHeader))
}

func TestListSystems(t *testing.T) {
	router := setupQuoteRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/systems", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "shingle-supreme")
	assert.Contains(t, w.Body.String(), "shingle-duration")
	assert.Contains(t, w.Body.String(), "ceramica-portuguesa")
	assert.Contains(t, w.Body.String(), model.DefaultSistema)
}

func TestQuoteHistory_UnconfiguredService(t *testing.T) {
	router := setupQuoteRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/quotes/history", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
