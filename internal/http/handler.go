package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/construsol/proposal-service/internal/domain/dto"
	"github.com/construsol/proposal-service/internal/domain/model"
	"github.com/construsol/proposal-service/internal/i18n"
	"github.com/construsol/proposal-service/internal/middleware"
	"github.com/construsol/proposal-service/internal/orchestrator"
	"github.com/construsol/proposal-service/internal/pipeline"
	"github.com/construsol/proposal-service/internal/service"
)

// QuoteCacheHeader reports whether the quote was served from the
// orchestrator's fingerprint cache.
const QuoteCacheHeader = "X-Quote-Cache"

// Handler provides HTTP handlers for the quote routes.
type Handler struct {
	orchestrator *orchestrator.Orchestrator
	pipeline     *pipeline.Pipeline
	registry     *pipeline.Registry
	audits       *service.AsyncAuditRecorder
	auditService service.QuoteAuditService
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithAuditRecorder wires the async recorder that persists one audit
// entry per computed quote.
func WithAuditRecorder(rec *service.AsyncAuditRecorder) HandlerOption {
	return func(h *Handler) {
		h.audits = rec
	}
}

// WithAuditService wires the audit query service backing the quote
// history endpoint.
func WithAuditService(svc service.QuoteAuditService) HandlerOption {
	return func(h *Handler) {
		h.auditService = svc
	}
}

// NewHandler creates a new Handler instance.
func NewHandler(orch *orchestrator.Orchestrator, pipe *pipeline.Pipeline, registry *pipeline.Registry, opts ...HandlerOption) *Handler {
	h := &Handler{
		orchestrator: orch,
		pipeline:     pipe,
		registry:     registry,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// quoteScope identifies the portal form instance behind the request, so
// debounce and supersession only act between requests from the same
// client. Mirrors the rate limiter's client identification.
func quoteScope(c *gin.Context) string {
	if clientID := c.GetHeader(middleware.ClientIDHeader); clientID != "" {
		return "client:" + clientID
	}
	return "ip:" + c.ClientIP()
}

// toCalculationRequest maps the wire DTO onto the domain request.
func toCalculationRequest(req dto.QuoteRequest) model.CalculationRequest {
	return model.CalculationRequest{
		AreaTelhado:            req.AreaTelhado,
		ComprimentoCumeeira:    req.ComprimentoCumeeira,
		ComprimentoEspigao:     req.ComprimentoEspigao,
		ComprimentoAguaFurtada: req.ComprimentoAguaFurtada,
		Perimetro:              req.Perimetro,
		Sistema:                req.Sistema,
	}
}

// ComputeQuote handles POST /api/quote requests.
//
// The request flows through the orchestrator: identical requests within
// the debounce window collapse into one computation, and repeated
// requests are answered from the fingerprint cache.
//
// @Summary      Compute a quantitative quote
// @Description  Computes the bill of materials and total price for the given roof dimensions and material system. Identical concurrent requests share one computation.
// @Tags         Quotes
// @Accept       json
// @Produce      json
// @Param        request body dto.QuoteRequest true "Roof dimensions and system"
// @Success      200 {object} dto.SuccessResponse "Computed quote"
// @Failure      400 {object} dto.ErrorResponse "Invalid input"
// @Failure      404 {object} dto.ErrorResponse "Unknown catalog product"
// @Failure      409 {object} dto.ErrorResponse "Request superseded by a newer one"
// @Failure      504 {object} dto.ErrorResponse "Computation timed out"
// @Router       /api/quote [post]
func (h *Handler) ComputeQuote(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var req dto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	calcReq := toCalculationRequest(req)
	start := time.Now()
	result, fromCache, err := h.orchestrator.GetOrCompute(c.Request.Context(), quoteScope(c), calcReq)
	duration := time.Since(start)

	h.recordAudit(c, calcReq, result, fromCache, duration, err)

	if err != nil {
		_ = c.Error(err)
		return
	}

	if fromCache {
		c.Header(QuoteCacheHeader, "hit")
	} else {
		c.Header(QuoteCacheHeader, "miss")
	}
	builder.SuccessOK(result)
}

// ComputeQuoteDirect handles POST /api/quote/direct requests.
//
// It bypasses the orchestrator entirely: no debounce, no cache, no
// request collapsing. Used by batch tooling that manages its own
// concurrency.
//
// @Summary      Compute a quote without orchestration
// @Tags         Quotes
// @Accept       json
// @Produce      json
// @Param        request body dto.QuoteRequest true "Roof dimensions and system"
// @Success      200 {object} dto.SuccessResponse "Computed quote"
// @Failure      400 {object} dto.ErrorResponse "Invalid input"
// @Router       /api/quote/direct [post]
func (h *Handler) ComputeQuoteDirect(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var req dto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	calcReq := toCalculationRequest(req).Normalize()
	start := time.Now()
	result, err := h.pipeline.ComputeQuantities(c.Request.Context(), calcReq)
	duration := time.Since(start)

	h.recordAudit(c, calcReq, result, false, duration, err)

	if err != nil {
		_ = c.Error(err)
		return
	}

	builder.SuccessOK(result)
}

// ListSystems handles GET /api/systems requests.
//
// @Summary      List material systems
// @Tags         Quotes
// @Produce      json
// @Success      200 {object} dto.SuccessResponse "Registered system codes"
// @Router       /api/systems [get]
func (h *Handler) ListSystems(c *gin.Context) {
	builder := NewResponseBuilder(c)
	builder.SuccessOK(gin.H{
		"systems": h.registry.Codes(),
		"default": model.DefaultSistema,
	})
}

// QuoteHistory handles GET /api/quotes/history requests.
//
// @Summary      Query computed quote audits
// @Tags         Quotes
// @Produce      json
// @Param        sistema query string false "Filter by material system"
// @Param        fingerprint query string false "Filter by request fingerprint"
// @Param        limit query int false "Maximum entries to return"
// @Success      200 {object} dto.SuccessResponse "Audit entries, newest first"
// @Router       /api/quotes/history [get]
func (h *Handler) QuoteHistory(c *gin.Context) {
	builder := NewResponseBuilder(c)

	if h.auditService == nil {
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyInternalError, service.ErrRepositoryNotConfigured)
		return
	}

	query := model.QuoteAuditQuery{
		Sistema:     c.Query("sistema"),
		Fingerprint: c.Query("fingerprint"),
		Limit:       50,
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
			return
		}
		query.Limit = limit
	}

	audits, err := h.auditService.QueryQuotes(c.Request.Context(), query)
	if err != nil {
		_ = c.Error(err)
		return
	}

	builder.SuccessOK(gin.H{"quotes": audits, "count": len(audits)})
}

// recordAudit enqueues an audit entry for the finished computation.
// Best effort: a full buffer drops the entry, never the response.
func (h *Handler) recordAudit(c *gin.Context, req model.CalculationRequest, result model.QuoteResult, fromCache bool, duration time.Duration, err error) {
	if h.audits == nil {
		return
	}

	normalized := req.Normalize()
	audit := &model.QuoteAudit{
		RequestID:    middleware.GetRequestID(c),
		Fingerprint:  normalized.Fingerprint(),
		Sistema:      normalized.Sistema,
		ProposalType: result.ProposalType,
		AreaTelhado:  normalized.AreaTelhado,
		ItemCount:    len(result.Items),
		WarningCount: len(result.Warnings),
		Total:        result.Total,
		FromCache:    fromCache,
		Duration:     duration,
	}
	if err != nil {
		audit.Error = err.Error()
	}
	h.audits.Record(audit)
}
