package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/construsol/proposal-service/internal/domain/model"
	"github.com/construsol/proposal-service/internal/repository"
)

// ErrRepositoryNotConfigured is returned when the repository is not configured.
var ErrRepositoryNotConfigured = errors.New("repository not configured")

// QuoteAuditService defines the interface for quote audit operations.
// This interface can be mocked for testing.
type QuoteAuditService interface {
	// RecordQuote stores one computed quote summary. Failures are logged
	// and swallowed; auditing never fails a quote.
	RecordQuote(ctx context.Context, audit *model.QuoteAudit)

	// QueryQuotes retrieves quote audits matching the query options.
	QueryQuotes(ctx context.Context, opts model.QuoteAuditQuery) ([]model.QuoteAudit, error)

	// CountQuotes returns the count of quote audits matching the query options.
	CountQuotes(ctx context.Context, opts model.QuoteAuditQuery) (int64, error)
}

// QuoteAuditServiceImpl implements the QuoteAuditService interface.
type QuoteAuditServiceImpl struct {
	repo repository.QuoteLogsRepositoryInterface
}

// NewQuoteAuditService creates a new quote audit service implementation.
func NewQuoteAuditService(repo repository.QuoteLogsRepositoryInterface) QuoteAuditService {
	return &QuoteAuditServiceImpl{
		repo: repo,
	}
}

// RecordQuote stores one computed quote summary.
func (s *QuoteAuditServiceImpl) RecordQuote(ctx context.Context, audit *model.QuoteAudit) {
	if s.repo == nil {
		return
	}
	doc := s.modelToDocument(audit)
	if err := s.repo.Create(ctx, doc); err != nil {
		log.Warn().Err(err).
			Str("fingerprint", audit.Fingerprint).
			Msg("failed to record quote audit")
	}
}

// QueryQuotes retrieves quote audits matching the query options.
func (s *QuoteAuditServiceImpl) QueryQuotes(ctx context.Context, opts model.QuoteAuditQuery) ([]model.QuoteAudit, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}

	docs, err := s.repo.Query(ctx, s.queryToRepoOptions(opts))
	if err != nil {
		return nil, err
	}

	audits := make([]model.QuoteAudit, len(docs))
	for i, doc := range docs {
		audits[i] = s.documentToModel(doc)
	}
	return audits, nil
}

// CountQuotes returns the count of quote audits matching the query options.
func (s *QuoteAuditServiceImpl) CountQuotes(ctx context.Context, opts model.QuoteAuditQuery) (int64, error) {
	if s.repo == nil {
		return 0, ErrRepositoryNotConfigured
	}
	return s.repo.Count(ctx, s.queryToRepoOptions(opts))
}

func (s *QuoteAuditServiceImpl) queryToRepoOptions(opts model.QuoteAuditQuery) repository.QuoteLogQueryOptions {
	return repository.QuoteLogQueryOptions{
		RequestID:   opts.RequestID,
		Fingerprint: opts.Fingerprint,
		Sistema:     opts.Sistema,
		StartTime:   opts.StartTime,
		EndTime:     opts.EndTime,
		Limit:       opts.Limit,
		Skip:        opts.Skip,
	}
}

func (s *QuoteAuditServiceImpl) modelToDocument(audit *model.QuoteAudit) *repository.QuoteLogDocument {
	return &repository.QuoteLogDocument{
		ID:           audit.ID,
		Timestamp:    audit.Timestamp,
		RequestID:    audit.RequestID,
		Fingerprint:  audit.Fingerprint,
		Sistema:      audit.Sistema,
		ProposalType: audit.ProposalType,
		AreaTelhado:  audit.AreaTelhado,
		ItemCount:    audit.ItemCount,
		WarningCount: audit.WarningCount,
		Total:        audit.Total.StringFixed(2),
		FromCache:    audit.FromCache,
		DurationMs:   audit.Duration.Milliseconds(),
		Error:        audit.Error,
	}
}

func (s *QuoteAuditServiceImpl) documentToModel(doc *repository.QuoteLogDocument) model.QuoteAudit {
	total, err := decimal.NewFromString(doc.Total)
	if err != nil {
		total = decimal.Zero
	}
	return model.QuoteAudit{
		ID:           doc.ID,
		Timestamp:    doc.Timestamp,
		RequestID:    doc.RequestID,
		Fingerprint:  doc.Fingerprint,
		Sistema:      doc.Sistema,
		ProposalType: doc.ProposalType,
		AreaTelhado:  doc.AreaTelhado,
		ItemCount:    doc.ItemCount,
		WarningCount: doc.WarningCount,
		Total:        total,
		FromCache:    doc.FromCache,
		Duration:     durationFromMillis(doc.DurationMs),
		Error:        doc.Error,
	}
}

func durationFromMillis(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
