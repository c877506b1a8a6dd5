package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/construsol/proposal-service/internal/domain/model"
)

// AsyncAuditConfig holds configuration for the async audit recorder.
type AsyncAuditConfig struct {
	// BufferSize is the size of the audit entry channel buffer.
	BufferSize int
	// NumWorkers is the number of worker goroutines writing audits.
	NumWorkers int
	// WriteTimeout is the timeout for writing one audit to the database.
	WriteTimeout time.Duration
}

// DefaultAsyncAuditConfig returns sensible defaults for the async recorder.
func DefaultAsyncAuditConfig() AsyncAuditConfig {
	return AsyncAuditConfig{
		BufferSize:   1000,
		NumWorkers:   4,
		WriteTimeout: 5 * time.Second,
	}
}

// AsyncAuditRecorder provides buffered, worker-pool based audit writes so a
// quote response never waits on MongoDB. This prevents unbounded goroutine
// creation under high load.
type AsyncAuditRecorder struct {
	audits       QuoteAuditService
	entryCh      chan *model.QuoteAudit
	wg           sync.WaitGroup
	stopCh       chan struct{}
	writeTimeout time.Duration

	// Metrics
	enqueued int64
	dropped  int64
	written  int64
}

// NewAsyncAuditRecorder creates a recorder with the given configuration.
func NewAsyncAuditRecorder(audits QuoteAuditService, cfg AsyncAuditConfig) *AsyncAuditRecorder {
	if audits == nil {
		return nil
	}

	ar := &AsyncAuditRecorder{
		audits:       audits,
		entryCh:      make(chan *model.QuoteAudit, cfg.BufferSize),
		stopCh:       make(chan struct{}),
		writeTimeout: cfg.WriteTimeout,
	}

	// Start worker pool
	for i := 0; i < cfg.NumWorkers; i++ {
		ar.wg.Add(1)
		go ar.worker()
	}

	return ar
}

// worker processes audit entries from the channel.
func (ar *AsyncAuditRecorder) worker() {
	defer ar.wg.Done()

	for {
		select {
		case audit, ok := <-ar.entryCh:
			if !ok {
				return // Channel closed
			}
			ar.writeAudit(audit)
		case <-ar.stopCh:
			// Drain remaining entries before stopping
			for {
				select {
				case audit := <-ar.entryCh:
					ar.writeAudit(audit)
				default:
					return
				}
			}
		}
	}
}

// writeAudit writes a single audit entry to the database.
func (ar *AsyncAuditRecorder) writeAudit(audit *model.QuoteAudit) {
	ctx, cancel := context.WithTimeout(context.Background(), ar.writeTimeout)
	defer cancel()

	ar.audits.RecordQuote(ctx, audit)
	atomic.AddInt64(&ar.written, 1)
}

// Record enqueues an audit entry for async processing.
// Returns true if the entry was enqueued, false if the buffer is full.
func (ar *AsyncAuditRecorder) Record(audit *model.QuoteAudit) bool {
	if audit.Timestamp.IsZero() {
		audit.Timestamp = time.Now()
	}
	select {
	case ar.entryCh <- audit:
		atomic.AddInt64(&ar.enqueued, 1)
		return true
	default:
		// Buffer full, drop the entry
		atomic.AddInt64(&ar.dropped, 1)
		log.Warn().Str("fingerprint", audit.Fingerprint).Msg("audit buffer full, entry dropped")
		return false
	}
}

// Stop gracefully shuts down the recorder.
// It waits for all pending entries to be processed.
func (ar *AsyncAuditRecorder) Stop() {
	close(ar.stopCh)
	ar.wg.Wait()
	close(ar.entryCh)
}

// Stats returns current recorder statistics.
func (ar *AsyncAuditRecorder) Stats() (enqueued, dropped, written int64) {
	return atomic.LoadInt64(&ar.enqueued),
		atomic.LoadInt64(&ar.dropped),
		atomic.LoadInt64(&ar.written)
}
