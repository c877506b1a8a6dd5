// Package orchestrator guards the quantitative pipeline against rapid
// interactive input: fingerprint caching, single-flight execution with
// result fan-out, debounce and a safety timeout.
//
// Debounce and supersession are scoped per client: each portal form
// instance (identified by the scope string the caller passes) collapses
// its own bursts, while the fingerprint cache and the single-flight gate
// stay shared so identical requests from different clients still share
// one computation.
package orchestrator

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/construsol/proposal-service/internal/domain/errs"
	"github.com/construsol/proposal-service/internal/domain/model"
	"github.com/construsol/proposal-service/internal/metrics"
)

// Computer is the computation the orchestrator wraps; implemented by
// pipeline.Pipeline.
type Computer interface {
	// ComputeQuantities runs one quantitative computation. It must honor
	// ctx cancellation at its suspension points.
	ComputeQuantities(ctx context.Context, req model.CalculationRequest) (model.QuoteResult, error)
	// ValidateRequest checks the request shape without computing. The
	// orchestrator rejects invalid requests before touching any state.
	ValidateRequest(req model.CalculationRequest) error
}

// Default windows for interactive use.
const (
	DefaultDebounce = 300 * time.Millisecond
	DefaultTimeout  = 10 * time.Second
)

// scopeState tracks one client's debounce generation and outstanding
// flight. Entries live only while the client has waiters or a running
// computation; idle scopes are removed.
type scopeState struct {
	// gen increments on every non-cached call from this scope; a call
	// that finds a newer generation after its debounce wait has been
	// superseded.
	gen     uint64
	waiters int
	// flightKey/flightCtx/flightCancel describe the computation this
	// scope currently has in flight, if any. flightCancel is only
	// invoked when the same scope switches to a different fingerprint;
	// a flight that runs to completion leaves its context to the
	// deadline timer, so waiters never observe a cancellation racing
	// their own result.
	flightKey    string
	flightCtx    context.Context
	flightCancel context.CancelFunc
}

// Orchestrator wraps a Computer with a fingerprint cache, a single-flight
// gate, per-client debounce and a computation timeout. Safe for
// concurrent use.
type Orchestrator struct {
	computer Computer
	debounce time.Duration
	timeout  time.Duration

	group singleflight.Group

	mu sync.Mutex
	// cache holds successful results by request fingerprint, shared by
	// every scope. Append-only: entries are inserted, never mutated, and
	// never expire within the orchestrator's lifetime.
	cache  map[string]model.QuoteResult
	scopes map[string]*scopeState
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithDebounce sets the debounce window. Zero disables debouncing.
func WithDebounce(d time.Duration) Option {
	return func(o *Orchestrator) { o.debounce = d }
}

// WithTimeout sets the per-computation safety timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *Orchestrator) { o.timeout = d }
}

// New creates an orchestrator over the given computer.
func New(computer Computer, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		computer: computer,
		debounce: DefaultDebounce,
		timeout:  DefaultTimeout,
		cache:    make(map[string]model.QuoteResult),
		scopes:   make(map[string]*scopeState),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// GetOrCompute returns the quote for the request, serving from the
// fingerprint cache when the same normalized request was already answered.
// scope identifies the client form instance issuing the request; debounce
// and supersession only act between requests sharing a scope.
//
// Behavior under concurrency:
//   - identical in-flight request, any scope: the caller awaits the
//     shared result;
//   - a newer request from the same scope inside the debounce window
//     supersedes this one (errs.ErrSuperseded);
//   - a newer request from the same scope with a different fingerprint
//     cancels that scope's outstanding computation; its late result is
//     discarded, never cached;
//   - a computation exceeding the timeout unblocks the caller with
//     errs.ErrComputationTimeout and its eventual result is discarded.
//
// Failed computations are never cached.
func (o *Orchestrator) GetOrCompute(ctx context.Context, scope string, req model.CalculationRequest) (model.QuoteResult, bool, error) {
	norm := req.Normalize()

	// Invalid requests are rejected before the cache or pipeline is touched.
	if err := o.computer.ValidateRequest(norm); err != nil {
		return model.QuoteResult{}, false, err
	}

	key := norm.Fingerprint()

	o.mu.Lock()
	if cached, ok := o.cache[key]; ok {
		o.mu.Unlock()
		metrics.RecordQuoteCacheResult("hit")
		return cached, true, nil
	}
	ss := o.scopeLocked(scope)
	ss.gen++
	ss.waiters++
	myGen := ss.gen
	o.mu.Unlock()
	metrics.RecordQuoteCacheResult("miss")

	defer o.releaseScope(scope)

	if err := o.waitDebounce(ctx, scope, myGen); err != nil {
		return model.QuoteResult{}, false, err
	}

	fctx := o.enterFlight(scope, key)

	ch := o.group.DoChan(key, func() (interface{}, error) {
		defer o.exitFlight(scope, key)

		start := time.Now()
		result, err := o.computer.ComputeQuantities(fctx, norm)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				err = flightErr(err)
			}
			metrics.RecordQuoteComputation(time.Since(start), string(errKind(err)))
			return nil, err
		}

		// Commit atomically with respect to cancellation: a computation
		// abandoned meanwhile is discarded, never written to the cache.
		o.mu.Lock()
		abandoned := fctx.Err() != nil
		if !abandoned {
			o.cache[key] = result
		}
		o.mu.Unlock()
		if abandoned {
			metrics.RecordQuoteComputation(time.Since(start), "abandoned")
			return nil, flightErr(fctx.Err())
		}

		metrics.RecordQuoteComputation(time.Since(start), "success")
		return result, nil
	})

	select {
	case <-ctx.Done():
		// The caller gave up; the flight finishes in the background and
		// commits only if it was not itself cancelled.
		return model.QuoteResult{}, false, ctx.Err()

	case <-fctx.Done():
		if errors.Is(fctx.Err(), context.DeadlineExceeded) {
			return model.QuoteResult{}, false, errs.ErrComputationTimeout
		}
		return model.QuoteResult{}, false, errs.ErrSuperseded

	case res := <-ch:
		if res.Err != nil {
			return model.QuoteResult{}, false, res.Err
		}
		if res.Shared {
			metrics.RecordQuoteCacheResult("shared")
		}
		return res.Val.(model.QuoteResult), false, nil
	}
}

// CachedCount reports the number of fingerprints answered so far.
func (o *Orchestrator) CachedCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.cache)
}

// scopeLocked returns the state for scope, creating it on first use.
// Callers must hold o.mu.
func (o *Orchestrator) scopeLocked(scope string) *scopeState {
	ss, ok := o.scopes[scope]
	if !ok {
		ss = &scopeState{}
		o.scopes[scope] = ss
	}
	return ss
}

// releaseScope drops one waiter and removes the scope entry once it has
// neither waiters nor a flight, so transient clients do not accumulate.
func (o *Orchestrator) releaseScope(scope string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	ss, ok := o.scopes[scope]
	if !ok {
		return
	}
	ss.waiters--
	if ss.waiters > 0 {
		return
	}
	if ss.flightCtx == nil {
		delete(o.scopes, scope)
	} else if ss.flightCtx.Err() != nil {
		ss.flightCancel()
		delete(o.scopes, scope)
	}
}

// waitDebounce sleeps out the debounce window and reports whether a newer
// request from the same scope arrived meanwhile. A scope's bursts collapse
// to their last request; all earlier ones return errs.ErrSuperseded.
func (o *Orchestrator) waitDebounce(ctx context.Context, scope string, myGen uint64) error {
	if o.debounce <= 0 {
		return nil
	}

	timer := time.NewTimer(o.debounce)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}

	o.mu.Lock()
	ss := o.scopes[scope]
	superseded := ss == nil || ss.gen != myGen
	o.mu.Unlock()
	if superseded {
		return errs.ErrSuperseded
	}
	return nil
}

// enterFlight returns the context of the computation for key within scope,
// joining the scope's existing flight when one is running for the same
// fingerprint and cancelling it when it is answering a different, now
// stale, question. Other scopes' flights are never touched.
func (o *Orchestrator) enterFlight(scope, key string) context.Context {
	o.mu.Lock()
	defer o.mu.Unlock()

	ss := o.scopeLocked(scope)
	// A slot whose context already expired is dead weight, not a flight
	// to join; fall through and replace it.
	if ss.flightCtx != nil && ss.flightKey == key && ss.flightCtx.Err() == nil {
		return ss.flightCtx
	}

	if ss.flightCancel != nil {
		ss.flightCancel()
	}

	fctx, cancel := context.WithTimeout(context.Background(), o.timeout)
	ss.flightKey = key
	ss.flightCtx = fctx
	ss.flightCancel = cancel
	return fctx
}

// exitFlight releases the scope's in-flight slot. Runs on every flight
// exit path so a failed or abandoned computation can never deadlock future
// requests. The flight context is deliberately not cancelled here; it is
// released by its deadline timer, or by enterFlight when the scope moves
// to a newer fingerprint.
func (o *Orchestrator) exitFlight(scope, key string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	ss, ok := o.scopes[scope]
	if !ok || ss.flightKey != key {
		return // already taken over by a newer computation
	}
	ss.flightKey = ""
	ss.flightCtx = nil
	ss.flightCancel = nil
	if ss.waiters <= 0 {
		delete(o.scopes, scope)
	}
}

// flightErr translates a flight context error into the sentinel the caller
// is promised.
func flightErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errs.ErrComputationTimeout
	}
	return errs.ErrSuperseded
}

func errKind(err error) errs.Kind {
	if kind := errs.KindOf(err); kind != "" {
		return kind
	}
	return "error"
}
