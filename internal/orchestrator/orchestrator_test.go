package orchestrator

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/construsol/proposal-service/internal/domain/errs"
	"github.com/construsol/proposal-service/internal/domain/model"
)

type stubComputer struct {
	calls    atomic.Int32
	validate func(model.CalculationRequest) error
	compute  func(ctx context.Context, req model.CalculationRequest) (model.QuoteResult, error)
}

func (s *stubComputer) ComputeQuantities(ctx context.Context, req model.CalculationRequest) (model.QuoteResult, error) {
	s.calls.Add(1)
	return s.compute(ctx, req)
}

func (s *stubComputer) ValidateRequest(req model.CalculationRequest) error {
	if s.validate != nil {
		return s.validate(req)
	}
	return nil
}

func instantResult(proposalType string) func(context.Context, model.CalculationRequest) (model.QuoteResult, error) {
	return func(context.Context, model.CalculationRequest) (model.QuoteResult, error) {
		return model.QuoteResult{ProposalType: proposalType}, nil
	}
}

func request(area float64, sistema string) model.CalculationRequest {
	return model.CalculationRequest{AreaTelhado: area, Sistema: sistema}
}

func TestGetOrCompute_CachesByFingerprint(t *testing.T) {
	computer := &stubComputer{compute: instantResult("telhado-shingle")}
	orch := New(computer, WithDebounce(0))

	first, cached, err := orch.GetOrCompute(context.Background(), "form-a", request(100, "shingle-supreme"))
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, "telhado-shingle", first.ProposalType)

	second, cached, err := orch.GetOrCompute(context.Background(), "form-a", request(100, "shingle-supreme"))
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), computer.calls.Load())
	assert.Equal(t, 1, orch.CachedCount())
}

func TestGetOrCompute_CacheSharedAcrossClients(t *testing.T) {
	computer := &stubComputer{compute: instantResult("telhado-shingle")}
	orch := New(computer, WithDebounce(0))

	_, cached, err := orch.GetOrCompute(context.Background(), "form-a", request(100, "shingle-supreme"))
	require.NoError(t, err)
	assert.False(t, cached)

	_, cached, err = orch.GetOrCompute(context.Background(), "form-b", request(100, "shingle-supreme"))
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, int32(1), computer.calls.Load())
}

func TestGetOrCompute_NormalizationSharesCacheEntries(t *testing.T) {
	computer := &stubComputer{compute: instantResult("telhado-shingle")}
	orch := New(computer, WithDebounce(0))

	_, _, err := orch.GetOrCompute(context.Background(), "form-a", request(100, "  Shingle-Supreme  "))
	require.NoError(t, err)

	_, cached, err := orch.GetOrCompute(context.Background(), "form-a", request(100, "shingle-supreme"))
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, int32(1), computer.calls.Load())
}

func TestGetOrCompute_ValidationRejectedBeforeAnyState(t *testing.T) {
	verr := &errs.ValidationError{}
	verr.Add("areaTelhado", "must be greater than zero")

	computer := &stubComputer{
		validate: func(model.CalculationRequest) error { return verr },
		compute:  instantResult("telhado-shingle"),
	}
	orch := New(computer, WithDebounce(0))

	_, cached, err := orch.GetOrCompute(context.Background(), "form-a", request(0, "shingle-supreme"))
	require.Error(t, err)
	assert.False(t, cached)

	var got *errs.ValidationError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, int32(0), computer.calls.Load())
	assert.Equal(t, 0, orch.CachedCount())
}

func TestGetOrCompute_DebounceCollapsesBurstToLastRequest(t *testing.T) {
	computer := &stubComputer{compute: instantResult("telhado-shingle")}
	orch := New(computer, WithDebounce(80*time.Millisecond))

	var wg sync.WaitGroup
	errsCh := make(chan error, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _, err := orch.GetOrCompute(context.Background(), "form-a", request(100, "shingle-supreme"))
		errsCh <- err
	}()

	time.Sleep(20 * time.Millisecond)

	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _, err := orch.GetOrCompute(context.Background(), "form-a", request(120, "shingle-supreme"))
		errsCh <- err
	}()

	wg.Wait()
	close(errsCh)

	var superseded, succeeded int
	for err := range errsCh {
		switch {
		case errors.Is(err, errs.ErrSuperseded):
			superseded++
		case err == nil:
			succeeded++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, superseded)
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, int32(1), computer.calls.Load())
}

func TestGetOrCompute_DistinctClientsNeverSupersedeEachOther(t *testing.T) {
	computer := &stubComputer{compute: instantResult("telhado-shingle")}
	orch := New(computer, WithDebounce(80*time.Millisecond))

	// Two unrelated portal sessions post different quotes inside the same
	// debounce window. Neither collapses the other's request.
	var wg sync.WaitGroup
	errsCh := make(chan error, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _, err := orch.GetOrCompute(context.Background(), "form-a", request(100, "shingle-supreme"))
		errsCh <- err
	}()

	time.Sleep(20 * time.Millisecond)

	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _, err := orch.GetOrCompute(context.Background(), "form-b", request(250, "ceramica-portuguesa"))
		errsCh <- err
	}()

	wg.Wait()
	close(errsCh)

	for err := range errsCh {
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(2), computer.calls.Load())
	assert.Equal(t, 2, orch.CachedCount())
}

func TestGetOrCompute_IdenticalConcurrentRequestsShareOneFlight(t *testing.T) {
	release := make(chan struct{})
	computer := &stubComputer{
		compute: func(ctx context.Context, _ model.CalculationRequest) (model.QuoteResult, error) {
			select {
			case <-release:
			case <-ctx.Done():
				return model.QuoteResult{}, ctx.Err()
			}
			return model.QuoteResult{ProposalType: "telhado-shingle"}, nil
		},
	}
	orch := New(computer, WithDebounce(0))

	const callers = 4
	var wg sync.WaitGroup
	results := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := orch.GetOrCompute(context.Background(), "form-a", request(100, "shingle-supreme"))
			results <- err
		}()
	}

	// Let every caller reach the flight before releasing the computation.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
	close(results)

	for err := range results {
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(1), computer.calls.Load())
}

func TestGetOrCompute_TimeoutUnblocksCaller(t *testing.T) {
	computer := &stubComputer{
		compute: func(ctx context.Context, _ model.CalculationRequest) (model.QuoteResult, error) {
			<-ctx.Done()
			return model.QuoteResult{}, ctx.Err()
		},
	}
	orch := New(computer, WithDebounce(0), WithTimeout(40*time.Millisecond))

	start := time.Now()
	_, _, err := orch.GetOrCompute(context.Background(), "form-a", request(100, "shingle-supreme"))
	require.ErrorIs(t, err, errs.ErrComputationTimeout)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, 0, orch.CachedCount())
}

func TestGetOrCompute_NewFingerprintCancelsOutstandingFlight(t *testing.T) {
	started := make(chan struct{}, 1)
	computer := &stubComputer{
		compute: func(ctx context.Context, req model.CalculationRequest) (model.QuoteResult, error) {
			if req.AreaTelhado == 100 {
				started <- struct{}{}
				<-ctx.Done()
				return model.QuoteResult{}, ctx.Err()
			}
			return model.QuoteResult{ProposalType: "telhado-shingle"}, nil
		},
	}
	orch := New(computer, WithDebounce(0))

	var wg sync.WaitGroup
	var slowErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _, slowErr = orch.GetOrCompute(context.Background(), "form-a", request(100, "shingle-supreme"))
	}()

	<-started

	_, _, err := orch.GetOrCompute(context.Background(), "form-a", request(200, "shingle-supreme"))
	require.NoError(t, err)

	wg.Wait()
	assert.ErrorIs(t, slowErr, errs.ErrSuperseded)

	// The cancelled flight's result was discarded; only the newer
	// fingerprint is cached.
	assert.Equal(t, 1, orch.CachedCount())
}

func TestGetOrCompute_OtherClientsFlightLeftRunning(t *testing.T) {
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	computer := &stubComputer{
		compute: func(ctx context.Context, req model.CalculationRequest) (model.QuoteResult, error) {
			if req.AreaTelhado == 100 {
				started <- struct{}{}
				select {
				case <-release:
				case <-ctx.Done():
					return model.QuoteResult{}, ctx.Err()
				}
			}
			return model.QuoteResult{ProposalType: "telhado-shingle"}, nil
		},
	}
	orch := New(computer, WithDebounce(0))

	var wg sync.WaitGroup
	var slowErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _, slowErr = orch.GetOrCompute(context.Background(), "form-a", request(100, "shingle-supreme"))
	}()

	<-started

	// A different client asking a different question must not cancel the
	// first client's computation.
	_, _, err := orch.GetOrCompute(context.Background(), "form-b", request(200, "shingle-supreme"))
	require.NoError(t, err)

	close(release)
	wg.Wait()
	require.NoError(t, slowErr)
	assert.Equal(t, 2, orch.CachedCount())
}

func TestGetOrCompute_FailedComputationNotCached(t *testing.T) {
	boom := errors.New("catalog offline")
	var failFirst atomic.Bool
	failFirst.Store(true)

	computer := &stubComputer{
		compute: func(context.Context, model.CalculationRequest) (model.QuoteResult, error) {
			if failFirst.Swap(false) {
				return model.QuoteResult{}, boom
			}
			return model.QuoteResult{ProposalType: "telhado-shingle"}, nil
		},
	}
	orch := New(computer, WithDebounce(0))

	_, _, err := orch.GetOrCompute(context.Background(), "form-a", request(100, "shingle-supreme"))
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, orch.CachedCount())

	result, cached, err := orch.GetOrCompute(context.Background(), "form-a", request(100, "shingle-supreme"))
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, "telhado-shingle", result.ProposalType)
	assert.Equal(t, int32(2), computer.calls.Load())
}

func TestGetOrCompute_CallerCancellationDuringDebounce(t *testing.T) {
	computer := &stubComputer{compute: instantResult("telhado-shingle")}
	orch := New(computer, WithDebounce(200*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, _, err := orch.GetOrCompute(ctx, "form-a", request(100, "shingle-supreme"))
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(0), computer.calls.Load())
}
