package summarizer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"docdigest/internal/domain/entity"
)

// State describes the lifecycle of a Handle.
type State int32

const (
	// StateNotLoaded means Load has not completed yet.
	StateNotLoaded State = iota
	// StateReady means the primary model loaded and answers calls.
	StateReady
	// StateDisabled means no provider is configured; every chunk uses the fallback.
	StateDisabled
	// StateFailed means loading failed; the handle stays unavailable for the process lifetime.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateDisabled:
		return "disabled"
	case StateFailed:
		return "failed"
	default:
		return "not_loaded"
	}
}

// LazyLoadTimeout bounds a load triggered by Summarize. That load is detached
// from the caller's cancellation, since its outcome is kept for the process.
const LazyLoadTimeout = 30 * time.Second

// LoadFunc constructs the primary model. It runs at most once per Handle.
type LoadFunc func(ctx context.Context) (Model, error)

// Handle is the process-wide holder of the primary model. The model is loaded
// lazily on first use, or eagerly by calling Load at startup, and is read-only
// afterwards. A Handle is safe for concurrent use.
type Handle struct {
	load        LoadFunc
	lazyTimeout time.Duration
	once        sync.Once
	model Model
	err   error
	state atomic.Int32
}

// NewHandle returns an unloaded handle that will obtain its model from load.
func NewHandle(load LoadFunc) *Handle {
	return &Handle{load: load, lazyTimeout: LazyLoadTimeout}
}

// Load runs the loader exactly once. Concurrent callers block until the first
// load finishes and all observe the same outcome. The returned error wraps
// ErrModelUnavailable when loading failed.
func (h *Handle) Load(ctx context.Context) error {
	h.once.Do(func() {
		model, err := h.load(ctx)
		if err != nil {
			h.err = fmt.Errorf("%w: %v", ErrModelUnavailable, err)
			h.state.Store(int32(StateFailed))
			slog.Error("summarization model failed to load, using extractive fallback",
				slog.Any("error", err))
			return
		}
		h.model = model
		if _, disabled := model.(*NoOp); disabled {
			h.state.Store(int32(StateDisabled))
			slog.Info("no summarization provider configured, using extractive fallback")
			return
		}
		h.state.Store(int32(StateReady))
		slog.Info("summarization model loaded")
	})
	return h.err
}

// Summarize delegates to the loaded model, loading it first if needed.
// A canceled request cannot fail that first load for everyone else.
func (h *Handle) Summarize(ctx context.Context, text string, bounds entity.LengthBounds) (string, error) {
	loadCtx := ctx
	if h.State() == StateNotLoaded {
		var cancel context.CancelFunc
		loadCtx, cancel = context.WithTimeout(context.WithoutCancel(ctx), h.lazyTimeout)
		defer cancel()
	}
	if err := h.Load(loadCtx); err != nil {
		return "", err
	}
	return h.model.Summarize(ctx, text, bounds)
}

// State returns the current lifecycle state.
func (h *Handle) State() State {
	return State(h.state.Load())
}

// Ready reports whether requests can be served as configured: the model
// loaded, or no provider was configured at all.
func (h *Handle) Ready() bool {
	s := h.State()
	return s == StateReady || s == StateDisabled
}

// Close releases the model. The HTTP clients behind the providers need no
// explicit shutdown, so this is a no-op kept for lifecycle symmetry.
func (h *Handle) Close() error {
	return nil
}
