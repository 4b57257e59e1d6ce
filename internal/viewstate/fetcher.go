package viewstate

import (
	"go.uber.org/zap"
)

// Fetcher drives a State through one fetch at a time.
//
// Each Begin starts a new generation and returns Loading; Resolve accepts only
// the current generation, once. Responses from an earlier generation (a
// refresh overtook them) are dropped instead of overwriting newer data.
type Fetcher[T any] struct {
	name        string
	failMessage string
	logger      *zap.Logger

	state    State[T]
	gen      uint64
	inFlight bool
}

// NewFetcher creates a fetcher. failMessage is the fixed text shown on any
// failure; the underlying cause is logged, not shown. A nil logger is allowed.
func NewFetcher[T any](name, failMessage string, logger *zap.Logger) *Fetcher[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher[T]{
		name:        name,
		failMessage: failMessage,
		logger:      logger,
		state:       Loading[T](),
	}
}

// Begin enters Loading and returns the generation the response must carry.
func (f *Fetcher[T]) Begin() uint64 {
	f.gen++
	f.inFlight = true
	f.state = Loading[T]()
	return f.gen
}

// Resolve applies the outcome of generation gen. It returns false when the
// response is stale or the generation already resolved; the state is then
// left untouched.
func (f *Fetcher[T]) Resolve(gen uint64, payload T, err error) bool {
	if gen != f.gen || !f.inFlight {
		f.logger.Debug("dropping stale response",
			zap.String("view", f.name),
			zap.Uint64("generation", gen),
			zap.Uint64("current", f.gen))
		return false
	}
	f.inFlight = false
	if err != nil {
		f.logger.Error("fetch failed", zap.String("view", f.name), zap.Error(err))
		f.state = Failed[T](f.failMessage)
		return true
	}
	f.state = Ready(payload)
	return true
}

// Fail resolves the current generation as an error with a specific message,
// used when the server supplied one worth showing.
func (f *Fetcher[T]) Fail(gen uint64, message string, cause error) bool {
	if gen != f.gen || !f.inFlight {
		return false
	}
	f.inFlight = false
	if cause != nil {
		f.logger.Error("fetch failed", zap.String("view", f.name), zap.Error(cause))
	}
	if message == "" {
		message = f.failMessage
	}
	f.state = Failed[T](message)
	return true
}

// Abandon forgets the outstanding request, if any. Its response will be
// dropped as stale. The state is left as it is.
func (f *Fetcher[T]) Abandon() {
	f.inFlight = false
}

// State returns the current state.
func (f *Fetcher[T]) State() State[T] { return f.state }

// InFlight reports whether a request is outstanding.
func (f *Fetcher[T]) InFlight() bool { return f.inFlight }

// Generation returns the most recent generation handed out by Begin.
func (f *Fetcher[T]) Generation() uint64 { return f.gen }
