package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// CircuitBreaker stops calls to a dependency after FailureThreshold
// consecutive failures, then lets HalfOpenMaxReq probes through once
// OpenTimeout has passed. A disabled breaker admits every call.
type CircuitBreaker struct {
	mu  sync.Mutex
	cfg CircuitBreakerConfig

	state           CircuitState
	failures        int
	openedAt        time.Time
	probesInFlight  int
	probesSucceeded int
	now             func() time.Time
	onChange        func(from, to CircuitState)
}

// NewCircuitBreaker builds a breaker from cfg after normalizing it.
// onChange, when set, runs under the breaker lock on every transition and
// must not call back into the breaker.
func NewCircuitBreaker(cfg CircuitBreakerConfig, onChange func(from, to CircuitState)) *CircuitBreaker {
	return &CircuitBreaker{
		cfg:      cfg.Normalized(),
		state:    CircuitStateClosed,
		now:      time.Now,
		onChange: onChange,
	}
}

func (b *CircuitBreaker) Name() string {
	return b.cfg.Name
}

// Call runs fn when the breaker admits it and records the outcome. Errors
// for which isFailure returns false count as successes, so caller mistakes
// do not trip the breaker. A nil isFailure treats every error as a failure.
func (b *CircuitBreaker) Call(fn func() error, isFailure func(error) bool) error {
	if err := b.Allow(); err != nil {
		return err
	}
	err := fn()
	if err != nil && (isFailure == nil || isFailure(err)) {
		b.RecordFailure()
	} else {
		b.RecordSuccess()
	}
	return err
}

func (b *CircuitBreaker) Allow() error {
	if !b.cfg.Enabled {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitStateOpen:
		if b.now().Sub(b.openedAt) < b.cfg.OpenTimeout {
			return ErrCircuitOpen
		}
		b.moveTo(CircuitStateHalfOpen)
		fallthrough
	case CircuitStateHalfOpen:
		if b.probesInFlight >= b.cfg.HalfOpenMaxReq {
			return ErrCircuitOpen
		}
		b.probesInFlight++
	}
	return nil
}

func (b *CircuitBreaker) RecordSuccess() {
	if !b.cfg.Enabled {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitStateClosed:
		b.failures = 0
	case CircuitStateHalfOpen:
		b.releaseProbe()
		b.probesSucceeded++
		if b.probesSucceeded >= b.cfg.HalfOpenMaxReq && b.probesInFlight == 0 {
			b.moveTo(CircuitStateClosed)
		}
	}
}

func (b *CircuitBreaker) RecordFailure() {
	if !b.cfg.Enabled {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitStateClosed:
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.moveTo(CircuitStateOpen)
		}
	case CircuitStateHalfOpen:
		b.releaseProbe()
		b.moveTo(CircuitStateOpen)
	case CircuitStateOpen:
		b.openedAt = b.now()
	}
}

// State reports the current state. An open breaker whose timeout has
// elapsed reads as half-open before the next Allow moves it there.
func (b *CircuitBreaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen && b.now().Sub(b.openedAt) >= b.cfg.OpenTimeout {
		return CircuitStateHalfOpen
	}
	return b.state
}

func (b *CircuitBreaker) releaseProbe() {
	if b.probesInFlight > 0 {
		b.probesInFlight--
	}
}

// moveTo resets the counters owned by the target state.
func (b *CircuitBreaker) moveTo(to CircuitState) {
	from := b.state
	b.state = to
	b.probesInFlight = 0
	b.probesSucceeded = 0
	switch to {
	case CircuitStateClosed:
		b.failures = 0
		b.openedAt = time.Time{}
	case CircuitStateOpen:
		b.openedAt = b.now()
	}
	if from != to && b.onChange != nil {
		b.onChange(from, to)
	}
}
