// Package circuitbreaker shields the service from a failing model provider:
// after a run of consecutive failures, calls are short-circuited until the
// provider shows signs of recovery.
package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

// State represents the state of the circuit breaker.
type State int

const (
	// Closed is the initial state where requests are allowed.
	Closed State = iota
	// Open is the tripped state where requests are blocked.
	Open
	// HalfOpen allows trial requests to test the provider's recovery.
	HalfOpen
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case Closed:
		return "Closed"
	case Open:
		return "Open"
	case HalfOpen:
		return "Half-Open"
	default:
		return "Unknown"
	}
}

// ErrCircuitOpen is returned when the circuit breaker is in the Open state.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreaker is the interface for the circuit breaker pattern.
type CircuitBreaker interface {
	// Execute runs the given request if the circuit breaker is closed or half-open.
	Execute(req func() (interface{}, error)) (interface{}, error)
	// State returns the current state of the circuit breaker.
	State() State
}

type breaker struct {
	failureThreshold     uint32        // consecutive failures to trip the circuit
	successThreshold     uint32        // consecutive half-open successes to close it
	timeout              time.Duration // time spent open before going half-open
	consecutiveSuccesses uint32
	consecutiveFailures  uint32
	lastErrorTime        time.Time
	state                State
	mutex                sync.Mutex
}

// New creates a CircuitBreaker.
// failureThreshold: consecutive failures required to open the circuit.
// successThreshold: consecutive half-open successes required to close it.
// timeout: how long the circuit remains open before allowing trial requests.
func New(failureThreshold, successThreshold uint32, timeout time.Duration) CircuitBreaker {
	return &breaker{
		failureThreshold: failureThreshold,
		successThreshold: successThreshold,
		timeout:          timeout,
		state:            Closed,
	}
}

// State returns the current state of the circuit breaker.
func (cb *breaker) State() State {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()
	return cb.state
}

// Execute wraps the execution of a function with the circuit breaker logic.
func (cb *breaker) Execute(req func() (interface{}, error)) (interface{}, error) {
	cb.mutex.Lock()

	if cb.state == Open && time.Since(cb.lastErrorTime) > cb.timeout {
		cb.state = HalfOpen
		cb.consecutiveSuccesses = 0
	}

	if cb.state == Open {
		cb.mutex.Unlock()
		return nil, ErrCircuitOpen
	}
	cb.mutex.Unlock()

	res, err := req()
	if err != nil {
		cb.onFailure()
		return nil, err
	}
	cb.onSuccess()
	return res, nil
}

func (cb *breaker) onSuccess() {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	switch cb.state {
	case HalfOpen:
		cb.consecutiveSuccesses++
		if cb.consecutiveSuccesses >= cb.successThreshold {
			cb.state = Closed
			cb.consecutiveFailures = 0
			cb.consecutiveSuccesses = 0
		}
	case Closed:
		cb.consecutiveFailures = 0
	}
}

func (cb *breaker) onFailure() {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	switch cb.state {
	case HalfOpen:
		cb.trip()
	case Closed:
		cb.consecutiveFailures++
		if cb.consecutiveFailures >= cb.failureThreshold {
			cb.trip()
		}
	}
}

func (cb *breaker) trip() {
	cb.state = Open
	cb.lastErrorTime = time.Now()
	cb.consecutiveFailures = 0
	cb.consecutiveSuccesses = 0
}
