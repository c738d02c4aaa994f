package geolib

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"
)

type circuitBreakerCallback func(context.Context) (*http.Response, error)

const (
	circuitBreakerStateClosed uint32 = iota
	circuitBreakerStateHalfOpened
	circuitBreakerStateOpened
)

type circuitBreaker struct {
	state uint32
	// a channel of capacity 1 works as a mutex which respects contexts
	lock chan struct{}

	halfOpenTimer      *time.Timer
	resetFailuresTimer *time.Timer

	halfOpenAttempts uint32
	failures         uint32

	openThreshold        uint32
	halfOpenTimeout      time.Duration
	resetFailuresTimeout time.Duration
}

func (c *circuitBreaker) Do(ctx context.Context, callback circuitBreakerCallback) (*http.Response, error) {
	switch atomic.LoadUint32(&c.state) {
	case circuitBreakerStateClosed:
		return c.doClosed(ctx, callback)
	case circuitBreakerStateHalfOpened:
		return c.doHalfOpened(ctx, callback)
	}

	return nil, ErrCircuitBreakerOpened
}

func (c *circuitBreaker) doClosed(ctx context.Context, callback circuitBreakerCallback) (*http.Response, error) {
	resp, err := callback(ctx)

	if !c.acquire(ctx) {
		if resp != nil {
			flushResponse(resp.Body)
		}

		return nil, ctx.Err()
	}
	defer c.release()

	if err == nil {
		c.failures = 0

		return resp, nil
	}

	c.failures++

	if c.state == circuitBreakerStateClosed && c.failures > c.openThreshold {
		c.switchState(circuitBreakerStateOpened)
	}

	return nil, err
}

func (c *circuitBreaker) doHalfOpened(ctx context.Context, callback circuitBreakerCallback) (*http.Response, error) {
	if !atomic.CompareAndSwapUint32(&c.halfOpenAttempts, 0, 1) {
		return nil, ErrCircuitBreakerOpened
	}

	resp, err := callback(ctx)

	if !c.acquire(ctx) {
		if resp != nil {
			flushResponse(resp.Body)
		}

		return nil, ctx.Err()
	}
	defer c.release()

	if c.state == circuitBreakerStateHalfOpened {
		if err != nil {
			c.switchState(circuitBreakerStateOpened)
		} else {
			c.switchState(circuitBreakerStateClosed)
		}
	}

	return resp, err
}

func (c *circuitBreaker) acquire(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case c.lock <- struct{}{}:
		return true
	}
}

func (c *circuitBreaker) release() {
	<-c.lock
}

func (c *circuitBreaker) switchState(state uint32) {
	switch state {
	case circuitBreakerStateClosed:
		c.stopTimer(&c.halfOpenTimer)
		c.ensureTimer(&c.resetFailuresTimer, c.resetFailuresTimeout, c.resetFailures)
	case circuitBreakerStateHalfOpened:
		c.stopTimer(&c.resetFailuresTimer)
		c.stopTimer(&c.halfOpenTimer)
	case circuitBreakerStateOpened:
		c.stopTimer(&c.resetFailuresTimer)
		c.ensureTimer(&c.halfOpenTimer, c.halfOpenTimeout, c.tryHalfOpen)
	}

	c.failures = 0

	atomic.StoreUint32(&c.halfOpenAttempts, 0)
	atomic.StoreUint32(&c.state, state)
}

func (c *circuitBreaker) resetFailures() {
	c.lock <- struct{}{}
	defer c.release()

	c.stopTimer(&c.resetFailuresTimer)

	if c.state == circuitBreakerStateClosed {
		c.switchState(circuitBreakerStateClosed)
	}
}

func (c *circuitBreaker) tryHalfOpen() {
	c.lock <- struct{}{}
	defer c.release()

	c.stopTimer(&c.halfOpenTimer)

	if c.state == circuitBreakerStateOpened {
		c.switchState(circuitBreakerStateHalfOpened)
	}
}

func (c *circuitBreaker) stopTimer(timerRef **time.Timer) {
	if *timerRef == nil {
		return
	}

	(*timerRef).Stop()
	*timerRef = nil
}

func (c *circuitBreaker) ensureTimer(timerRef **time.Timer, timeout time.Duration, callback func()) {
	if *timerRef == nil {
		*timerRef = time.AfterFunc(timeout, callback)
	}
}

func newCircuitBreaker(openThreshold uint32,
	halfOpenTimeout, resetFailuresTimeout time.Duration) *circuitBreaker {
	cb := &circuitBreaker{
		lock:                 make(chan struct{}, 1),
		openThreshold:        openThreshold,
		halfOpenTimeout:      halfOpenTimeout,
		resetFailuresTimeout: resetFailuresTimeout,
	}

	cb.switchState(circuitBreakerStateClosed)

	return cb
}
