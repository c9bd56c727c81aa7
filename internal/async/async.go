// Package async runs API calls as producers whose results are awaited once
// or shared between several consumers.
package async

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Producer performs one call. Each invocation issues the call again.
type Producer[T any] func(ctx context.Context) (T, error)

// Await runs the producer and waits for its result
func (p Producer[T]) Await(ctx context.Context) (T, error) {
	return p(ctx)
}

// Start runs the producer in the background
func (p Producer[T]) Start(ctx context.Context) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.value, f.err = p(ctx)
	}()
	return f
}

// Map converts the result of a producer
func Map[T, U any](p Producer[T], fn func(T) (U, error)) Producer[U] {
	return func(ctx context.Context) (U, error) {
		v, err := p(ctx)
		if err != nil {
			var zero U
			return zero, err
		}
		return fn(v)
	}
}

// Future is the pending result of a started producer
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Done is closed once the result is available
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await waits for the result or for ctx to end
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Shared runs its producer at most once and replays the outcome, value or
// error, to every caller. Concurrent callers wait on the same call. A call
// ended by its context being canceled is not kept, so the next caller tries
// again. Callers that join an in-flight call share the context of the caller
// that started it.
type Shared[T any] struct {
	producer Producer[T]
	group    singleflight.Group

	mu    sync.Mutex
	done  bool
	value T
	err   error
}

// Share wraps p so that it runs at most once
func Share[T any](p Producer[T]) *Shared[T] {
	return &Shared[T]{producer: p}
}

func (s *Shared[T]) cached() (T, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.done, s.err
}

// Await returns the shared result, performing the call if no caller has yet
func (s *Shared[T]) Await(ctx context.Context) (T, error) {
	if value, ok, err := s.cached(); ok {
		return value, err
	}

	ch := s.group.DoChan("", func() (interface{}, error) {
		if value, ok, err := s.cached(); ok {
			return value, err
		}

		value, err := s.producer(ctx)
		if err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
			return value, err
		}

		s.mu.Lock()
		s.value, s.err, s.done = value, err, true
		s.mu.Unlock()
		return value, err
	})

	select {
	case res := <-ch:
		value, _ := res.Val.(T)
		return value, res.Err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Producer exposes the shared result as a Producer
func (s *Shared[T]) Producer() Producer[T] {
	return s.Await
}
