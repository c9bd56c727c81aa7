package sse

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync/atomic"
)

const readBufferSize = 32 * 1024

// Opener starts a long-lived request and returns the body to read events from
type Opener interface {
	Open(ctx context.Context, endpoint string, header http.Header) (io.ReadCloser, error)
}

// Handler receives what a stream produces. Both callbacks run on the
// stream's goroutine, one at a time.
type Handler struct {
	// OnEvents receives the events completed by each read from the connection
	OnEvents func([]Event)
	// OnError receives the error that ended the stream. A connection closed
	// by the server is reported as io.ErrUnexpectedEOF.
	OnError func(error)
}

// Stream is one open event stream. It does not reconnect.
type Stream struct {
	cancel context.CancelFunc
	closed atomic.Bool
	done   chan struct{}
}

// Connect opens endpoint in the background and delivers events to handler
// until the stream fails or Close is called.
func Connect(ctx context.Context, opener Opener, endpoint string, header http.Header, handler Handler) *Stream {
	ctx, cancel := context.WithCancel(ctx)
	s := &Stream{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go s.run(ctx, opener, endpoint, header, handler)

	return s
}

// Close stops the stream. It does not wait for the stream goroutine; use
// Done for that. No callback runs after Close returns, except one that was
// already in progress.
func (s *Stream) Close() {
	s.closed.Store(true)
	s.cancel()
}

// Closed reports whether Close has been called
func (s *Stream) Closed() bool {
	return s.closed.Load()
}

// Done is closed once the stream goroutine has exited
func (s *Stream) Done() <-chan struct{} {
	return s.done
}

func (s *Stream) run(ctx context.Context, opener Opener, endpoint string, header http.Header, handler Handler) {
	defer close(s.done)
	defer s.cancel()

	body, err := opener.Open(ctx, endpoint, header)
	if err != nil {
		s.fail(ctx, handler, err)
		return
	}
	defer body.Close()

	// unblock a pending Read when the stream is closed
	stop := context.AfterFunc(ctx, func() { body.Close() })
	defer stop()

	var parser Parser
	buf := make([]byte, readBufferSize)
	for {
		n, err := body.Read(buf)
		if n > 0 {
			events := parser.Feed(buf[:n])
			if len(events) > 0 && !s.Closed() && handler.OnEvents != nil {
				handler.OnEvents(events)
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			s.fail(ctx, handler, err)
			return
		}
	}
}

func (s *Stream) fail(ctx context.Context, handler Handler, err error) {
	if s.Closed() || handler.OnError == nil {
		return
	}
	// a read interrupted by cancellation fails with an unrelated error
	if ctxErr := ctx.Err(); ctxErr != nil {
		err = ctxErr
	}
	handler.OnError(err)
}
