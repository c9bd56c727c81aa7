// Package logs follows the event stream of a build and extracts its output.
package logs

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ciwatch/cli/internal/decode"
	"github.com/ciwatch/cli/internal/models"
	"github.com/ciwatch/cli/internal/sse"
)

// EndEventName is the stream event sent once a build has no more output
const EndEventName = "end"

// ParseEvent extracts the log line from one stream event. Events that are
// not log events yield false and no error.
func ParseEvent(event sse.Event) (models.LogEvent, bool, error) {
	envelope, err := decode.EventEnvelope([]byte(event.Data))
	if err != nil {
		return models.LogEvent{}, false, err
	}
	if envelope.Event != decode.EventTypeLog {
		return models.LogEvent{}, false, nil
	}
	logEvent, err := decode.LogEvent(envelope.Data)
	if err != nil {
		return models.LogEvent{}, false, err
	}
	return logEvent, true, nil
}

// Handler receives the output of a build. Callbacks run on the stream's
// goroutine, one at a time.
type Handler struct {
	// OnLogs receives the log lines parsed from each read of the connection
	OnLogs func([]models.LogEvent)
	// OnError receives a connection failure. The stream is over afterwards.
	OnError func(error)
	// OnEnd is called when the server reports the end of the build output
	OnEnd func()
}

// Stream follows one build
type Stream struct {
	events *sse.Stream
}

// Option configures a Stream
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger dropped events are reported to
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Connect opens the event stream at endpoint. Events that cannot be parsed
// are logged and dropped; they never end the stream.
func Connect(ctx context.Context, opener sse.Opener, endpoint string, header http.Header, handler Handler, opts ...Option) *Stream {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Stream{}
	// callbacks may fire before s.events is assigned
	ready := make(chan struct{})
	var ended bool

	onEvents := func(events []sse.Event) {
		if ended {
			return
		}

		var lines []models.LogEvent
		for _, event := range events {
			if event.Name == EndEventName {
				ended = true
				break
			}

			line, ok, err := ParseEvent(event)
			if err != nil {
				o.logger.Warn("dropping malformed build event", "id", event.ID, "error", err)
				continue
			}
			if !ok {
				o.logger.Debug("ignoring build event", "id", event.ID, "name", event.Name)
				continue
			}
			lines = append(lines, line)
		}

		if len(lines) > 0 && handler.OnLogs != nil {
			handler.OnLogs(lines)
		}
		if ended {
			<-ready
			s.Close()
			if handler.OnEnd != nil {
				handler.OnEnd()
			}
		}
	}

	s.events = sse.Connect(ctx, opener, endpoint, header, sse.Handler{
		OnEvents: onEvents,
		OnError:  handler.OnError,
	})
	close(ready)

	return s
}

// Close stops following the build. It does not wait; use Done for that.
func (s *Stream) Close() {
	s.events.Close()
}

// Done is closed once the stream has stopped
func (s *Stream) Done() <-chan struct{} {
	return s.events.Done()
}
