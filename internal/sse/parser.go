// Package sse reads Server-Sent Events streams.
package sse

import (
	"bytes"
	"strings"
)

// Event is one dispatched server-sent event
type Event struct {
	// ID is the last event ID seen on the stream, which may come from an
	// earlier event.
	ID   string
	Name string
	Data string
}

// Parser turns arbitrarily chunked stream bytes into events. A partial line
// or a partially received event is kept until the bytes completing it
// arrive.
type Parser struct {
	pending []byte
	lastID  string
	name    string
	data    []string
	hasData bool
}

// Feed consumes a chunk and returns the events it completed
func (p *Parser) Feed(chunk []byte) []Event {
	p.pending = append(p.pending, chunk...)

	var events []Event
	for {
		i := bytes.IndexByte(p.pending, '\n')
		if i < 0 {
			break
		}
		line := string(bytes.TrimSuffix(p.pending[:i], []byte("\r")))
		p.pending = p.pending[i+1:]

		if event, ok := p.line(line); ok {
			events = append(events, event)
		}
	}

	// keep the partial line without holding on to the consumed prefix
	p.pending = append([]byte(nil), p.pending...)
	return events
}

func (p *Parser) line(line string) (Event, bool) {
	if line == "" {
		return p.dispatch()
	}
	if strings.HasPrefix(line, ":") {
		return Event{}, false
	}

	field, value, found := strings.Cut(line, ":")
	if found {
		value = strings.TrimPrefix(value, " ")
	}

	switch field {
	case "event":
		p.name = value
	case "data":
		p.data = append(p.data, value)
		p.hasData = true
	case "id":
		if !strings.ContainsRune(value, 0) {
			p.lastID = value
		}
	}
	// retry and unknown fields are ignored
	return Event{}, false
}

func (p *Parser) dispatch() (Event, bool) {
	defer func() {
		p.name = ""
		p.data = nil
		p.hasData = false
	}()

	if !p.hasData && p.name == "" {
		return Event{}, false
	}
	return Event{
		ID:   p.lastID,
		Name: p.name,
		Data: strings.Join(p.data, "\n"),
	}, true
}
