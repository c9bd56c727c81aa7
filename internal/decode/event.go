package decode

import (
	"encoding/json"

	"github.com/ciwatch/cli/internal/models"
)

// EventTypeLog is the envelope type carrying build output
const EventTypeLog = "log"

// Envelope is the JSON document carried in the data of a build event, e.g.
// {"event":"log","version":"5.1","data":{"payload":"..."}}
type Envelope struct {
	Event   string
	Version string
	Data    json.RawMessage
}

// EventEnvelope decodes the data of one build event
func EventEnvelope(data []byte) (Envelope, error) {
	return result(eventEnvelope(data))
}

func eventEnvelope(data []byte) (Envelope, *Error) {
	o, err := parseObject(data)
	if err != nil {
		return Envelope{}, err
	}
	event, err := o.requiredString("event")
	if err != nil {
		return Envelope{}, err
	}
	version, _, err := o.optionalString("version")
	if err != nil {
		return Envelope{}, err
	}
	raw, ok := o.lookup("data")
	if !ok {
		return Envelope{}, missing("data")
	}
	if kind := jsonKind(raw); kind != "object" {
		return Envelope{}, mismatch("data", "object", kind)
	}
	return Envelope{Event: event, Version: version, Data: raw}, nil
}

// LogEvent decodes the data object of a "log" envelope
func LogEvent(data json.RawMessage) (models.LogEvent, error) {
	return result(logEvent(data))
}

func logEvent(data json.RawMessage) (models.LogEvent, *Error) {
	o, err := asObject(data)
	if err != nil {
		return models.LogEvent{}, err.within("data")
	}
	payload, err := o.requiredString("payload")
	if err != nil {
		return models.LogEvent{}, err.within("data")
	}
	return models.LogEvent{Payload: payload}, nil
}
