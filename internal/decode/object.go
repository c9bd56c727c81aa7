package decode

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// jsonKind names the JSON type of a raw value by its first byte
func jsonKind(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "nothing"
	}
	switch c := trimmed[0]; {
	case c == '{':
		return "object"
	case c == '[':
		return "array"
	case c == '"':
		return "string"
	case c == 't' || c == 'f':
		return "boolean"
	case c == 'n':
		return "null"
	case c == '-' || (c >= '0' && c <= '9'):
		return "number"
	default:
		return "unknown"
	}
}

func isNull(raw json.RawMessage) bool {
	return jsonKind(raw) == "null"
}

// object is a JSON object whose fields are decoded on demand
type object map[string]json.RawMessage

// parseObject reads a whole document that must be a JSON object
func parseObject(data []byte) (object, *Error) {
	if !json.Valid(data) {
		return nil, invalidFormat("payload is not valid JSON")
	}
	if kind := jsonKind(data); kind != "object" {
		return nil, invalidFormat("expected a JSON object, got %s", kind)
	}
	var o object
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, invalidFormat("%v", err)
	}
	return o, nil
}

// parseArray reads a whole document that must be a JSON array
func parseArray(data []byte) ([]json.RawMessage, *Error) {
	if !json.Valid(data) {
		return nil, invalidFormat("payload is not valid JSON")
	}
	if kind := jsonKind(data); kind != "array" {
		return nil, invalidFormat("expected a JSON array, got %s", kind)
	}
	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		return nil, invalidFormat("%v", err)
	}
	return elements, nil
}

// asObject reads an already validated value that must be an object
func asObject(raw json.RawMessage) (object, *Error) {
	if kind := jsonKind(raw); kind != "object" {
		return nil, mismatch("", "object", kind)
	}
	var o object
	if err := json.Unmarshal(raw, &o); err != nil {
		return nil, mismatch("", "object", err.Error())
	}
	return o, nil
}

// lookup returns the raw value of a field. Null counts as absent.
func (o object) lookup(name string) (json.RawMessage, bool) {
	raw, ok := o[name]
	if !ok || isNull(raw) {
		return nil, false
	}
	return raw, true
}

func (o object) requiredString(name string) (string, *Error) {
	s, ok, err := o.optionalString(name)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", missing(name)
	}
	return s, nil
}

func (o object) optionalString(name string) (string, bool, *Error) {
	raw, ok := o.lookup(name)
	if !ok {
		return "", false, nil
	}
	if kind := jsonKind(raw); kind != "string" {
		return "", false, mismatch(name, "string", kind)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false, mismatch(name, "string", err.Error())
	}
	return s, true, nil
}

func (o object) optionalBool(name string) (bool, *Error) {
	raw, ok := o.lookup(name)
	if !ok {
		return false, nil
	}
	if kind := jsonKind(raw); kind != "boolean" {
		return false, mismatch(name, "boolean", kind)
	}
	return bytes.Equal(bytes.TrimSpace(raw), []byte("true")), nil
}

func (o object) requiredInt(name string) (int, *Error) {
	raw, ok := o.lookup(name)
	if !ok {
		return 0, missing(name)
	}
	if kind := jsonKind(raw); kind != "number" {
		return 0, mismatch(name, "integer", kind)
	}
	n, err := strconv.Atoi(string(bytes.TrimSpace(raw)))
	if err != nil {
		return 0, mismatch(name, "integer", string(raw))
	}
	return n, nil
}

func (o object) optionalUint(name string) (*uint64, *Error) {
	raw, ok := o.lookup(name)
	if !ok {
		return nil, nil
	}
	if kind := jsonKind(raw); kind != "number" {
		return nil, mismatch(name, "unsigned integer", kind)
	}
	n, err := strconv.ParseUint(string(bytes.TrimSpace(raw)), 10, 64)
	if err != nil {
		return nil, mismatch(name, "unsigned integer", string(raw))
	}
	return &n, nil
}

// optionalStrings reads an array of strings. Absent yields an empty list.
func (o object) optionalStrings(name string) ([]string, *Error) {
	raw, ok := o.lookup(name)
	if !ok {
		return []string{}, nil
	}
	if kind := jsonKind(raw); kind != "array" {
		return nil, mismatch(name, "array of strings", kind)
	}
	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, mismatch(name, "array of strings", err.Error())
	}
	values := make([]string, 0, len(elements))
	for i, el := range elements {
		if kind := jsonKind(el); kind != "string" {
			return nil, mismatch(name+index(i), "string", kind)
		}
		var s string
		if err := json.Unmarshal(el, &s); err != nil {
			return nil, mismatch(name+index(i), "string", err.Error())
		}
		values = append(values, s)
	}
	return values, nil
}

// optionalObject reads a nested object field
func (o object) optionalObject(name string) (object, bool, *Error) {
	raw, ok := o.lookup(name)
	if !ok {
		return nil, false, nil
	}
	nested, err := asObject(raw)
	if err != nil {
		return nil, false, err.within(name)
	}
	return nested, true, nil
}
