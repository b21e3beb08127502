package credential

import (
	"bytes"
	"encoding/json"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Fixed user-facing validation messages.
const (
	MsgInvalidOptions   = "Additional Options must contain valid JSON."
	MsgInvalidQueryArgs = "Query arguments must be valid JSON."
)

// UserError is a validation failure whose message is shown to the submitter verbatim.
type UserError struct {
	Message string
}

func (e *UserError) Error() string {
	return e.Message
}

// NormalizeOptions validates the raw "options" text. Empty input yields "".
// Valid JSON is returned in compact form with key order preserved; invalid
// JSON yields a *UserError and the raw value must not be persisted.
func NormalizeOptions(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(raw)); err != nil {
		return "", &UserError{Message: MsgInvalidOptions}
	}
	return buf.String(), nil
}

// OptionsMap decodes normalized options into a map. Anything other than a
// JSON object yields an empty map.
func OptionsMap(normalized string) map[string]any {
	out := map[string]any{}
	if normalized == "" {
		return out
	}
	var decoded any
	if err := json.Unmarshal([]byte(normalized), &decoded); err != nil {
		return out
	}
	if m, ok := decoded.(map[string]any); ok {
		return m
	}
	return out
}

// DecodeJSONArgument decodes a filter or projection argument. Empty input
// and valid JSON that is not an object both yield an empty document; invalid
// JSON yields a *UserError. Objects are read as relaxed extended JSON so
// {"_id":{"$oid":"..."}} becomes an ObjectID.
func DecodeJSONArgument(raw string) (bson.D, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return bson.D{}, nil
	}

	var probe any
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		return nil, &UserError{Message: MsgInvalidQueryArgs}
	}
	if _, ok := probe.(map[string]any); !ok {
		return bson.D{}, nil
	}

	var doc bson.D
	if err := bson.UnmarshalExtJSON([]byte(raw), false, &doc); err != nil {
		// Plain JSON that happens to use a reserved "$" key shape.
		doc = bson.D{}
		for k, v := range probe.(map[string]any) {
			doc = append(doc, bson.E{Key: k, Value: v})
		}
	}
	return doc, nil
}
