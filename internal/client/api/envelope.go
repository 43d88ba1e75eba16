package api

import (
	"bytes"
	"encoding/json"

	"newsdesk/internal/client/models"
)

// envelope covers the two known wrapper shapes around an item sequence.
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Posts json.RawMessage `json:"posts"`
}

// DecodeItems extracts a flat ordered item sequence from a raw response
// body. Known shapes, in priority order: the body itself is an array; the
// body has a "data" array; the body has a "posts" array. Anything else is a
// ParseError so callers can fall back gracefully.
func DecodeItems(body []byte) ([]models.Partial, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, &ParseError{Reason: "empty body"}
	}

	if trimmed[0] == '[' {
		var items []models.Partial
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, &ParseError{Reason: "malformed item array: " + err.Error()}
		}
		return items, nil
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, &ParseError{Reason: "malformed body: " + err.Error()}
	}

	for _, raw := range []json.RawMessage{env.Data, env.Posts} {
		if len(raw) == 0 {
			continue
		}
		inner := bytes.TrimSpace(raw)
		if len(inner) == 0 || inner[0] != '[' {
			continue
		}
		var items []models.Partial
		if err := json.Unmarshal(inner, &items); err != nil {
			return nil, &ParseError{Reason: "malformed wrapped array: " + err.Error()}
		}
		return items, nil
	}

	return nil, &ParseError{Reason: "no item array in body"}
}

// DecodeItem extracts a single item record: either the body is the item
// object itself, or it sits under a "data" wrapper.
func DecodeItem(body []byte) (*models.Partial, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, &ParseError{Reason: "body is not an object"}
	}

	var direct models.Partial
	if err := json.Unmarshal(trimmed, &direct); err == nil && direct.ID != "" {
		return &direct, nil
	}

	var wrapped struct {
		Data *models.Partial `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err == nil && wrapped.Data != nil && wrapped.Data.ID != "" {
		return wrapped.Data, nil
	}

	return nil, &ParseError{Reason: "no item object in body"}
}
