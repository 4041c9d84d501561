package api

import (
	"bytes"
	"encoding/json"
)

// Page is the canonical form of a paged list response.
type Page[T any] struct {
	Items []T
	Total int
}

// envelope captures the pagination fields the backend may place next to a
// list at any nesting level.
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Total *int            `json:"total"`
	Count *int            `json:"count"`
}

// DecodePage resolves the backend's inconsistently nested list envelope into
// a Page. The list may sit two levels deep ({"data":{"data":[...]}}), one
// level deep ({"data":[...]}) or at the top level; deeper matches win. The
// total comes from a sibling "total" or "count" field, falling back to the
// item count. Malformed payloads yield an empty page, never an error.
func DecodePage[T any](body []byte) Page[T] {
	var outer envelope
	_ = json.Unmarshal(body, &outer)

	if len(outer.Data) > 0 {
		var inner envelope
		_ = json.Unmarshal(outer.Data, &inner)
		if items, ok := decodeList[T](inner.Data); ok {
			return Page[T]{Items: items, Total: pickTotal(inner.Total, inner.Count, len(items))}
		}
		if items, ok := decodeList[T](outer.Data); ok {
			return Page[T]{Items: items, Total: pickTotal(outer.Total, outer.Count, len(items))}
		}
	}

	if items, ok := decodeList[T](body); ok {
		return Page[T]{Items: items, Total: len(items)}
	}

	return Page[T]{Items: []T{}}
}

func decodeList[T any](raw json.RawMessage) ([]T, bool) {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	if items == nil {
		items = []T{}
	}
	return items, true
}

func pickTotal(total, count *int, fallback int) int {
	if total != nil {
		return *total
	}
	if count != nil {
		return *count
	}
	return fallback
}
