// Package timelineutil implements the match-timeline transform pipeline:
// identity mapping, delta encoding, derived-field enrichment, sparsification
// and phase segmentation. The transforms are pure in-memory operations; the
// expected pipeline order is MapIdentities, DeltaEncode, Enrich, Sparsify.
package timelineutil

import (
	"fmt"
	"strconv"
)

// protectedKeys are structurally significant keys that sparsification keeps
// even when their value is empty (ids, coordinates, type tags).
var protectedKeys = map[string]struct{}{
	"participantId": {},
	"timestamp":     {},
	"type":          {},
	"level":         {},
	"itemId":        {},
	"creatorId":     {},
	"killerId":      {},
	"victimId":      {},
	"position":      {},
	"x":             {},
	"y":             {},
}

func isEmptyValue(v any) bool {
	switch value := v.(type) {
	case nil:
		return true
	case float64:
		return value == 0
	case int:
		return value == 0
	case int64:
		return value == 0
	case string:
		return value == ""
	case map[string]any:
		return len(value) == 0
	case []any:
		return len(value) == 0
	}
	return false
}

func asInt64(v any) (int64, bool) {
	switch value := v.(type) {
	case float64:
		return int64(value), true
	case int64:
		return value, true
	case int:
		return int64(value), true
	}
	return 0, false
}

func asFloat64(v any) (float64, bool) {
	switch value := v.(type) {
	case float64:
		return value, true
	case int64:
		return float64(value), true
	case int:
		return float64(value), true
	}
	return 0, false
}

// formatScalar renders a JSON leaf the way it appears in serialized output,
// so integral floats print without a trailing ".0".
func formatScalar(v any) string {
	switch value := v.(type) {
	case nil:
		return "null"
	case string:
		return value
	case bool:
		return strconv.FormatBool(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(value, 10)
	case int:
		return strconv.Itoa(value)
	}
	return fmt.Sprint(v)
}
