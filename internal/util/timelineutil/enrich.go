package timelineutil

import (
	"fmt"

	"github.com/riftcoach/backend/internal/model"
)

// sideThreshold splits the map along its diagonal: the map center sits near
// (7000, 7000), so coordinate sums below 2*7000 fall on the Blue half. This
// approximates half-map residency, not actual team assignment.
const sideThreshold = 14000

// FormatTimestamp renders milliseconds since game start as
// "minutes:seconds:milliseconds", e.g. 330500 -> "5:30:500". Minutes are not
// zero-padded and have no upper bound (3675000 -> "61:15:000").
func FormatTimestamp(ms int64) string {
	totalSeconds := ms / 1000
	return fmt.Sprintf("%d:%02d:%03d", totalSeconds/60, totalSeconds%60, ms%1000)
}

// SideFromPosition labels a map position "Blue" or "Red" by the coordinate-sum
// heuristic. Returns false when x or y is absent.
func SideFromPosition(position map[string]any) (string, bool) {
	x, okX := asFloat64(position["x"])
	y, okY := asFloat64(position["y"])
	if !okX || !okY {
		return "", false
	}
	if x+y < sideThreshold {
		return SideBlue, true
	}
	return SideRed, true
}

// Enrich adds a formattedTimestamp field to every event carrying a raw
// millisecond timestamp, and an isOnSide field to every event and participant
// frame carrying a position. Idempotent: re-applying recomputes the same
// values.
//
// Mutates the timeline in place and returns it.
func Enrich(t *model.Timeline) *model.Timeline {
	for _, frame := range t.Frames() {
		for _, event := range frame.Events {
			if ts, ok := asInt64(event["timestamp"]); ok {
				event["formattedTimestamp"] = FormatTimestamp(ts)
			}
			if position, ok := event["position"].(map[string]any); ok {
				if side, ok := SideFromPosition(position); ok {
					event["isOnSide"] = side
				}
			}
		}
		for _, pf := range frame.ParticipantFrames {
			if position, ok := pf["position"].(map[string]any); ok {
				if side, ok := SideFromPosition(position); ok {
					pf["isOnSide"] = side
				}
			}
		}
	}
	return t
}

// NeedsEnrichment reports whether the timeline still lacks derived fields.
// Cheap check: only the first 5 frames, and within each only the first 3
// events, are inspected.
func NeedsEnrichment(t *model.Timeline) bool {
	frames := t.Frames()
	for _, frame := range frames[:min(len(frames), 5)] {
		for _, event := range frame.Events[:min(len(frame.Events), 3)] {
			if _, ok := event["timestamp"]; ok {
				if _, has := event["formattedTimestamp"]; !has {
					return true
				}
			}
			if _, ok := event["position"]; ok {
				if _, has := event["isOnSide"]; !has {
					return true
				}
			}
		}
		for _, pf := range frame.ParticipantFrames {
			if _, ok := pf["position"]; ok {
				if _, has := pf["isOnSide"]; !has {
					return true
				}
			}
		}
	}
	return false
}

// EnsureEnriched applies enrichment only when the timeline needs it, for
// persisted artifacts that may predate the derived fields.
func EnsureEnriched(t *model.Timeline) *model.Timeline {
	if NeedsEnrichment(t) {
		return Enrich(t)
	}
	return t
}
