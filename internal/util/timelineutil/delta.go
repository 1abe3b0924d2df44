package timelineutil

import (
	"fmt"
	"reflect"

	"github.com/rs/zerolog/log"

	"github.com/riftcoach/backend/internal/model"
)

// carriedFields are identity/structural participant-frame fields exempt from
// delta encoding; they pass through every frame unmodified.
var carriedFields = map[string]struct{}{
	"championName":     {},
	"teamStartingSide": {},
	"position":         {},
	"isOnSide":         {},
}

// deltaState holds, per participant identity, the last-seen value of every
// scalar field and of every field inside a nested stat group. Values survive
// frames in which the field (or the whole participant) is absent: a field
// that disappears and reappears is compared against its last known value,
// not treated as first-seen again.
type deltaState map[string]map[string]any

func (s deltaState) forIdentity(identity string) map[string]any {
	prev, ok := s[identity]
	if !ok {
		prev = map[string]any{}
		s[identity] = prev
	}
	return prev
}

func formatDelta(prev, cur any) string {
	return fmt.Sprintf("%s -> %s", formatScalar(prev), formatScalar(cur))
}

// DeltaEncode rewrites every participant frame so each stat field carries
// either its raw value (first occurrence for that participant), a
// "previous -> current" transition string (value changed), or nothing at all
// (value unchanged). Nested stat groups are encoded per inner field and
// omitted entirely when nothing inside changed. Runs strictly in frame order;
// must be called after MapIdentities since state is keyed by champion name.
// A participant frame with no identity is logged and carried through
// unencoded rather than failing the match.
//
// Mutates the timeline in place and returns it.
func DeltaEncode(t *model.Timeline) *model.Timeline {
	state := deltaState{}

	for _, frame := range t.Frames() {
		for slot, pf := range frame.ParticipantFrames {
			identity, ok := pf["championName"].(string)
			if !ok || identity == "" {
				log.Warn().
					Str("slot", slot).
					Int64("frameTimestamp", frame.Timestamp).
					Msg("participant frame has no identity; skipping delta encoding for it")
				continue
			}

			prev := state.forIdentity(identity)
			encoded := make(model.ParticipantFrame, len(pf))

			for key, value := range pf {
				if _, carried := carriedFields[key]; carried {
					encoded[key] = value
					continue
				}

				if group, isGroup := value.(map[string]any); isGroup {
					prevGroup, _ := prev[key].(map[string]any)
					if prevGroup == nil {
						prevGroup = map[string]any{}
						prev[key] = prevGroup
					}
					encodedGroup := map[string]any{}
					for gk, gv := range group {
						pv, seen := prevGroup[gk]
						switch {
						case !seen:
							encodedGroup[gk] = gv
						case !reflect.DeepEqual(pv, gv):
							encodedGroup[gk] = formatDelta(pv, gv)
						}
						prevGroup[gk] = gv
					}
					if len(encodedGroup) > 0 {
						encoded[key] = encodedGroup
					}
					continue
				}

				pv, seen := prev[key]
				switch {
				case !seen:
					encoded[key] = value
				case !reflect.DeepEqual(pv, value):
					encoded[key] = formatDelta(pv, value)
				}
				prev[key] = value
			}

			frame.ParticipantFrames[slot] = encoded
		}
	}

	return t
}
