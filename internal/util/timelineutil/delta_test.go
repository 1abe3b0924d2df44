package timelineutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riftcoach/backend/internal/model"
)

func deltaFixture(frames ...map[string]model.ParticipantFrame) *model.Timeline {
	tl := &model.Timeline{Info: &model.TimelineInfo{FrameInterval: 60000}}
	for i, pfs := range frames {
		tl.Info.Frames = append(tl.Info.Frames, &model.Frame{
			Timestamp:         int64(i) * 60000,
			ParticipantFrames: pfs,
		})
	}
	return tl
}

func TestDeltaEncodeFirstSeenAndUnchanged(t *testing.T) {
	t.Parallel()

	tl := deltaFixture(
		map[string]model.ParticipantFrame{
			"1": {"championName": "Lillia", "totalGold": float64(500)},
		},
		map[string]model.ParticipantFrame{
			"1": {"championName": "Lillia", "totalGold": float64(500)},
		},
	)

	DeltaEncode(tl)

	first := tl.Info.Frames[0].ParticipantFrames["1"]
	assert.Equal(t, float64(500), first["totalGold"])

	second := tl.Info.Frames[1].ParticipantFrames["1"]
	assert.NotContains(t, second, "totalGold")
	assert.Equal(t, "Lillia", second["championName"])
}

func TestDeltaEncodeChangedValue(t *testing.T) {
	t.Parallel()

	tl := deltaFixture(
		map[string]model.ParticipantFrame{
			"1": {"championName": "Lillia", "totalGold": float64(500)},
		},
		map[string]model.ParticipantFrame{
			"1": {"championName": "Lillia", "totalGold": float64(650)},
		},
	)

	DeltaEncode(tl)

	second := tl.Info.Frames[1].ParticipantFrames["1"]
	assert.Equal(t, "500 -> 650", second["totalGold"])
}

func TestDeltaEncodeNestedGroups(t *testing.T) {
	t.Parallel()

	tl := deltaFixture(
		map[string]model.ParticipantFrame{
			"1": {
				"championName": "Lillia",
				"championStats": map[string]any{
					"abilityPower": float64(20),
					"armor":        float64(28),
				},
			},
		},
		map[string]model.ParticipantFrame{
			"1": {
				"championName": "Lillia",
				"championStats": map[string]any{
					"abilityPower": float64(45),
					"armor":        float64(28),
				},
			},
		},
		map[string]model.ParticipantFrame{
			"1": {
				"championName": "Lillia",
				"championStats": map[string]any{
					"abilityPower": float64(45),
					"armor":        float64(28),
				},
			},
		},
	)

	DeltaEncode(tl)

	second := tl.Info.Frames[1].ParticipantFrames["1"]
	require.Contains(t, second, "championStats")
	group := second["championStats"].(map[string]any)
	assert.Equal(t, "20 -> 45", group["abilityPower"])
	assert.NotContains(t, group, "armor")

	// nothing changed in the third frame, so the whole group is omitted
	third := tl.Info.Frames[2].ParticipantFrames["1"]
	assert.NotContains(t, third, "championStats")
}

func TestDeltaEncodeStateSurvivesGaps(t *testing.T) {
	t.Parallel()

	tl := deltaFixture(
		map[string]model.ParticipantFrame{
			"1": {"championName": "Lillia", "jungleMinionsKilled": float64(4)},
		},
		map[string]model.ParticipantFrame{
			"1": {"championName": "Lillia"},
		},
		map[string]model.ParticipantFrame{
			"1": {"championName": "Lillia", "jungleMinionsKilled": float64(4)},
		},
		map[string]model.ParticipantFrame{
			"1": {"championName": "Lillia", "jungleMinionsKilled": float64(12)},
		},
	)

	DeltaEncode(tl)

	// reappearing with the last known value is "unchanged", not first-seen
	third := tl.Info.Frames[2].ParticipantFrames["1"]
	assert.NotContains(t, third, "jungleMinionsKilled")

	fourth := tl.Info.Frames[3].ParticipantFrames["1"]
	assert.Equal(t, "4 -> 12", fourth["jungleMinionsKilled"])
}

func TestDeltaEncodeCarriesStructuralFields(t *testing.T) {
	t.Parallel()

	position := map[string]any{"x": float64(560), "y": float64(580)}
	tl := deltaFixture(
		map[string]model.ParticipantFrame{
			"1": {"championName": "Lillia", "teamStartingSide": "Blue", "position": position},
		},
		map[string]model.ParticipantFrame{
			"1": {"championName": "Lillia", "teamStartingSide": "Blue", "position": position},
		},
	)

	DeltaEncode(tl)

	for _, frame := range tl.Info.Frames {
		pf := frame.ParticipantFrames["1"]
		assert.Equal(t, "Lillia", pf["championName"])
		assert.Equal(t, "Blue", pf["teamStartingSide"])
		assert.Equal(t, position, pf["position"])
	}
}

func TestDeltaEncodeIndependentParticipants(t *testing.T) {
	t.Parallel()

	tl := deltaFixture(
		map[string]model.ParticipantFrame{
			"1": {"championName": "Lillia", "totalGold": float64(500)},
			"2": {"championName": "Ahri", "totalGold": float64(500)},
		},
		map[string]model.ParticipantFrame{
			"1": {"championName": "Lillia", "totalGold": float64(900)},
			"2": {"championName": "Ahri", "totalGold": float64(500)},
		},
	)

	DeltaEncode(tl)

	second := tl.Info.Frames[1].ParticipantFrames
	assert.Equal(t, "500 -> 900", second["1"]["totalGold"])
	assert.NotContains(t, second["2"], "totalGold")
}

func TestDeltaEncodeMissingIdentitySkipped(t *testing.T) {
	t.Parallel()

	tl := deltaFixture(
		map[string]model.ParticipantFrame{
			"1": {"totalGold": float64(500)},
		},
		map[string]model.ParticipantFrame{
			"1": {"totalGold": float64(500)},
		},
	)

	DeltaEncode(tl)

	// frames without an identity are carried through unencoded
	for _, frame := range tl.Info.Frames {
		assert.Equal(t, float64(500), frame.ParticipantFrames["1"]["totalGold"])
	}
}
