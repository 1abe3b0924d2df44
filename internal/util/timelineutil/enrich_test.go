package timelineutil

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/riftcoach/backend/internal/model"
)

func TestFormatTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ms   int64
		want string
	}{
		{0, "0:00:000"},
		{330500, "5:30:500"},
		{3675000, "61:15:000"},
		{59999, "0:59:999"},
		{60000, "1:00:000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatTimestamp(tt.ms))
	}
}

func TestSideFromPosition(t *testing.T) {
	t.Parallel()

	side, ok := SideFromPosition(map[string]any{"x": float64(1000), "y": float64(1000)})
	assert.True(t, ok)
	assert.Equal(t, "Blue", side)

	side, ok = SideFromPosition(map[string]any{"x": float64(10000), "y": float64(10000)})
	assert.True(t, ok)
	assert.Equal(t, "Red", side)

	// boundary: sum of exactly 14000 falls on the Red half
	side, ok = SideFromPosition(map[string]any{"x": float64(7000), "y": float64(7000)})
	assert.True(t, ok)
	assert.Equal(t, "Red", side)

	_, ok = SideFromPosition(map[string]any{"x": float64(7000)})
	assert.False(t, ok)
}

func enrichFixture() *model.Timeline {
	return &model.Timeline{Info: &model.TimelineInfo{
		Frames: []*model.Frame{
			{
				Timestamp: 60000,
				Events: []model.Event{
					{"type": "ITEM_PURCHASED", "timestamp": float64(61000)},
					{"type": "WARD_PLACED", "timestamp": float64(62000), "position": map[string]any{"x": float64(900), "y": float64(800)}},
				},
				ParticipantFrames: map[string]model.ParticipantFrame{
					"1": {"position": map[string]any{"x": float64(12000), "y": float64(11000)}},
				},
			},
		},
	}}
}

func TestEnrich(t *testing.T) {
	t.Parallel()

	tl := Enrich(enrichFixture())

	events := tl.Info.Frames[0].Events
	assert.Equal(t, "1:01:000", events[0]["formattedTimestamp"])
	assert.NotContains(t, events[0], "isOnSide")
	assert.Equal(t, "1:02:000", events[1]["formattedTimestamp"])
	assert.Equal(t, "Blue", events[1]["isOnSide"])

	pf := tl.Info.Frames[0].ParticipantFrames["1"]
	assert.Equal(t, "Red", pf["isOnSide"])
}

func TestEnrichIdempotent(t *testing.T) {
	t.Parallel()

	once := Enrich(enrichFixture())
	twice := Enrich(Enrich(enrichFixture()))
	assert.Equal(t, once, twice)
	assert.False(t, NeedsEnrichment(twice))
}

func TestNeedsEnrichment(t *testing.T) {
	t.Parallel()

	tl := enrichFixture()
	assert.True(t, NeedsEnrichment(tl))

	Enrich(tl)
	assert.False(t, NeedsEnrichment(tl))

	// empty timelines have nothing to enrich
	assert.False(t, NeedsEnrichment(&model.Timeline{Info: &model.TimelineInfo{}}))
}

func TestEnsureEnriched(t *testing.T) {
	t.Parallel()

	tl := EnsureEnriched(enrichFixture())
	assert.False(t, NeedsEnrichment(tl))
	assert.Equal(t, tl, EnsureEnriched(tl))
}
