package model

// PhaseInfo records the boundaries and size of one phase segment. The
// snake_case keys are part of the persisted artifact format.
type PhaseInfo struct {
	PhaseName     string  `json:"phase_name"`
	PhaseStartMs  int64   `json:"phase_start_ms"`
	PhaseEndMs    int64   `json:"phase_end_ms"`
	PhaseStartMin float64 `json:"phase_start_min"`
	PhaseEndMin   float64 `json:"phase_end_min"`
	NumFrames     int     `json:"num_frames"`
}

// PhaseTimeline is one named minute-range slice of a timeline, carrying the
// match-level pass-through fields of the source timeline.
type PhaseTimeline struct {
	Metadata  map[string]any `json:"metadata,omitempty"`
	Info      *TimelineInfo  `json:"info"`
	PhaseInfo *PhaseInfo     `json:"phase_info"`
}
