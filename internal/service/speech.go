package service

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/riftcoach/backend/internal/client"
	"github.com/riftcoach/backend/internal/pkg/observability"
	"github.com/riftcoach/backend/internal/repo"
)

// voices maps friendly names to provider voice ids, in presentation order.
var voices = []struct {
	Name string
	ID   string
}{
	{"george", "JBFqnCBsd6RMkjVDRZzb"},
	{"adam", "pNInz6obpgDQGcFmaJgB"},
	{"bill", "pqHfZKP75CvOlQylNhV4"},
	{"callum", "N2lVS1w4EtoT3dr4eOWO"},
	{"charlie", "IKne3meq5aSn9XLyUdCD"},
}

// Speech renders analysis text to MP3 artifacts.
type Speech struct {
	elevenLabs *client.ElevenLabs
	artifact   *repo.Artifact
}

func NewSpeech(elevenLabs *client.ElevenLabs, artifact *repo.Artifact) *Speech {
	return &Speech{
		elevenLabs: elevenLabs,
		artifact:   artifact,
	}
}

// Enabled reports whether the speech provider is configured.
func (s *Speech) Enabled() bool {
	return s.elevenLabs.Enabled()
}

// Voices lists the available voice names in presentation order.
func (s *Speech) Voices() []string {
	names := make([]string, len(voices))
	for i, v := range voices {
		names[i] = v.Name
	}
	return names
}

// VoiceID resolves a friendly voice name to its provider id, falling back to
// the first voice for unknown or empty names.
func (s *Speech) VoiceID(name string) string {
	for _, v := range voices {
		if v.Name == name {
			return v.ID
		}
	}
	return voices[0].ID
}

// Render synthesizes text with the given voice and persists the MP3 under key.
func (s *Speech) Render(ctx context.Context, key, voiceID, text string) error {
	timer := prometheus.NewTimer(observability.SpeechDuration)
	defer timer.ObserveDuration()

	audio, err := s.elevenLabs.Synthesize(ctx, voiceID, text)
	if err != nil {
		return err
	}
	return s.artifact.Put(ctx, key, audio, "audio/mpeg")
}
