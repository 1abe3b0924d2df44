package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/riftcoach/backend/internal/app/appconfig"
	"github.com/riftcoach/backend/internal/pkg/rcerr"
)

const (
	elevenLabsBaseURL = "https://api.elevenlabs.io"
	speechModelID     = "eleven_multilingual_v2"
	speechFormat      = "mp3_44100_128"

	speechRequestTimeout = time.Minute * 2
)

// ElevenLabs renders text to speech through the ElevenLabs REST API.
type ElevenLabs struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewElevenLabs(conf *appconfig.Config) *ElevenLabs {
	return &ElevenLabs{
		baseURL: elevenLabsBaseURL,
		apiKey:  conf.ElevenLabsAPIKey,
		client: &http.Client{
			Timeout: speechRequestTimeout,
		},
	}
}

// Enabled reports whether an API key is configured. Audio rendering is
// skipped entirely when it is not.
func (c *ElevenLabs) Enabled() bool {
	return c.apiKey != ""
}

type synthesizeRequest struct {
	Text    string `json:"text"`
	ModelID string `json:"model_id"`
}

// Synthesize renders text with the given voice and returns the MP3 bytes.
func (c *ElevenLabs) Synthesize(ctx context.Context, voiceID, text string) ([]byte, error) {
	payload, err := json.Marshal(synthesizeRequest{Text: text, ModelID: speechModelID})
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/v1/text-to-speech/%s?output_format=%s",
		c.baseURL, url.PathEscape(voiceID), speechFormat)

	var audio []byte
	err = retry.Do(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
		if err != nil {
			return retry.Unrecoverable(err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("xi-api-key", c.apiKey)

		resp, err := c.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			audio = b
			return nil
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
			return rcerr.ErrUpstream.Msg("speech provider responded with status %d", resp.StatusCode)
		default:
			return retry.Unrecoverable(rcerr.ErrUpstream.Msg("speech provider responded with status %d: %s", resp.StatusCode, string(b)))
		}
	},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(time.Second*2),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Warn().
				Err(err).
				Uint("attempt", n).
				Msg("retrying speech synthesis request")
		}),
	)
	if err != nil {
		return nil, err
	}
	return audio, nil
}
