package service

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"

	"github.com/riftcoach/backend/internal/app/appconfig"
	"github.com/riftcoach/backend/internal/pkg/rcerr"
)

// TextGenerator produces free-form text from a prompt. The analysis pipeline
// only depends on this interface; the production implementation is backed by
// the OpenAI Responses API.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type openAIGenerator struct {
	client    openai.Client
	model     string
	maxTokens int64
}

func NewTextGenerator(conf *appconfig.Config) TextGenerator {
	return &openAIGenerator{
		client:    openai.NewClient(option.WithAPIKey(conf.OpenAIAPIKey)),
		model:     conf.AnalysisModel,
		maxTokens: conf.AnalysisMaxTokens,
	}
}

func (g *openAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Responses.New(ctx, responses.ResponseNewParams{
		Model:           g.model,
		MaxOutputTokens: openai.Int(g.maxTokens),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: openai.String(prompt),
		},
	})
	if err != nil {
		return "", rcerr.ErrUpstream.Msg("text generation failed: %s", err)
	}

	text := resp.OutputText()
	if text == "" {
		return "", rcerr.ErrUpstream.Msg("text generation returned an empty response")
	}
	return text, nil
}
