package service

import (
	"context"

	"github.com/pkg/errors"
	"github.com/pkoukk/tiktoken-go"

	"github.com/riftcoach/backend/internal/repo"
)

const tokenEncoding = "cl100k_base"

// TokenReport sizes one artifact for prompt budgeting.
type TokenReport struct {
	Key           string  `json:"key"`
	Bytes         int     `json:"bytes"`
	Characters    int     `json:"characters"`
	Tokens        int     `json:"tokens"`
	CharsPerToken float64 `json:"charsPerToken"`
}

// Tokens measures artifacts against the text-generation token budget.
type Tokens struct {
	artifact *repo.Artifact
	encoder  *tiktoken.Tiktoken
}

func NewTokens(artifact *repo.Artifact) (*Tokens, error) {
	encoder, err := tiktoken.GetEncoding(tokenEncoding)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load token encoding")
	}
	return &Tokens{
		artifact: artifact,
		encoder:  encoder,
	}, nil
}

// CountArtifact reports the size of a stored artifact in bytes, characters
// and tokens.
func (s *Tokens) CountArtifact(ctx context.Context, key string) (*TokenReport, error) {
	data, err := s.artifact.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return s.Count(key, string(data)), nil
}

func (s *Tokens) Count(key, text string) *TokenReport {
	tokens := len(s.encoder.Encode(text, nil, nil))
	report := &TokenReport{
		Key:        key,
		Bytes:      len(text),
		Characters: len([]rune(text)),
		Tokens:     tokens,
	}
	if tokens > 0 {
		report.CharsPerToken = float64(report.Characters) / float64(tokens)
	}
	return report
}
