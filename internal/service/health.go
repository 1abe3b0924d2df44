package service

import (
	"context"

	"github.com/riftcoach/backend/internal/repo"
)

type Health struct {
	artifact *repo.Artifact
}

func NewHealth(artifact *repo.Artifact) *Health {
	return &Health{artifact: artifact}
}

// Ping reports whether the service's dependencies answer.
func (s *Health) Ping(ctx context.Context) error {
	return s.artifact.Reachable(ctx)
}
