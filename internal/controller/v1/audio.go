package v1

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"github.com/riftcoach/backend/internal/pkg/rcerr"
	"github.com/riftcoach/backend/internal/repo"
	"github.com/riftcoach/backend/internal/server/svr"
)

type Audio struct {
	fx.In

	ArtifactRepo *repo.Artifact
}

func RegisterAudio(v1 *svr.V1, c Audio) {
	v1.Get("/audio/:champion/:filename", c.Serve)
}

func (c *Audio) Serve(ctx *fiber.Ctx) error {
	champion := ctx.Params("champion")
	filename := ctx.Params("filename")

	// only rendered reviews are served out of the artifact bucket
	if !strings.HasSuffix(filename, ".mp3") ||
		strings.Contains(champion, "..") || strings.Contains(filename, "..") {
		return rcerr.ErrInvalidReq.Msg("invalid audio artifact name")
	}

	audio, err := c.ArtifactRepo.Get(ctx.UserContext(), champion+"/"+filename)
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, "audio/mpeg")
	return ctx.Send(audio)
}
