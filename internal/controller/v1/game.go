package v1

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"github.com/riftcoach/backend/internal/model"
	"github.com/riftcoach/backend/internal/server/svr"
	"github.com/riftcoach/backend/internal/service"
	"github.com/riftcoach/backend/internal/util/rekuest"
)

type Game struct {
	fx.In

	MatchService    *service.Match
	AnalysisService *service.Analysis
	SpeechService   *service.Speech
}

func RegisterGame(v1 *svr.V1, c Game) {
	v1.Post("/fetch-games", c.FetchGames)
	v1.Post("/analyze-games", c.AnalyzeGames)
	v1.Get("/voices", c.Voices)
}

func (c *Game) FetchGames(ctx *fiber.Ctx) error {
	var req model.FetchGamesRequest
	if err := rekuest.ValidBody(ctx, &req); err != nil {
		return err
	}

	resp, err := c.MatchService.FetchChampionGames(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(resp)
}

func (c *Game) AnalyzeGames(ctx *fiber.Ctx) error {
	var req model.AnalyzeGamesRequest
	if err := rekuest.ValidBody(ctx, &req); err != nil {
		return err
	}

	resp, err := c.AnalysisService.AnalyzeGames(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(resp)
}

func (c *Game) Voices(ctx *fiber.Ctx) error {
	return ctx.JSON(model.VoicesResponse{
		Voices: c.SpeechService.Voices(),
	})
}
