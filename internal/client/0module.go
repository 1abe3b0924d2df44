package client

import "go.uber.org/fx"

func Module() fx.Option {
	return fx.Module("client", fx.Provide(
		NewRiot,
		NewElevenLabs,
	))
}
