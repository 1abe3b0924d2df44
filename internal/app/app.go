package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/riftcoach/backend/internal/app/appconfig"
	"github.com/riftcoach/backend/internal/app/appcontext"
	"github.com/riftcoach/backend/internal/client"
	"github.com/riftcoach/backend/internal/controller"
	"github.com/riftcoach/backend/internal/infra"
	"github.com/riftcoach/backend/internal/pkg/logger"
	"github.com/riftcoach/backend/internal/repo"
	"github.com/riftcoach/backend/internal/server"
	"github.com/riftcoach/backend/internal/service"
)

func Options(ctx appcontext.Ctx, additionalOpts ...fx.Option) []fx.Option {
	conf, err := appconfig.Parse(ctx)
	if err != nil {
		panic(err)
	}

	// logger and configuration are the only two things that are not in the fx graph
	// because some other packages need them to be initialized before fx starts
	logger.Configure(conf)

	baseOpts := []fx.Option{
		// fx meta
		fx.WithLogger(logger.Fx),

		// Misc
		fx.Supply(conf),

		// Infrastructures
		infra.Module(),

		// Servers
		server.Module(),

		// Collaborator clients
		client.Module(),

		// Repositories
		repo.Module(),

		// Services
		service.Module(),

		// Global Singleton Inits: Keep those before controllers to ensure they are initialized
		// before controllers are registered as controllers are also fx#Invoke functions which
		// are called in the order of their registration.
		fx.Invoke(infra.SentryInit),

		// Controllers
		controller.Module(),

		// fx Extra Options
		fx.StartTimeout(time.Second * 10),
		// StopTimeout is not typically needed, since we're using fiber's Shutdown(),
		// in which fiber has its own IdleTimeout for controlling the shutdown timeout.
		// It acts as a countermeasure in case the fiber app is not properly shutting down.
		fx.StopTimeout(time.Minute * 5),
	}

	if ctx.Env == appcontext.EnvServer {
		baseOpts = append(baseOpts, fx.Invoke(server.Serve))
	}

	return append(baseOpts, additionalOpts...)
}

func New(ctx appcontext.Ctx, additionalOpts ...fx.Option) *fx.App {
	return fx.New(Options(ctx, additionalOpts...)...)
}
