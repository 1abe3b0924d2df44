package cli

import (
	"context"

	"go.uber.org/fx"

	"github.com/riftcoach/backend/internal/app"
	"github.com/riftcoach/backend/internal/app/appcontext"
)

// Populate builds the application graph in CLI mode and extracts the
// requested dependencies out of it. The HTTP listener is not started.
func Populate(targets ...any) error {
	return app.New(appcontext.Declare(appcontext.EnvCLI), fx.Populate(targets...)).
		Start(context.Background())
}
