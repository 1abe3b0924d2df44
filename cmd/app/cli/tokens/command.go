package tokens

import (
	"fmt"

	"github.com/urfave/cli/v2"

	cliapp "github.com/riftcoach/backend/cmd/app/cli"
	"github.com/riftcoach/backend/internal/service"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:      "tokens",
		Usage:     "report the token footprint of a stored artifact",
		ArgsUsage: "<artifact key>",
		Action:    run,
	}
}

func run(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("expected exactly one artifact key", 1)
	}

	var tokens *service.Tokens
	if err := cliapp.Populate(&tokens); err != nil {
		return err
	}

	report, err := tokens.CountArtifact(c.Context, c.Args().First())
	if err != nil {
		return err
	}

	fmt.Printf("key:             %s\n", report.Key)
	fmt.Printf("bytes:           %d\n", report.Bytes)
	fmt.Printf("characters:      %d\n", report.Characters)
	fmt.Printf("tokens:          %d\n", report.Tokens)
	fmt.Printf("chars per token: %.2f\n", report.CharsPerToken)
	return nil
}
