package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/deckhand-app/deckhand/pkg/cli/config"
)

func cmdValidate() *cli.Command {
	var boardCfg config.Board

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate the board template configuration file",
		Flags:   boardCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			ok := color.New(color.FgGreen).FprintfFunc()
			warn := color.New(color.FgYellow).FprintfFunc()
			fail := color.New(color.FgRed, color.Bold).FprintfFunc()

			if boardCfg.Path() == "" {
				warn(os.Stdout, "no board config given, built-in defaults apply\n")
			}

			boardConfig, err := boardCfg.Configure()
			if err != nil {
				fail(os.Stderr, "validation failed: %s\n", err.Error())
				return goerr.Wrap(err, "board configuration validation failed")
			}

			ok(os.Stdout, "board configuration OK\n")
			fmt.Printf("  default columns:       %v\n", boardConfig.DefaultColumns)
			fmt.Printf("  message history limit: %d\n", boardConfig.MessageHistoryLimit)

			return nil
		},
	}
}
