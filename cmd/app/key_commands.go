package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/iot-onboarding/cmd/app/commands"
	"github.com/allisson/iot-onboarding/internal/app"
	"github.com/allisson/iot-onboarding/internal/config"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-key",
			Usage: "Mint a new bootstrap key for device onboarding",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "group",
					Aliases: []string{"g"},
					Value:   "",
					Usage:   "Optional fleet group label (e.g., factory-line-1)",
				},
				&cli.IntFlag{
					Name:    "expires-in-days",
					Aliases: []string{"e"},
					Value:   0,
					Usage:   "Days until the key expires (1-365, 0 selects the default)",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				keyUseCase, err := container.BootstrapKeyUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateKey(
					ctx,
					keyUseCase,
					container.Logger(),
					cmd.String("group"),
					int(cmd.Int("expires-in-days")),
					cmd.String("format"),
					commands.DefaultIO(),
				)
			},
		},
	}
}
