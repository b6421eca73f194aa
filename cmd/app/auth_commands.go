package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/assettrack/cmd/app/commands"
	"github.com/allisson/assettrack/internal/app"
	"github.com/allisson/assettrack/internal/config"
)

func newFormatFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: 'text' or 'json'",
	}
}

func getAuthCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "authorize",
			Usage: "Evaluate the configured role table for a role, path and method",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "role",
					Aliases:  []string{"r"},
					Required: true,
					Usage:    "Role name as reported by the identity authority",
				},
				&cli.StringFlag{
					Name:     "path",
					Aliases:  []string{"p"},
					Required: true,
					Usage:    "Request path (e.g., /api/devices/)",
				},
				&cli.StringFlag{
					Name:    "method",
					Aliases: []string{"m"},
					Value:   "GET",
					Usage:   "HTTP method",
				},
				newFormatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				roleTable, err := container.RoleTable()
				if err != nil {
					return err
				}

				return commands.RunAuthorize(
					roleTable,
					commands.DefaultIO().Writer,
					cmd.String("role"),
					cmd.String("path"),
					cmd.String("method"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "resolve-identity",
			Usage: "Resolve a bearer token through the configured identity authority",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "token",
					Aliases:  []string{"t"},
					Required: true,
					Usage:    "Bearer token to resolve",
				},
				&cli.BoolFlag{
					Name:  "profile",
					Value: false,
					Usage: "Fetch the extended profile instead of the role lookup",
				},
				newFormatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				identityUseCase, err := container.IdentityUseCase()
				if err != nil {
					return err
				}

				return commands.RunResolveIdentity(
					ctx,
					identityUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("token"),
					cmd.Bool("profile"),
					cmd.String("format"),
				)
			},
		},
	}
}
