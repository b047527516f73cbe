package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/newtonic3d/estimatevault/cmd/app/commands"
	"github.com/newtonic3d/estimatevault/internal/app"
	"github.com/newtonic3d/estimatevault/internal/config"
	apperrors "github.com/newtonic3d/estimatevault/internal/errors"
	estimateUseCase "github.com/newtonic3d/estimatevault/internal/estimate/usecase"
)

func getAuthCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-client",
			Usage: "Create a new API client",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Human-readable client name",
				},
				&cli.BoolFlag{
					Name:    "active",
					Aliases: []string{"a"},
					Value:   true,
					Usage:   "Whether the client can authenticate immediately",
				},
				&cli.BoolFlag{
					Name:  "admin",
					Value: false,
					Usage: "Grant access to the estimate vault",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				clientUseCase, err := container.ClientUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateClient(
					ctx,
					clientUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("name"),
					cmd.Bool("active"),
					cmd.Bool("admin"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "clean-expired-tokens",
			Usage: "Delete expired bearer and file access tokens older than specified days",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:     "days",
					Aliases:  []string{"d"},
					Required: true,
					Usage:    "Delete tokens that expired more than this many days ago",
				},
				&cli.BoolFlag{
					Name:    "dry-run",
					Aliases: []string{"n"},
					Value:   false,
					Usage:   "Show how many tokens would be deleted without deleting",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()
				logger := container.Logger()

				tokenUseCase, err := container.TokenUseCase()
				if err != nil {
					return err
				}

				var fileTokens estimateUseCase.EstimateUseCase
				useCase, err := container.EstimateUseCase()
				switch {
				case err == nil:
					fileTokens = useCase
				case errors.Is(err, apperrors.ErrUnavailable):
					logger.Warn("estimate vault not configured, skipping file tokens", slog.Any("error", err))
				default:
					return err
				}

				return commands.RunCleanExpiredTokens(
					ctx,
					tokenUseCase,
					fileTokens,
					logger,
					commands.DefaultIO().Writer,
					int(cmd.Int("days")),
					cmd.Bool("dry-run"),
					cmd.String("format"),
				)
			},
		},
	}
}
