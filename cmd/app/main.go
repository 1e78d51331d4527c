// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/envseal/cmd/app/commands"
	cryptoDomain "github.com/allisson/envseal/internal/crypto/domain"
)

var version = "1.0.0"

func main() {
	cmd := &cli.Command{
		Name:    "envseal",
		Usage:   "Protect secret values in key=value configuration files",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "Start the HTTP API server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunServer(ctx, version)
				},
			},
			{
				Name:  "generate-key",
				Usage: "Generate a new random master secret",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "bits",
						Aliases: []string{"b"},
						Value:   cryptoDomain.DefaultKeyBits,
						Usage:   "Key length in bits (multiple of 8, at least 128)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunGenerateKey(int(cmd.Int("bits")), commands.DefaultIO())
				},
			},
			{
				Name:  "hash-token",
				Usage: "Hash an API token for the API_TOKEN_HASH setting",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "token",
						Aliases: []string{"t"},
						Value:   "",
						Usage:   "Plain token to hash (omit to generate a new one)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunHashToken(cmd.String("token"), commands.DefaultIO())
				},
			},
			{
				Name:  "encrypt-file",
				Usage: "Encrypt every value of a key=value configuration file in place",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Required: true,
						Usage:    "Path of the configuration file",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunEncryptFile(ctx, cmd.String("file"), commands.DefaultIO())
				},
			},
			{
				Name:  "decrypt-file",
				Usage: "Decrypt every envelope of a protected configuration file in place",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Required: true,
						Usage:    "Path of the configuration file",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunDecryptFile(ctx, cmd.String("file"), commands.DefaultIO())
				},
			},
			{
				Name:  "encrypt-value",
				Usage: "Encrypt a single value and print the envelope",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "value",
						Aliases:  []string{"v"},
						Required: true,
						Usage:    "Value to protect",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunEncryptValue(ctx, cmd.String("value"), commands.DefaultIO())
				},
			},
			{
				Name:  "decrypt-value",
				Usage: "Decrypt a single envelope and print the value",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "envelope",
						Aliases:  []string{"e"},
						Required: true,
						Usage:    "Envelope text to recover",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunDecryptValue(ctx, cmd.String("envelope"), commands.DefaultIO())
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
