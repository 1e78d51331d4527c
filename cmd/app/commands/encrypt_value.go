package commands

import (
	"context"
	"fmt"

	"github.com/allisson/envseal/internal/app"
	"github.com/allisson/envseal/internal/config"
)

// RunEncryptValue encrypts a single value under the configured master secret
// and prints the envelope text.
func RunEncryptValue(ctx context.Context, value string, io IOTuple) error {
	cfg := config.Load()
	container := app.NewContainer(cfg)
	logger := container.Logger()
	defer closeContainer(container, logger)

	secret, err := container.MasterSecret(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve master secret: %w", err)
	}

	envelope, err := container.Engine().Encrypt(value, secret)
	if err != nil {
		return fmt.Errorf("failed to encrypt value: %w", err)
	}

	encoded, err := envelope.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode envelope: %w", err)
	}

	fmt.Fprintln(io.Writer, encoded)
	return nil
}
