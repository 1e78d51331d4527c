package commands

import (
	"context"
	"fmt"

	"github.com/allisson/envseal/internal/app"
	"github.com/allisson/envseal/internal/config"
)

// RunDecryptValue verifies and decrypts a single envelope under the
// configured master secret and prints the recovered value.
func RunDecryptValue(ctx context.Context, envelopeText string, io IOTuple) error {
	cfg := config.Load()
	container := app.NewContainer(cfg)
	logger := container.Logger()
	defer closeContainer(container, logger)

	secret, err := container.MasterSecret(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve master secret: %w", err)
	}

	value, err := container.Engine().Decrypt(envelopeText, secret)
	if err != nil {
		return fmt.Errorf("failed to decrypt envelope: %w", err)
	}

	fmt.Fprintln(io.Writer, value)
	return nil
}
