package commands

import (
	"context"
	"fmt"

	"github.com/allisson/envseal/internal/app"
	"github.com/allisson/envseal/internal/config"
)

// RunDecryptFile decrypts every key=envelope line of the named file in place.
// A single integrity failure aborts the run and leaves the file untouched.
func RunDecryptFile(ctx context.Context, name string, io IOTuple) error {
	cfg := config.Load()
	container := app.NewContainer(cfg)
	logger := container.Logger()
	defer closeContainer(container, logger)

	secret, err := container.MasterSecret(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve master secret: %w", err)
	}

	result, err := container.Codec().DecryptFile(container.FileStore(), name, secret)
	if err != nil {
		return fmt.Errorf("failed to decrypt %s: %w", name, err)
	}

	fmt.Fprintf(io.Writer, "Decrypted %s: %d lines written\n", name, len(result.Lines))
	for _, malformed := range result.Malformed {
		fmt.Fprintf(io.Writer, "Skipped: %s\n", malformed)
	}

	return nil
}
