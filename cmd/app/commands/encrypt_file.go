package commands

import (
	"context"
	"fmt"

	"github.com/allisson/envseal/internal/app"
	"github.com/allisson/envseal/internal/config"
)

// RunEncryptFile encrypts every well-formed key=value line of the named file
// in place. The master secret comes from configuration (MASTER_SECRET or the
// KMS-wrapped form). Malformed lines are dropped and reported on the writer.
func RunEncryptFile(ctx context.Context, name string, io IOTuple) error {
	cfg := config.Load()
	container := app.NewContainer(cfg)
	logger := container.Logger()
	defer closeContainer(container, logger)

	secret, err := container.MasterSecret(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve master secret: %w", err)
	}

	result, err := container.Codec().EncryptFile(container.FileStore(), name, secret)
	if err != nil {
		return fmt.Errorf("failed to encrypt %s: %w", name, err)
	}

	fmt.Fprintf(io.Writer, "Encrypted %s: %d lines written\n", name, len(result.Lines))
	for _, malformed := range result.Malformed {
		fmt.Fprintf(io.Writer, "Skipped: %s\n", malformed)
	}

	return nil
}
