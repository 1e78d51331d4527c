package commands

import (
	"fmt"

	cryptoService "github.com/allisson/envseal/internal/crypto/service"
)

// RunGenerateKey generates a cryptographically secure random key and prints it
// in an env-file ready form. The key is produced locally and never stored;
// losing it makes every envelope encrypted under it unrecoverable.
func RunGenerateKey(bits int, io IOTuple) error {
	key, err := cryptoService.GenerateKey(bits)
	if err != nil {
		return fmt.Errorf("failed to generate key: %w", err)
	}

	fmt.Fprintf(io.Writer, "# Generated %d-bit key\n", bits)
	fmt.Fprintf(io.Writer, "MASTER_SECRET=\"%s\"\n", key)

	return nil
}
