package commands

import (
	"fmt"

	authService "github.com/allisson/envseal/internal/auth/service"
)

// RunHashToken hashes an API token for the API_TOKEN_HASH setting. When no
// token is supplied a new random one is generated and printed once; only the
// hash belongs in configuration.
func RunHashToken(token string, io IOTuple) error {
	tokenService := authService.NewTokenService()

	if token == "" {
		plain, hashed, err := tokenService.GenerateToken()
		if err != nil {
			return fmt.Errorf("failed to generate token: %w", err)
		}

		fmt.Fprintln(io.Writer, "# Generated API token - store it safely, it is shown only once")
		fmt.Fprintf(io.Writer, "# Token: %s\n", plain)
		fmt.Fprintf(io.Writer, "API_TOKEN_HASH=\"%s\"\n", hashed)
		return nil
	}

	hashed, err := tokenService.HashToken(token)
	if err != nil {
		return fmt.Errorf("failed to hash token: %w", err)
	}

	fmt.Fprintf(io.Writer, "API_TOKEN_HASH=\"%s\"\n", hashed)
	return nil
}
