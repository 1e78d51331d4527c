package service

import (
	"context"
	"encoding/base64"
	"fmt"

	cryptoDomain "github.com/allisson/envseal/internal/crypto/domain"
)

// UnwrapMasterSecret recovers a master secret that was wrapped with a KMS
// key. wrappedSecret is the base64-encoded KMS ciphertext; its plaintext
// is the raw 32-byte master key material.
//
// The keeper is closed before returning and intermediate buffers are
// zeroed, so the only live copy of the key material ends up inside the
// returned SecretKey handle.
func UnwrapMasterSecret(
	ctx context.Context,
	kms KMSService,
	keeperURI string,
	wrappedSecret string,
) (*cryptoDomain.SecretKey, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(wrappedSecret)
	if err != nil {
		return nil, fmt.Errorf("wrapped master secret is not valid base64: %w", err)
	}

	keeper, err := kms.OpenKeeper(ctx, keeperURI)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = keeper.Close()
	}()

	raw, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("failed to unwrap master secret: %w", err)
	}
	defer cryptoDomain.Zero(raw)

	return cryptoDomain.NewSecretKey(raw)
}
