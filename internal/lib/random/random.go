// Package random issues opaque tokens for verification and password reset links.
package random

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// TokenBytes is the entropy of every issued token; hex encoding doubles it to 40 characters.
const TokenBytes = 20

// Token returns TokenBytes of crypto/rand output, hex encoded.
func Token() (string, error) {
	const op = "random.Token"

	buf := make([]byte, TokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return hex.EncodeToString(buf), nil
}
