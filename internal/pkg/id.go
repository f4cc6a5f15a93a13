package pkg

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

const gameIDBytes = 12

// GenerateGameID - generates a random URL-safe identifier for a game session.
func GenerateGameID() (string, error) {
	b := make([]byte, gameIDBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}
