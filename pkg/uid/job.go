package uid

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/pkg/errors"
)

// GenerateJobID generates a cryptographically secure random job ID
func GenerateJobID() (string, error) {
	bytes := make([]byte, 16) // 128 bits
	if _, err := rand.Read(bytes); err != nil {
		return "", errors.Wrap(err, "failed to generate job ID")
	}
	return hex.EncodeToString(bytes), nil
}
