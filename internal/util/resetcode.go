package util

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateResetCode returns a 6-digit numeric password reset code.
// Codes gate a password change, so they come from crypto/rand rather
// than a seeded PRNG.
func GenerateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
