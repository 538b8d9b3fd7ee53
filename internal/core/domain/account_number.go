package domain

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const accountNumberDigits = 10

// GenerateAccountNumber returns a random 10-digit account number with a
// non-zero leading digit. Uniqueness is guaranteed by the store's unique
// constraint, not by the width of the random range; callers retry on
// collision.
func GenerateAccountNumber() (string, error) {
	// 1000000000 .. 9999999999
	span := big.NewInt(9_000_000_000)
	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", fmt.Errorf("generate account number: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+1_000_000_000), nil
}

// ValidAccountNumber reports whether s looks like a generated account number.
func ValidAccountNumber(s string) bool {
	if len(s) != accountNumberDigits {
		return false
	}
	for i, c := range s {
		if c < '0' || c > '9' {
			return false
		}
		if i == 0 && c == '0' {
			return false
		}
	}
	return true
}
