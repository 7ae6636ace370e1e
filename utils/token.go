package utils

import (
	"crypto/rand"
	"math/big"
)

const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateRandomPassword builds a temporary password for admin-driven
// resets.
func GenerateRandomPassword(length int) string {
	token := make([]byte, length)
	for i := range token {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			token[i] = charset[0]
			continue
		}
		token[i] = charset[n.Int64()]
	}
	return string(token)
}
