package utils

import (
	"crypto/rand"
	"math/big"
)

// no look-alike characters (0, O, l, 1)
const alphanumeric = "abcdefghjkmnpqrstuvwxyz23456789"

// GenerateRandomString n characters from crypto/rand
func GenerateRandomString(n int) string {
	result := make([]byte, n)
	for i := 0; i < n; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphanumeric))))
		if err != nil {
			result[i] = alphanumeric[i%len(alphanumeric)]
			continue
		}
		result[i] = alphanumeric[num.Int64()]
	}
	return string(result)
}

// GenerateOAuthState value stored in the oauth_state cookie and echoed back by the provider
func GenerateOAuthState() string {
	return GenerateRandomString(32)
}
