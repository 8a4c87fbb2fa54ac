package nonce

import (
	"crypto/rand"
	"math/big"
)

// Source generates the random identifiers used by the login flow.
type Source struct{}

func (s Source) randString(n int, letters string) string {
	ret := make([]byte, n)
	for i := range n {
		num, _ := rand.Int(rand.Reader, big.NewInt(int64(len(letters))))
		ret[i] = letters[num.Int64()]
	}

	return string(ret)
}

// LoginCode returns the nonce embedded in outbound sign-in links and echoed
// back by the identity provider as the state parameter.
func (s Source) LoginCode() string {
	const letters = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz.-;:_!$%&/()=" //nolint:gosec
	const n = 40

	return s.randString(n, letters)
}

func (s Source) SessionID() string {
	const letters = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz-"

	return s.randString(32, letters) // Entropy E = L * log2(63) = 32 * log2(63) = 191.3 bits
}
