package platform

import (
	"crypto/rand"

	"github.com/google/uuid"
)

const tokenAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// tokenLimit is the largest multiple of len(tokenAlphabet) that fits in a byte.
const tokenLimit = 256 - 256%len(tokenAlphabet)

func NewID() string {
	return uuid.New().String()
}

// NewToken returns n characters drawn uniformly from [0-9a-z].
func NewToken(n int) string {
	out := make([]byte, 0, n)
	buf := make([]byte, n)
	for len(out) < n {
		if _, err := rand.Read(buf); err != nil {
			panic("crypto/rand: " + err.Error())
		}
		for _, b := range buf {
			if int(b) >= tokenLimit {
				continue
			}
			out = append(out, tokenAlphabet[int(b)%len(tokenAlphabet)])
			if len(out) == n {
				break
			}
		}
	}
	return string(out)
}
