// pkg/crypto/secret.go

package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"io"

	cerr "github.com/cockroachdb/errors"
)

// SecretKeyBytes is the entropy of a generated SECRET_KEY (64 hex characters).
const SecretKeyBytes = 32

// Reader is the entropy source. Tests may swap it; production must keep crypto/rand.
var Reader io.Reader = rand.Reader

// GenerateSecretKey returns SecretKeyBytes of random data, hex encoded.
func GenerateSecretKey() (string, error) {
	return GenerateHex(SecretKeyBytes)
}

// GenerateHex returns n random bytes as a lowercase hex string.
func GenerateHex(n int) (string, error) {
	if n < 16 {
		return "", cerr.Newf("refusing to generate a secret shorter than 16 bytes (got %d)", n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(Reader, buf); err != nil {
		return "", cerr.Wrap(err, "read random bytes")
	}
	return hex.EncodeToString(buf), nil
}
