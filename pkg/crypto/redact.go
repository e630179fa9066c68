// pkg/crypto/redact.go

package crypto

import "strings"

// Redact masks a secret for logs, keeping a short prefix so operators can tell keys apart.
func Redact(s string) string {
	if s == "" {
		return "(empty)"
	}
	r := []rune(s)
	if len(r) <= 8 {
		return strings.Repeat("*", len(r))
	}
	return string(r[:4]) + strings.Repeat("*", len(r)-4)
}
