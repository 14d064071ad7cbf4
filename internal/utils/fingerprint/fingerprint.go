// Package fingerprint derives short, non-reversible labels for secrets such as
// push tokens so they can appear in logs and API responses.
package fingerprint

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Of returns the first 12 hex chars of the blake2b-256 digest of s.
func Of(s string) string {
	if s == "" {
		return ""
	}
	sum := blake2b.Sum256([]byte(s))
	return hex.EncodeToString(sum[:6])
}
