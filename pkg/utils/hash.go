package utils

import (
	"crypto/sha1"
	"encoding/hex"
)

// HashString returns the hex SHA1 of a string. Used for fixed-width
// cache keys derived from free-form text such as place names.
func HashString(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
