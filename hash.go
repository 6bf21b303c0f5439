package gosign

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashText computes the SHA-256 hash of the trimmed text.
func HashText(text string) string {
	trimmed := strings.TrimSpace(text)
	hash := sha256.Sum256([]byte(trimmed))
	return hex.EncodeToString(hash[:])
}

// CacheKey generates a cache key from a text hash, target sign language
// and avatar style. The same text rendered for a different language or
// avatar is a distinct cache entry.
func CacheKey(hash, targetLanguage string, style AvatarStyle) string {
	return hash + ":" + targetLanguage + ":" + string(style)
}
