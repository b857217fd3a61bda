package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const (
	GlobalKeyPrefix = "wikiquiz"
)

// GenerateCacheKey builds a key of the form wikiquiz:<service>:<objectType>:<identifier>.
// Extra parts are joined by "_" and appended as a final segment.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// QuizURLKey is the key under which the assembled quiz for an article URL is cached.
func QuizURLKey(url string) string {
	return GenerateCacheKey("quiz", "url", hashString(url))
}

func hashString(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
