package cache

import "strings"

const GlobalKeyPrefix = "notesassistant"

// GenerateCacheKey joins prefix, service, object type and identifier with ":".
// Extra params are joined by "_" into one trailing segment.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	parts := []string{GlobalKeyPrefix, serviceName, objectType, identifier}
	if len(paramsKey) > 0 {
		parts = append(parts, strings.Join(paramsKey, "_"))
	}
	return strings.Join(parts, ":")
}

// QuizSessionKey holds the JSON-encoded quiz session of one user session.
func QuizSessionKey(sessionID string) string {
	return GenerateCacheKey("quiz", "session", sessionID)
}

// ArtifactKey is the hash of last generated texts (field per kind) of one user session.
func ArtifactKey(sessionID string) string {
	return GenerateCacheKey("artifact", "last", sessionID)
}
