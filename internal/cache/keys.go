package cache

import "strings"

const (
	GlobalKeyPrefix = "lingoquiz"
)

// Service and object names used in cache keys.
const (
	ServiceQuiz       = "quiz"
	ServiceDictionary = "dictionary"

	ObjectStats = "stats"
	ObjectEntry = "entry"
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// StatsKey is the key of a user's cached stats snapshot.
func StatsKey(userID string) string {
	return GenerateCacheKey(ServiceQuiz, ObjectStats, userID)
}

// DictionaryKey is the key of a cached dictionary entry. Words are matched case-insensitively.
func DictionaryKey(word string) string {
	return GenerateCacheKey(ServiceDictionary, ObjectEntry, strings.ToLower(strings.TrimSpace(word)))
}
