package config

import "fmt"

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// ActivePlansKey returns the cache key for the active plan catalog.
func (r *CacheKeyStruct) ActivePlansKey() string {
	return "plans:active"
}

// UserStatsKey returns the cache key for a user's quiz stats summary.
func (r *CacheKeyStruct) UserStatsKey(userID string) string {
	return fmt.Sprintf("user:%s:quiz_stats", userID)
}

var CacheKey = NewCacheKeyStruct()
