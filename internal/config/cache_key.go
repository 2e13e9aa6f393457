package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// SessionKey returns the Redis key holding the active session JTI for a user.
func (r *CacheKeyStruct) SessionKey(userID int) string {
	return fmt.Sprintf("session:%d", userID)
}

var CacheKey = NewCacheKeyStruct()
