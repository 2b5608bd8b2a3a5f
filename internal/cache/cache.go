// Package cache provides the layered LLM response cache. Responses are keyed
// by model, temperature, and prompt so identical generation requests are
// served without another provider call.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Cache is the storage interface shared by the memory, disk, and layered
// implementations.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives the cache key for one completion request. Temperature is part
// of the key because it changes the distribution the response was drawn from.
func Key(llmModel string, temperature float64, prompt string) string {
	h := sha256.Sum256([]byte(fmt.Sprintf("%s|%.3f|%s", llmModel, temperature, prompt)))
	return "inkwell:v1:" + hex.EncodeToString(h[:])
}
