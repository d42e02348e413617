package domain

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// ID prefixes, one per collection.
const (
	MealIDPrefix     = "meal"
	WaterIDPrefix    = "water"
	WeightIDPrefix   = "weight"
	SettingsIDPrefix = "settings"
)

// NewID generates a collection-local identifier of the form
// {prefix}_{epoch_ms}_{random}. Uniqueness within a collection comes from
// the millisecond timestamp plus a random suffix.
func NewID(prefix string) string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing is not survivable for id generation.
		panic(err)
	}
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), hex.EncodeToString(b))
}
