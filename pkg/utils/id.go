package utils

import (
	"math/rand"
	"time"
)

// NewAccountID builds a timestamp+random composite identifier. Not globally
// unique in theory; collisions need two registrations in the same
// millisecond drawing the same suffix.
func NewAccountID() int64 {
	return time.Now().UnixMilli()*1000 + rand.Int63n(1000)
}
