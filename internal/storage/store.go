package storage

import (
	"encoding/json"

	"go.uber.org/zap"
)

// Event signals that the blob under Key changed. Keys are reported without
// the namespace prefix.
type Event struct {
	Key string
}

// Store is a namespaced key-value blob store. One JSON blob per logical
// collection, whole-blob replacement on write, last writer wins. There are
// no transactions across keys.
type Store interface {
	Read(key string) ([]byte, bool)
	Write(key string, value []byte) error
	Remove(key string) error
	Watch() <-chan Event
	Close() error
}

// Load reads and decodes the blob under key, returning fallback() when the
// key is missing or the payload does not parse. Parse failures are logged,
// never surfaced; the caller always gets a usable value.
func Load[T any](log *zap.Logger, s Store, key string, fallback func() T) T {
	raw, ok := s.Read(key)
	if !ok {
		return fallback()
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		log.Warn("discarding unreadable blob", zap.String("key", key), zap.Error(err))
		return fallback()
	}
	return value
}

// Save serializes value and stores it under key. Write failures (a full or
// unavailable backing file) are logged and absorbed; in-memory state stays
// the source of truth until the next successful write.
func Save(log *zap.Logger, s Store, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Warn("failed to serialize blob", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.Write(key, raw); err != nil {
		log.Warn("failed to persist blob", zap.String("key", key), zap.Error(err))
	}
}
