package storage

import "sync"

// watchers fans out change events to every subscribed channel. Slow
// subscribers drop events rather than block a write.
type watchers struct {
	mu   sync.Mutex
	subs []chan Event
}

func (w *watchers) subscribe() <-chan Event {
	ch := make(chan Event, 16)
	w.mu.Lock()
	w.subs = append(w.subs, ch)
	w.mu.Unlock()
	return ch
}

func (w *watchers) notify(key string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, ch := range w.subs {
		select {
		case ch <- Event{Key: key}:
		default:
		}
	}
}

func (w *watchers) closeAll() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, ch := range w.subs {
		close(ch)
	}
	w.subs = nil
}
