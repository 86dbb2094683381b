package repository

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kennethtrancoding/my-first-day-sub000/internal/models"
	"github.com/kennethtrancoding/my-first-day-sub000/internal/storage"
)

const threadsKey = "threads"

// NormalizeParticipant trims and lowercases a participant identifier so the
// same account resolves identically however the caller spelled it.
func NormalizeParticipant(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// CanonicalKey derives the order-independent address of the thread between a
// and b: both identifiers normalized, sorted, joined. CanonicalKey(a, b) and
// CanonicalKey(b, a) are always equal.
func CanonicalKey(a, b string) string {
	a = NormalizeParticipant(a)
	b = NormalizeParticipant(b)
	if a > b {
		a, b = b, a
	}
	return a + "__" + b
}

// ConversationRepository keeps the global thread map in one blob.
type ConversationRepository struct {
	store storage.Store
	log   *zap.Logger
	mu    sync.Mutex
}

func NewConversationRepository(store storage.Store, log *zap.Logger) *ConversationRepository {
	return &ConversationRepository{store: store, log: log}
}

func (r *ConversationRepository) all() map[string]models.Thread {
	return storage.Load(r.log, r.store, threadsKey, func() map[string]models.Thread {
		return map[string]models.Thread{}
	})
}

// AppendMessage adds one message to the pair's thread, creating the thread on
// first contact. Existing messages are never reordered or dropped.
func (r *ConversationRepository) AppendMessage(from, to, text string) models.Thread {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := CanonicalKey(from, to)
	now := time.Now().UTC()
	message := models.Message{
		ID:     uuid.NewString(),
		Sender: NormalizeParticipant(from),
		Text:   text,
		SentAt: now,
	}

	threads := r.all()
	thread := threads[key]
	thread.Key = key
	thread.Messages = append(thread.Messages, message)
	thread.LastActivity = now
	threads[key] = thread

	storage.Save(r.log, r.store, threadsKey, threads)
	return thread
}

func (r *ConversationRepository) Get(a, b string) (models.Thread, bool) {
	thread, ok := r.all()[CanonicalKey(a, b)]
	return thread, ok
}

// ViewerProjection maps each raw message to the viewer's side of the
// conversation: "out" when the viewer sent it, "in" otherwise.
func ViewerProjection(thread models.Thread, viewerID string) []models.ProjectedMessage {
	viewer := NormalizeParticipant(viewerID)
	projected := make([]models.ProjectedMessage, 0, len(thread.Messages))
	for _, message := range thread.Messages {
		direction := models.DirectionIn
		if message.Sender == viewer {
			direction = models.DirectionOut
		}
		projected = append(projected, models.ProjectedMessage{
			ID:        message.ID,
			Direction: direction,
			Text:      message.Text,
			SentAt:    message.SentAt,
		})
	}
	return projected
}

// LastActivity returns the cached timestamp, falling back to the final
// message for threads written before the cache field existed.
func LastActivity(thread models.Thread) time.Time {
	if !thread.LastActivity.IsZero() {
		return thread.LastActivity
	}
	if n := len(thread.Messages); n > 0 {
		return thread.Messages[n-1].SentAt
	}
	return time.Time{}
}

// ListForParticipant summarizes every thread the participant belongs to,
// most recently active first.
func (r *ConversationRepository) ListForParticipant(participantID string) []models.ThreadSummary {
	participant := NormalizeParticipant(participantID)

	summaries := make([]models.ThreadSummary, 0)
	for key, thread := range r.all() {
		left, right, ok := strings.Cut(key, "__")
		if !ok || (left != participant && right != participant) {
			continue
		}
		peer := left
		if left == participant {
			peer = right
		}

		summary := models.ThreadSummary{
			Key:          key,
			PeerID:       peer,
			LastActivity: LastActivity(thread),
		}
		if n := len(thread.Messages); n > 0 {
			last := thread.Messages[n-1]
			summary.LastMessage = &last
		}
		summaries = append(summaries, summary)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].LastActivity.Equal(summaries[j].LastActivity) {
			return summaries[i].Key < summaries[j].Key
		}
		return summaries[i].LastActivity.After(summaries[j].LastActivity)
	})
	return summaries
}

// HasThreads reports whether the participant appears in any thread at all.
// Matchmaking uses it as a weak already-engaged signal.
func (r *ConversationRepository) HasThreads(participantID string) bool {
	participant := NormalizeParticipant(participantID)
	for key := range r.all() {
		left, right, ok := strings.Cut(key, "__")
		if ok && (left == participant || right == participant) {
			return true
		}
	}
	return false
}
