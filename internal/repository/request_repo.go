package repository

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kennethtrancoding/my-first-day-sub000/internal/models"
	"github.com/kennethtrancoding/my-first-day-sub000/internal/storage"
)

const requestsKey = "chat_requests"

// RequestRepository tracks the pending chat request per participant pair,
// keyed the same way as conversation threads. At most one request exists per
// unordered pair; a newer request overwrites the old one.
type RequestRepository struct {
	store storage.Store
	log   *zap.Logger
	mu    sync.Mutex
}

func NewRequestRepository(store storage.Store, log *zap.Logger) *RequestRepository {
	return &RequestRepository{store: store, log: log}
}

func (r *RequestRepository) all() map[string]models.ChatRequest {
	return storage.Load(r.log, r.store, requestsKey, func() map[string]models.ChatRequest {
		return map[string]models.ChatRequest{}
	})
}

func (r *RequestRepository) Upsert(initiator, recipient, direction string) models.ChatRequest {
	r.mu.Lock()
	defer r.mu.Unlock()

	request := models.ChatRequest{
		Key:       CanonicalKey(initiator, recipient),
		Initiator: NormalizeParticipant(initiator),
		Recipient: NormalizeParticipant(recipient),
		Direction: direction,
		CreatedAt: time.Now().UTC(),
	}

	requests := r.all()
	requests[request.Key] = request
	storage.Save(r.log, r.store, requestsKey, requests)
	return request
}

func (r *RequestRepository) Get(a, b string) (models.ChatRequest, bool) {
	request, ok := r.all()[CanonicalKey(a, b)]
	return request, ok
}

// Remove clears the pair's pending request. Called on an explicit approval
// or when the recipient replies, which accepts implicitly.
func (r *RequestRepository) Remove(a, b string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	requests := r.all()
	key := CanonicalKey(a, b)
	if _, ok := requests[key]; !ok {
		return
	}
	delete(requests, key)
	storage.Save(r.log, r.store, requestsKey, requests)
}

// ListForRecipient returns the pending requests addressed to the account.
func (r *RequestRepository) ListForRecipient(recipientID string) []models.ChatRequest {
	recipient := NormalizeParticipant(recipientID)
	pending := make([]models.ChatRequest, 0)
	for _, request := range r.all() {
		if request.Recipient == recipient {
			pending = append(pending, request)
		}
	}
	return pending
}
