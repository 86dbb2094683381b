package repository

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kennethtrancoding/my-first-day-sub000/internal/models"
	"github.com/kennethtrancoding/my-first-day-sub000/internal/storage"
)

const notificationsKey = "notifications"

// NotificationRepository keeps one capped, newest-first list per
// account+role pair, all inside a single blob.
type NotificationRepository struct {
	store storage.Store
	log   *zap.Logger
	mu    sync.Mutex
}

func NewNotificationRepository(store storage.Store, log *zap.Logger) *NotificationRepository {
	return &NotificationRepository{store: store, log: log}
}

func notificationBucket(accountID int64, role string) string {
	return fmt.Sprintf("%d__%s", accountID, role)
}

func (r *NotificationRepository) all() map[string][]models.Notification {
	return storage.Load(r.log, r.store, notificationsKey, func() map[string][]models.Notification {
		return map[string][]models.Notification{}
	})
}

type NotificationInput struct {
	Message   string
	Type      string
	Link      string
	ContextID string
}

// Push prepends an unread entry and truncates the list to the cap.
func (r *NotificationRepository) Push(accountID int64, role string, input NotificationInput) models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()

	notification := models.Notification{
		ID:        uuid.NewString(),
		Message:   input.Message,
		Type:      input.Type,
		Link:      input.Link,
		ContextID: input.ContextID,
		CreatedAt: time.Now().UTC(),
	}

	bucket := notificationBucket(accountID, role)
	lists := r.all()
	entries := append([]models.Notification{notification}, lists[bucket]...)
	if len(entries) > models.MaxNotifications {
		entries = entries[:models.MaxNotifications]
	}
	lists[bucket] = entries

	storage.Save(r.log, r.store, notificationsKey, lists)
	return notification
}

// List returns the account+role entries newest first with the unread count.
func (r *NotificationRepository) List(accountID int64, role string) ([]models.Notification, int) {
	entries := r.all()[notificationBucket(accountID, role)]
	unread := 0
	for _, entry := range entries {
		if !entry.Read {
			unread++
		}
	}
	if entries == nil {
		entries = []models.Notification{}
	}
	return entries, unread
}

func (r *NotificationRepository) MarkAllRead(accountID int64, role string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bucket := notificationBucket(accountID, role)
	lists := r.all()
	entries, ok := lists[bucket]
	if !ok {
		return
	}
	for i := range entries {
		entries[i].Read = true
	}
	lists[bucket] = entries
	storage.Save(r.log, r.store, notificationsKey, lists)
}

func (r *NotificationRepository) MarkRead(accountID int64, role, notificationID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	bucket := notificationBucket(accountID, role)
	lists := r.all()
	entries := lists[bucket]
	for i := range entries {
		if entries[i].ID == notificationID {
			entries[i].Read = true
			lists[bucket] = entries
			storage.Save(r.log, r.store, notificationsKey, lists)
			return true
		}
	}
	return false
}

func (r *NotificationRepository) Dismiss(accountID int64, role, notificationID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	bucket := notificationBucket(accountID, role)
	lists := r.all()
	entries := lists[bucket]
	for i := range entries {
		if entries[i].ID == notificationID {
			lists[bucket] = append(entries[:i], entries[i+1:]...)
			storage.Save(r.log, r.store, notificationsKey, lists)
			return true
		}
	}
	return false
}
