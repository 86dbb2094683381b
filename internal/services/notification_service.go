package services

import (
	"strconv"

	"github.com/kennethtrancoding/my-first-day-sub000/internal/models"
	"github.com/kennethtrancoding/my-first-day-sub000/internal/repository"
)

type notificationStore interface {
	Push(accountID int64, role string, input repository.NotificationInput) models.Notification
	List(accountID int64, role string) ([]models.Notification, int)
	MarkAllRead(accountID int64, role string)
	MarkRead(accountID int64, role, notificationID string) bool
	Dismiss(accountID int64, role, notificationID string) bool
}

// NotificationPublisher fans a freshly pushed notification out to any live
// session of the target account. The websocket hub implements it.
type NotificationPublisher interface {
	PublishNotification(accountID string, notification models.Notification)
}

// NotificationService owns per-account, per-role notification lists and the
// account-settings mute switches.
type NotificationService struct {
	notifications notificationStore
	publisher     NotificationPublisher
}

func NewNotificationService(notifications notificationStore, publisher NotificationPublisher) *NotificationService {
	return &NotificationService{notifications: notifications, publisher: publisher}
}

// Notify pushes an entry onto the recipient's list for their role, honoring
// the recipient's notification toggles, and publishes it to live sessions.
func (s *NotificationService) Notify(recipient *models.Account, input repository.NotificationInput) {
	if recipient == nil {
		return
	}
	switch input.Type {
	case models.NotificationMessage:
		if !recipient.Settings.NotifyMessages {
			return
		}
	case models.NotificationRequest, models.NotificationRequestApproved:
		if !recipient.Settings.NotifyRequests {
			return
		}
	}

	notification := s.notifications.Push(recipient.ID, recipient.Role, input)
	if s.publisher != nil {
		s.publisher.PublishNotification(strconv.FormatInt(recipient.ID, 10), notification)
	}
}

func (s *NotificationService) List(accountID int64, role string) ([]models.Notification, int) {
	return s.notifications.List(accountID, role)
}

func (s *NotificationService) MarkAllRead(accountID int64, role string) {
	s.notifications.MarkAllRead(accountID, role)
}

func (s *NotificationService) MarkRead(accountID int64, role, notificationID string) bool {
	return s.notifications.MarkRead(accountID, role, notificationID)
}

func (s *NotificationService) Dismiss(accountID int64, role, notificationID string) bool {
	return s.notifications.Dismiss(accountID, role, notificationID)
}
