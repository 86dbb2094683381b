package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kennethtrancoding/my-first-day-sub000/internal/models"
)

type notificationLister interface {
	List(accountID int64, role string) ([]models.Notification, int)
	MarkAllRead(accountID int64, role string)
	MarkRead(accountID int64, role, notificationID string) bool
	Dismiss(accountID int64, role, notificationID string) bool
}

type NotificationHandler struct {
	notifications notificationLister
}

func NewNotificationHandler(notifications notificationLister) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	actorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	notifications, unread := h.notifications.List(actorID, actorRole(c))
	return c.JSON(fiber.Map{
		"notifications": notifications,
		"unread_count":  unread,
	})
}

func (h *NotificationHandler) ReadAll(c *fiber.Ctx) error {
	actorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	h.notifications.MarkAllRead(actorID, actorRole(c))
	return c.JSON(fiber.Map{"success": true})
}

func (h *NotificationHandler) ReadOne(c *fiber.Ctx) error {
	actorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	if !h.notifications.MarkRead(actorID, actorRole(c), c.Params("id")) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Notification not found"})
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *NotificationHandler) Dismiss(c *fiber.Ctx) error {
	actorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	if !h.notifications.Dismiss(actorID, actorRole(c), c.Params("id")) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Notification not found"})
	}
	return c.JSON(fiber.Map{"success": true})
}
