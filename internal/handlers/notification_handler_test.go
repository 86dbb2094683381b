package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/kennethtrancoding/my-first-day-sub000/internal/models"
)

type stubNotificationLister struct {
	entries  []models.Notification
	unread   int
	markedID string
	missed   bool

	markedAll bool
}

func (s *stubNotificationLister) List(accountID int64, role string) ([]models.Notification, int) {
	return s.entries, s.unread
}

func (s *stubNotificationLister) MarkAllRead(accountID int64, role string) {
	s.markedAll = true
}

func (s *stubNotificationLister) MarkRead(accountID int64, role, notificationID string) bool {
	s.markedID = notificationID
	return !s.missed
}

func (s *stubNotificationLister) Dismiss(accountID int64, role, notificationID string) bool {
	s.markedID = notificationID
	return !s.missed
}

func notificationTestApp(stub *stubNotificationLister) *fiber.App {
	handler := NewNotificationHandler(stub)
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", "42")
		c.Locals("role", models.RoleStudent)
		return c.Next()
	})
	app.Get("/api/v1/notifications", handler.List)
	app.Post("/api/v1/notifications/read-all", handler.ReadAll)
	app.Post("/api/v1/notifications/:id/read", handler.ReadOne)
	app.Delete("/api/v1/notifications/:id", handler.Dismiss)
	return app
}

func TestListNotificationsIncludesUnreadCount(t *testing.T) {
	stub := &stubNotificationLister{
		entries: []models.Notification{{ID: "n1", Message: "You have a new message"}},
		unread:  1,
	}
	app := notificationTestApp(stub)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Notifications []models.Notification `json:"notifications"`
		UnreadCount   int                   `json:"unread_count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(body.Notifications) != 1 || body.UnreadCount != 1 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestReadAllMarksEveryEntry(t *testing.T) {
	stub := &stubNotificationLister{}
	app := notificationTestApp(stub)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/v1/notifications/read-all", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || !stub.markedAll {
		t.Fatalf("expected mark-all to run, got %d (%v)", resp.StatusCode, stub.markedAll)
	}
}

func TestReadOneAndDismissReport404OnMiss(t *testing.T) {
	stub := &stubNotificationLister{missed: true}
	app := notificationTestApp(stub)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/v1/notifications/n1/read", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if stub.markedID != "n1" {
		t.Fatalf("expected id n1 passed through, got %q", stub.markedID)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, "/api/v1/notifications/n2", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	stub.missed = false
	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, "/api/v1/notifications/n2", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}
