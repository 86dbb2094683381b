package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/kennethtrancoding/my-first-day-sub000/internal/models"
	"github.com/kennethtrancoding/my-first-day-sub000/internal/repository"
)

type stubAccountStore struct {
	registered  *models.Account
	registerErr error
	authResult  *models.Account
	byID        map[int64]*models.Account
	byEmail     map[string]*models.Account
	emailReason string

	lastRegisterEmail string
	lastRegisterRole  string
}

func (s *stubAccountStore) Register(email, password, role string) (*models.Account, error) {
	s.lastRegisterEmail = email
	s.lastRegisterRole = role
	return s.registered, s.registerErr
}

func (s *stubAccountStore) Authenticate(email, password string) (*models.Account, bool) {
	return s.authResult, s.authResult != nil
}

func (s *stubAccountStore) GetByID(id int64) (*models.Account, bool) {
	account, ok := s.byID[id]
	return account, ok
}

func (s *stubAccountStore) GetByEmail(email string) (*models.Account, bool) {
	account, ok := s.byEmail[email]
	return account, ok
}

func (s *stubAccountStore) UpdateEmail(id int64, newEmail string) (*models.Account, string) {
	if s.emailReason != "" {
		return nil, s.emailReason
	}
	account := s.byID[id]
	account.Email = newEmail
	return account, ""
}

func authTestApp(store *stubAccountStore, demo bool) *fiber.App {
	handler := NewAuthHandler(store, "test-secret", demo)
	app := fiber.New()
	app.Post("/api/auth/register", handler.Register)
	app.Post("/api/auth/login", handler.Login)
	app.Post("/api/auth/demo-signin", handler.DemoSignin)
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", "42")
		c.Locals("role", models.RoleStudent)
		return c.Next()
	})
	app.Get("/api/auth/me", handler.Me)
	app.Put("/api/auth/email", handler.UpdateEmail)
	return app
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRegisterIssuesTokenAndDefaultsRole(t *testing.T) {
	store := &stubAccountStore{
		registered: &models.Account{ID: 42, Email: "kid@school.edu", Role: models.RoleStudent},
	}
	app := authTestApp(store, false)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/register",
		`{"email":"Kid@School.edu","password":"password123"}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if store.lastRegisterEmail != "kid@school.edu" {
		t.Fatalf("expected lowercased email, got %q", store.lastRegisterEmail)
	}
	if store.lastRegisterRole != models.RoleStudent {
		t.Fatalf("expected default student role, got %q", store.lastRegisterRole)
	}

	var body struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if body.Token == "" || body.User.Email != "kid@school.edu" {
		t.Fatalf("unexpected response: %+v", body)
	}
}

func TestRegisterValidatesInput(t *testing.T) {
	app := authTestApp(&stubAccountStore{}, false)

	cases := []struct {
		name string
		body string
		want int
	}{
		{"bad email", `{"email":"not-an-email","password":"password123"}`, http.StatusBadRequest},
		{"short password", `{"email":"kid@school.edu","password":"short"}`, http.StatusBadRequest},
		{"bad role", `{"email":"kid@school.edu","password":"password123","role":"admin"}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/register", tc.body))
		if err != nil {
			t.Fatalf("%s: app.Test: %v", tc.name, err)
		}
		resp.Body.Close()
		if resp.StatusCode != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, resp.StatusCode)
		}
	}
}

func TestRegisterConflictsOnTakenEmail(t *testing.T) {
	store := &stubAccountStore{registerErr: repository.ErrEmailTaken}
	app := authTestApp(store, false)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/register",
		`{"email":"kid@school.edu","password":"password123"}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	app := authTestApp(&stubAccountStore{}, false)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/login",
		`{"email":"kid@school.edu","password":"wrong"}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestMeReturnsAccountProfileAndSettings(t *testing.T) {
	store := &stubAccountStore{byID: map[int64]*models.Account{
		42: {
			ID:       42,
			Email:    "kid@school.edu",
			Role:     models.RoleStudent,
			Profile:  models.Profile{DisplayName: "Jordan"},
			Settings: models.DefaultSettings(),
		},
	}}
	app := authTestApp(store, false)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Profile models.Profile `json:"profile"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if body.Profile.DisplayName != "Jordan" {
		t.Fatalf("unexpected profile: %+v", body.Profile)
	}
}

func TestUpdateEmailMapsReasonToStatus(t *testing.T) {
	store := &stubAccountStore{
		byID:        map[int64]*models.Account{42: {ID: 42, Email: "kid@school.edu"}},
		emailReason: "that email is already in use by another account",
	}
	app := authTestApp(store, false)

	resp, err := app.Test(jsonRequest(http.MethodPut, "/api/auth/email",
		`{"email":"taken@school.edu"}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}

	store.emailReason = ""
	resp, err = app.Test(jsonRequest(http.MethodPut, "/api/auth/email",
		`{"email":"fresh@school.edu"}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestDemoSigninHiddenWhenDisabled(t *testing.T) {
	app := authTestApp(&stubAccountStore{}, false)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/demo-signin", `{"token":"x"}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestDemoSigninRegistersUnknownEmail(t *testing.T) {
	store := &stubAccountStore{
		byEmail:    map[string]*models.Account{},
		registered: &models.Account{ID: 7, Email: "new@school.edu", Role: models.RoleStudent},
	}
	app := authTestApp(store, true)

	// unsigned token carrying {"email":"new@school.edu"}
	token := "eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0." +
		"eyJlbWFpbCI6Im5ld0BzY2hvb2wuZWR1In0."

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/demo-signin",
		`{"token":"`+token+`"}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if store.lastRegisterEmail != "new@school.edu" {
		t.Fatalf("expected auto-registration, got %q", store.lastRegisterEmail)
	}
}
