package handlers

import (
	"errors"
	"net/mail"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/kennethtrancoding/my-first-day-sub000/internal/models"
	"github.com/kennethtrancoding/my-first-day-sub000/internal/repository"
	"github.com/kennethtrancoding/my-first-day-sub000/pkg/utils"
)

type accountStore interface {
	Register(email, password, role string) (*models.Account, error)
	Authenticate(email, password string) (*models.Account, bool)
	GetByID(id int64) (*models.Account, bool)
	GetByEmail(email string) (*models.Account, bool)
	UpdateEmail(id int64, newEmail string) (*models.Account, string)
}

type AuthHandler struct {
	accounts          accountStore
	jwtSecret         string
	demoSigninAllowed bool
}

func NewAuthHandler(accounts accountStore, jwtSecret string, demoSigninAllowed bool) *AuthHandler {
	return &AuthHandler{
		accounts:          accounts,
		jwtSecret:         jwtSecret,
		demoSigninAllowed: demoSigninAllowed,
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateEmailRequest struct {
	Email string `json:"email"`
}

type demoSigninRequest struct {
	Token string `json:"token"`
}

func accountResponse(account *models.Account) fiber.Map {
	return fiber.Map{
		"id":                  account.ID,
		"email":               account.Email,
		"role":                account.Role,
		"onboarding_complete": account.OnboardingComplete,
	}
}

func (h *AuthHandler) issueToken(c *fiber.Ctx, account *models.Account) error {
	token, err := utils.GenerateToken(strconv.FormatInt(account.ID, 10), account.Role, h.jwtSecret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to generate token"})
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  accountResponse(account),
	})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	parsedEmail, err := mail.ParseAddress(strings.TrimSpace(req.Email))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid email format"})
	}
	req.Email = strings.ToLower(parsedEmail.Address)
	if len(req.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "Password must be at least 8 characters"})
	}
	if req.Role == "" {
		req.Role = models.RoleStudent
	}
	if req.Role != models.RoleStudent && req.Role != models.RoleMentor {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid role"})
	}

	account, err := h.accounts.Register(req.Email, req.Password, req.Role)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to create account"})
	}

	return h.issueToken(c, account)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	parsedEmail, err := mail.ParseAddress(strings.TrimSpace(req.Email))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid email format"})
	}

	account, ok := h.accounts.Authenticate(parsedEmail.Address, req.Password)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"error": "Invalid email or password"})
	}

	return h.issueToken(c, account)
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	actorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	account, ok := h.accounts.GetByID(actorID)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Account not found"})
	}

	return c.JSON(fiber.Map{
		"user":     accountResponse(account),
		"profile":  account.Profile,
		"settings": account.Settings,
	})
}

func (h *AuthHandler) UpdateEmail(c *fiber.Ctx) error {
	actorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req updateEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	parsedEmail, err := mail.ParseAddress(strings.TrimSpace(req.Email))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid email format"})
	}

	account, reason := h.accounts.UpdateEmail(actorID, parsedEmail.Address)
	if reason != "" {
		status := fiber.StatusBadRequest
		if strings.Contains(reason, "already in use") {
			status = fiber.StatusConflict
		}
		return c.Status(status).JSON(fiber.Map{"error": reason})
	}

	return c.JSON(fiber.Map{"user": accountResponse(account)})
}

// DemoSignin extracts an email claim from an identity token without
// verifying the signature and signs that account in, registering it first if
// needed. Mounted only when the demo flag and development env agree.
func (h *AuthHandler) DemoSignin(c *fiber.Ctx) error {
	if !h.demoSigninAllowed {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	}

	var req demoSigninRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	email, err := utils.DecodeIDTokenEmail(strings.TrimSpace(req.Token))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid identity token"})
	}

	account, ok := h.accounts.GetByEmail(email)
	if !ok {
		account, err = h.accounts.Register(email, uuid.NewString(), models.RoleStudent)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).
				JSON(fiber.Map{"error": "Failed to create account"})
		}
	}

	return h.issueToken(c, account)
}
