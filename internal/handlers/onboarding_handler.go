package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kennethtrancoding/my-first-day-sub000/internal/models"
	"github.com/kennethtrancoding/my-first-day-sub000/internal/repository"
)

type accountUpdater interface {
	GetByID(id int64) (*models.Account, bool)
	Update(id int64, patch repository.AccountPatch) (*models.Account, bool)
}

type OnboardingHandler struct {
	accounts accountUpdater
}

func NewOnboardingHandler(accounts accountUpdater) *OnboardingHandler {
	return &OnboardingHandler{accounts: accounts}
}

type studentOnboardingRequest struct {
	DisplayName string               `json:"display_name"`
	Grade       string               `json:"grade"`
	Interests   []string             `json:"interests"`
	Schedule    []models.ClassPeriod `json:"schedule"`
	Bio         string               `json:"bio"`
}

type mentorOnboardingRequest struct {
	DisplayName string `json:"display_name"`
	MentorType  string `json:"mentor_type"`
	Department  string `json:"department"`
	Grade       string `json:"grade"`
	Bio         string `json:"bio"`
}

func (h *OnboardingHandler) StudentOnboarding(c *fiber.Ctx) error {
	if actorRole(c) != models.RoleStudent {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}
	actorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req studentOnboardingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if validationErr := validateStudentOnboardingRequest(req); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr})
	}

	complete := true
	account, ok := h.accounts.Update(actorID, repository.AccountPatch{
		OnboardingComplete: &complete,
		Profile: &repository.ProfilePatch{
			DisplayName: &req.DisplayName,
			Grade:       &req.Grade,
			Interests:   &req.Interests,
			Schedule:    &req.Schedule,
			Bio:         &req.Bio,
		},
	})
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Account not found"})
	}

	return c.JSON(fiber.Map{
		"profile":             account.Profile,
		"onboarding_complete": account.OnboardingComplete,
	})
}

func (h *OnboardingHandler) MentorOnboarding(c *fiber.Ctx) error {
	if actorRole(c) != models.RoleMentor {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}
	actorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req mentorOnboardingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if validationErr := validateMentorOnboardingRequest(req); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr})
	}

	complete := true
	account, ok := h.accounts.Update(actorID, repository.AccountPatch{
		OnboardingComplete: &complete,
		Profile: &repository.ProfilePatch{
			DisplayName: &req.DisplayName,
			Grade:       &req.Grade,
			Bio:         &req.Bio,
			MentorType:  &req.MentorType,
			Department:  &req.Department,
		},
	})
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Account not found"})
	}

	return c.JSON(fiber.Map{
		"profile":             account.Profile,
		"onboarding_complete": account.OnboardingComplete,
	})
}
