package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kennethtrancoding/my-first-day-sub000/internal/models"
	"github.com/kennethtrancoding/my-first-day-sub000/internal/repository"
)

type ProfileHandler struct {
	accounts accountUpdater
}

func NewProfileHandler(accounts accountUpdater) *ProfileHandler {
	return &ProfileHandler{accounts: accounts}
}

type updateProfileRequest struct {
	DisplayName *string               `json:"display_name"`
	Grade       *string               `json:"grade"`
	Interests   *[]string             `json:"interests"`
	Schedule    *[]models.ClassPeriod `json:"schedule"`
	Bio         *string               `json:"bio"`
	MentorType  *string               `json:"mentor_type"`
	Department  *string               `json:"department"`
}

type updateSettingsRequest struct {
	NotifyMessages *bool   `json:"notify_messages"`
	NotifyRequests *bool   `json:"notify_requests"`
	DigestSchedule *string `json:"digest_schedule"`
	Available      *bool   `json:"available"`
}

func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	actorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	account, ok := h.accounts.GetByID(actorID)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Account not found"})
	}

	return c.JSON(fiber.Map{
		"profile":  account.Profile,
		"settings": account.Settings,
	})
}

// UpdateProfile applies a partial merge: absent fields keep their stored
// values, so a grade-only update cannot wipe interests or the schedule.
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	actorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if validationErr := validateProfileUpdateRequest(req); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr})
	}
	if actorRole(c) != models.RoleMentor && (req.MentorType != nil || req.Department != nil) {
		return c.Status(fiber.StatusForbidden).
			JSON(fiber.Map{"error": "Only mentors can set mentor fields"})
	}

	account, ok := h.accounts.Update(actorID, repository.AccountPatch{
		Profile: &repository.ProfilePatch{
			DisplayName: req.DisplayName,
			Grade:       req.Grade,
			Interests:   req.Interests,
			Schedule:    req.Schedule,
			Bio:         req.Bio,
			MentorType:  req.MentorType,
			Department:  req.Department,
		},
	})
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Account not found"})
	}

	return c.JSON(fiber.Map{"profile": account.Profile})
}

func (h *ProfileHandler) UpdateSettings(c *fiber.Ctx) error {
	actorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req updateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	account, ok := h.accounts.Update(actorID, repository.AccountPatch{
		Settings: &repository.SettingsPatch{
			NotifyMessages: req.NotifyMessages,
			NotifyRequests: req.NotifyRequests,
			DigestSchedule: req.DigestSchedule,
			Available:      req.Available,
		},
	})
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Account not found"})
	}

	return c.JSON(fiber.Map{"settings": account.Settings})
}
