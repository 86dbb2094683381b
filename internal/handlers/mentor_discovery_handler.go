package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/kennethtrancoding/my-first-day-sub000/internal/models"
	"github.com/kennethtrancoding/my-first-day-sub000/internal/repository"
)

type mentorDirectory interface {
	Find(filter repository.AccountFilter) ([]models.Account, int)
	GetByID(id int64) (*models.Account, bool)
	Update(id int64, patch repository.AccountPatch) (*models.Account, bool)
}

type mentorMatchmaker interface {
	GetMatchedMentors(profile *models.Profile, limit int) []models.MentorMatch
}

type MentorDiscoveryHandler struct {
	accounts   mentorDirectory
	matchmaker mentorMatchmaker
}

func NewMentorDiscoveryHandler(accounts mentorDirectory, matchmaker mentorMatchmaker) *MentorDiscoveryHandler {
	return &MentorDiscoveryHandler{accounts: accounts, matchmaker: matchmaker}
}

type mentorResponse struct {
	ID           string   `json:"id"`
	DisplayName  string   `json:"display_name"`
	MentorType   string   `json:"mentor_type"`
	Department   string   `json:"department,omitempty"`
	Grade        string   `json:"grade,omitempty"`
	Bio          string   `json:"bio,omitempty"`
	Available    bool     `json:"available"`
	MatchScore   float64  `json:"match_score,omitempty"`
	MatchReasons []string `json:"match_reasons,omitempty"`
}

func buildMentorResponse(mentor models.Account, score float64, reasons []string) mentorResponse {
	response := mentorResponse{
		ID:          strconv.FormatInt(mentor.ID, 10),
		DisplayName: mentor.Profile.DisplayName,
		MentorType:  models.MentorTypePeer,
		Grade:       mentor.Profile.Grade,
		Bio:         mentor.Profile.Bio,
		Available:   mentor.Settings.Available,
	}
	if mentor.Profile.Mentor != nil {
		response.MentorType = mentor.Profile.Mentor.Type
		response.Department = mentor.Profile.Mentor.Department
	}
	if score > 0 {
		response.MatchScore = score
		response.MatchReasons = reasons
	}
	return response
}

func (h *MentorDiscoveryHandler) ListMentors(c *fiber.Ctx) error {
	page := parsePositiveInt(c.Query("page"), 1)
	limit := parsePositiveInt(c.Query("limit"), defaultPageLimit)
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	mentors, total := h.accounts.Find(repository.AccountFilter{
		Role:   models.RoleMentor,
		Grade:  strings.TrimSpace(c.Query("grade")),
		Search: strings.TrimSpace(c.Query("search")),
		SortBy: "display_name",
		Offset: (page - 1) * limit,
		Limit:  limit,
	})

	response := make([]mentorResponse, 0, len(mentors))
	for _, mentor := range mentors {
		response = append(response, buildMentorResponse(mentor, 0, nil))
	}

	return c.JSON(fiber.Map{
		"mentors":    response,
		"pagination": buildPaginationMeta(page, limit, total),
	})
}

// GetRecommendedMentors recomputes the ranking fresh on every call and
// refreshes the cached copy in the student profile. The cache is served only
// when recomputation yields nothing, e.g. after every mentor account was
// cleared from this install.
func (h *MentorDiscoveryHandler) GetRecommendedMentors(c *fiber.Ctx) error {
	if actorRole(c) != models.RoleStudent {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}
	actorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	limit := parsePositiveInt(c.Query("limit"), defaultPageLimit)
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	student, ok := h.accounts.GetByID(actorID)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
	}

	matches := h.matchmaker.GetMatchedMentors(&student.Profile, limit)
	if len(matches) == 0 {
		return c.JSON(fiber.Map{"mentors": h.cachedMatches(student)})
	}

	cached := make([]models.MatchRef, 0, len(matches))
	response := make([]mentorResponse, 0, len(matches))
	for _, match := range matches {
		cached = append(cached, models.MatchRef{MentorID: match.Mentor.ID, Score: match.Score})
		response = append(response, buildMentorResponse(match.Mentor, match.Score, match.Reasons))
	}
	h.accounts.Update(actorID, repository.AccountPatch{
		Profile: &repository.ProfilePatch{MatchedMentors: &cached},
	})

	return c.JSON(fiber.Map{"mentors": response})
}

func (h *MentorDiscoveryHandler) cachedMatches(student *models.Account) []mentorResponse {
	response := make([]mentorResponse, 0, len(student.Profile.MatchedMentors))
	for _, ref := range student.Profile.MatchedMentors {
		mentor, ok := h.accounts.GetByID(ref.MentorID)
		if !ok {
			continue
		}
		response = append(response, buildMentorResponse(*mentor, ref.Score, nil))
	}
	return response
}

func (h *MentorDiscoveryHandler) GetMentorDetail(c *fiber.Ctx) error {
	mentorID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || mentorID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid mentor id"})
	}

	mentor, ok := h.accounts.GetByID(mentorID)
	if !ok || mentor.Role != models.RoleMentor {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Mentor not found"})
	}

	return c.JSON(fiber.Map{"mentor": buildMentorResponse(*mentor, 0, nil)})
}
