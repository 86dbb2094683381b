package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kennethtrancoding/my-first-day-sub000/internal/models"
)

type campusCatalog interface {
	Rooms() []models.Room
	SetRooms(rooms []models.Room)
	Clubs() []models.Club
	SetClubs(clubs []models.Club)
	Resources() []models.TeacherResource
	SetResources(resources []models.TeacherResource)
	Electives() []models.ElectiveCategory
	SetElectives(electives []models.ElectiveCategory)
}

type accountLookup interface {
	GetByID(id int64) (*models.Account, bool)
}

// CampusHandler exposes the campus catalogs. Reads are open to every signed-in
// account; writes are limited to teacher-type mentor accounts.
type CampusHandler struct {
	campus   campusCatalog
	accounts accountLookup
}

func NewCampusHandler(campus campusCatalog, accounts accountLookup) *CampusHandler {
	return &CampusHandler{campus: campus, accounts: accounts}
}

// requireTeacher reports whether the actor may write the campus catalogs.
// When it returns false the response has already been rendered and the
// caller must return resp without touching the repository.
func (h *CampusHandler) requireTeacher(c *fiber.Ctx) (ok bool, resp error) {
	actorID, err := parseActorID(c)
	if err != nil {
		return false, c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	account, found := h.accounts.GetByID(actorID)
	if !found {
		return false, c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	if account.Role != models.RoleMentor ||
		account.Profile.Mentor == nil ||
		account.Profile.Mentor.Type != models.MentorTypeTeacher {
		return false, c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Teacher access required"})
	}
	return true, nil
}

func (h *CampusHandler) GetRooms(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"rooms": h.campus.Rooms()})
}

func (h *CampusHandler) PutRooms(c *fiber.Ctx) error {
	if ok, resp := h.requireTeacher(c); !ok {
		return resp
	}

	var rooms []models.Room
	if err := c.BodyParser(&rooms); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	for _, room := range rooms {
		if room.ID == "" || room.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Rooms require an id and a name"})
		}
	}

	h.campus.SetRooms(rooms)
	return c.JSON(fiber.Map{"rooms": rooms})
}

func (h *CampusHandler) GetClubs(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"clubs": h.campus.Clubs()})
}

func (h *CampusHandler) PutClubs(c *fiber.Ctx) error {
	if ok, resp := h.requireTeacher(c); !ok {
		return resp
	}

	var clubs []models.Club
	if err := c.BodyParser(&clubs); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	for _, club := range clubs {
		if club.ID == "" || club.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Clubs require an id and a name"})
		}
	}

	h.campus.SetClubs(clubs)
	return c.JSON(fiber.Map{"clubs": clubs})
}

func (h *CampusHandler) GetResources(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"resources": h.campus.Resources()})
}

func (h *CampusHandler) PutResources(c *fiber.Ctx) error {
	if ok, resp := h.requireTeacher(c); !ok {
		return resp
	}

	var resources []models.TeacherResource
	if err := c.BodyParser(&resources); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	for _, resource := range resources {
		if resource.ID == "" || resource.Title == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Resources require an id and a title"})
		}
	}

	h.campus.SetResources(resources)
	return c.JSON(fiber.Map{"resources": resources})
}

func (h *CampusHandler) GetElectives(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"electives": h.campus.Electives()})
}

func (h *CampusHandler) PutElectives(c *fiber.Ctx) error {
	if ok, resp := h.requireTeacher(c); !ok {
		return resp
	}

	var electives []models.ElectiveCategory
	if err := c.BodyParser(&electives); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	for _, category := range electives {
		if category.ID == "" || category.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Elective categories require an id and a name"})
		}
	}

	h.campus.SetElectives(electives)
	return c.JSON(fiber.Map{"electives": electives})
}
