package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/kennethtrancoding/my-first-day-sub000/internal/models"
	"github.com/kennethtrancoding/my-first-day-sub000/internal/repository"
)

type stubMentorDirectory struct {
	mentors    []models.Account
	total      int
	byID       map[int64]*models.Account
	lastFilter repository.AccountFilter
	lastPatch  repository.AccountPatch
}

func (s *stubMentorDirectory) Find(filter repository.AccountFilter) ([]models.Account, int) {
	s.lastFilter = filter
	return s.mentors, s.total
}

func (s *stubMentorDirectory) GetByID(id int64) (*models.Account, bool) {
	account, ok := s.byID[id]
	return account, ok
}

func (s *stubMentorDirectory) Update(id int64, patch repository.AccountPatch) (*models.Account, bool) {
	s.lastPatch = patch
	account, ok := s.byID[id]
	return account, ok
}

type stubMatchmaker struct {
	matches []models.MentorMatch
}

func (s *stubMatchmaker) GetMatchedMentors(profile *models.Profile, limit int) []models.MentorMatch {
	if limit > 0 && len(s.matches) > limit {
		return s.matches[:limit]
	}
	return s.matches
}

func discoveryTestApp(directory *stubMentorDirectory, matchmaker *stubMatchmaker, role string) *fiber.App {
	handler := NewMentorDiscoveryHandler(directory, matchmaker)
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", "42")
		c.Locals("role", role)
		return c.Next()
	})
	app.Get("/api/v1/mentors", handler.ListMentors)
	app.Get("/api/v1/students/matches", handler.GetRecommendedMentors)
	app.Get("/api/v1/mentors/:id", handler.GetMentorDetail)
	return app
}

func peerMentor(id int64, name string) models.Account {
	return models.Account{
		ID:   id,
		Role: models.RoleMentor,
		Profile: models.Profile{
			DisplayName: name,
			Mentor:      &models.MentorInfo{Type: models.MentorTypePeer},
		},
		Settings: models.DefaultSettings(),
	}
}

func TestListMentorsPassesFilterAndPaginates(t *testing.T) {
	directory := &stubMentorDirectory{
		mentors: []models.Account{peerMentor(11, "Sam")},
		total:   25,
	}
	app := discoveryTestApp(directory, &stubMatchmaker{}, models.RoleStudent)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet,
		"/api/v1/mentors?page=2&limit=5&grade=7&search=sam", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if directory.lastFilter.Role != models.RoleMentor ||
		directory.lastFilter.Grade != "7" ||
		directory.lastFilter.Search != "sam" ||
		directory.lastFilter.Offset != 5 ||
		directory.lastFilter.Limit != 5 {
		t.Fatalf("unexpected filter: %+v", directory.lastFilter)
	}

	var body struct {
		Mentors    []mentorResponse      `json:"mentors"`
		Pagination models.PaginationMeta `json:"pagination"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if body.Pagination.Total != 25 || body.Pagination.TotalPages != 5 {
		t.Fatalf("unexpected pagination: %+v", body.Pagination)
	}
	if len(body.Mentors) != 1 || body.Mentors[0].ID != "11" {
		t.Fatalf("unexpected mentors: %+v", body.Mentors)
	}
}

func TestGetRecommendedMentorsCachesMatchRefs(t *testing.T) {
	student := &models.Account{
		ID:   42,
		Role: models.RoleStudent,
		Profile: models.Profile{
			Grade:     "7",
			Interests: []string{"robotics"},
		},
	}
	mentor := peerMentor(11, "Sam")
	directory := &stubMentorDirectory{byID: map[int64]*models.Account{42: student, 11: &mentor}}
	matchmaker := &stubMatchmaker{matches: []models.MentorMatch{
		{Mentor: mentor, Score: 9, Reasons: []string{"Shares your interest in robotics"}},
	}}
	app := discoveryTestApp(directory, matchmaker, models.RoleStudent)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/students/matches", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Mentors []mentorResponse `json:"mentors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(body.Mentors) != 1 || body.Mentors[0].MatchScore != 9 {
		t.Fatalf("unexpected matches: %+v", body.Mentors)
	}
	if len(body.Mentors[0].MatchReasons) != 1 {
		t.Fatalf("expected match reasons in the response: %+v", body.Mentors[0])
	}

	if directory.lastPatch.Profile == nil || directory.lastPatch.Profile.MatchedMentors == nil {
		t.Fatal("expected matches to be cached on the profile")
	}
	cached := *directory.lastPatch.Profile.MatchedMentors
	if len(cached) != 1 || cached[0].MentorID != 11 || cached[0].Score != 9 {
		t.Fatalf("unexpected cached refs: %+v", cached)
	}
}

func TestGetRecommendedMentorsServesCacheWhenPoolEmpty(t *testing.T) {
	mentor := peerMentor(11, "Sam")
	student := &models.Account{
		ID:   42,
		Role: models.RoleStudent,
		Profile: models.Profile{
			MatchedMentors: []models.MatchRef{{MentorID: 11, Score: 7}},
		},
	}
	directory := &stubMentorDirectory{byID: map[int64]*models.Account{42: student, 11: &mentor}}
	app := discoveryTestApp(directory, &stubMatchmaker{}, models.RoleStudent)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/students/matches", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	var body struct {
		Mentors []mentorResponse `json:"mentors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(body.Mentors) != 1 || body.Mentors[0].ID != "11" || body.Mentors[0].MatchScore != 7 {
		t.Fatalf("expected cached match served, got %+v", body.Mentors)
	}
}

func TestGetRecommendedMentorsForbiddenForMentors(t *testing.T) {
	app := discoveryTestApp(&stubMentorDirectory{}, &stubMatchmaker{}, models.RoleMentor)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/students/matches", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestGetMentorDetail(t *testing.T) {
	mentor := peerMentor(11, "Sam")
	directory := &stubMentorDirectory{byID: map[int64]*models.Account{11: &mentor}}
	app := discoveryTestApp(directory, &stubMatchmaker{}, models.RoleStudent)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/mentors/11", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/mentors/999", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown mentor, got %d", resp.StatusCode)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/mentors/abc", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", resp.StatusCode)
	}
}
