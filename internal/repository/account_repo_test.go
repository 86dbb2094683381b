package repository

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kennethtrancoding/my-first-day-sub000/internal/models"
	"github.com/kennethtrancoding/my-first-day-sub000/internal/storage"
)

func newAccountRepo(t *testing.T) *AccountRepository {
	t.Helper()
	store := storage.NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })
	return NewAccountRepository(store, zap.NewNop())
}

func TestRegisterRejectsDuplicateEmailCaseInsensitive(t *testing.T) {
	repo := newAccountRepo(t)

	first, err := repo.Register("Test@Example.com", "password123", models.RoleStudent)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if first.Email != "test@example.com" {
		t.Fatalf("expected normalized email, got %q", first.Email)
	}

	if _, err := repo.Register("test@example.COM", "different", models.RoleStudent); err != ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterMentorGetsPeerMentorInfo(t *testing.T) {
	repo := newAccountRepo(t)

	mentor, err := repo.Register("mentor@school.edu", "password123", models.RoleMentor)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if mentor.Profile.Mentor == nil || mentor.Profile.Mentor.Type != models.MentorTypePeer {
		t.Fatalf("expected peer mentor info, got %+v", mentor.Profile.Mentor)
	}

	student, err := repo.Register("student@school.edu", "password123", models.RoleStudent)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if student.Profile.Mentor != nil {
		t.Fatalf("expected no mentor info on a student, got %+v", student.Profile.Mentor)
	}
}

func TestAuthenticateMatchesExactPassword(t *testing.T) {
	repo := newAccountRepo(t)
	if _, err := repo.Register("kid@school.edu", "secret-pass", models.RoleStudent); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, ok := repo.Authenticate("KID@school.edu", "secret-pass"); !ok {
		t.Fatal("expected authentication with case-insensitive email")
	}
	if _, ok := repo.Authenticate("kid@school.edu", "Secret-Pass"); ok {
		t.Fatal("expected password comparison to be exact")
	}
	if _, ok := repo.Authenticate("nobody@school.edu", "secret-pass"); ok {
		t.Fatal("expected unknown email to fail")
	}
}

func TestUpdateMergesPartialProfilePatch(t *testing.T) {
	repo := newAccountRepo(t)
	account, err := repo.Register("kid@school.edu", "password123", models.RoleStudent)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	name := "Jordan"
	interests := []string{"robotics", "art"}
	if _, ok := repo.Update(account.ID, AccountPatch{
		Profile: &ProfilePatch{DisplayName: &name, Interests: &interests},
	}); !ok {
		t.Fatal("expected first update to succeed")
	}

	grade := "7"
	updated, ok := repo.Update(account.ID, AccountPatch{Profile: &ProfilePatch{Grade: &grade}})
	if !ok {
		t.Fatal("expected second update to succeed")
	}

	if updated.Profile.DisplayName != "Jordan" {
		t.Fatalf("grade-only patch wiped display name: %+v", updated.Profile)
	}
	if len(updated.Profile.Interests) != 2 {
		t.Fatalf("grade-only patch wiped interests: %+v", updated.Profile)
	}
	if updated.Profile.Grade != "7" {
		t.Fatalf("grade not applied: %+v", updated.Profile)
	}
}

func TestUpdateMentorFieldsCreatesMentorInfo(t *testing.T) {
	repo := newAccountRepo(t)
	account, err := repo.Register("teach@school.edu", "password123", models.RoleStudent)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	mentorType := models.MentorTypeTeacher
	department := "Science"
	updated, ok := repo.Update(account.ID, AccountPatch{
		Profile: &ProfilePatch{MentorType: &mentorType, Department: &department},
	})
	if !ok {
		t.Fatal("expected update to succeed")
	}
	if updated.Profile.Mentor == nil ||
		updated.Profile.Mentor.Type != models.MentorTypeTeacher ||
		updated.Profile.Mentor.Department != "Science" {
		t.Fatalf("unexpected mentor info: %+v", updated.Profile.Mentor)
	}
}

func TestUpdateEmailReportsConflict(t *testing.T) {
	repo := newAccountRepo(t)
	first, _ := repo.Register("first@school.edu", "password123", models.RoleStudent)
	if _, err := repo.Register("second@school.edu", "password123", models.RoleStudent); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, reason := repo.UpdateEmail(first.ID, "Second@School.edu"); reason == "" {
		t.Fatal("expected a conflict reason")
	}
	if _, reason := repo.UpdateEmail(first.ID, "not-an-email"); reason == "" {
		t.Fatal("expected an invalid-email reason")
	}

	updated, reason := repo.UpdateEmail(first.ID, "renamed@school.edu")
	if reason != "" {
		t.Fatalf("unexpected reason: %q", reason)
	}
	if updated.Email != "renamed@school.edu" {
		t.Fatalf("unexpected email: %q", updated.Email)
	}
}

func TestFindFiltersSortsAndPaginates(t *testing.T) {
	repo := newAccountRepo(t)

	names := map[string]string{
		"a@school.edu": "Charlie",
		"b@school.edu": "Alice",
		"c@school.edu": "Bob",
	}
	for email, name := range names {
		account, err := repo.Register(email, "password123", models.RoleMentor)
		if err != nil {
			t.Fatalf("Register %s: %v", email, err)
		}
		display := name
		if _, ok := repo.Update(account.ID, AccountPatch{
			Profile: &ProfilePatch{DisplayName: &display},
		}); !ok {
			t.Fatalf("Update %s failed", email)
		}
	}
	if _, err := repo.Register("student@school.edu", "password123", models.RoleStudent); err != nil {
		t.Fatalf("Register: %v", err)
	}

	mentors, total := repo.Find(AccountFilter{Role: models.RoleMentor, SortBy: "display_name"})
	if total != 3 || len(mentors) != 3 {
		t.Fatalf("expected 3 mentors, got %d (total %d)", len(mentors), total)
	}
	if mentors[0].Profile.DisplayName != "Alice" || mentors[2].Profile.DisplayName != "Charlie" {
		t.Fatalf("unexpected sort order: %s..%s",
			mentors[0].Profile.DisplayName, mentors[2].Profile.DisplayName)
	}

	page, total := repo.Find(AccountFilter{
		Role: models.RoleMentor, SortBy: "display_name", Offset: 1, Limit: 1,
	})
	if total != 3 || len(page) != 1 || page[0].Profile.DisplayName != "Bob" {
		t.Fatalf("unexpected page: %+v (total %d)", page, total)
	}

	found, total := repo.Find(AccountFilter{Search: "alice"})
	if total != 1 || found[0].Email != "b@school.edu" {
		t.Fatalf("unexpected search result: %+v (total %d)", found, total)
	}

	none, _ := repo.Find(AccountFilter{Role: models.RoleMentor, Offset: 10})
	if len(none) != 0 {
		t.Fatalf("expected empty page past the end, got %d", len(none))
	}
}

func TestFindFiltersByCreatedAtWindow(t *testing.T) {
	repo := newAccountRepo(t)
	if _, err := repo.Register("kid@school.edu", "password123", models.RoleStudent); err != nil {
		t.Fatalf("Register: %v", err)
	}

	past, _ := repo.Find(AccountFilter{CreatedBefore: time.Now().UTC().Add(-time.Hour)})
	if len(past) != 0 {
		t.Fatalf("expected no accounts created before an hour ago, got %d", len(past))
	}
	recent, _ := repo.Find(AccountFilter{CreatedAfter: time.Now().UTC().Add(-time.Hour)})
	if len(recent) != 1 {
		t.Fatalf("expected 1 recent account, got %d", len(recent))
	}
}
