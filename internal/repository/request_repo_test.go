package repository

import (
	"testing"

	"go.uber.org/zap"

	"github.com/kennethtrancoding/my-first-day-sub000/internal/models"
	"github.com/kennethtrancoding/my-first-day-sub000/internal/storage"
)

func newRequestRepo(t *testing.T) *RequestRepository {
	t.Helper()
	store := storage.NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })
	return NewRequestRepository(store, zap.NewNop())
}

func TestUpsertKeepsOneRequestPerPair(t *testing.T) {
	repo := newRequestRepo(t)

	first := repo.Upsert("100", "200", models.RequestStudentToMentor)
	second := repo.Upsert("200", "100", models.RequestMentorToStudent)

	if first.Key != second.Key {
		t.Fatalf("expected same pair key, got %q and %q", first.Key, second.Key)
	}

	stored, ok := repo.Get("100", "200")
	if !ok {
		t.Fatal("expected request to exist")
	}
	if stored.Direction != models.RequestMentorToStudent || stored.Initiator != "200" {
		t.Fatalf("expected newer request to win, got %+v", stored)
	}

	if got := len(repo.ListForRecipient("100")); got != 1 {
		t.Fatalf("expected 1 pending request for 100, got %d", got)
	}
	if got := len(repo.ListForRecipient("200")); got != 0 {
		t.Fatalf("expected 0 pending requests for 200, got %d", got)
	}
}

func TestRemoveClearsPendingRequest(t *testing.T) {
	repo := newRequestRepo(t)
	repo.Upsert("100", "200", models.RequestStudentToMentor)

	repo.Remove("200", "100")
	if _, ok := repo.Get("100", "200"); ok {
		t.Fatal("expected request to be removed")
	}

	// removing a pair with no request is a no-op
	repo.Remove("100", "200")
}
