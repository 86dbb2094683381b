package repository

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kennethtrancoding/my-first-day-sub000/internal/models"
	"github.com/kennethtrancoding/my-first-day-sub000/internal/storage"
	"github.com/kennethtrancoding/my-first-day-sub000/pkg/utils"
)

const accountsKey = "accounts"

var ErrEmailTaken = errors.New("email already registered")

// AccountRepository holds every account in one JSON blob and replaces the
// blob wholesale on each write.
type AccountRepository struct {
	store storage.Store
	log   *zap.Logger
	mu    sync.Mutex
}

func NewAccountRepository(store storage.Store, log *zap.Logger) *AccountRepository {
	return &AccountRepository{store: store, log: log}
}

func (r *AccountRepository) all() []models.Account {
	return storage.Load(r.log, r.store, accountsKey, func() []models.Account { return nil })
}

func (r *AccountRepository) save(accounts []models.Account) {
	storage.Save(r.log, r.store, accountsKey, accounts)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register appends a new account unless the normalized email is already
// taken. The caller is expected to route the account through onboarding
// before it is considered complete.
func (r *AccountRepository) Register(email, password, role string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	email = normalizeEmail(email)
	accounts := r.all()
	for _, account := range accounts {
		if normalizeEmail(account.Email) == email {
			return nil, ErrEmailTaken
		}
	}

	now := time.Now().UTC()
	account := models.Account{
		ID:        utils.NewAccountID(),
		Email:     email,
		Password:  password,
		Role:      role,
		Settings:  models.DefaultSettings(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if role == models.RoleMentor {
		account.Profile.Mentor = &models.MentorInfo{Type: models.MentorTypePeer}
	}

	r.save(append(accounts, account))
	return &account, nil
}

// Authenticate matches on normalized email and exact password. No hashing,
// no lockout: credentials are demo-grade on purpose.
func (r *AccountRepository) Authenticate(email, password string) (*models.Account, bool) {
	email = normalizeEmail(email)
	for _, account := range r.all() {
		if normalizeEmail(account.Email) == email && account.Password == password {
			found := account
			return &found, true
		}
	}
	return nil, false
}

func (r *AccountRepository) GetByID(id int64) (*models.Account, bool) {
	for _, account := range r.all() {
		if account.ID == id {
			found := account
			return &found, true
		}
	}
	return nil, false
}

func (r *AccountRepository) GetByEmail(email string) (*models.Account, bool) {
	email = normalizeEmail(email)
	for _, account := range r.all() {
		if normalizeEmail(account.Email) == email {
			found := account
			return &found, true
		}
	}
	return nil, false
}

type AccountPatch struct {
	Password           *string
	OnboardingComplete *bool
	Profile            *ProfilePatch
	Settings           *SettingsPatch
}

type ProfilePatch struct {
	DisplayName    *string
	Grade          *string
	Interests      *[]string
	Schedule       *[]models.ClassPeriod
	Bio            *string
	MatchedMentors *[]models.MatchRef
	MentorType     *string
	Department     *string
}

type SettingsPatch struct {
	NotifyMessages *bool
	NotifyRequests *bool
	DigestSchedule *string
	Available      *bool
}

// Update shallow-merges the patch at the top level and separately
// shallow-merges the profile and settings sub-objects, so a partial profile
// update cannot null out unrelated profile fields.
func (r *AccountRepository) Update(id int64, patch AccountPatch) (*models.Account, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	accounts := r.all()
	for i := range accounts {
		if accounts[i].ID != id {
			continue
		}

		applyAccountPatch(&accounts[i], patch)
		accounts[i].UpdatedAt = time.Now().UTC()
		r.save(accounts)
		updated := accounts[i]
		return &updated, true
	}
	return nil, false
}

func applyAccountPatch(account *models.Account, patch AccountPatch) {
	if patch.Password != nil {
		account.Password = *patch.Password
	}
	if patch.OnboardingComplete != nil {
		account.OnboardingComplete = *patch.OnboardingComplete
	}
	if patch.Profile != nil {
		applyProfilePatch(&account.Profile, *patch.Profile)
	}
	if patch.Settings != nil {
		applySettingsPatch(&account.Settings, *patch.Settings)
	}
}

func applyProfilePatch(profile *models.Profile, patch ProfilePatch) {
	if patch.DisplayName != nil {
		profile.DisplayName = *patch.DisplayName
	}
	if patch.Grade != nil {
		profile.Grade = *patch.Grade
	}
	if patch.Interests != nil {
		profile.Interests = *patch.Interests
	}
	if patch.Schedule != nil {
		profile.Schedule = *patch.Schedule
	}
	if patch.Bio != nil {
		profile.Bio = *patch.Bio
	}
	if patch.MatchedMentors != nil {
		profile.MatchedMentors = *patch.MatchedMentors
	}
	if patch.MentorType != nil || patch.Department != nil {
		if profile.Mentor == nil {
			profile.Mentor = &models.MentorInfo{}
		}
		if patch.MentorType != nil {
			profile.Mentor.Type = *patch.MentorType
		}
		if patch.Department != nil {
			profile.Mentor.Department = *patch.Department
		}
	}
}

func applySettingsPatch(settings *models.Settings, patch SettingsPatch) {
	if patch.NotifyMessages != nil {
		settings.NotifyMessages = *patch.NotifyMessages
	}
	if patch.NotifyRequests != nil {
		settings.NotifyRequests = *patch.NotifyRequests
	}
	if patch.DigestSchedule != nil {
		settings.DigestSchedule = *patch.DigestSchedule
	}
	if patch.Available != nil {
		settings.Available = *patch.Available
	}
}

// UpdateEmail re-validates uniqueness and returns a human-readable reason
// string when the change is rejected.
func (r *AccountRepository) UpdateEmail(id int64, newEmail string) (*models.Account, string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	newEmail = normalizeEmail(newEmail)
	if newEmail == "" || !strings.Contains(newEmail, "@") {
		return nil, "email address is not valid"
	}

	accounts := r.all()
	for _, account := range accounts {
		if account.ID != id && normalizeEmail(account.Email) == newEmail {
			return nil, "that email is already in use by another account"
		}
	}

	for i := range accounts {
		if accounts[i].ID != id {
			continue
		}
		accounts[i].Email = newEmail
		accounts[i].UpdatedAt = time.Now().UTC()
		r.save(accounts)
		updated := accounts[i]
		return &updated, ""
	}
	return nil, "account not found"
}

type AccountFilter struct {
	Role          string
	IDs           []int64
	Emails        []string
	CreatedAfter  time.Time
	CreatedBefore time.Time
	Grade         string
	Search        string
	SortBy        string
	SortDesc      bool
	Offset        int
	Limit         int
}

// Find evaluates every predicate as one in-memory filter/sort/slice pipeline.
// Linear scans only; fine at portal scale, no indexing.
func (r *AccountRepository) Find(filter AccountFilter) ([]models.Account, int) {
	idSet := make(map[int64]struct{}, len(filter.IDs))
	for _, id := range filter.IDs {
		idSet[id] = struct{}{}
	}
	emailSet := make(map[string]struct{}, len(filter.Emails))
	for _, email := range filter.Emails {
		emailSet[normalizeEmail(email)] = struct{}{}
	}
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	matched := make([]models.Account, 0)
	for _, account := range r.all() {
		if filter.Role != "" && account.Role != filter.Role {
			continue
		}
		if len(idSet) > 0 {
			if _, ok := idSet[account.ID]; !ok {
				continue
			}
		}
		if len(emailSet) > 0 {
			if _, ok := emailSet[normalizeEmail(account.Email)]; !ok {
				continue
			}
		}
		if !filter.CreatedAfter.IsZero() && account.CreatedAt.Before(filter.CreatedAfter) {
			continue
		}
		if !filter.CreatedBefore.IsZero() && account.CreatedAt.After(filter.CreatedBefore) {
			continue
		}
		if filter.Grade != "" && account.Profile.Grade != filter.Grade {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(account.Email), search) &&
			!strings.Contains(strings.ToLower(account.Profile.DisplayName), search) {
			continue
		}
		matched = append(matched, account)
	}

	sortAccounts(matched, filter.SortBy, filter.SortDesc)

	total := len(matched)
	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return []models.Account{}, total
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, total
}

func sortAccounts(accounts []models.Account, sortBy string, desc bool) {
	less := func(i, j int) bool {
		switch sortBy {
		case "email":
			return normalizeEmail(accounts[i].Email) < normalizeEmail(accounts[j].Email)
		case "display_name":
			return strings.ToLower(accounts[i].Profile.DisplayName) < strings.ToLower(accounts[j].Profile.DisplayName)
		default:
			if accounts[i].CreatedAt.Equal(accounts[j].CreatedAt) {
				return accounts[i].ID < accounts[j].ID
			}
			return accounts[i].CreatedAt.Before(accounts[j].CreatedAt)
		}
	}
	if desc {
		sort.SliceStable(accounts, func(i, j int) bool { return less(j, i) })
		return
	}
	sort.SliceStable(accounts, less)
}

// ListMentors is the candidate pool for matchmaking.
func (r *AccountRepository) ListMentors() []models.Account {
	mentors, _ := r.Find(AccountFilter{Role: models.RoleMentor})
	return mentors
}
