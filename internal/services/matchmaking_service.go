package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/kennethtrancoding/my-first-day-sub000/internal/models"
)

type MentorLister interface {
	ListMentors() []models.Account
}

type EngagementChecker interface {
	HasThreads(participantID string) bool
}

// MatchmakingService scores every candidate mentor against a student profile
// with keyword-overlap heuristics and fixed weighted bonuses. Pure function
// of its inputs; repeated calls return an identically ordered list.
type MatchmakingService struct {
	mentors       MentorLister
	conversations EngagementChecker
}

func NewMatchmakingService(mentors MentorLister, conversations EngagementChecker) *MatchmakingService {
	return &MatchmakingService{mentors: mentors, conversations: conversations}
}

const (
	peerBaseScore        = 4.0
	teacherBaseScore     = 3.0
	peerInterestBonus    = 3.0
	teacherInterestBonus = 2.0
	noInterestPenalty    = 1.0
	sameGradeBonus       = 2.0
	nearGradeBonus       = 1.0
	engagementNudge      = 0.25
)

// interestKeywords maps canonical interest labels to the substrings matched
// against a mentor's combined bio and department text. Unknown interests
// fall back to matching their own normalized label.
var interestKeywords = map[string][]string{
	"robotics": {"robot", "robotics", "makerspace", "engineering", "stem"},
	"art":      {"art", "drawing", "painting", "design", "studio"},
	"music":    {"music", "band", "orchestra", "choir", "instrument"},
	"sports":   {"sport", "athletic", "basketball", "soccer", "track", "fitness"},
	"coding":   {"coding", "programming", "computer", "software", "stem"},
	"science":  {"science", "lab", "biology", "chemistry", "physics", "stem"},
	"theater":  {"theater", "theatre", "drama", "stage", "acting"},
	"reading":  {"reading", "book", "library", "literature", "writing"},
	"gaming":   {"gaming", "game", "esports", "chess"},
	"math":     {"math", "mathematics", "algebra", "mathlete", "stem"},
}

// GetMatchedMentors ranks the mentor pool for the student profile. Ties
// break by preferring peer mentors over teacher mentors, then ascending
// mentor identifier, so the order is deterministic and stable.
func (s *MatchmakingService) GetMatchedMentors(profile *models.Profile, limit int) []models.MentorMatch {
	pool := s.mentors.ListMentors()

	matches := make([]models.MentorMatch, 0, len(pool))
	for _, mentor := range pool {
		score, reasons := s.scoreMentor(profile, &mentor)
		matches = append(matches, models.MentorMatch{
			Mentor:  mentor,
			Score:   score,
			Reasons: reasons,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		iPeer := mentorType(&matches[i].Mentor) == models.MentorTypePeer
		jPeer := mentorType(&matches[j].Mentor) == models.MentorTypePeer
		if iPeer != jPeer {
			return iPeer
		}
		return matches[i].Mentor.ID < matches[j].Mentor.ID
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

func (s *MatchmakingService) scoreMentor(profile *models.Profile, mentor *models.Account) (float64, []string) {
	isPeer := mentorType(mentor) == models.MentorTypePeer

	score := teacherBaseScore
	if isPeer {
		score = peerBaseScore
	}

	reasons := make([]string, 0, 2)
	haystack := mentorText(mentor)
	interests := profileInterests(profile)

	matchedAny := false
	for _, interest := range interests {
		if !keywordsMatch(interest, haystack) {
			continue
		}
		matchedAny = true
		if isPeer {
			score += peerInterestBonus
		} else {
			score += teacherInterestBonus
		}
		reasons = append(reasons, fmt.Sprintf("Shares your interest in %s", interest))
	}
	if len(interests) > 0 && !matchedAny {
		score -= noInterestPenalty
	}

	if isPeer {
		if bonus, reason := gradeProximity(profile, mentor); bonus > 0 {
			score += bonus
			reasons = append(reasons, reason)
		}
	}

	if s.conversations.HasThreads(strconv.FormatInt(mentor.ID, 10)) {
		score += engagementNudge
	}

	if score < 0 {
		score = 0
	}
	return score, reasons
}

func mentorType(mentor *models.Account) string {
	if mentor.Profile.Mentor != nil && mentor.Profile.Mentor.Type == models.MentorTypeTeacher {
		return models.MentorTypeTeacher
	}
	return models.MentorTypePeer
}

func mentorText(mentor *models.Account) string {
	text := mentor.Profile.Bio
	if mentor.Profile.Mentor != nil {
		text += " " + mentor.Profile.Mentor.Department
	}
	return strings.ToLower(text)
}

func profileInterests(profile *models.Profile) []string {
	if profile == nil {
		return nil
	}
	interests := make([]string, 0, len(profile.Interests))
	for _, interest := range profile.Interests {
		if strings.TrimSpace(interest) != "" {
			interests = append(interests, interest)
		}
	}
	return interests
}

func keywordsMatch(interest, haystack string) bool {
	normalized := strings.ToLower(strings.TrimSpace(interest))
	keywords, ok := interestKeywords[normalized]
	if !ok {
		keywords = []string{normalized}
	}
	for _, keyword := range keywords {
		if strings.Contains(haystack, keyword) {
			return true
		}
	}
	return false
}

func gradeProximity(profile *models.Profile, mentor *models.Account) (float64, string) {
	if profile == nil {
		return 0, ""
	}
	studentGrade, err := strconv.Atoi(strings.TrimSpace(profile.Grade))
	if err != nil {
		return 0, ""
	}
	mentorGrade, err := strconv.Atoi(strings.TrimSpace(mentor.Profile.Grade))
	if err != nil {
		return 0, ""
	}

	switch diff := studentGrade - mentorGrade; {
	case diff == 0:
		return sameGradeBonus, "In the same grade as you"
	case diff == 1 || diff == -1:
		return nearGradeBonus, "One grade apart"
	default:
		return 0, ""
	}
}
