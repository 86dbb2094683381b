package models

import "time"

const (
	RoleStudent = "student"
	RoleMentor  = "mentor"
)

const (
	MentorTypePeer    = "peer"
	MentorTypeTeacher = "teacher"
)

// Account is one portal user. Passwords are stored as entered; the demo
// portal does not hash credentials.
type Account struct {
	ID                 int64     `json:"id"`
	Email              string    `json:"email"`
	Password           string    `json:"password"`
	Role               string    `json:"role"`
	OnboardingComplete bool      `json:"onboarding_complete"`
	Profile            Profile   `json:"profile"`
	Settings           Settings  `json:"settings"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type Profile struct {
	DisplayName    string        `json:"display_name,omitempty"`
	Grade          string        `json:"grade,omitempty"`
	Interests      []string      `json:"interests,omitempty"`
	Schedule       []ClassPeriod `json:"schedule,omitempty"`
	Bio            string        `json:"bio,omitempty"`
	MatchedMentors []MatchRef    `json:"matched_mentors,omitempty"`
	Mentor         *MentorInfo   `json:"mentor,omitempty"`
}

// MentorInfo carries the mentor-only profile fields. Nil on student accounts.
type MentorInfo struct {
	Type       string `json:"type"`
	Department string `json:"department,omitempty"`
}

type ClassPeriod struct {
	Period  int    `json:"period"`
	Subject string `json:"subject"`
	Room    string `json:"room,omitempty"`
}

// MatchRef is the cached copy of a computed mentor match. It is a fallback
// only: live recomputation always wins when it yields results.
type MatchRef struct {
	MentorID int64   `json:"mentor_id"`
	Score    float64 `json:"score"`
}

type Settings struct {
	NotifyMessages bool   `json:"notify_messages"`
	NotifyRequests bool   `json:"notify_requests"`
	DigestSchedule string `json:"digest_schedule,omitempty"`
	Available      bool   `json:"available"`
}

func DefaultSettings() Settings {
	return Settings{
		NotifyMessages: true,
		NotifyRequests: true,
		Available:      true,
	}
}

// MentorMatch pairs a mentor account with its heuristic score. Reasons hold
// human-readable explanations for each scoring bonus that fired.
type MentorMatch struct {
	Mentor  Account  `json:"mentor"`
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons"`
}
