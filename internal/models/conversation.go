package models

import "time"

// Thread is the append-only message history between exactly two participants,
// addressed by the canonical pair key of their identifiers.
type Thread struct {
	Key          string    `json:"key"`
	Messages     []Message `json:"messages"`
	LastActivity time.Time `json:"last_activity,omitempty"`
}

type Message struct {
	ID     string    `json:"id"`
	Sender string    `json:"sender"`
	Text   string    `json:"text"`
	SentAt time.Time `json:"sent_at"`
}

const (
	DirectionIn  = "in"
	DirectionOut = "out"
)

// ProjectedMessage is a thread message mapped relative to one viewer.
type ProjectedMessage struct {
	ID        string    `json:"id"`
	Direction string    `json:"direction"`
	Text      string    `json:"text"`
	SentAt    time.Time `json:"sent_at"`
}

// ThreadSummary is one entry of a participant's conversation list.
type ThreadSummary struct {
	Key          string    `json:"key"`
	PeerID       string    `json:"peer_id"`
	LastMessage  *Message  `json:"last_message,omitempty"`
	LastActivity time.Time `json:"last_activity"`
}

// ChatRequest is a pending one-directional "may we talk" flag for a pair.
// At most one exists per unordered pair; a reply from the recipient clears it.
type ChatRequest struct {
	Key       string    `json:"key"`
	Initiator string    `json:"initiator"`
	Recipient string    `json:"recipient"`
	Direction string    `json:"direction"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	RequestStudentToMentor = "student_to_mentor"
	RequestMentorToStudent = "mentor_to_student"
)
