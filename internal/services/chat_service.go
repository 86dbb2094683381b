package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kennethtrancoding/my-first-day-sub000/internal/models"
	"github.com/kennethtrancoding/my-first-day-sub000/internal/repository"
)

type accountReader interface {
	GetByID(id int64) (*models.Account, bool)
}

type threadStore interface {
	AppendMessage(from, to, text string) models.Thread
	Get(a, b string) (models.Thread, bool)
	ListForParticipant(participantID string) []models.ThreadSummary
}

type requestStore interface {
	Upsert(initiator, recipient, direction string) models.ChatRequest
	Get(a, b string) (models.ChatRequest, bool)
	Remove(a, b string)
	ListForRecipient(recipientID string) []models.ChatRequest
}

type notifier interface {
	Notify(recipient *models.Account, input repository.NotificationInput)
}

// ChatService runs the messaging and request flow between students and
// mentors. A reply from a request's recipient doubles as acceptance.
type ChatService struct {
	conversations threadStore
	requests      requestStore
	accounts      accountReader
	notifications notifier
}

type ChatDelivery struct {
	ThreadKey   string
	Message     models.Message
	RecipientID string
}

func NewChatService(
	conversations threadStore,
	requests requestStore,
	accounts accountReader,
	notifications notifier,
) *ChatService {
	return &ChatService{
		conversations: conversations,
		requests:      requests,
		accounts:      accounts,
		notifications: notifications,
	}
}

func chatRole(role string) bool {
	return role == models.RoleStudent || role == models.RoleMentor
}

func participantID(account *models.Account) string {
	return strconv.FormatInt(account.ID, 10)
}

func (s *ChatService) resolvePeer(peerID string) (*models.Account, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(peerID), 10, 64)
	if err != nil || id <= 0 {
		return nil, ErrInvalidInput
	}
	peer, ok := s.accounts.GetByID(id)
	if !ok {
		return nil, ErrNotFound
	}
	return peer, nil
}

func (s *ChatService) ListConversations(actorID, role string) ([]models.ThreadSummary, error) {
	if !chatRole(role) {
		return nil, ErrForbidden
	}
	return s.conversations.ListForParticipant(actorID), nil
}

// GetMessages returns the actor-relative projection of the thread with peer.
// A pair with no history yields an empty projection, not an error.
func (s *ChatService) GetMessages(actorID, role, peerID string) ([]models.ProjectedMessage, error) {
	if !chatRole(role) {
		return nil, ErrForbidden
	}
	if _, err := s.resolvePeer(peerID); err != nil {
		return nil, err
	}

	thread, ok := s.conversations.Get(actorID, peerID)
	if !ok {
		return []models.ProjectedMessage{}, nil
	}
	return repository.ViewerProjection(thread, actorID), nil
}

// SendMessage appends to the pair's thread. When the sender is the recipient
// of a pending chat request, replying clears that request. The recipient is
// notified unless their settings mute message notifications.
func (s *ChatService) SendMessage(actorID, role, peerID, text string) (*ChatDelivery, error) {
	if !chatRole(role) {
		return nil, ErrForbidden
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrInvalidInput
	}

	peer, err := s.resolvePeer(peerID)
	if err != nil {
		return nil, err
	}
	if participantID(peer) == repository.NormalizeParticipant(actorID) {
		return nil, ErrInvalidInput
	}

	thread := s.conversations.AppendMessage(actorID, peerID, trimmed)
	message := thread.Messages[len(thread.Messages)-1]

	if request, ok := s.requests.Get(actorID, peerID); ok {
		if request.Recipient == repository.NormalizeParticipant(actorID) {
			s.requests.Remove(actorID, peerID)
		}
	}

	s.notifications.Notify(peer, repository.NotificationInput{
		Message:   "You have a new message",
		Type:      models.NotificationMessage,
		Link:      "/messages/" + repository.NormalizeParticipant(actorID),
		ContextID: thread.Key,
	})

	return &ChatDelivery{
		ThreadKey:   thread.Key,
		Message:     message,
		RecipientID: participantID(peer),
	}, nil
}

// CreateRequest records a pending chat request toward peer, overwriting any
// earlier request for the pair.
func (s *ChatService) CreateRequest(actorID, role, peerID string) (models.ChatRequest, error) {
	if !chatRole(role) {
		return models.ChatRequest{}, ErrForbidden
	}
	peer, err := s.resolvePeer(peerID)
	if err != nil {
		return models.ChatRequest{}, err
	}

	direction := models.RequestStudentToMentor
	if role == models.RoleMentor {
		direction = models.RequestMentorToStudent
	}

	request := s.requests.Upsert(actorID, peerID, direction)

	s.notifications.Notify(peer, repository.NotificationInput{
		Message:   "Someone would like to chat with you",
		Type:      models.NotificationRequest,
		Link:      "/requests",
		ContextID: request.Key,
	})
	return request, nil
}

func (s *ChatService) ListRequests(actorID, role string) ([]models.ChatRequest, error) {
	if !chatRole(role) {
		return nil, ErrForbidden
	}
	return s.requests.ListForRecipient(actorID), nil
}

// ApproveRequest clears the pair's pending request without requiring a
// reply message. Only the request's recipient may approve.
func (s *ChatService) ApproveRequest(actorID, role, peerID string) error {
	if !chatRole(role) {
		return ErrForbidden
	}
	peer, err := s.resolvePeer(peerID)
	if err != nil {
		return err
	}

	request, ok := s.requests.Get(actorID, peerID)
	if !ok {
		return ErrNotFound
	}
	if request.Recipient != repository.NormalizeParticipant(actorID) {
		return ErrForbidden
	}

	s.requests.Remove(actorID, peerID)

	s.notifications.Notify(peer, repository.NotificationInput{
		Message:   "Your chat request was approved",
		Type:      models.NotificationRequestApproved,
		Link:      fmt.Sprintf("/messages/%s", repository.NormalizeParticipant(actorID)),
		ContextID: request.Key,
	})
	return nil
}

func FormatChatTimestamp(ts time.Time) string {
	return ts.UTC().Format(time.RFC3339)
}
