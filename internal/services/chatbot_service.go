package services

import (
	"context"
	"fmt"
	"time"

	apperrors "cryptodash/internal/errors"
	"cryptodash/internal/logger"
	"cryptodash/internal/models"
	"cryptodash/internal/store"
	"cryptodash/internal/uuid"
)

// chatbotService handles the bot builder and its chat surface. Knowledge
// processing is simulated: a freshly created bot sits in processing until
// activationDelay elapses, then flips to active. A zero delay creates bots
// active immediately, which keeps tests synchronous.
type chatbotService struct {
	store           store.Storage
	responder       BotResponder
	activationDelay time.Duration
}

// NewChatbotService creates a new ChatbotServicer. responder may be nil, in
// which case every reply uses the canned fallback.
func NewChatbotService(s store.Storage, responder BotResponder, activationDelay time.Duration) ChatbotServicer {
	return &chatbotService{
		store:           s,
		responder:       responder,
		activationDelay: activationDelay,
	}
}

// CreateChatbot registers a new bot project for the user.
func (s *chatbotService) CreateChatbot(userID int, name, description string, platform models.BotPlatform, knowledge, deploymentURL string) (*models.Chatbot, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Chatbot name is required")
	}
	if platform != "" && !platform.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Unknown platform: "+string(platform))
	}

	status := models.BotStatusActive
	if s.activationDelay > 0 {
		status = models.BotStatusProcessing
	}

	bot := s.store.CreateChatbot(store.NewChatbot{
		UserID:        userID,
		Name:          name,
		Description:   description,
		Platform:      platform,
		Status:        status,
		Knowledge:     knowledge,
		DeploymentURL: deploymentURL,
	})

	if s.activationDelay > 0 {
		id := bot.ID
		time.AfterFunc(s.activationDelay, func() {
			active := models.BotStatusActive
			if _, err := s.store.UpdateChatbot(id, store.ChatbotUpdate{Status: &active}); err != nil {
				logger.Get().Debugw("Chatbot deleted before activation", "chatbot_id", id)
			}
		})
	}
	return bot, nil
}

// GetUserChatbots returns all bots owned by the user.
func (s *chatbotService) GetUserChatbots(userID int) []models.Chatbot {
	return s.store.GetUserChatbots(userID)
}

// GetChatbot returns one bot, scoped to its owner.
func (s *chatbotService) GetChatbot(userID, chatbotID int) (*models.Chatbot, error) {
	bot, ok := s.store.GetChatbot(chatbotID)
	if !ok || bot.UserID != userID {
		return nil, apperrors.ErrChatbotNotFound
	}
	return bot, nil
}

// UpdateChatbot merges the given fields into an owned bot.
func (s *chatbotService) UpdateChatbot(userID, chatbotID int, upd store.ChatbotUpdate) (*models.Chatbot, error) {
	if _, err := s.GetChatbot(userID, chatbotID); err != nil {
		return nil, err
	}
	if upd.Platform != nil && !upd.Platform.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Unknown platform: "+string(*upd.Platform))
	}
	if upd.Status != nil && !upd.Status.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Unknown status: "+string(*upd.Status))
	}
	return s.store.UpdateChatbot(chatbotID, upd)
}

// DeleteChatbot removes an owned bot together with its files, sessions, and
// messages.
func (s *chatbotService) DeleteChatbot(userID, chatbotID int) error {
	if _, err := s.GetChatbot(userID, chatbotID); err != nil {
		return err
	}
	s.store.DeleteChatbot(chatbotID)
	return nil
}

// AddFiles records uploaded knowledge files against an owned bot. Files
// start as pending; the processing pipeline flips them later.
func (s *chatbotService) AddFiles(userID, chatbotID int, files []FileInput) ([]models.ChatbotFile, error) {
	if _, err := s.GetChatbot(userID, chatbotID); err != nil {
		return nil, err
	}
	rows := make([]store.NewChatbotFile, 0, len(files))
	for _, f := range files {
		rows = append(rows, store.NewChatbotFile{
			ChatbotID:        chatbotID,
			FileName:         f.FileName,
			FileType:         f.FileType,
			FileSize:         f.FileSize,
			ExtractedContent: f.ExtractedContent,
		})
	}
	return s.store.CreateChatbotFiles(rows), nil
}

// GetFiles returns the knowledge files of an owned bot.
func (s *chatbotService) GetFiles(userID, chatbotID int) ([]models.ChatbotFile, error) {
	if _, err := s.GetChatbot(userID, chatbotID); err != nil {
		return nil, err
	}
	return s.store.GetChatbotFiles(chatbotID), nil
}

// StartSession opens a conversation thread against an owned bot. When token
// is empty a fresh UUID is minted so the client has an opaque handle to poll
// with.
func (s *chatbotService) StartSession(userID, chatbotID int, token string) (*models.ChatSession, error) {
	bot, err := s.GetChatbot(userID, chatbotID)
	if err != nil {
		return nil, err
	}
	if token == "" {
		token = uuid.New()
	}

	sess := s.store.CreateChatSession(store.NewChatSession{
		ChatbotID: chatbotID,
		UserID:    userID,
		Token:     token,
	})

	userCount := bot.UserCount + 1
	if _, err := s.store.UpdateChatbot(chatbotID, store.ChatbotUpdate{UserCount: &userCount}); err != nil {
		return nil, err
	}
	return sess, nil
}

// GetSession returns one session, scoped to its owner.
func (s *chatbotService) GetSession(userID, sessionID int) (*models.ChatSession, error) {
	sess, ok := s.store.GetChatSession(sessionID)
	if !ok || sess.UserID != userID {
		return nil, apperrors.ErrSessionNotFound
	}
	return sess, nil
}

// GetChatbotSessions returns all sessions of an owned bot.
func (s *chatbotService) GetChatbotSessions(userID, chatbotID int) ([]models.ChatSession, error) {
	if _, err := s.GetChatbot(userID, chatbotID); err != nil {
		return nil, err
	}
	return s.store.GetChatbotSessions(chatbotID), nil
}

// AppendMessage records one turn verbatim against an owned session. Role and
// content rules are enforced by the store.
func (s *chatbotService) AppendMessage(userID, sessionID int, input MessageInput) (*models.ChatMessage, error) {
	if _, err := s.GetSession(userID, sessionID); err != nil {
		return nil, err
	}
	return s.store.CreateChatMessage(store.NewChatMessage{
		SessionID:      sessionID,
		Role:           input.Role,
		Content:        input.Content,
		TokensUsed:     input.TokensUsed,
		ProcessingTime: input.ProcessingTime,
		HasError:       input.HasError,
		ErrorMessage:   input.ErrorMessage,
	})
}

// GetMessages returns an owned session's transcript in timestamp order.
func (s *chatbotService) GetMessages(userID, sessionID int) ([]models.ChatMessage, error) {
	if _, err := s.GetSession(userID, sessionID); err != nil {
		return nil, err
	}
	return s.store.GetSessionMessages(sessionID), nil
}

// SendMessage runs one full chat turn: the user's message is appended, the
// responder produces a reply, and the reply is appended as the bot turn.
// When the responder is unavailable or fails, a canned reply is stored
// instead so the transcript always pairs up. Returns the stored user and bot
// messages in that order.
func (s *chatbotService) SendMessage(ctx context.Context, userID, sessionID int, content string) (*models.ChatMessage, *models.ChatMessage, error) {
	sess, err := s.GetSession(userID, sessionID)
	if err != nil {
		return nil, nil, err
	}
	bot, ok := s.store.GetChatbot(sess.ChatbotID)
	if !ok {
		return nil, nil, apperrors.ErrChatbotNotFound
	}

	userMsg, err := s.store.CreateChatMessage(store.NewChatMessage{
		SessionID: sessionID,
		Role:      models.RoleUser,
		Content:   content,
	})
	if err != nil {
		return nil, nil, err
	}

	start := time.Now()
	reply, hadError := s.respond(ctx, bot, userMsg.Content)
	elapsed := int(time.Since(start).Milliseconds())

	botMsg, err := s.store.CreateChatMessage(store.NewChatMessage{
		SessionID:      sessionID,
		Role:           models.RoleBot,
		Content:        reply,
		ProcessingTime: &elapsed,
		HasError:       hadError,
	})
	if err != nil {
		return nil, nil, err
	}

	messageCount := bot.MessageCount + 2
	if _, err := s.store.UpdateChatbot(bot.ID, store.ChatbotUpdate{MessageCount: &messageCount}); err != nil {
		return nil, nil, err
	}
	return userMsg, botMsg, nil
}

func (s *chatbotService) respond(ctx context.Context, bot *models.Chatbot, message string) (string, bool) {
	if s.responder == nil {
		return cannedReply(message), false
	}
	reply, err := s.responder.Respond(ctx, bot, message)
	if err != nil {
		logger.Get().Warnw("Responder failed, using fallback reply", "chatbot_id", bot.ID, "error", err)
		return cannedReply(message), true
	}
	return reply, false
}

func cannedReply(message string) string {
	return fmt.Sprintf("Hello! I'm an AI assistant. You said: %q. How can I help you further?", message)
}
