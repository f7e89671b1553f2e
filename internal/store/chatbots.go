package store

import (
	"sort"
	"strings"

	apperrors "cryptodash/internal/errors"
	"cryptodash/internal/models"
)

// GetUserChatbots returns all chatbots owned by a user, in insertion order.
func (s *MemStore) GetUserChatbots(userID int) []models.Chatbot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Chatbot, 0)
	for _, b := range s.chatbots {
		if b.UserID == userID {
			out = append(out, *b.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// GetChatbot returns the chatbot with the given id, or ok=false when absent.
func (s *MemStore) GetChatbot(chatbotID int) (*models.Chatbot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.chatbots[chatbotID]
	if !ok {
		return nil, false
	}
	return b.Clone(), true
}

// CreateChatbot inserts a new bot project. Platform defaults to web and
// Status to active; counters start at zero. Status transitions after
// creation are driven entirely by callers through UpdateChatbot.
func (s *MemStore) CreateChatbot(p NewChatbot) *models.Chatbot {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextChatbotID
	s.nextChatbotID++

	platform := p.Platform
	if platform == "" {
		platform = models.PlatformWeb
	}
	status := p.Status
	if status == "" {
		status = models.BotStatusActive
	}

	now := s.now()
	bot := &models.Chatbot{
		ID:            id,
		UserID:        p.UserID,
		Name:          p.Name,
		Description:   p.Description,
		Platform:      platform,
		Status:        status,
		Knowledge:     p.Knowledge,
		DeploymentURL: p.DeploymentURL,
		LastUpdated:   now,
		CreatedAt:     now,
	}
	s.chatbots[id] = bot
	return bot.Clone()
}

// UpdateChatbot merges the non-nil fields of upd into the chatbot and
// refreshes LastUpdated.
func (s *MemStore) UpdateChatbot(chatbotID int, upd ChatbotUpdate) (*models.Chatbot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.chatbots[chatbotID]
	if !ok {
		return nil, apperrors.ErrChatbotNotFound
	}

	if upd.Name != nil {
		b.Name = *upd.Name
	}
	if upd.Description != nil {
		b.Description = *upd.Description
	}
	if upd.Platform != nil {
		b.Platform = *upd.Platform
	}
	if upd.Status != nil {
		b.Status = *upd.Status
	}
	if upd.Knowledge != nil {
		b.Knowledge = *upd.Knowledge
	}
	if upd.DeploymentURL != nil {
		b.DeploymentURL = *upd.DeploymentURL
	}
	if upd.UserCount != nil {
		b.UserCount = *upd.UserCount
	}
	if upd.MessageCount != nil {
		b.MessageCount = *upd.MessageCount
	}
	b.LastUpdated = s.now()
	return b.Clone(), nil
}

// DeleteChatbot removes a chatbot and cascades to its files, its sessions,
// and those sessions' messages. Deleting an id that does not exist is a
// no-op.
func (s *MemStore) DeleteChatbot(chatbotID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.chatbots, chatbotID)

	for id, f := range s.chatbotFiles {
		if f.ChatbotID == chatbotID {
			delete(s.chatbotFiles, id)
		}
	}

	doomed := make(map[int]bool)
	for id, sess := range s.chatSessions {
		if sess.ChatbotID == chatbotID {
			doomed[id] = true
			delete(s.chatSessions, id)
		}
	}
	for id, m := range s.chatMessages {
		if doomed[m.SessionID] {
			delete(s.chatMessages, id)
		}
	}
}

// GetChatbotFiles returns the uploaded knowledge files of a chatbot, in
// insertion order.
func (s *MemStore) GetChatbotFiles(chatbotID int) []models.ChatbotFile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ChatbotFile, 0)
	for _, f := range s.chatbotFiles {
		if f.ChatbotID == chatbotID {
			out = append(out, *f.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CreateChatbotFiles bulk-inserts uploaded file metadata. ProcessingStatus
// defaults to pending unless specified.
func (s *MemStore) CreateChatbotFiles(files []NewChatbotFile) []models.ChatbotFile {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.ChatbotFile, 0, len(files))
	for _, nf := range files {
		id := s.nextFileID
		s.nextFileID++

		status := nf.ProcessingStatus
		if status == "" {
			status = models.FileStatusPending
		}

		file := &models.ChatbotFile{
			ID:               id,
			ChatbotID:        nf.ChatbotID,
			FileName:         nf.FileName,
			FileType:         nf.FileType,
			FileSize:         nf.FileSize,
			ExtractedContent: nf.ExtractedContent,
			ProcessingStatus: status,
			ErrorMessage:     nf.ErrorMessage,
			UploadDate:       s.now(),
		}
		s.chatbotFiles[id] = file
		out = append(out, *file.Clone())
	}
	return out
}

// GetChatSession returns the session with the given id, or ok=false when
// absent.
func (s *MemStore) GetChatSession(sessionID int) (*models.ChatSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.chatSessions[sessionID]
	if !ok {
		return nil, false
	}
	return sess.Clone(), true
}

// CreateChatSession inserts a new conversation thread. MessageCount starts
// at zero, IsActive defaults to true, and both timestamps are stamped to
// now.
func (s *MemStore) CreateChatSession(p NewChatSession) *models.ChatSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSessionID
	s.nextSessionID++

	isActive := true
	if p.IsActive != nil {
		isActive = *p.IsActive
	}

	now := s.now()
	sess := &models.ChatSession{
		ID:           id,
		ChatbotID:    p.ChatbotID,
		UserID:       p.UserID,
		Token:        p.Token,
		StartedAt:    now,
		LastActivity: now,
		IsActive:     isActive,
	}
	s.chatSessions[id] = sess
	return sess.Clone()
}

// UpdateChatSession merges the non-nil fields of upd into the session and
// refreshes LastActivity.
func (s *MemStore) UpdateChatSession(sessionID int, upd SessionUpdate) (*models.ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.chatSessions[sessionID]
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}

	if upd.IsActive != nil {
		sess.IsActive = *upd.IsActive
	}
	sess.LastActivity = s.now()
	return sess.Clone(), nil
}

// GetChatbotSessions returns all sessions of a chatbot, in insertion order.
func (s *MemStore) GetChatbotSessions(chatbotID int) []models.ChatSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ChatSession, 0)
	for _, sess := range s.chatSessions {
		if sess.ChatbotID == chatbotID {
			out = append(out, *sess.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// GetSessionMessages returns a session's messages sorted by timestamp
// ascending. Each entry is a defensive copy.
func (s *MemStore) GetSessionMessages(sessionID int) []models.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ChatMessage, 0)
	for _, m := range s.chatMessages {
		if m.SessionID == sessionID {
			out = append(out, *m.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.Before(out[j].Timestamp)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// CreateChatMessage appends one turn to a session. Role must be exactly
// "user" or "bot" and content must be non-blank after trimming; neither is
// ever coerced. The parent session's MessageCount and LastActivity are
// updated in the same critical section so the count always equals the
// number of stored messages.
func (s *MemStore) CreateChatMessage(p NewChatMessage) (*models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !p.Role.Valid() {
		return nil, apperrors.ErrInvalidRole
	}
	content := strings.TrimSpace(p.Content)
	if content == "" {
		return nil, apperrors.ErrEmptyMessage
	}
	sess, ok := s.chatSessions[p.SessionID]
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}

	id := s.nextMessageID
	s.nextMessageID++

	msg := &models.ChatMessage{
		ID:           id,
		SessionID:    p.SessionID,
		Role:         p.Role,
		Content:      content,
		Timestamp:    s.now(),
		HasError:     p.HasError,
		ErrorMessage: p.ErrorMessage,
	}
	if p.TokensUsed != nil {
		v := *p.TokensUsed
		msg.TokensUsed = &v
	}
	if p.ProcessingTime != nil {
		v := *p.ProcessingTime
		msg.ProcessingTime = &v
	}
	s.chatMessages[id] = msg

	sess.MessageCount++
	sess.LastActivity = msg.Timestamp

	return msg.Clone(), nil
}
