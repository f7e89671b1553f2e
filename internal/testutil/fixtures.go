// Package testutil provides test helpers for setting up stores, creating
// fixtures, and making assertions.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"cryptodash/internal/models"
	"cryptodash/internal/store"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a unique username and email.
func CreateTestUser(t *testing.T, s store.Storage) *models.User {
	t.Helper()
	n := nextID()
	return CreateTestUserWithName(t, s, fmt.Sprintf("user%d", n))
}

// CreateTestUserWithName creates a user with the given username and a
// matching unique email.
func CreateTestUserWithName(t *testing.T, s store.Storage, username string) *models.User {
	t.Helper()
	user, err := s.CreateUser(store.NewUser{
		Username: username,
		Email:    username + "@test.com",
		Password: "hashed-password",
	})
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestPortfolio creates a portfolio for the user with a unique wallet
// address.
func CreateTestPortfolio(t *testing.T, s store.Storage, userID int) *models.Portfolio {
	t.Helper()
	return s.CreatePortfolio(store.NewPortfolio{
		UserID:        userID,
		WalletAddress: fmt.Sprintf("0xAbC%013d", nextID()),
	})
}

// CreateTestChatbot creates an active web chatbot for the user.
func CreateTestChatbot(t *testing.T, s store.Storage, userID int) *models.Chatbot {
	t.Helper()
	return s.CreateChatbot(store.NewChatbot{
		UserID:    userID,
		Name:      fmt.Sprintf("bot%d", nextID()),
		Knowledge: "test knowledge base",
	})
}

// CreateTestSession creates a chat session between the user and the chatbot.
func CreateTestSession(t *testing.T, s store.Storage, chatbotID, userID int) *models.ChatSession {
	t.Helper()
	return s.CreateChatSession(store.NewChatSession{
		ChatbotID: chatbotID,
		UserID:    userID,
		Token:     fmt.Sprintf("session-token-%d", nextID()),
	})
}

// AppendTestMessage appends a user-role message with the given content.
func AppendTestMessage(t *testing.T, s store.Storage, sessionID int, content string) *models.ChatMessage {
	t.Helper()
	msg, err := s.CreateChatMessage(store.NewChatMessage{
		SessionID: sessionID,
		Role:      models.RoleUser,
		Content:   content,
	})
	if err != nil {
		t.Fatalf("failed to append test message: %v", err)
	}
	return msg
}
