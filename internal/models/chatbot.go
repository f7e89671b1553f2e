package models

import "time"

// BotStatus is the lifecycle state of a chatbot. The store records whatever
// state the caller asserts; "processing" transitions are driven by service
// orchestration, never by the store itself.
type BotStatus string

const (
	BotStatusActive     BotStatus = "active"
	BotStatusInactive   BotStatus = "inactive"
	BotStatusProcessing BotStatus = "processing"
)

// Valid reports whether s is a known chatbot status.
func (s BotStatus) Valid() bool {
	switch s {
	case BotStatusActive, BotStatusInactive, BotStatusProcessing:
		return true
	}
	return false
}

// BotPlatform is the deployment target of a chatbot.
type BotPlatform string

const (
	PlatformWeb      BotPlatform = "web"
	PlatformTelegram BotPlatform = "telegram"
	PlatformDiscord  BotPlatform = "discord"
	PlatformSlack    BotPlatform = "slack"
)

// Valid reports whether p is a known platform.
func (p BotPlatform) Valid() bool {
	switch p {
	case PlatformWeb, PlatformTelegram, PlatformDiscord, PlatformSlack:
		return true
	}
	return false
}

// FileStatus is the processing state of an uploaded knowledge file.
type FileStatus string

const (
	FileStatusPending   FileStatus = "pending"
	FileStatusCompleted FileStatus = "completed"
	FileStatusFailed    FileStatus = "failed"
)

// Valid reports whether s is a known file processing status.
func (s FileStatus) Valid() bool {
	switch s {
	case FileStatusPending, FileStatusCompleted, FileStatusFailed:
		return true
	}
	return false
}

// Chatbot is a user-owned bot project with an attached knowledge base.
type Chatbot struct {
	ID            int         `json:"id"`
	UserID        int         `json:"user_id"`
	Name          string      `json:"name"`
	Description   string      `json:"description,omitempty"`
	Platform      BotPlatform `json:"platform"`
	Status        BotStatus   `json:"status"`
	Knowledge     string      `json:"knowledge,omitempty"`
	DeploymentURL string      `json:"deployment_url,omitempty"`
	UserCount     int         `json:"user_count"`
	MessageCount  int         `json:"message_count"`
	LastUpdated   time.Time   `json:"last_updated"`
	CreatedAt     time.Time   `json:"created_at"`
}

// Clone returns a value copy of the chatbot.
func (b *Chatbot) Clone() *Chatbot {
	if b == nil {
		return nil
	}
	c := *b
	return &c
}

// ChatbotFile is metadata for an uploaded knowledge source. Files are
// cascade-deleted with their chatbot.
type ChatbotFile struct {
	ID               int        `json:"id"`
	ChatbotID        int        `json:"chatbot_id"`
	FileName         string     `json:"file_name"`
	FileType         string     `json:"file_type"`
	FileSize         int        `json:"file_size"`
	ExtractedContent string     `json:"extracted_content,omitempty"`
	ProcessingStatus FileStatus `json:"processing_status"`
	ErrorMessage     string     `json:"error_message,omitempty"`
	UploadDate       time.Time  `json:"upload_date"`
}

// Clone returns a value copy of the file record.
func (f *ChatbotFile) Clone() *ChatbotFile {
	if f == nil {
		return nil
	}
	c := *f
	return &c
}
