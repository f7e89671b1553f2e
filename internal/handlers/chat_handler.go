package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "cryptodash/internal/errors"
	"cryptodash/internal/models"
	"cryptodash/internal/services"
)

// ChatHandler handles chat session and message requests.
type ChatHandler struct {
	chatbotService services.ChatbotServicer
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatbotService services.ChatbotServicer) *ChatHandler {
	return &ChatHandler{chatbotService: chatbotService}
}

// StartSessionRequest represents the session creation payload. An empty
// token requests a server-minted one.
type StartSessionRequest struct {
	Token string `json:"session_id" binding:"omitempty,max=128"`
}

// SendMessageRequest represents one outgoing user message.
type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// AppendMessageRequest represents one verbatim transcript entry, used by
// integrations that bring their own bot replies.
type AppendMessageRequest struct {
	Role           string `json:"role" binding:"required,chat_role"`
	Content        string `json:"content" binding:"required"`
	TokensUsed     *int   `json:"tokens_used"`
	ProcessingTime *int   `json:"processing_time"`
	HasError       bool   `json:"has_error"`
	ErrorMessage   string `json:"error_message"`
}

// StartSession handles opening a conversation thread.
// @Summary     Start chat session
// @Description Open a new conversation thread against a chatbot
// @Tags        chat
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                 true  "Chatbot ID"
// @Param       request body StartSessionRequest false "Optional session token"
// @Success     201 {object} models.ChatSession "Session created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Chatbot not found"
// @Router      /chatbots/{id}/sessions [post]
func (h *ChatHandler) StartSession(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	chatbotID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req StartSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
	}

	sess, err := h.chatbotService.StartSession(userID, chatbotID, req.Token)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"session": sess})
}

// GetSessions handles listing a chatbot's sessions.
// @Summary     Get chat sessions
// @Description Get all conversation threads of a chatbot
// @Tags        chat
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Chatbot ID"
// @Success     200 {array} models.ChatSession "Sessions"
// @Failure     400 {object} ErrorResponse "Invalid chatbot ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Chatbot not found"
// @Router      /chatbots/{id}/sessions [get]
func (h *ChatHandler) GetSessions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	chatbotID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	sessions, err := h.chatbotService.GetChatbotSessions(userID, chatbotID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

// GetMessages handles retrieving a session's transcript.
// @Summary     Get session messages
// @Description Get a session's transcript in timestamp order
// @Tags        chat
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Session ID"
// @Success     200 {array} models.ChatMessage "Messages"
// @Failure     400 {object} ErrorResponse "Invalid session ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Session not found"
// @Router      /sessions/{id}/messages [get]
func (h *ChatHandler) GetMessages(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	sessionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	messages, err := h.chatbotService.GetMessages(userID, sessionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// SendMessage handles one full chat turn.
// @Summary     Send chat message
// @Description Append the user's message and the generated bot reply
// @Tags        chat
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                true "Session ID"
// @Param       request body SendMessageRequest true "Message content"
// @Success     201 {array} models.ChatMessage "Stored user and bot messages"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Session not found"
// @Router      /sessions/{id}/messages [post]
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	sessionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	userMsg, botMsg, err := h.chatbotService.SendMessage(c.Request.Context(), userID, sessionID, req.Content)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"messages": []*models.ChatMessage{userMsg, botMsg}})
}

// AppendMessage handles recording one transcript entry verbatim.
// @Summary     Append chat message
// @Description Record one transcript entry without generating a reply
// @Tags        chat
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                  true "Session ID"
// @Param       request body AppendMessageRequest true "Message details"
// @Success     201 {object} models.ChatMessage "Stored message"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Session not found"
// @Router      /sessions/{id}/messages/append [post]
func (h *ChatHandler) AppendMessage(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	sessionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AppendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	msg, err := h.chatbotService.AppendMessage(userID, sessionID, services.MessageInput{
		Role:           models.ChatRole(req.Role),
		Content:        req.Content,
		TokensUsed:     req.TokensUsed,
		ProcessingTime: req.ProcessingTime,
		HasError:       req.HasError,
		ErrorMessage:   req.ErrorMessage,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": msg})
}
