package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "cryptodash/internal/errors"
	"cryptodash/internal/models"
	"cryptodash/internal/pagination"
	"cryptodash/internal/services"
	"cryptodash/internal/store"
)

// ChatbotHandler handles chatbot builder requests.
type ChatbotHandler struct {
	chatbotService services.ChatbotServicer
}

// NewChatbotHandler creates a new ChatbotHandler.
func NewChatbotHandler(chatbotService services.ChatbotServicer) *ChatbotHandler {
	return &ChatbotHandler{chatbotService: chatbotService}
}

// CreateChatbotRequest represents the chatbot creation payload.
type CreateChatbotRequest struct {
	Name          string `json:"name" binding:"required,min=1,max=100"`
	Description   string `json:"description" binding:"max=500"`
	Platform      string `json:"platform" binding:"omitempty,bot_platform"`
	Knowledge     string `json:"knowledge"`
	DeploymentURL string `json:"deployment_url" binding:"omitempty,url"`
}

// UpdateChatbotRequest represents the chatbot update payload. Only supplied
// fields are changed.
type UpdateChatbotRequest struct {
	Name          *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description   *string `json:"description" binding:"omitempty,max=500"`
	Platform      *string `json:"platform" binding:"omitempty,bot_platform"`
	Status        *string `json:"status" binding:"omitempty,bot_status"`
	Knowledge     *string `json:"knowledge"`
	DeploymentURL *string `json:"deployment_url" binding:"omitempty,url"`
}

// FileRequest represents one uploaded knowledge file's metadata.
type FileRequest struct {
	FileName         string `json:"file_name" binding:"required"`
	FileType         string `json:"file_type" binding:"required"`
	FileSize         int    `json:"file_size" binding:"min=0"`
	ExtractedContent string `json:"extracted_content"`
}

// AddFilesRequest represents the bulk file upload payload.
type AddFilesRequest struct {
	Files []FileRequest `json:"files" binding:"required,min=1,dive"`
}

// CreateChatbot handles chatbot creation.
// @Summary     Create a chatbot
// @Description Create a new chatbot project; knowledge processing runs asynchronously
// @Tags        chatbots
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateChatbotRequest true "Chatbot details"
// @Success     201 {object} models.Chatbot "Chatbot created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /chatbots [post]
func (h *ChatbotHandler) CreateChatbot(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateChatbotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	bot, err := h.chatbotService.CreateChatbot(userID, req.Name, req.Description,
		models.BotPlatform(req.Platform), req.Knowledge, req.DeploymentURL)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"chatbot": bot})
}

// GetChatbots handles listing the user's chatbots.
// @Summary     Get chatbots
// @Description Get a paginated list of the user's chatbots
// @Tags        chatbots
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Chatbot] "Paginated chatbots"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /chatbots [get]
func (h *ChatbotHandler) GetChatbots(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	bots := h.chatbotService.GetUserChatbots(userID)
	c.JSON(http.StatusOK, pagination.Paginate(bots, page))
}

// GetChatbot handles retrieving a specific chatbot.
// @Summary     Get chatbot by ID
// @Description Get a specific chatbot by ID
// @Tags        chatbots
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Chatbot ID"
// @Success     200 {object} models.Chatbot "Chatbot details"
// @Failure     400 {object} ErrorResponse "Invalid chatbot ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Chatbot not found"
// @Router      /chatbots/{id} [get]
func (h *ChatbotHandler) GetChatbot(c *gin.Context) {
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

	bot, err := h.chatbotService.GetChatbot(userID, chatbotID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"chatbot": bot})
}

// UpdateChatbot handles partial chatbot updates.
// @Summary     Update chatbot
// @Description Update the supplied fields of a chatbot
// @Tags        chatbots
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                  true "Chatbot ID"
// @Param       request body UpdateChatbotRequest true "Fields to update"
// @Success     200 {object} models.Chatbot "Updated chatbot"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Chatbot not found"
// @Router      /chatbots/{id} [patch]
func (h *ChatbotHandler) UpdateChatbot(c *gin.Context) {
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

	var req UpdateChatbotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	upd := store.ChatbotUpdate{
		Name:          req.Name,
		Description:   req.Description,
		Knowledge:     req.Knowledge,
		DeploymentURL: req.DeploymentURL,
	}
	if req.Platform != nil {
		p := models.BotPlatform(*req.Platform)
		upd.Platform = &p
	}
	if req.Status != nil {
		s := models.BotStatus(*req.Status)
		upd.Status = &s
	}

	bot, err := h.chatbotService.UpdateChatbot(userID, chatbotID, upd)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"chatbot": bot})
}

// DeleteChatbot handles chatbot deletion.
// @Summary     Delete chatbot
// @Description Remove a chatbot together with its files, sessions, and messages
// @Tags        chatbots
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Chatbot ID"
// @Success     204 "Chatbot deleted"
// @Failure     400 {object} ErrorResponse "Invalid chatbot ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Chatbot not found"
// @Router      /chatbots/{id} [delete]
func (h *ChatbotHandler) DeleteChatbot(c *gin.Context) {
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

	if err := h.chatbotService.DeleteChatbot(userID, chatbotID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AddFiles handles recording uploaded knowledge files.
// @Summary     Add knowledge files
// @Description Record uploaded knowledge file metadata against a chatbot
// @Tags        chatbots
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int             true "Chatbot ID"
// @Param       request body AddFilesRequest true "File metadata"
// @Success     201 {array} models.ChatbotFile "Recorded files"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Chatbot not found"
// @Router      /chatbots/{id}/files [post]
func (h *ChatbotHandler) AddFiles(c *gin.Context) {
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

	var req AddFilesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	inputs := make([]services.FileInput, 0, len(req.Files))
	for _, f := range req.Files {
		inputs = append(inputs, services.FileInput{
			FileName:         f.FileName,
			FileType:         f.FileType,
			FileSize:         f.FileSize,
			ExtractedContent: f.ExtractedContent,
		})
	}

	files, err := h.chatbotService.AddFiles(userID, chatbotID, inputs)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"files": files})
}

// GetFiles handles listing a chatbot's knowledge files.
// @Summary     Get knowledge files
// @Description Get the uploaded knowledge files of a chatbot
// @Tags        chatbots
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Chatbot ID"
// @Success     200 {array} models.ChatbotFile "Files"
// @Failure     400 {object} ErrorResponse "Invalid chatbot ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Chatbot not found"
// @Router      /chatbots/{id}/files [get]
func (h *ChatbotHandler) GetFiles(c *gin.Context) {
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

	files, err := h.chatbotService.GetFiles(userID, chatbotID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"files": files})
}
