package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"pulsechat/internal/core"
)

// MessageHandlers provides the text message endpoints.
type MessageHandlers struct {
	engine *core.Engine
	log    *zerolog.Logger
}

// NewMessageHandlers creates a new message handlers instance.
func NewMessageHandlers(engine *core.Engine, logger *zerolog.Logger) *MessageHandlers {
	return &MessageHandlers{
		engine: engine,
		log:    logger,
	}
}

// SendMessageRequest represents the send message request body.
type SendMessageRequest struct {
	To   string `json:"to" binding:"required"`
	Text string `json:"text"`
}

// PolledMessage is a drained text entry on the wire.
type PolledMessage struct {
	From string `json:"from"`
	Text string `json:"text"`
}

// MessagesResponse carries all drained messages for the caller.
type MessagesResponse struct {
	Messages []PolledMessage `json:"messages"`
}

// Send routes a text message to the named recipient.
// POST /message
func (h *MessageHandlers) Send(c *gin.Context) {
	identity := callerIdentity(c)

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	outcome, err := h.engine.SendText(c.Request.Context(), identity, req.To, req.Text)
	if err != nil {
		respondSendError(c, h.log, err)
		return
	}

	if outcome == core.OutcomeRecipientAway {
		c.JSON(http.StatusOK, MessageResponse{Message: "Recipient is away"})
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Message sent"})
}

// Poll drains and returns all pending messages for the caller.
// GET /messages
func (h *MessageHandlers) Poll(c *gin.Context) {
	identity := callerIdentity(c)

	entries, err := h.engine.DrainMessages(identity)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Not authenticated"})
		return
	}

	messages := make([]PolledMessage, 0, len(entries))
	for _, e := range entries {
		messages = append(messages, PolledMessage{From: e.From, Text: e.Text})
	}
	c.JSON(http.StatusOK, MessagesResponse{Messages: messages})
}

// respondSendError maps engine routing errors to wire statuses.
func respondSendError(c *gin.Context, logger *zerolog.Logger, err error) {
	switch {
	case errors.Is(err, core.ErrRecipientNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Recipient not found"})
	case errors.Is(err, core.ErrUnknownIdentity):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Not authenticated"})
	case errors.Is(err, core.ErrBadRequest):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	default:
		logger.Error().Err(err).Msg("send failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}
