package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"pulsechat/internal/core"
)

// FileHandlers provides the file exchange endpoints.
type FileHandlers struct {
	engine *core.Engine
	log    *zerolog.Logger
}

// NewFileHandlers creates a new file handlers instance.
func NewFileHandlers(engine *core.Engine, logger *zerolog.Logger) *FileHandlers {
	return &FileHandlers{
		engine: engine,
		log:    logger,
	}
}

// SendFileRequest represents the send file request body.
type SendFileRequest struct {
	To       string `json:"to" binding:"required"`
	Filename string `json:"filename" binding:"required"`
	Content  string `json:"content"`
}

// PolledFile is a drained file entry on the wire.
type PolledFile struct {
	From     string `json:"from"`
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// FilesResponse carries all drained files for the caller.
type FilesResponse struct {
	Files []PolledFile `json:"files"`
}

// Send routes a file payload to the named recipient.
// POST /file
func (h *FileHandlers) Send(c *gin.Context) {
	identity := callerIdentity(c)

	var req SendFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	outcome, err := h.engine.SendFile(c.Request.Context(), identity, req.To, req.Filename, req.Content)
	if err != nil {
		respondSendError(c, h.log, err)
		return
	}

	if outcome == core.OutcomeRecipientAway {
		c.JSON(http.StatusOK, MessageResponse{Message: "Recipient is away"})
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "File sent"})
}

// Poll drains and returns all pending files for the caller.
// GET /files
func (h *FileHandlers) Poll(c *gin.Context) {
	identity := callerIdentity(c)

	entries, err := h.engine.DrainFiles(identity)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Not authenticated"})
		return
	}

	files := make([]PolledFile, 0, len(entries))
	for _, e := range entries {
		files = append(files, PolledFile{From: e.From, Filename: e.Filename, Content: e.Content})
	}
	c.JSON(http.StatusOK, FilesResponse{Files: files})
}
