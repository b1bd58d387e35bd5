package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"pulsechat/internal/core"
)

// SessionHandlers provides the health, echo, and session lifecycle endpoints.
type SessionHandlers struct {
	engine *core.Engine
	log    *zerolog.Logger
}

// NewSessionHandlers creates a new session handlers instance.
func NewSessionHandlers(engine *core.Engine, logger *zerolog.Logger) *SessionHandlers {
	return &SessionHandlers{
		engine: engine,
		log:    logger,
	}
}

// EchoRequest represents the echo request body.
type EchoRequest struct {
	Text string `json:"text"`
}

// EchoResponse represents the ping/echo response body.
type EchoResponse struct {
	Response string `json:"response"`
}

// LoginRequest represents the login request body.
type LoginRequest struct {
	Username string `json:"username"`
}

// MessageResponse is the generic success response body.
type MessageResponse struct {
	Message string `json:"message"`
}

// UsersResponse lists the currently logged-in identities.
type UsersResponse struct {
	Users []string `json:"users"`
}

// Ping handles the health check.
// GET /ping
func (h *SessionHandlers) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, EchoResponse{Response: "pong"})
}

// Echo returns the request text unchanged.
// POST /echo
func (h *SessionHandlers) Echo(c *gin.Context) {
	var req EchoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	c.JSON(http.StatusOK, EchoResponse{Response: req.Text})
}

// Login registers a new session under the requested name.
// POST /login
func (h *SessionHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Username required"})
		return
	}

	if err := h.engine.Login(req.Username); err != nil {
		if errors.Is(err, core.ErrDuplicateIdentity) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "User already logged in"})
			return
		}
		h.log.Error().Err(err).Str("username", req.Username).Msg("login failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Login successful"})
}

// Logout removes the caller's session and discards pending mail.
// POST /logout
func (h *SessionHandlers) Logout(c *gin.Context) {
	identity := callerIdentity(c)

	if err := h.engine.Logout(identity); err != nil {
		// The session vanished between middleware and here.
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Not authenticated"})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Logout successful"})
}

// ListUsers returns a snapshot of logged-in identities.
// GET /users
func (h *SessionHandlers) ListUsers(c *gin.Context) {
	c.JSON(http.StatusOK, UsersResponse{Users: h.engine.ListActive()})
}
