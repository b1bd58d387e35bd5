package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"pulsechat/internal/config"
	"pulsechat/internal/core"
)

// NewServer builds the HTTP server exposing the wire contract: open
// ping/echo/login endpoints plus identity-authenticated messaging routes.
func NewServer(engine *core.Engine, cfg *config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(LoggerMiddleware(logger))

	sessions := NewSessionHandlers(engine, logger)
	messages := NewMessageHandlers(engine, logger)
	files := NewFileHandlers(engine, logger)

	router.GET("/ping", sessions.Ping)
	router.POST("/echo", sessions.Echo)
	router.POST("/login", sessions.Login)

	authed := router.Group("/")
	authed.Use(IdentityMiddleware(engine, logger))
	{
		authed.POST("/logout", sessions.Logout)
		authed.GET("/users", sessions.ListUsers)
		authed.POST("/message", messages.Send)
		authed.GET("/messages", messages.Poll)
		authed.POST("/file", files.Send)
		authed.GET("/files", files.Poll)
	}

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}
