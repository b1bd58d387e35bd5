package http

import (
	stdhttp "net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"pulsechat/internal/config"
	"pulsechat/internal/core"
)

// newTestServer builds a server around a fresh engine using the given engine
// options. The logger is disabled.
func newTestServer(t *testing.T, opts core.Options) (*stdhttp.Server, *core.Engine) {
	t.Helper()

	disabledLogger := zerolog.New(nil)
	engine := core.NewEngine(opts, nil, &disabledLogger)

	cfg := config.Config{
		Addr:              ":0",
		ReadHeaderTimeout: time.Second,
		ShutdownTimeout:   time.Second,
	}

	return NewServer(engine, &cfg, &disabledLogger), engine
}
