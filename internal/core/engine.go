package core

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options configures the engine.
type Options struct {
	// AwayThreshold is how long an identity may idle before sends to it
	// bounce. Zero means DefaultAwayThreshold.
	AwayThreshold time.Duration
	// Now overrides the clock, for tests. Nil means time.Now.
	Now func() time.Time
}

// Engine is the synchronous facade over the session registry, presence
// machinery, and mailboxes. A transport layer adapts wire requests to these
// calls; the engine itself performs no I/O beyond the optional delivery
// journal and never blocks on the network.
type Engine struct {
	// sessionMu serializes the login/logout compositions so a session and
	// its mailboxes always appear and disappear as a unit. Sends and drains
	// do not take it; they rely on the component locks.
	sessionMu sync.Mutex
	registry  *SessionRegistry
	texts     *MailboxStore
	files     *MailboxStore
	router    *MessageRouter
	log       *zerolog.Logger
}

// NewEngine wires the engine components together. journal may be nil.
func NewEngine(opts Options, journal DeliveryJournal, logger *zerolog.Logger) *Engine {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	registry := NewSessionRegistry(now)
	activity := NewActivityTracker(registry)
	presence := NewPresenceEvaluator(activity, opts.AwayThreshold, now)
	texts := NewMailboxStore()
	files := NewMailboxStore()
	router := NewMessageRouter(registry, activity, presence, texts, files, journal, now, logger)

	return &Engine{
		registry: registry,
		texts:    texts,
		files:    files,
		router:   router,
		log:      logger,
	}
}

// Login registers identity and prepares its empty mailboxes. Fails with
// ErrDuplicateIdentity if the name already has a live session. The whole
// composition runs under sessionMu, so a live session always has queues and
// an interleaved logout can never strand one without them.
func (e *Engine) Login(identity string) error {
	if identity == "" {
		return ErrBadRequest
	}

	e.sessionMu.Lock()
	defer e.sessionMu.Unlock()

	e.texts.Create(identity)
	e.files.Create(identity)

	if _, err := e.registry.Register(identity); err != nil {
		return err
	}

	if e.log != nil {
		e.log.Info().Str("identity", identity).Msg("logged in")
	}
	return nil
}

// Logout removes identity's session and discards any pending mailbox
// contents. Fails with ErrUnknownIdentity if no session is live.
func (e *Engine) Logout(identity string) error {
	e.sessionMu.Lock()
	defer e.sessionMu.Unlock()

	if err := e.registry.Unregister(identity); err != nil {
		return err
	}

	e.texts.Remove(identity)
	e.files.Remove(identity)

	if e.log != nil {
		e.log.Info().Str("identity", identity).Msg("logged out")
	}
	return nil
}

// IsActive reports whether identity has a live session.
func (e *Engine) IsActive(identity string) bool {
	return e.registry.IsActive(identity)
}

// ListActive returns a snapshot of all logged-in identities.
func (e *Engine) ListActive() []string {
	return e.registry.ListActive()
}

// SendText routes a text message from sender to recipient.
func (e *Engine) SendText(ctx context.Context, sender, recipient, text string) (DeliveryOutcome, error) {
	return e.router.Send(ctx, sender, recipient, Entry{
		Kind: EntryText,
		Text: text,
	})
}

// SendFile routes a named file payload from sender to recipient.
func (e *Engine) SendFile(ctx context.Context, sender, recipient, filename, content string) (DeliveryOutcome, error) {
	return e.router.Send(ctx, sender, recipient, Entry{
		Kind:     EntryFile,
		Filename: filename,
		Content:  content,
	})
}

// DrainMessages atomically takes all pending text entries for identity.
// Draining does not count as activity.
func (e *Engine) DrainMessages(identity string) ([]Entry, error) {
	return e.texts.Drain(identity)
}

// DrainFiles atomically takes all pending file entries for identity.
func (e *Engine) DrainFiles(identity string) ([]Entry, error) {
	return e.files.Drain(identity)
}
