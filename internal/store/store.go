package store

import (
	"context"
	"time"

	"pulsechat/internal/core"
)

// Record is a journaled routing outcome as read back from storage.
type Record struct {
	ID        int64
	Sender    string
	Recipient string
	Kind      string
	Outcome   string
	CreatedAt time.Time
}

// Journal persists delivery records for auditing. It extends the engine's
// write-side with a read-side for operators; it never feeds mailboxes, so the
// in-memory delivery semantics are unaffected by what is on disk.
type Journal interface {
	core.DeliveryJournal

	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]Record, error)
	// Count returns the total number of journaled records.
	Count(ctx context.Context) (int64, error)

	Close() error
}
