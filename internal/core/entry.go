package core

import "time"

// EntryKind distinguishes the payload carried by a mailbox entry.
type EntryKind int

const (
	// EntryText is a short chat message.
	EntryText EntryKind = iota
	// EntryFile is a named file payload.
	EntryFile
)

// SystemSender is the author of engine-generated notices, such as away bounces.
const SystemSender = "system"

// Entry is a single pending item in an identity's mailbox. Text entries use
// Text; file entries use Filename and Content. An entry belongs to exactly one
// mailbox and is consumed by the first drain after it was enqueued.
type Entry struct {
	From       string
	Kind       EntryKind
	Text       string
	Filename   string
	Content    string
	EnqueuedAt time.Time
}
