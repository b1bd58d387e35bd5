package core

import "sync"

// MailboxStore holds per-identity FIFO queues of pending entries. A queue
// exists while its identity is addressable; Create and Remove are driven by
// login and logout. Queues are unbounded and enqueue never blocks.
type MailboxStore struct {
	mu     sync.Mutex
	queues map[string][]Entry
}

// NewMailboxStore constructs an empty store.
func NewMailboxStore() *MailboxStore {
	return &MailboxStore{
		queues: make(map[string][]Entry),
	}
}

// Create ensures an empty queue exists for identity.
func (m *MailboxStore) Create(identity string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.queues[identity]; !exists {
		m.queues[identity] = nil
	}
}

// Remove discards identity's queue and all pending entries. Entries pending
// at logout are never delivered.
func (m *MailboxStore) Remove(identity string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.queues, identity)
}

// Enqueue appends the entry to the tail of recipient's queue. Fails with
// ErrUnknownIdentity if the recipient has no mailbox.
func (m *MailboxStore) Enqueue(recipient string, entry Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.queues[recipient]; !exists {
		return ErrUnknownIdentity
	}
	m.queues[recipient] = append(m.queues[recipient], entry)
	return nil
}

// Drain atomically takes and returns all pending entries for identity in
// enqueue order. The swap happens under the store lock, so an entry enqueued
// concurrently lands in exactly one drain: this one or the next. Fails with
// ErrUnknownIdentity if the identity has no mailbox.
func (m *MailboxStore) Drain(identity string) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	pending, exists := m.queues[identity]
	if !exists {
		return nil, ErrUnknownIdentity
	}
	m.queues[identity] = nil
	return pending, nil
}

// Pending reports how many entries are queued for identity.
func (m *MailboxStore) Pending(identity string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.queues[identity])
}
