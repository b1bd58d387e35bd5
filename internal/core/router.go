package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// DeliveryOutcome reports what the router did with a send.
type DeliveryOutcome int

const (
	// OutcomeDelivered means the entry was enqueued for the recipient.
	OutcomeDelivered DeliveryOutcome = iota
	// OutcomeRecipientAway means the recipient was Away and the sender
	// received a bounce notice instead.
	OutcomeRecipientAway
)

func (o DeliveryOutcome) String() string {
	if o == OutcomeRecipientAway {
		return "recipient_away"
	}
	return "delivered"
}

// DeliveryRecord is the audit record written to the journal for every routed
// send. The journal is write-only bookkeeping and never feeds back into
// mailboxes.
type DeliveryRecord struct {
	Sender    string
	Recipient string
	Kind      EntryKind
	Outcome   DeliveryOutcome
	At        time.Time
}

// DeliveryJournal records routing outcomes. Implementations must tolerate
// concurrent calls.
type DeliveryJournal interface {
	Record(ctx context.Context, rec DeliveryRecord) error
}

// MessageRouter validates a send, consults presence, and either delivers the
// entry to the recipient or bounces a system notice into the sender's own
// mailbox. Presence is a routing decision here, not an annotation: an Away
// recipient never sees the original entry.
type MessageRouter struct {
	registry *SessionRegistry
	activity *ActivityTracker
	presence *PresenceEvaluator
	texts    *MailboxStore
	files    *MailboxStore
	journal  DeliveryJournal
	now      func() time.Time
	log      *zerolog.Logger
}

// NewMessageRouter constructs a router. journal may be nil to disable
// journaling.
func NewMessageRouter(registry *SessionRegistry, activity *ActivityTracker, presence *PresenceEvaluator, texts, files *MailboxStore, journal DeliveryJournal, now func() time.Time, logger *zerolog.Logger) *MessageRouter {
	if now == nil {
		now = time.Now
	}
	return &MessageRouter{
		registry: registry,
		activity: activity,
		presence: presence,
		texts:    texts,
		files:    files,
		journal:  journal,
		now:      now,
		log:      logger,
	}
}

// Send routes entry from sender to recipient. Text entries land in the text
// mailbox, file entries in the file mailbox. A bounce is always a text notice
// in the sender's text mailbox, whatever the original kind.
func (r *MessageRouter) Send(ctx context.Context, sender, recipient string, entry Entry) (DeliveryOutcome, error) {
	if !r.registry.IsActive(sender) {
		return OutcomeDelivered, ErrUnknownIdentity
	}
	if !r.registry.IsActive(recipient) {
		return OutcomeDelivered, ErrRecipientNotFound
	}

	// Sending counts as activity and flips the sender back to Active.
	if err := r.activity.Touch(sender); err != nil {
		return OutcomeDelivered, err
	}

	state, err := r.presence.Evaluate(recipient)
	if err != nil {
		// Recipient logged out between the check and the evaluation.
		if errors.Is(err, ErrUnknownIdentity) {
			return OutcomeDelivered, ErrRecipientNotFound
		}
		return OutcomeDelivered, err
	}

	entry.From = sender
	entry.EnqueuedAt = r.now()

	outcome := OutcomeDelivered
	if state == PresenceAway {
		if err := r.texts.Enqueue(sender, r.bounce(recipient, entry)); err != nil {
			return OutcomeDelivered, err
		}
		outcome = OutcomeRecipientAway
	} else {
		box := r.texts
		if entry.Kind == EntryFile {
			box = r.files
		}
		if err := box.Enqueue(recipient, entry); err != nil {
			if errors.Is(err, ErrUnknownIdentity) {
				return OutcomeDelivered, ErrRecipientNotFound
			}
			return OutcomeDelivered, err
		}
	}

	r.record(ctx, DeliveryRecord{
		Sender:    sender,
		Recipient: recipient,
		Kind:      entry.Kind,
		Outcome:   outcome,
		At:        entry.EnqueuedAt,
	})
	return outcome, nil
}

// bounce builds the system notice placed in the sender's own mailbox when the
// recipient is Away. It names the original payload so the sender knows what
// did not arrive.
func (r *MessageRouter) bounce(recipient string, original Entry) Entry {
	// Raw interpolation, not %q: the payload goes into the notice verbatim.
	text := fmt.Sprintf("%s is away. Your message: \"%s\"", recipient, original.Text)
	if original.Kind == EntryFile {
		text = fmt.Sprintf("%s is away. Your file: \"%s\"", recipient, original.Filename)
	}
	return Entry{
		From:       SystemSender,
		Kind:       EntryText,
		Text:       text,
		EnqueuedAt: original.EnqueuedAt,
	}
}

// record writes to the journal best-effort. Journaling never fails a send.
func (r *MessageRouter) record(ctx context.Context, rec DeliveryRecord) {
	if r.journal == nil {
		return
	}
	if err := r.journal.Record(ctx, rec); err != nil && r.log != nil {
		r.log.Warn().Err(err).
			Str("sender", rec.Sender).
			Str("recipient", rec.Recipient).
			Msg("failed to journal delivery")
	}
}
