package session

import "github.com/go-stomp/corestomp/frame"

// EventKind is one of the closed set of notifications a session emits
// from Receive or Disconnected, per spec §4.3 and §5.
type EventKind string

const (
	// EventMessageReceived carries an inbound MESSAGE resolved to its
	// owning subscription.
	EventMessageReceived EventKind = "MESSAGE_RECEIVED"
	// EventOrphanMessage carries an inbound MESSAGE the session could
	// not resolve to any active subscription.
	EventOrphanMessage EventKind = "ORPHAN_MESSAGE"
	// EventReceiptReceived fires when a pending receipt resolves
	// normally via an inbound RECEIPT frame.
	EventReceiptReceived EventKind = "RECEIPT_RECEIVED"
	// EventReceiptCancelled fires when a pending receipt is abandoned —
	// an ERROR frame correlates to it (SPEC_FULL.md's supplemented
	// ERROR-correlation behavior), or the session returns to
	// DISCONNECTED and clears the table, either through disconnected()
	// or when the RECEIPT for a graceful Disconnect arrives.
	EventReceiptCancelled EventKind = "RECEIPT_CANCELLED"
	// EventOrphanReceipt carries an inbound RECEIPT whose receipt-id
	// matches no pending entry.
	EventOrphanReceipt EventKind = "ORPHAN_RECEIPT"
	// EventErrorReceived carries every inbound ERROR frame, resolved or
	// not; the caller decides whether to close.
	EventErrorReceived EventKind = "ERROR_RECEIVED"
)

// Event is one notification a session emits. Not every field applies to
// every Kind: Token and SubscriptionID apply to message/receipt events,
// Frame carries the original MESSAGE/ERROR where relevant.
type Event struct {
	Kind           EventKind
	Token          interface{}
	SubscriptionID string
	Frame          *frame.Frame
}
