package session

import (
	"github.com/go-stomp/corestomp/command"
	"github.com/go-stomp/corestomp/frame"
)

// Disconnect emits a DISCONNECT frame and moves the session to
// DISCONNECTING. It always requests a receipt, generated from the
// session's own counter, since spec §4.3's phase table requires a
// matching RECEIPT to complete the transition to DISCONNECTED; the
// generated receipt id is returned alongside the frame so the caller
// can correlate it if needed, though Receive tracks it internally.
func (s *Session) Disconnect(token interface{}) (*frame.Frame, string, error) {
	if s.phase != Connected {
		return nil, "", s.stateError("disconnect")
	}
	receipt := s.receiptIDs.Next()
	f := command.Disconnect(receipt)
	s.receipts.register(receipt, token)
	s.pendingDisconnect = receipt
	s.phase = Disconnecting
	s.log.WithField("phase", s.phase).Debug("stomp: session phase transition")
	return f, receipt, nil
}

// Disconnected reports that the caller's transport has closed, per spec
// §3's lifecycle and §5's cancellation rule. The subscription table is
// RETAINED for later replay; every active transaction and pending
// receipt is cleared, each pending receipt resolving as
// RECEIPT_CANCELLED. Calling this while already DISCONNECTED is a
// no-op, per spec §4.3's phase table.
func (s *Session) Disconnected() []Event {
	if s.phase == Disconnected {
		return nil
	}
	return s.returnToDisconnected()
}

// returnToDisconnected applies spec §3's lifecycle rule — subscriptions
// retained, transactions and pending receipts cleared — shared by the
// caller-reported Disconnected() path and the graceful
// DISCONNECTING → DISCONNECTED transition on a matching RECEIPT.
func (s *Session) returnToDisconnected() []Event {
	tokens := s.receipts.cancelAll()
	events := make([]Event, 0, len(tokens))
	for _, token := range tokens {
		events = append(events, Event{Kind: EventReceiptCancelled, Token: token})
	}
	s.transactions = map[string]struct{}{}
	s.pendingDisconnect = ""
	s.version = ""
	s.server = ""
	s.outboundMillis = 0
	s.inboundMillis = 0
	s.phase = Disconnected
	s.log.WithField("phase", s.phase).Debug("stomp: session phase transition")
	return events
}
