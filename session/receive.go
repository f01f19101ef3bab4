package session

import (
	"github.com/go-stomp/corestomp/command"
	"github.com/go-stomp/corestomp/frame"
	"github.com/go-stomp/corestomp/stomperr"
)

// Receive processes one server-originated frame and returns every event
// it produces, in the order spec §5 requires ("inbound events reflect
// the order frames were fed"). A non-nil error means f failed structural
// validation or arrived in a phase that forbids it; state is left
// unmutated in that case.
func (s *Session) Receive(f *frame.Frame) ([]Event, error) {
	switch f.Command {
	case frame.CONNECTED:
		return s.handleConnected(f)
	case frame.MESSAGE:
		return s.handleMessage(f)
	case frame.RECEIPT:
		return s.handleReceipt(f)
	case frame.ERROR:
		return s.handleError(f)
	default:
		return nil, stomperr.New(stomperr.KindProtocolStateError, "unexpected "+string(f.Command)+" from server")
	}
}

func (s *Session) handleMessage(f *frame.Frame) ([]Event, error) {
	if s.phase != Connected {
		return nil, stomperr.New(stomperr.KindProtocolStateError, "unexpected MESSAGE in phase "+s.phase.String())
	}
	if err := command.Validate(f, s.version, command.FromServer); err != nil {
		return nil, err
	}

	var sub *Subscription
	if subID, ok := f.Headers.Contains(frame.HdrSubscription); ok {
		sub, _ = s.subs.get(subID)
	} else if dest, ok := f.Headers.Contains(frame.HdrDestination); ok {
		sub, _ = s.subs.findByDestination(dest)
	}

	if sub == nil {
		return []Event{{Kind: EventOrphanMessage, Frame: f}}, nil
	}
	return []Event{{Kind: EventMessageReceived, Frame: f, SubscriptionID: sub.ID, Token: sub.Token}}, nil
}

// handleReceipt resolves an inbound RECEIPT against the pending-receipt
// table, and completes the DISCONNECTING → DISCONNECTED transition when
// it matches the session's own pending disconnect, per spec §4.3's
// phase table.
func (s *Session) handleReceipt(f *frame.Frame) ([]Event, error) {
	if err := command.Validate(f, s.version, command.FromServer); err != nil {
		return nil, err
	}
	receiptID, _ := f.Headers.Contains(frame.HdrReceiptID)
	token, ok := s.receipts.resolve(receiptID)
	if !ok {
		return []Event{{Kind: EventOrphanReceipt, Frame: f}}, nil
	}
	events := []Event{{Kind: EventReceiptReceived, Token: token, Frame: f}}
	if s.phase == Disconnecting && receiptID == s.pendingDisconnect {
		events = append(events, s.returnToDisconnected()...)
	}
	return events, nil
}

// handleError processes an inbound ERROR frame. Per spec §4.3, ERROR is
// never fatal by itself and always yields an ERROR_RECEIVED event; per
// SPEC_FULL.md's supplemented ERROR-correlation behavior, an ERROR
// carrying a receipt-id matching a pending receipt also resolves that
// receipt as RECEIPT_CANCELLED, mirroring
// mschneider82-stomp/server/client.Conn.sendErrorImmediately's handling
// of the receipt header on the frame that triggered an error.
func (s *Session) handleError(f *frame.Frame) ([]Event, error) {
	events := []Event{{Kind: EventErrorReceived, Frame: f}}
	if receiptID, ok := f.Headers.Contains(frame.HdrReceiptID); ok {
		if token, ok := s.receipts.resolve(receiptID); ok {
			events = append(events, Event{Kind: EventReceiptCancelled, Token: token, Frame: f})
		}
	}
	return events, nil
}
