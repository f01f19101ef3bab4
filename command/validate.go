package command

import (
	"github.com/go-stomp/corestomp/frame"
	"github.com/go-stomp/corestomp/stomperr"
)

// Origin names which side sent a frame (e.g. RECEIPT and ERROR only ever
// arrive from the server). Validate accepts it but does not consult it.
type Origin int

const (
	FromClient Origin = iota
	FromServer
)

// Validate checks f against the structural rules for its command at
// negotiated version v; origin does not change which rules apply, and a
// frame sent by the wrong side is not rejected. Grounded on
// mschneider82-stomp/message/frame.go's Validate/validateXxx dispatch,
// generalized across the three versions this module negotiates instead
// of the teacher's single hard-coded one.
func Validate(f *frame.Frame, v frame.Version, origin Origin) error {
	if f == nil {
		return stomperr.New(stomperr.KindInvalidHeader, "nil frame")
	}
	switch f.Command {
	case frame.CONNECT, frame.STOMP:
		return validateConnect(f)
	case frame.CONNECTED:
		return validateConnected(f)
	case frame.SEND:
		return validateSend(f)
	case frame.SUBSCRIBE:
		return validateSubscribe(f, v)
	case frame.UNSUBSCRIBE:
		return validateUnsubscribe(f)
	case frame.ACK:
		return validateAckNack(f, v, "ACK")
	case frame.NACK:
		if v == frame.V10 {
			return stomperr.New(stomperr.KindUnsupportedCommand, "NACK is not supported in STOMP 1.0")
		}
		return validateAckNack(f, v, "NACK")
	case frame.BEGIN, frame.COMMIT, frame.ABORT:
		return validateTx(f)
	case frame.DISCONNECT:
		return nil
	case frame.MESSAGE:
		return validateMessage(f, v)
	case frame.RECEIPT:
		return verifyRequiredHeaders(f, frame.HdrReceiptID)
	case frame.ERROR:
		return nil
	default:
		return stomperr.New(stomperr.KindUnsupportedCommand, "unknown command \""+string(f.Command)+"\"")
	}
}

func validateConnect(f *frame.Frame) error {
	return verifyRequiredHeaders(f, frame.HdrAcceptVersion, frame.HdrHost)
}

func validateConnected(f *frame.Frame) error {
	return verifyRequiredHeaders(f, frame.HdrVersion)
}

func validateSend(f *frame.Frame) error {
	return verifyRequiredHeaders(f, frame.HdrDestination)
}

func validateSubscribe(f *frame.Frame, v frame.Version) error {
	if err := verifyRequiredHeaders(f, frame.HdrDestination, frame.HdrID); err != nil {
		return err
	}
	if raw, ok := f.Headers.Contains(frame.HdrAck); ok {
		if !frame.ValidAckMode(v, frame.AckMode(raw)) {
			return stomperr.New(stomperr.KindInvalidHeader, "invalid ack mode \""+raw+"\" for version "+string(v))
		}
	}
	return nil
}

func validateUnsubscribe(f *frame.Frame) error {
	return verifyRequiredHeaders(f, frame.HdrID)
}

func validateAckNack(f *frame.Frame, v frame.Version, which string) error {
	switch v {
	case frame.V10:
		return verifyRequiredHeaders(f, frame.HdrMessageID)
	case frame.V11:
		return verifyRequiredHeaders(f, frame.HdrMessageID, frame.HdrSubscription)
	case frame.V12:
		return verifyRequiredHeaders(f, frame.HdrID)
	default:
		return stomperr.New(stomperr.KindInvalidHeader, "unsupported version "+string(v)+", "+which)
	}
}

func validateTx(f *frame.Frame) error {
	return verifyRequiredHeaders(f, frame.HdrTransaction)
}

func validateMessage(f *frame.Frame, v frame.Version) error {
	if err := verifyRequiredHeaders(f, frame.HdrDestination, frame.HdrMessageID); err != nil {
		return err
	}
	if v == frame.V10 {
		return nil
	}
	return verifyRequiredHeaders(f, frame.HdrSubscription)
}
