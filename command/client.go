package command

import (
	"strings"

	"github.com/go-stomp/corestomp/frame"
	"github.com/go-stomp/corestomp/stomperr"
)

// Connect builds the client's handshake frame. useStomp selects the
// STOMP command token (spec §4.3: "emits a STOMP frame for v1.2
// preference and CONNECT for v1.0/1.1 preference"); the session decides
// useStomp from the caller's accept-version list.
func Connect(useStomp bool, accept []frame.Version, host, login, passcode string, hb HeartBeat) *frame.Frame {
	cmd := frame.CONNECT
	if useStomp {
		cmd = frame.STOMP
	}
	var versions []string
	for _, v := range accept {
		versions = append(versions, string(v))
	}
	h := frame.Headers{}.
		Append(frame.HdrAcceptVersion, strings.Join(versions, ",")).
		Append(frame.HdrHost, host)
	if login != "" {
		h = h.Append(frame.HdrLogin, login)
	}
	if passcode != "" {
		h = h.Append(frame.HdrPasscode, passcode)
	}
	h = h.Append(frame.HdrHeartBeat, hb.String())
	return &frame.Frame{Command: cmd, Headers: h}
}

// Send builds a SEND frame. extra headers that collide with
// destination/content-type/content-length/receipt/transaction/id are
// dropped, per djoyahoy-stomp/transport.go's forbidden-header filtering.
func Send(destination string, extra frame.Headers, contentType string, body []byte, transaction, receipt string) (*frame.Frame, error) {
	if destination == "" {
		return nil, stomperr.New(stomperr.KindInvalidHeader, "destination required, SEND")
	}
	h := frame.Headers{}.Append(frame.HdrDestination, destination)
	h = applyCallerHeaders(h, extra)
	if contentType != "" {
		h = h.Append(frame.HdrContentType, contentType)
	}
	if transaction != "" {
		h = h.Append(frame.HdrTransaction, transaction)
	}
	h = withOptionalReceipt(h, receipt)
	return &frame.Frame{Command: frame.SEND, Headers: h, Body: body}, nil
}

// Subscribe builds a SUBSCRIBE frame. id must already be resolved by the
// caller (the session generates one when omitted, per spec §4.3).
func Subscribe(v frame.Version, id, destination string, ack frame.AckMode, extra frame.Headers, receipt string) (*frame.Frame, error) {
	if destination == "" {
		return nil, stomperr.New(stomperr.KindInvalidHeader, "destination required, SUBSCRIBE")
	}
	if id == "" {
		return nil, stomperr.New(stomperr.KindInvalidHeader, "id required, SUBSCRIBE")
	}
	if ack == "" {
		ack = frame.AckAuto
	}
	if !frame.ValidAckMode(v, ack) {
		return nil, stomperr.New(stomperr.KindInvalidHeader, "invalid ack mode \""+string(ack)+"\" for version "+string(v))
	}
	h := frame.Headers{}.
		Append(frame.HdrDestination, destination).
		Append(frame.HdrID, id).
		Append(frame.HdrAck, string(ack))
	h = applyCallerHeaders(h, extra)
	h = withOptionalReceipt(h, receipt)
	return &frame.Frame{Command: frame.SUBSCRIBE, Headers: h}, nil
}

// Unsubscribe builds an UNSUBSCRIBE frame.
func Unsubscribe(id, receipt string) (*frame.Frame, error) {
	if id == "" {
		return nil, stomperr.New(stomperr.KindInvalidHeader, "id required, UNSUBSCRIBE")
	}
	h := frame.Headers{}.Append(frame.HdrID, id)
	h = withOptionalReceipt(h, receipt)
	return &frame.Frame{Command: frame.UNSUBSCRIBE, Headers: h}, nil
}

// AckRefs identifies the MESSAGE being (n)acked, carrying whichever
// combination of message-id/subscription/ack-id the negotiated version
// requires (spec §4.3).
type AckRefs struct {
	MessageID     string
	SubscriptionID string
	AckID         string // server-assigned "ack" header, v1.2 MESSAGE
}

// Ack builds an ACK frame per the negotiated version's header rules:
// v1.0 uses message-id; v1.1 requires message-id and subscription; v1.2
// uses id (the server-assigned ack token).
func Ack(v frame.Version, refs AckRefs, transaction, receipt string) (*frame.Frame, error) {
	h, err := ackNackHeaders(v, refs, "ACK")
	if err != nil {
		return nil, err
	}
	if transaction != "" {
		h = h.Append(frame.HdrTransaction, transaction)
	}
	h = withOptionalReceipt(h, receipt)
	return &frame.Frame{Command: frame.ACK, Headers: h}, nil
}

// Nack builds a NACK frame. NACK does not exist in STOMP 1.0; spec §4.3
// requires UNSUPPORTED_COMMAND there.
func Nack(v frame.Version, refs AckRefs, transaction, receipt string) (*frame.Frame, error) {
	if v == frame.V10 {
		return nil, stomperr.New(stomperr.KindUnsupportedCommand, "NACK is not supported in STOMP 1.0")
	}
	h, err := ackNackHeaders(v, refs, "NACK")
	if err != nil {
		return nil, err
	}
	if transaction != "" {
		h = h.Append(frame.HdrTransaction, transaction)
	}
	h = withOptionalReceipt(h, receipt)
	return &frame.Frame{Command: frame.NACK, Headers: h}, nil
}

func ackNackHeaders(v frame.Version, refs AckRefs, which string) (frame.Headers, error) {
	h := frame.Headers{}
	switch v {
	case frame.V10:
		if refs.MessageID == "" {
			return nil, stomperr.New(stomperr.KindInvalidHeader, "message-id required, "+which)
		}
		return h.Append(frame.HdrMessageID, refs.MessageID), nil
	case frame.V11:
		if refs.MessageID == "" {
			return nil, stomperr.New(stomperr.KindInvalidHeader, "message-id required, "+which)
		}
		if refs.SubscriptionID == "" {
			return nil, stomperr.New(stomperr.KindInvalidHeader, "subscription required, "+which)
		}
		return h.Append(frame.HdrMessageID, refs.MessageID).Append(frame.HdrSubscription, refs.SubscriptionID), nil
	case frame.V12:
		if refs.AckID == "" {
			return nil, stomperr.New(stomperr.KindInvalidHeader, "id required, "+which)
		}
		return h.Append(frame.HdrID, refs.AckID), nil
	default:
		return nil, stomperr.New(stomperr.KindInvalidHeader, "unsupported version "+string(v))
	}
}

// Begin builds a BEGIN frame.
func Begin(transactionID, receipt string) (*frame.Frame, error) {
	return txFrame(frame.BEGIN, transactionID, receipt)
}

// Commit builds a COMMIT frame.
func Commit(transactionID, receipt string) (*frame.Frame, error) {
	return txFrame(frame.COMMIT, transactionID, receipt)
}

// Abort builds an ABORT frame.
func Abort(transactionID, receipt string) (*frame.Frame, error) {
	return txFrame(frame.ABORT, transactionID, receipt)
}

func txFrame(cmd frame.Command, transactionID, receipt string) (*frame.Frame, error) {
	if transactionID == "" {
		return nil, stomperr.New(stomperr.KindInvalidHeader, "transaction-id required, "+string(cmd))
	}
	h := frame.Headers{}.Append(frame.HdrTransaction, transactionID)
	h = withOptionalReceipt(h, receipt)
	return &frame.Frame{Command: cmd, Headers: h}, nil
}

// Disconnect builds a DISCONNECT frame. Per spec §4.3's state table, a
// graceful disconnect always requests a receipt so the session can wait
// for its resolution before declaring itself DISCONNECTED; callers that
// pass an empty receipt get one generated for them by the session, not
// here (this layer is stateless).
func Disconnect(receipt string) *frame.Frame {
	h := withOptionalReceipt(frame.Headers{}, receipt)
	return &frame.Frame{Command: frame.DISCONNECT, Headers: h}
}
