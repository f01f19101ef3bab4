package session

import (
	"github.com/go-stomp/corestomp/command"
	"github.com/go-stomp/corestomp/frame"
)

// SendRequest carries the parameters for Send, per spec §4.3.
type SendRequest struct {
	Destination string
	Headers     frame.Headers
	ContentType string
	Body        []byte
	Transaction string
	Receipt     string
}

// Send builds and returns a SEND frame. A non-empty Receipt registers a
// pending-receipt entry under token.
func (s *Session) Send(req SendRequest, token interface{}) (*frame.Frame, error) {
	if s.phase != Connected {
		return nil, s.stateError("send")
	}
	f, err := command.Send(req.Destination, req.Headers, req.ContentType, req.Body, req.Transaction, req.Receipt)
	if err != nil {
		return nil, err
	}
	if req.Receipt != "" {
		s.receipts.register(req.Receipt, token)
	}
	return f, nil
}

// AckRequest identifies the MESSAGE being acknowledged, per spec §4.3's
// per-version ACK/NACK header rules.
type AckRequest struct {
	Refs        command.AckRefs
	Transaction string
	Receipt     string
}

// Ack builds and returns an ACK frame.
func (s *Session) Ack(req AckRequest, token interface{}) (*frame.Frame, error) {
	if s.phase != Connected {
		return nil, s.stateError("ack")
	}
	f, err := command.Ack(s.version, req.Refs, req.Transaction, req.Receipt)
	if err != nil {
		return nil, err
	}
	if req.Receipt != "" {
		s.receipts.register(req.Receipt, token)
	}
	return f, nil
}

// Nack builds and returns a NACK frame. NACK is illegal in STOMP 1.0;
// the operation fails with UNSUPPORTED_COMMAND there, per spec §4.3.
func (s *Session) Nack(req AckRequest, token interface{}) (*frame.Frame, error) {
	if s.phase != Connected {
		return nil, s.stateError("nack")
	}
	f, err := command.Nack(s.version, req.Refs, req.Transaction, req.Receipt)
	if err != nil {
		return nil, err
	}
	if req.Receipt != "" {
		s.receipts.register(req.Receipt, token)
	}
	return f, nil
}
