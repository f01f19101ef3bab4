package session

import (
	"github.com/go-stomp/corestomp/command"
	"github.com/go-stomp/corestomp/frame"
	"github.com/go-stomp/corestomp/stomperr"
)

// SubscribeRequest carries the parameters for Subscribe, per spec §4.3.
type SubscribeRequest struct {
	ID          string // generated if empty
	Destination string
	Ack         frame.AckMode // defaults to AckAuto
	Headers     frame.Headers // caller-supplied extra headers
	Receipt     string
	Token       interface{}
}

// Subscribe registers a new subscription and returns the SUBSCRIBE
// frame to send. If req.ID is empty, one is generated from the
// session's monotonic counter (spec §4.3, scenario 2: the first
// generated id is "0").
func (s *Session) Subscribe(req SubscribeRequest) (*frame.Frame, string, error) {
	if s.phase != Connected {
		return nil, "", s.stateError("subscribe")
	}
	id := req.ID
	if id == "" {
		id = s.subIDs.Next()
	}
	f, err := command.Subscribe(s.version, id, req.Destination, req.Ack, req.Headers, req.Receipt)
	if err != nil {
		return nil, "", err
	}
	ack := req.Ack
	if ack == "" {
		ack = frame.AckAuto
	}
	s.subs.add(&Subscription{
		ID:          id,
		Destination: req.Destination,
		Headers:     req.Headers.Clone(),
		Ack:         ack,
		Token:       req.Token,
	})
	if req.Receipt != "" {
		s.receipts.register(req.Receipt, req.Token)
	}
	return f, id, nil
}

// Unsubscribe removes the subscription for id and returns the
// UNSUBSCRIBE frame to send. Removing an unknown id fails with
// UNKNOWN_SUBSCRIPTION, per spec §4.3.
func (s *Session) Unsubscribe(id, receipt string) (*frame.Frame, error) {
	if s.phase != Connected {
		return nil, s.stateError("unsubscribe")
	}
	if _, ok := s.subs.get(id); !ok {
		return nil, stomperr.New(stomperr.KindUnknownSubscription, "no subscription with id \""+id+"\"")
	}
	f, err := command.Unsubscribe(id, receipt)
	if err != nil {
		return nil, err
	}
	s.subs.remove(id)
	if receipt != "" {
		s.receipts.register(receipt, nil)
	}
	return f, nil
}

// Replay returns SUBSCRIBE frames for every currently-active
// subscription, in original insertion order, with the same ids and
// headers as when each was created. The caller invokes this after
// completing a fresh handshake following disconnected(), per spec
// §4.3's "Subscription replay".
func (s *Session) Replay() []*frame.Frame {
	subs := s.subs.replay()
	out := make([]*frame.Frame, 0, len(subs))
	for _, sub := range subs {
		f, err := command.Subscribe(s.version, sub.ID, sub.Destination, sub.Ack, sub.Headers, "")
		if err != nil {
			// A previously-valid subscription can only fail to re-render
			// if the negotiated version changed to one that no longer
			// accepts its ack mode; such an entry stays in the table but
			// is left out of the returned frames.
			continue
		}
		out = append(out, f)
	}
	return out
}
