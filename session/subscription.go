package session

import "github.com/go-stomp/corestomp/frame"

// Subscription is one entry of the session's subscription table, per
// spec §3: "subscription table keyed by subscription id →
// {destination, headers, ack-mode, token}".
type Subscription struct {
	ID          string
	Destination string
	Headers     frame.Headers
	Ack         frame.AckMode
	Token       interface{}
}

// subscriptionTable is an insertion-ordered, id-keyed table of active
// subscriptions. Grounded on
// mschneider82-stomp/server/client.SubscriptionList, adapted from a
// container/list-backed FIFO ack-pending queue into an ordered map:
// replay (spec §4.3) needs id lookup plus insertion order, not FIFO
// draining of acknowledgements.
type subscriptionTable struct {
	order []string
	byID  map[string]*Subscription
}

func newSubscriptionTable() *subscriptionTable {
	return &subscriptionTable{byID: map[string]*Subscription{}}
}

func (t *subscriptionTable) add(sub *Subscription) {
	t.order = append(t.order, sub.ID)
	t.byID[sub.ID] = sub
}

func (t *subscriptionTable) get(id string) (*Subscription, bool) {
	sub, ok := t.byID[id]
	return sub, ok
}

// remove deletes the entry for id, preserving the relative order of the
// remaining entries.
func (t *subscriptionTable) remove(id string) (*Subscription, bool) {
	sub, ok := t.byID[id]
	if !ok {
		return nil, false
	}
	delete(t.byID, id)
	for i, oid := range t.order {
		if oid == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return sub, true
}

// findByDestination returns the first (insertion-order) subscription to
// destination, for v1.0's header-less MESSAGE dispatch fallback (spec
// §4.3).
func (t *subscriptionTable) findByDestination(destination string) (*Subscription, bool) {
	for _, id := range t.order {
		sub := t.byID[id]
		if sub.Destination == destination {
			return sub, true
		}
	}
	return nil, false
}

// replay returns every active subscription in original insertion order,
// per spec §4.3's "Subscription replay".
func (t *subscriptionTable) replay() []*Subscription {
	out := make([]*Subscription, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.byID[id])
	}
	return out
}
