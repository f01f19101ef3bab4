// Package idgen generates the subscription, transaction, and receipt
// identifiers a session hands out to its caller and to outgoing frames.
// Grounded on mschneider82-stomp/server/client/conn.go's lastMsgId
// counter, generalized from a single message-id counter into a small
// family of independent, prefixed counters — one per id namespace, so
// a session needing all three never collides across them.
package idgen

import "strconv"

// Counter is a monotonically increasing, per-Session id generator. It
// holds no global or package-level state (spec §9): each Session owns
// its own Counter instances, so ids are never shared across sessions.
// Counter is not safe for concurrent use without external
// synchronization, matching the caller-driven, non-concurrent session
// model spec §5 describes.
type Counter struct {
	prefix string
	last   uint64
}

// New returns a Counter that yields "prefixN" for increasing N starting
// at 0. An empty prefix is legal.
func New(prefix string) *Counter {
	return &Counter{prefix: prefix}
}

// Next returns the next id in the sequence, starting at "<prefix>0".
func (c *Counter) Next() string {
	id := c.prefix + strconv.FormatUint(c.last, 10)
	c.last++
	return id
}
