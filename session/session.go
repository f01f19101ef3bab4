// Package session implements the STOMP connection-lifecycle state
// machine: phases, version and heart-beat negotiation, subscription
// bookkeeping with replay, transaction bookkeeping, receipt
// correlation, and server-frame dispatch, per spec §4.3. A Session
// performs no I/O: every method is a synchronous function of the
// caller's operation or inbound frame against the session's state, per
// spec §5.
//
// Grounded on mschneider82-stomp/server/client.Conn's stateFunc
// dispatch table and SubscriptionList, re-purposed from a broker
// accepting a client's CONNECT into a client endpoint driving its own
// CONNECT/STOMP and reacting to the broker's CONNECTED.
package session

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/go-stomp/corestomp/command"
	"github.com/go-stomp/corestomp/frame"
	"github.com/go-stomp/corestomp/internal/idgen"
	"github.com/go-stomp/corestomp/stomperr"
)

// Phase is one of the session's connection-lifecycle states, per spec
// §4.3.
type Phase int

const (
	Disconnected Phase = iota
	Connecting
	Connected
	Disconnecting
)

func (p Phase) String() string {
	switch p {
	case Disconnected:
		return "DISCONNECTED"
	case Connecting:
		return "CONNECTING"
	case Connected:
		return "CONNECTED"
	case Disconnecting:
		return "DISCONNECTING"
	default:
		return "UNKNOWN"
	}
}

// Direction distinguishes the two heart-beat liveness counters Touch
// updates, per SPEC_FULL.md's heart-beat liveness accounting.
type Direction int

const (
	Outbound Direction = iota
	Inbound
)

// Options configures a new Session. Follows the Config/DefaultConfig
// pattern of djoyahoy-stomp/config.go: a plain struct, no env vars, no
// files.
type Options struct {
	// Logger receives Debug-level diagnostics. Nil disables logging.
	Logger *logrus.Logger
}

// Session is a pure connection-lifecycle state object. See the package
// doc and spec §4.3.
type Session struct {
	log *logrus.Logger

	phase   Phase
	version frame.Version
	server  string

	acceptVersions []frame.Version
	clientHB       command.HeartBeat
	serverHB       command.HeartBeat
	outboundMillis int
	inboundMillis  int
	lastOutbound   time.Time
	lastInbound    time.Time

	subs         *subscriptionTable
	transactions map[string]struct{}
	receipts     *receiptTable

	subIDs     *idgen.Counter
	txIDs      *idgen.Counter
	receiptIDs *idgen.Counter

	pendingDisconnect string // receipt id awaiting resolution to leave DISCONNECTING
}

// New constructs a Session in phase DISCONNECTED with empty tables, per
// spec §3's "Lifecycle".
func New(opts Options) *Session {
	log := opts.Logger
	if log == nil {
		log = silentLogger()
	}
	return &Session{
		log:          log,
		phase:        Disconnected,
		subs:         newSubscriptionTable(),
		transactions: map[string]struct{}{},
		receipts:     newReceiptTable(),
		subIDs:       idgen.New(""),
		txIDs:        idgen.New("tx-"),
		receiptIDs:   idgen.New("receipt-"),
	}
}

func silentLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(discardWriter{})
	return l
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// Phase reports the session's current connection-lifecycle phase.
func (s *Session) Phase() Phase { return s.phase }

// Version reports the negotiated protocol version, or the empty string
// before a handshake completes.
func (s *Session) Version() frame.Version { return s.version }

// Server reports the broker's advertised "server" header value from
// CONNECTED, if any.
func (s *Session) Server() string { return s.server }

// HeartBeatIntervals reports the negotiated outbound/inbound intervals
// in milliseconds, per spec §4.3. Zero means "no heart-beat in that
// direction". The caller drives the actual timers (spec §5).
func (s *Session) HeartBeatIntervals() (outboundMillis, inboundMillis int) {
	return s.outboundMillis, s.inboundMillis
}

// Touch records caller-observed activity in direction dir at time at,
// per spec §3's advisory "last outbound/inbound activity timestamps"
// and SPEC_FULL.md's heart-beat liveness accounting. The session never
// reads its own clock; the caller supplies at.
func (s *Session) Touch(dir Direction, at time.Time) {
	switch dir {
	case Outbound:
		s.lastOutbound = at
	case Inbound:
		s.lastInbound = at
	}
}

// LastActivity reports the most recent Touch timestamps for each
// direction; the zero Time means no activity has been recorded yet.
func (s *Session) LastActivity() (lastOutbound, lastInbound time.Time) {
	return s.lastOutbound, s.lastInbound
}

func (s *Session) stateError(op string) error {
	return stomperr.New(stomperr.KindProtocolStateError, op+" not permitted in phase "+s.phase.String())
}
