package session

import (
	"github.com/go-stomp/corestomp/command"
	"github.com/go-stomp/corestomp/frame"
	"github.com/go-stomp/corestomp/stomperr"
)

// ConnectRequest carries the handshake parameters for Connect, per spec
// §4.3: "connect(accept_versions, host, login?, passcode?,
// heart_beat=(cx,cy))".
type ConnectRequest struct {
	AcceptVersions []frame.Version
	Host           string
	Login          string
	Passcode       string
	HeartBeat      command.HeartBeat

	// UseStomp overrides the default command-token choice. Nil selects
	// the spec's default: STOMP if V1.2 is in AcceptVersions, else
	// CONNECT.
	UseStomp *bool
}

// Connect emits the client's handshake frame and moves the session from
// DISCONNECTED to CONNECTING. Calling it from any other phase fails with
// PROTOCOL_STATE_ERROR and does not mutate state, per spec §4.3's phase
// table.
func (s *Session) Connect(req ConnectRequest) (*frame.Frame, error) {
	if s.phase != Disconnected {
		return nil, s.stateError("connect")
	}
	useStomp := false
	for _, v := range req.AcceptVersions {
		if v == frame.V12 {
			useStomp = true
		}
	}
	if req.UseStomp != nil {
		useStomp = *req.UseStomp
	}

	f := command.Connect(useStomp, req.AcceptVersions, req.Host, req.Login, req.Passcode, req.HeartBeat)

	s.acceptVersions = req.AcceptVersions
	s.clientHB = req.HeartBeat
	s.phase = Connecting
	s.log.WithField("phase", s.phase).Debug("stomp: session phase transition")
	return f, nil
}

// handleConnected processes an inbound CONNECTED frame during the
// handshake: negotiates version and heart-beat intervals and moves the
// session to CONNECTED. Grounded on
// mschneider82-stomp/server/client.Conn.handleConnect's heart-beat
// handling, seen here from the client's side of the same negotiation;
// no minimum interval is enforced, each direction follows
// negotiatedInterval.
func (s *Session) handleConnected(f *frame.Frame) ([]Event, error) {
	if s.phase != Connecting {
		return nil, stomperr.New(stomperr.KindProtocolStateError, "unexpected CONNECTED in phase "+s.phase.String())
	}
	if err := command.Validate(f, "", command.FromServer); err != nil {
		return nil, err
	}

	raw, _ := f.Headers.Contains(frame.HdrVersion)
	serverVersion := frame.Version(raw)
	version, ok := frame.HighestCommon(s.acceptVersions, []frame.Version{serverVersion})
	if !ok {
		return nil, stomperr.New(stomperr.KindProtocolNegotiationError, "no common version with server-selected \""+raw+"\"")
	}

	s.serverHB = command.HeartBeat{}
	if raw, ok := f.Headers.Contains(frame.HdrHeartBeat); ok {
		hb, err := command.ParseHeartBeat(raw)
		if err != nil {
			return nil, err
		}
		s.serverHB = hb
	}

	s.outboundMillis = negotiatedInterval(s.clientHB.X, s.serverHB.Y)
	s.inboundMillis = negotiatedInterval(s.clientHB.Y, s.serverHB.X)

	s.version = version
	s.server, _ = f.Headers.Contains(frame.HdrServer)
	s.phase = Connected
	s.log.WithField("phase", s.phase).WithField("version", s.version).Debug("stomp: session phase transition")
	return nil, nil
}

// negotiatedInterval implements spec §4.3's "max(a, b) if both non-zero
// else 0" rule for one heart-beat direction.
func negotiatedInterval(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	if a > b {
		return a
	}
	return b
}
