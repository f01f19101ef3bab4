// Package command implements stateless, per-version constructors and
// validators for every STOMP frame the core speaks or receives, per
// spec §1/§4.3's "Commands layer". None of these functions hold state or
// perform I/O; the session package owns connection state and calls here
// for construction and validation. Grounded on
// mschneider82-stomp/message/frame.go's Validate/validateXxx family,
// generalized from one hard-coded version to the three this module
// negotiates.
package command

import (
	"strconv"
	"strings"

	"github.com/go-stomp/corestomp/frame"
	"github.com/go-stomp/corestomp/stomperr"
)

// HeartBeat is a (cx, cy) heart-beat proposal in milliseconds, per
// spec §3/§6.
type HeartBeat struct {
	X int
	Y int
}

func (h HeartBeat) String() string {
	return strconv.Itoa(h.X) + "," + strconv.Itoa(h.Y)
}

// ParseHeartBeat decodes a "cx,cy" heart-beat header value, per spec §6.
// Grounded on wjmboss-stompngo/data.go's heartBeatData parsing.
func ParseHeartBeat(s string) (HeartBeat, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return HeartBeat{}, stomperr.New(stomperr.KindInvalidHeader, "malformed heart-beat value \""+s+"\"")
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || x < 0 {
		return HeartBeat{}, stomperr.New(stomperr.KindInvalidHeader, "malformed heart-beat value \""+s+"\"")
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || y < 0 {
		return HeartBeat{}, stomperr.New(stomperr.KindInvalidHeader, "malformed heart-beat value \""+s+"\"")
	}
	return HeartBeat{X: x, Y: y}, nil
}

// forbidden lists headers a caller may not override on SEND because the
// command layer computes them itself, grounded on
// djoyahoy-stomp/transport.go's "forbidden" map.
var forbidden = map[string]bool{
	frame.HdrDestination:   true,
	frame.HdrContentType:   true,
	frame.HdrContentLength: true,
	frame.HdrReceipt:       true,
	frame.HdrTransaction:   true,
	frame.HdrID:            true,
}

func applyCallerHeaders(h frame.Headers, extra frame.Headers) frame.Headers {
	for _, hdr := range extra {
		if forbidden[hdr.Name] {
			continue
		}
		h = h.Append(hdr.Name, hdr.Value)
	}
	return h
}

func withOptionalReceipt(h frame.Headers, receipt string) frame.Headers {
	if receipt != "" {
		h = h.Append(frame.HdrReceipt, receipt)
	}
	return h
}

func verifyRequiredHeaders(f *frame.Frame, names ...string) error {
	for _, name := range names {
		if _, ok := f.Headers.Contains(name); !ok {
			return stomperr.New(stomperr.KindInvalidHeader, "missing required header \""+name+"\"")
		}
	}
	return nil
}
