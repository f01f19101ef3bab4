package frame

import (
	"bytes"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/go-stomp/corestomp/stomperr"
)

// State is one of the parser's finite states, per spec §4.2.
type State int

const (
	StatePreCommand State = iota
	StateCommand
	StateHeaders
	StateBodyLengthDelimited
	StateBodyNulDelimited
	StatePoisoned
)

// Limits bounds the parser against oversized or malicious input. See
// spec §4.2's "Maximum frame size, maximum header count, and maximum
// header line length are configurable bounds."
type Limits struct {
	MaxFrameSize        int
	MaxHeaderCount      int
	MaxHeaderLineLength int

	// StrictCR rejects any carriage-return byte in a command or header
	// line that is not the single optional terminator immediately
	// preceding a line feed; body bytes are not checked. Spec §9
	// leaves stray-CR tolerance as an open question; this module
	// defaults to strict and exposes the choice here, as §9 suggests.
	StrictCR bool
}

// DefaultLimits is a reasonable bound for a single broker connection.
var DefaultLimits = Limits{
	MaxFrameSize:        16 * 1024 * 1024,
	MaxHeaderCount:      1000,
	MaxHeaderLineLength: 8 * 1024,
	StrictCR:            true,
}

// Result is one unit the parser emits: either a completed Frame or a
// heart-beat marker (Frame nil, HeartBeat true). See spec §3.
type Result struct {
	Frame     *Frame
	HeartBeat bool
}

// Parser is a stateful, chunk-fed STOMP decoder performing no I/O of its
// own; the caller feeds it bytes as they arrive over any transport. See
// spec §4.2 and §5.
type Parser struct {
	version Version
	limits  Limits
	logger  *logrus.Logger

	state State
	err   error

	line       []byte
	pendingCR  bool
	pendingCmd Command

	headers     Headers
	seen        map[string]bool
	headerCount int

	haveLength    bool
	contentLength int
	body          []byte

	total int // bytes consumed so far in the current frame
}

// NewParser constructs a parser in PRE_COMMAND for version v. A nil
// logger disables diagnostic logging.
func NewParser(v Version, limits Limits, logger *logrus.Logger) *Parser {
	if logger == nil {
		logger = silentLogger()
	}
	return &Parser{version: v, limits: limits, logger: logger, state: StatePreCommand}
}

func silentLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(discardWriter{})
	return l
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// Version reports the version currently configured on the parser.
func (p *Parser) Version() Version { return p.version }

// SetVersion updates the version used for escape decoding. Spec §4.2:
// "The session updates the parser's version upon negotiation."
func (p *Parser) SetVersion(v Version) { p.version = v }

// State reports the parser's current state, mainly for diagnostics and
// tests.
func (p *Parser) State() State { return p.state }

// Reset clears a poisoned parser back to PRE_COMMAND, discarding any
// partially accumulated frame, per spec §4.2.
func (p *Parser) Reset() {
	p.state = StatePreCommand
	p.err = nil
	p.resetFrame()
}

func (p *Parser) resetFrame() {
	p.line = p.line[:0]
	p.pendingCR = false
	p.pendingCmd = ""
	p.headers = nil
	p.seen = nil
	p.headerCount = 0
	p.haveLength = false
	p.contentLength = 0
	p.body = p.body[:0]
	p.total = 0
}

func (p *Parser) poison(err error) error {
	p.state = StatePoisoned
	p.err = err
	p.logger.WithError(err).Debug("stomp: parser poisoned")
	return err
}

// Feed processes chunk, returning every Frame and heart-beat marker
// completed as a result, in byte order (spec §4.2 "Emission order"). A
// non-nil error poisons the parser; Reset must be called before feeding
// more bytes (spec §4.2: "a parse error that transitions the parser to a
// poisoned state from which it must be reset").
func (p *Parser) Feed(chunk []byte) ([]Result, error) {
	if p.state == StatePoisoned {
		return nil, p.err
	}
	var results []Result
	for i := 0; i < len(chunk); i++ {
		b := chunk[i]

		if p.state != StatePreCommand {
			p.total++
			if p.limits.MaxFrameSize > 0 && p.total > p.limits.MaxFrameSize {
				return results, p.poison(stomperr.New(stomperr.KindParseError, "frame exceeds maximum size"))
			}
		}

		switch p.state {
		case StatePreCommand, StateCommand:
			complete, text, err := p.consumeLineByte(b)
			if err != nil {
				return results, p.poison(err)
			}
			if !complete {
				if len(p.line) > 0 {
					p.state = StateCommand
				}
				continue
			}
			if len(text) == 0 {
				// Blank line before any command byte: heart-beat marker.
				results = append(results, Result{HeartBeat: true})
				p.state = StatePreCommand
				continue
			}
			cmd := Command(text)
			if !cmd.Known() {
				return results, p.poison(stomperr.New(stomperr.KindParseError, "unknown command \""+text+"\""))
			}
			p.pendingCmd = cmd
			p.state = StateHeaders
			p.headers = nil
			p.seen = map[string]bool{}

		case StateHeaders:
			if p.limits.MaxHeaderLineLength > 0 && len(p.line) > p.limits.MaxHeaderLineLength {
				return results, p.poison(stomperr.New(stomperr.KindParseError, "header line too long"))
			}
			complete, text, err := p.consumeLineByte(b)
			if err != nil {
				return results, p.poison(err)
			}
			if !complete {
				continue
			}
			if len(text) == 0 {
				// Blank line: headers are done, decide body framing.
				if err := p.enterBody(); err != nil {
					return results, p.poison(err)
				}
				continue
			}
			p.headerCount++
			if p.limits.MaxHeaderCount > 0 && p.headerCount > p.limits.MaxHeaderCount {
				return results, p.poison(stomperr.New(stomperr.KindParseError, "too many headers"))
			}
			if err := p.addHeaderLine(text); err != nil {
				return results, p.poison(err)
			}

		case StateBodyLengthDelimited:
			if len(p.body) < p.contentLength {
				p.body = append(p.body, b)
				continue
			}
			// This byte must be the NUL terminator.
			if b != 0x00 {
				return results, p.poison(stomperr.New(stomperr.KindParseError, "missing NUL terminator after length-delimited body"))
			}
			results = append(results, p.finishFrame())

		case StateBodyNulDelimited:
			if b == 0x00 {
				results = append(results, p.finishFrame())
				continue
			}
			p.body = append(p.body, b)
		}
	}
	return results, nil
}

// consumeLineByte accumulates a line terminated by LF, tolerating one
// optional preceding CR, per spec §4.2 "Line terminator is LF; a single
// optional preceding CR is tolerated on input regardless of version."
// Returns complete=true and the accumulated text once LF is seen.
func (p *Parser) consumeLineByte(b byte) (complete bool, text string, err error) {
	if p.pendingCR {
		p.pendingCR = false
		if b == '\n' {
			text = string(p.line)
			p.line = p.line[:0]
			return true, text, nil
		}
		if p.limits.StrictCR {
			return false, "", stomperr.New(stomperr.KindParseError, "stray CR not followed by LF")
		}
		p.line = append(p.line, '\r')
		// fall through to handle b normally below
	}
	if b == '\r' {
		p.pendingCR = true
		return false, "", nil
	}
	if b == '\n' {
		text = string(p.line)
		p.line = p.line[:0]
		return true, text, nil
	}
	p.line = append(p.line, b)
	return false, "", nil
}

// addHeaderLine splits a raw (still escaped) header line at its first
// literal colon, rejects a further literal colon in the value for v1.1+
// (where colons are escaped as \c), then unescapes both sides per the
// parser's version and applies first-wins dedup.
func (p *Parser) addHeaderLine(line string) error {
	idx := bytes.IndexByte([]byte(line), ':')
	if idx < 0 {
		return stomperr.New(stomperr.KindParseError, "malformed header line \""+line+"\"")
	}
	rawName, rawValue := line[:idx], line[idx+1:]

	if p.version != V10 && bytes.IndexByte([]byte(rawValue), ':') >= 0 {
		return stomperr.New(stomperr.KindParseError, "unescaped ':' in header value")
	}

	name, err := unescapeHeaderToken(rawName, p.version)
	if err != nil {
		return stomperr.Wrap(stomperr.KindParseError, err, "bad escape in header name")
	}
	value, err := unescapeHeaderToken(rawValue, p.version)
	if err != nil {
		return stomperr.Wrap(stomperr.KindParseError, err, "bad escape in header value")
	}

	if p.seen[name] {
		p.logger.WithField("header", name).Debug("stomp: discarding duplicate header")
		return nil
	}
	p.seen[name] = true
	p.headers = p.headers.Append(name, value)
	return nil
}

// enterBody inspects the accumulated headers for content-length and
// selects the body-reading strategy, per spec §4.2.
func (p *Parser) enterBody() error {
	if raw, ok := p.headers.Contains(HdrContentLength); ok {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return stomperr.Wrap(stomperr.KindInvalidHeader, err, "content-length is not a non-negative integer")
		}
		p.haveLength = true
		p.contentLength = n
		p.body = p.body[:0]
		p.state = StateBodyLengthDelimited
		return nil
	}
	p.haveLength = false
	p.body = p.body[:0]
	p.state = StateBodyNulDelimited
	return nil
}

func (p *Parser) finishFrame() Result {
	body := make([]byte, len(p.body))
	copy(body, p.body)
	f := &Frame{Command: p.pendingCmd, Headers: p.headers, Body: body}
	p.resetFrame()
	p.state = StatePreCommand
	return Result{Frame: f}
}
