// Package failover parses the `failover:(uri1,uri2,...)?k=v&...` broker
// URI grammar and produces the deterministic, bounded-or-unbounded
// sequence of (endpoint, delay) pairs a caller's reconnect loop drives
// against, per spec §4.4.
//
// No STOMP repository in the retrieved pack implements a failover
// transport (ActiveMQ's has no analog among them); this package is
// built in the corpus's idiom rather than adapted from one file: the
// net/url-based address parsing follows
// moby-moby/daemon/logger/fluentd's location/ValidateLogOpt pattern, and
// the options struct follows djoyahoy-stomp/config.go's
// Config/DefaultConfig shape.
package failover

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/go-stomp/corestomp/stomperr"
)

// Endpoint is one inner broker URI from the failover list, per spec
// §4.4: "scheme://host:port with scheme in {tcp, ssl}".
type Endpoint struct {
	Scheme string
	Host   string
	Port   string
}

// String renders e back to its URI form; inner URIs must round-trip
// through the parser, per spec §6.
func (e Endpoint) String() string {
	return e.Scheme + "://" + e.Host + ":" + e.Port
}

// Options are the recognized failover query parameters, with the
// defaults spec §4.4 lists. Follows the Config/DefaultConfig pattern of
// djoyahoy-stomp/config.go.
type Options struct {
	InitialReconnectDelay       int
	MaxReconnectDelay           int
	UseExponentialBackOff       bool
	BackOffMultiplier           float64
	MaxReconnectAttempts        int
	StartupMaxReconnectAttempts int
	Randomize                   bool
}

// DefaultOptions is the option set spec §4.4 mandates when a URI omits a
// parameter.
var DefaultOptions = Options{
	InitialReconnectDelay:       10,
	MaxReconnectDelay:           30000,
	UseExponentialBackOff:       true,
	BackOffMultiplier:           2.0,
	MaxReconnectAttempts:        -1,
	StartupMaxReconnectAttempts: 0,
	Randomize:                   true,
}

// URI is a parsed failover URI: its endpoint list and resolved options.
type URI struct {
	Endpoints []Endpoint
	Options   Options
}

const schemePrefix = "failover:"

// Parse decodes a failover URI in either grammar spec §4.4 allows:
// "failover:(uri1,uri2,...)?k=v&..." or the shorthand
// "failover:uri1,uri2,...".
func Parse(raw string) (*URI, error) {
	if !strings.HasPrefix(raw, schemePrefix) {
		return nil, stomperr.New(stomperr.KindInvalidHeader, "failover URI must start with \"failover:\"")
	}
	rest := raw[len(schemePrefix):]

	var endpointList, query string
	if strings.HasPrefix(rest, "(") {
		close := strings.Index(rest, ")")
		if close < 0 {
			return nil, stomperr.New(stomperr.KindInvalidHeader, "unterminated \"(\" in failover URI")
		}
		endpointList = rest[1:close]
		tail := rest[close+1:]
		if strings.HasPrefix(tail, "?") {
			query = tail[1:]
		} else if tail != "" {
			return nil, stomperr.New(stomperr.KindInvalidHeader, "unexpected trailing text after \")\" in failover URI")
		}
	} else {
		// Shorthand form has no room for query parameters: everything
		// after "failover:" is the comma-separated endpoint list.
		endpointList = rest
	}

	if endpointList == "" {
		return nil, stomperr.New(stomperr.KindInvalidHeader, "failover URI has no endpoints")
	}
	var endpoints []Endpoint
	for _, raw := range strings.Split(endpointList, ",") {
		ep, err := parseEndpoint(raw)
		if err != nil {
			return nil, err
		}
		endpoints = append(endpoints, ep)
	}

	opts, err := parseOptions(query)
	if err != nil {
		return nil, err
	}

	return &URI{Endpoints: endpoints, Options: opts}, nil
}

func parseEndpoint(raw string) (Endpoint, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Endpoint{}, stomperr.Wrap(stomperr.KindInvalidHeader, err, "malformed inner URI \""+raw+"\"")
	}
	if u.Scheme != "tcp" && u.Scheme != "ssl" {
		return Endpoint{}, stomperr.New(stomperr.KindInvalidHeader, "unsupported scheme \""+u.Scheme+"\" in \""+raw+"\"")
	}
	host := u.Hostname()
	port := u.Port()
	if host == "" || port == "" {
		return Endpoint{}, stomperr.New(stomperr.KindInvalidHeader, "inner URI \""+raw+"\" requires host and port")
	}
	return Endpoint{Scheme: u.Scheme, Host: host, Port: port}, nil
}

func parseOptions(query string) (Options, error) {
	opts := DefaultOptions
	if query == "" {
		return opts, nil
	}
	values, err := url.ParseQuery(query)
	if err != nil {
		return Options{}, stomperr.Wrap(stomperr.KindInvalidHeader, err, "malformed failover query string")
	}
	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		v := vals[0]
		switch key {
		case "initialReconnectDelay":
			n, err := strconv.Atoi(v)
			if err != nil {
				return Options{}, stomperr.New(stomperr.KindInvalidHeader, "invalid initialReconnectDelay \""+v+"\"")
			}
			opts.InitialReconnectDelay = n
		case "maxReconnectDelay":
			n, err := strconv.Atoi(v)
			if err != nil {
				return Options{}, stomperr.New(stomperr.KindInvalidHeader, "invalid maxReconnectDelay \""+v+"\"")
			}
			opts.MaxReconnectDelay = n
		case "useExponentialBackOff":
			b, err := strconv.ParseBool(v)
			if err != nil {
				return Options{}, stomperr.New(stomperr.KindInvalidHeader, "invalid useExponentialBackOff \""+v+"\"")
			}
			opts.UseExponentialBackOff = b
		case "backOffMultiplier":
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return Options{}, stomperr.New(stomperr.KindInvalidHeader, "invalid backOffMultiplier \""+v+"\"")
			}
			opts.BackOffMultiplier = f
		case "maxReconnectAttempts":
			n, err := strconv.Atoi(v)
			if err != nil {
				return Options{}, stomperr.New(stomperr.KindInvalidHeader, "invalid maxReconnectAttempts \""+v+"\"")
			}
			opts.MaxReconnectAttempts = n
		case "startupMaxReconnectAttempts":
			n, err := strconv.Atoi(v)
			if err != nil {
				return Options{}, stomperr.New(stomperr.KindInvalidHeader, "invalid startupMaxReconnectAttempts \""+v+"\"")
			}
			opts.StartupMaxReconnectAttempts = n
		case "randomize":
			b, err := strconv.ParseBool(v)
			if err != nil {
				return Options{}, stomperr.New(stomperr.KindInvalidHeader, "invalid randomize \""+v+"\"")
			}
			opts.Randomize = b
		default:
			return Options{}, stomperr.New(stomperr.KindInvalidHeader, "unrecognized failover option \""+key+"\"")
		}
	}
	return opts, nil
}
