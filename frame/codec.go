package frame

import (
	"strings"

	"github.com/pkg/errors"
)

// escapePair is one (decoded, encoded) substitution; escapesV11 and
// escapesV12 list them per version, grounded on wjmboss-stompngo/data.go's
// codecValues table. On encode the backslash must be replaced first so the
// backslashes the other escapes introduce are not escaped again. Decoding
// (unescapeHeaderToken) is a single left-to-right scan that does not use
// these tables.
type escapePair struct {
	decoded string
	encoded string
}

var escapesV11 = []escapePair{
	{"\\", "\\\\"},
	{"\n", "\\n"},
	{":", "\\c"},
}

var escapesV12 = []escapePair{
	{"\\", "\\\\"},
	{"\n", "\\n"},
	{"\r", "\\r"},
	{":", "\\c"},
}

func escapesFor(v Version) []escapePair {
	switch v {
	case V11:
		return escapesV11
	case V12:
		return escapesV12
	default:
		return nil
	}
}

// escapeHeaderToken encodes a header name or value for the wire per spec
// §6's escape table. v1.0 performs no escaping at all.
func escapeHeaderToken(s string, v Version) string {
	pairs := escapesFor(v)
	if pairs == nil {
		return s
	}
	// Apply the backslash substitution first so later substitutions do
	// not re-escape the backslashes they introduce.
	out := strings.ReplaceAll(s, "\\", "\\\\")
	for _, p := range pairs {
		if p.decoded == "\\" {
			continue
		}
		out = strings.ReplaceAll(out, p.decoded, p.encoded)
	}
	return out
}

// unescapeHeaderToken decodes a header name or value read off the wire.
// Any backslash sequence other than the version's known escapes is a
// parse error, per spec §6/§4.2.
func unescapeHeaderToken(s string, v Version) (string, error) {
	if v == V10 {
		if strings.Contains(s, "\\") {
			// v1.0 has no escape grammar; a literal backslash is just data.
			return s, nil
		}
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		if i+1 >= len(s) {
			return "", errors.New("stomp: dangling escape at end of header token")
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 'c':
			b.WriteByte(':')
		case '\\':
			b.WriteByte('\\')
		case 'r':
			if v == V12 {
				b.WriteByte('\r')
				continue
			}
			return "", errors.Errorf("stomp: unsupported escape sequence \\%c in version %s", s[i], v)
		default:
			return "", errors.Errorf("stomp: unsupported escape sequence \\%c", s[i])
		}
	}
	return b.String(), nil
}
