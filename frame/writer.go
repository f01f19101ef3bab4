package frame

import (
	"bytes"
	"strconv"
)

// Render serializes f to its wire form for version v: command, LF,
// headers as "name:value" LF-terminated with §6 escaping applied, a
// blank line, the body, and the NUL terminator. If f has a non-empty
// body and no content-length header, one is inserted. Header order is
// preserved (spec §4.1).
func Render(f *Frame, v Version) []byte {
	var buf bytes.Buffer
	buf.WriteString(string(f.Command))
	buf.WriteByte('\n')

	headers := f.Headers
	if len(f.Body) > 0 {
		if _, ok := headers.Contains(HdrContentLength); !ok {
			headers = headers.Clone().Append(HdrContentLength, strconv.Itoa(len(f.Body)))
		}
	}

	for _, h := range headers {
		if h.Name == HdrContentLength {
			// content-length's value is a decimal integer, never escaped.
			buf.WriteString(h.Name)
			buf.WriteByte(':')
			buf.WriteString(h.Value)
			buf.WriteByte('\n')
			continue
		}
		buf.WriteString(escapeHeaderToken(h.Name, v))
		buf.WriteByte(':')
		buf.WriteString(escapeHeaderToken(h.Value, v))
		buf.WriteByte('\n')
	}

	buf.WriteByte('\n')
	buf.Write(f.Body)
	buf.WriteByte(0x00)
	return buf.Bytes()
}

// RenderHeartBeat returns the bare line terminator transports send to
// signal liveness between frames, per spec §3/§6.
func RenderHeartBeat() []byte {
	return []byte{'\n'}
}
