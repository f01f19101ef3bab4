// Package frame implements the abstract STOMP frame model — an immutable
// value type, its ordered headers, a streaming parser, and a serializer —
// independent of any transport. See spec §3, §4.1, §4.2 and §6.
package frame

import "bytes"

// Header is a single ordered (name, value) pair. STOMP permits repeated
// header names; order on the wire is significant.
type Header struct {
	Name  string
	Value string
}

// Headers is an ordered sequence of header pairs. The zero value is an
// empty header set.
type Headers []Header

// Append adds a header pair, preserving any existing occurrences of the
// same name. Returns the extended header slice for chaining; callers use
// the returned value.
func (h Headers) Append(name, value string) Headers {
	return append(h, Header{Name: name, Value: value})
}

// Set replaces the first occurrence of name with value, or appends a new
// pair if name is absent. Later occurrences of name, if any, are left
// untouched (they remain shadowed per the first-wins rule).
func (h Headers) Set(name, value string) Headers {
	for i := range h {
		if h[i].Name == name {
			h[i].Value = value
			return h
		}
	}
	return h.Append(name, value)
}

// Contains returns the effective value for name — its first occurrence —
// and whether it was present at all. Per spec §3, the first occurrence of
// a repeated header is authoritative.
func (h Headers) Contains(name string) (string, bool) {
	for _, hdr := range h {
		if hdr.Name == name {
			return hdr.Value, true
		}
	}
	return "", false
}

// Remove deletes the first occurrence of name, if present.
func (h Headers) Remove(name string) Headers {
	for i := range h {
		if h[i].Name == name {
			return append(h[:i], h[i+1:]...)
		}
	}
	return h
}

// Clone returns an independent copy of h.
func (h Headers) Clone() Headers {
	out := make(Headers, len(h))
	copy(out, h)
	return out
}

// Equal reports whether h and other carry the same pairs in the same
// order.
func (h Headers) Equal(other Headers) bool {
	if len(h) != len(other) {
		return false
	}
	for i := range h {
		if h[i] != other[i] {
			return false
		}
	}
	return true
}

// Frame is an immutable STOMP frame: a command, its ordered headers, and
// an opaque body. See spec §3/§4.1.
type Frame struct {
	Command Command
	Headers Headers
	Body    []byte
}

// New constructs a frame with the given command and no headers or body.
// Callers append headers via the returned value's Headers field, or more
// commonly through the command package's per-command constructors.
func New(cmd Command) *Frame {
	return &Frame{Command: cmd}
}

// WithHeader returns a new frame equal to f with (name, value) appended to
// its headers. f is not mutated.
func (f *Frame) WithHeader(name, value string) *Frame {
	return &Frame{Command: f.Command, Headers: f.Headers.Clone().Append(name, value), Body: f.Body}
}

// WithBody returns a new frame equal to f with body substituted. f is not
// mutated.
func (f *Frame) WithBody(body []byte) *Frame {
	return &Frame{Command: f.Command, Headers: f.Headers.Clone(), Body: body}
}

// Equal compares command, header sequence (order-sensitive) and body
// bytes, per spec §4.1.
func (f *Frame) Equal(other *Frame) bool {
	if f == nil || other == nil {
		return f == other
	}
	return f.Command == other.Command &&
		f.Headers.Equal(other.Headers) &&
		bytes.Equal(f.Body, other.Body)
}
