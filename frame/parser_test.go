package frame

import (
	"bytes"
	"testing"

	"gotest.tools/v3/assert"
)

func mustParseOne(t *testing.T, v Version, wire []byte) *Frame {
	t.Helper()
	p := NewParser(v, DefaultLimits, nil)
	results, err := p.Feed(wire)
	assert.NilError(t, err)
	assert.Equal(t, len(results), 1)
	assert.Assert(t, results[0].Frame != nil)
	return results[0].Frame
}

func TestParserNulDelimitedBody(t *testing.T) {
	wire := []byte("SEND\ndestination:/queue/a\n\nhello\x00")
	f := mustParseOne(t, V12, wire)
	assert.Equal(t, f.Command, SEND)
	assert.Equal(t, string(f.Body), "hello")
}

func TestParserLengthDelimitedBody(t *testing.T) {
	wire := []byte("MESSAGE\ncontent-length:5\n\nhel\x00o\x00")
	f := mustParseOne(t, V12, wire)
	assert.Equal(t, string(f.Body), "hel\x00o")
}

func TestParserLengthDelimitedWrongTerminatorIsError(t *testing.T) {
	// body is "ab\x00" (3 bytes, matching content-length), but the byte
	// immediately after it is 'X' instead of the required NUL terminator.
	wire := []byte("MESSAGE\ncontent-length:3\n\nab\x00X")
	p := NewParser(V12, DefaultLimits, nil)
	_, err := p.Feed(wire)
	assert.ErrorContains(t, err, "")
	assert.Equal(t, p.State(), StatePoisoned)
}

func TestParserLengthDelimitedBodyContainingNul(t *testing.T) {
	wire := []byte("MESSAGE\ncontent-length:3\n\nab\x00\x00")
	f := mustParseOne(t, V12, wire)
	assert.Equal(t, string(f.Body), "ab\x00")
}

func TestParserEmptyBodyBothForms(t *testing.T) {
	a := mustParseOne(t, V12, []byte("SEND\ndestination:/q\n\n\x00"))
	b := mustParseOne(t, V12, []byte("SEND\ndestination:/q\ncontent-length:0\n\n\x00"))
	assert.Equal(t, len(a.Body), 0)
	assert.Equal(t, len(b.Body), 0)
}

func TestParserHeaderFirstOccurrenceWins(t *testing.T) {
	wire := []byte("SEND\ndestination:/a\ndestination:/b\n\n\x00")
	f := mustParseOne(t, V12, wire)
	v, ok := f.Headers.Contains("destination")
	assert.Assert(t, ok)
	assert.Equal(t, v, "/a")
}

func TestParserHeartBeatMarker(t *testing.T) {
	p := NewParser(V12, DefaultLimits, nil)
	results, err := p.Feed([]byte("\nSEND\ndestination:/a\n\n\x00"))
	assert.NilError(t, err)
	assert.Equal(t, len(results), 2)
	assert.Assert(t, results[0].HeartBeat)
	assert.Assert(t, results[1].Frame != nil)
}

func TestParserUnescapedColonInValueIsErrorUnder11Plus(t *testing.T) {
	wire := []byte("SEND\ndestination:/a:b\n\n\x00")
	p := NewParser(V11, DefaultLimits, nil)
	_, err := p.Feed(wire)
	assert.ErrorContains(t, err, "")
}

func TestParserStrayCRIsErrorWhenStrict(t *testing.T) {
	p := NewParser(V12, DefaultLimits, nil)
	_, err := p.Feed([]byte("SEND\r\rx\ndestination:/a\n\n\x00"))
	assert.ErrorContains(t, err, "")
}

func TestParserStrayCRToleratedWhenNotStrict(t *testing.T) {
	limits := DefaultLimits
	limits.StrictCR = false
	p := NewParser(V10, limits, nil)
	results, err := p.Feed([]byte("SEND\ndestination:/a\r-extra\n\n\x00"))
	assert.NilError(t, err)
	assert.Equal(t, len(results), 1)
}

func TestParserUnknownCommandIsError(t *testing.T) {
	p := NewParser(V12, DefaultLimits, nil)
	_, err := p.Feed([]byte("BOGUS\n\n\x00"))
	assert.ErrorContains(t, err, "")
}

func TestParserPoisonedRequiresReset(t *testing.T) {
	p := NewParser(V12, DefaultLimits, nil)
	_, err := p.Feed([]byte("BOGUS\n\n\x00"))
	assert.ErrorContains(t, err, "")
	_, err = p.Feed([]byte("SEND\ndestination:/a\n\n\x00"))
	assert.ErrorContains(t, err, "")
	p.Reset()
	results, err := p.Feed([]byte("SEND\ndestination:/a\n\n\x00"))
	assert.NilError(t, err)
	assert.Equal(t, len(results), 1)
}

func TestParserChunkPartitionInvariant(t *testing.T) {
	whole := []byte("CONNECTED\nversion:1.2\nheart-beat:10,20\n\n\x00SEND\ndestination:/a\n\nbody\x00")

	p1 := NewParser(V12, DefaultLimits, nil)
	wholeResults, err := p1.Feed(whole)
	assert.NilError(t, err)

	for split := 0; split <= len(whole); split++ {
		p2 := NewParser(V12, DefaultLimits, nil)
		var chunked []Result
		r1, err := p2.Feed(whole[:split])
		assert.NilError(t, err)
		chunked = append(chunked, r1...)
		r2, err := p2.Feed(whole[split:])
		assert.NilError(t, err)
		chunked = append(chunked, r2...)

		assert.Equal(t, len(chunked), len(wholeResults))
		for i := range chunked {
			if wholeResults[i].HeartBeat {
				assert.Assert(t, chunked[i].HeartBeat)
				continue
			}
			assert.Assert(t, chunked[i].Frame.Equal(wholeResults[i].Frame))
		}
	}
}

func TestParserMaxFrameSizeExceeded(t *testing.T) {
	limits := DefaultLimits
	limits.MaxFrameSize = 10
	p := NewParser(V12, limits, nil)
	_, err := p.Feed([]byte("SEND\ndestination:/very/long/destination\n\n\x00"))
	assert.ErrorContains(t, err, "")
}

func TestParserRoundTripRender(t *testing.T) {
	f := New(SEND).WithHeader("destination", "/queue/a").WithHeader("foo", "a:b\nc").WithBody([]byte("payload"))
	for _, v := range []Version{V11, V12} {
		wire := Render(f, v)
		p := NewParser(v, DefaultLimits, nil)
		results, err := p.Feed(wire)
		assert.NilError(t, err)
		assert.Equal(t, len(results), 1)
		assert.Assert(t, bytes.Equal(results[0].Frame.Body, f.Body))
		got, _ := results[0].Frame.Headers.Contains("foo")
		assert.Equal(t, got, "a:b\nc")
	}
}
