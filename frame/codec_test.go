package frame

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestEscapeHeaderTokenV10NoOp(t *testing.T) {
	assert.Equal(t, escapeHeaderToken("a:b\nc", V10), "a:b\nc")
}

func TestEscapeUnescapeRoundTripV11(t *testing.T) {
	raw := "line1\nline2:field\\end"
	encoded := escapeHeaderToken(raw, V11)
	decoded, err := unescapeHeaderToken(encoded, V11)
	assert.NilError(t, err)
	assert.Equal(t, decoded, raw)
}

func TestEscapeUnescapeRoundTripV12IncludesCR(t *testing.T) {
	raw := "a\rb\nc:d\\e"
	encoded := escapeHeaderToken(raw, V12)
	decoded, err := unescapeHeaderToken(encoded, V12)
	assert.NilError(t, err)
	assert.Equal(t, decoded, raw)
}

func TestUnescapeV10PassesBackslashThrough(t *testing.T) {
	decoded, err := unescapeHeaderToken(`a\nb`, V10)
	assert.NilError(t, err)
	assert.Equal(t, decoded, `a\nb`)
}

func TestUnescapeV11RejectsCREscape(t *testing.T) {
	_, err := unescapeHeaderToken(`a\rb`, V11)
	assert.ErrorContains(t, err, "")
}

func TestUnescapeRejectsUnknownEscape(t *testing.T) {
	_, err := unescapeHeaderToken(`a\xb`, V11)
	assert.ErrorContains(t, err, "")
}

func TestHighestCommon(t *testing.T) {
	v, ok := HighestCommon([]Version{V10, V11, V12}, []Version{V11, V12})
	assert.Assert(t, ok)
	assert.Equal(t, v, V12)

	_, ok = HighestCommon([]Version{V10}, []Version{V11})
	assert.Assert(t, !ok)
}

func TestValidAckMode(t *testing.T) {
	assert.Assert(t, !ValidAckMode(V10, AckClientIndividual))
	assert.Assert(t, ValidAckMode(V11, AckClientIndividual))
	assert.Assert(t, ValidAckMode(V12, AckAuto))
}
