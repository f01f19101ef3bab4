package frame

import (
	"strings"
	"testing"

	"gotest.tools/v3/assert"
)

func TestRenderInsertsContentLength(t *testing.T) {
	f := New(SEND).WithHeader("destination", "/q").WithBody([]byte("hello"))
	wire := Render(f, V12)
	assert.Assert(t, strings.Contains(string(wire), "content-length:5\n"))
}

func TestRenderRespectsExplicitContentLength(t *testing.T) {
	f := New(SEND).WithHeader("destination", "/q").WithHeader(HdrContentLength, "0").WithBody([]byte("hello"))
	wire := Render(f, V12)
	assert.Assert(t, strings.Contains(string(wire), "content-length:0\n"))
	assert.Assert(t, !strings.Contains(string(wire), "content-length:5\n"))
}

func TestRenderEndsWithNul(t *testing.T) {
	f := New(DISCONNECT)
	wire := Render(f, V12)
	assert.Equal(t, wire[len(wire)-1], byte(0))
}

func TestRenderHeartBeat(t *testing.T) {
	assert.DeepEqual(t, RenderHeartBeat(), []byte{'\n'})
}
