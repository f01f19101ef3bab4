package command

import (
	"testing"

	"github.com/go-stomp/corestomp/frame"
	"github.com/go-stomp/corestomp/stomperr"
	"gotest.tools/v3/assert"
)

func TestConnectChoosesStompForV12(t *testing.T) {
	f := Connect(true, []frame.Version{frame.V10, frame.V12}, "vhost", "u", "p", HeartBeat{X: 10, Y: 20})
	assert.Equal(t, f.Command, frame.STOMP)
	v, _ := f.Headers.Contains(frame.HdrHeartBeat)
	assert.Equal(t, v, "10,20")
}

func TestConnectOmitsLoginWhenEmpty(t *testing.T) {
	f := Connect(false, []frame.Version{frame.V10}, "vhost", "", "", HeartBeat{})
	assert.Equal(t, f.Command, frame.CONNECT)
	_, ok := f.Headers.Contains(frame.HdrLogin)
	assert.Assert(t, !ok)
}

func TestSendStripsForbiddenCallerHeaders(t *testing.T) {
	extra := frame.Headers{}.Append(frame.HdrContentLength, "999").Append("x-custom", "ok")
	f, err := Send("/queue/a", extra, "text/plain", []byte("hi"), "", "")
	assert.NilError(t, err)
	v, _ := f.Headers.Contains(frame.HdrContentLength)
	assert.Assert(t, v != "999")
	v2, ok := f.Headers.Contains("x-custom")
	assert.Assert(t, ok)
	assert.Equal(t, v2, "ok")
}

func TestSendRequiresDestination(t *testing.T) {
	_, err := Send("", nil, "", nil, "", "")
	assert.Assert(t, stomperr.Is(err, stomperr.KindInvalidHeader))
}

func TestSubscribeRejectsAckModeForVersion(t *testing.T) {
	_, err := Subscribe(frame.V10, "0", "/queue/a", frame.AckClientIndividual, nil, "")
	assert.Assert(t, stomperr.Is(err, stomperr.KindInvalidHeader))
}

func TestSubscribeDefaultsAckAuto(t *testing.T) {
	f, err := Subscribe(frame.V12, "0", "/queue/a", "", nil, "")
	assert.NilError(t, err)
	v, _ := f.Headers.Contains(frame.HdrAck)
	assert.Equal(t, v, string(frame.AckAuto))
}

func TestAckHeadersPerVersion(t *testing.T) {
	refs := AckRefs{MessageID: "m1", SubscriptionID: "s1", AckID: "a1"}

	f, err := Ack(frame.V10, refs, "", "")
	assert.NilError(t, err)
	v, _ := f.Headers.Contains(frame.HdrMessageID)
	assert.Equal(t, v, "m1")
	_, ok := f.Headers.Contains(frame.HdrSubscription)
	assert.Assert(t, !ok)

	f, err = Ack(frame.V11, refs, "", "")
	assert.NilError(t, err)
	_, ok = f.Headers.Contains(frame.HdrSubscription)
	assert.Assert(t, ok)

	f, err = Ack(frame.V12, refs, "", "")
	assert.NilError(t, err)
	v, _ = f.Headers.Contains(frame.HdrID)
	assert.Equal(t, v, "a1")
}

func TestAckMissingRequiredHeaderPerVersion(t *testing.T) {
	_, err := Ack(frame.V11, AckRefs{MessageID: "m1"}, "", "")
	assert.Assert(t, stomperr.Is(err, stomperr.KindInvalidHeader))
}

func TestNackIllegalOnV10(t *testing.T) {
	_, err := Nack(frame.V10, AckRefs{MessageID: "m1"}, "", "")
	assert.Assert(t, stomperr.Is(err, stomperr.KindUnsupportedCommand))
}

func TestNackLegalOnV11(t *testing.T) {
	_, err := Nack(frame.V11, AckRefs{MessageID: "m1", SubscriptionID: "s1"}, "", "")
	assert.NilError(t, err)
}

func TestTxFramesRequireTransactionID(t *testing.T) {
	_, err := Begin("", "")
	assert.Assert(t, stomperr.Is(err, stomperr.KindInvalidHeader))

	f, err := Commit("tx1", "")
	assert.NilError(t, err)
	assert.Equal(t, f.Command, frame.COMMIT)
}

func TestDisconnectIncludesReceiptOnlyWhenGiven(t *testing.T) {
	f := Disconnect("")
	_, ok := f.Headers.Contains(frame.HdrReceipt)
	assert.Assert(t, !ok)

	f = Disconnect("r1")
	v, ok := f.Headers.Contains(frame.HdrReceipt)
	assert.Assert(t, ok)
	assert.Equal(t, v, "r1")
}

func TestParseHeartBeat(t *testing.T) {
	hb, err := ParseHeartBeat("10,20")
	assert.NilError(t, err)
	assert.Equal(t, hb.X, 10)
	assert.Equal(t, hb.Y, 20)

	_, err = ParseHeartBeat("bogus")
	assert.ErrorContains(t, err, "")
}
