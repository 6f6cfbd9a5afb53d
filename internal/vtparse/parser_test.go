package vtparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// recordingPerformer captures every callback for assertions, mirroring
// the integration-test performer used against govte's Params shape.
type recordingPerformer struct {
	prints   []rune
	execs    []byte
	csis     []csiCall
	escs     []escCall
	oscs     [][][]byte
	oscBells []bool
	hooks    int
	puts     []byte
	unhooks  int
}

type csiCall struct {
	params        [][]uint16
	intermediates []byte
	private       byte
	final         byte
}

type escCall struct {
	intermediates []byte
	final         byte
}

func (p *recordingPerformer) Print(r rune) { p.prints = append(p.prints, r) }
func (p *recordingPerformer) Execute(b byte) { p.execs = append(p.execs, b) }
func (p *recordingPerformer) CsiDispatch(params *Params, intermediates []byte, private byte, final byte) {
	ia := append([]byte(nil), intermediates...)
	p.csis = append(p.csis, csiCall{params: params.Iter(), intermediates: ia, private: private, final: final})
}
func (p *recordingPerformer) EscDispatch(intermediates []byte, final byte) {
	ia := append([]byte(nil), intermediates...)
	p.escs = append(p.escs, escCall{intermediates: ia, final: final})
}
func (p *recordingPerformer) OscDispatch(params [][]byte, bellTerminated bool) {
	p.oscs = append(p.oscs, params)
	p.oscBells = append(p.oscBells, bellTerminated)
}
func (p *recordingPerformer) Hook(params *Params, intermediates []byte, private byte, final byte) {
	p.hooks++
}
func (p *recordingPerformer) Put(b byte) { p.puts = append(p.puts, b) }
func (p *recordingPerformer) Unhook()    { p.unhooks++ }

func TestPrintAscii(t *testing.T) {
	p := NewParser()
	rec := &recordingPerformer{}
	p.Feed([]byte("Hello"), rec)
	assert.Equal(t, []rune("Hello"), rec.prints)
}

func TestChunkBoundaryIndependence(t *testing.T) {
	input := []byte("A\x1b[31;1mB\x1b]0;title\x07C")

	whole := &recordingPerformer{}
	NewParser().Feed(input, whole)

	for split := 0; split <= len(input); split++ {
		chunked := &recordingPerformer{}
		parser := NewParser()
		parser.Feed(input[:split], chunked)
		parser.Feed(input[split:], chunked)
		assert.Equal(t, whole.prints, chunked.prints, "split at %d", split)
		assert.Equal(t, whole.csis, chunked.csis, "split at %d", split)
		assert.Equal(t, whole.oscs, chunked.oscs, "split at %d", split)
	}
}

func TestCsiParams(t *testing.T) {
	p := NewParser()
	rec := &recordingPerformer{}
	p.Feed([]byte("\x1b[31;1m"), rec)
	assert.Len(t, rec.csis, 1)
	got := rec.csis[0]
	assert.Equal(t, byte('m'), got.final)
	assert.Equal(t, [][]uint16{{31}, {1}}, got.params)
}

func TestCsiSubParams(t *testing.T) {
	p := NewParser()
	rec := &recordingPerformer{}
	p.Feed([]byte("\x1b[38:5:196m"), rec)
	assert.Len(t, rec.csis, 1)
	assert.Equal(t, [][]uint16{{38, 5, 196}}, rec.csis[0].params)
}

func TestCsiPrivateMarker(t *testing.T) {
	p := NewParser()
	rec := &recordingPerformer{}
	p.Feed([]byte("\x1b[?1049h"), rec)
	assert.Len(t, rec.csis, 1)
	assert.Equal(t, byte('?'), rec.csis[0].private)
	assert.Equal(t, byte('h'), rec.csis[0].final)
}

func TestParamOverflowSaturates(t *testing.T) {
	p := NewParser()
	rec := &recordingPerformer{}
	p.Feed([]byte("\x1b[999999999m"), rec)
	assert.Equal(t, [][]uint16{{0xFFFF}}, rec.csis[0].params)
}

func TestParamCountBounded(t *testing.T) {
	p := NewParser()
	rec := &recordingPerformer{}
	seq := "\x1b["
	for i := 0; i < 30; i++ {
		seq += "1;"
	}
	seq += "2m"
	p.Feed([]byte(seq), rec)
	assert.LessOrEqual(t, len(rec.csis[0].params), maxParams)
}

func TestIntermediateOverflowIgnoresExtra(t *testing.T) {
	p := NewParser()
	rec := &recordingPerformer{}
	p.Feed([]byte("\x1b[!!!!m"), rec)
	assert.Len(t, rec.csis, 1)
	assert.LessOrEqual(t, len(rec.csis[0].intermediates), 2)
}

func TestOscBelTerminated(t *testing.T) {
	p := NewParser()
	rec := &recordingPerformer{}
	p.Feed([]byte("\x1b]0;hi\x07"), rec)
	assert.Equal(t, [][][]byte{{[]byte("0"), []byte("hi")}}, rec.oscs)
	assert.Equal(t, []bool{true}, rec.oscBells)
}

func TestOscStTerminated(t *testing.T) {
	p := NewParser()
	rec := &recordingPerformer{}
	p.Feed([]byte("\x1b]8;;http://example.com\x1b\\"), rec)
	assert.Len(t, rec.oscs, 1)
	assert.Equal(t, []bool{false}, rec.oscBells)
}

func TestOscOverflowStillTerminates(t *testing.T) {
	p := NewParser()
	rec := &recordingPerformer{}
	seq := []byte("\x1b]0;")
	for i := 0; i < maxOscBytes+100; i++ {
		seq = append(seq, 'x')
	}
	seq = append(seq, 0x07)
	p.Feed(seq, rec)
	assert.Len(t, rec.oscs, 1)
	assert.LessOrEqual(t, len(rec.oscs[0][1]), maxOscBytes)
}

func TestDcsHookPutUnhook(t *testing.T) {
	p := NewParser()
	rec := &recordingPerformer{}
	p.Feed([]byte("\x1bP1$q\"p\x1b\\"), rec)
	assert.Equal(t, 1, rec.hooks)
	assert.Equal(t, 1, rec.unhooks)
	assert.Equal(t, []byte(`"p`), rec.puts)
}

func TestCanAbortsSequence(t *testing.T) {
	p := NewParser()
	rec := &recordingPerformer{}
	p.Feed([]byte("\x1b[31\x18m"), rec)
	assert.Empty(t, rec.csis)
	assert.Equal(t, []rune{'m'}, rec.prints)
}

func TestSubAbortsAndEmitsReplacementChar(t *testing.T) {
	p := NewParser()
	rec := &recordingPerformer{}
	p.Feed([]byte("\x1b[31\x1A"), rec)
	assert.Empty(t, rec.csis)
	assert.Equal(t, []rune{'�'}, rec.prints)
}

func TestSosPmApcConsumedSilently(t *testing.T) {
	p := NewParser()
	rec := &recordingPerformer{}
	p.Feed([]byte("\x1bXsome data\x1b\\A"), rec)
	assert.Equal(t, []rune{'A'}, rec.prints)
	assert.Empty(t, rec.csis)
}

func TestMalformedUTF8Overlong(t *testing.T) {
	p := NewParser()
	rec := &recordingPerformer{}
	// 0xC0 is structurally a 2-byte lead but always overlong; its
	// continuation byte 0x80 belongs to the same failed unit, so the
	// pair resynchronizes as a single replacement character.
	p.Feed([]byte{0xC0, 0x80}, rec)
	assert.Equal(t, []rune{'�'}, rec.prints)
}

func TestMalformedUTF8Surrogate(t *testing.T) {
	p := NewParser()
	rec := &recordingPerformer{}
	p.Feed([]byte{0xED, 0xA0, 0x80}, rec)
	assert.Equal(t, []rune{'�'}, rec.prints)
}

func TestUTF8TruncatedResync(t *testing.T) {
	p := NewParser()
	rec := &recordingPerformer{}
	// 0xE2 starts a 3-byte sequence, but 'A' is not a continuation byte.
	p.Feed([]byte{0xE2, 'A'}, rec)
	assert.Equal(t, []rune{'�', 'A'}, rec.prints)
}

func TestUTF8SplitAcrossFeedCalls(t *testing.T) {
	p := NewParser()
	rec := &recordingPerformer{}
	full := []byte("中")
	p.Feed(full[:1], rec)
	p.Feed(full[1:], rec)
	assert.Equal(t, []rune{'中'}, rec.prints)
}

func TestValidMultibyteSequences(t *testing.T) {
	p := NewParser()
	rec := &recordingPerformer{}
	p.Feed([]byte("héllo 中文 🎉"), rec)
	assert.Equal(t, []rune("héllo 中文 🎉"), rec.prints)
}

func TestEscDispatchNoCsi(t *testing.T) {
	p := NewParser()
	rec := &recordingPerformer{}
	p.Feed([]byte("\x1bc"), rec)
	assert.Equal(t, []escCall{{final: 'c'}}, rec.escs)
}
