// Package vtparse implements the VT500-series escape sequence state
// machine: a streaming byte-to-action decoder with bounded scratch
// buffers and no panics on any input, adversarial or otherwise.
//
// The shape of the Performer interface and the Params sub-parameter
// model follow the public vte-crate-style split also visible in
// github.com/cliofy/govte (Print/Execute/Hook/Put/Unhook/OscDispatch/
// CsiDispatch/EscDispatch, Params.Iter() returning [][]uint16 groups):
// that is the same VT500 table this package's Parser implements, ported
// independently rather than copied, since the pack does not carry
// go-vte's own source.
package vtparse

// Performer receives callbacks as the Parser advances through a byte
// stream. Calls happen synchronously inside Feed; a Performer method
// must not block or re-enter the Parser.
type Performer interface {
	// Print is invoked once per decoded Unicode scalar destined for
	// the screen.
	Print(r rune)
	// Execute is invoked for a single C0 control byte to perform
	// (BEL, BS, HT, LF, VT, FF, CR, SO, SI, ...).
	Execute(b byte)
	// CsiDispatch is invoked when a CSI sequence's final byte arrives.
	// private is 0 if no private marker (0x3C-0x3F) was present.
	CsiDispatch(params *Params, intermediates []byte, private byte, final byte)
	// EscDispatch is invoked when a bare ESC sequence's final byte
	// arrives (no CSI/OSC/DCS introducer).
	EscDispatch(intermediates []byte, final byte)
	// OscDispatch is invoked when an OSC string terminates (BEL or
	// ST). params are the ';'-separated byte slices of the payload.
	OscDispatch(params [][]byte, bellTerminated bool)
	// Hook begins a DCS passthrough sequence.
	Hook(params *Params, intermediates []byte, private byte, final byte)
	// Put delivers one byte of DCS payload.
	Put(b byte)
	// Unhook ends a DCS passthrough sequence.
	Unhook()
}
