package vtparse

// state is one of the fourteen states of the VT500-series parser.
type state uint8

const (
	stateGround state = iota
	stateEscape
	stateEscapeIntermediate
	stateCsiEntry
	stateCsiParam
	stateCsiIntermediate
	stateCsiIgnore
	stateDcsEntry
	stateDcsParam
	stateDcsIntermediate
	stateDcsPassthrough
	stateDcsIgnore
	stateOscString
	stateSosPmApcString
)

const (
	cCAN  = 0x18
	cSUB  = 0x1A
	cESC  = 0x1B
	cBEL  = 0x07
	cBackslash = '\\'
)

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// isIntermediate reports whether b is a CSI/ESC/DCS intermediate byte.
func isIntermediate(b byte) bool { return b >= 0x20 && b <= 0x2F }

// isCsiFinal reports whether b is a valid CSI/DCS/ESC final byte.
func isCsiFinal(b byte) bool { return b >= 0x40 && b <= 0x7E }

// isPrivateMarker reports whether b is a CSI private-use marker.
func isPrivateMarker(b byte) bool { return b >= 0x3C && b <= 0x3F }

// isExecutable reports whether b is a C0 control the Ground/Escape/Csi
// states execute immediately without disturbing parser state (all C0
// controls except ESC, and DEL, per the VT500 table).
func isExecutable(b byte) bool {
	return b <= 0x1F && b != cESC
}
