package vtcore

// MouseMode selects which mouse events are reported.
type MouseMode int

const (
	MouseModeNone MouseMode = iota
	MouseModeX10
	MouseModeNormal
	MouseModeButtonMotion
	MouseModeAnyMotion
)

// MouseEncoding selects how mouse reports are byte-encoded.
type MouseEncoding int

const (
	MouseEncodingX10 MouseEncoding = iota
	MouseEncodingUTF8
	MouseEncodingSGR
	MouseEncodingURXVT
)

// Modes consolidates the boolean/enum mode bits the teacher scatters
// across a single TerminalMode bitmask and ad hoc Terminal fields,
// per spec §3's Modes record.
type Modes struct {
	Autowrap            bool
	Origin              bool
	Insert              bool
	LinefeedNewline     bool
	CursorKeysApp       bool
	KeypadApp           bool
	BracketedPaste      bool
	FocusReporting      bool
	MouseMode           MouseMode
	MouseEncoding       MouseEncoding
	AlternateActive     bool
	ReverseVideo        bool
	CursorVisible       bool
	CursorBlink         bool
}

// NewModes returns the power-on default mode set: autowrap, cursor
// visibility and cursor blink on, everything else off.
func NewModes() Modes {
	return Modes{
		Autowrap:      true,
		CursorVisible: true,
		CursorBlink:   true,
	}
}
