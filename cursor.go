package vtcore

// CursorStyle determines how the cursor is rendered.
type CursorStyle int

const (
	CursorStyleBlinkingBlock CursorStyle = iota
	CursorStyleSteadyBlock
	CursorStyleBlinkingUnderline
	CursorStyleSteadyUnderline
	CursorStyleBlinkingBar
	CursorStyleSteadyBar
)

// Cursor tracks position, rendering style, and the current pen
// (attributes/colors applied to newly written cells), plus the
// VT100 last-column-quirk latch.
type Cursor struct {
	Row     int
	Col     int
	Visible bool
	Style   CursorStyle
	Blinking bool

	// PendingWrap is set when a printable character fills the last
	// column with autowrap on. It defers the wrap to the next
	// printable character instead of wrapping immediately, matching
	// real VT100 behavior (spec's "pending wrap" latch).
	PendingWrap bool

	Pen CellTemplate
}

// NewCursor returns a cursor at (0,0), visible, blinking block style.
func NewCursor() *Cursor {
	return &Cursor{
		Visible:  true,
		Style:    CursorStyleBlinkingBlock,
		Blinking: true,
		Pen:      NewCellTemplate(),
	}
}

// CellTemplate is the pen: default attributes applied to newly written
// cells, mutated by SGR.
type CellTemplate struct {
	Fg             Color
	Bg             Color
	UnderlineColor Color
	Attrs          CellAttributes
}

// NewCellTemplate returns a pen reset to terminal defaults.
func NewCellTemplate() CellTemplate {
	return CellTemplate{}
}

// Apply stamps the pen's styling onto a cell, leaving Content/Width
// untouched (the caller sets those separately).
func (t CellTemplate) Apply(c *Cell) {
	c.Fg = t.Fg
	c.Bg = t.Bg
	c.UnderlineColor = t.UnderlineColor
	c.Attrs = t.Attrs
}

// Charset selects a G-slot's character encoding variant.
type Charset int

const (
	CharsetASCII Charset = iota
	CharsetDecSpecialGraphics
	CharsetUK
)

// CharsetIndex selects one of the four G0-G3 character set slots.
type CharsetIndex int

const (
	CharsetIndexG0 CharsetIndex = iota
	CharsetIndexG1
	CharsetIndexG2
	CharsetIndexG3
)

// CharsetState holds the four G-slots and which is active in GL.
type CharsetState struct {
	Slots  [4]Charset
	Active CharsetIndex
}

// SavedCursor is the snapshot captured by DECSC/DECRC and by the
// 1048/1049 alternate-screen save/restore flows: position, pen,
// origin-mode state, and active charset slot.
type SavedCursor struct {
	Row, Col   int
	Pen        CellTemplate
	OriginMode bool
	Charsets   CharsetState
}

// Save captures the cursor and the charset/origin-mode context passed in.
func (c *Cursor) Save(originMode bool, charsets CharsetState) SavedCursor {
	return SavedCursor{
		Row:        c.Row,
		Col:        c.Col,
		Pen:        c.Pen,
		OriginMode: originMode,
		Charsets:   charsets,
	}
}

// Restore applies a previously saved cursor, clearing pending_wrap
// (the latch never survives a save/restore round trip).
func (c *Cursor) Restore(s SavedCursor) {
	c.Row = s.Row
	c.Col = s.Col
	c.Pen = s.Pen
	c.PendingWrap = false
}
