package vtcore

// CellAttributes is a bitmask of SGR text attributes. Unlike the
// teacher's CellFlags, rendering-only bookkeeping (wide-char-spacer,
// dirty) lives outside this set since they are structural, not pen
// attributes set by SGR.
type CellAttributes uint16

const (
	AttrBold CellAttributes = 1 << iota
	AttrFaint
	AttrItalic
	AttrUnderline
	AttrDoubleUnderline
	AttrCurlyUnderline
	AttrBlink
	AttrInverse
	AttrHidden
	AttrStrikethrough
)

// Has reports whether flag is set.
func (a CellAttributes) Has(flag CellAttributes) bool { return a&flag != 0 }

// Cell is one grid position: a short grapheme cluster, pen colors, SGR
// attributes, display width, and an optional weak hyperlink reference.
// A width-2 cell is always immediately followed in the same Line by a
// width-0 continuation cell holding no content.
type Cell struct {
	Content        string
	Fg             Color
	Bg             Color
	UnderlineColor Color
	Attrs          CellAttributes
	Width          int
	HyperlinkID    uint32
	HasHyperlink   bool
	dirty          bool
}

// NewCell returns a blank cell: one space, default colors, width 1.
func NewCell() Cell {
	return Cell{Content: " ", Width: 1}
}

// Reset restores default content/colors/attributes, dropping any
// hyperlink reference and wide-char state.
func (c *Cell) Reset() {
	*c = Cell{Content: " ", Width: 1, dirty: c.dirty}
}

// IsWide reports whether this cell is the first column of a 2-wide glyph.
func (c *Cell) IsWide() bool { return c.Width == 2 }

// IsWideSpacer reports whether this cell is the continuation column of
// a wide glyph (content empty, width 0).
func (c *Cell) IsWideSpacer() bool { return c.Width == 0 }

// MarkDirty flags the cell as modified since the last ClearDirty.
func (c *Cell) MarkDirty() { c.dirty = true }

// ClearDirty clears the dirty flag.
func (c *Cell) ClearDirty() { c.dirty = false }

// IsDirty reports whether the cell changed since the last ClearDirty.
func (c *Cell) IsDirty() bool { return c.dirty }

// IsBlank reports whether the cell carries only the default blank glyph
// with no styling or hyperlink, used by the snapshot's omit-defaults rule.
func (c *Cell) IsBlank() bool {
	return c.Content == " " && c.Width == 1 && c.Attrs == 0 &&
		c.Fg.Kind == ColorDefault && c.Bg.Kind == ColorDefault && !c.HasHyperlink
}
