package vtcore

// Snapshot is the serializable projection of terminal state: a value
// copy that never aliases live Screen storage, per spec §5's
// shared-resource policy. Stable key ordering and an omit-default
// policy on Cell keep golden-test diffs small (spec §6.6).
type Snapshot struct {
	Rows   int            `json:"rows"`
	Cols   int            `json:"cols"`
	Cursor SnapshotCursor `json:"cursor"`
	Lines  []SnapshotLine `json:"lines"`
	Modes  SnapshotModes  `json:"modes"`
	Title  string         `json:"title,omitempty"`
}

type SnapshotCursor struct {
	Row         int    `json:"row"`
	Col         int    `json:"col"`
	Visible     bool   `json:"visible"`
	Style       string `json:"style"`
	Blinking    bool   `json:"blinking,omitempty"`
	PendingWrap bool   `json:"pending_wrap,omitempty"`
}

type SnapshotLine struct {
	Cells   []SnapshotCell `json:"cells"`
	Wrapped bool           `json:"wrapped,omitempty"`
}

// SnapshotCell omits fields at their default value: a fully blank
// cell serializes as {}.
type SnapshotCell struct {
	Text        string         `json:"text,omitempty"`
	Fg          *SnapshotColor `json:"fg,omitempty"`
	Bg          *SnapshotColor `json:"bg,omitempty"`
	Attrs       *SnapshotAttrs `json:"attrs,omitempty"`
	Width       *int           `json:"width,omitempty"`
	HyperlinkID *uint32        `json:"hyperlink_id,omitempty"`
}

// SnapshotColor tags its kind explicitly so readers never need to
// sniff a numeric encoding (spec §6.6 "{kind: default|indexed|rgb}").
type SnapshotColor struct {
	Kind string `json:"kind"`
	Idx  uint8  `json:"index,omitempty"`
	R    uint8  `json:"r,omitempty"`
	G    uint8  `json:"g,omitempty"`
	B    uint8  `json:"b,omitempty"`
}

type SnapshotAttrs struct {
	Bold          bool `json:"bold,omitempty"`
	Faint         bool `json:"faint,omitempty"`
	Italic        bool `json:"italic,omitempty"`
	Underline     bool `json:"underline,omitempty"`
	Blink         bool `json:"blink,omitempty"`
	Inverse       bool `json:"inverse,omitempty"`
	Hidden        bool `json:"hidden,omitempty"`
	Strikethrough bool `json:"strikethrough,omitempty"`
}

type SnapshotModes struct {
	Autowrap        bool `json:"autowrap,omitempty"`
	Origin          bool `json:"origin,omitempty"`
	Insert          bool `json:"insert,omitempty"`
	AlternateActive bool `json:"alternate_active,omitempty"`
	BracketedPaste  bool `json:"bracketed_paste,omitempty"`
}

func snapshotColor(c Color) *SnapshotColor {
	switch c.Kind {
	case ColorIndexed:
		return &SnapshotColor{Kind: "indexed", Idx: c.Index}
	case ColorRGB:
		return &SnapshotColor{Kind: "rgb", R: c.R, G: c.G, B: c.B}
	default:
		return nil
	}
}

func snapshotAttrs(a CellAttributes) *SnapshotAttrs {
	if a == 0 {
		return nil
	}
	return &SnapshotAttrs{
		Bold:          a.Has(AttrBold),
		Faint:         a.Has(AttrFaint),
		Italic:        a.Has(AttrItalic),
		Underline:     a.Has(AttrUnderline) || a.Has(AttrDoubleUnderline) || a.Has(AttrCurlyUnderline),
		Blink:         a.Has(AttrBlink),
		Inverse:       a.Has(AttrInverse),
		Hidden:        a.Has(AttrHidden),
		Strikethrough: a.Has(AttrStrikethrough),
	}
}

func snapshotCell(c Cell) SnapshotCell {
	var out SnapshotCell
	if c.Width != 1 {
		w := c.Width
		out.Width = &w
	}
	if c.Content != " " && c.Content != "" {
		out.Text = c.Content
	}
	out.Fg = snapshotColor(c.Fg)
	out.Bg = snapshotColor(c.Bg)
	out.Attrs = snapshotAttrs(c.Attrs)
	if c.HasHyperlink {
		id := c.HyperlinkID
		out.HyperlinkID = &id
	}
	return out
}

func cursorStyleName(s CursorStyle) string {
	switch s {
	case CursorStyleBlinkingBlock, CursorStyleSteadyBlock:
		return "block"
	case CursorStyleBlinkingUnderline, CursorStyleSteadyUnderline:
		return "underline"
	case CursorStyleBlinkingBar, CursorStyleSteadyBar:
		return "bar"
	default:
		return "block"
	}
}

// Snapshot returns a value-copy projection of the current screen
// state: dimensions, cursor, visible lines, mode flags, and title.
func (t *Terminal) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s := t.screen
	cur := s.Cursor()

	snap := Snapshot{
		Rows: s.rows,
		Cols: s.cols,
		Cursor: SnapshotCursor{
			Row:         cur.Row,
			Col:         cur.Col,
			Visible:     cur.Visible,
			Style:       cursorStyleName(cur.Style),
			Blinking:    cur.Blinking,
			PendingWrap: cur.PendingWrap,
		},
		Modes: SnapshotModes{
			Autowrap:        s.modes.Autowrap,
			Origin:          s.modes.Origin,
			Insert:          s.modes.Insert,
			AlternateActive: s.modes.AlternateActive,
			BracketedPaste:  s.modes.BracketedPaste,
		},
		Title: s.Title(),
	}

	snap.Lines = make([]SnapshotLine, s.rows)
	for r := 0; r < s.rows; r++ {
		line := s.active.LineAt(r)
		sl := SnapshotLine{Wrapped: line.Wrapped, Cells: make([]SnapshotCell, s.cols)}
		for c := 0; c < s.cols; c++ {
			sl.Cells[c] = snapshotCell(line.Cells[c])
		}
		snap.Lines[r] = sl
	}

	return snap
}

// ScrollbackView returns up to rows Lines starting offset lines back
// from the top of the visible area (read-only access to history).
func (t *Terminal) ScrollbackView(offset, rows int) []Line {
	t.mu.RLock()
	defer t.mu.RUnlock()

	total := t.screen.primary.ScrollbackLen()
	if offset < 0 || offset >= total || rows <= 0 {
		return nil
	}
	end := offset + rows
	if end > total {
		end = total
	}
	out := make([]Line, 0, end-offset)
	for i := offset; i < end; i++ {
		if line, ok := t.screen.primary.ScrollbackLine(i); ok {
			out = append(out, line)
		}
	}
	return out
}
