package vtcore

// Screen is the deterministic realization of parser actions as grid,
// cursor, scrollback, mode, and selection changes (spec §4.2). It
// knows nothing about bytes or escape-sequence grammar; Terminal
// translates parser callbacks into calls on this type.
type Screen struct {
	rows, cols int

	primary   *Grid
	alternate *Grid
	active    *Grid

	cursor *Cursor

	savedPrimary   *SavedCursor
	savedAlternate *SavedCursor

	charsets CharsetState

	scrollTop    int
	scrollBottom int

	modes Modes

	selection Selection

	hyperlinks      *HyperlinkTable
	currentHyperlinkID uint32
	hasCurrentHyperlink bool

	title      string
	titleStack []string
}

// NewScreen returns a Screen sized rows x cols with the primary grid
// active, scrollback bounded at scrollbackCapacity.
func NewScreen(rows, cols, scrollbackCapacity int) *Screen {
	if rows <= 0 {
		rows = 24
	}
	if cols <= 0 {
		cols = 80
	}
	s := &Screen{
		rows: rows,
		cols: cols,
	}
	s.primary = NewGridWithScrollback(rows, cols, NewScrollback(scrollbackCapacity))
	s.alternate = NewGrid(rows, cols)
	s.active = s.primary
	s.cursor = NewCursor()
	s.scrollTop = 0
	s.scrollBottom = rows - 1
	s.modes = NewModes()
	s.hyperlinks = NewHyperlinkTable(defaultHyperlinkCapacity)
	return s
}

func (s *Screen) Rows() int { return s.rows }
func (s *Screen) Cols() int { return s.cols }

// clampCursor enforces the invariant cursor ∈ (0..rows, 0..cols), or
// the origin-mode-restricted region when origin mode is on.
func (s *Screen) clampCursor() {
	top, bottom := 0, s.rows-1
	if s.modes.Origin {
		top, bottom = s.scrollTop, s.scrollBottom
	}
	if s.cursor.Row < top {
		s.cursor.Row = top
	}
	if s.cursor.Row > bottom {
		s.cursor.Row = bottom
	}
	if s.cursor.Col < 0 {
		s.cursor.Col = 0
	}
	if s.cursor.Col > s.cols-1 {
		s.cursor.Col = s.cols - 1
	}
}

// --- Printable handling (spec §4.2 "Printable handling") ---

// Print writes one already-charset-mapped Unicode scalar at the
// cursor, handling the pending-wrap latch, insert mode, and wide
// characters.
func (s *Screen) Print(r rune) {
	if s.cursor.PendingWrap && s.modes.Autowrap {
		s.wrapToNextLine()
	}

	width := runeWidth(r)
	if width == 0 {
		s.attachCombining(r)
		return
	}

	if s.cursor.Col+width > s.cols {
		if s.modes.Autowrap {
			s.wrapToNextLine()
		} else {
			s.cursor.Col = s.cols - width
			if s.cursor.Col < 0 {
				s.cursor.Col = 0
			}
		}
	}

	if s.modes.Insert {
		s.active.InsertBlanks(s.cursor.Row, s.cursor.Col, width)
	}

	cell := s.active.Cell(s.cursor.Row, s.cursor.Col)
	if cell != nil {
		cell.Content = string(r)
		s.cursor.Pen.Apply(cell)
		cell.Width = width
		if s.hasCurrentHyperlink {
			cell.HyperlinkID = s.currentHyperlinkID
			cell.HasHyperlink = true
		} else {
			cell.HasHyperlink = false
		}
		cell.MarkDirty()
	}
	s.cursor.Col++

	if width == 2 {
		spacer := s.active.Cell(s.cursor.Row, s.cursor.Col)
		if spacer != nil {
			spacer.Reset()
			spacer.Content = ""
			spacer.Width = 0
			spacer.MarkDirty()
		}
		s.cursor.Col++
	}

	if s.cursor.Col >= s.cols {
		s.cursor.Col = s.cols - 1
		s.cursor.PendingWrap = s.modes.Autowrap
	} else {
		s.cursor.PendingWrap = false
	}
}

// attachCombining folds a zero-width scalar onto the previous
// non-empty cell's content rather than advancing the cursor.
func (s *Screen) attachCombining(r rune) {
	col := s.cursor.Col - 1
	row := s.cursor.Row
	if col < 0 {
		return
	}
	cell := s.active.Cell(row, col)
	if cell == nil || cell.Content == "" {
		return
	}
	cell.Content += string(r)
	cell.MarkDirty()
}

// wrapToNextLine performs the implicit CR+LF a deferred wrap emits,
// marking the line left behind as wrapped.
func (s *Screen) wrapToNextLine() {
	if line := s.active.LineAt(s.cursor.Row); line != nil {
		line.Wrapped = true
	}
	s.cursor.Col = 0
	s.cursor.PendingWrap = false
	s.lineFeed()
}

// --- C0 dispatch (spec §4.2 "C0 dispatch") ---

func (s *Screen) Bell() {}

func (s *Screen) Backspace() {
	if s.cursor.Col > 0 {
		s.cursor.Col--
	}
	s.cursor.PendingWrap = false
}

func (s *Screen) CarriageReturn() {
	s.cursor.Col = 0
	s.cursor.PendingWrap = false
}

func (s *Screen) Tab() {
	s.cursor.Col = s.active.NextTabStop(s.cursor.Col)
	s.cursor.PendingWrap = false
}

// LineFeed moves down one row, scrolling within the scroll region
// when at its bottom (evicting to scrollback only when the region is
// the full grid and the primary buffer is active).
func (s *Screen) LineFeed() {
	s.lineFeed()
	if s.modes.LinefeedNewline {
		s.cursor.Col = 0
	}
	s.cursor.PendingWrap = false
}

func (s *Screen) lineFeed() {
	if s.cursor.Row == s.scrollBottom {
		s.active.ScrollUp(s.scrollTop, s.scrollBottom+1, 1)
		return
	}
	if s.cursor.Row < s.rows-1 {
		s.cursor.Row++
	}
}

func (s *Screen) ShiftOut() { s.charsets.Active = CharsetIndexG1 }
func (s *Screen) ShiftIn()  { s.charsets.Active = CharsetIndexG0 }

// --- Cursor motion (CUU/CUD/CUF/CUB etc) ---

func (s *Screen) CursorUp(n int) {
	s.cursor.Row -= n
	s.clampCursor()
	s.cursor.PendingWrap = false
}

func (s *Screen) CursorDown(n int) {
	s.cursor.Row += n
	s.clampCursor()
	s.cursor.PendingWrap = false
}

func (s *Screen) CursorForward(n int) {
	s.cursor.Col += n
	s.clampCursor()
	s.cursor.PendingWrap = false
}

func (s *Screen) CursorBack(n int) {
	s.cursor.Col -= n
	s.clampCursor()
	s.cursor.PendingWrap = false
}

func (s *Screen) CursorNextLine(n int) {
	s.cursor.Row += n
	s.cursor.Col = 0
	s.clampCursor()
	s.cursor.PendingWrap = false
}

func (s *Screen) CursorPrevLine(n int) {
	s.cursor.Row -= n
	s.cursor.Col = 0
	s.clampCursor()
	s.cursor.PendingWrap = false
}

func (s *Screen) CursorColumn(col int) {
	s.cursor.Col = col
	s.clampCursor()
	s.cursor.PendingWrap = false
}

func (s *Screen) CursorLine(row int) {
	s.cursor.Row = row
	s.clampCursor()
	s.cursor.PendingWrap = false
}

// CursorTo moves to (row, col) honoring origin mode: when on, row/col
// are relative to the scroll region's top and clipped to its bottom.
func (s *Screen) CursorTo(row, col int) {
	if s.modes.Origin {
		row += s.scrollTop
	}
	s.cursor.Row = row
	s.cursor.Col = col
	s.clampCursor()
	s.cursor.PendingWrap = false
}

// --- Erase ---

func (s *Screen) EraseInLine(mode int) {
	switch mode {
	case 0:
		s.active.ClearRowRange(s.cursor.Row, s.cursor.Col, s.cols)
	case 1:
		s.active.ClearRowRange(s.cursor.Row, 0, s.cursor.Col+1)
	case 2:
		s.active.ClearRowRange(s.cursor.Row, 0, s.cols)
	}
}

func (s *Screen) EraseInDisplay(mode int) {
	switch mode {
	case 0:
		s.active.ClearRowRange(s.cursor.Row, s.cursor.Col, s.cols)
		for r := s.cursor.Row + 1; r < s.rows; r++ {
			s.active.ClearRow(r)
		}
	case 1:
		for r := 0; r < s.cursor.Row; r++ {
			s.active.ClearRow(r)
		}
		s.active.ClearRowRange(s.cursor.Row, 0, s.cursor.Col+1)
	case 2:
		s.active.ClearAll()
	case 3:
		if s.active == s.primary {
			s.active.ClearScrollback()
		}
	}
}

func (s *Screen) EraseChars(n int) {
	s.active.ClearRowRange(s.cursor.Row, s.cursor.Col, s.cursor.Col+n)
}

// --- Insert/Delete ---

func (s *Screen) InsertBlank(n int) {
	s.active.InsertBlanks(s.cursor.Row, s.cursor.Col, n)
}

func (s *Screen) DeleteChars(n int) {
	s.active.DeleteChars(s.cursor.Row, s.cursor.Col, n)
}

func (s *Screen) InsertLines(n int) {
	if s.cursor.Row < s.scrollTop || s.cursor.Row > s.scrollBottom {
		return
	}
	s.active.InsertLines(s.cursor.Row, n, s.scrollBottom+1)
}

func (s *Screen) DeleteLines(n int) {
	if s.cursor.Row < s.scrollTop || s.cursor.Row > s.scrollBottom {
		return
	}
	s.active.DeleteLines(s.cursor.Row, n, s.scrollBottom+1)
}

// --- Scroll ---

func (s *Screen) ScrollUp(n int) {
	s.active.ScrollUp(s.scrollTop, s.scrollBottom+1, n)
}

func (s *Screen) ScrollDown(n int) {
	s.active.ScrollDown(s.scrollTop, s.scrollBottom+1, n)
}

// SetScrollRegion sets (top,bottom) 0-based inclusive, rejecting an
// inverted region, and homes the cursor honoring origin mode.
func (s *Screen) SetScrollRegion(top, bottom int) {
	if top < 0 {
		top = 0
	}
	if bottom > s.rows-1 {
		bottom = s.rows - 1
	}
	if top >= bottom {
		return
	}
	s.scrollTop = top
	s.scrollBottom = bottom
	s.CursorTo(0, 0)
}

// --- Tabs ---

func (s *Screen) SetTabStop()      { s.active.SetTabStop(s.cursor.Col) }
func (s *Screen) ClearTabStop()    { s.active.ClearTabStop(s.cursor.Col) }
func (s *Screen) ClearAllTabStops() { s.active.ClearAllTabStops() }

// --- Charsets ---

func (s *Screen) DesignateCharset(slot CharsetIndex, cs Charset) {
	if slot >= 0 && int(slot) < len(s.charsets.Slots) {
		s.charsets.Slots[slot] = cs
	}
}

// TranslateChar maps r through the active G-slot (DEC Special
// Graphics maps a handful of ASCII letters to box-drawing glyphs).
func (s *Screen) TranslateChar(r rune) rune {
	if s.charsets.Slots[s.charsets.Active] != CharsetDecSpecialGraphics {
		return r
	}
	switch r {
	case 'j':
		return '┘'
	case 'k':
		return '┐'
	case 'l':
		return '┌'
	case 'm':
		return '└'
	case 'n':
		return '┼'
	case 'q':
		return '─'
	case 't':
		return '├'
	case 'u':
		return '┤'
	case 'v':
		return '┴'
	case 'w':
		return '┬'
	case 'x':
		return '│'
	default:
		return r
	}
}

// --- Cursor save/restore (DECSC/DECRC, SCO s/u) ---

func (s *Screen) SaveCursor() {
	saved := s.cursor.Save(s.modes.Origin, s.charsets)
	if s.active == s.primary {
		s.savedPrimary = &saved
	} else {
		s.savedAlternate = &saved
	}
}

func (s *Screen) RestoreCursor() {
	var saved *SavedCursor
	if s.active == s.primary {
		saved = s.savedPrimary
	} else {
		saved = s.savedAlternate
	}
	if saved == nil {
		return
	}
	s.cursor.Restore(*saved)
	s.modes.Origin = saved.OriginMode
	s.charsets = saved.Charsets
	s.clampCursor()
}

// --- Alternate screen (DECSET/DECRST 47/1047/1049) ---

// EnterAlternate saves the cursor, switches to the alternate grid,
// and (when clear is true, as with 1049) clears it.
func (s *Screen) EnterAlternate(clear bool) {
	if s.active == s.alternate {
		return
	}
	s.SaveCursor()
	s.active = s.alternate
	s.modes.AlternateActive = true
	if clear {
		s.alternate.ClearAll()
	}
}

// ExitAlternate switches back to the primary grid and restores the
// cursor saved on alternate-screen entry.
func (s *Screen) ExitAlternate() {
	if s.active == s.primary {
		return
	}
	s.active = s.primary
	s.modes.AlternateActive = false
	s.RestoreCursor()
}

// --- Full reset (RIS) ---

func (s *Screen) FullReset() {
	sbCap := defaultScrollbackCapacity
	if rb, ok := s.primary.scrollback.(*ringScrollback); ok {
		sbCap = rb.MaxLines()
	}
	rows, cols := s.rows, s.cols
	*s = *NewScreen(rows, cols, sbCap)
}

// DECALN fills the active grid with 'E' for alignment testing.
func (s *Screen) DECALN() {
	s.active.FillWithE()
	s.cursor.PendingWrap = false
}

// --- Resize (spec §4.2 Resize) ---

func (s *Screen) Resize(rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return &ResizeRejected{Rows: rows, Cols: cols, Reason: "rows and cols must be positive"}
	}

	// Shrinking rows evicts the topmost rows off the primary grid to
	// scrollback unconditionally (spec Resize step 1), not only when
	// the cursor would otherwise land out of bounds. The cursor's row
	// shifts with the content it evicted when the primary grid is the
	// one on screen; clampCursor below settles it into the new bounds.
	if rows < s.rows {
		evicted := s.rows - rows
		s.primary.ScrollUp(0, s.rows, evicted)
		if s.active == s.primary {
			s.cursor.Row -= evicted
		}
	}

	s.primary.Resize(rows, cols)
	s.alternate.Resize(rows, cols)
	s.rows = rows
	s.cols = cols

	// Clamp the scroll region to the new rows, falling back to the full
	// grid when clamping leaves it inverted.
	if s.scrollBottom > rows-1 {
		s.scrollBottom = rows - 1
	}
	if s.scrollTop >= s.scrollBottom {
		s.scrollTop = 0
		s.scrollBottom = rows - 1
	}

	s.cursor.PendingWrap = false
	s.clampCursor()
	return nil
}

// --- Title ---

func (s *Screen) SetTitle(t string) { s.title = t }
func (s *Screen) Title() string     { return s.title }
func (s *Screen) PushTitle()        { s.titleStack = append(s.titleStack, s.title) }
func (s *Screen) PopTitle() {
	if n := len(s.titleStack); n > 0 {
		s.title = s.titleStack[n-1]
		s.titleStack = s.titleStack[:n-1]
	}
}

// --- Hyperlinks ---

// SetHyperlink registers uri as the current pen's hyperlink, or clears
// it when uri is empty.
func (s *Screen) SetHyperlink(uri string) uint32 {
	if uri == "" {
		s.hasCurrentHyperlink = false
		s.currentHyperlinkID = 0
		return 0
	}
	id := s.hyperlinks.Register(uri)
	s.currentHyperlinkID = id
	s.hasCurrentHyperlink = true
	return id
}

func (s *Screen) HyperlinkURI(id uint32) (string, bool) {
	return s.hyperlinks.Lookup(id)
}

// --- Cursor/mode accessors used by Terminal's dispatch and Snapshot ---

func (s *Screen) Cursor() *Cursor  { return s.cursor }
func (s *Screen) Modes() *Modes   { return &s.modes }
func (s *Screen) Active() *Grid   { return s.active }
func (s *Screen) Primary() *Grid  { return s.primary }
func (s *Screen) ScrollRegion() (top, bottom int) { return s.scrollTop, s.scrollBottom }
func (s *Screen) Selection() *Selection { return &s.selection }
