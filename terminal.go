package vtcore

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/vtcore/vtcore/internal/vtparse"
)

var _ vtparse.Performer = (*Terminal)(nil)

const (
	defaultRows = 24
	defaultCols = 80

	titleRateLimit        = 100 * time.Millisecond
	defaultClipboardMaxB64 = 100 * 1024
)

// hyperlinkSchemeAllowlist is the default set of URI schemes OSC 8 is
// permitted to register (spec §4.3 OnHyperlinkRegistered).
var hyperlinkSchemeAllowlist = map[string]bool{
	"http": true, "https": true, "mailto": true,
}

// Terminal is the thin dispatcher: it owns a Parser and a Screen, and
// for every Action the Parser yields it invokes the matching Screen
// operation, surfacing externally-visible side effects through an
// Observer. Mirrors the teacher's locked, option-constructed Terminal
// but replaces its Provider/Middleware pair with one capability
// interface (see observer.go).
type Terminal struct {
	mu sync.RWMutex

	screen *Screen
	parser *vtparse.Parser

	observer Observer

	clipboardEnabled   bool
	clipboardMaxBytes  int
	allowFileHyperlink bool

	lastTitleAt   time.Time
	pendingTitle  string
	haveTitlePending bool
}

// Option configures a Terminal during construction.
type Option func(*Terminal)

// WithSize sets the terminal dimensions (defaults applied for <= 0).
func WithSize(rows, cols int) Option {
	if rows <= 0 {
		rows = defaultRows
	}
	if cols <= 0 {
		cols = defaultCols
	}
	return func(t *Terminal) {
		t.screen.rows, t.screen.cols = rows, cols
	}
}

// WithScrollbackCapacity sets the primary grid's scrollback capacity
// (default 10,000 lines, per spec §3).
func WithScrollbackCapacity(n int) Option {
	return func(t *Terminal) {
		t.screen.primary.scrollback.SetMaxLines(n)
	}
}

// WithObserver sets the capability object receiving title/bell/write/
// clipboard/hyperlink side effects. Defaults to NoopObserver.
func WithObserver(o Observer) Option {
	return func(t *Terminal) {
		t.observer = o
	}
}

// WithClipboard enables OSC 52 clipboard read/write routing to the
// Observer, with payloads capped at maxBytes (0 keeps the default
// 100 KiB cap from spec §4.3).
func WithClipboard(enabled bool, maxBytes int) Option {
	return func(t *Terminal) {
		t.clipboardEnabled = enabled
		if maxBytes > 0 {
			t.clipboardMaxBytes = maxBytes
		}
	}
}

// WithFileHyperlinks extends the OSC 8 scheme allow-list with "file",
// per spec §4.3's "and optionally file".
func WithFileHyperlinks() Option {
	return func(t *Terminal) {
		t.allowFileHyperlink = true
	}
}

// New constructs a Terminal with 80x24 default geometry, autowrap and
// cursor-visible modes on, and a no-op Observer until overridden.
func New(opts ...Option) *Terminal {
	t := &Terminal{
		parser:            vtparse.NewParser(),
		observer:          NoopObserver{},
		clipboardMaxBytes: defaultClipboardMaxB64,
	}
	t.screen = NewScreen(defaultRows, defaultCols, defaultScrollbackCapacity)

	for _, opt := range opts {
		opt(t)
	}

	if t.screen.rows != defaultRows || t.screen.cols != defaultCols {
		rows, cols := t.screen.rows, t.screen.cols
		sbCap := defaultScrollbackCapacity
		if rb, ok := t.screen.primary.scrollback.(*ringScrollback); ok {
			sbCap = rb.MaxLines()
		}
		t.screen = NewScreen(rows, cols, sbCap)
	}

	return t
}

// Feed parses data and applies its effects to the screen, invoking
// Observer callbacks for any side effects produced along the way.
func (t *Terminal) Feed(data []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.parser.Feed(data, t)
}

// Write implements io.Writer in terms of Feed.
func (t *Terminal) Write(data []byte) (int, error) {
	t.Feed(data)
	return len(data), nil
}

// Resize changes terminal geometry, rejecting non-positive values as
// a typed ResizeRejected error (spec §7 category 3).
func (t *Terminal) Resize(rows, cols int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.Resize(rows, cols)
}

// Rows/Cols/Title/CursorPos read current state.
func (t *Terminal) Rows() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.screen.rows
}

func (t *Terminal) Cols() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.screen.cols
}

func (t *Terminal) Title() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.screen.Title()
}

func (t *Terminal) CursorPos() (row, col int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	c := t.screen.Cursor()
	return c.Row, c.Col
}

// --- vtparse.Performer ---

func (t *Terminal) Print(r rune) {
	t.screen.Print(t.screen.TranslateChar(r))
}

func (t *Terminal) Execute(b byte) {
	switch b {
	case 0x07: // BEL
		t.screen.Bell()
		t.observer.OnBell()
	case 0x08: // BS
		t.screen.Backspace()
	case 0x09: // HT
		t.screen.Tab()
	case 0x0A, 0x0B, 0x0C: // LF, VT, FF
		t.screen.LineFeed()
	case 0x0D: // CR
		t.screen.CarriageReturn()
	case 0x0E: // SO
		t.screen.ShiftOut()
	case 0x0F: // SI
		t.screen.ShiftIn()
	}
}

func (t *Terminal) Hook(params *vtparse.Params, intermediates []byte, private byte, final byte) {}
func (t *Terminal) Put(b byte)                                                                  {}
func (t *Terminal) Unhook()                                                                     {}

// --- ESC dispatch ---

func (t *Terminal) EscDispatch(intermediates []byte, final byte) {
	if len(intermediates) == 1 {
		switch intermediates[0] {
		case '(':
			t.screen.DesignateCharset(CharsetIndexG0, charsetFromFinal(final))
			return
		case ')':
			t.screen.DesignateCharset(CharsetIndexG1, charsetFromFinal(final))
			return
		case '#':
			if final == '8' {
				t.screen.DECALN()
			}
			return
		}
	}

	switch final {
	case '7': // DECSC
		t.screen.SaveCursor()
	case '8': // DECRC
		t.screen.RestoreCursor()
	case 'D': // IND
		t.screen.LineFeed()
	case 'M': // RI
		t.reverseIndex()
	case 'E': // NEL
		t.screen.CarriageReturn()
		t.screen.LineFeed()
	case 'H': // HTS
		t.screen.SetTabStop()
	case 'c': // RIS
		t.screen.FullReset()
	case '=': // DECKPAM
		t.screen.modes.KeypadApp = true
	case '>': // DECKPNM
		t.screen.modes.KeypadApp = false
	}
}

func (t *Terminal) reverseIndex() {
	top, _ := t.screen.ScrollRegion()
	cur := t.screen.Cursor()
	if cur.Row == top {
		t.screen.ScrollDown(1)
		return
	}
	t.screen.CursorUp(1)
}

func charsetFromFinal(final byte) Charset {
	switch final {
	case '0':
		return CharsetDecSpecialGraphics
	case 'A':
		return CharsetUK
	default:
		return CharsetASCII
	}
}

// --- CSI dispatch ---

func (t *Terminal) CsiDispatch(params *vtparse.Params, intermediates []byte, private byte, final byte) {
	p := func(i int, def int) int { return int(params.Param(i, uint16(def))) }

	if private == '?' {
		t.decPrivateMode(params, final)
		return
	}

	if private == '>' && final == 'c' {
		t.observer.OnWrite([]byte("\x1b[>1;0;0c"))
		return
	}

	if len(intermediates) == 1 && intermediates[0] == ' ' && final == 'q' {
		t.decscusr(p(0, 0))
		return
	}

	switch final {
	case 'A':
		t.screen.CursorUp(orOne(p(0, 0)))
	case 'B':
		t.screen.CursorDown(orOne(p(0, 0)))
	case 'C':
		t.screen.CursorForward(orOne(p(0, 0)))
	case 'D':
		t.screen.CursorBack(orOne(p(0, 0)))
	case 'E':
		t.screen.CursorNextLine(orOne(p(0, 0)))
	case 'F':
		t.screen.CursorPrevLine(orOne(p(0, 0)))
	case 'G':
		t.screen.CursorColumn(orOne(p(0, 0)) - 1)
	case 'd':
		t.screen.CursorLine(orOne(p(0, 0)) - 1)
	case 'H', 'f':
		row := orOne(p(0, 0)) - 1
		col := orOne(p(1, 0)) - 1
		t.screen.CursorTo(row, col)
	case 'J':
		t.screen.EraseInDisplay(p(0, 0))
	case 'K':
		t.screen.EraseInLine(p(0, 0))
	case 'X':
		t.screen.EraseChars(orOne(p(0, 0)))
	case '@':
		t.screen.InsertBlank(orOne(p(0, 0)))
	case 'P':
		t.screen.DeleteChars(orOne(p(0, 0)))
	case 'L':
		t.screen.InsertLines(orOne(p(0, 0)))
	case 'M':
		t.screen.DeleteLines(orOne(p(0, 0)))
	case 'S':
		t.screen.ScrollUp(orOne(p(0, 0)))
	case 'T':
		t.screen.ScrollDown(orOne(p(0, 0)))
	case 'r':
		top := orOne(p(0, 0)) - 1
		bottomDefault := t.screen.rows
		bottom := orOne(p(1, bottomDefault)) - 1
		t.screen.SetScrollRegion(top, bottom)
	case 'g':
		switch p(0, 0) {
		case 0:
			t.screen.ClearTabStop()
		case 3:
			t.screen.ClearAllTabStops()
		}
	case 'h':
		t.ansiSetMode(params, true)
	case 'l':
		t.ansiSetMode(params, false)
	case 'm':
		t.sgr(params)
	case 'n':
		t.deviceStatus(p(0, 0))
	case 'c':
		if private == 0 {
			t.observer.OnWrite([]byte("\x1b[?62;22c"))
		}
	case 's':
		t.screen.SaveCursor()
	case 'u':
		t.screen.RestoreCursor()
	case 't':
		t.windowManipulation(p(0, 0))
	}
}

// windowManipulation handles the xterm CSI Ps ; Ps ; Ps t family this
// core supports: 22 pushes the current title, 23 restores the last
// pushed one. Ps values for resizing/reporting the host window (3-11,
// 13-20) are out of scope (no GUI window exists here) and ignored.
func (t *Terminal) windowManipulation(ps int) {
	switch ps {
	case 22:
		t.screen.PushTitle()
	case 23:
		t.screen.PopTitle()
	}
}

func orOne(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}

func (t *Terminal) ansiSetMode(params *vtparse.Params, set bool) {
	for i := 0; i < params.Len(); i++ {
		switch params.Param(i, 0) {
		case 4:
			t.screen.modes.Insert = set
		case 20:
			t.screen.modes.LinefeedNewline = set
		}
	}
}

func (t *Terminal) decPrivateMode(params *vtparse.Params, final byte) {
	if final != 'h' && final != 'l' {
		return
	}
	set := final == 'h'
	for i := 0; i < params.Len(); i++ {
		switch params.Param(i, 0) {
		case 1:
			t.screen.modes.CursorKeysApp = set
		case 6:
			t.screen.modes.Origin = set
			t.screen.CursorTo(0, 0)
		case 7:
			t.screen.modes.Autowrap = set
		case 12:
			t.screen.modes.CursorBlink = set
			t.screen.cursor.Blinking = set
		case 25:
			t.screen.modes.CursorVisible = set
			t.screen.cursor.Visible = set
		case 47, 1047:
			t.setAlternate(set, false)
		case 1049:
			t.setAlternate(set, true)
		case 1048:
			if set {
				t.screen.SaveCursor()
			} else {
				t.screen.RestoreCursor()
			}
		case 1000:
			t.setMouseMode(set, MouseModeNormal)
		case 1002:
			t.setMouseMode(set, MouseModeButtonMotion)
		case 1003:
			t.setMouseMode(set, MouseModeAnyMotion)
		case 1004:
			t.screen.modes.FocusReporting = set
		case 1005:
			t.setMouseEncoding(set, MouseEncodingUTF8)
		case 1006:
			t.setMouseEncoding(set, MouseEncodingSGR)
		case 1015:
			t.setMouseEncoding(set, MouseEncodingURXVT)
		case 2004:
			t.screen.modes.BracketedPaste = set
		}
	}
}

func (t *Terminal) setMouseMode(set bool, mode MouseMode) {
	if set {
		t.screen.modes.MouseMode = mode
	} else {
		t.screen.modes.MouseMode = MouseModeNone
	}
}

func (t *Terminal) setMouseEncoding(set bool, enc MouseEncoding) {
	if set {
		t.screen.modes.MouseEncoding = enc
	} else {
		t.screen.modes.MouseEncoding = MouseEncodingX10
	}
}

func (t *Terminal) setAlternate(enter, withCursorSave bool) {
	if enter {
		t.screen.EnterAlternate(withCursorSave)
	} else {
		t.screen.ExitAlternate()
	}
}

func (t *Terminal) decscusr(style int) {
	c := t.screen.Cursor()
	switch style {
	case 0, 1:
		c.Style, c.Blinking = CursorStyleBlinkingBlock, true
	case 2:
		c.Style, c.Blinking = CursorStyleSteadyBlock, false
	case 3:
		c.Style, c.Blinking = CursorStyleBlinkingUnderline, true
	case 4:
		c.Style, c.Blinking = CursorStyleSteadyUnderline, false
	case 5:
		c.Style, c.Blinking = CursorStyleBlinkingBar, true
	case 6:
		c.Style, c.Blinking = CursorStyleSteadyBar, false
	}
}

func (t *Terminal) deviceStatus(n int) {
	switch n {
	case 5:
		t.observer.OnWrite([]byte("\x1b[0n"))
	case 6:
		c := t.screen.Cursor()
		row, col := c.Row, c.Col
		if t.screen.modes.Origin {
			top, _ := t.screen.ScrollRegion()
			row -= top
		}
		t.observer.OnWrite([]byte(fmt.Sprintf("\x1b[%d;%dR", row+1, col+1)))
	}
}

// --- SGR ---

func (t *Terminal) sgr(params *vtparse.Params) {
	groups := params.Iter()
	if len(groups) == 0 {
		t.screen.cursor.Pen = NewCellTemplate()
		return
	}
	pen := &t.screen.cursor.Pen
	for i := 0; i < len(groups); i++ {
		code := groups[i][0]
		switch {
		case code == 0:
			*pen = NewCellTemplate()
		case code == 1:
			pen.Attrs |= AttrBold
		case code == 2:
			pen.Attrs |= AttrFaint
		case code == 3:
			pen.Attrs |= AttrItalic
		case code == 4:
			pen.Attrs |= AttrUnderline
		case code == 5 || code == 6:
			pen.Attrs |= AttrBlink
		case code == 7:
			pen.Attrs |= AttrInverse
		case code == 8:
			pen.Attrs |= AttrHidden
		case code == 9:
			pen.Attrs |= AttrStrikethrough
		case code == 21:
			pen.Attrs |= AttrDoubleUnderline
			pen.Attrs &^= AttrUnderline
		case code == 22:
			pen.Attrs &^= (AttrBold | AttrFaint)
		case code == 23:
			pen.Attrs &^= AttrItalic
		case code == 24:
			pen.Attrs &^= (AttrUnderline | AttrDoubleUnderline | AttrCurlyUnderline)
		case code == 25:
			pen.Attrs &^= AttrBlink
		case code == 27:
			pen.Attrs &^= AttrInverse
		case code == 28:
			pen.Attrs &^= AttrHidden
		case code == 29:
			pen.Attrs &^= AttrStrikethrough
		case code >= 30 && code <= 37:
			pen.Fg = Indexed(uint8(code - 30))
		case code == 38:
			col, consumed := t.extendedColor(groups, i)
			pen.Fg = col
			i += consumed
		case code == 39:
			pen.Fg = DefaultColor
		case code >= 40 && code <= 47:
			pen.Bg = Indexed(uint8(code - 40))
		case code == 48:
			col, consumed := t.extendedColor(groups, i)
			pen.Bg = col
			i += consumed
		case code == 49:
			pen.Bg = DefaultColor
		case code >= 90 && code <= 97:
			pen.Fg = Indexed(uint8(code-90) + 8)
		case code >= 100 && code <= 107:
			pen.Bg = Indexed(uint8(code-100) + 8)
		}
	}
}

// extendedColor consumes either sub-parameters of groups[i] (colon
// form "38:5:n" / "38:2::r:g:b") or following primary groups
// (semicolon form "38;5;n" / "38;2;r;g;b"), returning the color and
// how many extra primary groups it consumed (0 for the colon form).
func (t *Terminal) extendedColor(groups [][]uint16, i int) (Color, int) {
	g := groups[i]
	if len(g) > 1 {
		switch g[1] {
		case 5:
			if len(g) > 2 {
				return Indexed(uint8(g[2])), 0
			}
		case 2:
			if len(g) > 4 {
				return RGB(uint8(g[len(g)-3]), uint8(g[len(g)-2]), uint8(g[len(g)-1])), 0
			}
		}
		return DefaultColor, 0
	}

	if i+1 >= len(groups) {
		return DefaultColor, 0
	}
	switch groups[i+1][0] {
	case 5:
		if i+2 < len(groups) {
			return Indexed(uint8(groups[i+2][0])), 2
		}
		return DefaultColor, 1
	case 2:
		if i+4 < len(groups) {
			return RGB(uint8(groups[i+2][0]), uint8(groups[i+3][0]), uint8(groups[i+4][0])), 4
		}
		return DefaultColor, 1
	}
	return DefaultColor, 1
}

// --- OSC dispatch ---

func (t *Terminal) OscDispatch(params [][]byte, bellTerminated bool) {
	if len(params) == 0 {
		return
	}
	code, err := strconv.Atoi(string(params[0]))
	if err != nil {
		return
	}

	switch code {
	case 0, 2:
		if len(params) > 1 {
			t.setTitle(string(params[1]))
		}
	case 1:
		// icon-name-only: no separate icon slot in this model, ignored.
	case 8:
		t.oscHyperlink(params)
	case 52:
		t.oscClipboard(params)
	case 4, 10, 11, 12, 104, 110, 111, 112:
		t.observer.OnOscQuery(code, params)
	}
}

func (t *Terminal) setTitle(title string) {
	title = sanitizeTitle(title)
	t.screen.SetTitle(title)
	now := time.Now()
	if now.Sub(t.lastTitleAt) < titleRateLimit {
		t.pendingTitle = title
		t.haveTitlePending = true
		return
	}
	t.lastTitleAt = now
	t.haveTitlePending = false
	t.observer.OnTitle(title)
}

func sanitizeTitle(s string) string {
	const maxLen = 1024
	var b strings.Builder
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			continue
		}
		b.WriteRune(r)
		if b.Len() >= maxLen {
			break
		}
	}
	return b.String()
}

func (t *Terminal) oscHyperlink(params [][]byte) {
	uri := ""
	if len(params) > 2 {
		uri = string(params[2])
	}
	if uri == "" {
		t.screen.SetHyperlink("")
		return
	}
	scheme := uri
	if idx := strings.Index(uri, ":"); idx >= 0 {
		scheme = uri[:idx]
	}
	allowed := hyperlinkSchemeAllowlist[scheme] || (t.allowFileHyperlink && scheme == "file")
	if !allowed {
		return
	}
	id := t.screen.SetHyperlink(uri)
	t.observer.OnHyperlinkRegistered(id, uri)
}

func (t *Terminal) oscClipboard(params [][]byte) {
	if !t.clipboardEnabled || len(params) < 3 {
		return
	}
	selectors := string(params[1])
	sel := byte('c')
	if len(selectors) > 0 {
		sel = selectors[0]
	}
	payload := string(params[2])
	if payload == "?" {
		t.observer.OnClipboardReadRequest(sel)
		return
	}
	if len(payload) > t.clipboardMaxBytes {
		return
	}
	t.observer.OnClipboardWrite(sel, []byte(payload))
}
