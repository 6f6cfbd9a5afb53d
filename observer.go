package vtcore

// Observer is the single capability interface through which the
// Terminal surfaces side effects to external collaborators (title
// bar, PTY reply channel, clipboard, hyperlink registry). It replaces
// the teacher's dozen narrow *Provider interfaces plus its Middleware
// struct with the one capability object spec §4.3/§9 calls for
// ("Observer vs. in-core effects"). No method may re-enter the
// Terminal synchronously.
type Observer interface {
	// OnTitle is called after OSC 0/2, rate-limited by the Terminal
	// to at most once per ~100ms per title source.
	OnTitle(title string)
	// OnBell is called after BEL.
	OnBell()
	// OnWrite delivers a reply the child process should receive
	// (device attribute/status reports).
	OnWrite(data []byte)
	// OnClipboardWrite is called for OSC 52 writes when the clipboard
	// policy is enabled; data is the raw base64 payload, not decoded
	// (payloads over the size cap are dropped before this call).
	OnClipboardWrite(selection byte, data []byte)
	// OnClipboardReadRequest is called for OSC 52 reads when enabled.
	OnClipboardReadRequest(selection byte)
	// OnHyperlinkRegistered is called after OSC 8 introduces a new id
	// whose URI passed the scheme allow-list.
	OnHyperlinkRegistered(id uint32, uri string)
	// OnOscQuery is called for the dynamic-color OSC codes (4, 10, 11,
	// 12, 104, 110, 111, 112: palette/foreground/background/cursor
	// color get-or-set). code is the OSC numeric code, params is the
	// full ';'-split payload including the code itself at params[0].
	// Whether a query reply is written back via OnWrite, and whether a
	// set request mutates any color table, is entirely the Observer's
	// policy (spec's open question on Observer vs. in-core effects).
	OnOscQuery(code int, params [][]byte)
}

// NoopObserver discards every callback; the Terminal's zero-value default.
type NoopObserver struct{}

func (NoopObserver) OnTitle(string)                       {}
func (NoopObserver) OnBell()                              {}
func (NoopObserver) OnWrite([]byte)                       {}
func (NoopObserver) OnClipboardWrite(byte, []byte)        {}
func (NoopObserver) OnClipboardReadRequest(byte)          {}
func (NoopObserver) OnHyperlinkRegistered(uint32, string) {}
func (NoopObserver) OnOscQuery(int, [][]byte)             {}

var _ Observer = NoopObserver{}
