package vtparse

const maxOscBytes = 65536

// Parser is a streaming, chunk-safe VT500-series escape sequence state
// machine. All state needed to resume across Feed calls — including a
// partially decoded UTF-8 scalar or a CSI sequence split across two
// network reads — lives on the Parser value, so splitting one byte
// stream into arbitrarily many Feed calls is invisible to the Performer.
//
// A Parser is not safe for concurrent use; callers own it exclusively
// for the duration of each Feed call (see spec's single-threaded
// cooperative scheduling model).
type Parser struct {
	state state

	params        Params
	intermediates []byte
	private       byte
	ignoreExtra   bool // true once intermediates overflow past 2 bytes

	oscBuf []byte

	// termKind records which string we are trying to close with ST
	// (ESC \) while sitting in the Escape state having just consumed
	// the ESC byte that may or may not turn out to be a terminator.
	termKind byte // 0 none, 'o' osc, 'd' dcs, 's' sos/pm/apc

	// UTF-8 decode state, persisted across Feed calls.
	u8Need   int  // continuation bytes still required
	u8Seen   int  // continuation bytes consumed so far
	u8Cp     rune // scalar value accumulated so far
	u8Lo     rune // minimum acceptable value (overlong check)
	u8Doomed bool // lead byte was structurally shaped but unconditionally invalid (0xC0/0xC1)
}

// NewParser returns a Parser positioned at Ground.
func NewParser() *Parser {
	return &Parser{}
}

// Feed consumes data, invoking perform's methods for every action the
// bytes produce. Malformed input is recovered silently per spec — Feed
// never returns an error and never panics.
func (p *Parser) Feed(data []byte, perform Performer) {
	for _, b := range data {
		p.feedByte(b, perform)
	}
}

func (p *Parser) feedByte(b byte, perform Performer) {
	// UTF-8 continuation/lead bytes are only decoded in Ground;
	// everywhere else raw bytes >=0x80 go to the current state's
	// handler undecoded: OSC and DCS passthrough keep them as payload
	// bytes, the other states drop or ignore them.
	if p.state == stateGround && (b >= 0x80 || p.u8Need > 0) {
		p.feedUTF8(b, perform)
		return
	}

	// CAN/SUB abort any in-progress sequence. In Ground there is
	// nothing to abort, so they fall through to ordinary C0 handling.
	if (b == cCAN || b == cSUB) && p.state != stateGround {
		p.abortToGround()
		if b == cSUB {
			perform.Print('�')
		}
		return
	}

	switch p.state {
	case stateGround:
		p.feedGround(b, perform)
	case stateEscape:
		p.feedEscape(b, perform)
	case stateEscapeIntermediate:
		p.feedEscapeIntermediate(b, perform)
	case stateCsiEntry:
		p.feedCsiEntry(b, perform)
	case stateCsiParam:
		p.feedCsiParam(b, perform)
	case stateCsiIntermediate:
		p.feedCsiIntermediate(b, perform)
	case stateCsiIgnore:
		p.feedCsiIgnore(b, perform)
	case stateDcsEntry:
		p.feedDcsEntry(b, perform)
	case stateDcsParam:
		p.feedDcsParam(b, perform)
	case stateDcsIntermediate:
		p.feedDcsIntermediate(b, perform)
	case stateDcsPassthrough:
		p.feedDcsPassthrough(b, perform)
	case stateDcsIgnore:
		p.feedDcsIgnore(b, perform)
	case stateOscString:
		p.feedOscString(b, perform)
	case stateSosPmApcString:
		p.feedSosPmApcString(b, perform)
	}
}

func (p *Parser) abortToGround() {
	p.state = stateGround
	p.termKind = 0
	p.u8Need = 0
}

// clearCsiScratch implements the "clear" entry action shared by
// CsiEntry, DcsEntry, and Escape.
func (p *Parser) clearCsiScratch() {
	p.params.reset()
	p.intermediates = p.intermediates[:0]
	p.private = 0
	p.ignoreExtra = false
}

func (p *Parser) collectIntermediate(b byte) {
	if len(p.intermediates) >= 2 {
		p.ignoreExtra = true
		return
	}
	p.intermediates = append(p.intermediates, b)
}

// --- Ground ---

func (p *Parser) feedGround(b byte, perform Performer) {
	switch {
	case b == cESC:
		p.clearCsiScratch()
		p.state = stateEscape
	case isExecutable(b):
		perform.Execute(b)
	case b == 0x7F:
		// DEL: ignored.
	default:
		perform.Print(rune(b))
	}
}

// --- Escape / EscapeIntermediate ---

func (p *Parser) feedEscape(b byte, perform Performer) {
	if p.termKind != 0 {
		if b == cBackslash {
			p.finishStringTerminator(perform)
			return
		}
		// Not ST: string is abandoned; reprocess this byte as a
		// fresh escape-state byte below.
		p.termKind = 0
	}

	switch {
	case isExecutable(b):
		perform.Execute(b)
	case b == 0x7F:
	case isIntermediate(b):
		p.collectIntermediate(b)
		p.state = stateEscapeIntermediate
	case b == '[':
		p.clearCsiScratch()
		p.state = stateCsiEntry
	case b == 'P':
		p.clearCsiScratch()
		p.state = stateDcsEntry
	case b == ']':
		p.oscBuf = p.oscBuf[:0]
		p.state = stateOscString
	case b == 'X' || b == '^' || b == '_':
		p.state = stateSosPmApcString
	case isCsiFinal(b):
		perform.EscDispatch(p.intermediates, b)
		p.state = stateGround
	default:
		// Unclassified byte following ESC: drop the sequence.
		p.state = stateGround
	}
}

func (p *Parser) feedEscapeIntermediate(b byte, perform Performer) {
	switch {
	case isExecutable(b):
		perform.Execute(b)
	case b == 0x7F:
	case isIntermediate(b):
		p.collectIntermediate(b)
	case isCsiFinal(b):
		perform.EscDispatch(p.intermediates, b)
		p.state = stateGround
	default:
		p.state = stateGround
	}
}

// finishStringTerminator is called when ESC \ (ST) closes an
// OSC/DCS/SOS-PM-APC string.
func (p *Parser) finishStringTerminator(perform Performer) {
	switch p.termKind {
	case 'o':
		perform.OscDispatch(splitOsc(p.oscBuf), false)
	case 'd':
		perform.Unhook()
	// 's' (SOS/PM/APC) and 'i' (abandoned DCS-ignore run) dispatch nothing.
	}
	p.termKind = 0
	p.state = stateGround
}

// --- CSI ---

func (p *Parser) feedCsiEntry(b byte, perform Performer) {
	switch {
	case isExecutable(b):
		perform.Execute(b)
	case b == 0x7F:
	case isDigit(b):
		p.params.digit(b)
		p.state = stateCsiParam
	case b == ';':
		p.params.semicolon()
		p.state = stateCsiParam
	case isPrivateMarker(b):
		p.private = b
		p.state = stateCsiParam
	case isIntermediate(b):
		p.collectIntermediate(b)
		p.state = stateCsiIntermediate
	case isCsiFinal(b):
		p.params.finish()
		perform.CsiDispatch(&p.params, p.intermediates, p.private, b)
		p.state = stateGround
	default:
		p.state = stateCsiIgnore
	}
}

func (p *Parser) feedCsiParam(b byte, perform Performer) {
	switch {
	case isExecutable(b):
		perform.Execute(b)
	case b == 0x7F:
	case isDigit(b):
		p.params.digit(b)
	case b == ';':
		p.params.semicolon()
	case b == ':':
		p.params.colon()
	case isPrivateMarker(b):
		p.state = stateCsiIgnore
	case isIntermediate(b):
		p.collectIntermediate(b)
		p.state = stateCsiIntermediate
	case isCsiFinal(b):
		p.params.finish()
		perform.CsiDispatch(&p.params, p.intermediates, p.private, b)
		p.state = stateGround
	default:
		p.state = stateCsiIgnore
	}
}

func (p *Parser) feedCsiIntermediate(b byte, perform Performer) {
	switch {
	case isExecutable(b):
		perform.Execute(b)
	case b == 0x7F:
	case isIntermediate(b):
		p.collectIntermediate(b)
	case isCsiFinal(b):
		p.params.finish()
		perform.CsiDispatch(&p.params, p.intermediates, p.private, b)
		p.state = stateGround
	default:
		p.state = stateCsiIgnore
	}
}

func (p *Parser) feedCsiIgnore(b byte, perform Performer) {
	switch {
	case isExecutable(b):
		perform.Execute(b)
	case isCsiFinal(b):
		p.state = stateGround
	default:
		// 0x20-0x3F and 0x7F: keep consuming.
	}
}

// --- DCS ---

func (p *Parser) feedDcsEntry(b byte, perform Performer) {
	switch {
	case b <= 0x17 || b == 0x19 || (b >= 0x1C && b <= 0x1F) || b == 0x7F:
		// C0/DEL ignored inside a DCS header.
	case isDigit(b):
		p.params.digit(b)
		p.state = stateDcsParam
	case b == ';':
		p.params.semicolon()
		p.state = stateDcsParam
	case isPrivateMarker(b):
		p.private = b
		p.state = stateDcsParam
	case isIntermediate(b):
		p.collectIntermediate(b)
		p.state = stateDcsIntermediate
	case isCsiFinal(b):
		p.params.finish()
		perform.Hook(&p.params, p.intermediates, p.private, b)
		p.state = stateDcsPassthrough
	default:
		p.state = stateDcsIgnore
	}
}

func (p *Parser) feedDcsParam(b byte, perform Performer) {
	switch {
	case b <= 0x17 || b == 0x19 || (b >= 0x1C && b <= 0x1F) || b == 0x7F:
	case isDigit(b):
		p.params.digit(b)
	case b == ';':
		p.params.semicolon()
	case b == ':':
		p.params.colon()
	case isPrivateMarker(b):
		p.state = stateDcsIgnore
	case isIntermediate(b):
		p.collectIntermediate(b)
		p.state = stateDcsIntermediate
	case isCsiFinal(b):
		p.params.finish()
		perform.Hook(&p.params, p.intermediates, p.private, b)
		p.state = stateDcsPassthrough
	default:
		p.state = stateDcsIgnore
	}
}

func (p *Parser) feedDcsIntermediate(b byte, perform Performer) {
	switch {
	case b <= 0x17 || b == 0x19 || (b >= 0x1C && b <= 0x1F) || b == 0x7F:
	case isIntermediate(b):
		p.collectIntermediate(b)
	case isCsiFinal(b):
		p.params.finish()
		perform.Hook(&p.params, p.intermediates, p.private, b)
		p.state = stateDcsPassthrough
	default:
		p.state = stateDcsIgnore
	}
}

func (p *Parser) feedDcsPassthrough(b byte, perform Performer) {
	if b == cESC {
		p.termKind = 'd'
		p.state = stateEscape
		return
	}
	if b == 0x7F {
		return
	}
	perform.Put(b)
}

func (p *Parser) feedDcsIgnore(b byte, perform Performer) {
	if b == cESC {
		p.termKind = 'i' // swallow silently on ST; never hooked, nothing to unhook
		p.state = stateEscape
	}
}

// --- OSC ---

func (p *Parser) feedOscString(b byte, perform Performer) {
	switch {
	case b == cBEL:
		perform.OscDispatch(splitOsc(p.oscBuf), true)
		p.state = stateGround
	case b == cESC:
		p.termKind = 'o'
		p.state = stateEscape
	case b < 0x20:
		// other C0 controls inside OSC are ignored.
	default:
		if len(p.oscBuf) >= maxOscBytes {
			return
		}
		p.oscBuf = append(p.oscBuf, b)
	}
}

// splitOsc divides a raw OSC payload into ';'-separated parameter
// byte-slices, matching the shape spec.md §4.1 Actions describe.
func splitOsc(buf []byte) [][]byte {
	if len(buf) == 0 {
		return [][]byte{{}}
	}
	var out [][]byte
	start := 0
	for i := 0; i <= len(buf); i++ {
		if i == len(buf) || buf[i] == ';' {
			out = append(out, buf[start:i])
			start = i + 1
		}
	}
	return out
}

// --- SOS/PM/APC ---

func (p *Parser) feedSosPmApcString(b byte, perform Performer) {
	switch {
	case b == cBEL:
		p.state = stateGround
	case b == cESC:
		p.termKind = 's'
		p.state = stateEscape
	default:
		// payload discarded: spec.md's Action set has no dispatch
		// for SOS/PM/APC strings, only that they are consumed
		// without corrupting surrounding parsing.
	}
}
