package vtparse

// feedUTF8 implements a deterministic, chunk-safe byte-at-a-time UTF-8
// decoder for Ground-state input bytes >= 0x80 (ASCII and C0 controls
// never enter this path). On any malformed sequence — invalid lead,
// unexpected continuation, overlong encoding, surrogate code point, or
// a sequence truncated by a non-continuation byte — it emits exactly
// one Print(U+FFFD) and resynchronizes at the offending byte: the byte
// that broke the sequence is reprocessed as if freshly received,
// rather than being swallowed as part of the failed scalar.
func (p *Parser) feedUTF8(b byte, perform Performer) {
	if p.u8Need == 0 {
		p.startUTF8(b, perform)
		return
	}

	if b < 0x80 || b > 0xBF {
		// Truncated sequence: the pending scalar never completed.
		p.u8Need = 0
		perform.Print('�')
		// Reprocess b as a fresh byte — it was not consumed by the
		// failed sequence.
		p.feedByte(b, perform)
		return
	}

	p.u8Cp = (p.u8Cp << 6) | rune(b&0x3F)
	p.u8Seen++
	if p.u8Seen < p.u8Need {
		return
	}

	p.u8Need = 0
	if p.u8Doomed {
		// 0xC0/0xC1: the continuation byte belongs to this failed
		// unit, not a fresh one — one U+FFFD covers both bytes.
		perform.Print('�')
		return
	}
	cp := p.u8Cp
	if cp < p.u8Lo || cp > 0x10FFFF || (cp >= 0xD800 && cp <= 0xDFFF) {
		perform.Print('�')
		return
	}
	perform.Print(cp)
}

// startUTF8 classifies a lead byte: begins a multi-byte sequence with
// the minimum acceptable scalar value recorded for the overlong check
// performed once the sequence completes, or emits U+FFFD immediately
// for a lead byte that can never start a valid sequence.
func (p *Parser) startUTF8(b byte, perform Performer) {
	p.u8Doomed = false
	switch {
	case b == 0xC0 || b == 0xC1:
		// Structurally a 2-byte lead but always overlong: consume the
		// one continuation byte the shape promises as part of this
		// same failed unit, rather than rejecting b in isolation and
		// letting the continuation byte re-enter as its own invalid
		// lead (which would emit two U+FFFDs for one malformed pair).
		p.u8Need, p.u8Seen, p.u8Doomed = 1, 0, true
	case b >= 0xC2 && b <= 0xDF:
		p.u8Need, p.u8Seen, p.u8Cp, p.u8Lo = 1, 0, rune(b&0x1F), 0x80
	case b >= 0xE0 && b <= 0xEF:
		p.u8Need, p.u8Seen, p.u8Cp, p.u8Lo = 2, 0, rune(b&0x0F), 0x800
	case b >= 0xF0 && b <= 0xF4:
		p.u8Need, p.u8Seen, p.u8Cp, p.u8Lo = 3, 0, rune(b&0x07), 0x10000
	default:
		// 0x80-0xBF (stray continuation), 0xF5-0xFF (beyond Unicode's
		// 0x10FFFF ceiling): no structural multi-byte shape, rejected
		// immediately without consuming anything further.
		perform.Print('�')
	}
}
