package vtcore

import "testing"

func TestSnapshotBlankCellOmitsFields(t *testing.T) {
	c := NewCell()
	sc := snapshotCell(c)
	if sc.Text != "" || sc.Fg != nil || sc.Bg != nil || sc.Attrs != nil || sc.Width != nil || sc.HyperlinkID != nil {
		t.Errorf("blank cell should serialize with every field omitted, got %+v", sc)
	}
}

func TestSnapshotWideCellWidthIsExplicit(t *testing.T) {
	term := New()
	term.Feed([]byte("中"))
	snap := term.Snapshot()
	wide := snap.Lines[0].Cells[0]
	if wide.Width == nil || *wide.Width != 2 {
		t.Errorf("wide cell width = %v, want explicit 2", wide.Width)
	}
	spacer := snap.Lines[0].Cells[1]
	if spacer.Width == nil || *spacer.Width != 0 {
		t.Errorf("spacer cell width = %v, want explicit 0 (must not be confused with a normal cell)", spacer.Width)
	}
	normal := snap.Lines[0].Cells[2]
	if normal.Width != nil {
		t.Errorf("a normal width-1 cell should omit the width key, got %v", normal.Width)
	}
}

func TestSnapshotColorKindTagging(t *testing.T) {
	if got := snapshotColor(DefaultColor); got != nil {
		t.Errorf("default color should omit the fg/bg key entirely, got %+v", got)
	}
	if got := snapshotColor(Indexed(3)); got == nil || got.Kind != "indexed" || got.Idx != 3 {
		t.Errorf("indexed color snapshot = %+v, want {kind:indexed idx:3}", got)
	}
	if got := snapshotColor(RGB(1, 2, 3)); got == nil || got.Kind != "rgb" || got.R != 1 || got.G != 2 || got.B != 3 {
		t.Errorf("rgb color snapshot = %+v, want {kind:rgb r:1 g:2 b:3}", got)
	}
}

func TestSnapshotCursorPendingWrap(t *testing.T) {
	term := New(WithSize(1, 3))
	term.Feed([]byte("abc"))
	snap := term.Snapshot()
	if !snap.Cursor.PendingWrap {
		t.Errorf("cursor.pending_wrap should be true after filling the last column")
	}
}

func TestSnapshotIsAValueCopy(t *testing.T) {
	term := New()
	term.Feed([]byte("A"))
	snap := term.Snapshot()
	term.Feed([]byte("B"))
	if snap.Lines[0].Cells[0].Text != "A" {
		t.Errorf("a previously taken snapshot must not see later mutations")
	}
}

func TestScrollbackViewReadsEvictedLines(t *testing.T) {
	term := New(WithSize(2, 10))
	term.Feed([]byte("line1\r\nline2\r\nline3\r\n"))
	view := term.ScrollbackView(0, 10)
	if len(view) == 0 {
		t.Fatalf("expected at least one scrolled-back line")
	}
}
