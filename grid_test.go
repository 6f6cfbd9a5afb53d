package vtcore

import "testing"

func TestGridScrollUpEvictsToScrollbackWhenTopIsZero(t *testing.T) {
	sb := NewScrollback(10)
	g := NewGridWithScrollback(3, 5, sb)
	g.Cell(0, 0).Content = "A"
	g.ScrollUp(0, 3, 1)
	if sb.Len() != 1 {
		t.Fatalf("scrollback len = %d, want 1", sb.Len())
	}
	line, ok := sb.Line(0)
	if !ok || line.Cells[0].Content != "A" {
		t.Errorf("evicted line content = %q, want A", line.Cells[0].Content)
	}
}

func TestGridScrollUpWithinRegionDoesNotEvict(t *testing.T) {
	sb := NewScrollback(10)
	g := NewGridWithScrollback(5, 5, sb)
	g.ScrollUp(2, 5, 1)
	if sb.Len() != 0 {
		t.Errorf("scrolling a sub-region should not touch scrollback, len = %d", sb.Len())
	}
}

func TestGridInsertAndDeleteLines(t *testing.T) {
	g := NewGrid(3, 5)
	g.Cell(0, 0).Content = "A"
	g.Cell(1, 0).Content = "B"
	g.InsertLines(0, 1, 3)
	if g.Cell(1, 0).Content != "A" {
		t.Errorf("row 1 = %q after insert, want A shifted down", g.Cell(1, 0).Content)
	}
	if g.Cell(0, 0).Content != " " {
		t.Errorf("row 0 should be blank after insert, got %q", g.Cell(0, 0).Content)
	}

	g.DeleteLines(0, 1, 3)
	if g.Cell(0, 0).Content != "A" {
		t.Errorf("row 0 = %q after delete, want A shifted back up", g.Cell(0, 0).Content)
	}
}

func TestGridInsertBlanksShiftsRight(t *testing.T) {
	g := NewGrid(1, 5)
	for i, ch := range []string{"a", "b", "c", "d", "e"} {
		g.Cell(0, i).Content = ch
	}
	g.InsertBlanks(0, 1, 2)
	if g.Cell(0, 1).Content != " " || g.Cell(0, 2).Content != " " {
		t.Errorf("cols 1-2 should be blank after insert")
	}
	if g.Cell(0, 3).Content != "b" || g.Cell(0, 4).Content != "c" {
		t.Errorf("cols 3-4 = %q,%q, want b,c shifted right", g.Cell(0, 3).Content, g.Cell(0, 4).Content)
	}
}

func TestGridDeleteCharsShiftsLeft(t *testing.T) {
	g := NewGrid(1, 5)
	for i, ch := range []string{"a", "b", "c", "d", "e"} {
		g.Cell(0, i).Content = ch
	}
	g.DeleteChars(0, 1, 2)
	if g.Cell(0, 1).Content != "d" || g.Cell(0, 2).Content != "e" {
		t.Errorf("cols 1-2 = %q,%q, want d,e shifted left", g.Cell(0, 1).Content, g.Cell(0, 2).Content)
	}
	if g.Cell(0, 3).Content != "" || g.Cell(0, 4).Content != "" {
		t.Errorf("vacated tail should be blank")
	}
}

func TestGridResizeGrowAndShrink(t *testing.T) {
	g := NewGrid(3, 3)
	g.Cell(0, 0).Content = "X"
	g.Resize(5, 5)
	if g.Rows() != 5 || g.Cols() != 5 {
		t.Errorf("dims = (%d,%d), want (5,5)", g.Rows(), g.Cols())
	}
	if g.Cell(0, 0).Content != "X" {
		t.Errorf("content should survive growth")
	}

	g.Resize(2, 2)
	if g.Rows() != 2 || g.Cols() != 2 {
		t.Errorf("dims = (%d,%d), want (2,2)", g.Rows(), g.Cols())
	}
	if g.Cell(0, 0).Content != "X" {
		t.Errorf("content should survive shrink when within new bounds")
	}
}

func TestGridTabStops(t *testing.T) {
	g := NewGrid(1, 40)
	if got := g.NextTabStop(0); got != 8 {
		t.Errorf("NextTabStop(0) = %d, want 8", got)
	}
	g.ClearTabStop(8)
	if got := g.NextTabStop(0); got != 16 {
		t.Errorf("NextTabStop(0) after clearing stop 8 = %d, want 16", got)
	}
	g.SetTabStop(3)
	if got := g.NextTabStop(0); got != 3 {
		t.Errorf("NextTabStop(0) after setting stop 3 = %d, want 3", got)
	}
}

func TestGridFillWithE(t *testing.T) {
	g := NewGrid(2, 2)
	g.FillWithE()
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			if g.Cell(r, c).Content != "E" {
				t.Errorf("cell(%d,%d) = %q, want E", r, c, g.Cell(r, c).Content)
			}
		}
	}
}
