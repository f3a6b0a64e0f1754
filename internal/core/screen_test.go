package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 || s.Height() != 24 {
		t.Fatalf("size = %dx%d, expected 80x24", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c != blankCell {
				t.Fatalf("new screen should be blank, got %+v at (%d, %d)", c, x, y)
			}
		}
	}
}

func TestScreenSetGetCell(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, 'X', ColorRed)
	if got := s.GetCell(5, 5); got != (Cell{Rune: 'X', Color: ColorRed}) {
		t.Errorf("GetCell(5, 5) = %+v, expected red X", got)
	}
	s.Set(5, 5, 'Y')
	if got := s.GetCell(5, 5); got.Rune != 'Y' || got.Color != ColorDefault {
		t.Errorf("Set should reset the color, got %+v", got)
	}

	// Out of bounds is silent
	s.SetColored(-1, 0, 'A', ColorRed)
	s.SetColored(100, 0, 'A', ColorRed)
	s.SetColored(0, -1, 'A', ColorRed)
	s.SetColored(0, 100, 'A', ColorRed)

	if s.Get(-1, 0) != ' ' || s.GetCell(100, 0) != blankCell {
		t.Error("out of bounds reads should return a blank cell")
	}
}

func TestScreenFillAndClear(t *testing.T) {
	s := NewScreen(5, 5)
	s.Fill('█', ColorBlack)

	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if c := s.GetCell(x, y); c.Rune != '█' || c.Color != ColorBlack {
				t.Fatalf("after Fill, got %+v at (%d, %d)", c, x, y)
			}
		}
	}

	s.Clear()
	if s.String() != strings.TrimSuffix(strings.Repeat("     \n", 5), "\n") {
		t.Errorf("after Clear, screen = %q", s.String())
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawText(2, 1, "Hello", ColorYellow)

	for i, ch := range "Hello" {
		if c := s.GetCell(2+i, 1); c.Rune != ch || c.Color != ColorYellow {
			t.Errorf("DrawText: expected yellow %q at (%d, 1), got %+v", ch, 2+i, c)
		}
	}

	// Clipped at the right edge
	s.DrawText(18, 0, "Hello", ColorDefault)
	if s.Get(18, 0) != 'H' || s.Get(19, 0) != 'e' {
		t.Error("text should be clipped at right boundary")
	}
}

func TestScreenDrawTextCenteredCountsRunes(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextCentered(2, "★★", ColorYellow)

	x := (20 - 2) / 2
	if s.Get(x, 2) != '★' || s.Get(x+1, 2) != '★' {
		t.Errorf("DrawTextCentered misplaced multibyte text: row = %q", s.Row(2))
	}
}

func TestScreenDrawRect(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawRect(Rect{X: 2, Y: 2, W: 3, H: 3}, '#', ColorGreen)

	for y := 2; y < 5; y++ {
		for x := 2; x < 5; x++ {
			if c := s.GetCell(x, y); c.Rune != '#' || c.Color != ColorGreen {
				t.Errorf("DrawRect: expected green '#' at (%d, %d), got %+v", x, y, c)
			}
		}
	}
	if s.Get(1, 1) != ' ' || s.Get(5, 5) != ' ' {
		t.Error("DrawRect should not affect outside area")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawBox(Rect{X: 1, Y: 1, W: 5, H: 4}, ColorWhite)

	corners := map[[2]int]rune{
		{1, 1}: '┌',
		{5, 1}: '┐',
		{1, 4}: '└',
		{5, 4}: '┘',
	}
	for pos, want := range corners {
		if got := s.Get(pos[0], pos[1]); got != want {
			t.Errorf("corner at %v = %q, expected %q", pos, got, want)
		}
	}
	for x := 2; x < 5; x++ {
		if s.Get(x, 1) != '─' || s.Get(x, 4) != '─' {
			t.Errorf("horizontal edge missing at x=%d", x)
		}
	}
	for y := 2; y < 4; y++ {
		if s.Get(1, y) != '│' || s.Get(5, y) != '│' {
			t.Errorf("vertical edge missing at y=%d", y)
		}
	}
}

func TestScreenDrawBoxDegenerate(t *testing.T) {
	s := NewScreen(5, 5)
	s.DrawBox(Rect{X: 2, Y: 2, W: 1, H: 2}, ColorBrown)

	if s.Get(2, 2) != '█' || s.Get(2, 3) != '█' {
		t.Errorf("a box too small for borders should be filled, got %q", s.String())
	}
}

func TestScreenResizeClears(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawText(0, 0, "Hello", ColorDefault)

	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Fatalf("after resize, dimensions should be 8x4, got %dx%d", s.Width(), s.Height())
	}
	if s.Row(0) != "        " {
		t.Errorf("resize should leave a blank buffer, row 0 = %q", s.Row(0))
	}

	s.Resize(-3, 2)
	if s.Width() != 0 || s.String() != "\n" {
		t.Errorf("negative width should clamp to 0, got %q", s.String())
	}
}

func TestScreenRow(t *testing.T) {
	s := NewScreen(10, 5)
	s.DrawText(0, 2, "Test", ColorDefault)

	if row := s.Row(2); row != "Test      " {
		t.Errorf("Row(2) = %q", row)
	}
	if row := s.Row(-1); row != "          " {
		t.Errorf("out of bounds row should be spaces, got %q", row)
	}
}
