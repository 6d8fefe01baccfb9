package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, 'X', ColorRed)
	if c := s.GetCell(5, 5); c.Rune != 'X' || c.Color != ColorRed {
		t.Errorf("GetCell(5, 5) = %+v, expected red X", c)
	}

	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
	if s.GetCell(100, 0).Color != ColorDefault {
		t.Error("Out of bounds GetCell should return default color")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(5, 5)
	s.SetColored(2, 2, '#', ColorBrown)
	s.Clear()

	if c := s.GetCell(2, 2); c.Rune != ' ' || c.Color != ColorDefault {
		t.Errorf("after Clear() cell = %+v, expected blank", c)
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(10, 3)
	s.DrawText(2, 1, "héllo", ColorCyan)

	if got := line(s, 1); got != "  héllo   " {
		t.Errorf("row 1 = %q, expected %q", got, "  héllo   ")
	}
	if s.GetCell(3, 1).Color != ColorCyan {
		t.Error("DrawText should color every rune")
	}

	s.DrawText(8, 0, "clip", ColorDefault)
	if got := line(s, 0); got != "        cl" {
		t.Errorf("row 0 = %q, expected clipped text", got)
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.Set(0, 0, 'a')
	s.Set(2, 1, 'b')

	if got := s.String(); got != "a  \n  b" {
		t.Errorf("String() = %q, expected %q", got, "a  \n  b")
	}
	if strings.Count(s.String(), "\n") != 1 {
		t.Error("String() should join rows with newlines")
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(4, 4)
	s.SetColored(1, 1, 'X', ColorGreen)
	s.SetColored(3, 3, 'Y', ColorGreen)

	s.Resize(2, 2)
	if s.Width() != 2 || s.Height() != 2 {
		t.Fatalf("size after Resize = %dx%d, expected 2x2", s.Width(), s.Height())
	}
	if c := s.GetCell(1, 1); c.Rune != 'X' || c.Color != ColorGreen {
		t.Errorf("content not preserved: %+v", c)
	}

	s.Resize(3, 3)
	if s.Get(2, 2) != ' ' {
		t.Error("newly exposed cells should be blank")
	}
}

func TestScreenOutOfRange(t *testing.T) {
	s := NewScreen(4, 1)
	s.SetColored(5, 0, 'X', ColorRed)
	s.Set(0, -1, 'X')

	if got := s.String(); got != "    " {
		t.Errorf("String() = %q, expected spaces", got)
	}
	if c := s.GetCell(5, 5); c != blank {
		t.Errorf("GetCell(5, 5) = %+v, expected blank", c)
	}
}

func line(s *Screen, y int) string {
	return strings.Split(s.String(), "\n")[y]
}
