package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(6, 3)
	if s.Width() != 6 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, expected 6x3", s.Width(), s.Height())
	}
	if got := s.String(); got != "      \n      \n      " {
		t.Errorf("String() = %q, expected three blank rows", got)
	}
}

func TestScreenSetClipsOffscreen(t *testing.T) {
	s := NewScreen(4, 4)
	s.Set(2, 1, 'X')

	tests := []struct {
		x, y     int
		expected rune
	}{
		{2, 1, 'X'},
		{0, 0, ' '},
		{-1, 0, ' '},
		{4, 0, ' '},
		{0, 4, ' '},
	}
	for _, tt := range tests {
		if got := s.Get(tt.x, tt.y); got != tt.expected {
			t.Errorf("Get(%d, %d) = %q, expected %q", tt.x, tt.y, got, tt.expected)
		}
	}

	// must not panic or wrap onto the next row
	s.Set(4, 0, 'Y')
	s.Set(-1, 1, 'Y')
	if strings.ContainsRune(s.String(), 'Y') {
		t.Errorf("off-screen write leaked: %q", s.String())
	}
}

func TestScreenColoredCells(t *testing.T) {
	s := NewScreen(10, 3)
	s.SetColored(1, 1, '●', ColorRed)

	if got := s.GetCell(1, 1); got != (Cell{Rune: '●', Color: ColorRed}) {
		t.Errorf("GetCell(1, 1) = %+v, expected red ●", got)
	}

	s.DrawTextColored(0, 0, "ab", ColorYellow)
	if s.GetCell(1, 0).Color != ColorYellow {
		t.Error("DrawTextColored should color every rune")
	}

	s.Clear()
	if s.GetCell(1, 1) != blank {
		t.Errorf("Clear left %+v", s.GetCell(1, 1))
	}
	if s.GetCell(-1, 0) != blank {
		t.Error("off-screen GetCell should be blank")
	}
}

func TestScreenDrawText(t *testing.T) {
	tests := []struct {
		name     string
		draw     func(s *Screen)
		expected string
	}{
		{"at", func(s *Screen) { s.DrawText(1, 0, "ab") }, " ab    "},
		{"clipped right", func(s *Screen) { s.DrawText(5, 0, "abc") }, "     ab"},
		{"clipped left", func(s *Screen) { s.DrawText(-1, 0, "abc") }, "bc     "},
		{"centered", func(s *Screen) { s.DrawTextCentered(0, "abc") }, "  abc  "},
		{"centered runes", func(s *Screen) { s.DrawTextCentered(0, "●○●") }, "  ●○●  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScreen(7, 1)
			tt.draw(s)
			if got := s.Row(0); got != tt.expected {
				t.Errorf("Row(0) = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawBoxColored(NewRect(0, 0, 5, 4), ColorBlue)

	expected := "┌───┐ \n│   │ \n│   │ \n└───┘ "
	if got := s.String(); got != expected {
		t.Errorf("String() =\n%s\nexpected\n%s", got, expected)
	}
	if s.GetCell(4, 3).Color != ColorBlue {
		t.Error("box corners should carry the box color")
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(6, 3)
	s.DrawText(0, 0, "Hello")
	s.DrawText(0, 2, "World")

	s.Resize(4, 2)
	if got := s.String(); got != "Hell\n    " {
		t.Errorf("after shrink String() = %q", got)
	}

	s.Resize(7, 3)
	if s.Width() != 7 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, expected 7x3", s.Width(), s.Height())
	}
	if got := s.Row(0); got != "Hell   " {
		t.Errorf("after grow Row(0) = %q", got)
	}
	if got := s.Row(2); got != "       " {
		t.Errorf("grown rows should be blank, got %q", got)
	}
}

func TestScreenRowOutOfRange(t *testing.T) {
	s := NewScreen(3, 1)
	if got := s.Row(-1); got != "   " {
		t.Errorf("Row(-1) = %q, expected spaces", got)
	}
	if got := s.Row(1); got != "   " {
		t.Errorf("Row(1) = %q, expected spaces", got)
	}
}
