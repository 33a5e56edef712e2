package core

import "testing"

// boardRect matches a 10x20 board drawn two columns per cell inside a box.
var boardRect = NewRect(15, 1, 22, 22)

func TestRectContainsBoard(t *testing.T) {
	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"top-left border", 15, 1, true},
		{"last column", 36, 10, true},
		{"last row", 20, 22, true},
		{"right of board", 37, 10, false},
		{"below board", 20, 23, false},
		{"left panel", 14, 5, false},
		{"title row", 20, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := boardRect.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestRectRightBottomExclusive(t *testing.T) {
	if got := boardRect.Right(); got != 37 {
		t.Errorf("Right() = %d, want 37", got)
	}
	if got := boardRect.Bottom(); got != 23 {
		t.Errorf("Bottom() = %d, want 23", got)
	}
	if NewRect(3, 3, 0, 0).Contains(3, 3) {
		t.Error("empty rect must not contain its origin")
	}
}
