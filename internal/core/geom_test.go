package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(2, 3, 4, 5)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"top-left corner", 2, 3, true},
		{"inside", 4, 5, true},
		{"last column", 5, 7, true},
		{"right edge excluded", 6, 3, false},
		{"bottom edge excluded", 2, 8, false},
		{"left of rect", 1, 4, false},
		{"above rect", 3, 2, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(1, 2, 10, 20)
	if r.Right() != 11 {
		t.Errorf("Right() = %d, expected 11", r.Right())
	}
	if r.Bottom() != 22 {
		t.Errorf("Bottom() = %d, expected 22", r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}
