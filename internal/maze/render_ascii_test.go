package maze_test

import (
	"math"
	"testing"

	"github.com/vovakirdan/maze-collector/internal/maze"
)

func TestRenderASCII(t *testing.T) {
	g := maze.NewGrid(7, 3)
	for x := 1; x <= 5; x++ {
		g.Set(maze.C(x, 1), maze.Open())
	}
	g.Set(maze.C(2, 1), maze.CollectibleCell(2))
	g.Set(maze.C(3, 1), maze.CollectibleCell(1))
	g.Set(maze.C(4, 1), maze.CollectibleCell(12))
	f := maze.C(5, 1)
	g.Finish = &f
	g.Start = maze.C(1, 1)
	g.StartDir = maze.DirEast

	g.Collect(maze.C(3, 1))

	agent := maze.NewAgent(g)
	got := maze.RenderASCII(g, &agent)
	expected := "#######\n#>2o9F#\n#######"
	if got != expected {
		t.Errorf("RenderASCII =\n%s\nexpected\n%s", got, expected)
	}

	g.Collect(maze.C(3, 1))
	if got := maze.RenderASCII(g, nil); got != "#######\n#.2!9F#\n#######" {
		t.Errorf("anomalous cell should render as '!', got\n%s", got)
	}
}

func TestCountGlyph(t *testing.T) {
	testCases := []struct {
		n    float64
		want rune
	}{
		{0, 'o'},
		{1, '1'},
		{8, '8'},
		{9, '9'},
		{40, '9'},
		{-2, '!'},
		{math.NaN(), '!'},
	}
	for _, tc := range testCases {
		if got := maze.CountGlyph(tc.n); got != tc.want {
			t.Errorf("CountGlyph(%v) = %q, expected %q", tc.n, got, tc.want)
		}
	}
}
