package maze

import (
	"math"
	"strings"
)

// RenderASCII draws the grid as plain text for headless output and tests.
//
//	#      wall
//	.      open floor
//	1-9    collectible units remaining (capped at 9)
//	o      collectible cell emptied by play
//	!      anomalous balance (negative or NaN)
//	F      finish
//
// When agent is non-nil its arrow is drawn on top of the cell.
func RenderASCII(g *Grid, agent *Agent) string {
	var sb strings.Builder
	sb.Grow((g.W + 1) * g.H)

	for y := 0; y < g.H; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < g.W; x++ {
			c := C(x, y)
			if agent != nil && agent.Pos == c {
				sb.WriteRune(agent.Glyph())
				continue
			}
			sb.WriteRune(cellGlyph(g, c))
		}
	}
	return sb.String()
}

func cellGlyph(g *Grid, c Coord) rune {
	cell := g.At(c)
	switch {
	case cell.Kind == KindWall:
		return '#'
	case cell.Anomalous():
		return '!'
	case cell.Collectible:
		return CountGlyph(cell.Current)
	case g.Finish != nil && *g.Finish == c:
		return 'F'
	default:
		return '.'
	}
}

// CountGlyph renders a remaining quantity as a single character.
func CountGlyph(n float64) rune {
	switch {
	case math.IsNaN(n) || n < 0:
		return '!'
	case n == 0:
		return 'o'
	case n >= 9:
		return '9'
	default:
		return rune('0' + int(n))
	}
}
