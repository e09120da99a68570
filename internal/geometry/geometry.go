// Package geometry computes seat coordinates around a table shape. It is a
// pure function of (seat count, shape): the renderer draws whatever comes
// back, one coordinate per seat, in seat order.
package geometry

import (
	"math"

	"github.com/irynavol/seatmap-go/internal/domain"
)

// circleRadius is 75% of the half-extent of the unit square.
const circleRadius = 37.5

// Positions returns one coordinate per seat, in seat order, each axis in
// [0,100]. Same inputs always yield the same output. A non-positive
// seatCount yields an empty slice.
func Positions(seatCount int, shape domain.Shape) []domain.Position {
	if seatCount <= 0 {
		return []domain.Position{}
	}

	switch shape {
	case domain.ShapeRectangular, domain.ShapeSquare:
		return rectangularPositions(seatCount)
	default:
		return roundPositions(seatCount)
	}
}

// rectangularPositions places seat 1 and 2 at the midpoints of the short
// ends, then splits the rest evenly between the two long sides. An odd
// remainder puts one extra seat centered on the top side.
func rectangularPositions(seatCount int) []domain.Position {
	out := make([]domain.Position, 0, seatCount)

	out = append(out, domain.Position{X: 0, Y: 50})
	if seatCount >= 2 {
		out = append(out, domain.Position{X: 100, Y: 50})
	}

	rest := seatCount - 2
	if rest <= 0 {
		return out
	}

	perSide := rest / 2
	// The odd seat goes to the top side, centered among its neighbours.
	top := perSide + rest%2

	for i := 0; i < top; i++ {
		x := 100 * float64(i+1) / float64(top+1)
		out = append(out, domain.Position{X: x, Y: 0})
	}
	for i := 0; i < perSide; i++ {
		x := 100 * float64(i+1) / float64(perSide+1)
		out = append(out, domain.Position{X: x, Y: 100})
	}

	return out
}

func roundPositions(seatCount int) []domain.Position {
	out := make([]domain.Position, 0, seatCount)

	for i := 0; i < seatCount; i++ {
		angle := 2 * math.Pi * float64(i) / float64(seatCount)
		out = append(out, domain.Position{
			X: 50 + circleRadius*math.Cos(angle),
			Y: 50 + circleRadius*math.Sin(angle),
		})
	}

	return out
}
