package sokoban

import "fmt"

// Point is a cell coordinate. X grows to the right, Y grows downward.
type Point struct {
	X int
	Y int
}

// P is a convenience constructor for Point.
func P(x, y int) Point {
	return Point{X: x, Y: y}
}

// String returns a string representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Step returns the point one cell away in direction d.
func (p Point) Step(d Direction) Point {
	return Point{X: p.X + d.DX, Y: p.Y + d.DY}
}

// Direction is a movement vector. Only Left, Right, Up and Down are valid moves.
type Direction struct {
	DX int
	DY int
}

// The four cardinal directions.
var (
	Left  = Direction{DX: -1, DY: 0}
	Right = Direction{DX: 1, DY: 0}
	Up    = Direction{DX: 0, DY: -1}
	Down  = Direction{DX: 0, DY: 1}
)

// Directions lists the valid directions in a fixed order.
func Directions() []Direction {
	return []Direction{Left, Right, Up, Down}
}

// Valid reports whether d is one of the four cardinal unit vectors.
func (d Direction) Valid() bool {
	return d == Left || d == Right || d == Up || d == Down
}

// String returns the direction name, or the raw vector for invalid directions.
func (d Direction) String() string {
	switch d {
	case Left:
		return "Left"
	case Right:
		return "Right"
	case Up:
		return "Up"
	case Down:
		return "Down"
	default:
		return fmt.Sprintf("Direction(%d,%d)", d.DX, d.DY)
	}
}
