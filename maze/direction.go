package maze

// Direction is one of the four sides of a cell.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West

	// NoDirection is returned once a cell has tried all of its directions.
	NoDirection Direction = 0xFF
)

var directionNames = [...]string{"North", "East", "South", "West"}

// Directions returns the four directions in canonical order.
func Directions() [4]Direction {
	return [4]Direction{North, East, South, West}
}

// String returns the name of the direction.
func (d Direction) String() string {
	if !d.IsValid() {
		return "None"
	}
	return directionNames[d]
}

// IsValid reports whether d is one of the four sides.
func (d Direction) IsValid() bool {
	return d <= West
}

// Opposite returns the side facing d across a shared wall.
func (d Direction) Opposite() Direction {
	if !d.IsValid() {
		return NoDirection
	}
	return (d + 2) % 4
}

// Delta returns the row and column offsets of a step in direction d.
func (d Direction) Delta() (dRow, dCol int) {
	switch d {
	case North:
		return -1, 0
	case East:
		return 0, 1
	case South:
		return 1, 0
	case West:
		return 0, -1
	default:
		return 0, 0
	}
}

// ParseDirection maps a direction name back to its value.
func ParseDirection(name string) (Direction, bool) {
	for i, n := range directionNames {
		if n == name {
			return Direction(i), true
		}
	}
	return NoDirection, false
}

func (d Direction) bit() uint8 {
	return 1 << d
}
