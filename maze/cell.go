package maze

// allWalls is the wall mask of a cell nobody has entered yet.
const allWalls uint8 = 1<<North | 1<<East | 1<<South | 1<<West

// CellPosition represents the position of a cell in the maze grid.
type CellPosition struct {
	Row int `json:"row"` // Row index of the cell
	Col int `json:"col"` // Column index of the cell
}

// Cell represents a single cell in a maze grid.
// Walls are kept as a bitmask indexed by Direction; a set bit means the side is closed.
type Cell struct {
	pos    CellPosition
	walls  uint8
	order  [4]Direction // randomized trial order, redrawn on every reset
	cursor int          // index of the last direction handed out, -1 before the first
}

// Position returns the row and column of the cell.
func (c *Cell) Position() CellPosition {
	return c.pos
}

// HasWall returns true if the side facing d is closed.
func (c *Cell) HasWall(d Direction) bool {
	if !d.IsValid() {
		return true
	}
	return c.walls&d.bit() != 0
}

// HasNorthWall returns true if there is a wall on the north side of the cell.
func (c *Cell) HasNorthWall() bool { return c.HasWall(North) }

// HasEastWall returns true if there is a wall on the east side of the cell.
func (c *Cell) HasEastWall() bool { return c.HasWall(East) }

// HasSouthWall returns true if there is a wall on the south side of the cell.
func (c *Cell) HasSouthWall() bool { return c.HasWall(South) }

// HasWestWall returns true if there is a wall on the west side of the cell.
func (c *Cell) HasWestWall() bool { return c.HasWall(West) }

// Walls returns the wall bitmask of the cell, bit 1<<d set when side d is closed.
func (c *Cell) Walls() uint8 {
	return c.walls
}

// IsClosed returns true while all four walls are still present,
// i.e. the traversal has not entered the cell yet.
func (c *Cell) IsClosed() bool {
	return c.walls == allWalls
}

// reset closes every wall and draws a fresh trial order.
// The order always starts from the canonical one so the result depends only on r.
func (c *Cell) reset(r RandomSource) {
	c.walls = allWalls
	c.order = Directions()
	r.Shuffle(len(c.order), func(i, j int) {
		c.order[i], c.order[j] = c.order[j], c.order[i]
	})
	c.cursor = -1
}

// nextCandidateDirection hands out each direction of the trial order once,
// then NoDirection.
func (c *Cell) nextCandidateDirection() Direction {
	if c.cursor+1 >= len(c.order) {
		c.cursor = len(c.order)
		return NoDirection
	}
	c.cursor++
	return c.order[c.cursor]
}

// openWall clears the wall on side d. The caller opens the opposite side on the neighbor.
func (c *Cell) openWall(d Direction) {
	if d.IsValid() {
		c.walls &^= d.bit()
	}
}
