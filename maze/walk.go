package maze

// Connections counts the opened passages of the grid.
// A passage counts only when both cells sharing the wall have it open.
func (g *Grid) Connections() int {
	count := 0
	for i := range g.cells {
		c := &g.cells[i]
		for _, d := range [...]Direction{East, South} {
			if g.Passable(c, d) {
				count++
			}
		}
	}
	return count
}

// Passable reports whether a step from c in direction d stays inside the grid
// and crosses an open wall on both sides.
func (g *Grid) Passable(c *Cell, d Direction) bool {
	next := g.Neighbor(c, d)
	return next != nil && !c.HasWall(d) && !next.HasWall(d.Opposite())
}

// Distances returns, for every cell in row-major order, the number of steps
// from the given start through opened walls, or -1 when the cell is unreachable.
func (g *Grid) Distances(from CellPosition) []int {
	dist := make([]int, len(g.cells))
	for i := range dist {
		dist[i] = -1
	}
	start := g.CellAt(from.Row, from.Col)
	if start == nil {
		return dist
	}

	dist[g.index(start)] = 0
	queue := []*Cell{start}
	for len(queue) > 0 {
		cell := dequeue(&queue)
		for _, d := range Directions() {
			if !g.Passable(cell, d) {
				continue
			}
			next := g.Neighbor(cell, d)
			if dist[g.index(next)] < 0 {
				dist[g.index(next)] = dist[g.index(cell)] + 1
				queue = append(queue, next)
			}
		}
	}
	return dist
}

// Reachable counts the cells reachable from the given start, the start included.
func (g *Grid) Reachable(from CellPosition) int {
	count := 0
	for _, d := range g.Distances(from) {
		if d >= 0 {
			count++
		}
	}
	return count
}

// IsPerfect reports whether the opened passages form a spanning tree.
func (g *Grid) IsPerfect() bool {
	n := len(g.cells)
	if n == 0 {
		return false
	}
	return g.Connections() == n-1 && g.Reachable(CellPosition{}) == n
}

// Path returns the cells from one position to another, both ends included,
// or nil when no passage connects them.
func (g *Grid) Path(from, to CellPosition) []CellPosition {
	if !g.InBound(to.Row, to.Col) {
		return nil
	}
	dist := g.Distances(from)
	cell := g.CellAt(to.Row, to.Col)
	if dist[g.index(cell)] < 0 {
		return nil
	}

	path := make([]CellPosition, dist[g.index(cell)]+1)
	for i := len(path) - 1; i > 0; i-- {
		path[i] = cell.pos
		for _, d := range Directions() {
			if !g.Passable(cell, d) {
				continue
			}
			prev := g.Neighbor(cell, d)
			if dist[g.index(prev)] == dist[g.index(cell)]-1 {
				cell = prev
				break
			}
		}
	}
	path[0] = cell.pos
	return path
}

func (g *Grid) index(c *Cell) int {
	return c.pos.Row*g.width + c.pos.Col
}

// dequeue removes and returns the first element of a queue of cells.
func dequeue(q *[]*Cell) *Cell {
	first := (*q)[0]
	(*q)[0] = nil
	*q = (*q)[1:]
	return first
}
