package maze

import (
	"fmt"
	"strings"
)

// Cell is a grid coordinate.
type Cell struct {
	Col, Row int
}

// Grid is a rectangular maze of walls and open floor.
type Grid struct {
	width  int
	height int
	walls  [][]bool // [row][col]
	open   int
}

// ParseGrid builds a grid from rows of '1' (wall) and '0' (open). Open
// cells walled off from the start are allowed; see Reachable.
func ParseGrid(layout []string) (*Grid, error) {
	if len(layout) == 0 {
		return nil, fmt.Errorf("maze: empty layout")
	}
	g := &Grid{width: len(layout[0]), height: len(layout)}
	g.walls = make([][]bool, g.height)
	for r, row := range layout {
		if len(row) != g.width {
			return nil, fmt.Errorf("maze: row %d has width %d, expected %d", r, len(row), g.width)
		}
		if strings.Trim(row, "01") != "" {
			return nil, fmt.Errorf("maze: row %d has characters other than 0 and 1", r)
		}
		g.walls[r] = make([]bool, g.width)
		for c, ch := range row {
			g.walls[r][c] = ch == '1'
			if ch == '0' {
				g.open++
			}
		}
	}
	if g.open == 0 {
		return nil, fmt.Errorf("maze: no open cells")
	}
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// OpenCells returns the number of non-wall cells, reachable or not.
func (g *Grid) OpenCells() int { return g.open }

// Reachable returns how many open cells can be walked to from Start.
func (g *Grid) Reachable() int { return len(g.Distances(g.Start())) }

// Inside reports whether c lies on the grid.
func (g *Grid) Inside(c Cell) bool {
	return c.Col >= 0 && c.Col < g.width && c.Row >= 0 && c.Row < g.height
}

// IsWall reports whether c is a wall. Cells off the grid count as walls.
func (g *Grid) IsWall(c Cell) bool {
	if !g.Inside(c) {
		return true
	}
	return g.walls[c.Row][c.Col]
}

// Start returns the first open cell in row-major order.
func (g *Grid) Start() Cell {
	for r := 0; r < g.height; r++ {
		for c := 0; c < g.width; c++ {
			if !g.walls[r][c] {
				return Cell{Col: c, Row: r}
			}
		}
	}
	return Cell{}
}

// steps are tried in this order, which makes BFS results deterministic.
var steps = [4]Cell{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// Distances returns the BFS step count from from to every reachable cell.
func (g *Grid) Distances(from Cell) map[Cell]int {
	dist := map[Cell]int{}
	if g.IsWall(from) {
		return dist
	}
	dist[from] = 0
	queue := []Cell{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range steps {
			next := Cell{Col: cur.Col + d.Col, Row: cur.Row + d.Row}
			if g.IsWall(next) {
				continue
			}
			if _, seen := dist[next]; seen {
				continue
			}
			dist[next] = dist[cur] + 1
			queue = append(queue, next)
		}
	}
	return dist
}

// Farthest returns the reachable cell with the largest BFS distance from
// from. Ties go to the first cell in row-major order.
func (g *Grid) Farthest(from Cell) Cell {
	dist := g.Distances(from)
	best, bestDist := from, -1
	for r := 0; r < g.height; r++ {
		for c := 0; c < g.width; c++ {
			cell := Cell{Col: c, Row: r}
			if d, ok := dist[cell]; ok && d > bestDist {
				best, bestDist = cell, d
			}
		}
	}
	return best
}

// NextStep returns the neighbour of from that lies on a shortest path to
// to. It returns false when to is unreachable or from == to.
func (g *Grid) NextStep(from, to Cell) (Cell, bool) {
	if from == to {
		return from, false
	}
	dist := g.Distances(to)
	here, ok := dist[from]
	if !ok {
		return from, false
	}
	for _, d := range steps {
		next := Cell{Col: from.Col + d.Col, Row: from.Row + d.Row}
		if n, ok := dist[next]; ok && n == here-1 {
			return next, true
		}
	}
	return from, false
}
