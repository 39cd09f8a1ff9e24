package pheromone

// gridEntry is one indexed deposit. Position and kind are stored inline
// so queries never chase a lookup table; positions are immutable for a
// deposit's lifetime, so the copy can never go stale.
type gridEntry struct {
	id   uint64
	x, y float32
	kind Kind
}

// Hit is one query candidate with its squared distance precomputed.
type Hit struct {
	ID     uint64
	DistSq float32
}

// MaxQueryResults caps candidates appended by a spatial query.
// This prevents density spikes from causing unbounded work.
const MaxQueryResults = 256

// Grid partitions the bounded world into fixed-size cells for O(1)
// insert/remove and radius-bounded enumeration. Positions outside the
// world rectangle fall into the clamped border cells; the world does
// not wrap.
type Grid struct {
	cellSize float32
	cols     int
	rows     int
	cells    [][]gridEntry
	count    int
}

// NewGrid creates a grid covering the given world size.
func NewGrid(width, height, cellSize float32) *Grid {
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1

	cells := make([][]gridEntry, cols*rows)
	for i := range cells {
		cells[i] = make([]gridEntry, 0, 8) // pre-allocate small capacity
	}

	return &Grid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    cells,
	}
}

// Insert adds a deposit to the cell covering its position.
func (g *Grid) Insert(id uint64, x, y float32, kind Kind) {
	idx := g.cellIndex(x, y)
	g.cells[idx] = append(g.cells[idx], gridEntry{id: id, x: x, y: y, kind: kind})
	g.count++
}

// Remove deletes a deposit from the cell covering the position it was
// inserted with. Returns false if the deposit is not present there.
func (g *Grid) Remove(id uint64, x, y float32) bool {
	idx := g.cellIndex(x, y)
	cell := g.cells[idx]
	for i := range cell {
		if cell[i].id == id {
			last := len(cell) - 1
			cell[i] = cell[last]
			g.cells[idx] = cell[:last]
			g.count--
			return true
		}
	}
	return false
}

// Len returns the number of indexed deposits.
func (g *Grid) Len() int {
	return g.count
}

// QueryKindInto appends deposits of the given kind within radius of
// (x, y) to dst (up to MaxQueryResults) and returns the updated slice.
// Candidates carry squared distances; order is unspecified. Reuse dst
// across calls to avoid allocations.
func (g *Grid) QueryKindInto(dst []Hit, x, y, radius float32, kind Kind) []Hit {
	cellRadius := int(radius/g.cellSize) + 1

	centerCol := int(x / g.cellSize)
	centerRow := int(y / g.cellSize)

	minCol := centerCol - cellRadius
	if minCol < 0 {
		minCol = 0
	}
	maxCol := centerCol + cellRadius
	if maxCol >= g.cols {
		maxCol = g.cols - 1
	}
	minRow := centerRow - cellRadius
	if minRow < 0 {
		minRow = 0
	}
	maxRow := centerRow + cellRadius
	if maxRow >= g.rows {
		maxRow = g.rows - 1
	}

	radiusSq := radius * radius

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			idx := row*g.cols + col
			for i := range g.cells[idx] {
				e := &g.cells[idx][i]
				if e.kind != kind {
					continue
				}
				dx := e.x - x
				dy := e.y - y
				distSq := dx*dx + dy*dy
				if distSq <= radiusSq {
					dst = append(dst, Hit{ID: e.id, DistSq: distSq})
					// Early exit if we hit the cap
					if len(dst) >= MaxQueryResults {
						return dst
					}
				}
			}
		}
	}

	return dst
}

// cellIndex returns the flat index for a world position, clamped to
// the border cells for out-of-bounds positions.
func (g *Grid) cellIndex(x, y float32) int {
	col := int(x / g.cellSize)
	row := int(y / g.cellSize)

	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return row*g.cols + col
}
