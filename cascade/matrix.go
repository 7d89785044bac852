package cascade

import (
	"fmt"
	"math/rand"
	"strings"
)

// Interval is a half open integer range [Min, Max).
type Interval struct {
	Min, Max int
}

// Empty reports whether the interval contains no values.
func (iv Interval) Empty() bool { return iv.Max <= iv.Min }

// Contains reports whether v lies inside the interval.
func (iv Interval) Contains(v int) bool { return v >= iv.Min && v < iv.Max }

func (iv Interval) sample(rng *rand.Rand) int {
	return iv.Min + rng.Intn(iv.Max-iv.Min)
}

// String formats the interval as [Min,Max).
func (iv Interval) String() string { return fmt.Sprintf("[%d,%d)", iv.Min, iv.Max) }

// Params tune how strains are spawned.
type Params struct {
	SpawnChance float64  // Per tick, per empty column probability
	Start       Interval // Row where a new strain starts; zero value means [0,1)
	Length      Interval // Must not include 0
	Speed       Interval // Ticks per row; must not include 0
}

func (p Params) validate() {
	switch {
	case p.SpawnChance < 0 || p.SpawnChance > 1:
		panic(fmt.Sprintf("cascade: spawn chance %v outside [0,1]", p.SpawnChance))
	case p.Start.Empty() || p.Start.Min < 0:
		panic(fmt.Sprintf("cascade: invalid start interval %v", p.Start))
	case p.Length.Empty() || p.Length.Min <= 0:
		panic(fmt.Sprintf("cascade: length interval %v must be non-empty and exclude 0", p.Length))
	case p.Speed.Empty() || p.Speed.Min <= 0:
		panic(fmt.Sprintf("cascade: speed interval %v must be non-empty and exclude 0", p.Speed))
	}
}

type slot struct {
	strain   Strain
	occupied bool
}

// Matrix holds the strains of a width x height area and the cells they were
// last rasterized into.
type Matrix[T any] struct {
	height, width int
	columns       []slot
	params        Params
	rng           *rand.Rand
	cells         [][]T
	column        []T // Rasterization scratch, reused between columns
}

// New creates an empty matrix. The matrix takes exclusive ownership of rng.
//
// New panics if the parameters can produce an invalid strain, most notably
// when the length interval includes 0.
func New[T any](height, width int, p Params, rng *rand.Rand) *Matrix[T] {
	if height < 0 || width < 0 {
		panic("cascade: negative matrix dimensions")
	}
	if rng == nil {
		panic("cascade: nil random source")
	}
	if p.Start == (Interval{}) {
		p.Start = Interval{0, 1}
	}
	p.validate()

	return &Matrix[T]{
		height:  height,
		width:   width,
		columns: make([]slot, width),
		params:  p,
		rng:     rng,
		cells:   newCells[T](height, width),
	}
}

func newCells[T any](height, width int) [][]T {
	cells := make([][]T, height)
	for i := range cells {
		cells[i] = make([]T, width)
	}
	return cells
}

// Width returns the number of columns.
func (m *Matrix[T]) Width() int { return m.width }

// Height returns the number of rows, which is the bound every strain is
// ticked against.
func (m *Matrix[T]) Height() int { return m.height }

// Params returns the spawn parameters in use.
func (m *Matrix[T]) Params() Params { return m.params }

// SetSpawnChance changes the spawn probability used from the next tick on.
func (m *Matrix[T]) SetSpawnChance(chance float64) {
	p := m.params
	p.SpawnChance = chance
	p.validate()
	m.params = p
}

// Cells returns the row-major cell grid produced by the last tick.
// The grid is owned by the matrix and overwritten by the next tick.
func (m *Matrix[T]) Cells() [][]T { return m.cells }

// At returns the cell at the given row and column.
func (m *Matrix[T]) At(row, col int) T { return m.cells[row][col] }

// Strain returns a copy of the strain held in column col, if any.
func (m *Matrix[T]) Strain(col int) (Strain, bool) {
	c := m.columns[col]
	return c.strain, c.occupied
}

// Occupied returns the number of columns holding a live strain.
func (m *Matrix[T]) Occupied() int {
	n := 0
	for _, c := range m.columns {
		if c.occupied {
			n++
		}
	}
	return n
}

// Clear drops every strain. Cells keep their content until the next tick.
func (m *Matrix[T]) Clear() {
	for i := range m.columns {
		m.columns[i] = slot{}
	}
}

// Resize updates the matrix dimensions. It does nothing if they are
// unchanged. Strains in surviving columns are kept; the cell grid is
// reallocated on any change.
func (m *Matrix[T]) Resize(width, height int) {
	if width < 0 || height < 0 {
		panic("cascade: negative matrix dimensions")
	}
	updated := false
	if m.height != height {
		m.height = height
		updated = true
	}
	switch {
	case m.width > width:
		m.columns = m.columns[:width:width]
		m.width = width
		updated = true
	case m.width < width:
		m.columns = append(m.columns, make([]slot, width-m.width)...)
		m.width = width
		updated = true
	}
	if updated {
		m.cells = newCells[T](height, width)
	}
}

// Tick advances every strain, spawns new ones and rebuilds the cell grid
// through cellOf, which is called exactly height*width times.
func (m *Matrix[T]) Tick(cellOf CellFunc[T]) {
	m.tickStrains()
	m.generateStrains()
	m.rasterize(cellOf)
}

// Render rebuilds the cell grid from the current strains without advancing
// them. It is meant for redrawing after a Resize while the caller is not
// ticking.
func (m *Matrix[T]) Render(cellOf CellFunc[T]) {
	m.rasterize(cellOf)
}

// tickStrains advances the occupied columns. A strain that dies may be
// replaced on the spot.
func (m *Matrix[T]) tickStrains() {
	for i := range m.columns {
		c := &m.columns[i]
		if !c.occupied {
			continue
		}
		if c.strain.Tick(m.height) == Dead {
			*c = m.maybeSpawn()
		}
	}
}

// generateStrains rolls a spawn for every empty column.
func (m *Matrix[T]) generateStrains() {
	for i := range m.columns {
		if !m.columns[i].occupied {
			m.columns[i] = m.maybeSpawn()
		}
	}
}

func (m *Matrix[T]) maybeSpawn() slot {
	if m.rng.Float64() > m.params.SpawnChance {
		return slot{}
	}
	start := m.params.Start.sample(m.rng)
	length := m.params.Length.sample(m.rng)
	speed := m.params.Speed.sample(m.rng)
	return slot{
		strain:   NewStrain(start, length, NewLimitedCounter(speed)),
		occupied: true,
	}
}

func (m *Matrix[T]) rasterize(cellOf CellFunc[T]) {
	for col := range m.columns {
		buf := m.column[:0]
		if c := &m.columns[col]; c.occupied {
			buf = appendMask(buf, &c.strain, m.height, cellOf)
		} else {
			buf = emptyMask(buf, m.height, cellOf)
		}
		for row, cell := range buf {
			m.cells[row][col] = cell
		}
		m.column = buf
	}
}

// String renders the cell grid one row per line using fmt.
func (m *Matrix[T]) String() string {
	var b strings.Builder
	for _, row := range m.cells {
		for _, cell := range row {
			fmt.Fprint(&b, cell)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
