package cascade

// Phase is the lifecycle state of a strain.
type Phase int

const (
	// Alive strains can be ticked and rasterized.
	Alive Phase = iota
	// Dead strains are finished; their slot must be emptied or refilled.
	Dead
)

// String returns "alive" or "dead".
func (p Phase) String() string {
	if p == Dead {
		return "dead"
	}
	return "alive"
}

// CellFunc builds a cell value. trail is false for background cells; for
// trail cells fade is the distance from the head plus the number of rows
// already eaten by the bottom edge.
type CellFunc[T any] func(fade int, trail bool) T

// Strain is a single falling trail.
type Strain struct {
	start   int
	head    int
	len     int
	origLen int
	speed   LimitedCounter
	phase   Phase
}

// NewStrain creates a live strain whose head sits on row start.
// It panics if length is not positive or speed was not built by
// NewLimitedCounter.
func NewStrain(start, length int, speed LimitedCounter) Strain {
	if speed.limit < 1 {
		panic("cascade: strain speed limit must be at least 1")
	}
	if length <= 0 {
		panic("cascade: strain length must be greater than 0")
	}
	if start < 0 {
		panic("cascade: strain start must not be negative")
	}
	return Strain{
		start:   start,
		head:    start,
		len:     length,
		origLen: length,
		speed:   speed,
	}
}

// Start returns the row the strain entered the column on.
func (s *Strain) Start() int { return s.start }

// Head returns the row of the leading cell.
func (s *Strain) Head() int { return s.head }

// Len returns the number of rows still visible.
func (s *Strain) Len() int { return s.len }

// OrigLen returns the length the strain was created with.
func (s *Strain) OrigLen() int { return s.origLen }

// Speed returns the counter pacing the head.
func (s *Strain) Speed() LimitedCounter { return s.speed }

// Phase returns the lifecycle state.
func (s *Strain) Phase() Phase { return s.phase }

// Alive reports whether the strain can still be ticked.
func (s *Strain) Alive() bool { return s.phase == Alive }

// Tick advances the strain one step against a column of bound rows.
// The head only moves when the speed counter wraps; once the head reaches
// the bottom the trail is eaten from its tail until nothing is left.
// Ticking a dead strain panics.
func (s *Strain) Tick(bound int) Phase {
	s.mustBeAlive()
	if s.start >= bound {
		return s.kill()
	}
	if s.speed.Tick() {
		s.head++
		if s.head >= bound {
			eaten := s.head - bound + 1
			s.head -= eaten
			if s.len <= eaten {
				return s.kill()
			}
			s.len -= eaten
		}
	}
	return Alive
}

// BumpBound checks whether the strain would survive a tick against bound.
// A surviving strain is left untouched; otherwise it is killed.
func (s *Strain) BumpBound(bound int) Phase {
	s.mustBeAlive()
	probe := *s
	if probe.Tick(bound) == Dead {
		return s.kill()
	}
	return Alive
}

func (s *Strain) kill() Phase {
	s.phase = Dead
	return Dead
}

func (s *Strain) mustBeAlive() {
	if s.phase == Dead {
		panic("cascade: strain is dead")
	}
}

// Mask rasterizes s into a column of exactly bound cells.
func Mask[T any](s *Strain, bound int, cellOf CellFunc[T]) []T {
	return appendMask(make([]T, 0, bound), s, bound, cellOf)
}

func appendMask[T any](mask []T, s *Strain, bound int, cellOf CellFunc[T]) []T {
	if bound <= 0 {
		return mask
	}
	end := len(mask) + bound
	push := func(fade int, trail bool) {
		if len(mask) < end {
			mask = append(mask, cellOf(fade, trail))
		}
	}

	if s.start >= bound {
		for len(mask) < end {
			push(0, false)
		}
		return mask
	}

	for i := 0; i < s.start; i++ {
		push(0, false)
	}
	span := s.head - s.start
	eaten := s.origLen - s.len
	if span <= s.len-1 {
		for i := 0; i <= span; i++ {
			push(span-i+eaten, true)
		}
	} else {
		for i := 0; i < span-(s.len-1); i++ {
			push(0, false)
		}
		for i := 0; i < s.len; i++ {
			push(s.len-i-1+eaten, true)
		}
	}
	for len(mask) < end {
		push(0, false)
	}
	return mask
}

// emptyMask fills a column of bound background cells.
func emptyMask[T any](mask []T, bound int, cellOf CellFunc[T]) []T {
	for i := 0; i < bound; i++ {
		mask = append(mask, cellOf(0, false))
	}
	return mask
}
