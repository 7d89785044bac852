package cascade

// LimitedCounter is a modulo counter used to slow strains down.
// A counter with limit n reports a wrap once every n ticks.
type LimitedCounter struct {
	count int
	limit int
}

// NewLimitedCounter creates a counter that wraps every limit ticks.
// It panics if limit is less than 1.
func NewLimitedCounter(limit int) LimitedCounter {
	if limit < 1 {
		panic("cascade: counter limit must be at least 1")
	}
	return LimitedCounter{limit: limit}
}

// Tick advances the counter and reports whether it wrapped back to 0.
func (c *LimitedCounter) Tick() bool {
	c.count = (c.count + 1) % c.limit
	return c.count == 0
}

// Limit returns the wrap period.
func (c LimitedCounter) Limit() int { return c.limit }

// Count returns the current position inside the period.
func (c LimitedCounter) Count() int { return c.count }
