package cascade

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// bits maps trail cells to 1 and background to 0.
func bits(fade int, trail bool) int {
	if trail {
		return 1
	}
	return 0
}

// fades maps trail cells to their fade index and background to -1.
func fades(fade int, trail bool) int {
	if trail {
		return fade
	}
	return -1
}

// runCycle checks one mask per tick and expects the strain to die on the
// tick following the last mask.
func runCycle(t *testing.T, s Strain, bound int, masks [][]int) {
	t.Helper()
	for i, want := range masks {
		require.Equal(t, want, Mask(&s, bound, bits), "mask %d", i)
		phase := s.Tick(bound)
		if i < len(masks)-1 {
			require.Equal(t, Alive, phase, "tick %d", i)
		} else {
			require.Equal(t, Dead, phase, "tick %d", i)
		}
	}
}

func TestStrain_Creation(t *testing.T) {
	s := NewStrain(0, 3, NewLimitedCounter(1))
	require.Equal(t, []int{1, 0, 0, 0, 0}, Mask(&s, 5, bits))
	require.Equal(t, 0, s.Head())
	require.Equal(t, 3, s.Len())
	require.Equal(t, 3, s.OrigLen())
	require.True(t, s.Alive())
}

func TestStrain_ZeroLengthPanics(t *testing.T) {
	require.Panics(t, func() { NewStrain(0, 0, NewLimitedCounter(1)) })
	require.Panics(t, func() { NewStrain(-1, 3, NewLimitedCounter(1)) })
}

func TestStrain_ZeroValueSpeedPanics(t *testing.T) {
	require.PanicsWithValue(t, "cascade: strain speed limit must be at least 1", func() {
		NewStrain(0, 3, LimitedCounter{})
	})
}

func TestStrain_SmallCycle(t *testing.T) {
	runCycle(t, NewStrain(0, 3, NewLimitedCounter(1)), 5, [][]int{
		{1, 0, 0, 0, 0},
		{1, 1, 0, 0, 0},
		{1, 1, 1, 0, 0},
		{0, 1, 1, 1, 0},
		{0, 0, 1, 1, 1},
		{0, 0, 0, 1, 1},
		{0, 0, 0, 0, 1},
	})
}

func TestStrain_LongCycle(t *testing.T) {
	runCycle(t, NewStrain(0, 6, NewLimitedCounter(1)), 5, [][]int{
		{1, 0, 0, 0, 0},
		{1, 1, 0, 0, 0},
		{1, 1, 1, 0, 0},
		{1, 1, 1, 1, 0},
		{1, 1, 1, 1, 1},
		{1, 1, 1, 1, 1},
		{0, 1, 1, 1, 1},
		{0, 0, 1, 1, 1},
		{0, 0, 0, 1, 1},
		{0, 0, 0, 0, 1},
	})
}

func TestStrain_CustomStartCycle(t *testing.T) {
	// The second and third masks are identical: the first eaten row only
	// shortens the trail.
	runCycle(t, NewStrain(3, 3, NewLimitedCounter(1)), 5, [][]int{
		{0, 0, 0, 1, 0},
		{0, 0, 0, 1, 1},
		{0, 0, 0, 1, 1},
		{0, 0, 0, 0, 1},
	})
}

func TestStrain_FadeIndices(t *testing.T) {
	s := NewStrain(0, 3, NewLimitedCounter(1))
	want := [][]int{
		{0, -1, -1, -1, -1},
		{1, 0, -1, -1, -1},
		{2, 1, 0, -1, -1},
		{-1, 2, 1, 0, -1},
		{-1, -1, 2, 1, 0},
		{-1, -1, -1, 2, 1},
		{-1, -1, -1, -1, 2},
	}
	for i, w := range want {
		require.Equal(t, w, Mask(&s, 5, fades), "mask %d", i)
		s.Tick(5)
	}
	require.False(t, s.Alive())
}

func TestStrain_StartOutsideBoundDiesImmediately(t *testing.T) {
	for bound := 0; bound < 6; bound++ {
		for start := bound; start < bound+4; start++ {
			s := NewStrain(start, 2, NewLimitedCounter(3))
			require.Equal(t, Dead, s.Tick(bound), "start %d bound %d", start, bound)
		}
	}
}

func TestStrain_MaskLengthMatchesBound(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for n := 0; n < 200; n++ {
		s := NewStrain(rng.Intn(4), 1+rng.Intn(8), NewLimitedCounter(1+rng.Intn(3)))
		bound := 1 + rng.Intn(10)
		for s.Alive() {
			// Probe the current bound as well as smaller and larger ones.
			for _, b := range []int{0, 1, bound / 2, bound, bound + 3} {
				require.Len(t, Mask(&s, b, bits), b)
			}
			s.Tick(bound)
		}
	}
}

func TestStrain_LengthNeverGrows(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for n := 0; n < 200; n++ {
		s := NewStrain(rng.Intn(3), 1+rng.Intn(10), NewLimitedCounter(1+rng.Intn(4)))
		bound := 1 + rng.Intn(12)
		prev := s.Len()
		for s.Tick(bound) == Alive {
			require.LessOrEqual(t, s.Len(), prev)
			require.Positive(t, s.Len())
			require.LessOrEqual(t, s.Len(), s.OrigLen())
			require.GreaterOrEqual(t, s.Head(), s.Start())
			prev = s.Len()
		}
	}
}

func TestStrain_SpeedDelaysDeath(t *testing.T) {
	// With speed 1 the 3 long strain dies on the 7th tick in a 5 row column.
	for k := 1; k <= 4; k++ {
		s := NewStrain(0, 3, NewLimitedCounter(k))
		ticks := 1
		for s.Tick(5) == Alive {
			ticks++
		}
		require.Equal(t, 7*k, ticks, "speed %d", k)
	}
}

func TestStrain_TickAfterDeathPanics(t *testing.T) {
	s := NewStrain(4, 1, NewLimitedCounter(1))
	require.Equal(t, Dead, s.Tick(2))
	require.Panics(t, func() { s.Tick(2) })
	require.Panics(t, func() { s.BumpBound(10) })
}

func TestStrain_BumpBound(t *testing.T) {
	s := NewStrain(0, 2, NewLimitedCounter(1))
	for i := 0; i < 3; i++ {
		require.Equal(t, Alive, s.Tick(4))
	}
	before := s

	// Survives a taller column and stays unchanged.
	require.Equal(t, Alive, s.BumpBound(10))
	require.Equal(t, before, s)

	// A column of 2 rows eats the whole trail.
	require.Equal(t, Dead, s.BumpBound(2))
	require.False(t, s.Alive())
}
