package life

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStats_Update(t *testing.T) {
	var s Stats
	results := []StepResult{{3, 1}, {0, 0}, {5, 7}, {2, 2}}
	for _, r := range results {
		s.Update(r)
	}
	require.Equal(t, Stats{Generation: 4, Born: 10, Died: 10}, s)
}

func TestStats_Reset(t *testing.T) {
	s := Stats{Generation: 17, Born: 301, Died: 299}
	s.Reset()
	require.Equal(t, Stats{}, s)

	s.Update(StepResult{Born: 1})
	require.Equal(t, Stats{Generation: 1, Born: 1}, s)
}

func TestStats_FollowsBoard(t *testing.T) {
	b := newTestBoard(10, 10, Cell{4, 5}, Cell{5, 5}, Cell{6, 5}, Cell{0, 0})
	var s Stats
	for i := 0; i < 6; i++ {
		s.Update(b.Step())
	}
	//the lonely cell dies once, the blinker swaps two cells each generation
	require.Equal(t, 6, s.Generation)
	require.Equal(t, 12, s.Born)
	require.Equal(t, 13, s.Died)
}
