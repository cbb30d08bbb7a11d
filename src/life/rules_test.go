package life

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRules_Conway(t *testing.T) {
	r := ParseRules("B3/S23")
	require.Equal(t, []int{3}, r.Births())
	require.Equal(t, []int{2, 3}, r.Survives())
	require.True(t, r.CanBeBorn(3))
	require.False(t, r.CanBeBorn(2))
	require.True(t, r.CanSurvive(2))
	require.True(t, r.CanSurvive(3))
	require.False(t, r.CanSurvive(4))
	require.Equal(t, DefaultRules, r)
}

func TestParseRules_Fallback(t *testing.T) {
	for _, text := range []string{
		"",
		"   ",
		"\t\n",
		"garbage",
		"B3/S23/X",
		"3/23",
		"B36S23",
	} {
		require.Equal(t, DefaultRules, ParseRules(text), "rule %q", text)
	}
}

func TestParseRules_Lenient(t *testing.T) {
	//lower case prefixes, spaces and junk inside the digit runs
	r := ParseRules(" b3x6 / s2,3 ")
	require.Equal(t, NewRuleSet([]int{3, 6}, []int{2, 3}), r)

	//empty digit runs are valid
	r = ParseRules("B/S")
	require.Empty(t, r.Births())
	require.Empty(t, r.Survives())
	require.Equal(t, "B/S", r.String())

	//9 can never match a neighbour count
	r = ParseRules("B39/S9")
	require.Equal(t, []int{3}, r.Births())
	require.Empty(t, r.Survives())
}

func TestParseRulesStrict_Errors(t *testing.T) {
	_, err := ParseRulesStrict("  ")
	require.ErrorIs(t, err, ErrEmptyRule)

	_, err = ParseRulesStrict("B3S23")
	require.ErrorIs(t, err, ErrRuleFormat)

	_, err = ParseRulesStrict("X3/S23")
	require.ErrorIs(t, err, ErrRuleFormat)

	r, err := ParseRulesStrict("B36/S23")
	require.NoError(t, err)
	require.Equal(t, "B36/S23", r.String())
}

func TestRuleSet_StringSorted(t *testing.T) {
	r := NewRuleSet([]int{8, 3, 6, 3}, []int{5, 2, 3, -1, 12})
	require.Equal(t, "B368/S235", r.String())
	require.Equal(t, "B3678/S34678", ParseRules("B6873/S87643").String())
}

func TestRuleSet_FormatParseRoundTrip(t *testing.T) {
	rnd := NewRand(7)
	for i := 0; i < 200; i++ {
		var births, survives []int
		for n := 0; n <= MaxNeighbours; n++ {
			if rnd.IntN(2) == 1 {
				births = append(births, n)
			}
			if rnd.IntN(2) == 1 {
				survives = append(survives, n)
			}
		}
		r := NewRuleSet(births, survives)
		require.Equal(t, r, ParseRules(r.String()))
	}
}

func TestRuleSet_OutOfRangeCounts(t *testing.T) {
	r := NewRuleSet([]int{0, 8}, []int{0, 8})
	require.True(t, r.CanBeBorn(0))
	require.True(t, r.CanBeBorn(8))
	require.False(t, r.CanBeBorn(-1))
	require.False(t, r.CanBeBorn(9))
	require.False(t, r.CanSurvive(100))
}

func TestRuleSet_TextMarshaling(t *testing.T) {
	b, err := ParseRules("B36/S23").MarshalText()
	require.NoError(t, err)
	require.Equal(t, "B36/S23", string(b))

	var r RuleSet
	require.NoError(t, r.UnmarshalText([]byte("nonsense")))
	require.Equal(t, DefaultRules, r)
}
