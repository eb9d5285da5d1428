package dice

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var chemistry = NewTable(
	Entry[string]{"Hydrogen-Based", 5},
	Entry[string]{"Ammonia-Based", 7},
	Entry[string]{"Hydrocarbon-Based", 8},
	Entry[string]{"Carbon-Based", 11},
	Entry[string]{"Chlorine-Based", 12},
	Entry[string]{"Silicon-Based", 15},
	Entry[string]{"Sulfur-Based", 17},
	Entry[string]{"Machine", 18},
)

func TestSeekExtremes(t *testing.T) {
	assert.Equal(t, "Hydrogen-Based", Seek(chemistry, 5))
	assert.Equal(t, "Hydrogen-Based", Seek(chemistry, -10))
	assert.Equal(t, "Machine", Seek(chemistry, 18))
	assert.Equal(t, "Machine", Seek(chemistry, 99))
}

func TestSeekInclusiveThreshold(t *testing.T) {
	assert.Equal(t, "Ammonia-Based", Seek(chemistry, 6))
	assert.Equal(t, "Ammonia-Based", Seek(chemistry, 7))
	assert.Equal(t, "Hydrocarbon-Based", Seek(chemistry, 8))
}

// TestSeekMonotonic checks that the selected row never moves backwards as
// the roll grows.
func TestSeekMonotonic(t *testing.T) {
	index := map[string]int{}
	for i, o := range chemistry.Outcomes() {
		index[o] = i
	}
	prev := -1
	for roll := -5; roll <= 30; roll++ {
		got := index[Seek(chemistry, roll)]
		require.GreaterOrEqual(t, got, prev, "roll %d", roll)
		prev = got
	}
}

func TestSeekEmptyTable(t *testing.T) {
	assert.Equal(t, "", Seek(Table[string]{}, 10))
}

func TestNewTableSortsRows(t *testing.T) {
	tbl := NewTable(
		Entry[string]{"high", 12},
		Entry[string]{"low", 3},
		Entry[string]{"mid", 7},
	)
	assert.Equal(t, []string{"low", "mid", "high"}, tbl.Outcomes())
}

func TestFilterKeepsThresholds(t *testing.T) {
	carbonish := chemistry.Filter(func(s string) bool { return s == "Carbon-Based" || s == "Machine" })
	require.Len(t, carbonish, 2)
	assert.Equal(t, "Carbon-Based", Seek(carbonish, 3))
	assert.Equal(t, "Machine", Seek(carbonish, 12))
}

func TestSearch(t *testing.T) {
	b := Breakpoints{{0.5, 1.6}, {1.0, 1.0}, {2.0, 0.6}}
	assert.Equal(t, 1.6, Search(b, 0.1))
	assert.Equal(t, 1.0, Search(b, 1.0))
	assert.Equal(t, 0.6, Search(b, 1.5))
	assert.Equal(t, 0.6, Search(b, 9))
	assert.Equal(t, 0.0, Search(nil, 1))
}

func TestChoiceUsesWeightSlices(t *testing.T) {
	opts := []string{"a", "b", "c"}
	weights := []float64{1, 2, 1}

	r := New(NewScript(1).WithFractions(0.1, 0.5, 0.9))
	first, err := Choice(r, opts, weights)
	require.NoError(t, err)
	second, _ := Choice(r, opts, weights)
	third, _ := Choice(r, opts, weights)

	assert.Equal(t, "a", first)
	assert.Equal(t, "b", second)
	assert.Equal(t, "c", third)
}

func TestChoiceSkipsZeroWeights(t *testing.T) {
	r := New(NewScript(1).WithFractions(0))
	got, err := Choice(r, []string{"never", "always"}, []float64{0, 1})
	require.NoError(t, err)
	assert.Equal(t, "always", got)
}

func TestChoiceErrors(t *testing.T) {
	r := NewRoller(1)
	_, err := Choice(r, []string{}, []float64{})
	assert.True(t, errors.Is(err, ErrEmptyOptions))

	_, err = Choice(r, []string{"a"}, []float64{1, 2})
	assert.True(t, errors.Is(err, ErrWeightsMismatch))
}
