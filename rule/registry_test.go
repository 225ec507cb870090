package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDescriptor(t *testing.T, number int, category string, sev Severity) *Descriptor {
	t.Helper()
	cfg := Config{Prefix: "TEST"}
	d, err := cfg.NewDescriptor(number, category, sev)
	require.NoError(t, err)
	return d
}

func TestBuilderIndexes(t *testing.T) {
	d1 := newTestDescriptor(t, 1, "A", SeverityError)
	d2 := newTestDescriptor(t, 2, "A", SeverityWarning)
	d3 := newTestDescriptor(t, 3, "B", SeverityInfo)

	b := NewBuilder()
	require.NoError(t, b.Add("alpha", d1))
	require.NoError(t, b.Add("alpha", d2))
	require.NoError(t, b.Add("beta", d3))
	reg := b.Build()

	got, ok := reg.ByID("TEST0002")
	require.True(t, ok)
	assert.Same(t, d2, got)

	assert.Equal(t, []*Descriptor{d1, d2}, reg.ByAnalyzer("alpha"))
	assert.Equal(t, []*Descriptor{d3}, reg.ByAnalyzer("beta"))
	assert.Equal(t, []AnalyzerKey{"alpha", "beta"}, reg.Analyzers())
	assert.Equal(t, []*Descriptor{d1, d2, d3}, reg.All())
	assert.Equal(t, 3, reg.Len())

	owner, ok := reg.OwnerOf("TEST0003")
	assert.True(t, ok)
	assert.Equal(t, AnalyzerKey("beta"), owner)
	_, ok = reg.OwnerOf("TEST0009")
	assert.False(t, ok)
}

func TestBuilderRejectsDuplicates(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Add("alpha", newTestDescriptor(t, 1, "A", SeverityError)))

	err := b.Add("beta", newTestDescriptor(t, 1, "B", SeverityInfo))
	assert.ErrorIs(t, err, ErrDuplicateID)

	// The failed add must leave the indexes untouched.
	reg := b.Build()
	assert.Empty(t, reg.ByAnalyzer("beta"))
	assert.Equal(t, 1, reg.Len())
}

func TestBuilderRejectsBadInput(t *testing.T) {
	b := NewBuilder()
	assert.ErrorIs(t, b.Add("", newTestDescriptor(t, 1, "A", SeverityError)), ErrNoOwner)
	assert.ErrorIs(t, b.Add("alpha", &Descriptor{ID: "bad"}), ErrInvalidID)

	b.Build()
	assert.Error(t, b.Add("alpha", newTestDescriptor(t, 2, "A", SeverityError)))
}

func TestBuilderMustAddPanics(t *testing.T) {
	b := NewBuilder()
	d := newTestDescriptor(t, 1, "A", SeverityError)
	b.MustAdd("alpha", d)
	assert.Panics(t, func() { b.MustAdd("alpha", d) })
}

func TestRegistryMisses(t *testing.T) {
	reg := NewBuilder().Build()

	d, ok := reg.ByID("TEST0001")
	assert.False(t, ok)
	assert.Nil(t, d)

	ds := reg.ByAnalyzer("unknown")
	assert.NotNil(t, ds)
	assert.Empty(t, ds)
	assert.Empty(t, reg.Grouped())
	assert.Empty(t, reg.All())
}

func TestGroupedIsSnapshot(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Add("alpha", newTestDescriptor(t, 1, "A", SeverityError)))
	reg := b.Build()

	snap := reg.Grouped()
	snap["alpha"][0] = nil
	snap["beta"] = []*Descriptor{}

	assert.NotNil(t, reg.ByAnalyzer("alpha")[0])
	assert.NotContains(t, reg.Grouped(), AnalyzerKey("beta"))
}

func TestByAnalyzerAppendDoesNotAlias(t *testing.T) {
	d1 := newTestDescriptor(t, 1, "A", SeverityError)
	d2 := newTestDescriptor(t, 2, "A", SeverityWarning)
	d3 := newTestDescriptor(t, 3, "A", SeverityInfo)
	extra1 := newTestDescriptor(t, 8, "A", SeverityInfo)
	extra2 := newTestDescriptor(t, 9, "A", SeverityInfo)

	b := NewBuilder()
	for _, d := range []*Descriptor{d1, d2, d3} {
		require.NoError(t, b.Add("alpha", d))
	}
	reg := b.Build()

	ds := reg.ByAnalyzer("alpha")
	assert.Equal(t, len(ds), cap(ds))

	x := append(reg.ByAnalyzer("alpha"), extra1)
	y := append(reg.ByAnalyzer("alpha"), extra2)
	assert.Equal(t, []*Descriptor{d1, d2, d3, extra1}, x)
	assert.Equal(t, []*Descriptor{d1, d2, d3, extra2}, y)
	assert.Equal(t, []*Descriptor{d1, d2, d3}, reg.ByAnalyzer("alpha"))
}
