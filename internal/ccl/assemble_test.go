package ccl

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/sparseccl/internal/cells"
	"github.com/banshee-data/sparseccl/internal/testutil"
)

func TestAssemble_ScenarioC(t *testing.T) {
	t.Parallel()

	cs := testutil.SortedCells(pos{0, 0}, pos{1, 0}, pos{5, 5})
	m := cells.NewModule(4, 77)
	id := NewClusterID(m, 2, 0.5)

	out, err := Assemble(cs, Label(cs), id)
	require.NoError(t, err)
	require.Equal(t, 2, out.Len())

	got := Clusters(out)
	want := []Cluster{
		{ID: id, Cells: testutil.Cells(pos{0, 0}, pos{1, 0})},
		{ID: id, Cells: testutil.Cells(pos{5, 5})},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("clusters mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, uint64(4), got[0].ID.Event)
	assert.Equal(t, 2, got[0].ID.ModuleIndex)
	assert.Equal(t, uint64(77), got[0].ID.Geometry)
	assert.Equal(t, 0.5, got[0].ID.Threshold)
}

func TestAssemble_Empty(t *testing.T) {
	t.Parallel()

	out, err := Assemble(nil, Label(nil), ClusterID{})
	require.NoError(t, err)
	assert.Equal(t, 0, out.Len())
	assert.Empty(t, Clusters(out))
}

func TestAssemble_PartitionAndOrder(t *testing.T) {
	t.Parallel()

	for seed := uint64(1); seed <= 20; seed++ {
		cs := testutil.RandomCells(seed, 150, 20)
		lab := Label(cs)
		out, err := Assemble(cs, lab, ClusterID{})
		require.NoError(t, err)
		require.Equal(t, lab.Count, out.Len())

		// Every cluster is non-empty and matches its label size; walking
		// the original sequence and popping from each cluster in turn must
		// consume every cluster exactly.
		next := make([]int, lab.Count)
		items := out.Items()
		for l, cl := range items {
			assert.NotEmpty(t, cl)
			assert.Len(t, cl, lab.Sizes[l])
		}
		for i, c := range cs {
			l := lab.Labels[i]
			require.Less(t, next[l], len(items[l]))
			assert.True(t, cells.Equal(c, items[l][next[l]]), "seed %d cell %d out of order", seed, i)
			next[l]++
		}
		for l := range items {
			assert.Equal(t, len(items[l]), next[l])
		}
	}
}

func TestAssemble_ClustersDoNotAlias(t *testing.T) {
	t.Parallel()

	cs := testutil.SortedCells(pos{0, 0}, pos{5, 0}, pos{9, 0})
	out, err := Assemble(cs, Label(cs), ClusterID{})
	require.NoError(t, err)

	items := out.Items()
	require.Len(t, items, 3)
	grown := append(items[0], cells.Cell{Channel0: 42})
	assert.Len(t, grown, 2)
	assert.Equal(t, cells.ChannelID(5), items[1][0].Channel0, "append into one cluster leaked into the next")
}

func TestAssemble_InvalidLabeling(t *testing.T) {
	t.Parallel()

	cs := testutil.SortedCells(pos{0, 0}, pos{5, 0})
	tests := []struct {
		name string
		lab  Labeling
	}{
		{"too few labels", Labeling{Labels: []int{0}, Count: 1, Sizes: []int{1}}},
		{"sizes length", Labeling{Labels: []int{0, 1}, Count: 2, Sizes: []int{2}}},
		{"label out of range", Labeling{Labels: []int{0, 2}, Count: 2, Sizes: []int{1, 1}}},
		{"negative label", Labeling{Labels: []int{-1, 0}, Count: 2, Sizes: []int{1, 1}}},
		{"sizes do not sum", Labeling{Labels: []int{0, 1}, Count: 2, Sizes: []int{1, 2}}},
		{"empty label", Labeling{Labels: []int{0, 0}, Count: 2, Sizes: []int{2, 0}}},
		{"sizes disagree with labels", Labeling{Labels: []int{0, 0}, Count: 2, Sizes: []int{1, 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Assemble(cs, tt.lab, ClusterID{})
			assert.ErrorIs(t, err, ErrInvalidLabeling)
		})
	}
}

func TestSizes(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Sizes(nil))
	assert.Nil(t, Clusters(nil))

	cs := testutil.SortedCells(pos{0, 0}, pos{1, 0}, pos{5, 5})
	out, err := Assemble(cs, Label(cs), ClusterID{})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1}, Sizes(out))
}
