package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyEmptySelectionIsIdentity(t *testing.T) {
	store := scenarioStore(t)

	view := store.Apply(Selection{})
	assert.Equal(t, store.Len(), view.Count())
	assert.Equal(t, store.All().rows, view.rows)
}

func TestApplySinglePredicate(t *testing.T) {
	store := scenarioStore(t)

	view := store.Apply(Selection{ProductType: "Dairy"})
	require.Equal(t, 2, view.Count())
	// Original row order is preserved.
	assert.Equal(t, []int32{0, 1}, view.rows)
}

func TestApplyConjunction(t *testing.T) {
	store := scenarioStore(t)

	view := store.Apply(Selection{ProductType: "Dairy", LocationTier: "Tier 1"})
	require.Equal(t, 1, view.Count())
	assert.Equal(t, []int32{0}, view.rows)

	// AND of independent equality predicates is commutative: narrowing by
	// either predicate first gives the same row set.
	byTier := store.Apply(Selection{LocationTier: "Tier 1"})
	byType := store.Apply(Selection{ProductType: "Dairy"})
	assert.Subset(t, byTier.rows, view.rows)
	assert.Subset(t, byType.rows, view.rows)
}

func TestApplyUnmatchedValueYieldsEmptyView(t *testing.T) {
	store := scenarioStore(t)

	view := store.Apply(Selection{ProductType: "Beverages"})
	assert.Equal(t, 0, view.Count())

	// Matching is case-sensitive on raw values.
	view = store.Apply(Selection{ProductType: "dairy"})
	assert.Equal(t, 0, view.Count())
}

func TestApplyNeverGrowsTheRowSet(t *testing.T) {
	store := scenarioStore(t)

	selections := []Selection{
		{},
		{ProductType: "Dairy"},
		{LocationTier: "Tier 2"},
		{StoreCategory: "Grocery Store"},
		{ProductType: "Snacks", LocationTier: "Tier 1", StoreCategory: "Grocery Store"},
	}
	for _, sel := range selections {
		assert.LessOrEqual(t, store.Apply(sel).Count(), store.Len())
	}
}

func TestApplyIsPure(t *testing.T) {
	store := scenarioStore(t)
	sel := Selection{ProductType: "Dairy", StoreCategory: "Supermarket Type1"}

	first := store.Apply(sel)
	second := store.Apply(sel)
	assert.Equal(t, first.rows, second.rows)
	assert.Equal(t, store.Len(), len(store.Sales), "apply must not touch the store")
}
