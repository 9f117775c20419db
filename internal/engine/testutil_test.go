package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const fixtureHeader = "ProductID,Weight,FatContent,ProductVisibility,ProductType,MRP,OutletID,EstablishmentYear,OutletSize,LocationType,OutletType,OutletSales"

// loadTestStore parses fixture rows through the real loader so tests
// exercise the same column mapping and missing-value handling as prod.
func loadTestStore(t *testing.T, rows ...string) *ColumnStore {
	t.Helper()
	data := fixtureHeader + "\n" + strings.Join(rows, "\n") + "\n"
	store, err := ReadColumnar(strings.NewReader(data), 2025)
	require.NoError(t, err)
	return store
}

// Three-row scenario used across the filter and aggregation tests:
//
//	Row 0: Dairy,  Tier 1, sales 100, est 1999, size Medium
//	Row 1: Dairy,  Tier 2, sales 50,  est 2009, size Small
//	Row 2: Snacks, Tier 1, sales 200, est 1999, size missing
func scenarioStore(t *testing.T) *ColumnStore {
	t.Helper()
	return loadTestStore(t,
		"P1,9.3,Low Fat,0.016,Dairy,249.81,OUT049,1999,Medium,Tier 1,Supermarket Type1,100",
		"P2,5.92,reg,0.019,Dairy,48.27,OUT018,2009,Small,Tier 2,Supermarket Type2,50",
		"P3,17.5,LF,0.017,Snacks,141.62,OUT049,1999,,Tier 1,Grocery Store,200",
	)
}
