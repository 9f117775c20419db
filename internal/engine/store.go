package engine

import (
	"math"
	"strconv"
)

// Missing markers. Numeric columns use NaN, dictionary columns use id -1,
// establishment year uses 0 (no outlet predates year 1).
const (
	missingID   int32 = -1
	missingYear int32 = 0
)

// ColumnStore holds the dataset in Struct-of-Arrays format. Loaded once,
// read-only afterwards: every filter or aggregate produces a new view, the
// store itself is never mutated.
type ColumnStore struct {
	// SnapshotID identifies this load. Filter results are memoized on
	// (SnapshotID, Selection), so two loads never share cache entries.
	SnapshotID string

	// ReferenceYear is the fixed base for store-age derivation. It comes
	// from config, never from the wall clock, so results are reproducible.
	ReferenceYear int32

	// Numeric Columns (Flat Arrays, NaN = missing)
	Weights    []float64
	Visibility []float64
	MRPs       []float64
	Sales      []float64
	EstYears   []int32 // 0 = missing

	// Dictionary Encoded IDs (0..N, -1 = missing)
	ItemIDs       []int32
	FatIDs        []int32
	TypeIDs       []int32
	OutletIDs     []int32
	SizeIDs       []int32
	TierIDs       []int32
	OutletTypeIDs []int32

	// Dictionaries (ID -> String)
	ItemDict       []string
	FatDict        []string
	TypeDict       []string
	OutletDict     []string
	SizeDict       []string
	TierDict       []string
	OutletTypeDict []string
}

// Len returns the fixed row count of the store.
func (cs *ColumnStore) Len() int { return len(cs.Sales) }

// ids returns the dictionary-encoded column for a categorical field.
func (cs *ColumnStore) ids(f Field) []int32 {
	switch f {
	case FieldItemID:
		return cs.ItemIDs
	case FieldFatContent:
		return cs.FatIDs
	case FieldItemType:
		return cs.TypeIDs
	case FieldOutletID:
		return cs.OutletIDs
	case FieldOutletSize:
		return cs.SizeIDs
	case FieldLocationTier:
		return cs.TierIDs
	case FieldOutletType:
		return cs.OutletTypeIDs
	}
	return nil
}

// dict returns the ID -> string dictionary for a categorical field.
func (cs *ColumnStore) dict(f Field) []string {
	switch f {
	case FieldItemID:
		return cs.ItemDict
	case FieldFatContent:
		return cs.FatDict
	case FieldItemType:
		return cs.TypeDict
	case FieldOutletID:
		return cs.OutletDict
	case FieldOutletSize:
		return cs.SizeDict
	case FieldLocationTier:
		return cs.TierDict
	case FieldOutletType:
		return cs.OutletTypeDict
	}
	return nil
}

// numericAt reads a numeric field at a row. ok is false for missing cells
// (parse failures at load time, absent establishment years).
func (cs *ColumnStore) numericAt(f Field, row int32) (float64, bool) {
	switch f {
	case FieldWeight:
		v := cs.Weights[row]
		return v, !math.IsNaN(v)
	case FieldVisibility:
		v := cs.Visibility[row]
		return v, !math.IsNaN(v)
	case FieldMRP:
		v := cs.MRPs[row]
		return v, !math.IsNaN(v)
	case FieldSales:
		v := cs.Sales[row]
		return v, !math.IsNaN(v)
	case FieldEstablishmentYear:
		y := cs.EstYears[row]
		return float64(y), y != missingYear
	case FieldStoreAge:
		y := cs.EstYears[row]
		return float64(cs.ReferenceYear - y), y != missingYear
	}
	return 0, false
}

// labelAt reads a field at a row as a grouping key. Categorical fields go
// through their dictionary (fat content is synonym-normalized here, so no
// group-by can ever see "LF" and "Low Fat" as separate groups). Numeric
// fields render as decimal strings; missing cells yield "".
func (cs *ColumnStore) labelAt(f Field, row int32) string {
	if f.Numeric() {
		v, ok := cs.numericAt(f, row)
		if !ok {
			return ""
		}
		if f == FieldEstablishmentYear || f == FieldStoreAge {
			return strconv.Itoa(int(v))
		}
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	id := cs.ids(f)[row]
	if id == missingID {
		return ""
	}
	label := cs.dict(f)[id]
	if f == FieldFatContent {
		return NormalizeFatContent(label)
	}
	return label
}

// missingAt reports whether the field's cell at row is null/absent.
func (cs *ColumnStore) missingAt(f Field, row int32) bool {
	if f.Numeric() {
		_, ok := cs.numericAt(f, row)
		return !ok
	}
	return cs.ids(f)[row] == missingID
}

// NormalizeFatContent merges the dataset's fat-content synonyms into the
// two canonical labels. Idempotent; unrecognized values pass through.
func NormalizeFatContent(v string) string {
	switch v {
	case "LF", "low fat":
		return "Low Fat"
	case "reg":
		return "Regular"
	}
	return v
}
