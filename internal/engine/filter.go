package engine

// Selection holds the dashboard's three optional equality filters. An
// empty string leaves that dimension unconstrained. Predicates are
// AND-combined; matching is exact and case-sensitive on the raw category
// strings, so an unknown value simply selects zero rows.
type Selection struct {
	ProductType   string
	LocationTier  string
	StoreCategory string
}

// IsEmpty reports whether no predicate is active.
func (s Selection) IsEmpty() bool {
	return s.ProductType == "" && s.LocationTier == "" && s.StoreCategory == ""
}

// Key renders the selection as a stable cache-key component.
func (s Selection) Key() string {
	return s.ProductType + "\x1f" + s.LocationTier + "\x1f" + s.StoreCategory
}

// View is an ordered subset of the store's rows. Holds row indices into
// the parent store, never copies column data.
type View struct {
	store *ColumnStore
	rows  []int32
}

// All returns the unfiltered view over every row, in file order.
func (cs *ColumnStore) All() *View {
	rows := make([]int32, cs.Len())
	for i := range rows {
		rows[i] = int32(i)
	}
	return &View{store: cs, rows: rows}
}

// Apply returns the view of rows matching every active predicate. Pure
// function of (store, selection): same inputs, same output, which is what
// makes the result memoizable. Row order is preserved.
func (cs *ColumnStore) Apply(sel Selection) *View {
	if sel.IsEmpty() {
		return cs.All()
	}

	// Resolve predicate values to dictionary IDs up front. A value absent
	// from a dictionary matches nothing.
	type predicate struct {
		ids  []int32
		want int32
	}
	var preds []predicate
	add := func(f Field, value string) bool {
		if value == "" {
			return true
		}
		want, ok := dictIndex(cs.dict(f), value)
		if !ok {
			return false
		}
		preds = append(preds, predicate{ids: cs.ids(f), want: want})
		return true
	}
	if !add(FieldItemType, sel.ProductType) ||
		!add(FieldLocationTier, sel.LocationTier) ||
		!add(FieldOutletType, sel.StoreCategory) {
		return &View{store: cs, rows: []int32{}}
	}

	// Single pass, all predicates checked per row.
	rows := make([]int32, 0, cs.Len())
	for i, n := 0, cs.Len(); i < n; i++ {
		pass := true
		for _, p := range preds {
			if p.ids[i] != p.want {
				pass = false
				break
			}
		}
		if pass {
			rows = append(rows, int32(i))
		}
	}
	return &View{store: cs, rows: rows}
}

func dictIndex(dict []string, value string) (int32, bool) {
	for id, s := range dict {
		if s == value {
			return int32(id), true
		}
	}
	return 0, false
}

// Len returns the number of rows in the view.
func (v *View) Len() int { return len(v.rows) }

// Store exposes the backing store (dictionaries, reference year).
func (v *View) Store() *ColumnStore { return v.store }
