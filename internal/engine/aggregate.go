package engine

import (
	"sort"
)

// Group is one bucket of a group-by aggregate. Value carries the sum or
// mean depending on the operation; Count is always the bucket's row count.
type Group struct {
	Key   string
	Value float64
	Count int
}

// Count returns the view's row count. Zero for an empty view.
func (v *View) Count() int { return len(v.rows) }

// DistinctCount returns the number of unique non-missing values of the
// field within the view.
func (v *View) DistinctCount(f Field) int {
	seen := make(map[string]struct{})
	for _, row := range v.rows {
		key := v.store.labelAt(f, row)
		if key == "" {
			continue
		}
		seen[key] = struct{}{}
	}
	return len(seen)
}

// DistinctValues returns the unique non-missing values of the field in
// first-appearance order. Callers wanting sorted output sort the result.
func (v *View) DistinctValues(f Field) []string {
	seen := make(map[string]struct{})
	var values []string
	for _, row := range v.rows {
		key := v.store.labelAt(f, row)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; !ok {
			seen[key] = struct{}{}
			values = append(values, key)
		}
	}
	return values
}

// Max returns the largest value of a numeric field. ok is false when the
// view is empty or the field is missing in every row; callers must check
// it before using the value.
func (v *View) Max(f Field) (float64, bool) {
	var max float64
	found := false
	for _, row := range v.rows {
		x, ok := v.store.numericAt(f, row)
		if !ok {
			continue
		}
		if !found || x > max {
			max = x
			found = true
		}
	}
	return max, found
}

// Min returns the smallest value of a numeric field; ok as for Max.
func (v *View) Min(f Field) (float64, bool) {
	var min float64
	found := false
	for _, row := range v.rows {
		x, ok := v.store.numericAt(f, row)
		if !ok {
			continue
		}
		if !found || x < min {
			min = x
			found = true
		}
	}
	return min, found
}

// Sum returns the arithmetic sum of a numeric field. The sum over an
// empty view is 0, the identity.
func (v *View) Sum(f Field) float64 {
	var total float64
	for _, row := range v.rows {
		if x, ok := v.store.numericAt(f, row); ok {
			total += x
		}
	}
	return total
}

// Mean returns the arithmetic mean over non-missing cells; ok is false
// when there is nothing to average.
func (v *View) Mean(f Field) (float64, bool) {
	var total float64
	n := 0
	for _, row := range v.rows {
		if x, ok := v.store.numericAt(f, row); ok {
			total += x
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return total / float64(n), true
}

// MissingRate returns the fraction (0..1) of rows whose field cell is
// null/absent. 0 for an empty view, avoiding a zero division.
func (v *View) MissingRate(f Field) float64 {
	if len(v.rows) == 0 {
		return 0
	}
	missing := 0
	for _, row := range v.rows {
		if v.store.missingAt(f, row) {
			missing++
		}
	}
	return float64(missing) / float64(len(v.rows))
}

// MissingCount returns the number of rows whose field cell is null/absent.
func (v *View) MissingCount(f Field) int {
	missing := 0
	for _, row := range v.rows {
		if v.store.missingAt(f, row) {
			missing++
		}
	}
	return missing
}

// GroupSum maps each distinct value of groupF to the sum of valueF over
// its rows. Groups come back in first-appearance order; rows where the
// group key is missing bucket under the "" key. Single pass: running
// sum/count per group, no intermediate views.
func (v *View) GroupSum(groupF, valueF Field) []Group {
	return v.groupAccumulate(groupF, valueF, false)
}

// GroupMean maps each distinct value of groupF to the mean of valueF over
// its rows, counting only non-missing cells.
func (v *View) GroupMean(groupF, valueF Field) []Group {
	return v.groupAccumulate(groupF, valueF, true)
}

// GroupCount maps each distinct value of groupF to its row count.
func (v *View) GroupCount(groupF Field) []Group {
	idx := make(map[string]int)
	var groups []Group
	for _, row := range v.rows {
		key := v.store.labelAt(groupF, row)
		i, ok := idx[key]
		if !ok {
			i = len(groups)
			idx[key] = i
			groups = append(groups, Group{Key: key})
		}
		groups[i].Count++
		groups[i].Value = float64(groups[i].Count)
	}
	return groups
}

func (v *View) groupAccumulate(groupF, valueF Field, mean bool) []Group {
	type acc struct {
		sum float64
		n   int
	}
	idx := make(map[string]int)
	var order []string
	var accs []acc
	counts := make([]int, 0)

	for _, row := range v.rows {
		key := v.store.labelAt(groupF, row)
		i, ok := idx[key]
		if !ok {
			i = len(order)
			idx[key] = i
			order = append(order, key)
			accs = append(accs, acc{})
			counts = append(counts, 0)
		}
		counts[i]++
		if x, okv := v.store.numericAt(valueF, row); okv {
			accs[i].sum += x
			accs[i].n++
		}
	}

	groups := make([]Group, len(order))
	for i, key := range order {
		g := Group{Key: key, Count: counts[i], Value: accs[i].sum}
		if mean {
			if accs[i].n == 0 {
				g.Value = 0
			} else {
				g.Value = accs[i].sum / float64(accs[i].n)
			}
		}
		groups[i] = g
	}
	return groups
}

// SortGroupsByValueDesc orders groups by descending aggregate value. The
// engine hands out insertion-ordered groups; sorting is the caller's call.
func SortGroupsByValueDesc(groups []Group) {
	sort.Slice(groups, func(i, j int) bool { return groups[i].Value > groups[j].Value })
}

// HistogramBin is one bucket of a fixed-width histogram over [Lo, Hi).
// The last bin is closed on both ends.
type HistogramBin struct {
	Lo    float64
	Hi    float64
	Count int
}

// Histogram buckets the non-missing values of a numeric field into bins
// equal-width intervals between the observed min and max. Empty view or
// all-missing field yields nil; a constant field yields a single bin.
func (v *View) Histogram(f Field, bins int) []HistogramBin {
	if bins <= 0 {
		return nil
	}
	min, ok := v.Min(f)
	if !ok {
		return nil
	}
	max, _ := v.Max(f)
	if min == max {
		n := 0
		for _, row := range v.rows {
			if _, okv := v.store.numericAt(f, row); okv {
				n++
			}
		}
		return []HistogramBin{{Lo: min, Hi: max, Count: n}}
	}

	width := (max - min) / float64(bins)
	out := make([]HistogramBin, bins)
	for i := range out {
		out[i].Lo = min + float64(i)*width
		out[i].Hi = min + float64(i+1)*width
	}
	out[bins-1].Hi = max

	for _, row := range v.rows {
		x, okv := v.store.numericAt(f, row)
		if !okv {
			continue
		}
		i := int((x - min) / width)
		if i >= bins {
			i = bins - 1
		}
		out[i].Count++
	}
	return out
}
