package engine

import (
	"math"
	"sort"
	"strconv"

	"martdash/internal/models"
)

const histogramBins = 50

// BuildSummary computes the key-metrics block for a view. An empty view
// comes back with HasData=false and zeroed metrics, never an error.
func BuildSummary(v *View) models.Summary {
	s := models.Summary{
		TotalObservations: v.Count(),
		ProductTypes:      v.DistinctCount(FieldItemType),
	}
	if s.TotalObservations == 0 {
		return s
	}
	s.HasData = true
	if x, ok := v.Max(FieldMRP); ok {
		s.HighestMRP = x
	}
	if x, ok := v.Min(FieldEstablishmentYear); ok {
		s.MinEstablishmentYear = int(x)
	}
	if x, ok := v.Max(FieldEstablishmentYear); ok {
		s.MaxEstablishmentYear = int(x)
	}
	if x, ok := v.Mean(FieldSales); ok {
		s.AvgStoreSales = x
	}
	s.TotalStoreSales = v.Sum(FieldSales)
	if x, ok := v.Mean(FieldMRP); ok {
		s.AvgMRP = x
	}
	return s
}

// BuildMissing computes the missing-values table. Item weight and outlet
// size are the two columns the source data actually has holes in.
func BuildMissing(v *View) []models.MissingColumn {
	cols := []Field{FieldWeight, FieldOutletSize}
	out := make([]models.MissingColumn, 0, len(cols))
	for _, f := range cols {
		out = append(out, models.MissingColumn{
			Column:     f.String(),
			Missing:    v.MissingCount(f),
			Percentage: roundTo2(v.MissingRate(f) * 100),
		})
	}
	return out
}

// BuildCharts assembles every chart dataset for a view.
func BuildCharts(v *View) models.Charts {
	c := models.Charts{}
	if v.Count() == 0 {
		return c
	}
	c.HasData = true

	// Outlet size distribution. This is the one chart where a missing
	// size shows up as an explicit "Unknown" slice; every other aggregate
	// treats it as null.
	for _, g := range v.GroupCount(FieldOutletSize) {
		label := g.Key
		if label == "" {
			label = "Unknown"
		}
		c.SizeDistribution = append(c.SizeDistribution, models.CategoryCount{Label: label, Count: g.Count})
	}

	for _, g := range v.GroupCount(FieldLocationTier) {
		c.TierCounts = append(c.TierCounts, models.CategoryCount{Label: g.Key, Count: g.Count})
	}

	for _, g := range v.GroupMean(FieldOutletType, FieldSales) {
		c.AvgSalesByStoreType = append(c.AvgSalesByStoreType, models.CategoryValue{Label: g.Key, Value: g.Value})
	}

	c.SalesHistogram = toModelBins(v.Histogram(FieldSales, histogramBins))
	c.VisibilityHistogram = toModelBins(v.Histogram(FieldVisibility, histogramBins))

	// Fat-content synonyms are already merged by the group-by itself.
	for _, g := range v.GroupSum(FieldFatContent, FieldSales) {
		c.FatContentSales = append(c.FatContentSales, models.CategoryValue{Label: g.Key, Value: g.Value})
	}

	for _, g := range v.GroupSum(FieldLocationTier, FieldSales) {
		c.TierSales = append(c.TierSales, models.CategoryValue{Label: g.Key, Value: g.Value})
	}

	typeSales := v.GroupSum(FieldItemType, FieldSales)
	var totalSales float64
	for _, g := range typeSales {
		totalSales += g.Value
	}
	for _, g := range typeSales {
		share := 0.0
		if totalSales > 0 {
			share = roundTo2(g.Value / totalSales * 100)
		}
		c.TypeSalesShare = append(c.TypeSalesShare, models.CategoryValue{Label: g.Key, Value: share})
	}
	ranked := make([]Group, len(typeSales))
	copy(ranked, typeSales)
	SortGroupsByValueDesc(ranked)
	for _, g := range ranked {
		c.TypeSalesTotal = append(c.TypeSalesTotal, models.CategoryValue{Label: g.Key, Value: g.Value})
	}

	// Average sales by store age, ascending age. Rows with an unknown
	// establishment year have no age and are skipped.
	for _, g := range v.GroupMean(FieldStoreAge, FieldSales) {
		age, err := strconv.Atoi(g.Key)
		if err != nil {
			continue
		}
		c.StoreAgeSales = append(c.StoreAgeSales, models.AgePoint{Age: age, AvgSales: g.Value})
	}
	sort.Slice(c.StoreAgeSales, func(i, j int) bool { return c.StoreAgeSales[i].Age < c.StoreAgeSales[j].Age })

	// Performance matrix: four group-bys over the same group field share
	// one insertion order, so zipping by index is safe.
	mrp := v.GroupMean(FieldItemType, FieldMRP)
	vis := v.GroupMean(FieldItemType, FieldVisibility)
	sales := v.GroupMean(FieldItemType, FieldSales)
	counts := v.GroupCount(FieldItemType)
	for i := range counts {
		c.PerformanceMatrix = append(c.PerformanceMatrix, models.TypePerformance{
			Type:          counts[i].Key,
			AvgMRP:        roundTo2(mrp[i].Value),
			AvgVisibility: roundTo2(vis[i].Value),
			AvgSales:      roundTo2(sales[i].Value),
			Count:         counts[i].Count,
		})
	}

	return c
}

// Records returns a limit/offset page of the view's rows plus the total
// row count. Order matches the source file.
func (v *View) Records(limit, offset int) ([]models.Record, int) {
	total := len(v.rows)
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > total {
		limit = total
	}
	if offset >= total {
		return []models.Record{}, total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	out := make([]models.Record, 0, end-offset)
	for _, row := range v.rows[offset:end] {
		out = append(out, v.store.record(row))
	}
	return out, total
}

func (cs *ColumnStore) record(row int32) models.Record {
	raw := func(f Field) string {
		id := cs.ids(f)[row]
		if id == missingID {
			return ""
		}
		return cs.dict(f)[id]
	}
	r := models.Record{
		ItemID:       raw(FieldItemID),
		FatContent:   raw(FieldFatContent),
		Visibility:   nanToZero(cs.Visibility[row]),
		ItemType:     raw(FieldItemType),
		MRP:          nanToZero(cs.MRPs[row]),
		OutletID:     raw(FieldOutletID),
		LocationTier: raw(FieldLocationTier),
		OutletType:   raw(FieldOutletType),
		Sales:        nanToZero(cs.Sales[row]),
	}
	if w := cs.Weights[row]; !math.IsNaN(w) {
		r.Weight = &w
	}
	if cs.SizeIDs[row] != missingID {
		size := cs.SizeDict[cs.SizeIDs[row]]
		r.OutletSize = &size
	}
	if y := cs.EstYears[row]; y != missingYear {
		r.EstablishmentYear = int(y)
	}
	return r
}

// nanToZero keeps missing cells out of the JSON encoder, which rejects NaN.
func nanToZero(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}

func toModelBins(bins []HistogramBin) []models.HistogramBin {
	out := make([]models.HistogramBin, len(bins))
	for i, b := range bins {
		out[i] = models.HistogramBin{Lo: b.Lo, Hi: b.Hi, Count: b.Count}
	}
	return out
}

// roundTo2 rounds to 2 decimal places.
func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

// StaticModelSummary returns the precomputed OLS report shown on the
// dashboard. Fitted offline; the backend never recomputes it.
func StaticModelSummary() models.ModelSummary {
	return models.ModelSummary{
		RSquared:    0.553,
		AdjRSquared: 0.552,
		FStatistic:  424.8,
		Details:     modelSummaryDetails,
	}
}

const modelSummaryDetails = `
==============================================================================
Dep. Variable:             StoreSales   R-squared:                       0.553
Model:                            OLS   Adj. R-squared:                  0.552
Method:                 Least Squares   F-statistic:                     424.8
Date:                Sat, 20 Sep 2025   Prob (F-statistic):               0.00
Time:                        17:41:10   Log-Likelihood:                -54402.
No. Observations:                6532   AIC:                         1.088e+05
Df Residuals:                    6512   BIC:                         1.090e+05
Df Model:                          19
Covariance Type:            nonrobust
==============================================================================
`
