package models

// FilterOptions lists the selectable values for the sidebar filters,
// sorted ascending. Computed from the full dataset, never from a view.
type FilterOptions struct {
	ProductTypes    []string `json:"product_types"`
	CityTiers       []string `json:"city_tiers"`
	StoreCategories []string `json:"store_categories"`
}

// Summary is the key-metrics block. When HasData is false the numeric
// fields are zero and the frontend shows "no data for this selection".
type Summary struct {
	HasData              bool    `json:"has_data"`
	TotalObservations    int     `json:"total_observations"`
	ProductTypes         int     `json:"product_types"`
	HighestMRP           float64 `json:"highest_mrp"`
	MinEstablishmentYear int     `json:"min_establishment_year"`
	MaxEstablishmentYear int     `json:"max_establishment_year"`
	AvgStoreSales        float64 `json:"avg_store_sales"`
	TotalStoreSales      float64 `json:"total_store_sales"`
	AvgMRP               float64 `json:"avg_mrp"`
}

// MissingColumn is one row of the missing-values table.
type MissingColumn struct {
	Column     string  `json:"column"`
	Missing    int     `json:"missing_values"`
	Percentage float64 `json:"percentage"`
}

// CategoryCount is a (label, row count) pair for count charts.
type CategoryCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// CategoryValue is a (label, aggregate) pair for sum/mean charts.
type CategoryValue struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// HistogramBin is one bucket of a distribution chart.
type HistogramBin struct {
	Lo    float64 `json:"lo"`
	Hi    float64 `json:"hi"`
	Count int     `json:"count"`
}

// AgePoint is one point of the average-sales-by-store-age line.
type AgePoint struct {
	Age      int     `json:"age"`
	AvgSales float64 `json:"avg_sales"`
}

// TypePerformance is one bubble of the product performance matrix.
type TypePerformance struct {
	Type          string  `json:"type"`
	AvgMRP        float64 `json:"avg_mrp"`
	AvgVisibility float64 `json:"avg_visibility"`
	AvgSales      float64 `json:"avg_sales"`
	Count         int     `json:"count"`
}

// Charts bundles every chart dataset for the current selection.
type Charts struct {
	HasData             bool              `json:"has_data"`
	SizeDistribution    []CategoryCount   `json:"size_distribution"`
	TierCounts          []CategoryCount   `json:"tier_counts"`
	AvgSalesByStoreType []CategoryValue   `json:"avg_sales_by_store_type"`
	SalesHistogram      []HistogramBin    `json:"sales_histogram"`
	VisibilityHistogram []HistogramBin    `json:"visibility_histogram"`
	FatContentSales     []CategoryValue   `json:"fat_content_sales"`
	TierSales           []CategoryValue   `json:"tier_sales"`
	TypeSalesTotal      []CategoryValue   `json:"type_sales_total"`
	TypeSalesShare      []CategoryValue   `json:"type_sales_share"`
	StoreAgeSales       []AgePoint        `json:"store_age_sales"`
	PerformanceMatrix   []TypePerformance `json:"performance_matrix"`
}

// Record is one filtered row as served to the scatter/table views.
// Nullable cells marshal as JSON null.
type Record struct {
	ItemID            string   `json:"item_id"`
	Weight            *float64 `json:"weight"`
	FatContent        string   `json:"fat_content"`
	Visibility        float64  `json:"visibility"`
	ItemType          string   `json:"item_type"`
	MRP               float64  `json:"mrp"`
	OutletID          string   `json:"outlet_id"`
	EstablishmentYear int      `json:"establishment_year"`
	OutletSize        *string  `json:"outlet_size"`
	LocationTier      string   `json:"location_tier"`
	OutletType        string   `json:"outlet_type"`
	Sales             float64  `json:"outlet_sales"`
}

// ModelSummary is the precomputed regression report. Static artifact:
// nothing here is ever recomputed.
type ModelSummary struct {
	RSquared    float64 `json:"r_squared"`
	AdjRSquared float64 `json:"adj_r_squared"`
	FStatistic  float64 `json:"f_statistic"`
	Details     string  `json:"details"`
}
