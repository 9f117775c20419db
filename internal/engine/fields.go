package engine

// Field identifies one canonical dataset column. Aggregations address
// columns through this enum so a bad column reference fails at compile
// time instead of at render time.
type Field int

const (
	FieldItemID Field = iota
	FieldWeight
	FieldFatContent
	FieldVisibility
	FieldItemType
	FieldMRP
	FieldOutletID
	FieldEstablishmentYear
	FieldOutletSize
	FieldLocationTier
	FieldOutletType
	FieldSales

	// FieldStoreAge is derived per row: reference year minus
	// establishment year. Grouped and averaged like a real column.
	FieldStoreAge
)

var fieldNames = [...]string{
	FieldItemID:            "item_id",
	FieldWeight:            "item_weight",
	FieldFatContent:        "fat_content",
	FieldVisibility:        "visibility",
	FieldItemType:          "item_type",
	FieldMRP:               "mrp",
	FieldOutletID:          "outlet_id",
	FieldEstablishmentYear: "establishment_year",
	FieldOutletSize:        "outlet_size",
	FieldLocationTier:      "location_tier",
	FieldOutletType:        "outlet_type",
	FieldSales:             "outlet_sales",
	FieldStoreAge:          "store_age",
}

func (f Field) String() string {
	if int(f) < len(fieldNames) {
		return fieldNames[f]
	}
	return "unknown"
}

// Numeric reports whether the field carries float/int values rather than
// category labels.
func (f Field) Numeric() bool {
	switch f {
	case FieldWeight, FieldVisibility, FieldMRP, FieldEstablishmentYear, FieldSales, FieldStoreAge:
		return true
	}
	return false
}
