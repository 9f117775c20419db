package engine

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Source CSV headers mapped onto canonical fields. The mapping is applied
// exactly once, here; everything downstream sees only canonical fields.
var sourceColumns = map[Field]string{
	FieldItemID:            "ProductID",
	FieldWeight:            "Weight",
	FieldFatContent:        "FatContent",
	FieldVisibility:        "ProductVisibility",
	FieldItemType:          "ProductType",
	FieldMRP:               "MRP",
	FieldOutletID:          "OutletID",
	FieldEstablishmentYear: "EstablishmentYear",
	FieldOutletSize:        "OutletSize",
	FieldLocationTier:      "LocationType",
	FieldOutletType:        "OutletType",
	FieldSales:             "OutletSales",
}

// loadedFields fixes the schema-check order so error messages are stable.
var loadedFields = []Field{
	FieldItemID, FieldWeight, FieldFatContent, FieldVisibility,
	FieldItemType, FieldMRP, FieldOutletID, FieldEstablishmentYear,
	FieldOutletSize, FieldLocationTier, FieldOutletType, FieldSales,
}

// dictBuilder interns category strings into dense int32 IDs.
type dictBuilder struct {
	idx  map[string]int32
	list []string
}

func newDictBuilder() *dictBuilder {
	return &dictBuilder{idx: make(map[string]int32)}
}

func (d *dictBuilder) intern(s string) int32 {
	if id, ok := d.idx[s]; ok {
		return id
	}
	id := int32(len(d.list))
	d.list = append(d.list, s)
	d.idx[s] = id
	return id
}

// LoadColumnar reads the source CSV at path into a ColumnStore. A missing
// expected column is fatal (nothing is served from a half-understood file);
// malformed numeric cells degrade to missing values instead.
func LoadColumnar(path string, referenceYear int) (*ColumnStore, error) {
	start := time.Now()
	log.Println("Loading data (columnar)...")

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	store, err := ReadColumnar(f, referenceYear)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	log.Printf("Load Complete. Rows: %d. Time: %v", store.Len(), time.Since(start))
	return store, nil
}

// ReadColumnar parses CSV data from r into a dictionary-encoded store.
func ReadColumnar(r io.Reader, referenceYear int) (*ColumnStore, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	colIdx := make(map[Field]int, len(loadedFields))
	for _, field := range loadedFields {
		name := sourceColumns[field]
		found := -1
		for i, h := range header {
			if h == name {
				found = i
				break
			}
		}
		if found < 0 {
			return nil, fmt.Errorf("missing column %q", name)
		}
		colIdx[field] = found
	}

	s := &ColumnStore{
		SnapshotID:    uuid.NewString(),
		ReferenceYear: int32(referenceYear),
	}

	item := newDictBuilder()
	fat := newDictBuilder()
	typ := newDictBuilder()
	outlet := newDictBuilder()
	size := newDictBuilder()
	tier := newDictBuilder()
	otype := newDictBuilder()

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		s.Weights = append(s.Weights, parseFloatOrNaN(rec[colIdx[FieldWeight]]))
		s.Visibility = append(s.Visibility, parseFloatOrNaN(rec[colIdx[FieldVisibility]]))
		s.MRPs = append(s.MRPs, parseFloatOrNaN(rec[colIdx[FieldMRP]]))
		s.Sales = append(s.Sales, parseFloatOrNaN(rec[colIdx[FieldSales]]))
		s.EstYears = append(s.EstYears, parseYear(rec[colIdx[FieldEstablishmentYear]]))

		// Category strings are interned raw: filtering matches exact
		// values as they appear in the file.
		s.ItemIDs = append(s.ItemIDs, internCell(item, rec[colIdx[FieldItemID]]))
		s.FatIDs = append(s.FatIDs, internCell(fat, rec[colIdx[FieldFatContent]]))
		s.TypeIDs = append(s.TypeIDs, internCell(typ, rec[colIdx[FieldItemType]]))
		s.OutletIDs = append(s.OutletIDs, internCell(outlet, rec[colIdx[FieldOutletID]]))
		s.SizeIDs = append(s.SizeIDs, internCell(size, rec[colIdx[FieldOutletSize]]))
		s.TierIDs = append(s.TierIDs, internCell(tier, rec[colIdx[FieldLocationTier]]))
		s.OutletTypeIDs = append(s.OutletTypeIDs, internCell(otype, rec[colIdx[FieldOutletType]]))
	}

	s.ItemDict = item.list
	s.FatDict = fat.list
	s.TypeDict = typ.list
	s.OutletDict = outlet.list
	s.SizeDict = size.list
	s.TierDict = tier.list
	s.OutletTypeDict = otype.list

	return s, nil
}

// parseFloatOrNaN maps empty or malformed numeric cells to NaN so they are
// excluded from aggregates rather than aborting the load.
func parseFloatOrNaN(cell string) float64 {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func parseYear(cell string) int32 {
	cell = strings.TrimSpace(cell)
	y, err := strconv.ParseInt(cell, 10, 32)
	if err != nil || y <= 0 {
		return missingYear
	}
	return int32(y)
}

func internCell(d *dictBuilder, cell string) int32 {
	if strings.TrimSpace(cell) == "" {
		return missingID
	}
	return d.intern(cell)
}
