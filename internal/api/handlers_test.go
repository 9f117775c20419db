package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"martdash/internal/engine"
	"martdash/internal/models"
)

const fixtureCSV = `ProductID,Weight,FatContent,ProductVisibility,ProductType,MRP,OutletID,EstablishmentYear,OutletSize,LocationType,OutletType,OutletSales
P1,9.3,Low Fat,0.016,Dairy,249.81,OUT049,1999,Medium,Tier 1,Supermarket Type1,100
P2,5.92,reg,0.019,Dairy,48.27,OUT018,2009,Small,Tier 2,Supermarket Type2,50
P3,17.5,LF,0.017,Snacks,141.62,OUT049,1999,,Tier 1,Grocery Store,200
`

func newTestServer(t *testing.T) (*echo.Echo, *Handler) {
	t.Helper()
	store, err := engine.ReadColumnar(strings.NewReader(fixtureCSV), 2025)
	require.NoError(t, err)

	e := echo.New()
	h := NewHandler(store)
	h.RegisterRoutes(e)
	return e, h
}

func get(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestEndpointsUnavailableWhileLoading(t *testing.T) {
	e := echo.New()
	h := NewHandler(nil)
	h.RegisterRoutes(e)

	for _, target := range []string{"/api/filters", "/api/summary", "/api/missing", "/api/charts", "/api/records", "/api/model"} {
		rec := get(e, target)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, target)
	}
}

func TestGetFilterOptions(t *testing.T) {
	e, _ := newTestServer(t)

	rec := get(e, "/api/filters")
	require.Equal(t, http.StatusOK, rec.Code)

	var opts models.FilterOptions
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &opts))
	assert.Equal(t, []string{"Dairy", "Snacks"}, opts.ProductTypes)
	assert.Equal(t, []string{"Tier 1", "Tier 2"}, opts.CityTiers)
	assert.Equal(t, []string{"Grocery Store", "Supermarket Type1", "Supermarket Type2"}, opts.StoreCategories)
}

func TestGetSummaryFiltered(t *testing.T) {
	e, _ := newTestServer(t)

	rec := get(e, "/api/summary?product_type=Dairy")
	require.Equal(t, http.StatusOK, rec.Code)

	var s models.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s))
	assert.True(t, s.HasData)
	assert.Equal(t, 2, s.TotalObservations)
	assert.Equal(t, 150.0, s.TotalStoreSales)
}

func TestGetSummaryNoData(t *testing.T) {
	e, _ := newTestServer(t)

	rec := get(e, "/api/summary?product_type=Dairy&city_tier=Tier+3")
	require.Equal(t, http.StatusOK, rec.Code)

	var s models.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s))
	assert.False(t, s.HasData, "empty result is a valid state, not an error")
	assert.Equal(t, 0, s.TotalObservations)
}

func TestGetChartsFiltered(t *testing.T) {
	e, _ := newTestServer(t)

	rec := get(e, "/api/charts?city_tier=Tier+1")
	require.Equal(t, http.StatusOK, rec.Code)

	var c models.Charts
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))
	require.True(t, c.HasData)
	require.Len(t, c.TypeSalesTotal, 2)
	assert.Equal(t, "Snacks", c.TypeSalesTotal[0].Label)
}

func TestGetRecordsPaginated(t *testing.T) {
	e, _ := newTestServer(t)

	rec := get(e, "/api/records?limit=1&offset=1")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data   []models.Record `json:"data"`
		Total  int             `json:"total"`
		Limit  int             `json:"limit"`
		Offset int             `json:"offset"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Total)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "P2", body.Data[0].ItemID)
}

func TestGetMissingValues(t *testing.T) {
	e, _ := newTestServer(t)

	rec := get(e, "/api/missing")
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []models.MissingColumn
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "outlet_size", rows[1].Column)
	assert.Equal(t, 1, rows[1].Missing)
}

func TestGetModelSummary(t *testing.T) {
	e, _ := newTestServer(t)

	rec := get(e, "/api/model")
	require.Equal(t, http.StatusOK, rec.Code)

	var m models.ModelSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	assert.Equal(t, 0.553, m.RSquared)
	assert.Equal(t, 424.8, m.FStatistic)
}

func TestSetStoreSwapsDataset(t *testing.T) {
	e := echo.New()
	h := NewHandler(nil)
	h.RegisterRoutes(e)

	assert.Equal(t, http.StatusServiceUnavailable, get(e, "/api/summary").Code)

	store, err := engine.ReadColumnar(strings.NewReader(fixtureCSV), 2025)
	require.NoError(t, err)
	h.SetStore(store)

	assert.Equal(t, http.StatusOK, get(e, "/api/summary").Code)
}
