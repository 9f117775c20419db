package api

import (
	"net/http"
	"sort"
	"strconv"
	"sync"

	"github.com/labstack/echo/v4"

	"martdash/internal/engine"
	"martdash/internal/models"
)

// Handler serves dashboard data. Starts with no store so the server can
// accept connections while the dataset loads in the background; endpoints
// answer 503 until SetStore is called.
type Handler struct {
	mu    sync.RWMutex
	cache *engine.FilterCache
}

func NewHandler(store *engine.ColumnStore) *Handler {
	h := &Handler{}
	if store != nil {
		h.cache = engine.NewFilterCache(store)
	}
	return h
}

// SetStore swaps in a freshly loaded dataset, with a new filter cache
// keyed on its snapshot ID.
func (h *Handler) SetStore(store *engine.ColumnStore) {
	h.mu.Lock()
	h.cache = engine.NewFilterCache(store)
	h.mu.Unlock()
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/filters", h.GetFilterOptions)
	api.GET("/summary", h.GetSummary)
	api.GET("/missing", h.GetMissingValues)
	api.GET("/charts", h.GetCharts)
	api.GET("/records", h.GetRecords)
	api.GET("/model", h.GetModelSummary)
}

// --- HANDLERS ---

func (h *Handler) ready() (*engine.FilterCache, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cache, h.cache != nil
}

func getPaginationParams(c echo.Context, defaultLimit int) (int, int) {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

func selectionFromQuery(c echo.Context) engine.Selection {
	return engine.Selection{
		ProductType:   c.QueryParam("product_type"),
		LocationTier:  c.QueryParam("city_tier"),
		StoreCategory: c.QueryParam("store_category"),
	}
}

var errLoading = echo.NewHTTPError(http.StatusServiceUnavailable, "dataset is still loading")

// GetFilterOptions returns the selectable filter values, sorted, always
// computed over the full dataset regardless of any active selection.
func (h *Handler) GetFilterOptions(c echo.Context) error {
	cache, ok := h.ready()
	if !ok {
		return errLoading
	}
	all := cache.Store().All()

	opts := models.FilterOptions{
		ProductTypes:    all.DistinctValues(engine.FieldItemType),
		CityTiers:       all.DistinctValues(engine.FieldLocationTier),
		StoreCategories: all.DistinctValues(engine.FieldOutletType),
	}
	sort.Strings(opts.ProductTypes)
	sort.Strings(opts.CityTiers)
	sort.Strings(opts.StoreCategories)
	return c.JSON(http.StatusOK, opts)
}

func (h *Handler) GetSummary(c echo.Context) error {
	cache, ok := h.ready()
	if !ok {
		return errLoading
	}
	view := cache.Get(selectionFromQuery(c))
	return c.JSON(http.StatusOK, engine.BuildSummary(view))
}

func (h *Handler) GetMissingValues(c echo.Context) error {
	cache, ok := h.ready()
	if !ok {
		return errLoading
	}
	view := cache.Get(selectionFromQuery(c))
	return c.JSON(http.StatusOK, engine.BuildMissing(view))
}

func (h *Handler) GetCharts(c echo.Context) error {
	cache, ok := h.ready()
	if !ok {
		return errLoading
	}
	view := cache.Get(selectionFromQuery(c))
	return c.JSON(http.StatusOK, engine.BuildCharts(view))
}

// GetRecords returns a page of filtered raw rows for the scatter and
// table views.
func (h *Handler) GetRecords(c echo.Context) error {
	cache, ok := h.ready()
	if !ok {
		return errLoading
	}
	view := cache.Get(selectionFromQuery(c))

	limit, offset := getPaginationParams(c, view.Len())
	records, total := view.Records(limit, offset)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":   records,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *Handler) GetModelSummary(c echo.Context) error {
	if _, ok := h.ready(); !ok {
		return errLoading
	}
	return c.JSON(http.StatusOK, engine.StaticModelSummary())
}
