package repo

// Stock status filter values for inventory listing.
const (
	StockStatusLow = "low"
	StockStatusOut = "out"
	StockStatusOK  = "ok"
)

type InventoryFilter struct {
	Search      string // matches SKU, product name or category
	Category    string
	StockStatus string // "low", "out", "ok" or empty
	SortBy      string // whitelisted column, defaults to updated_at
	SortOrder   string // "asc" or "desc", defaults to desc
}
