package repo

// Stats is the aggregate block returned alongside inventory listings and the
// dashboard endpoint.
type Stats struct {
	TotalItems      int     `json:"total_items"`
	TotalValue      float64 `json:"total_value"`
	LowStockCount   int     `json:"low_stock_count"`
	OutOfStockCount int     `json:"out_of_stock_count"`
	TotalMovements  int     `json:"total_movements"`
	OpenAlertCount  int     `json:"open_alert_count"`
}

type StatsRepository interface {
	GetStats() (Stats, error)
}
