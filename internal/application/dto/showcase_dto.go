package dto

// ShowcaseStatsResponse conteos públicos para la landing page.
type ShowcaseStatsResponse struct {
	Products        int `json:"products"`
	Categories      int `json:"categories"`
	Warehouses      int `json:"warehouses"`
	StockAlerts     int `json:"stock_alerts"`
	StockTransfers  int `json:"stock_transfers"`
	AuditLogEntries int `json:"audit_log_entries"`
}

// HealthResponse estado del servicio. Siempre responde 200; Database
// refleja la conectividad real ("connected" o "disconnected").
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Version  string `json:"version"`
}
