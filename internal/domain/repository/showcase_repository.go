package repository

// ShowcaseStats conteos agregados para la landing page pública.
type ShowcaseStats struct {
	Products        int
	Categories      int
	Warehouses      int
	StockAlerts     int
	StockTransfers  int
	AuditLogEntries int
}

// ShowcaseRepository puerto de lectura para las estadísticas públicas.
type ShowcaseRepository interface {
	Stats() (*ShowcaseStats, error)
}
