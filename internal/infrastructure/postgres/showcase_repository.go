package postgres

import (
	"context"
	"fmt"

	"github.com/workermill-examples/shipapi/internal/domain/repository"
)

var _ repository.ShowcaseRepository = (*ShowcaseRepo)(nil)

// ShowcaseRepo lecturas agregadas para la landing page pública.
type ShowcaseRepo struct {
	q Querier
}

// NewShowcaseRepository construye el adaptador de estadísticas públicas.
func NewShowcaseRepository(q Querier) *ShowcaseRepo {
	return &ShowcaseRepo{q: q}
}

// Stats cuenta entidades en una sola consulta con subqueries.
func (r *ShowcaseRepo) Stats() (*repository.ShowcaseStats, error) {
	query := `
		SELECT
			(SELECT count(*) FROM products WHERE is_active),
			(SELECT count(*) FROM categories),
			(SELECT count(*) FROM warehouses),
			(SELECT count(*) FROM stock_levels WHERE quantity < min_threshold),
			(SELECT count(*) FROM stock_transfers),
			(SELECT count(*) FROM audit_logs)`
	var s repository.ShowcaseStats
	err := r.q.QueryRow(context.Background(), query).Scan(
		&s.Products, &s.Categories, &s.Warehouses,
		&s.StockAlerts, &s.StockTransfers, &s.AuditLogEntries,
	)
	if err != nil {
		return nil, fmt.Errorf("showcase stats: %w", err)
	}
	return &s, nil
}
