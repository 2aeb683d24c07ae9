package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/workermill-examples/shipapi/internal/domain"
	"github.com/workermill-examples/shipapi/internal/domain/entity"
	"github.com/workermill-examples/shipapi/internal/domain/repository"
)

var _ repository.StockTransferRepository = (*StockTransferRepo)(nil)

// StockTransferRepo implementación de StockTransferRepository sobre PostgreSQL (usable con pool o tx).
type StockTransferRepo struct {
	q Querier
}

// NewStockTransferRepository construye el adaptador de transferencias. Pasar pool o tx (Querier).
func NewStockTransferRepository(q Querier) *StockTransferRepo {
	return &StockTransferRepo{q: q}
}

// Create inserta el registro inmutable de la transferencia.
func (r *StockTransferRepo) Create(transfer *entity.StockTransfer) error {
	query := `
		INSERT INTO stock_transfers (id, product_id, from_warehouse_id, to_warehouse_id, quantity, initiated_by, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		RETURNING created_at`
	err := r.q.QueryRow(context.Background(), query,
		transfer.ID, transfer.ProductID, transfer.FromWarehouseID, transfer.ToWarehouseID,
		transfer.Quantity, transfer.InitiatedBy, transfer.Notes,
	).Scan(&transfer.CreatedAt)
	if err != nil {
		return fmt.Errorf("create stock transfer: %w", err)
	}
	return nil
}

// GetByID obtiene una transferencia por su id.
func (r *StockTransferRepo) GetByID(id string) (*entity.StockTransfer, error) {
	query := `
		SELECT id, product_id, from_warehouse_id, to_warehouse_id, quantity, initiated_by, notes, created_at
		FROM stock_transfers WHERE id = $1`
	var t entity.StockTransfer
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.ProductID, &t.FromWarehouseID, &t.ToWarehouseID,
		&t.Quantity, &t.InitiatedBy, &t.Notes, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get stock transfer: %w", err)
	}
	return &t, nil
}
