package repository

import "github.com/workermill-examples/shipapi/internal/domain/entity"

// StockTransferRepository puerto de persistencia para transferencias (append-only).
type StockTransferRepository interface {
	Create(transfer *entity.StockTransfer) error
	GetByID(id string) (*entity.StockTransfer, error)
}
