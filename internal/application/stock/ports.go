package stock

import (
	"context"

	"github.com/workermill-examples/shipapi/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repos atados a ella.
// Si fn devuelve error se hace rollback; si no, commit. Las escrituras de
// stock, transferencia y auditoría deben ser atómicas entre sí.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockLevelRepository,
		transferRepo repository.StockTransferRepository,
		auditRepo repository.AuditLogRepository,
	) error) error
}
