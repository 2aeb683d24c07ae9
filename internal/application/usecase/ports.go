package usecase

import (
	"context"

	"github.com/workermill-examples/shipapi/internal/domain/repository"
)

// CatalogTxRunner ejecuta fn en una transacción con los repos del catálogo,
// para que cada mutación y su entrada de auditoría se confirmen juntas.
type CatalogTxRunner interface {
	RunCatalog(ctx context.Context, fn func(
		categoryRepo repository.CategoryRepository,
		productRepo repository.ProductRepository,
		warehouseRepo repository.WarehouseRepository,
		auditRepo repository.AuditLogRepository,
	) error) error
}
