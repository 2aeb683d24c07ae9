package stock

import (
	"context"

	"github.com/google/uuid"
	"github.com/workermill-examples/shipapi/internal/application/audit"
	"github.com/workermill-examples/shipapi/internal/application/dto"
	"github.com/workermill-examples/shipapi/internal/domain"
	"github.com/workermill-examples/shipapi/internal/domain/entity"
	"github.com/workermill-examples/shipapi/internal/domain/repository"
)

// DefaultMinThreshold umbral de alerta cuando la fila se crea sin indicarlo.
const DefaultMinThreshold = 10

// StockUseCase existencias por bodega, transferencias atómicas y alertas.
type StockUseCase struct {
	stockRepo     repository.StockLevelRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	tx            TxRunner
}

// NewStockUseCase construye el caso de uso de stock.
func NewStockUseCase(
	stockRepo repository.StockLevelRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	tx TxRunner,
) *StockUseCase {
	return &StockUseCase{
		stockRepo:     stockRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		tx:            tx,
	}
}

// Upsert fija cantidad (y opcionalmente umbral) de un producto en una bodega.
// El producto y la bodega deben existir; la bodega debe estar activa.
// La escritura y su entrada de auditoría van en la misma transacción.
func (uc *StockUseCase) Upsert(ctx context.Context, actor audit.Actor, productID, warehouseID string, in dto.UpsertStockRequest) (*dto.StockLevelResponse, error) {
	if _, err := uc.productRepo.GetByID(productID); err != nil {
		return nil, err
	}
	warehouse, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return nil, err
	}
	if !warehouse.IsActive {
		return nil, domain.ErrWarehouseInactive
	}

	var result *entity.StockLevel
	err = uc.tx.Run(ctx, func(
		stockRepo repository.StockLevelRepository,
		_ repository.StockTransferRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		existing, err := stockRepo.GetForUpdate(productID, warehouseID)
		if err != nil {
			return err
		}

		level := &entity.StockLevel{
			ProductID:    productID,
			WarehouseID:  warehouseID,
			Quantity:     in.Quantity,
			MinThreshold: DefaultMinThreshold,
		}
		action := entity.AuditActionCreate
		changes := map[string]any{
			"quantity":      in.Quantity,
			"warehouse_id":  warehouseID,
			"min_threshold": level.MinThreshold,
		}
		if existing != nil {
			level.ID = existing.ID
			level.MinThreshold = existing.MinThreshold
			action = entity.AuditActionUpdate
			changes = map[string]any{}
			if existing.Quantity != in.Quantity {
				changes["quantity"] = audit.Diff(existing.Quantity, in.Quantity)
			}
		}
		if in.MinThreshold != nil && *in.MinThreshold != level.MinThreshold {
			if existing != nil {
				changes["min_threshold"] = audit.Diff(level.MinThreshold, *in.MinThreshold)
			} else {
				changes["min_threshold"] = *in.MinThreshold
			}
			level.MinThreshold = *in.MinThreshold
		}

		if err := stockRepo.Upsert(level); err != nil {
			return err
		}
		result = level
		if existing != nil && len(changes) == 0 {
			return nil
		}
		return auditRepo.Create(audit.NewEntry(actor, action, entity.ResourceStockLevel, level.ID, changes))
	})
	if err != nil {
		return nil, err
	}
	return toStockLevelResponse(result), nil
}

// Get obtiene las existencias de un producto en una bodega.
func (uc *StockUseCase) Get(productID, warehouseID string) (*dto.StockLevelResponse, error) {
	level, err := uc.stockRepo.Get(productID, warehouseID)
	if err != nil {
		return nil, err
	}
	if level == nil {
		return nil, domain.ErrNotFound
	}
	return toStockLevelResponse(level), nil
}

// ListByProduct devuelve las existencias de un producto en todas las bodegas.
func (uc *StockUseCase) ListByProduct(productID string) ([]dto.StockLevelResponse, error) {
	if _, err := uc.productRepo.GetByID(productID); err != nil {
		return nil, err
	}
	levels, err := uc.stockRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockLevelResponse, 0, len(levels))
	for _, l := range levels {
		out = append(out, *toStockLevelResponse(l))
	}
	return out, nil
}

// ListByWarehouse devuelve una página de existencias de una bodega.
func (uc *StockUseCase) ListByWarehouse(warehouseID string, page dto.PageRequest) (*dto.ListResponse[dto.StockLevelResponse], error) {
	if _, err := uc.warehouseRepo.GetByID(warehouseID); err != nil {
		return nil, err
	}
	page.Normalize()
	levels, total, err := uc.stockRepo.ListByWarehouse(warehouseID, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockLevelResponse, 0, len(levels))
	for _, l := range levels {
		items = append(items, *toStockLevelResponse(l))
	}
	resp := dto.NewListResponse(items, page, total)
	return &resp, nil
}

// Transfer mueve stock entre bodegas de forma atómica. Dentro de la
// transacción se bloquean ambas filas con FOR UPDATE en orden consistente
// (por id de bodega) para evitar deadlocks entre transferencias cruzadas.
// El débito, el crédito, el registro de transferencia y la auditoría se
// confirman juntos o no se confirma nada.
func (uc *StockUseCase) Transfer(ctx context.Context, actor audit.Actor, in dto.TransferStockRequest) (*dto.TransferResponse, error) {
	if in.FromWarehouseID == in.ToWarehouseID {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.productRepo.GetByID(in.ProductID); err != nil {
		return nil, err
	}
	for _, warehouseID := range []string{in.FromWarehouseID, in.ToWarehouseID} {
		warehouse, err := uc.warehouseRepo.GetByID(warehouseID)
		if err != nil {
			return nil, err
		}
		if !warehouse.IsActive {
			return nil, domain.ErrWarehouseInactive
		}
	}

	transfer := &entity.StockTransfer{
		ID:              uuid.NewString(),
		ProductID:       in.ProductID,
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		Quantity:        in.Quantity,
		InitiatedBy:     actor.UserID,
		Notes:           in.Notes,
	}

	err := uc.tx.Run(ctx, func(
		stockRepo repository.StockLevelRepository,
		transferRepo repository.StockTransferRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		// La fila destino puede no existir todavía; crearla antes de bloquear
		// para que ambos locks se adquieran por SELECT FOR UPDATE.
		if err := stockRepo.EnsureRow(in.ProductID, in.ToWarehouseID); err != nil {
			return err
		}

		locked := map[string]*entity.StockLevel{}
		for _, warehouseID := range lockOrder(in.FromWarehouseID, in.ToWarehouseID) {
			level, err := stockRepo.GetForUpdate(in.ProductID, warehouseID)
			if err != nil {
				return err
			}
			locked[warehouseID] = level
		}

		source := locked[in.FromWarehouseID]
		if source == nil || source.Quantity < in.Quantity {
			return domain.ErrInsufficientStock
		}
		dest := locked[in.ToWarehouseID]

		source.Quantity -= in.Quantity
		dest.Quantity += in.Quantity
		if err := stockRepo.Upsert(source); err != nil {
			return err
		}
		if err := stockRepo.Upsert(dest); err != nil {
			return err
		}
		if err := transferRepo.Create(transfer); err != nil {
			return err
		}

		changes := map[string]any{
			"product_id":        in.ProductID,
			"from_warehouse_id": in.FromWarehouseID,
			"to_warehouse_id":   in.ToWarehouseID,
			"quantity":          in.Quantity,
		}
		return auditRepo.Create(audit.NewEntry(actor, entity.AuditActionTransfer, entity.ResourceStockLevel, transfer.ID, changes))
	})
	if err != nil {
		return nil, err
	}
	return toTransferResponse(transfer), nil
}

// Alerts devuelve una página de filas bajo umbral, mayor déficit primero.
func (uc *StockUseCase) Alerts(page dto.PageRequest) (*dto.ListResponse[dto.StockAlertResponse], error) {
	page.Normalize()
	alerts, total, err := uc.stockRepo.ListAlerts(page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockAlertResponse, 0, len(alerts))
	for _, a := range alerts {
		items = append(items, dto.StockAlertResponse{
			ProductID:         a.ProductID,
			ProductName:       a.ProductName,
			ProductSKU:        a.ProductSKU,
			WarehouseID:       a.WarehouseID,
			WarehouseName:     a.WarehouseName,
			WarehouseLocation: a.WarehouseLocation,
			Quantity:          a.Quantity,
			MinThreshold:      a.MinThreshold,
			Deficit:           a.MinThreshold - a.Quantity,
		})
	}
	resp := dto.NewListResponse(items, page, total)
	return &resp, nil
}

// lockOrder devuelve los ids de bodega en orden estable para adquirir locks.
func lockOrder(a, b string) []string {
	if a < b {
		return []string{a, b}
	}
	return []string{b, a}
}

func toStockLevelResponse(s *entity.StockLevel) *dto.StockLevelResponse {
	return &dto.StockLevelResponse{
		ID:           s.ID,
		ProductID:    s.ProductID,
		WarehouseID:  s.WarehouseID,
		Quantity:     s.Quantity,
		MinThreshold: s.MinThreshold,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func toTransferResponse(t *entity.StockTransfer) *dto.TransferResponse {
	return &dto.TransferResponse{
		ID:              t.ID,
		ProductID:       t.ProductID,
		FromWarehouseID: t.FromWarehouseID,
		ToWarehouseID:   t.ToWarehouseID,
		Quantity:        t.Quantity,
		InitiatedBy:     t.InitiatedBy,
		Notes:           t.Notes,
		CreatedAt:       t.CreatedAt,
	}
}
