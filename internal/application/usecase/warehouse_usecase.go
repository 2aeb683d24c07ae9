package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/workermill-examples/shipapi/internal/application/audit"
	"github.com/workermill-examples/shipapi/internal/application/dto"
	"github.com/workermill-examples/shipapi/internal/domain"
	"github.com/workermill-examples/shipapi/internal/domain/entity"
	"github.com/workermill-examples/shipapi/internal/domain/repository"
)

// WarehouseUseCase CRUD de bodegas. No hay borrado físico: se desactivan
// vía Update para conservar el historial de stock y transferencias.
type WarehouseUseCase struct {
	warehouseRepo repository.WarehouseRepository
	tx            CatalogTxRunner
}

// NewWarehouseUseCase construye el caso de uso de bodegas.
func NewWarehouseUseCase(warehouseRepo repository.WarehouseRepository, tx CatalogTxRunner) *WarehouseUseCase {
	return &WarehouseUseCase{warehouseRepo: warehouseRepo, tx: tx}
}

// Create crea una bodega activa. El nombre debe ser único y la capacidad positiva.
func (uc *WarehouseUseCase) Create(ctx context.Context, actor audit.Actor, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	warehouse := &entity.Warehouse{
		ID:       uuid.NewString(),
		Name:     in.Name,
		Location: in.Location,
		Capacity: in.Capacity,
		IsActive: true,
	}

	err := uc.tx.RunCatalog(ctx, func(
		_ repository.CategoryRepository,
		_ repository.ProductRepository,
		warehouseRepo repository.WarehouseRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		if err := warehouseRepo.Create(warehouse); err != nil {
			return err
		}
		changes := map[string]any{
			"name":     warehouse.Name,
			"location": warehouse.Location,
			"capacity": warehouse.Capacity,
		}
		return auditRepo.Create(audit.NewEntry(actor, entity.AuditActionCreate, entity.ResourceWarehouse, warehouse.ID, changes))
	})
	if err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// Get obtiene la bodega con su resumen de ocupación.
func (uc *WarehouseUseCase) Get(id string) (*dto.WarehouseDetailResponse, error) {
	warehouse, err := uc.warehouseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	summary, err := uc.warehouseRepo.StockSummary(id)
	if err != nil {
		return nil, err
	}

	utilization := 0.0
	if warehouse.Capacity > 0 {
		utilization = float64(summary.TotalQuantity) / float64(warehouse.Capacity) * 100
	}
	return &dto.WarehouseDetailResponse{
		WarehouseResponse:      *toWarehouseResponse(warehouse),
		TotalProducts:          summary.TotalProducts,
		TotalQuantity:          summary.TotalQuantity,
		CapacityUtilizationPct: utilization,
	}, nil
}

// List devuelve una página de bodegas.
func (uc *WarehouseUseCase) List(page dto.PageRequest) (*dto.ListResponse[dto.WarehouseResponse], error) {
	page.Normalize()
	warehouses, total, err := uc.warehouseRepo.List(page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(warehouses))
	for _, w := range warehouses {
		items = append(items, *toWarehouseResponse(w))
	}
	resp := dto.NewListResponse(items, page, total)
	return &resp, nil
}

// Update aplica un patch parcial (incluye activar/desactivar) y audita el diff.
func (uc *WarehouseUseCase) Update(ctx context.Context, actor audit.Actor, id string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.warehouseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	changes := map[string]any{}
	if in.Name != nil && *in.Name != warehouse.Name {
		changes["name"] = audit.Diff(warehouse.Name, *in.Name)
		warehouse.Name = *in.Name
	}
	if in.Location != nil && *in.Location != warehouse.Location {
		changes["location"] = audit.Diff(warehouse.Location, *in.Location)
		warehouse.Location = *in.Location
	}
	if in.Capacity != nil && *in.Capacity != warehouse.Capacity {
		if *in.Capacity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		changes["capacity"] = audit.Diff(warehouse.Capacity, *in.Capacity)
		warehouse.Capacity = *in.Capacity
	}
	if in.IsActive != nil && *in.IsActive != warehouse.IsActive {
		changes["is_active"] = audit.Diff(warehouse.IsActive, *in.IsActive)
		warehouse.IsActive = *in.IsActive
	}
	if len(changes) == 0 {
		return toWarehouseResponse(warehouse), nil
	}

	err = uc.tx.RunCatalog(ctx, func(
		_ repository.CategoryRepository,
		_ repository.ProductRepository,
		warehouseRepo repository.WarehouseRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		if err := warehouseRepo.Update(warehouse); err != nil {
			return err
		}
		return auditRepo.Create(audit.NewEntry(actor, entity.AuditActionUpdate, entity.ResourceWarehouse, warehouse.ID, changes))
	})
	if err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	return &dto.WarehouseResponse{
		ID:        w.ID,
		Name:      w.Name,
		Location:  w.Location,
		Capacity:  w.Capacity,
		IsActive:  w.IsActive,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}
