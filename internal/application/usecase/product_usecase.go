package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/workermill-examples/shipapi/internal/application/audit"
	"github.com/workermill-examples/shipapi/internal/application/dto"
	"github.com/workermill-examples/shipapi/internal/domain"
	"github.com/workermill-examples/shipapi/internal/domain/entity"
	"github.com/workermill-examples/shipapi/internal/domain/repository"
)

// ProductUseCase CRUD de productos con soft delete y búsqueda full-text.
type ProductUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	tx           CatalogTxRunner
}

// NewProductUseCase construye el caso de uso de productos.
func NewProductUseCase(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository, tx CatalogTxRunner) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, categoryRepo: categoryRepo, tx: tx}
}

// Create crea un producto activo. La categoría debe existir; el SKU debe ser único.
func (uc *ProductUseCase) Create(ctx context.Context, actor audit.Actor, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.WeightKg != nil && !in.WeightKg.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.categoryRepo.GetByID(in.CategoryID); err != nil {
		return nil, err
	}

	product := &entity.Product{
		ID:          uuid.NewString(),
		Name:        in.Name,
		SKU:         in.SKU,
		Description: in.Description,
		Price:       in.Price,
		WeightKg:    in.WeightKg,
		CategoryID:  in.CategoryID,
		IsActive:    true,
	}

	err := uc.tx.RunCatalog(ctx, func(
		_ repository.CategoryRepository,
		productRepo repository.ProductRepository,
		_ repository.WarehouseRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		if err := productRepo.Create(product); err != nil {
			return err
		}
		changes := map[string]any{
			"name":        product.Name,
			"sku":         product.SKU,
			"price":       product.Price.String(),
			"category_id": product.CategoryID,
		}
		return auditRepo.Create(audit.NewEntry(actor, entity.AuditActionCreate, entity.ResourceProduct, product.ID, changes))
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Get obtiene un producto por id.
func (uc *ProductUseCase) Get(id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List devuelve una página de productos según filtros. Con search el orden
// es por relevancia; si no, por sort_by/sort_order (default created_at desc).
func (uc *ProductUseCase) List(in dto.ListProductsRequest) (*dto.ListResponse[dto.ProductResponse], error) {
	in.Normalize()

	filter := repository.ProductFilter{
		Search:     in.Search,
		CategoryID: in.CategoryID,
		IsActive:   in.IsActive,
		SortBy:     in.SortBy,
		SortOrder:  in.SortOrder,
	}
	if in.MinPrice != nil {
		d, err := decimal.NewFromString(*in.MinPrice)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		filter.MinPrice = &d
	}
	if in.MaxPrice != nil {
		d, err := decimal.NewFromString(*in.MaxPrice)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		filter.MaxPrice = &d
	}

	products, total, err := uc.productRepo.List(filter, in.Limit(), in.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, *toProductResponse(p))
	}
	resp := dto.NewListResponse(items, in.PageRequest, total)
	return &resp, nil
}

// Update aplica un patch parcial (el SKU es inmutable) y audita el diff.
func (uc *ProductUseCase) Update(ctx context.Context, actor audit.Actor, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	changes := map[string]any{}
	if in.Name != nil && *in.Name != product.Name {
		changes["name"] = audit.Diff(product.Name, *in.Name)
		product.Name = *in.Name
	}
	if in.Description != nil && !strPtrEq(in.Description, product.Description) {
		changes["description"] = audit.Diff(strPtrVal(product.Description), *in.Description)
		product.Description = in.Description
	}
	if in.Price != nil && !in.Price.Equal(product.Price) {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		changes["price"] = audit.Diff(product.Price.String(), in.Price.String())
		product.Price = *in.Price
	}
	if in.WeightKg != nil {
		if !in.WeightKg.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		if product.WeightKg == nil || !in.WeightKg.Equal(*product.WeightKg) {
			old := any(nil)
			if product.WeightKg != nil {
				old = product.WeightKg.String()
			}
			changes["weight_kg"] = audit.Diff(old, in.WeightKg.String())
			product.WeightKg = in.WeightKg
		}
	}
	if in.CategoryID != nil && *in.CategoryID != product.CategoryID {
		if _, err := uc.categoryRepo.GetByID(*in.CategoryID); err != nil {
			return nil, err
		}
		changes["category_id"] = audit.Diff(product.CategoryID, *in.CategoryID)
		product.CategoryID = *in.CategoryID
	}
	if in.IsActive != nil && *in.IsActive != product.IsActive {
		changes["is_active"] = audit.Diff(product.IsActive, *in.IsActive)
		product.IsActive = *in.IsActive
	}
	if len(changes) == 0 {
		return toProductResponse(product), nil
	}

	err = uc.tx.RunCatalog(ctx, func(
		_ repository.CategoryRepository,
		productRepo repository.ProductRepository,
		_ repository.WarehouseRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		if err := productRepo.Update(product); err != nil {
			return err
		}
		return auditRepo.Create(audit.NewEntry(actor, entity.AuditActionUpdate, entity.ResourceProduct, product.ID, changes))
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete soft delete: marca el producto inactivo y audita. Idempotente a nivel
// de API pero un producto ya inactivo no genera una segunda entrada.
func (uc *ProductUseCase) Delete(ctx context.Context, actor audit.Actor, id string) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if !product.IsActive {
		return nil
	}

	return uc.tx.RunCatalog(ctx, func(
		_ repository.CategoryRepository,
		productRepo repository.ProductRepository,
		_ repository.WarehouseRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		if err := productRepo.Deactivate(id); err != nil {
			return err
		}
		changes := map[string]any{"is_active": audit.Diff(true, false)}
		return auditRepo.Create(audit.NewEntry(actor, entity.AuditActionDelete, entity.ResourceProduct, id, changes))
	})
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		SKU:         p.SKU,
		Description: p.Description,
		Price:       p.Price,
		WeightKg:    p.WeightKg,
		CategoryID:  p.CategoryID,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
