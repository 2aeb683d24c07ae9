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

// CategoryUseCase CRUD de categorías con auditoría en la misma transacción.
type CategoryUseCase struct {
	categoryRepo repository.CategoryRepository
	tx           CatalogTxRunner
}

// NewCategoryUseCase construye el caso de uso de categorías.
func NewCategoryUseCase(categoryRepo repository.CategoryRepository, tx CatalogTxRunner) *CategoryUseCase {
	return &CategoryUseCase{categoryRepo: categoryRepo, tx: tx}
}

// Create crea una categoría. Si ParentID viene, el padre debe existir.
func (uc *CategoryUseCase) Create(ctx context.Context, actor audit.Actor, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.ParentID != nil {
		if _, err := uc.categoryRepo.GetByID(*in.ParentID); err != nil {
			return nil, err
		}
	}

	category := &entity.Category{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		ParentID:    in.ParentID,
	}

	err := uc.tx.RunCatalog(ctx, func(
		categoryRepo repository.CategoryRepository,
		_ repository.ProductRepository,
		_ repository.WarehouseRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		if err := categoryRepo.Create(category); err != nil {
			return err
		}
		changes := map[string]any{"name": category.Name}
		if category.Description != nil {
			changes["description"] = *category.Description
		}
		if category.ParentID != nil {
			changes["parent_id"] = *category.ParentID
		}
		return auditRepo.Create(audit.NewEntry(actor, entity.AuditActionCreate, entity.ResourceCategory, category.ID, changes))
	})
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// Get obtiene una categoría por id.
func (uc *CategoryUseCase) Get(id string) (*dto.CategoryResponse, error) {
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// List devuelve una página de categorías.
func (uc *CategoryUseCase) List(page dto.PageRequest) (*dto.ListResponse[dto.CategoryResponse], error) {
	page.Normalize()
	categories, total, err := uc.categoryRepo.List(page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		items = append(items, *toCategoryResponse(c))
	}
	resp := dto.NewListResponse(items, page, total)
	return &resp, nil
}

// Update aplica un patch parcial y audita solo los campos que cambiaron.
func (uc *CategoryUseCase) Update(ctx context.Context, actor audit.Actor, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	changes := map[string]any{}
	if in.Name != nil && *in.Name != category.Name {
		changes["name"] = audit.Diff(category.Name, *in.Name)
		category.Name = *in.Name
	}
	if in.Description != nil && !strPtrEq(in.Description, category.Description) {
		changes["description"] = audit.Diff(strPtrVal(category.Description), *in.Description)
		category.Description = in.Description
	}
	if in.ParentID != nil && !strPtrEq(in.ParentID, category.ParentID) {
		if *in.ParentID == id {
			return nil, domain.ErrInvalidInput
		}
		if _, err := uc.categoryRepo.GetByID(*in.ParentID); err != nil {
			return nil, err
		}
		changes["parent_id"] = audit.Diff(strPtrVal(category.ParentID), *in.ParentID)
		category.ParentID = in.ParentID
	}
	if len(changes) == 0 {
		return toCategoryResponse(category), nil
	}

	err = uc.tx.RunCatalog(ctx, func(
		categoryRepo repository.CategoryRepository,
		_ repository.ProductRepository,
		_ repository.WarehouseRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		if err := categoryRepo.Update(category); err != nil {
			return err
		}
		return auditRepo.Create(audit.NewEntry(actor, entity.AuditActionUpdate, entity.ResourceCategory, category.ID, changes))
	})
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// Delete elimina la categoría. Bloqueado con ErrCategoryInUse si tiene productos asignados.
func (uc *CategoryUseCase) Delete(ctx context.Context, actor audit.Actor, id string) error {
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	n, err := uc.categoryRepo.CountProducts(id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrCategoryInUse
	}

	return uc.tx.RunCatalog(ctx, func(
		categoryRepo repository.CategoryRepository,
		_ repository.ProductRepository,
		_ repository.WarehouseRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		if err := categoryRepo.Delete(id); err != nil {
			return err
		}
		changes := map[string]any{"name": category.Name}
		return auditRepo.Create(audit.NewEntry(actor, entity.AuditActionDelete, entity.ResourceCategory, id, changes))
	})
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		ParentID:    c.ParentID,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func strPtrEq(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func strPtrVal(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
