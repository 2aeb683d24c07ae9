package stock_test

import (
	"context"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workermill-examples/shipapi/internal/application/audit"
	"github.com/workermill-examples/shipapi/internal/application/dto"
	"github.com/workermill-examples/shipapi/internal/application/stock"
	"github.com/workermill-examples/shipapi/internal/domain"
	"github.com/workermill-examples/shipapi/internal/domain/entity"
	"github.com/workermill-examples/shipapi/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeStockRepo struct {
	rows map[string]*entity.StockLevel
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{rows: map[string]*entity.StockLevel{}}
}

func key(productID, warehouseID string) string { return productID + "|" + warehouseID }

func (f *fakeStockRepo) Get(productID, warehouseID string) (*entity.StockLevel, error) {
	if r, ok := f.rows[key(productID, warehouseID)]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeStockRepo) GetForUpdate(productID, warehouseID string) (*entity.StockLevel, error) {
	return f.Get(productID, warehouseID)
}

func (f *fakeStockRepo) EnsureRow(productID, warehouseID string) error {
	k := key(productID, warehouseID)
	if _, ok := f.rows[k]; !ok {
		f.rows[k] = &entity.StockLevel{
			ID:           uuid.NewString(),
			ProductID:    productID,
			WarehouseID:  warehouseID,
			Quantity:     0,
			MinThreshold: stock.DefaultMinThreshold,
		}
	}
	return nil
}

func (f *fakeStockRepo) Upsert(level *entity.StockLevel) error {
	if level.ID == "" {
		level.ID = uuid.NewString()
	}
	cp := *level
	f.rows[key(level.ProductID, level.WarehouseID)] = &cp
	return nil
}

func (f *fakeStockRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.StockLevel, int, error) {
	var out []*entity.StockLevel
	for _, r := range f.rows {
		if r.WarehouseID == warehouseID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, len(out), nil
}

func (f *fakeStockRepo) ListByProduct(productID string) ([]*entity.StockLevel, error) {
	var out []*entity.StockLevel
	for _, r := range f.rows {
		if r.ProductID == productID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeStockRepo) ListAlerts(limit, offset int) ([]*repository.StockAlertItem, int, error) {
	var out []*repository.StockAlertItem
	for _, r := range f.rows {
		if r.Quantity < r.MinThreshold {
			out = append(out, &repository.StockAlertItem{
				ProductID:    r.ProductID,
				WarehouseID:  r.WarehouseID,
				Quantity:     r.Quantity,
				MinThreshold: r.MinThreshold,
			})
		}
	}
	// Mismo contrato de orden que la implementación real: mayor quiebre primero.
	sort.Slice(out, func(i, j int) bool {
		return (out[i].MinThreshold - out[i].Quantity) > (out[j].MinThreshold - out[j].Quantity)
	})
	return out, len(out), nil
}

func (f *fakeStockRepo) snapshot() map[string]entity.StockLevel {
	s := map[string]entity.StockLevel{}
	for k, v := range f.rows {
		s[k] = *v
	}
	return s
}

func (f *fakeStockRepo) restore(s map[string]entity.StockLevel) {
	f.rows = map[string]*entity.StockLevel{}
	for k, v := range s {
		cp := v
		f.rows[k] = &cp
	}
}

type fakeTransferRepo struct {
	transfers []*entity.StockTransfer
}

func (f *fakeTransferRepo) Create(t *entity.StockTransfer) error {
	cp := *t
	f.transfers = append(f.transfers, &cp)
	return nil
}

func (f *fakeTransferRepo) GetByID(id string) (*entity.StockTransfer, error) {
	for _, t := range f.transfers {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, domain.ErrNotFound
}

type fakeAuditRepo struct {
	entries []*entity.AuditLog
}

func (f *fakeAuditRepo) Create(l *entity.AuditLog) error {
	cp := *l
	f.entries = append(f.entries, &cp)
	return nil
}

func (f *fakeAuditRepo) List(filter repository.AuditLogFilter, limit, offset int) ([]*entity.AuditLog, int, error) {
	return f.entries, len(f.entries), nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (f *fakeProductRepo) Create(p *entity.Product) error { f.products[p.ID] = p; return nil }
func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := f.products[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}
func (f *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) { return nil, domain.ErrNotFound }
func (f *fakeProductRepo) List(filter repository.ProductFilter, limit, offset int) ([]*entity.Product, int, error) {
	return nil, 0, nil
}
func (f *fakeProductRepo) Update(p *entity.Product) error { return nil }
func (f *fakeProductRepo) Deactivate(id string) error     { return nil }

type fakeWarehouseRepo struct {
	warehouses map[string]*entity.Warehouse
}

func (f *fakeWarehouseRepo) Create(w *entity.Warehouse) error { f.warehouses[w.ID] = w; return nil }
func (f *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	if w, ok := f.warehouses[id]; ok {
		return w, nil
	}
	return nil, domain.ErrNotFound
}
func (f *fakeWarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, int, error) {
	return nil, 0, nil
}
func (f *fakeWarehouseRepo) Update(w *entity.Warehouse) error { return nil }
func (f *fakeWarehouseRepo) StockSummary(id string) (*repository.WarehouseSummary, error) {
	return &repository.WarehouseSummary{}, nil
}

// fakeTxRunner imita la atomicidad: si fn falla, restaura el estado previo.
type fakeTxRunner struct {
	stockRepo    *fakeStockRepo
	transferRepo *fakeTransferRepo
	auditRepo    *fakeAuditRepo
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockLevelRepository,
	transferRepo repository.StockTransferRepository,
	auditRepo repository.AuditLogRepository,
) error) error {
	snap := f.stockRepo.snapshot()
	transfersBefore := len(f.transferRepo.transfers)
	auditsBefore := len(f.auditRepo.entries)

	if err := fn(f.stockRepo, f.transferRepo, f.auditRepo); err != nil {
		f.stockRepo.restore(snap)
		f.transferRepo.transfers = f.transferRepo.transfers[:transfersBefore]
		f.auditRepo.entries = f.auditRepo.entries[:auditsBefore]
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Setup
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	uc        *stock.StockUseCase
	stockRepo *fakeStockRepo
	transfers *fakeTransferRepo
	audits    *fakeAuditRepo
	productID string
	northID   string
	southID   string
	actor     audit.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	productID := uuid.NewString()
	northID := uuid.NewString()
	southID := uuid.NewString()

	productRepo := &fakeProductRepo{products: map[string]*entity.Product{
		productID: {ID: productID, Name: "Lector", SKU: "ELEC-0001", IsActive: true},
	}}
	warehouseRepo := &fakeWarehouseRepo{warehouses: map[string]*entity.Warehouse{
		northID: {ID: northID, Name: "Norte", Capacity: 1000, IsActive: true},
		southID: {ID: southID, Name: "Sur", Capacity: 1000, IsActive: true},
	}}
	stockRepo := newFakeStockRepo()
	transfers := &fakeTransferRepo{}
	audits := &fakeAuditRepo{}
	tx := &fakeTxRunner{stockRepo: stockRepo, transferRepo: transfers, auditRepo: audits}

	return &fixture{
		uc:        stock.NewStockUseCase(stockRepo, productRepo, warehouseRepo, tx),
		stockRepo: stockRepo,
		transfers: transfers,
		audits:    audits,
		productID: productID,
		northID:   northID,
		southID:   southID,
		actor:     audit.Actor{UserID: uuid.NewString()},
	}
}

func (fx *fixture) seedStock(t *testing.T, warehouseID string, qty int) {
	t.Helper()
	require.NoError(t, fx.stockRepo.Upsert(&entity.StockLevel{
		ProductID:    fx.productID,
		WarehouseID:  warehouseID,
		Quantity:     qty,
		MinThreshold: 10,
	}))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Upsert
// ──────────────────────────────────────────────────────────────────────────────

func TestUpsert_CreaConUmbralPorDefecto(t *testing.T) {
	fx := newFixture(t)

	out, err := fx.uc.Upsert(context.Background(), fx.actor, fx.productID, fx.northID, dto.UpsertStockRequest{Quantity: 25})
	require.NoError(t, err)

	assert.Equal(t, 25, out.Quantity)
	assert.Equal(t, stock.DefaultMinThreshold, out.MinThreshold,
		"al crear sin umbral debe aplicarse el default")
	require.Len(t, fx.audits.entries, 1)
	assert.Equal(t, entity.AuditActionCreate, fx.audits.entries[0].Action)
}

func TestUpsert_ActualizaConservaUmbral(t *testing.T) {
	fx := newFixture(t)
	fx.seedStock(t, fx.northID, 5)

	out, err := fx.uc.Upsert(context.Background(), fx.actor, fx.productID, fx.northID, dto.UpsertStockRequest{Quantity: 30})
	require.NoError(t, err)

	assert.Equal(t, 30, out.Quantity)
	assert.Equal(t, 10, out.MinThreshold, "el umbral existente no debe cambiar si no se envía")
	require.Len(t, fx.audits.entries, 1)
	assert.Equal(t, entity.AuditActionUpdate, fx.audits.entries[0].Action)
	diff, ok := fx.audits.entries[0].Changes["quantity"].(map[string]any)
	require.True(t, ok, "el cambio de cantidad debe ser un par old/new")
	assert.Equal(t, 5, diff["old"])
	assert.Equal(t, 30, diff["new"])
}

func TestUpsert_ProductoInexistente(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.uc.Upsert(context.Background(), fx.actor, uuid.NewString(), fx.northID, dto.UpsertStockRequest{Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpsert_BodegaInactiva(t *testing.T) {
	fx := newFixture(t)
	inactiveID := uuid.NewString()
	warehouseRepo := &fakeWarehouseRepo{warehouses: map[string]*entity.Warehouse{
		inactiveID: {ID: inactiveID, Name: "Cerrada", Capacity: 100, IsActive: false},
	}}
	productRepo := &fakeProductRepo{products: map[string]*entity.Product{
		fx.productID: {ID: fx.productID, IsActive: true},
	}}
	tx := &fakeTxRunner{stockRepo: fx.stockRepo, transferRepo: fx.transfers, auditRepo: fx.audits}
	uc := stock.NewStockUseCase(fx.stockRepo, productRepo, warehouseRepo, tx)

	_, err := uc.Upsert(context.Background(), fx.actor, fx.productID, inactiveID, dto.UpsertStockRequest{Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrWarehouseInactive)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Transfer
// ──────────────────────────────────────────────────────────────────────────────

func TestTransfer_ConservaElTotal(t *testing.T) {
	fx := newFixture(t)
	fx.seedStock(t, fx.northID, 50)

	out, err := fx.uc.Transfer(context.Background(), fx.actor, dto.TransferStockRequest{
		ProductID:       fx.productID,
		FromWarehouseID: fx.northID,
		ToWarehouseID:   fx.southID,
		Quantity:        20,
	})
	require.NoError(t, err)
	assert.Equal(t, 20, out.Quantity)

	source, _ := fx.stockRepo.Get(fx.productID, fx.northID)
	dest, _ := fx.stockRepo.Get(fx.productID, fx.southID)
	assert.Equal(t, 30, source.Quantity)
	assert.Equal(t, 20, dest.Quantity)
	assert.Equal(t, 50, source.Quantity+dest.Quantity,
		"una transferencia nunca crea ni destruye unidades")

	require.Len(t, fx.transfers.transfers, 1)
	require.Len(t, fx.audits.entries, 1)
	assert.Equal(t, entity.AuditActionTransfer, fx.audits.entries[0].Action)
}

func TestTransfer_StockInsuficienteNoDejaRastro(t *testing.T) {
	fx := newFixture(t)
	fx.seedStock(t, fx.northID, 5)

	_, err := fx.uc.Transfer(context.Background(), fx.actor, dto.TransferStockRequest{
		ProductID:       fx.productID,
		FromWarehouseID: fx.northID,
		ToWarehouseID:   fx.southID,
		Quantity:        20,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	source, _ := fx.stockRepo.Get(fx.productID, fx.northID)
	assert.Equal(t, 5, source.Quantity, "el origen no debe cambiar tras el rollback")
	dest, _ := fx.stockRepo.Get(fx.productID, fx.southID)
	assert.Nil(t, dest, "la fila destino creada dentro de la tx debe deshacerse")
	assert.Empty(t, fx.transfers.transfers, "no debe quedar registro de transferencia")
	assert.Empty(t, fx.audits.entries, "no debe quedar entrada de auditoría")
}

func TestTransfer_OrigenSinFilaEsInsuficiente(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.uc.Transfer(context.Background(), fx.actor, dto.TransferStockRequest{
		ProductID:       fx.productID,
		FromWarehouseID: fx.northID,
		ToWarehouseID:   fx.southID,
		Quantity:        1,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestTransfer_MismaBodegaRechazada(t *testing.T) {
	fx := newFixture(t)
	fx.seedStock(t, fx.northID, 50)

	_, err := fx.uc.Transfer(context.Background(), fx.actor, dto.TransferStockRequest{
		ProductID:       fx.productID,
		FromWarehouseID: fx.northID,
		ToWarehouseID:   fx.northID,
		Quantity:        10,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"origen y destino iguales deben rechazarse antes de tocar la DB")
}

func TestTransfer_CantidadNoPositivaRechazada(t *testing.T) {
	fx := newFixture(t)
	fx.seedStock(t, fx.northID, 50)

	_, err := fx.uc.Transfer(context.Background(), fx.actor, dto.TransferStockRequest{
		ProductID:       fx.productID,
		FromWarehouseID: fx.northID,
		ToWarehouseID:   fx.southID,
		Quantity:        0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTransfer_CantidadExacta(t *testing.T) {
	fx := newFixture(t)
	fx.seedStock(t, fx.northID, 20)

	_, err := fx.uc.Transfer(context.Background(), fx.actor, dto.TransferStockRequest{
		ProductID:       fx.productID,
		FromWarehouseID: fx.northID,
		ToWarehouseID:   fx.southID,
		Quantity:        20,
	})
	require.NoError(t, err, "transferir exactamente lo disponible es válido")

	source, _ := fx.stockRepo.Get(fx.productID, fx.northID)
	assert.Equal(t, 0, source.Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Alerts
// ──────────────────────────────────────────────────────────────────────────────

func TestAlerts_CalculaDeficit(t *testing.T) {
	fx := newFixture(t)
	fx.seedStock(t, fx.northID, 3) // umbral 10, déficit 7

	out, err := fx.uc.Alerts(dto.PageRequest{Page: 1, PerPage: 20})
	require.NoError(t, err)
	require.Len(t, out.Data, 1)
	assert.Equal(t, 7, out.Data[0].Deficit)
	assert.Equal(t, 1, out.Pagination.Total)
}

func TestAlerts_OrdenaPorDeficitDescendente(t *testing.T) {
	fx := newFixture(t)
	// Tres quiebres distintos: déficit 2 en norte, 9 en sur y 5 de otro producto.
	fx.seedStock(t, fx.northID, 8)
	fx.seedStock(t, fx.southID, 1)
	require.NoError(t, fx.stockRepo.Upsert(&entity.StockLevel{
		ProductID:    uuid.NewString(),
		WarehouseID:  fx.northID,
		Quantity:     5,
		MinThreshold: 10,
	}))

	out, err := fx.uc.Alerts(dto.PageRequest{Page: 1, PerPage: 20})
	require.NoError(t, err)
	require.Len(t, out.Data, 3)

	deficits := []int{out.Data[0].Deficit, out.Data[1].Deficit, out.Data[2].Deficit}
	assert.Equal(t, []int{9, 5, 2}, deficits, "el mayor quiebre va primero")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de contención
// ──────────────────────────────────────────────────────────────────────────────

func TestTransfer_DosTransferenciasNoSobregiranElOrigen(t *testing.T) {
	fx := newFixture(t)
	fx.seedStock(t, fx.northID, 30)

	req := dto.TransferStockRequest{
		ProductID:       fx.productID,
		FromWarehouseID: fx.northID,
		ToWarehouseID:   fx.southID,
		Quantity:        25,
	}

	// Dos transferencias compiten por el mismo origen; serializadas por el
	// bloqueo de fila, a lo sumo una puede completarse.
	_, firstErr := fx.uc.Transfer(context.Background(), fx.actor, req)
	_, secondErr := fx.uc.Transfer(context.Background(), fx.actor, req)

	require.NoError(t, firstErr)
	require.ErrorIs(t, secondErr, domain.ErrInsufficientStock,
		"la segunda debe releer la cantidad ya debitada y abortar")

	source, _ := fx.stockRepo.Get(fx.productID, fx.northID)
	dest, _ := fx.stockRepo.Get(fx.productID, fx.southID)
	assert.Equal(t, 5, source.Quantity)
	assert.Equal(t, 25, dest.Quantity)
	assert.Equal(t, 30, source.Quantity+dest.Quantity)
	assert.Len(t, fx.transfers.transfers, 1, "solo la transferencia exitosa queda registrada")
}
