package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/workermill-examples/shipapi/internal/domain/entity"
	"github.com/workermill-examples/shipapi/internal/domain/repository"
)

var _ repository.StockLevelRepository = (*StockLevelRepo)(nil)

// StockLevelRepo implementación de StockLevelRepository sobre PostgreSQL (usable con pool o tx).
type StockLevelRepo struct {
	q Querier
}

// NewStockLevelRepository construye el adaptador de existencias. Pasar pool o tx (Querier).
func NewStockLevelRepository(q Querier) *StockLevelRepo {
	return &StockLevelRepo{q: q}
}

const stockColumns = `id, product_id, warehouse_id, quantity, min_threshold, created_at, updated_at`

func scanStockLevel(row pgx.Row) (*entity.StockLevel, error) {
	var s entity.StockLevel
	err := row.Scan(&s.ID, &s.ProductID, &s.WarehouseID, &s.Quantity, &s.MinThreshold, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Get obtiene las existencias de un producto en una bodega. Devuelve nil si no hay fila.
func (r *StockLevelRepo) Get(productID, warehouseID string) (*entity.StockLevel, error) {
	query := fmt.Sprintf(`SELECT %s FROM stock_levels WHERE product_id = $1 AND warehouse_id = $2`, stockColumns)
	s, err := scanStockLevel(r.q.QueryRow(context.Background(), query, productID, warehouseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock level: %w", err)
	}
	return s, nil
}

// GetForUpdate obtiene las existencias y bloquea la fila (SELECT FOR UPDATE).
// Devuelve nil si no hay fila; en ese caso no se adquiere ningún lock.
func (r *StockLevelRepo) GetForUpdate(productID, warehouseID string) (*entity.StockLevel, error) {
	query := fmt.Sprintf(`SELECT %s FROM stock_levels WHERE product_id = $1 AND warehouse_id = $2 FOR UPDATE`, stockColumns)
	s, err := scanStockLevel(r.q.QueryRow(context.Background(), query, productID, warehouseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock level for update: %w", err)
	}
	return s, nil
}

// EnsureRow garantiza que exista la fila (product, warehouse) con cantidad 0.
// Idempotente; permite bloquear después origen y destino en orden consistente.
func (r *StockLevelRepo) EnsureRow(productID, warehouseID string) error {
	query := `
		INSERT INTO stock_levels (id, product_id, warehouse_id, quantity, min_threshold, created_at, updated_at)
		VALUES ($1, $2, $3, 0, 10, now(), now())
		ON CONFLICT (product_id, warehouse_id) DO NOTHING`
	_, err := r.q.Exec(context.Background(), query, uuid.NewString(), productID, warehouseID)
	if err != nil {
		return fmt.Errorf("ensure stock row: %w", err)
	}
	return nil
}

// Upsert inserta o actualiza cantidad y umbral mínimo (por producto y bodega).
func (r *StockLevelRepo) Upsert(level *entity.StockLevel) error {
	if level.ID == "" {
		level.ID = uuid.NewString()
	}
	query := `
		INSERT INTO stock_levels (id, product_id, warehouse_id, quantity, min_threshold, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, min_threshold = EXCLUDED.min_threshold, updated_at = now()
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(context.Background(), query,
		level.ID, level.ProductID, level.WarehouseID, level.Quantity, level.MinThreshold,
	).Scan(&level.ID, &level.CreatedAt, &level.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert stock level: %w", err)
	}
	return nil
}

// ListByWarehouse devuelve una página de existencias de la bodega y el total.
func (r *StockLevelRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.StockLevel, int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM stock_levels WHERE warehouse_id = $1`, warehouseID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count stock levels: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM stock_levels
		WHERE warehouse_id = $1
		ORDER BY updated_at DESC LIMIT $2 OFFSET $3`, stockColumns)
	rows, err := r.q.Query(context.Background(), query, warehouseID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list stock by warehouse: %w", err)
	}
	defer rows.Close()

	var out []*entity.StockLevel
	for rows.Next() {
		s, err := scanStockLevel(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan stock level: %w", err)
		}
		out = append(out, s)
	}
	return out, total, rows.Err()
}

// ListByProduct devuelve todas las existencias de un producto en todas las bodegas.
func (r *StockLevelRepo) ListByProduct(productID string) ([]*entity.StockLevel, error) {
	query := fmt.Sprintf(`SELECT %s FROM stock_levels WHERE product_id = $1 ORDER BY warehouse_id`, stockColumns)
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list stock by product: %w", err)
	}
	defer rows.Close()

	var out []*entity.StockLevel
	for rows.Next() {
		s, err := scanStockLevel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock level: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListAlerts devuelve las filas bajo umbral ordenadas por déficit descendente, con el total.
func (r *StockLevelRepo) ListAlerts(limit, offset int) ([]*repository.StockAlertItem, int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM stock_levels WHERE quantity < min_threshold`).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count stock alerts: %w", err)
	}

	query := `
		SELECT s.product_id, p.name, p.sku,
		       s.warehouse_id, w.name, w.location,
		       s.quantity, s.min_threshold
		FROM stock_levels s
		JOIN products p ON p.id = s.product_id
		JOIN warehouses w ON w.id = s.warehouse_id
		WHERE s.quantity < s.min_threshold
		ORDER BY (s.min_threshold - s.quantity) DESC, s.updated_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list stock alerts: %w", err)
	}
	defer rows.Close()

	var out []*repository.StockAlertItem
	for rows.Next() {
		var a repository.StockAlertItem
		err := rows.Scan(
			&a.ProductID, &a.ProductName, &a.ProductSKU,
			&a.WarehouseID, &a.WarehouseName, &a.WarehouseLocation,
			&a.Quantity, &a.MinThreshold,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan stock alert: %w", err)
		}
		out = append(out, &a)
	}
	return out, total, rows.Err()
}
