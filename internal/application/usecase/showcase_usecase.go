package usecase

import (
	"context"
	"time"

	"github.com/workermill-examples/shipapi/internal/application/dto"
	"github.com/workermill-examples/shipapi/internal/domain/repository"
)

// Pinger conectividad a la base de datos; lo satisface *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ShowcaseUseCase estadísticas públicas y health check.
type ShowcaseUseCase struct {
	showcaseRepo repository.ShowcaseRepository
	db           Pinger
	version      string
}

// NewShowcaseUseCase construye el caso de uso público.
func NewShowcaseUseCase(showcaseRepo repository.ShowcaseRepository, db Pinger, version string) *ShowcaseUseCase {
	return &ShowcaseUseCase{showcaseRepo: showcaseRepo, db: db, version: version}
}

// Stats devuelve los conteos agregados para la landing page.
func (uc *ShowcaseUseCase) Stats() (*dto.ShowcaseStatsResponse, error) {
	s, err := uc.showcaseRepo.Stats()
	if err != nil {
		return nil, err
	}
	return &dto.ShowcaseStatsResponse{
		Products:        s.Products,
		Categories:      s.Categories,
		Warehouses:      s.Warehouses,
		StockAlerts:     s.StockAlerts,
		StockTransfers:  s.StockTransfers,
		AuditLogEntries: s.AuditLogEntries,
	}, nil
}

// Health reporta el estado del servicio. Nunca falla: si la DB no responde
// en 2 segundos se reporta "disconnected" con status "degraded".
func (uc *ShowcaseUseCase) Health(ctx context.Context) *dto.HealthResponse {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	resp := &dto.HealthResponse{Status: "ok", Database: "connected", Version: uc.version}
	if err := uc.db.Ping(ctx); err != nil {
		resp.Status = "degraded"
		resp.Database = "disconnected"
	}
	return resp
}
