// seed puebla la base de datos con datos de demostración: un usuario admin,
// categorías, productos, bodegas y existencias iniciales.
//
// Uso: go run ./cmd/seed
// Lee la misma configuración que el servidor (DATABASE_URL o DB_*).
// Idempotente: si el admin ya existe no hace nada.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/workermill-examples/shipapi/internal/domain/entity"
	"github.com/workermill-examples/shipapi/internal/infrastructure/postgres"
	"github.com/workermill-examples/shipapi/pkg/apikey"
	"github.com/workermill-examples/shipapi/pkg/config"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminEmail    = "admin@shipapi.local"
	adminPassword = "admin12345"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail("cargar configuración: %v", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fail("conexión a PostgreSQL: %v", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
		fail("migraciones: %v", err)
	}

	userRepo := postgres.NewUserRepository(pool)
	if existing, _ := userRepo.FindByEmail(adminEmail); existing != nil {
		fmt.Println("seed: el admin ya existe, nada que hacer")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		fail("hash de password: %v", err)
	}
	key, keyHash, keyPrefix, err := apikey.Generate()
	if err != nil {
		fail("generar API key: %v", err)
	}
	admin := &entity.User{
		ID:           uuid.NewString(),
		Email:        adminEmail,
		Name:         "Administrador",
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
		APIKeyHash:   &keyHash,
		APIKeyPrefix: &keyPrefix,
		IsActive:     true,
	}
	if err := userRepo.Create(admin); err != nil {
		fail("crear admin: %v", err)
	}

	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	stockRepo := postgres.NewStockLevelRepository(pool)

	electronics := &entity.Category{ID: uuid.NewString(), Name: "Electrónica", Description: strPtr("Equipos y accesorios electrónicos")}
	packaging := &entity.Category{ID: uuid.NewString(), Name: "Empaques", Description: strPtr("Cajas, cintas y material de embalaje")}
	for _, c := range []*entity.Category{electronics, packaging} {
		if err := categoryRepo.Create(c); err != nil {
			fail("crear categoría %s: %v", c.Name, err)
		}
	}

	products := []*entity.Product{
		{ID: uuid.NewString(), Name: "Lector de códigos de barras", SKU: "ELEC-0001", Price: decimal.NewFromInt(189900).Div(decimal.NewFromInt(100)), CategoryID: electronics.ID, IsActive: true},
		{ID: uuid.NewString(), Name: "Impresora de etiquetas térmica", SKU: "ELEC-0002", Price: decimal.NewFromInt(429900).Div(decimal.NewFromInt(100)), CategoryID: electronics.ID, IsActive: true},
		{ID: uuid.NewString(), Name: "Caja de cartón 40x30x30", SKU: "PACK-0001", Price: decimal.NewFromInt(250).Div(decimal.NewFromInt(100)), CategoryID: packaging.ID, IsActive: true},
	}
	for _, p := range products {
		if err := productRepo.Create(p); err != nil {
			fail("crear producto %s: %v", p.SKU, err)
		}
	}

	north := &entity.Warehouse{ID: uuid.NewString(), Name: "Bodega Norte", Location: "Bogotá", Capacity: 10000, IsActive: true}
	south := &entity.Warehouse{ID: uuid.NewString(), Name: "Bodega Sur", Location: "Medellín", Capacity: 5000, IsActive: true}
	for _, w := range []*entity.Warehouse{north, south} {
		if err := warehouseRepo.Create(w); err != nil {
			fail("crear bodega %s: %v", w.Name, err)
		}
	}

	levels := []*entity.StockLevel{
		{ProductID: products[0].ID, WarehouseID: north.ID, Quantity: 40, MinThreshold: 10},
		{ProductID: products[1].ID, WarehouseID: north.ID, Quantity: 5, MinThreshold: 10}, // en alerta
		{ProductID: products[2].ID, WarehouseID: south.ID, Quantity: 800, MinThreshold: 100},
	}
	for _, l := range levels {
		if err := stockRepo.Upsert(l); err != nil {
			fail("crear stock: %v", err)
		}
	}

	fmt.Println("seed: datos de demostración creados")
	fmt.Printf("  admin: %s / %s\n", adminEmail, adminPassword)
	fmt.Printf("  api key del admin: %s\n", key)
}

func strPtr(s string) *string { return &s }

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "seed: "+format+"\n", args...)
	os.Exit(1)
}
