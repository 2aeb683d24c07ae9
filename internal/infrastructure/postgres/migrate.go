package postgres

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate aplica las migraciones embebidas contra la base de datos.
// Idempotente: si el esquema ya está al día no hace nada.
func Migrate(databaseURL string) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("migrations source: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, pgxURL(databaseURL))
	if err != nil {
		return fmt.Errorf("migrate init: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// pgxURL fuerza el esquema que registra el driver pgx/v5 de golang-migrate.
func pgxURL(databaseURL string) string {
	if len(databaseURL) >= 11 && databaseURL[:11] == "postgresql:" {
		return "pgx5:" + databaseURL[11:]
	}
	if len(databaseURL) >= 9 && databaseURL[:9] == "postgres:" {
		return "pgx5:" + databaseURL[9:]
	}
	return databaseURL
}
