package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"blood-connect/internal/config"
)

type migratorConfig struct {
	DatabaseURL     string `env:"DATABASE_URL" env-required:"true"`
	MigrationsPath  string `env:"MIGRATIONS_PATH" env-default:"migrations"`
	MigrationsTable string `env:"MIGRATIONS_TABLE" env-default:"schema_migrations"`
	LogLevel        string `env:"LOG_LEVEL" env-default:"info"`
}

func main() {
	_ = godotenv.Load()

	var cfg migratorConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "failed to read migrator config: %v\n", err)
		os.Exit(1)
	}

	logger, err := config.NewLogger(cfg.LogLevel, "console", "blood-connect-migrator")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if _, err := os.Stat(cfg.MigrationsPath); err != nil {
		logger.Fatal("migrations path not found", zap.String("path", cfg.MigrationsPath), zap.Error(err))
	}

	m, err := migrate.New("file://"+cfg.MigrationsPath, withMigrationsTable(cfg.DatabaseURL, cfg.MigrationsTable))
	if err != nil {
		logger.Fatal("failed to open migrations", zap.Error(err))
	}
	defer m.Close()

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "up":
		err = m.Up()
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("schema already up to date")
			return
		}
	case "down":
		err = m.Down()
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("nothing to roll back")
			return
		}
	case "version":
		version, dirty, verr := m.Version()
		if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
			logger.Fatal("failed to read schema version", zap.Error(verr))
		}
		logger.Info("schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		return
	default:
		logger.Fatal("unknown command, expected up, down or version", zap.String("command", cmd))
	}

	if err != nil {
		logger.Fatal("migration failed", zap.String("command", cmd), zap.Error(err))
	}
	logger.Info("migration finished", zap.String("command", cmd))
}

func withMigrationsTable(databaseURL, table string) string {
	sep := "?"
	if strings.Contains(databaseURL, "?") {
		sep = "&"
	}
	return databaseURL + sep + "x-migrations-table=" + table
}
