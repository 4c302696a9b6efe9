package main

import (
	"errors"
	"flag"
	"log"

	"lingo-quiz/database"
	"lingo-quiz/internal/config"
	dblogic "lingo-quiz/internal/database"
	"lingo-quiz/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	"go.uber.org/zap"
)

func main() {
	direction := flag.String("direction", "up", "migration direction: up, down or version")
	steps := flag.Int("steps", 0, "number of steps to migrate (0 = all for up, 1 for down)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	db, err := dblogic.NewSQLXPostgresDB(cfg)
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	m, err := dblogic.NewMigrator(db.DB, database.Migrations, database.MigrationsDir)
	if err != nil {
		l.Fatal("Failed to prepare migrations", zap.Error(err))
	}

	switch *direction {
	case "up":
		if *steps > 0 {
			err = m.Steps(*steps)
		} else {
			err = m.Up()
		}
	case "down":
		n := *steps
		if n <= 0 {
			n = 1
		}
		err = m.Steps(-n)
	case "version":
		version, dirty, verr := m.Version()
		if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
			l.Fatal("Failed to read migration version", zap.Error(verr))
		}
		l.Info("Current migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		return
	default:
		l.Fatal("Unknown migration direction", zap.String("direction", *direction))
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		l.Fatal("Migration failed", zap.String("direction", *direction), zap.Error(err))
	}
	l.Info("Migration finished", zap.String("direction", *direction))
}
