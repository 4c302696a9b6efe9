package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"lingo-quiz/cmd/seed_initial_data/internal/seedmodels"
	"lingo-quiz/database"
	"lingo-quiz/internal/config"
	dblogic "lingo-quiz/internal/database"
	"lingo-quiz/internal/logger"
	"lingo-quiz/internal/repository"

	"go.uber.org/zap"
)

const defaultSeedFilePath = "configs/seed_data/initial_quizzes.json"

func main() {
	seedFile := flag.String("file", defaultSeedFilePath, "JSON file with the quiz catalog")
	adminEmail := flag.String("admin-email", "", "promote this registered account to admin")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	db, err := dblogic.NewSQLXPostgresDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := dblogic.RunMigrations(db.DB, database.Migrations, database.MigrationsDir); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	s := &seeder{
		quizzes: repository.NewQuizCatalogRepository(db),
		users:   repository.NewSQLXUserRepository(db),
		tx:      repository.NewTransactionManagerAdapter(db),
		log:     log,
	}

	log.Info("Loading seed data from file", zap.String("path", *seedFile))
	byteValue, err := os.ReadFile(*seedFile)
	if err != nil {
		log.Fatal("Failed to read seed file", zap.String("path", *seedFile), zap.Error(err))
	}
	var file seedmodels.SeedFile
	if err := json.Unmarshal(byteValue, &file); err != nil {
		log.Fatal("Failed to unmarshal seed data", zap.Error(err))
	}

	created, err := s.seedQuizzes(ctx, file)
	if err != nil {
		log.Fatal("Failed to seed quizzes, transaction rolled back", zap.Error(err))
	}
	log.Info("Quiz catalog seeded", zap.Int("in_file", len(file.Quizzes)), zap.Int("created", created))

	if *adminEmail != "" {
		if err := s.promoteAdmin(ctx, *adminEmail); err != nil {
			log.Fatal("Failed to promote admin", zap.String("email", *adminEmail), zap.Error(err))
		}
	}
	log.Info("Initial data seeding process completed.")
}
