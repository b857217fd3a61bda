package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"wiki-quiz/internal/config"
	"wiki-quiz/internal/database"
	"wiki-quiz/internal/logger"
)

func main() {
	dir := flag.String("dir", "database/migrations", "directory holding *.up.sql and *.down.sql files")
	direction := flag.String("direction", database.DirectionUp, "up or down")
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

	db, err := database.NewMigrateOracleDB(cfg.GetDSN())
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	if err := database.RunMigrations(ctx, db, *dir, *direction); err != nil {
		l.Fatal("Failed to run migrations", zap.Error(err), zap.String("direction", *direction))
	}
}
