package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/afyastaff/afyastaff/internal/config"
	"github.com/afyastaff/afyastaff/internal/logger"
	"github.com/afyastaff/afyastaff/internal/store"
	mongostore "github.com/afyastaff/afyastaff/internal/store/mongo"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "List the collections that would be indexed without touching the database")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	if *dryRun {
		logger.Info("Dry run mode - listing collections without connecting")
		for _, name := range store.Collections {
			fmt.Printf("%s: index {organization_id: 1}\n", name)
		}
		return
	}

	logger.Infow("Connecting to database", "database", cfg.Mongo.Database)
	client, err := mongostore.Connect(cfg, logger)
	if err != nil {
		logger.Fatalw("Failed to connect to MongoDB", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	defer func() { _ = client.Disconnect(ctx) }()

	logger.Info("Creating indexes...")
	if err := mongostore.NewStore(client, cfg, logger).EnsureIndexes(ctx); err != nil {
		logger.Fatalw("Failed to create indexes", "error", err)
	}

	fmt.Println("Migration process completed")
}
