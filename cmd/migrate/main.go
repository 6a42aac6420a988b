package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"my-chat/config"
	"my-chat/pkg/database"
)

const usage = `
my-chat - Database CLI Tool

Usage:
  migrate [command]

Commands:
  up          Apply all pending migrations
  down        Roll back the most recent migration
  status      Show database connectivity and migration status
  reset       Roll back every migration and re-apply (DANGEROUS)

Examples:
  go run cmd/migrate/main.go up
  go run cmd/migrate/main.go status
  go run cmd/migrate/main.go down
`

func main() {
	flag.Usage = func() {
		fmt.Print(usage)
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	command := flag.Arg(0)
	ctx := context.Background()

	cfg := config.LoadConfig()
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Database connection failed: %v", err)
	}
	defer db.Close()

	switch command {
	case "up":
		log.Println("🚀 Running migrations UP...")
		if err := database.MigrateUp(ctx, db); err != nil {
			log.Fatalf("❌ Migration failed: %v", err)
		}
		log.Println("✅ Migrations completed successfully!")
	case "down":
		log.Println("⬇️  Rolling back last migration...")
		if err := database.MigrateDown(ctx, db); err != nil {
			log.Fatalf("❌ Rollback failed: %v", err)
		}
		log.Println("✅ Rollback completed successfully!")
	case "status":
		if err := database.HealthCheck(ctx, db); err != nil {
			log.Fatalf("❌ Health check failed: %v", err)
		}
		log.Println("✅ Database connection: OK")
		if err := database.MigrationStatus(ctx, db); err != nil {
			log.Fatalf("❌ Status failed: %v", err)
		}
	case "reset":
		log.Println("⚠️  WARNING: This will roll back every migration and re-apply them!")
		if err := database.MigrateReset(ctx, db); err != nil {
			log.Fatalf("❌ Reset failed: %v", err)
		}
		log.Println("✅ Database reset completed!")
	default:
		fmt.Printf("Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}
