package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"fomo-app/internal/config"
	"fomo-app/internal/models"
	"fomo-app/internal/utils"
)

// Standalone schema tool: drops, recreates and optionally seeds the four
// core tables. Useful for local development; production uses the versioned
// migrations under ./migrations.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()

	var sqldb *sql.DB
	var err error
	var db *bun.DB
	switch cfg.Database.Driver {
	case "sqlite":
		sqldb, err = sql.Open(sqliteshim.ShimName, cfg.Database.DSN)
		if err != nil {
			log.Fatalf("Failed to open sqlite: %v", err)
		}
		db = bun.NewDB(sqldb, sqlitedialect.New())
	default:
		sqldb, err = sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			log.Fatalf("Failed to open postgres: %v", err)
		}
		db = bun.NewDB(sqldb, pgdialect.New())
	}
	defer db.Close()

	if err := sqldb.PingContext(ctx); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Dropping tables...")
	if err := dropTables(ctx, db); err != nil {
		log.Printf("Drop warning: %v", err)
	}

	log.Println("Creating tables...")
	if err := createTables(ctx, db); err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}

	if os.Getenv("SEED_DATA") == "true" {
		log.Println("Seeding sample data...")
		if err := seedData(ctx, db); err != nil {
			log.Fatalf("Failed to seed data: %v", err)
		}
	}

	log.Println("✅ Done.")
}

func dropTables(ctx context.Context, db *bun.DB) error {
	for _, model := range []interface{}{
		(*models.ResponseEntry)(nil),
		(*models.Friendship)(nil),
		(*models.Event)(nil),
		(*models.User)(nil),
	} {
		if _, err := db.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

func createTables(ctx context.Context, db *bun.DB) error {
	for _, model := range []interface{}{
		(*models.User)(nil),
		(*models.Event)(nil),
		(*models.Friendship)(nil),
		(*models.ResponseEntry)(nil),
	} {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

func seedData(ctx context.Context, db *bun.DB) error {
	now := time.Now()

	alice := models.User{
		ID: utils.GenerateUserID(), Name: "Alice", Email: "alice@example.com",
		City: "Paris", Active: true, PublicProfile: true, AllowFriendRequests: true,
		CreatedAt: now, UpdatedAt: now,
	}
	bob := models.User{
		ID: utils.GenerateUserID(), Name: "Bob", Email: "bob@example.com",
		City: "Lyon", Active: true, AllowFriendRequests: true,
		CreatedAt: now, UpdatedAt: now,
	}
	if _, err := db.NewInsert().Model(&[]models.User{alice, bob}).Exec(ctx); err != nil {
		return err
	}

	picnic := models.Event{
		ID: utils.GenerateEventID(), Title: "Canal picnic",
		Description: "Bring something to share", StartDate: now.AddDate(0, 0, 3),
		VenueName: "Canal Saint-Martin", OrganizerID: alice.ID,
		IsPublic: true, Tags: []string{"food", "outdoors"},
		CreatedAt: now, UpdatedAt: now,
	}
	if _, err := db.NewInsert().Model(&picnic).Exec(ctx); err != nil {
		return err
	}

	entry := models.ResponseEntry{
		ID: utils.GenerateResponseID(), UserID: bob.ID, EventID: picnic.ID,
		InitialResponse: models.ResponseNone, FinalResponse: models.ResponseGoing,
		CreatedAt: now,
	}
	if _, err := db.NewInsert().Model(&entry).Exec(ctx); err != nil {
		return err
	}

	pair := models.Friendship{
		ID:         utils.GenerateFriendshipID(alice.ID, bob.ID),
		FromUserID: alice.ID, ToUserID: bob.ID,
		Status: models.FriendshipActive, CreatedAt: now, ModifiedAt: now,
	}
	_, err := db.NewInsert().Model(&pair).Exec(ctx)
	return err
}
