package main

import (
	"flag"
	"log"

	"quiz-generation-be/internal/config"
	"quiz-generation-be/internal/model"
	"quiz-generation-be/pkg/database"
)

// migrate creates or updates the document, passage, quiz and question library tables.
func main() {
	dsnFlag := flag.String("dsn", "", "database DSN (defaults to DB_CONNECTION_STRING)")
	flag.Parse()

	cfg := config.Load()
	dsn := cfg.Database.Connection
	if *dsnFlag != "" {
		dsn = *dsnFlag
	}
	if dsn == "" {
		log.Fatal("migrate: DB_CONNECTION_STRING is not set and -dsn was not given")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatalf("migrate: connect: %v", err)
	}

	if !database.IsSQLiteDSN(dsn) {
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
			log.Printf("migrate: uuid-ossp extension unavailable, continuing: %v", err)
		}
	}

	tables := model.All()
	if err := db.AutoMigrate(tables...); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	log.Printf("migrate: %d tables up to date", len(tables))
}
