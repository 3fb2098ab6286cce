package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/franciscosanchezn/gin-pizza-catalog/internal/database"
	"github.com/franciscosanchezn/gin-pizza-catalog/internal/services"
)

func main() {
	// Parse command line flags
	driver := flag.String("driver", database.DriverSQLite, "Database driver (sqlite, sqlite-purego or postgres)")
	path := flag.String("path", "pizza.sqlite", "SQLite database file")
	url := flag.String("url", "", "PostgreSQL connection URL")
	flag.Parse()

	cfg := database.DatabaseConfig{
		Driver:     *driver,
		URL:        *url,
		Path:       *path,
		MaxRetries: 1,
	}
	if *url != "" {
		cfg.Driver = database.DriverPostgres
	}

	db, err := database.InitDatabase(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	validate := services.NewValidator()
	toppings := services.NewToppingService(db, validate)
	pizzas := services.NewPizzaService(db, validate)

	created, err := services.SeedCatalog(context.Background(), toppings, pizzas, services.DefaultCatalog)
	if err != nil {
		log.Fatal("Failed to seed catalog:", err)
	}

	fmt.Println("✅ Catalog seeded successfully!")
	fmt.Printf("Pizzas created: %d\n", created)
	for _, entry := range services.DefaultCatalog {
		fmt.Printf("  - %s: %v\n", entry.Pizza, entry.Toppings)
	}
}
