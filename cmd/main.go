package main

import (
	"context"

	"github.com/franciscosanchezn/gin-pizza-catalog/internal/config"
	"github.com/franciscosanchezn/gin-pizza-catalog/internal/database"
	"github.com/franciscosanchezn/gin-pizza-catalog/internal/router"
	"github.com/franciscosanchezn/gin-pizza-catalog/internal/services"
	"github.com/franciscosanchezn/gin-pizza-catalog/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// @title Pizza Catalog API
// @version 1.0
// @description JSON API for managing the pizza and topping catalog
// @host localhost:8080
// @BasePath /
func main() {
	// Load environment variables
	loadDotenvFile()

	// Load configuration
	configuration := loadConfig()

	// Initialize logger
	setUpLogger(configuration)

	// Initialize database connection
	db := setupDatabase(configuration)
	defer func() {
		if err := database.Close(db); err != nil {
			log.WithError(err).Warn("Failed to close database")
		}
	}()

	// Initialize services
	validate := services.NewValidator()
	toppingService := services.NewToppingService(db, validate)
	pizzaService := services.NewPizzaService(db, validate)

	if configuration.SeedDatabase {
		seedDatabase(toppingService, pizzaService)
	}

	if configuration.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin router
	r, err := router.NewRouter(router.Dependencies{
		Pizzas:      pizzaService,
		Toppings:    toppingService,
		Store:       session.NewStore(configuration.SecretKey, configuration.CookieSecure),
		CSRFEnabled: configuration.CSRFEnabled,
		Logger:      log.StandardLogger(),
	})
	checkPanicErr(err)

	// Start the server
	log.Infof("Starting server on %s", configuration.Address())
	if err := r.Run(configuration.Address()); err != nil {
		log.WithError(err).Fatal("Server stopped")
	}
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter. The level follows
// APP_ENV unless LOG_LEVEL was set explicitly.
func setUpLogger(conf *config.Config) {
	log.SetFormatter(&log.JSONFormatter{})
	level := config.LevelForEnvironment(conf.Environment)
	if config.GetEnvWithDefault("LOG_LEVEL", "") != "" {
		if parsed, err := log.ParseLevel(conf.LogLevel); err == nil {
			level = parsed
		}
	}
	log.SetLevel(level)
	database.SetLogLevel(level)
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	return conf
}

// setupDatabase connects to the configured database and migrates the schema
func setupDatabase(conf *config.Config) *gorm.DB {
	db, err := database.InitDatabase(conf.Database)
	checkPanicErr(err)
	checkPanicErr(database.Migrate(db))
	return db
}

// seedDatabase seeds the default catalog when the database is empty
func seedDatabase(toppings services.ToppingService, pizzas services.PizzaService) {
	ctx := context.Background()
	empty, err := services.IsCatalogEmpty(ctx, toppings, pizzas)
	checkPanicErr(err)
	if !empty {
		log.Info("Database already seeded with initial data")
		return
	}

	log.Info("Database is empty, seeding initial data")
	created, err := services.SeedCatalog(ctx, toppings, pizzas, services.DefaultCatalog)
	checkPanicErr(err)
	log.WithField("pizzas", created).Info("Database seeded successfully")
}
