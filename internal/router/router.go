// Package router wires the HTML pages, the JSON API and the operational
// endpoints onto a gin engine.
package router

import (
	"html/template"
	"net/http"
	"time"

	_ "github.com/franciscosanchezn/gin-pizza-catalog/docs" // Register swagger docs
	"github.com/franciscosanchezn/gin-pizza-catalog/internal/controllers"
	"github.com/franciscosanchezn/gin-pizza-catalog/internal/middleware"
	"github.com/franciscosanchezn/gin-pizza-catalog/internal/services"
	"github.com/franciscosanchezn/gin-pizza-catalog/internal/session"
	"github.com/franciscosanchezn/gin-pizza-catalog/internal/web"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// ServiceName is reported by the health endpoint
const ServiceName = "gin-pizza-catalog"

// Dependencies holds everything the router needs to build the handlers
type Dependencies struct {
	Pizzas      services.PizzaService
	Toppings    services.ToppingService
	Store       *session.Store
	CSRFEnabled bool
	Logger      *logrus.Logger
	// Templates overrides the embedded page templates when set
	Templates *template.Template
}

// NewRouter builds the engine with the middleware chain and every route
func NewRouter(deps Dependencies) (*gin.Engine, error) {
	logger := deps.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	tmpl := deps.Templates
	if tmpl == nil {
		var err error
		tmpl, err = web.LoadTemplates()
		if err != nil {
			return nil, err
		}
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Metrics())

	// Operational endpoints
	r.GET("/health", healthCheckHandler)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// HTML administration pages
	pages := r.Group("/")
	pages.Use(gzip.Gzip(gzip.DefaultCompression))
	pages.Use(middleware.CSRF(deps.Store, deps.CSRFEnabled))
	web.NewHandler(deps.Pizzas, deps.Toppings, deps.Store).Register(pages)

	// JSON API
	pizzaController := controllers.NewPizzaController(deps.Pizzas)
	toppingController := controllers.NewToppingController(deps.Toppings)

	api := r.Group("/api")
	api.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{middleware.RequestIDHeader, "Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	{
		api.GET("/pizzas", pizzaController.GetAllPizzas)
		api.GET("/pizzas/:id", pizzaController.GetPizzaByID)
		api.POST("/pizzas", pizzaController.CreatePizza)
		api.PUT("/pizzas/:id", pizzaController.UpdatePizza)
		api.DELETE("/pizzas/:id", pizzaController.DeletePizza)

		api.GET("/toppings", toppingController.GetAllToppings)
		api.GET("/toppings/:id", toppingController.GetToppingByID)
		api.POST("/toppings", toppingController.CreateTopping)
		api.PUT("/toppings/:id", toppingController.UpdateTopping)
		api.DELETE("/toppings/:id", toppingController.DeleteTopping)

		// Preflight requests only reach the group middleware through a route
		api.OPTIONS("/*path", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	}

	return r, nil
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   ServiceName,
	})
}
