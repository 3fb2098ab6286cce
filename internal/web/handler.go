// Package web serves the HTML administration pages for the pizza catalog.
// Successful form posts redirect back to the list with a one-time flash;
// rejected posts re-render the form with status 200 and a danger message.
package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/franciscosanchezn/gin-pizza-catalog/internal/middleware"
	"github.com/franciscosanchezn/gin-pizza-catalog/internal/services"
	"github.com/franciscosanchezn/gin-pizza-catalog/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Handler serves the catalog pages
type Handler struct {
	pizzas   services.PizzaService
	toppings services.ToppingService
	store    *session.Store
}

// NewHandler creates the HTML handler
func NewHandler(pizzas services.PizzaService, toppings services.ToppingService, store *session.Store) *Handler {
	return &Handler{pizzas: pizzas, toppings: toppings, store: store}
}

// Register mounts every page on the given router group
func (h *Handler) Register(r gin.IRoutes) {
	r.GET("/", h.Index)

	r.GET("/toppings", h.ManageToppings)
	r.POST("/toppings", h.ManageToppings)
	r.GET("/update_topping/:id", h.UpdateTopping)
	r.POST("/update_topping/:id", h.UpdateTopping)
	r.POST("/delete_topping/:id", h.DeleteTopping)

	r.GET("/pizzas", h.ManagePizzas)
	r.POST("/pizzas", h.ManagePizzas)
	r.GET("/update_pizza/:id", h.UpdatePizza)
	r.POST("/update_pizza/:id", h.UpdatePizza)
	r.POST("/delete_pizza/:id", h.DeletePizza)
}

// Index lists all pizzas
func (h *Handler) Index(c *gin.Context) {
	pizzas, err := h.pizzas.ListPizzas(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.render(c, http.StatusOK, "index.html", gin.H{
		"Title":  "Pizzas",
		"Pizzas": pizzas,
	})
}

// render fills the layout fields shared by every page
func (h *Handler) render(c *gin.Context, status int, name string, data gin.H, messages ...session.Flash) {
	flashes := h.store.PopFlashes(c)
	data["Flashes"] = append(flashes, messages...)
	data["CSRFToken"] = c.GetString(middleware.CSRFTokenKey)
	c.HTML(status, name, data)
}

// redirectWithFlash implements post/redirect/get with a one-time message
func (h *Handler) redirectWithFlash(c *gin.Context, location, message string) {
	if err := h.store.AddFlash(c, session.CategorySuccess, message); err != nil {
		logrus.WithError(err).Warn("Could not set flash message")
	}
	c.Redirect(http.StatusFound, location)
}

func (h *Handler) notFound(c *gin.Context, message string) {
	h.render(c, http.StatusNotFound, "error.html", gin.H{
		"Title":   "Not Found",
		"Status":  http.StatusNotFound,
		"Message": message,
	})
}

func (h *Handler) serverError(c *gin.Context, err error) {
	_ = c.Error(err)
	logrus.WithFields(logrus.Fields{
		"request_id": c.GetString(middleware.RequestIDKey),
		"path":       c.Request.URL.Path,
	}).WithError(err).Error("Catalog operation failed")
	h.render(c, http.StatusInternalServerError, "error.html", gin.H{
		"Title":   "Internal Server Error",
		"Status":  http.StatusInternalServerError,
		"Message": "Something went wrong while talking to the database.",
	})
}

// parseID reads the :id path parameter. Ids that are not positive
// integers never match a route, so they are reported as not found.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// parseToppingIDs reads the multi-valued toppings field
func parseToppingIDs(c *gin.Context) ([]uint, bool) {
	values := c.PostFormArray("toppings")
	ids := make([]uint, 0, len(values))
	for _, v := range values {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return nil, false
		}
		ids = append(ids, uint(id))
	}
	return ids, true
}

func danger(message string) session.Flash {
	return session.Flash{Category: session.CategoryDanger, Message: message}
}

// formMessage turns a rejected submission into the message shown above the form
func formMessage(err error, duplicate string) (session.Flash, bool) {
	switch {
	case services.IsDuplicate(err):
		return danger(duplicate), true
	case services.IsValidation(err):
		var verr *services.ValidationError
		if errors.As(err, &verr) && verr.Field == "name" {
			return danger("Name: " + verr.Message), true
		}
		return danger(err.Error()), true
	default:
		return session.Flash{}, false
	}
}
