package web

import (
	"net/http"

	"github.com/franciscosanchezn/gin-pizza-catalog/internal/models"
	"github.com/franciscosanchezn/gin-pizza-catalog/internal/services"
	"github.com/franciscosanchezn/gin-pizza-catalog/internal/session"
	"github.com/gin-gonic/gin"
)

// ManagePizzas lists pizzas and, on POST, creates one
func (h *Handler) ManagePizzas(c *gin.Context) {
	ctx := c.Request.Context()
	var messages []session.Flash
	name := ""
	selected := []uint{}

	if c.Request.Method == http.MethodPost {
		name = c.PostForm("name")
		ids, ok := parseToppingIDs(c)
		if ok {
			selected = ids
			_, err := h.pizzas.CreatePizza(ctx, name, ids)
			if err == nil {
				h.redirectWithFlash(c, "/pizzas", "Pizza added successfully!")
				return
			}
			msg, known := formMessage(err, "Pizza already exists!")
			if !known {
				h.serverError(c, err)
				return
			}
			messages = append(messages, msg)
		} else {
			messages = append(messages, danger("Toppings: not a valid choice"))
		}
	}

	pizzas, err := h.pizzas.ListPizzas(ctx)
	if err != nil {
		h.serverError(c, err)
		return
	}
	toppings, err := h.toppings.ListToppings(ctx)
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.render(c, http.StatusOK, "pizzas.html", gin.H{
		"Title":    "Pizzas",
		"Name":     name,
		"Selected": selected,
		"Toppings": toppings,
		"Pizzas":   pizzas,
	}, messages...)
}

// UpdatePizza shows the edit form and, on POST, renames the pizza and
// replaces its topping set
func (h *Handler) UpdatePizza(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.notFound(c, "Pizza not found.")
		return
	}
	ctx := c.Request.Context()

	pizza, err := h.pizzas.GetPizza(ctx, id)
	if err != nil {
		if services.IsNotFound(err) {
			h.notFound(c, "Pizza not found.")
			return
		}
		h.serverError(c, err)
		return
	}

	name := pizza.Name
	selected := pizza.ToppingIDs()
	var messages []session.Flash
	if c.Request.Method == http.MethodPost {
		name = c.PostForm("name")
		ids, ok := parseToppingIDs(c)
		if ok {
			selected = ids
			messages, ok = h.applyPizzaUpdate(c, pizza, name, ids)
			if !ok {
				return
			}
		} else {
			messages = append(messages, danger("Toppings: not a valid choice"))
		}
	}

	toppings, err := h.toppings.ListToppings(ctx)
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.render(c, http.StatusOK, "update_pizza.html", gin.H{
		"Title":    "Update Pizza",
		"Pizza":    pizza,
		"Name":     name,
		"Selected": selected,
		"Toppings": toppings,
	}, messages...)
}

// applyPizzaUpdate returns the messages to show on the re-rendered form.
// It returns false once a response has already been written.
func (h *Handler) applyPizzaUpdate(c *gin.Context, pizza models.Pizza, name string, ids []uint) ([]session.Flash, bool) {
	_, err := h.pizzas.UpdatePizza(c.Request.Context(), pizza.ID, name, ids)
	switch {
	case err == nil:
		h.redirectWithFlash(c, "/pizzas", "Pizza updated successfully!")
		return nil, false
	case services.IsNotFound(err):
		h.notFound(c, "Pizza not found.")
		return nil, false
	}
	msg, known := formMessage(err, "Pizza already exists!")
	if !known {
		h.serverError(c, err)
		return nil, false
	}
	return []session.Flash{msg}, true
}

// DeletePizza removes a pizza and its topping associations
func (h *Handler) DeletePizza(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.notFound(c, "Pizza not found.")
		return
	}
	if err := h.pizzas.DeletePizza(c.Request.Context(), id); err != nil {
		if services.IsNotFound(err) {
			h.notFound(c, "Pizza not found.")
			return
		}
		h.serverError(c, err)
		return
	}
	h.redirectWithFlash(c, "/pizzas", "Pizza deleted successfully!")
}
