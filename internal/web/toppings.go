package web

import (
	"net/http"

	"github.com/franciscosanchezn/gin-pizza-catalog/internal/services"
	"github.com/franciscosanchezn/gin-pizza-catalog/internal/session"
	"github.com/gin-gonic/gin"
)

// ManageToppings lists toppings and, on POST, creates one
func (h *Handler) ManageToppings(c *gin.Context) {
	ctx := c.Request.Context()
	var messages []session.Flash
	name := ""

	if c.Request.Method == http.MethodPost {
		name = c.PostForm("name")
		_, err := h.toppings.CreateTopping(ctx, name)
		if err == nil {
			h.redirectWithFlash(c, "/toppings", "Topping added successfully!")
			return
		}
		msg, ok := formMessage(err, "Topping already exists!")
		if !ok {
			h.serverError(c, err)
			return
		}
		messages = append(messages, msg)
	}

	toppings, err := h.toppings.ListToppings(ctx)
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.render(c, http.StatusOK, "toppings.html", gin.H{
		"Title":    "Toppings",
		"Name":     name,
		"Toppings": toppings,
	}, messages...)
}

// UpdateTopping shows the rename form and, on POST, applies it
func (h *Handler) UpdateTopping(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.notFound(c, "Topping not found.")
		return
	}
	ctx := c.Request.Context()

	topping, err := h.toppings.GetTopping(ctx, id)
	if err != nil {
		if services.IsNotFound(err) {
			h.notFound(c, "Topping not found.")
			return
		}
		h.serverError(c, err)
		return
	}

	name := topping.Name
	var messages []session.Flash
	if c.Request.Method == http.MethodPost {
		name = c.PostForm("name")
		_, err := h.toppings.UpdateTopping(ctx, id, name)
		switch {
		case err == nil:
			h.redirectWithFlash(c, "/toppings", "Topping updated successfully!")
			return
		case services.IsNotFound(err):
			h.notFound(c, "Topping not found.")
			return
		}
		msg, ok := formMessage(err, "Topping already exists!")
		if !ok {
			h.serverError(c, err)
			return
		}
		messages = append(messages, msg)
	}

	h.render(c, http.StatusOK, "update_topping.html", gin.H{
		"Title":   "Update Topping",
		"Topping": topping,
		"Name":    name,
	}, messages...)
}

// DeleteTopping removes a topping from the catalog and from every pizza
func (h *Handler) DeleteTopping(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.notFound(c, "Topping not found.")
		return
	}
	if err := h.toppings.DeleteTopping(c.Request.Context(), id); err != nil {
		if services.IsNotFound(err) {
			h.notFound(c, "Topping not found.")
			return
		}
		h.serverError(c, err)
		return
	}
	h.redirectWithFlash(c, "/toppings", "Topping deleted successfully!")
}
