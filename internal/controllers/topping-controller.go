package controllers

import (
	"net/http"

	"github.com/franciscosanchezn/gin-pizza-catalog/internal/models"
	"github.com/franciscosanchezn/gin-pizza-catalog/internal/services"
	"github.com/gin-gonic/gin"
)

// ToppingController handles HTTP requests related to toppings
type ToppingController interface {
	GetAllToppings(c *gin.Context)
	GetToppingByID(c *gin.Context)
	CreateTopping(c *gin.Context)
	UpdateTopping(c *gin.Context)
	DeleteTopping(c *gin.Context)
}

// ToppingRequest is the body accepted when creating or renaming a topping
type ToppingRequest struct {
	Name string `json:"name" example:"Mushroom"`
}

type toppingController struct {
	service services.ToppingService
}

// NewToppingController creates a new instance of ToppingController
func NewToppingController(service services.ToppingService) ToppingController {
	return &toppingController{service: service}
}

// GetAllToppings godoc
// @Summary Get all toppings
// @Tags toppings
// @Produce json
// @Success 200 {array} models.Topping
// @Failure 500 {object} models.APIError
// @Router /api/toppings [get]
func (c *toppingController) GetAllToppings(ctx *gin.Context) {
	toppings, err := c.service.ListToppings(ctx.Request.Context())
	if err != nil {
		respondWithError(ctx, err, models.ErrToppingNotFound, models.ErrToppingExists)
		return
	}
	ctx.JSON(http.StatusOK, toppings)
}

// GetToppingByID godoc
// @Summary Get topping by ID
// @Tags toppings
// @Produce json
// @Param id path int true "Topping ID"
// @Success 200 {object} models.Topping
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/toppings/{id} [get]
func (c *toppingController) GetToppingByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	topping, err := c.service.GetTopping(ctx.Request.Context(), id)
	if err != nil {
		respondWithError(ctx, err, models.ErrToppingNotFound, models.ErrToppingExists)
		return
	}
	ctx.JSON(http.StatusOK, topping)
}

// CreateTopping godoc
// @Summary Create a new topping
// @Tags toppings
// @Accept json
// @Produce json
// @Param topping body ToppingRequest true "Topping payload"
// @Success 201 {object} models.Topping
// @Failure 400 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Router /api/toppings [post]
func (c *toppingController) CreateTopping(ctx *gin.Context) {
	var req ToppingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid request body"))
		return
	}

	topping, err := c.service.CreateTopping(ctx.Request.Context(), req.Name)
	if err != nil {
		respondWithError(ctx, err, models.ErrToppingNotFound, models.ErrToppingExists)
		return
	}
	ctx.JSON(http.StatusCreated, topping)
}

// UpdateTopping godoc
// @Summary Rename a topping
// @Tags toppings
// @Accept json
// @Produce json
// @Param id path int true "Topping ID"
// @Param topping body ToppingRequest true "Topping payload"
// @Success 200 {object} models.Topping
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Router /api/toppings/{id} [put]
func (c *toppingController) UpdateTopping(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req ToppingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid request body"))
		return
	}

	topping, err := c.service.UpdateTopping(ctx.Request.Context(), id, req.Name)
	if err != nil {
		respondWithError(ctx, err, models.ErrToppingNotFound, models.ErrToppingExists)
		return
	}
	ctx.JSON(http.StatusOK, topping)
}

// DeleteTopping godoc
// @Summary Delete a topping
// @Description Delete a topping and remove it from every pizza
// @Tags toppings
// @Param id path int true "Topping ID"
// @Success 204
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Router /api/toppings/{id} [delete]
func (c *toppingController) DeleteTopping(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.service.DeleteTopping(ctx.Request.Context(), id); err != nil {
		respondWithError(ctx, err, models.ErrToppingNotFound, models.ErrToppingExists)
		return
	}
	ctx.Status(http.StatusNoContent)
}
