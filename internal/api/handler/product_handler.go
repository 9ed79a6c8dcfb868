package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anantha-foods/ordering-system/internal/core/ports"
)

// ProductHandler exposes the catalog. Listing serves the storefront directly
// from the repository; there is no use-case logic between them.
type ProductHandler struct {
	products ports.ProductRepository
}

func NewProductHandler(products ports.ProductRepository) *ProductHandler {
	return &ProductHandler{products: products}
}

type setInventoryRequest struct {
	Count int `json:"count" validate:"gte=0"`
}

// List handles GET /v1/products.
//
// @Summary      List catalog products
// @Tags         products
// @Produce      json
// @Param        category  query  string  false  "Filter by category"
// @Param        city      query  string  false  "Only products deliverable to this city"
// @Success      200  {array}  domain.Product
// @Router       /v1/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.products.List(c.Request().Context(), ports.ProductFilter{
		Category: c.QueryParam("category"),
		City:     c.QueryParam("city"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Get handles GET /v1/products/:id.
//
// @Summary      Get a product by id
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  errorResponse
// @Router       /v1/products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.products.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// SetInventory handles PUT /v1/admin/products/:id/inventory.
//
// @Summary      Replace a product's tracked inventory count
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Product id"
// @Param        body  body      setInventoryRequest  true  "New count"
// @Success      200   {object}  map[string]int
// @Failure      404   {object}  errorResponse
// @Router       /v1/admin/products/{id}/inventory [put]
func (h *ProductHandler) SetInventory(c echo.Context) error {
	var req setInventoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.products.SetInventory(c.Request().Context(), c.Param("id"), req.Count); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]int{"inventory_count": req.Count})
}
