package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anantha-foods/ordering-system/internal/core/ports"
)

// OrderHandler handles HTTP requests for order operations.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// Create handles POST /v1/orders.
//
// @Summary      Place a new order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body      createOrderRequest  true  "Order details"
// @Success      201   {object}  createOrderResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	// Guest checkout is allowed; user_id is set only when a token was sent.
	result, err := h.service.CreateOrder(c.Request().Context(), toCreateOrderInput(req, ctxUserID(c)))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toCreateOrderResponse(result))
}

// Get handles GET /v1/orders/:order_id.
//
// @Summary      Get an order by its public id
// @Tags         orders
// @Produce      json
// @Param        order_id  path      string  true  "Order id (e.g. AL202501150042)"
// @Success      200       {object}  getOrderResponse
// @Failure      404       {object}  errorResponse
// @Router       /v1/orders/{order_id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	order, err := h.service.GetOrder(c.Request().Context(), c.Param("order_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toGetOrderResponse(order))
}

// UpdateStatus handles PATCH /v1/admin/orders/:order_id/status.
//
// @Summary      Update order status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        order_id  path      string                    true  "Order id"
// @Param        body      body      updateOrderStatusRequest  true  "New status"
// @Success      200       {object}  map[string]string
// @Failure      404       {object}  errorResponse
// @Failure      422       {object}  errorResponse
// @Router       /v1/admin/orders/{order_id}/status [patch]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var req updateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	err := h.service.UpdateStatus(c.Request().Context(), ports.UpdateOrderStatusInput{
		OrderID: c.Param("order_id"),
		Status:  req.Status,
		Notes:   req.Notes,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"status": req.Status})
}
