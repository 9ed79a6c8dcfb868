package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/anantha-foods/ordering-system/internal/core/domain"
	"github.com/anantha-foods/ordering-system/internal/core/ports"
)

// CityHandler exposes the delivery-city registry and its approval queue.
type CityHandler struct {
	service ports.CityService
}

func NewCityHandler(service ports.CityService) *CityHandler {
	return &CityHandler{service: service}
}

type locationResponse struct {
	City                  string   `json:"city"`
	State                 string   `json:"state"`
	DeliveryCharge        float64  `json:"delivery_charge"`
	FreeDeliveryThreshold *float64 `json:"free_delivery_threshold,omitempty"`
}

type upsertLocationRequest struct {
	City                  string   `json:"city"            validate:"required"`
	State                 string   `json:"state"           validate:"required"`
	DeliveryCharge        float64  `json:"delivery_charge" validate:"gte=0"`
	FreeDeliveryThreshold *float64 `json:"free_delivery_threshold"`
}

type customCityQuoteRequest struct {
	City  string `json:"city"  validate:"required"`
	State string `json:"state" validate:"required"`
}

type customCityQuoteResponse struct {
	City           string   `json:"city"`
	State          string   `json:"state"`
	DeliveryCharge float64  `json:"delivery_charge"`
	DistanceKm     *float64 `json:"distance_km,omitempty"`
}

type pendingCityResponse struct {
	City            string    `json:"city"`
	State           string    `json:"state"`
	DistanceKm      *float64  `json:"distance_km,omitempty"`
	SuggestedCharge float64   `json:"suggested_charge"`
	FirstOrderDate  time.Time `json:"first_order_date"`
	OrderCount      int       `json:"order_count"`
}

type approveCityRequest struct {
	City                  string   `json:"city"            validate:"required"`
	State                 string   `json:"state"           validate:"required"`
	DeliveryCharge        float64  `json:"delivery_charge" validate:"gte=0"`
	FreeDeliveryThreshold *float64 `json:"free_delivery_threshold"`
}

// ListLocations handles GET /v1/locations.
//
// @Summary      List deliverable cities with their charges
// @Tags         locations
// @Produce      json
// @Success      200  {array}  locationResponse
// @Router       /v1/locations [get]
func (h *CityHandler) ListLocations(c echo.Context) error {
	records, err := h.service.ListLocations(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLocationResponses(records))
}

// CustomCityQuote handles POST /v1/delivery/custom-city-quote.
//
// @Summary      Estimate the delivery charge for an unlisted city
// @Tags         locations
// @Accept       json
// @Produce      json
// @Param        body  body      customCityQuoteRequest  true  "City and state"
// @Success      200   {object}  customCityQuoteResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/delivery/custom-city-quote [post]
func (h *CityHandler) CustomCityQuote(c echo.Context) error {
	var req customCityQuoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	quote, err := h.service.CustomCityQuote(c.Request().Context(), req.City, req.State)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, customCityQuoteResponse{
		City:           quote.City,
		State:          quote.State,
		DeliveryCharge: quote.DeliveryCharge,
		DistanceKm:     quote.DistanceKm,
	})
}

// UpsertLocation handles PUT /v1/admin/locations.
//
// @Summary      Create or update a registry record
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      upsertLocationRequest  true  "Registry record"
// @Success      200   {object}  locationResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/admin/locations [put]
func (h *CityHandler) UpsertLocation(c echo.Context) error {
	var req upsertLocationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	err := h.service.UpsertLocation(c.Request().Context(), ports.UpsertLocationInput{
		City:                  req.City,
		State:                 req.State,
		Charge:                req.DeliveryCharge,
		FreeDeliveryThreshold: req.FreeDeliveryThreshold,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, locationResponse{
		City:                  req.City,
		State:                 req.State,
		DeliveryCharge:        req.DeliveryCharge,
		FreeDeliveryThreshold: req.FreeDeliveryThreshold,
	})
}

// DeleteLocation handles DELETE /v1/admin/locations/:city.
// State is passed as a query parameter because city names repeat across states.
//
// @Summary      Remove a registry record
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        city   path      string  true  "City name"
// @Param        state  query     string  true  "State name"
// @Success      204
// @Failure      404   {object}  errorResponse
// @Router       /v1/admin/locations/{city} [delete]
func (h *CityHandler) DeleteLocation(c echo.Context) error {
	city := c.Param("city")
	state := c.QueryParam("state")
	if state == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "state query parameter is required")
	}
	if err := h.service.DeleteLocation(c.Request().Context(), city, state); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// PendingCities handles GET /v1/admin/cities/pending.
//
// @Summary      List custom destinations awaiting approval
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  pendingCityResponse
// @Router       /v1/admin/cities/pending [get]
func (h *CityHandler) PendingCities(c echo.Context) error {
	pending, err := h.service.PendingCities(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]pendingCityResponse, len(pending))
	for i, p := range pending {
		out[i] = pendingCityResponse{
			City:            p.City,
			State:           p.State,
			DistanceKm:      p.DistanceKm,
			SuggestedCharge: p.SuggestedCharge,
			FirstOrderDate:  p.FirstOrderDate.UTC(),
			OrderCount:      p.OrderCount,
		}
	}
	return c.JSON(http.StatusOK, out)
}

// ApproveCity handles POST /v1/admin/cities/approve.
//
// @Summary      Promote a pending destination to the registry
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      approveCityRequest  true  "Approval details"
// @Success      201   {object}  locationResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/admin/cities/approve [post]
func (h *CityHandler) ApproveCity(c echo.Context) error {
	var req approveCityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	record, err := h.service.ApproveCity(c.Request().Context(), ports.ApproveCityInput{
		City:                  req.City,
		State:                 req.State,
		Charge:                req.DeliveryCharge,
		FreeDeliveryThreshold: req.FreeDeliveryThreshold,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toLocationResponse(record))
}

func toLocationResponse(r *domain.CityCharge) locationResponse {
	return locationResponse{
		City:                  r.Name,
		State:                 r.State,
		DeliveryCharge:        r.Charge,
		FreeDeliveryThreshold: r.FreeDeliveryThreshold,
	}
}

func toLocationResponses(records []*domain.CityCharge) []locationResponse {
	out := make([]locationResponse, len(records))
	for i, r := range records {
		out[i] = toLocationResponse(r)
	}
	return out
}
