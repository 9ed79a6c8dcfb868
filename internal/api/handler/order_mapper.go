package handler

import (
	"github.com/anantha-foods/ordering-system/internal/core/domain"
	"github.com/anantha-foods/ordering-system/internal/core/ports"
)

// --- Request → Service input ---

func toCreateOrderInput(req createOrderRequest, userID string) ports.CreateOrderInput {
	items := make([]ports.OrderItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, ports.OrderItemInput{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
		})
	}
	return ports.CreateOrderInput{
		UserID:       userID,
		CustomerName: req.CustomerName,
		Email:        req.Email,
		Phone:        req.Phone,
		Address: ports.AddressInput{
			DoorNo:   req.Address.DoorNo,
			Building: req.Address.Building,
			Street:   req.Address.Street,
			City:     req.Address.City,
			State:    req.Address.State,
			Pincode:  req.Address.Pincode,
		},
		Items:            items,
		PaymentMethod:    req.PaymentMethod,
		ClientSubtotal:   req.Subtotal,
		ClientTotal:      req.Total,
		IsCustomLocation: req.IsCustomLocation,
		CustomCity:       req.CustomCity,
		CustomState:      req.CustomState,
	}
}

// --- Service result → HTTP response ---

func toCreateOrderResponse(r *ports.OrderResult) createOrderResponse {
	return createOrderResponse{
		OrderID:           r.OrderID,
		TrackingCode:      r.TrackingCode,
		Status:            r.Status,
		PaymentStatus:     r.PaymentStatus,
		Subtotal:          r.Subtotal,
		DeliveryCharge:    r.DeliveryCharge,
		Total:             r.Total,
		IsFreeDelivery:    r.IsFreeDelivery,
		CustomCityRequest: r.CustomCityRequest,
		DistanceKm:        r.DistanceKm,
		CreatedAt:         r.CreatedAt.UTC(),
		Links: orderLinks{
			Self:     "/v1/orders/" + r.OrderID,
			Tracking: "/v1/orders/" + r.OrderID + "/track",
		},
	}
}

func toGetOrderResponse(o *domain.Order) getOrderResponse {
	items := make([]lineItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = lineItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
		}
	}
	history := make([]statusHistoryItemResponse, len(o.StatusHistory))
	for i, h := range o.StatusHistory {
		history[i] = statusHistoryItemResponse{
			Status:    string(h.Status),
			Timestamp: h.Timestamp.UTC(),
			Notes:     h.Notes,
		}
	}
	return getOrderResponse{
		OrderID:      o.OrderID,
		TrackingCode: o.TrackingCode,
		CustomerName: o.CustomerName,
		Email:        o.Email,
		Phone:        o.Phone,
		Address: addressResponse{
			DoorNo:   o.Address.DoorNo,
			Building: o.Address.Building,
			Street:   o.Address.Street,
			City:     o.Address.City,
			State:    o.Address.State,
			Pincode:  o.Address.Pincode,
		},
		Items:             items,
		Subtotal:          o.Subtotal,
		DeliveryCharge:    o.DeliveryCharge,
		Total:             o.Total,
		PaymentMethod:     o.PaymentMethod,
		PaymentStatus:     string(o.PaymentStatus),
		Status:            string(o.Status),
		StatusHistory:     history,
		IsFreeDelivery:    o.IsFreeDelivery,
		CustomCityRequest: o.CustomCityRequest,
		DistanceKm:        o.DistanceFromHomeKm,
		CreatedAt:         o.CreatedAt.UTC(),
		Links: orderLinks{
			Self:     "/v1/orders/" + o.OrderID,
			Tracking: "/v1/orders/" + o.OrderID + "/track",
		},
	}
}
