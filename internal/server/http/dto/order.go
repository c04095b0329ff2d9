package dto

import "encoding/json"

// CreateOrderRequest describes a new order. Monetary amounts travel as
// decimal strings to avoid float precision loss in transit.
type CreateOrderRequest struct {
	CustomerID    string                   `json:"customerId"`
	CustomerEmail string                   `json:"customerEmail"`
	Items         []CreateOrderItemRequest `json:"items"`
}

// CreateOrderItemRequest is one line of a new order.
type CreateOrderItemRequest struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   string          `json:"unitPrice"`
	IsCustom    bool            `json:"isCustom"`
	CustomSpecs json.RawMessage `json:"customSpecs,omitempty"`
}

// UpdateStatusRequest moves an order to a new status. DeliveryDate uses
// YYYY-MM-DD and is required when shipping an order without a stored date.
type UpdateStatusRequest struct {
	Status       string `json:"status"`
	DeliveryDate string `json:"deliveryDate,omitempty"`
	Version      int64  `json:"version"`
}

// UpdateDeliveryPriceRequest sets the explicit delivery price.
type UpdateDeliveryPriceRequest struct {
	Price   string `json:"price"`
	Version int64  `json:"version"`
}

// UpdateItemPriceRequest quotes a price for a single item.
type UpdateItemPriceRequest struct {
	Price   string `json:"price"`
	Version int64  `json:"version"`
}

// OrderItemResponse is one order line as returned to admins.
type OrderItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   string          `json:"unitPrice"`
	IsCustom    bool            `json:"isCustom"`
	CustomSpecs json.RawMessage `json:"customSpecs,omitempty"`
}

// OrderResponse is the admin view of an order.
type OrderResponse struct {
	ID            string              `json:"id"`
	CustomerID    string              `json:"customerId"`
	CustomerEmail string              `json:"customerEmail"`
	Status        string              `json:"status"`
	DeliveryPrice *string             `json:"deliveryPrice"`
	DeliveryDate  *string             `json:"deliveryDate"`
	Total         string              `json:"total"`
	Version       int64               `json:"version"`
	Items         []OrderItemResponse `json:"items"`
	CreatedAt     string              `json:"createdAt"`
	UpdatedAt     string              `json:"updatedAt"`
}

// PriceChangeResponse reports the outcome of an item price update.
type PriceChangeResponse struct {
	Item       OrderItemResponse `json:"item"`
	OrderTotal string            `json:"orderTotal"`
}

// PreconditionResponse enumerates the pricing requirements blocking an order
// from leaving pending.
type PreconditionResponse struct {
	Error                string   `json:"error"`
	MissingDeliveryPrice bool     `json:"missingDeliveryPrice"`
	MissingDeliveryDate  bool     `json:"missingDeliveryDate"`
	UnpricedItemIDs      []string `json:"unpricedItemIds"`
}
