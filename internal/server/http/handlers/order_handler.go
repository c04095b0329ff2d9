package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/palletworks/portal/internal/domain/model"
	"github.com/palletworks/portal/internal/pricing"
	"github.com/palletworks/portal/internal/server/http/dto"
	"github.com/palletworks/portal/internal/usecase"
)

// OrderHandler serves the administrative order endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/admin/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "customerId must be a uuid"})
		return
	}

	items := make([]usecase.NewOrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "productId must be a uuid"})
			return
		}
		unitPrice := decimal.Zero
		if item.UnitPrice != "" {
			unitPrice, err = decimal.NewFromString(item.UnitPrice)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unitPrice must be a decimal string"})
				return
			}
		}
		items = append(items, usecase.NewOrderItem{
			ProductID:   productID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   unitPrice,
			IsCustom:    item.IsCustom,
			CustomSpecs: item.CustomSpecs,
		})
	}

	order, err := h.facade.CreateOrder(c.Request.Context(), customerID, req.CustomerEmail, items)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(order))
}

// Get handles GET /api/admin/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order id must be a uuid"})
		return
	}

	order, err := h.facade.Order(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

// UpdateStatus handles PATCH /api/admin/orders/:id/status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order id must be a uuid"})
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	var deliveryDate *time.Time
	if req.DeliveryDate != "" {
		parsed, err := time.Parse("2006-01-02", req.DeliveryDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "deliveryDate must be YYYY-MM-DD"})
			return
		}
		deliveryDate = &parsed
	}

	order, err := h.facade.UpdateOrderStatus(c.Request.Context(), orderID, model.OrderStatus(req.Status), deliveryDate, req.Version)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

// UpdateDeliveryPrice handles PATCH /api/admin/orders/:id/delivery-price.
func (h *OrderHandler) UpdateDeliveryPrice(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order id must be a uuid"})
		return
	}

	var req dto.UpdateDeliveryPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must be a decimal string"})
		return
	}

	order, err := h.facade.SetDeliveryPrice(c.Request.Context(), orderID, price, req.Version)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

// UpdateItemPrice handles PATCH /api/admin/items/:id/price.
func (h *OrderHandler) UpdateItemPrice(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item id must be a uuid"})
		return
	}

	var req dto.UpdateItemPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must be a decimal string"})
		return
	}

	change, err := h.facade.UpdateItemPrice(c.Request.Context(), itemID, price, req.Version)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PriceChangeResponse{
		Item:       toOrderItemResponse(*change.Item),
		OrderTotal: pricing.Display(change.OrderTotal),
	})
}
