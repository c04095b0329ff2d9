package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/palletworks/portal/internal/adapter/workflow"
	domainErrors "github.com/palletworks/portal/internal/domain/errors"
	"github.com/palletworks/portal/internal/domain/model"
	"github.com/palletworks/portal/internal/pricing"
	"github.com/palletworks/portal/internal/server/http/dto"
)

// respondError maps domain failures to transport statuses. Anything the map
// does not recognize becomes an opaque 500.
func respondError(c *gin.Context, err error) {
	var verr *domainErrors.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": verr.Details})
		return
	}

	var perr *domainErrors.PreconditionError
	if errors.As(err, &perr) {
		ids := make([]string, 0, len(perr.UnpricedItemIDs))
		for _, id := range perr.UnpricedItemIDs {
			ids = append(ids, id.String())
		}
		c.JSON(http.StatusUnprocessableEntity, dto.PreconditionResponse{
			Error:                perr.Error(),
			MissingDeliveryPrice: perr.MissingDeliveryPrice,
			MissingDeliveryDate:  perr.MissingDeliveryDate,
			UnpricedItemIDs:      ids,
		})
		return
	}

	var terr *domainErrors.TransitionError
	if errors.As(err, &terr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": terr.Error()})
		return
	}

	var relayErr *workflow.RelayError
	if errors.As(err, &relayErr) {
		c.JSON(http.StatusBadGateway, dto.RelayFailureResponse{
			OK:        false,
			Retryable: true,
			Error:     "workflow relay failed",
		})
		return
	}

	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domainErrors.ErrVersionConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "version conflict, reload and retry"})
	case errors.Is(err, domainErrors.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must not be negative"})
	case errors.Is(err, domainErrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func toOrderItemResponse(item model.OrderItem) dto.OrderItemResponse {
	return dto.OrderItemResponse{
		ID:          item.ID.String(),
		ProductID:   item.ProductID.String(),
		ProductName: item.ProductName,
		Quantity:    item.Quantity,
		UnitPrice:   pricing.Display(item.UnitPrice),
		IsCustom:    item.IsCustom,
		CustomSpecs: item.CustomSpecs,
	}
}

func toOrderResponse(order *model.Order) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:            order.ID.String(),
		CustomerID:    order.CustomerID.String(),
		CustomerEmail: order.CustomerEmail,
		Status:        string(order.Status),
		Total:         pricing.Display(order.Total),
		Version:       order.Version,
		CreatedAt:     order.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:     order.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if order.DeliveryPrice != nil {
		price := pricing.Display(*order.DeliveryPrice)
		resp.DeliveryPrice = &price
	}
	if order.DeliveryDate != nil {
		date := order.DeliveryDate.Format("2006-01-02")
		resp.DeliveryDate = &date
	}
	resp.Items = make([]dto.OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		resp.Items = append(resp.Items, toOrderItemResponse(item))
	}
	return resp
}
