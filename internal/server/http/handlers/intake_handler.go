package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/palletworks/portal/internal/server/http/dto"
	"github.com/palletworks/portal/internal/usecase"
)

// IntakeHandler serves the public submission endpoints.
type IntakeHandler struct {
	facade IntakeFacade
}

// NewIntakeHandler constructs IntakeHandler.
func NewIntakeHandler(facade IntakeFacade) *IntakeHandler {
	return &IntakeHandler{facade: facade}
}

// Contact handles POST /api/intake/contact.
func (h *IntakeHandler) Contact(c *gin.Context) {
	var req usecase.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	receipt, err := h.facade.SubmitContact(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, toSubmissionResponse(receipt))
}

// Quote handles POST /api/intake/quote.
func (h *IntakeHandler) Quote(c *gin.Context) {
	var req usecase.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	receipt, err := h.facade.SubmitQuote(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, toSubmissionResponse(receipt))
}

// Pickup handles POST /api/intake/pickup.
func (h *IntakeHandler) Pickup(c *gin.Context) {
	var req usecase.PickupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	receipt, err := h.facade.SubmitPickup(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, toSubmissionResponse(receipt))
}

func toSubmissionResponse(receipt *usecase.SubmissionReceipt) dto.SubmissionResponse {
	return dto.SubmissionResponse{
		OK:           true,
		SubmissionID: receipt.SubmissionID.String(),
		Upstream:     receipt.Upstream,
	}
}
