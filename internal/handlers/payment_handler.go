package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ksuibraheem/arba-sub002/internal/metrics"
	"github.com/ksuibraheem/arba-sub002/internal/models"
	"github.com/ksuibraheem/arba-sub002/internal/services/payments"
)

type PaymentHandler struct {
	service *payments.Service
}

func NewPaymentHandler(s *payments.Service) *PaymentHandler {
	return &PaymentHandler{service: s}
}

func (h *PaymentHandler) Record(c *gin.Context) {
	var payload struct {
		InvoiceID    string          `json:"invoice_id"`
		ClientID     string          `json:"client_id"`
		Amount       decimal.Decimal `json:"amount"`
		Method       string          `json:"method"`
		CustomerName string          `json:"customer_name"`
		Reference    string          `json:"reference"`
		CreatedBy    string          `json:"created_by"`
		FromUpload   bool            `json:"from_upload"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	params := payments.RecordParams{
		Amount:       payload.Amount,
		Method:       models.PaymentMethod(payload.Method),
		CustomerName: payload.CustomerName,
		Reference:    payload.Reference,
		CreatedBy:    payload.CreatedBy,
		FromUpload:   payload.FromUpload,
	}
	if payload.InvoiceID != "" {
		id, err := uuid.Parse(payload.InvoiceID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invoice ID"})
			return
		}
		params.InvoiceID = &id
	}
	if payload.ClientID != "" {
		id, err := uuid.Parse(payload.ClientID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid client ID"})
			return
		}
		params.ClientID = &id
	}

	payment, err := h.service.Record(params)
	if err != nil {
		respondError(c, err)
		return
	}

	metrics.PaymentsRecorded.Inc()
	c.JSON(http.StatusCreated, gin.H{"message": "payment recorded", "payment": payment})
}

func (h *PaymentHandler) Verify(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	var payload struct {
		Verifier string `json:"verifier"`
	}
	_ = c.BindJSON(&payload)

	payment, err := h.service.Verify(id, payload.Verifier)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "payment verified", "payment": payment})
}

func (h *PaymentHandler) Fail(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	payment, err := h.service.Fail(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "payment failed", "payment": payment})
}

func (h *PaymentHandler) Refund(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	var payload struct {
		Actor string `json:"actor"`
	}
	_ = c.BindJSON(&payload)

	payment, err := h.service.Refund(id, payload.Actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "payment refunded", "payment": payment})
}

func (h *PaymentHandler) LinkToClient(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	var payload struct {
		ClientID string `json:"client_id"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	clientID, err := uuid.Parse(payload.ClientID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid client ID"})
		return
	}

	payment, err := h.service.LinkToClient(clientID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "payment linked to client", "payment": payment})
}

func (h *PaymentHandler) List(c *gin.Context) {
	items, err := h.service.List(models.PaymentStatus(c.Query("status")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

func (h *PaymentHandler) CreateClient(c *gin.Context) {
	var payload struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	client, err := h.service.CreateClient(payload.Name, payload.Email, payload.Phone)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "client created", "client": client})
}

func (h *PaymentHandler) SearchClients(c *gin.Context) {
	clients, err := h.service.SearchClients(c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": clients, "count": len(clients)})
}

func (h *PaymentHandler) ClientSummary(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	summary, err := h.service.ClientSummary(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
