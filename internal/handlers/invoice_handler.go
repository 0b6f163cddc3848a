package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ksuibraheem/arba-sub002/internal/metrics"
	"github.com/ksuibraheem/arba-sub002/internal/models"
	"github.com/ksuibraheem/arba-sub002/internal/services/invoices"
)

type InvoiceHandler struct {
	service *invoices.Service
}

func NewInvoiceHandler(s *invoices.Service) *InvoiceHandler {
	return &InvoiceHandler{service: s}
}

func (h *InvoiceHandler) Create(c *gin.Context) {
	var payload struct {
		ClientID      string                    `json:"client_id"`
		CustomerName  string                    `json:"customer_name"`
		CustomerEmail string                    `json:"customer_email"`
		Items         []invoices.LineItemParams `json:"items"`
		Discount      decimal.Decimal           `json:"discount"`
		DueDate       string                    `json:"due_date"` // "2006-01-02"
		AsDraft       bool                      `json:"as_draft"`
		CreatedBy     string                    `json:"created_by"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	dueDate, err := time.Parse("2006-01-02", payload.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid due date format, expected yyyy-mm-dd"})
		return
	}

	var clientID *uuid.UUID
	if payload.ClientID != "" {
		id, err := uuid.Parse(payload.ClientID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid client ID"})
			return
		}
		clientID = &id
	}

	invoice, err := h.service.Create(invoices.CreateParams{
		ClientID:      clientID,
		CustomerName:  payload.CustomerName,
		CustomerEmail: payload.CustomerEmail,
		Items:         payload.Items,
		Discount:      payload.Discount,
		DueDate:       dueDate,
		AsDraft:       payload.AsDraft,
		CreatedBy:     payload.CreatedBy,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	metrics.InvoicesCreated.Inc()
	c.JSON(http.StatusCreated, gin.H{"message": "invoice created", "invoice": invoice})
}

func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	invoice, err := h.service.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoice": invoice})
}

func (h *InvoiceHandler) List(c *gin.Context) {
	var statuses []models.InvoiceStatus
	if status := c.Query("status"); status != "" && status != "all" {
		statuses = append(statuses, models.InvoiceStatus(status))
	}

	items, err := h.service.List(c.Query("search"), statuses)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

func (h *InvoiceHandler) MarkAsPaid(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	var payload struct {
		Actor string `json:"actor"`
	}
	_ = c.BindJSON(&payload)

	invoice, err := h.service.MarkAsPaid(id, payload.Actor)
	if err != nil {
		respondError(c, err)
		return
	}

	metrics.InvoicesPaid.Inc()
	c.JSON(http.StatusOK, gin.H{"message": "invoice marked as paid", "invoice": invoice})
}

func (h *InvoiceHandler) Cancel(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	invoice, err := h.service.Cancel(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "invoice cancelled", "invoice": invoice})
}

func (h *InvoiceHandler) RecordEdit(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	var payload struct {
		Actor  string `json:"actor"`
		Reason string `json:"reason"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	invoice, err := h.service.RecordEdit(id, payload.Actor, payload.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "edit recorded", "invoice": invoice})
}

func (h *InvoiceHandler) SweepOverdue(c *gin.Context) {
	count, err := h.service.SweepOverdue(time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "overdue sweep completed", "invoices_updated": count})
}
