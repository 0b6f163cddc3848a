package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/ksuibraheem/arba-sub002/internal/models"
	"github.com/ksuibraheem/arba-sub002/internal/services/ledger"
)

type LedgerHandler struct {
	service *ledger.Service
}

func NewLedgerHandler(s *ledger.Service) *LedgerHandler {
	return &LedgerHandler{service: s}
}

func (h *LedgerHandler) Add(c *gin.Context) {
	var payload struct {
		Description string          `json:"description"`
		Type        string          `json:"type"`
		Amount      decimal.Decimal `json:"amount"`
		Category    string          `json:"category"`
		Reference   string          `json:"reference"`
		CreatedBy   string          `json:"created_by"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	entry, err := h.service.Add(ledger.AddParams{
		Description: payload.Description,
		Type:        models.LedgerEntryType(payload.Type),
		Amount:      payload.Amount,
		Category:    payload.Category,
		Reference:   payload.Reference,
		CreatedBy:   payload.CreatedBy,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "entry added", "entry": entry})
}

func (h *LedgerHandler) List(c *gin.Context) {
	entries, err := h.service.Entries()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": entries, "count": len(entries)})
}

func (h *LedgerHandler) Balance(c *gin.Context) {
	balance, err := h.service.CurrentBalance()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": balance})
}
