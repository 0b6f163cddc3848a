package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/ksuibraheem/arba-sub002/internal/metrics"
	"github.com/ksuibraheem/arba-sub002/internal/models"
	"github.com/ksuibraheem/arba-sub002/internal/services/journal"
)

type JournalHandler struct {
	service *journal.Service
}

func NewJournalHandler(s *journal.Service) *JournalHandler {
	return &JournalHandler{service: s}
}

type journalLinePayload struct {
	AccountCode string          `json:"account_code"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	EntityName  string          `json:"entity_name"`
}

func (h *JournalHandler) Post(c *gin.Context) {
	var payload struct {
		Date        string               `json:"date"` // "2006-01-02", optional
		Description string               `json:"description"`
		Source      string               `json:"source"`
		CreatedBy   string               `json:"created_by"`
		Lines       []journalLinePayload `json:"lines"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	var date time.Time
	if payload.Date != "" {
		var err error
		date, err = time.Parse("2006-01-02", payload.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, expected yyyy-mm-dd"})
			return
		}
	}

	source := models.JournalSource(payload.Source)
	if payload.Source == "" {
		source = models.JournalSourceManual
	}

	lines := make([]journal.LineParams, 0, len(payload.Lines))
	for _, l := range payload.Lines {
		lines = append(lines, journal.LineParams{
			AccountCode: l.AccountCode,
			Debit:       l.Debit,
			Credit:      l.Credit,
			EntityName:  l.EntityName,
		})
	}

	entry, err := h.service.PostEntry(journal.PostParams{
		Date:        date,
		Description: payload.Description,
		Source:      source,
		CreatedBy:   payload.CreatedBy,
		Lines:       lines,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	metrics.JournalEntriesPosted.Inc()
	c.JSON(http.StatusCreated, gin.H{"message": "entry posted", "entry": entry})
}

func (h *JournalHandler) Payroll(c *gin.Context) {
	var payload struct {
		Employees  []journal.EmployeePay `json:"employees"`
		ApprovedBy string                `json:"approved_by"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	entry, err := h.service.CreatePayrollAccrualEntry(payload.Employees, payload.ApprovedBy)
	if err != nil {
		respondError(c, err)
		return
	}

	metrics.JournalEntriesPosted.Inc()
	c.JSON(http.StatusCreated, gin.H{"message": "payroll accrual posted", "entry": entry})
}

func (h *JournalHandler) Mediation(c *gin.Context) {
	var payload struct {
		SaleAmount     decimal.Decimal `json:"sale_amount"`
		BuyerName      string          `json:"buyer_name"`
		PurchaseAmount decimal.Decimal `json:"purchase_amount"`
		SupplierName   string          `json:"supplier_name"`
		Description    string          `json:"description"`
		ApprovedBy     string          `json:"approved_by"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	result, err := h.service.CreateMediationEntries(journal.MediationParams{
		SaleAmount:     payload.SaleAmount,
		BuyerName:      payload.BuyerName,
		PurchaseAmount: payload.PurchaseAmount,
		SupplierName:   payload.SupplierName,
		Description:    payload.Description,
		ApprovedBy:     payload.ApprovedBy,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	metrics.JournalEntriesPosted.Add(2)
	c.JSON(http.StatusCreated, gin.H{"message": "mediation entries posted", "result": result})
}

func (h *JournalHandler) Reverse(c *gin.Context) {
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

	entry, err := h.service.ReverseEntry(id, payload.Actor, payload.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	metrics.JournalEntriesPosted.Inc()
	c.JSON(http.StatusCreated, gin.H{"message": "entry reversed", "entry": entry})
}

func (h *JournalHandler) List(c *gin.Context) {
	entries, err := h.service.Entries()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": entries, "count": len(entries)})
}

func (h *JournalHandler) Get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	entry, err := h.service.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entry": entry})
}
