package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ksuibraheem/arba-sub002/internal/services/reports"
)

type ReportHandler struct {
	service *reports.Service
}

func NewReportHandler(s *reports.Service) *ReportHandler {
	return &ReportHandler{service: s}
}

func (h *ReportHandler) TrialBalance(c *gin.Context) {
	tb, err := h.service.GetTrialBalance()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trial_balance": tb})
}

func (h *ReportHandler) IncomeStatement(c *gin.Context) {
	start, err := time.Parse("2006-01-02", c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start date, expected yyyy-mm-dd"})
		return
	}
	end, err := time.Parse("2006-01-02", c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end date, expected yyyy-mm-dd"})
		return
	}
	// closed range: include the whole end day
	end = end.Add(24*time.Hour - time.Nanosecond)

	stmt, err := h.service.GetIncomeStatement(start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"income_statement": stmt})
}
