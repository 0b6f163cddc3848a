// Package metrics exposes prometheus counters for the accounting core and the
// HTTP surface.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arba_http_requests_total",
		Help: "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	InvoicesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "arba_invoices_created_total",
		Help: "Invoices created.",
	})

	InvoicesPaid = promauto.NewCounter(prometheus.CounterOpts{
		Name: "arba_invoices_paid_total",
		Help: "Invoices marked paid.",
	})

	PaymentsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "arba_payments_recorded_total",
		Help: "Payments recorded.",
	})

	JournalEntriesPosted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "arba_journal_entries_posted_total",
		Help: "Journal entries posted, including payroll and mediation entries.",
	})
)

// Middleware counts every request by route and response status.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// Handler serves the prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
