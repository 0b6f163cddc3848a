package models

// StatusLabel carries the user-facing name of a status in both portal languages.
type StatusLabel struct {
	Ar string `json:"ar"`
	En string `json:"en"`
}

// AllInvoiceStatuses lists every invoice status; label completeness over this
// list is enforced by tests.
var AllInvoiceStatuses = []InvoiceStatus{
	InvoiceStatusDraft,
	InvoiceStatusPending,
	InvoiceStatusPaid,
	InvoiceStatusOverdue,
	InvoiceStatusCancelled,
}

// AllPaymentStatuses lists every payment status.
var AllPaymentStatuses = []PaymentStatus{
	PaymentStatusPending,
	PaymentStatusCompleted,
	PaymentStatusFailed,
	PaymentStatusRefunded,
}

var invoiceStatusLabels = map[InvoiceStatus]StatusLabel{
	InvoiceStatusDraft:     {Ar: "مسودة", En: "Draft"},
	InvoiceStatusPending:   {Ar: "قيد الانتظار", En: "Pending"},
	InvoiceStatusPaid:      {Ar: "مدفوعة", En: "Paid"},
	InvoiceStatusOverdue:   {Ar: "متأخرة", En: "Overdue"},
	InvoiceStatusCancelled: {Ar: "ملغاة", En: "Cancelled"},
}

var paymentStatusLabels = map[PaymentStatus]StatusLabel{
	PaymentStatusPending:   {Ar: "قيد الانتظار", En: "Pending"},
	PaymentStatusCompleted: {Ar: "مكتملة", En: "Completed"},
	PaymentStatusFailed:    {Ar: "فاشلة", En: "Failed"},
	PaymentStatusRefunded:  {Ar: "مستردة", En: "Refunded"},
}

// Label returns the bilingual label for the status.
func (s InvoiceStatus) Label() StatusLabel { return invoiceStatusLabels[s] }

// Label returns the bilingual label for the status.
func (s PaymentStatus) Label() StatusLabel { return paymentStatusLabels[s] }
