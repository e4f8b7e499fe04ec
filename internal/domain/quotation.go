package domain

import (
	"strings"
	"time"

	"golang.org/x/text/currency"
)

// DefaultCurrency is used when a quotation does not name one.
const DefaultCurrency = "BRL"

// CommercialTerms bundles the commercial clauses of a quotation.
type CommercialTerms struct {
	FreightType  FreightType
	PaymentTerms string
	DeliveryTerm string
	Currency     string
}

// Quotation is a priced proposal for a client. It exclusively owns its
// line items; they are persisted and replaced together with the header.
type Quotation struct {
	ID             string
	ProposalNumber string
	ClientID       string
	OwnerID        string

	CreatedDate time.Time
	ExpiryDate  *time.Time

	Description      string
	Equipment        string
	InitialCondition string
	Notes            string

	Terms  CommercialTerms
	Status QuotationStatus
	Total  float64

	Items []LineItem

	UpdatedAt time.Time
}

// IsNew reports whether the quotation has never been persisted.
func (q *Quotation) IsNew() bool { return q.ID == "" }

// Normalize trims identifying fields and fills defaults for status and
// currency.
func (q *Quotation) Normalize() {
	q.ProposalNumber = strings.TrimSpace(q.ProposalNumber)
	q.ClientID = strings.TrimSpace(q.ClientID)
	q.OwnerID = strings.TrimSpace(q.OwnerID)
	q.Terms.Currency = strings.ToUpper(CoalesceStr(strings.TrimSpace(q.Terms.Currency), DefaultCurrency))
	if q.Status == "" {
		q.Status = QuotationOpen
	}
}

// Validate checks the header and every line item.
func (q *Quotation) Validate() error {
	if q.ProposalNumber == "" {
		return NewValidationError("proposal_number", ErrRequired)
	}
	if q.ClientID == "" {
		return NewValidationError("client_id", ErrRequired)
	}
	if !ValidQuotationStatuses[q.Status] {
		return NewValidationError("status", ErrInvalidValue)
	}
	if !ValidFreightTypes[q.Terms.FreightType] {
		return NewValidationError("freight_type", ErrInvalidValue)
	}
	if _, err := currency.ParseISO(q.Terms.Currency); err != nil {
		return NewValidationError("currency", ErrInvalidValue)
	}
	if q.ExpiryDate != nil && !q.CreatedDate.IsZero() && q.ExpiryDate.Before(truncateDay(q.CreatedDate)) {
		return NewValidationError("expiry_date", ErrInvalidValue)
	}
	for _, it := range q.Items {
		if strings.TrimSpace(it.Name) == "" {
			return NewValidationError("item.name", ErrNameRequired)
		}
		if !ValidProductTypes[it.Type] {
			return NewValidationError("item.type", ErrInvalidValue)
		}
	}
	return nil
}

// RecomputeTotals refreshes every line total and the aggregate total.
func (q *Quotation) RecomputeTotals() {
	for i := range q.Items {
		q.Items[i].Recompute()
	}
	q.Total = SumLineTotals(q.Items)
}

// DefaultExpiry returns the expiry date a quotation created at created gets
// when it is valid for days days.
func DefaultExpiry(created time.Time, days int) *time.Time {
	if days <= 0 {
		return nil
	}
	d := truncateDay(created).AddDate(0, 0, days)
	return &d
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
