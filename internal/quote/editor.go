// Package quote holds the in-memory quotation editor: the aggregate being
// built on screen before it is handed to the quotation service for saving.
package quote

import (
	"fmt"
	"strings"
	"time"

	"github.com/compressorworks/crm/internal/domain"
)

// LineItemInput carries the raw text of the add-item form.
type LineItemInput struct {
	Type      domain.ProductType
	Name      string
	Quantity  string
	UnitPrice string
	Note      string
	Labor     string
	Travel    string
	Lodging   string
}

// ItemsState is the item sequence and aggregate total after a mutation.
// Items is a copy; changing it does not affect the editor.
type ItemsState struct {
	Items []domain.LineItem
	Total float64
}

// HeaderInput carries the raw text of the quotation header form.
type HeaderInput struct {
	ProposalNumber   string
	OwnerID          string
	ExpiryDate       string
	Description      string
	Equipment        string
	InitialCondition string
	Notes            string
	FreightType      string
	PaymentTerms     string
	DeliveryTerm     string
	Currency         string
}

// Editor builds one quotation in memory. Nothing is persisted until the
// quotation is passed to QuotationService.Save.
type Editor struct {
	q          *domain.Quotation
	clientName string
}

// NewEditor edits q, or a fresh open quotation when q is nil. A fresh
// quotation has no currency until one is set or the service applies its
// configured default on save.
func NewEditor(q *domain.Quotation) *Editor {
	if q == nil {
		q = &domain.Quotation{Status: domain.QuotationOpen}
	}
	return &Editor{q: q}
}

// NewDraft starts a fresh open quotation priced in currency.
func NewDraft(currency string) *Editor {
	return NewEditor(&domain.Quotation{
		Status: domain.QuotationOpen,
		Terms:  domain.CommercialTerms{Currency: currency},
	})
}

// FromQuotation starts a new, unsaved quotation copying src's header and
// items under proposal number number. The copy is open and undated.
func FromQuotation(src *domain.Quotation, number string) *Editor {
	cp := *src
	cp.ID = ""
	cp.ProposalNumber = strings.TrimSpace(number)
	cp.Status = domain.QuotationOpen
	cp.CreatedDate = time.Time{}
	cp.ExpiryDate = nil
	cp.UpdatedAt = time.Time{}
	cp.Items = make([]domain.LineItem, len(src.Items))
	for i, it := range src.Items {
		it.ID = ""
		it.QuotationID = ""
		cp.Items[i] = it
	}
	cp.RecomputeTotals()
	return &Editor{q: &cp}
}

// Quotation returns the aggregate being edited.
func (e *Editor) Quotation() *domain.Quotation { return e.q }

// ClientName is the display name of the bound client, if any.
func (e *Editor) ClientName() string { return e.clientName }

// BindClient makes c the quotation's client.
func (e *Editor) BindClient(c domain.ClientSummary) {
	e.q.ClientID = c.ID
	e.clientName = c.Name
}

// MarkSaved takes the identity the service assigned to saved: id, dates and
// a defaulted currency. Items and header text already in the editor are
// kept, so edits made while the save ran survive it.
func (e *Editor) MarkSaved(saved *domain.Quotation) {
	e.q.ID = saved.ID
	e.q.CreatedDate = saved.CreatedDate
	e.q.UpdatedAt = saved.UpdatedAt
	if e.q.ExpiryDate == nil && saved.ExpiryDate != nil {
		d := *saved.ExpiryDate
		e.q.ExpiryDate = &d
	}
	if e.q.Terms.Currency == "" {
		e.q.Terms.Currency = saved.Terms.Currency
	}
}

// ApplyHeader parses and stores the header fields. On error the quotation
// is left unchanged.
func (e *Editor) ApplyHeader(in HeaderInput) error {
	expiry, err := ParseDate(in.ExpiryDate)
	if err != nil {
		return domain.NewValidationError("expiry_date", err)
	}
	freight := domain.FreightType(strings.ToUpper(strings.TrimSpace(in.FreightType)))
	if !domain.ValidFreightTypes[freight] {
		return domain.NewValidationError("freight_type", domain.ErrInvalidValue)
	}

	e.q.ProposalNumber = strings.TrimSpace(in.ProposalNumber)
	e.q.OwnerID = strings.TrimSpace(in.OwnerID)
	e.q.ExpiryDate = expiry
	e.q.Description = in.Description
	e.q.Equipment = in.Equipment
	e.q.InitialCondition = in.InitialCondition
	e.q.Notes = in.Notes
	e.q.Terms = domain.CommercialTerms{
		FreightType:  freight,
		PaymentTerms: strings.TrimSpace(in.PaymentTerms),
		DeliveryTerm: strings.TrimSpace(in.DeliveryTerm),
		Currency:     strings.ToUpper(strings.TrimSpace(in.Currency)),
	}
	return nil
}

// Header returns the current header as form text.
func (e *Editor) Header() HeaderInput {
	in := HeaderInput{
		ProposalNumber:   e.q.ProposalNumber,
		OwnerID:          e.q.OwnerID,
		Description:      e.q.Description,
		Equipment:        e.q.Equipment,
		InitialCondition: e.q.InitialCondition,
		Notes:            e.q.Notes,
		FreightType:      string(e.q.Terms.FreightType),
		PaymentTerms:     e.q.Terms.PaymentTerms,
		DeliveryTerm:     e.q.Terms.DeliveryTerm,
		Currency:         e.q.Terms.Currency,
	}
	if e.q.ExpiryDate != nil {
		in.ExpiryDate = e.q.ExpiryDate.Format("02/01/2006")
	}
	return in
}

// AddLineItem parses in, prices the line and appends it. On error the item
// sequence is untouched.
func (e *Editor) AddLineItem(in LineItemInput) (ItemsState, error) {
	li, err := parseLineItem(in)
	if err != nil {
		return e.Items(), err
	}
	e.q.Items = append(e.q.Items, li)
	e.q.Total = domain.SumLineTotals(e.q.Items)
	return e.Items(), nil
}

// AddProduct appends a line pre-filled from a catalog product. Kit lines
// carry their composition in the note.
func (e *Editor) AddProduct(p *domain.Product, quantity string) (ItemsState, error) {
	in := LineItemInput{
		Type:      p.Type,
		Name:      p.Name,
		Quantity:  quantity,
		UnitPrice: FormatQuantity(p.UnitPrice),
	}
	if p.IsKit() {
		in.Note = KitNote(p.Components)
	}
	return e.AddLineItem(in)
}

// RemoveLineItem removes the item at pos. Any pos outside the sequence,
// including -1 for "nothing selected", is rejected.
func (e *Editor) RemoveLineItem(pos int) (ItemsState, error) {
	if pos < 0 || pos >= len(e.q.Items) {
		return e.Items(), &domain.ValidationError{Err: domain.ErrNoSelection}
	}
	e.q.Items = append(e.q.Items[:pos:pos], e.q.Items[pos+1:]...)
	e.q.Total = domain.SumLineTotals(e.q.Items)
	return e.Items(), nil
}

// Items returns a copy of the current sequence with its total.
func (e *Editor) Items() ItemsState {
	items := make([]domain.LineItem, len(e.q.Items))
	copy(items, e.q.Items)
	return ItemsState{Items: items, Total: domain.SumLineTotals(items)}
}

// Total sums the current line totals in order.
func (e *Editor) Total() float64 {
	return domain.SumLineTotals(e.q.Items)
}

func parseLineItem(in LineItemInput) (domain.LineItem, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.LineItem{}, domain.NewValidationError("name", domain.ErrNameRequired)
	}
	t := in.Type
	if t == "" {
		t = domain.ProductService
	}
	if !domain.ValidProductTypes[t] {
		return domain.LineItem{}, domain.NewValidationError("type", domain.ErrInvalidValue)
	}

	qty, err := ParseAmount(in.Quantity, 1)
	if err != nil {
		return domain.LineItem{}, domain.NewValidationError("quantity", err)
	}
	price, err := ParseAmount(in.UnitPrice, 0)
	if err != nil {
		return domain.LineItem{}, domain.NewValidationError("unit_price", err)
	}

	li := domain.LineItem{
		Type:      t,
		Name:      name,
		Quantity:  qty,
		UnitPrice: price,
		Note:      strings.TrimSpace(in.Note),
	}
	if t == domain.ProductService {
		fields := []struct {
			name string
			text string
			dst  *float64
		}{
			{"labor", in.Labor, &li.Labor},
			{"travel", in.Travel, &li.Travel},
			{"lodging", in.Lodging, &li.Lodging},
		}
		for _, f := range fields {
			v, err := ParseAmount(f.text, 0)
			if err != nil {
				return domain.LineItem{}, domain.NewValidationError(f.name, err)
			}
			*f.dst = v
		}
	}
	li.Recompute()
	return li, nil
}

// KitNote describes a kit's composition, e.g. "Inclui: 1x Óleo, 2x Filtro".
func KitNote(components []domain.KitComponent) string {
	if len(components) == 0 {
		return ""
	}
	parts := make([]string, len(components))
	for i, c := range components {
		parts[i] = fmt.Sprintf("%sx %s", FormatQuantity(c.Quantity), c.ComponentName)
	}
	return "Inclui: " + strings.Join(parts, ", ")
}
