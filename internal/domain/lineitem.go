package domain

// LineItem is one priced row of a quotation. It is a snapshot: a kit line
// keeps the name and price it had when added and does not follow later
// changes to the kit's composition.
type LineItem struct {
	ID          string
	QuotationID string
	Position    int

	Type      ProductType
	Name      string
	Quantity  float64
	UnitPrice float64
	LineTotal float64
	Note      string

	// Surcharges, only meaningful for services.
	Labor   float64
	Travel  float64
	Lodging float64
}

// ComputeLineTotal prices one line. Services add their surcharges to the
// unit price before multiplying; goods and kits ignore them. No rounding is
// applied here.
func ComputeLineTotal(t ProductType, quantity, unitPrice, labor, travel, lodging float64) float64 {
	if t == ProductService {
		return quantity * (unitPrice + labor + travel + lodging)
	}
	return quantity * unitPrice
}

// Recompute zeroes surcharges on non-service lines and refreshes LineTotal.
func (li *LineItem) Recompute() {
	if li.Type != ProductService {
		li.Labor, li.Travel, li.Lodging = 0, 0, 0
	}
	li.LineTotal = ComputeLineTotal(li.Type, li.Quantity, li.UnitPrice, li.Labor, li.Travel, li.Lodging)
}

// Surcharges returns labor + travel + lodging.
func (li *LineItem) Surcharges() float64 {
	return li.Labor + li.Travel + li.Lodging
}

// SumLineTotals folds the line totals in sequence order.
func SumLineTotals(items []LineItem) float64 {
	var total float64
	for _, it := range items {
		total += it.LineTotal
	}
	return total
}
