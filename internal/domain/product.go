package domain

import (
	"strings"
	"time"
)

// Product is a catalog entry: a service, a good, or a kit bundling other
// products.
type Product struct {
	ID        string
	Name      string
	Type      ProductType
	UnitPrice float64
	Active    bool

	// Components is only populated for kits, in composition order.
	Components []KitComponent

	CreatedAt time.Time
	UpdatedAt time.Time
}

// KitComponent is one entry of a kit's composition.
type KitComponent struct {
	ID          string
	KitID       string
	ComponentID string
	Quantity    float64

	// Filled on reads for display.
	ComponentName string
	ComponentType ProductType
	UnitPrice     float64
}

// KitLine is one leaf of an expanded kit: a non-kit product and the total
// quantity of it the kit contains.
type KitLine struct {
	ProductID string
	Name      string
	Type      ProductType
	Quantity  float64
	UnitPrice float64
}

func (p *Product) IsKit() bool { return p.Type == ProductKit }

func (p *Product) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return NewValidationError("name", ErrNameRequired)
	}
	if !ValidProductTypes[p.Type] {
		return NewValidationError("type", ErrInvalidValue)
	}
	if p.UnitPrice < 0 {
		return NewValidationError("unit_price", ErrInvalidNumber)
	}
	return nil
}
