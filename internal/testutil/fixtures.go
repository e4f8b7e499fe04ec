package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/compressorworks/crm/internal/domain"
	"github.com/google/uuid"
)

var testSeq atomic.Int64

func nextSeq() int64 { return testSeq.Add(1) }

// Client options
type ClientOption func(*domain.Client)

func WithTradeName(n string) ClientOption {
	return func(c *domain.Client) {
		c.TradeName = n
	}
}

func WithFiscalID(id string) ClientOption {
	return func(c *domain.Client) {
		c.FiscalID = id
	}
}

func WithCity(city string) ClientOption {
	return func(c *domain.Client) {
		c.City = city
	}
}

func WithContact(name, role string) ClientOption {
	return func(c *domain.Client) {
		c.Contacts = append(c.Contacts, domain.Contact{Name: name, Role: role})
	}
}

// NewTestClient returns a client with a unique 14-digit fiscal id.
func NewTestClient(name string, opts ...ClientOption) *domain.Client {
	now := time.Now().UTC()
	c := &domain.Client{
		ID:        uuid.New().String(),
		Name:      name,
		FiscalID:  fmt.Sprintf("%014d", 10000000000000+nextSeq()),
		City:      "Campinas",
		State:     "SP",
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Product options
type ProductOption func(*domain.Product)

func WithUnitPrice(p float64) ProductOption {
	return func(pr *domain.Product) {
		pr.UnitPrice = p
	}
}

func WithInactive() ProductOption {
	return func(pr *domain.Product) {
		pr.Active = false
	}
}

func NewTestProduct(name string, t domain.ProductType, opts ...ProductOption) *domain.Product {
	now := time.Now().UTC()
	p := &domain.Product{
		ID:        uuid.New().String(),
		Name:      name,
		Type:      t,
		UnitPrice: 10,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func NewTestUser(login string, role domain.UserRole) *domain.User {
	now := time.Now().UTC()
	return &domain.User{
		ID:           uuid.New().String(),
		Login:        login,
		Name:         "User " + login,
		Role:         role,
		PasswordHash: "x",
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Quotation options
type QuotationOption func(*domain.Quotation)

func WithProposalNumber(n string) QuotationOption {
	return func(q *domain.Quotation) {
		q.ProposalNumber = n
	}
}

func WithStatus(s domain.QuotationStatus) QuotationOption {
	return func(q *domain.Quotation) {
		q.Status = s
	}
}

func WithOwner(userID string) QuotationOption {
	return func(q *domain.Quotation) {
		q.OwnerID = userID
	}
}

func WithExpiry(d time.Time) QuotationOption {
	return func(q *domain.Quotation) {
		q.ExpiryDate = &d
	}
}

// WithItems appends items and refreshes every total.
func WithItems(items ...domain.LineItem) QuotationOption {
	return func(q *domain.Quotation) {
		q.Items = append(q.Items, items...)
		q.RecomputeTotals()
	}
}

// NewTestQuotation returns an unsaved quotation for clientID with a unique
// proposal number.
func NewTestQuotation(clientID string, opts ...QuotationOption) *domain.Quotation {
	q := &domain.Quotation{
		ProposalNumber: fmt.Sprintf("T-%04d", nextSeq()),
		ClientID:       clientID,
		Description:    "Revisão geral",
		Equipment:      "Compressor parafuso 40hp",
		Terms:          domain.CommercialTerms{Currency: domain.DefaultCurrency},
		Status:         domain.QuotationOpen,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// ServiceItem builds a priced service line.
func ServiceItem(name string, qty, price, labor, travel, lodging float64) domain.LineItem {
	li := domain.LineItem{
		Type: domain.ProductService, Name: name, Quantity: qty, UnitPrice: price,
		Labor: labor, Travel: travel, Lodging: lodging,
	}
	li.Recompute()
	return li
}

// GoodItem builds a priced good line.
func GoodItem(name string, qty, price float64) domain.LineItem {
	li := domain.LineItem{Type: domain.ProductGood, Name: name, Quantity: qty, UnitPrice: price}
	li.Recompute()
	return li
}
