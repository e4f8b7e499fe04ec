package repository

import (
	"context"
	"time"

	"github.com/compressorworks/crm/internal/domain"
)

// QuotationSummary is a joined view of a quotation header with its client
// name, used by list screens.
type QuotationSummary struct {
	ID             string
	ProposalNumber string
	ClientID       string
	ClientName     string
	CreatedDate    time.Time
	ExpiryDate     *time.Time
	Status         domain.QuotationStatus
	Currency       string
	Total          float64
	ItemCount      int
}

// QuotationFilter narrows List. Zero values match everything.
type QuotationFilter struct {
	Status   domain.QuotationStatus
	ClientID string
}

// KitEdge is one kit -> component link of the catalog's composition graph.
type KitEdge struct {
	KitID       string
	ComponentID string
}

type ClientRepo interface {
	Create(ctx context.Context, c *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	Exists(ctx context.Context, id string) (bool, error)
	Update(ctx context.Context, c *domain.Client) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, term string) ([]domain.ClientSummary, error)
	ReplaceContacts(ctx context.Context, clientID string, contacts []domain.Contact) error
	ListContacts(ctx context.Context, clientID string) ([]domain.Contact, error)
}

type ProductRepo interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, includeInactive bool) ([]*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
	ReplaceKitComponents(ctx context.Context, kitID string, components []domain.KitComponent) error
	ListKitComponents(ctx context.Context, kitID string) ([]domain.KitComponent, error)
	ListKitEdges(ctx context.Context) ([]KitEdge, error)
}

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByLogin(ctx context.Context, login string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}

type QuotationRepo interface {
	Create(ctx context.Context, q *domain.Quotation) error
	GetByID(ctx context.Context, id string) (*domain.Quotation, error)
	List(ctx context.Context, f QuotationFilter) ([]QuotationSummary, error)
	Update(ctx context.Context, q *domain.Quotation) error
	SetStatus(ctx context.Context, id string, status domain.QuotationStatus) error
	Delete(ctx context.Context, id string) error
	ProposalNumberTaken(ctx context.Context, number, excludeID string) (bool, error)
}

type LineItemRepo interface {
	Create(ctx context.Context, li *domain.LineItem) error
	ListByQuotation(ctx context.Context, quotationID string) ([]domain.LineItem, error)
	DeleteByQuotation(ctx context.Context, quotationID string) error
}
