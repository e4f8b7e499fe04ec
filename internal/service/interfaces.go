package service

import (
	"context"

	"github.com/compressorworks/crm/internal/domain"
	"github.com/compressorworks/crm/internal/repository"
	"github.com/shopspring/decimal"
)

type QuotationService interface {
	// Save persists the quotation header and replaces its items in one
	// transaction, returning the quotation id. q is updated only on success.
	Save(ctx context.Context, q *domain.Quotation) (string, error)
	Get(ctx context.Context, id string) (*domain.Quotation, error)
	List(ctx context.Context, f repository.QuotationFilter) ([]repository.QuotationSummary, error)
	SetStatus(ctx context.Context, id string, status domain.QuotationStatus) error
	Delete(ctx context.Context, id string) error
	// Copy saves a new open quotation with src's header and items under a
	// new proposal number.
	Copy(ctx context.Context, srcID, proposalNumber string) (string, error)
	// Settings returns the defaults applied to new quotations.
	Settings() QuotationSettings
}

type ClientService interface {
	Save(ctx context.Context, c *domain.Client) (string, error)
	Get(ctx context.Context, id string) (*domain.Client, error)
	Search(ctx context.Context, term string) ([]domain.ClientSummary, error)
	Delete(ctx context.Context, id string) error
	AddContact(ctx context.Context, clientID string, ct domain.Contact) error
}

// ImportResult holds the outcome of a catalog import.
type ImportResult struct {
	Created int
	Updated int
}

type CatalogService interface {
	Create(ctx context.Context, p *domain.Product) error
	Get(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, includeInactive bool) ([]*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
	SetKitComposition(ctx context.Context, kitID string, components []domain.KitComponent) error
	ExpandKit(ctx context.Context, kitID string) ([]domain.KitLine, error)
	SuggestedKitPrice(ctx context.Context, kitID string) (decimal.Decimal, error)
	Import(ctx context.Context, products []*domain.Product) (*ImportResult, error)
}

type UserService interface {
	Create(ctx context.Context, u *domain.User, password string) error
	List(ctx context.Context) ([]*domain.User, error)
	Authenticate(ctx context.Context, login, password string) (*domain.User, error)
}
