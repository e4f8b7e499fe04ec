package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/compressorworks/crm/internal/domain"
	"github.com/compressorworks/crm/internal/repository"
)

// resolveQuotationID accepts a proposal number (case-insensitive), a full
// id or a unique id prefix.
func resolveQuotationID(ctx context.Context, app *App, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("quotation is required")
	}

	list, err := app.Quotations.List(ctx, repository.QuotationFilter{})
	if err != nil {
		return "", err
	}

	for _, q := range list {
		if strings.EqualFold(q.ProposalNumber, input) || q.ID == input {
			return q.ID, nil
		}
	}

	var matches []string
	for _, q := range list {
		if strings.HasPrefix(q.ID, input) {
			matches = append(matches, q.ID)
		}
	}
	return pickOne("quotation", input, matches)
}

// resolveClientID accepts a client id, an id prefix, or a search term that
// matches exactly one client.
func resolveClientID(ctx context.Context, app *App, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("client is required")
	}

	if c, err := app.Clients.Get(ctx, input); err == nil {
		return c.ID, nil
	}

	found, err := app.Clients.Search(ctx, input)
	if err != nil {
		return "", err
	}
	var matches []string
	for _, c := range found {
		if strings.HasPrefix(c.ID, input) || domain.FoldText(c.Name) == domain.FoldText(input) {
			return c.ID, nil
		}
		matches = append(matches, c.ID)
	}
	return pickOne("client", input, matches)
}

// resolveProductID accepts a product id, an id prefix or an exact name
// (accents and case ignored).
func resolveProductID(ctx context.Context, app *App, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("product is required")
	}

	products, err := app.Catalog.List(ctx, true)
	if err != nil {
		return "", err
	}
	key := domain.FoldText(input)
	for _, p := range products {
		if p.ID == input || domain.FoldText(p.Name) == key {
			return p.ID, nil
		}
	}

	var matches []string
	for _, p := range products {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}
	return pickOne("product", input, matches)
}

func pickOne(what, input string, matches []string) (string, error) {
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s %q: %w", what, input, domain.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s %q is ambiguous (%d matches)", what, input, len(matches))
	}
}
