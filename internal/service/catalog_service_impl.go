package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/compressorworks/crm/internal/db"
	"github.com/compressorworks/crm/internal/domain"
	"github.com/compressorworks/crm/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type catalogService struct {
	products repository.ProductRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewCatalogService(products repository.ProductRepo, uow db.UnitOfWork, observers ...UseCaseObserver) CatalogService {
	return &catalogService{products: products, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *catalogService) Create(ctx context.Context, p *domain.Product) (err error) {
	defer observe(ctx, s.observer, "create-product", time.Now().UTC(),
		map[string]any{"type": string(p.Type)}, &err)

	if err = p.Validate(); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	p.Active = true
	return classifyStoreErr("creating product", s.products.Create(ctx, p))
}

func (s *catalogService) Get(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, classifyStoreErr("loading product", err)
	}
	return p, nil
}

func (s *catalogService) List(ctx context.Context, includeInactive bool) ([]*domain.Product, error) {
	list, err := s.products.List(ctx, includeInactive)
	if err != nil {
		return nil, classifyStoreErr("listing products", err)
	}
	return list, nil
}

// Update stores p. A kit keeps its type while it has components.
func (s *catalogService) Update(ctx context.Context, p *domain.Product) (err error) {
	defer observe(ctx, s.observer, "update-product", time.Now().UTC(),
		map[string]any{"product_id": p.ID, "type": string(p.Type)}, &err)

	if err = p.Validate(); err != nil {
		return err
	}
	p.UpdatedAt = time.Now().UTC()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProducts := repository.NewSQLiteProductRepo(tx)
		cur, err := txProducts.GetByID(ctx, p.ID)
		if err != nil {
			return err
		}
		if err := checkKitTypeChange(ctx, txProducts, cur, p.Type); err != nil {
			return err
		}
		return txProducts.Update(ctx, p)
	})
	return classifyStoreErr("updating product", err)
}

// checkKitTypeChange rejects turning cur into newType when cur is a kit
// with components, which would leave its composition orphaned.
func checkKitTypeChange(ctx context.Context, products repository.ProductRepo, cur *domain.Product, newType domain.ProductType) error {
	if !cur.IsKit() || newType == domain.ProductKit {
		return nil
	}
	components, err := products.ListKitComponents(ctx, cur.ID)
	if err != nil {
		return err
	}
	if len(components) > 0 {
		return domain.NewValidationError("type", domain.ErrKitHasComponents)
	}
	return nil
}

func (s *catalogService) SetActive(ctx context.Context, id string, active bool) error {
	return classifyStoreErr("toggling product", s.products.SetActive(ctx, id, active))
}

// Delete removes a product that no kit references.
func (s *catalogService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-product", time.Now().UTC(), map[string]any{"product_id": id}, &err)

	return classifyDeleteErr("deleting product", s.products.Delete(ctx, id))
}

// SetKitComposition replaces the kit's components. Every component must
// exist with a positive quantity, and the resulting catalog must not let a
// kit contain itself, directly or through nested kits.
func (s *catalogService) SetKitComposition(ctx context.Context, kitID string, components []domain.KitComponent) (err error) {
	defer observe(ctx, s.observer, "set-kit-composition", time.Now().UTC(),
		map[string]any{"kit_id": kitID, "components": len(components)}, &err)

	for _, c := range components {
		if c.ComponentID == "" {
			return domain.NewValidationError("component_id", domain.ErrRequired)
		}
		if c.Quantity <= 0 {
			return domain.NewValidationError("quantity", domain.ErrInvalidNumber)
		}
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProducts := repository.NewSQLiteProductRepo(tx)

		kit, err := txProducts.GetByID(ctx, kitID)
		if err != nil {
			return err
		}
		if !kit.IsKit() {
			return domain.NewValidationError("type", domain.ErrInvalidValue)
		}
		for _, c := range components {
			if _, err := txProducts.GetByID(ctx, c.ComponentID); err != nil {
				return err
			}
		}

		edges, err := txProducts.ListKitEdges(ctx)
		if err != nil {
			return err
		}
		graph := domain.KitGraph{}
		for _, e := range edges {
			if e.KitID != kitID {
				graph.AddEdge(e.KitID, e.ComponentID)
			}
		}
		for _, c := range components {
			graph.AddEdge(kitID, c.ComponentID)
		}
		if cycle := graph.FindCycle(kitID); cycle != nil {
			return fmt.Errorf("kit %s via %s: %w", kit.Name, strings.Join(cycle, " -> "), domain.ErrKitCycle)
		}

		return txProducts.ReplaceKitComponents(ctx, kitID, components)
	})
	return classifyStoreErr("setting kit composition", err)
}

// ExpandKit flattens a kit into its non-kit products. Quantities of nested
// kits are multiplied through; a product reached by several paths appears
// once with the summed quantity, in first-seen order.
func (s *catalogService) ExpandKit(ctx context.Context, kitID string) ([]domain.KitLine, error) {
	kit, err := s.products.GetByID(ctx, kitID)
	if err != nil {
		return nil, classifyStoreErr("loading kit", err)
	}
	if !kit.IsKit() {
		return nil, domain.NewValidationError("type", domain.ErrInvalidValue)
	}

	var lines []domain.KitLine
	index := make(map[string]int)
	var walk func(components []domain.KitComponent, factor float64, depth int) error
	walk = func(components []domain.KitComponent, factor float64, depth int) error {
		if depth > maxKitDepth {
			return domain.ErrKitCycle
		}
		for _, c := range components {
			qty := c.Quantity * factor
			if c.ComponentType == domain.ProductKit {
				nested, err := s.products.ListKitComponents(ctx, c.ComponentID)
				if err != nil {
					return err
				}
				if err := walk(nested, qty, depth+1); err != nil {
					return err
				}
				continue
			}
			if i, ok := index[c.ComponentID]; ok {
				lines[i].Quantity += qty
				continue
			}
			index[c.ComponentID] = len(lines)
			lines = append(lines, domain.KitLine{
				ProductID: c.ComponentID,
				Name:      c.ComponentName,
				Type:      c.ComponentType,
				Quantity:  qty,
				UnitPrice: c.UnitPrice,
			})
		}
		return nil
	}
	if err := walk(kit.Components, 1, 0); err != nil {
		return nil, classifyStoreErr("expanding kit", err)
	}
	return lines, nil
}

const maxKitDepth = 32

// SuggestedKitPrice sums component price times quantity over the expanded
// kit, rounded to cents.
func (s *catalogService) SuggestedKitPrice(ctx context.Context, kitID string) (decimal.Decimal, error) {
	lines, err := s.ExpandKit(ctx, kitID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(decimal.NewFromFloat(l.UnitPrice).Mul(decimal.NewFromFloat(l.Quantity)))
	}
	return total.Round(2), nil
}

// Import upserts products by accent-folded name: existing products get the
// imported type and price, new names are created active. A row that would
// turn a kit with components into another type aborts the import.
func (s *catalogService) Import(ctx context.Context, products []*domain.Product) (res *ImportResult, err error) {
	fields := map[string]any{"rows": len(products)}
	defer observe(ctx, s.observer, "import-catalog", time.Now().UTC(), fields, &err)

	for i, p := range products {
		if err = p.Validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
	}

	res = &ImportResult{}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProducts := repository.NewSQLiteProductRepo(tx)
		existing, err := txProducts.List(ctx, true)
		if err != nil {
			return err
		}
		byName := make(map[string]*domain.Product, len(existing))
		for _, p := range existing {
			byName[domain.FoldText(p.Name)] = p
		}

		now := time.Now().UTC()
		for _, p := range products {
			key := domain.FoldText(p.Name)
			if cur, ok := byName[key]; ok {
				if err := checkKitTypeChange(ctx, txProducts, cur, p.Type); err != nil {
					return fmt.Errorf("%s: %w", p.Name, err)
				}
				cur.Type = p.Type
				cur.UnitPrice = p.UnitPrice
				cur.UpdatedAt = now
				if err := txProducts.Update(ctx, cur); err != nil {
					return err
				}
				res.Updated++
				continue
			}
			p.ID = uuid.New().String()
			p.Active = true
			p.CreatedAt = now
			p.UpdatedAt = now
			if err := txProducts.Create(ctx, p); err != nil {
				return err
			}
			byName[key] = p
			res.Created++
		}
		return nil
	})
	if err != nil {
		return nil, classifyStoreErr("importing catalog", err)
	}
	fields["created"] = res.Created
	fields["updated"] = res.Updated
	return res, nil
}
