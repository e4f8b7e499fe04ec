package service

import (
	"context"
	"testing"

	"github.com/compressorworks/crm/internal/domain"
	"github.com/compressorworks/crm/internal/repository"
	"github.com/compressorworks/crm/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogService(t *testing.T) CatalogService {
	t.Helper()
	database := testutil.NewTestDB(t)
	return NewCatalogService(repository.NewSQLiteProductRepo(database), testutil.NewTestUoW(database))
}

func mustCreate(t *testing.T, svc CatalogService, name string, typ domain.ProductType, price float64) *domain.Product {
	t.Helper()
	p := &domain.Product{Name: name, Type: typ, UnitPrice: price}
	require.NoError(t, svc.Create(context.Background(), p))
	return p
}

func TestCatalog_SetKitCompositionAndExpand(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	oil := mustCreate(t, svc, "Óleo", domain.ProductGood, 45.10)
	filter := mustCreate(t, svc, "Filtro", domain.ProductGood, 80)
	labor := mustCreate(t, svc, "Troca", domain.ProductService, 120)
	inner := mustCreate(t, svc, "Kit filtros", domain.ProductKit, 0)
	outer := mustCreate(t, svc, "Kit revisão", domain.ProductKit, 0)

	require.NoError(t, svc.SetKitComposition(ctx, inner.ID, []domain.KitComponent{
		{ComponentID: filter.ID, Quantity: 2},
		{ComponentID: oil.ID, Quantity: 1},
	}))
	require.NoError(t, svc.SetKitComposition(ctx, outer.ID, []domain.KitComponent{
		{ComponentID: oil.ID, Quantity: 3},
		{ComponentID: inner.ID, Quantity: 2},
		{ComponentID: labor.ID, Quantity: 1},
	}))

	lines, err := svc.ExpandKit(ctx, outer.ID)
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, "Óleo", lines[0].Name)
	assert.Equal(t, 5.0, lines[0].Quantity)
	assert.Equal(t, "Filtro", lines[1].Name)
	assert.Equal(t, 4.0, lines[1].Quantity)
	assert.Equal(t, "Troca", lines[2].Name)

	price, err := svc.SuggestedKitPrice(ctx, outer.ID)
	require.NoError(t, err)
	assert.Equal(t, "665.5", price.String())
}

func TestCatalog_KitCyclesRejected(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	a := mustCreate(t, svc, "Kit A", domain.ProductKit, 0)
	b := mustCreate(t, svc, "Kit B", domain.ProductKit, 0)
	c := mustCreate(t, svc, "Kit C", domain.ProductKit, 0)

	err := svc.SetKitComposition(ctx, a.ID, []domain.KitComponent{{ComponentID: a.ID, Quantity: 1}})
	assert.ErrorIs(t, err, domain.ErrKitCycle)

	require.NoError(t, svc.SetKitComposition(ctx, a.ID, []domain.KitComponent{{ComponentID: b.ID, Quantity: 1}}))
	require.NoError(t, svc.SetKitComposition(ctx, b.ID, []domain.KitComponent{{ComponentID: c.ID, Quantity: 1}}))
	err = svc.SetKitComposition(ctx, c.ID, []domain.KitComponent{{ComponentID: a.ID, Quantity: 1}})
	assert.ErrorIs(t, err, domain.ErrKitCycle)

	got, err := svc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Components, "rejected composition not written")
}

func TestCatalog_SetKitCompositionValidation(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	kit := mustCreate(t, svc, "Kit", domain.ProductKit, 0)
	good := mustCreate(t, svc, "Peça", domain.ProductGood, 1)

	assert.ErrorIs(t, svc.SetKitComposition(ctx, kit.ID, []domain.KitComponent{{ComponentID: good.ID, Quantity: 0}}), domain.ErrInvalidNumber)
	assert.ErrorIs(t, svc.SetKitComposition(ctx, kit.ID, []domain.KitComponent{{ComponentID: "missing", Quantity: 1}}), domain.ErrNotFound)
	assert.ErrorIs(t, svc.SetKitComposition(ctx, good.ID, []domain.KitComponent{{ComponentID: kit.ID, Quantity: 1}}), domain.ErrInvalidValue)
	assert.ErrorIs(t, svc.SetKitComposition(ctx, "missing", nil), domain.ErrNotFound)
}

func TestCatalog_DeleteComponentInUse(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	part := mustCreate(t, svc, "Peça", domain.ProductGood, 1)
	kit := mustCreate(t, svc, "Kit", domain.ProductKit, 0)
	require.NoError(t, svc.SetKitComposition(ctx, kit.ID, []domain.KitComponent{{ComponentID: part.ID, Quantity: 1}}))

	assert.ErrorIs(t, svc.Delete(ctx, part.ID), domain.ErrInUse)
	require.NoError(t, svc.Delete(ctx, kit.ID))
	require.NoError(t, svc.Delete(ctx, part.ID))
}

func TestCatalog_ImportUpsertsByFoldedName(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	existing := mustCreate(t, svc, "Óleo sintético", domain.ProductGood, 100)

	res, err := svc.Import(ctx, []*domain.Product{
		{Name: "oleo sintetico", Type: domain.ProductGood, UnitPrice: 120},
		{Name: "Visita técnica", Type: domain.ProductService, UnitPrice: 250},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Updated)
	assert.Equal(t, 1, res.Created)

	got, err := svc.Get(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, 120.0, got.UnitPrice)
	assert.Equal(t, "Óleo sintético", got.Name)

	all, err := svc.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCatalog_ImportRejectsInvalidRowWithoutWriting(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	_, err := svc.Import(ctx, []*domain.Product{
		{Name: "ok", Type: domain.ProductGood, UnitPrice: 1},
		{Name: "bad", Type: "misc"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")

	all, err := svc.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCatalog_KitWithComponentsKeepsItsType(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	oil := mustCreate(t, svc, "Óleo", domain.ProductGood, 45)
	kit := mustCreate(t, svc, "Kit troca", domain.ProductKit, 0)
	empty := mustCreate(t, svc, "Kit vazio", domain.ProductKit, 0)
	require.NoError(t, svc.SetKitComposition(ctx, kit.ID, []domain.KitComponent{{ComponentID: oil.ID, Quantity: 1}}))

	changed := *kit
	changed.Type = domain.ProductGood
	err := svc.Update(ctx, &changed)
	require.ErrorIs(t, err, domain.ErrKitHasComponents)
	assert.True(t, domain.IsValidation(err))

	_, err = svc.Import(ctx, []*domain.Product{
		{Name: "Correia", Type: domain.ProductGood, UnitPrice: 30},
		{Name: "kit troca", Type: domain.ProductService, UnitPrice: 99},
	})
	require.ErrorIs(t, err, domain.ErrKitHasComponents)

	got, err := svc.Get(ctx, kit.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProductKit, got.Type)
	assert.Len(t, got.Components, 1)
	all, err := svc.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 3, "the aborted import created nothing")

	empty.Type = domain.ProductService
	require.NoError(t, svc.Update(ctx, empty))
	got, err = svc.Get(ctx, empty.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProductService, got.Type)

	missing := &domain.Product{ID: "missing", Name: "X", Type: domain.ProductGood}
	assert.ErrorIs(t, svc.Update(ctx, missing), domain.ErrNotFound)
}

func TestCatalog_SetActive(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	p := mustCreate(t, svc, "Peça", domain.ProductGood, 1)
	require.NoError(t, svc.SetActive(ctx, p.ID, false))

	active, err := svc.List(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, active)
}
