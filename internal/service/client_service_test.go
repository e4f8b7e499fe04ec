package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/compressorworks/crm/internal/domain"
	"github.com/compressorworks/crm/internal/repository"
	"github.com/compressorworks/crm/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClientService(t *testing.T) (ClientService, *repository.SQLiteClientRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	clients := repository.NewSQLiteClientRepo(database)
	return NewClientService(clients, testutil.NewTestUoW(database)), clients
}

func TestClientService_SaveCreatesWithContacts(t *testing.T) {
	svc, _ := newClientService(t)
	ctx := context.Background()

	c := &domain.Client{
		Name:     "  Ar Comprimido Sul ",
		FiscalID: "12.345.678/0001-90",
		Contacts: []domain.Contact{{Name: "Joana"}, {Name: "Rui"}},
	}
	id, err := svc.Save(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, id, c.ID)

	got, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ar Comprimido Sul", got.Name)
	assert.Equal(t, "12345678000190", got.FiscalID)
	assert.Len(t, got.Contacts, 2)
}

func TestClientService_SaveReplacesContacts(t *testing.T) {
	svc, _ := newClientService(t)
	ctx := context.Background()

	c := testutil.NewTestClient("Beta", testutil.WithContact("A", ""), testutil.WithContact("B", ""))
	c.ID = ""
	id, err := svc.Save(ctx, c)
	require.NoError(t, err)

	c.Contacts = c.Contacts[1:]
	c.City = "Santos"
	_, err = svc.Save(ctx, c)
	require.NoError(t, err)

	got, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Santos", got.City)
	require.Len(t, got.Contacts, 1)
	assert.Equal(t, "B", got.Contacts[0].Name)
}

func TestClientService_Validation(t *testing.T) {
	svc, _ := newClientService(t)
	ctx := context.Background()

	_, err := svc.Save(ctx, &domain.Client{FiscalID: "1"})
	assert.ErrorIs(t, err, domain.ErrNameRequired)

	_, err = svc.Save(ctx, &domain.Client{Name: "x", FiscalID: "abc"})
	assert.ErrorIs(t, err, domain.ErrRequired)
}

func TestClientService_DuplicateFiscalIDRollsBackContacts(t *testing.T) {
	svc, _ := newClientService(t)
	ctx := context.Background()

	_, err := svc.Save(ctx, &domain.Client{Name: "A", FiscalID: "11222333000181"})
	require.NoError(t, err)

	dup := &domain.Client{Name: "B", FiscalID: "11.222.333/0001-81", Contacts: []domain.Contact{{Name: "x"}}}
	_, err = svc.Save(ctx, dup)
	assert.ErrorIs(t, err, domain.ErrDuplicateFiscalID)
	assert.Empty(t, dup.ID)

	res, err := svc.Search(ctx, "")
	require.NoError(t, err)
	assert.Len(t, res, 1)
}

func TestClientService_SearchOrdersByName(t *testing.T) {
	svc, _ := newClientService(t)
	ctx := context.Background()

	for i, name := range []string{"Compressores Zeta", "Ânfora Compressores", "Beta Compressores", "Outra"} {
		_, err := svc.Save(ctx, &domain.Client{Name: name, FiscalID: strconv.Itoa(1000 + i)})
		require.NoError(t, err)
	}

	res, err := svc.Search(ctx, "compressores")
	require.NoError(t, err)
	require.Len(t, res, 3)
	assert.Equal(t, "Ânfora Compressores", res[0].Name)
	assert.Equal(t, "Beta Compressores", res[1].Name)
	assert.Equal(t, "Compressores Zeta", res[2].Name)
}

func TestClientService_DeleteWithQuotationsIsInUse(t *testing.T) {
	database := testutil.NewTestDB(t)
	clients := repository.NewSQLiteClientRepo(database)
	uow := testutil.NewTestUoW(database)
	svc := NewClientService(clients, uow)
	quotes := NewQuotationService(repository.NewSQLiteQuotationRepo(database), uow, testSettings)
	ctx := context.Background()

	id, err := svc.Save(ctx, &domain.Client{Name: "A", FiscalID: "1"})
	require.NoError(t, err)
	_, err = quotes.Save(ctx, testutil.NewTestQuotation(id))
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, id), domain.ErrInUse)

	other, err := svc.Save(ctx, &domain.Client{Name: "B", FiscalID: "2"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, other))
	_, err = svc.Get(ctx, other)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClientService_AddContact(t *testing.T) {
	svc, clients := newClientService(t)
	ctx := context.Background()

	id, err := svc.Save(ctx, &domain.Client{Name: "A", FiscalID: "1", Contacts: []domain.Contact{{Name: "First"}}})
	require.NoError(t, err)

	require.NoError(t, svc.AddContact(ctx, id, domain.Contact{Name: " Second ", Role: "Compras"}))
	contacts, err := clients.ListContacts(ctx, id)
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	assert.Equal(t, "Second", contacts[1].Name)

	assert.ErrorIs(t, svc.AddContact(ctx, "missing", domain.Contact{Name: "x"}), domain.ErrNotFound)
	assert.ErrorIs(t, svc.AddContact(ctx, id, domain.Contact{}), domain.ErrNameRequired)
}
