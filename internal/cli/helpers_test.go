package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/compressorworks/crm/internal/domain"
	"github.com/compressorworks/crm/internal/repository"
	"github.com/compressorworks/crm/internal/service"
	"github.com/compressorworks/crm/internal/teatest"
	"github.com/compressorworks/crm/internal/testutil"
	"github.com/stretchr/testify/require"
)

// testApp wires every service against a fresh in-memory database.
func testApp(t *testing.T) *App {
	t.Helper()
	return testAppWithSettings(t, service.QuotationSettings{Currency: "BRL", ValidityDays: 15})
}

func testAppWithSettings(t *testing.T, settings service.QuotationSettings) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)

	return &App{
		Quotations: service.NewQuotationService(repository.NewSQLiteQuotationRepo(database), uow, settings),
		Clients: service.NewClientService(repository.NewSQLiteClientRepo(database), uow),
		Catalog: service.NewCatalogService(repository.NewSQLiteProductRepo(database), uow),
		Users:   service.NewUserService(repository.NewSQLiteUserRepo(database)),
	}
}

func seedClient(t *testing.T, app *App, name string) *domain.Client {
	t.Helper()
	c := testutil.NewTestClient(name)
	c.ID = ""
	_, err := app.Clients.Save(context.Background(), c)
	require.NoError(t, err)
	return c
}

// seedQuotation saves P-0042 for a new client with a 340 service line and a
// 76.50 good line.
func seedQuotation(t *testing.T, app *App) (*domain.Client, *domain.Quotation) {
	t.Helper()
	c := seedClient(t, app, "Metalúrgica Vale")
	q := testutil.NewTestQuotation(c.ID,
		testutil.WithProposalNumber("P-0042"),
		testutil.WithItems(
			testutil.ServiceItem("Revisão", 2, 100, 50, 20, 0),
			testutil.GoodItem("Filtro de ar", 3, 25.5),
		),
	)
	_, err := app.Quotations.Save(context.Background(), q)
	require.NoError(t, err)
	return c, q
}

// executeCmd runs the root command with args and captures its output.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// TestDriver adds view-stack inspection to the generic driver.
type TestDriver struct {
	*teatest.Driver
}

func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()
	d := teatest.New(t, newAppModel(app), teatest.WithSize(120, 40))
	d.DrainInit()
	return &TestDriver{Driver: d}
}

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	if v := m.activeView(); v != nil {
		return v.ID()
	}
	return ViewID(-1)
}

func (d *TestDriver) ViewStackLen() int {
	return len(d.appModel().viewStack)
}

// Status returns the status line text and whether it is an error.
func (d *TestDriver) Status() (string, bool) {
	m := d.appModel()
	return m.status, m.statusErr
}

func (d *TestDriver) editor() *editorView {
	d.T.Helper()
	m := d.appModel()
	v, ok := m.activeView().(*editorView)
	require.True(d.T, ok, "active view is not the editor")
	return v
}
