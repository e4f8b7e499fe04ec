package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/compressorworks/crm/internal/cli/formatter"
	"github.com/compressorworks/crm/internal/domain"
	"github.com/compressorworks/crm/internal/quote"
)

// Form results delivered to the editor view.

type itemFormMsg struct {
	in quote.LineItemInput
}

type productFormMsg struct {
	product  *domain.Product
	quantity string
}

type headerFormMsg struct {
	in quote.HeaderInput
}

// errorFormView shows err in a note and reports it when dismissed.
func errorFormView(state *SharedState, title string, err error) View {
	form := newForm(huh.NewGroup(huh.NewNote().Title("Error").Description(UserMessage(err))))
	return newWizardView(state, title, form, func() tea.Cmd { return showError(err) })
}

func productTypeOptions() []huh.Option[string] {
	return []huh.Option[string]{
		huh.NewOption(domain.ProductService.Label(), string(domain.ProductService)),
		huh.NewOption(domain.ProductGood.Label(), string(domain.ProductGood)),
		huh.NewOption(domain.ProductKit.Label(), string(domain.ProductKit)),
	}
}

type itemFields struct {
	typ, name, quantity, unitPrice, note string
	labor, travel, lodging               string
}

func (f *itemFields) input() quote.LineItemInput {
	return quote.LineItemInput{
		Type:      domain.ProductType(f.typ),
		Name:      f.name,
		Quantity:  f.quantity,
		UnitPrice: f.unitPrice,
		Note:      f.note,
		Labor:     f.labor,
		Travel:    f.travel,
		Lodging:   f.lodging,
	}
}

// newItemFormView collects a free-text line item. The surcharge group is
// only shown for services.
func newItemFormView(state *SharedState) View {
	f := &itemFields{typ: string(domain.ProductService), quantity: "1"}

	form := newForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Tipo").
				Options(productTypeOptions()...).
				Value(&f.typ),
			huh.NewInput().
				Title("Descrição").
				Value(&f.name).
				Validate(validateRequired("description")),
			huh.NewInput().
				Title("Quantidade").
				Placeholder("1").
				Value(&f.quantity).
				Validate(validateAmount),
			huh.NewInput().
				Title("Preço unitário").
				Placeholder("0,00").
				Value(&f.unitPrice).
				Validate(validateAmount),
			huh.NewInput().
				Title("Observação").
				Placeholder("optional").
				Value(&f.note),
		),
		huh.NewGroup(
			huh.NewInput().Title("Mão de obra").Placeholder("0,00").Value(&f.labor).Validate(validateAmount),
			huh.NewInput().Title("Deslocamento").Placeholder("0,00").Value(&f.travel).Validate(validateAmount),
			huh.NewInput().Title("Hospedagem").Placeholder("0,00").Value(&f.lodging).Validate(validateAmount),
		).WithHideFunc(func() bool { return f.typ != string(domain.ProductService) }),
	)

	done := func() tea.Cmd {
		in := f.input()
		return func() tea.Msg { return itemFormMsg{in: in} }
	}
	return newWizardView(state, "Novo item", form, done)
}

// newProductFormView picks an active catalog product and a quantity.
func newProductFormView(state *SharedState) View {
	ctx := context.Background()
	products, err := state.App.Catalog.List(ctx, false)
	if err != nil {
		return errorFormView(state, "Produto do catálogo", err)
	}
	if len(products) == 0 {
		form := newForm(huh.NewGroup(huh.NewNote().Title("Catálogo vazio").Description("Add products with `crm catalog add` first.")))
		return newWizardView(state, "Produto do catálogo", form, nil)
	}

	options := make([]huh.Option[string], 0, len(products))
	for _, p := range products {
		label := fmt.Sprintf("%s · %s · %s", p.Name, p.Type.Label(), formatter.Amount(p.UnitPrice))
		options = append(options, huh.NewOption(label, p.ID))
	}

	productID := products[0].ID
	quantity := "1"
	form := newForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Produto").
			Options(options...).
			Value(&productID),
		huh.NewInput().
			Title("Quantidade").
			Value(&quantity).
			Validate(validateAmount),
	))

	done := func() tea.Cmd {
		id, qty := productID, quantity
		return func() tea.Msg {
			p, err := state.App.Catalog.Get(context.Background(), id)
			if err != nil {
				return statusMsg{text: UserMessage(err), err: true}
			}
			return productFormMsg{product: p, quantity: qty}
		}
	}
	return newWizardView(state, "Produto do catálogo", form, done)
}

// newHeaderFormView edits the quotation header, starting from current.
func newHeaderFormView(state *SharedState, current quote.HeaderInput) View {
	in := current

	owners := []huh.Option[string]{huh.NewOption("—", "")}
	if users, err := state.App.Users.List(context.Background()); err == nil {
		for _, u := range users {
			owners = append(owners, huh.NewOption(fmt.Sprintf("%s (%s)", u.Name, u.Login), u.ID))
		}
	}

	label := domain.MustLabel
	form := newForm(
		huh.NewGroup(
			huh.NewInput().
				Title(label("proposal_number")).
				Value(&in.ProposalNumber).
				Validate(validateRequired("proposal number")),
			huh.NewSelect[string]().
				Title(label("owner_id")).
				Options(owners...).
				Value(&in.OwnerID),
			huh.NewInput().
				Title(label("expiry_date")).
				Placeholder("dd/mm/aaaa, blank for default").
				Value(&in.ExpiryDate).
				Validate(validateOptionalDate),
			huh.NewInput().Title(label("description")).Value(&in.Description),
			huh.NewInput().Title(label("equipment")).Value(&in.Equipment),
		),
		huh.NewGroup(
			huh.NewText().Title(label("initial_condition")).Value(&in.InitialCondition),
			huh.NewText().Title(label("notes")).Value(&in.Notes),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(label("freight_type")).
				Options(
					huh.NewOption("—", string(domain.FreightNone)),
					huh.NewOption("CIF", string(domain.FreightCIF)),
					huh.NewOption("FOB", string(domain.FreightFOB)),
				).
				Value(&in.FreightType),
			huh.NewInput().Title(label("payment_terms")).Value(&in.PaymentTerms),
			huh.NewInput().Title(label("delivery_term")).Value(&in.DeliveryTerm),
			huh.NewInput().
				Title(label("currency")).
				Placeholder(state.App.Quotations.Settings().Currency).
				Value(&in.Currency),
		),
	)

	done := func() tea.Cmd {
		result := in
		return func() tea.Msg { return headerFormMsg{in: result} }
	}
	return newWizardView(state, "Cabeçalho", form, done)
}

// newCopyFormView asks for the proposal number of a copy of quotation id.
func newCopyFormView(state *SharedState, id, from string) View {
	var number string
	form := newForm(huh.NewGroup(
		huh.NewInput().
			Title("Novo número da proposta").
			Description("Copying " + from).
			Value(&number).
			Validate(validateRequired("proposal number")),
	))

	done := func() tea.Cmd {
		n := number
		return func() tea.Msg {
			if _, err := state.App.Quotations.Copy(context.Background(), id, n); err != nil {
				return statusMsg{text: UserMessage(err), err: true}
			}
			return tea.Batch(refreshViews, showStatus("Created "+n))()
		}
	}
	return newWizardView(state, "Copiar proposta", form, done)
}

// newDeleteFormView confirms deleting quotation id.
func newDeleteFormView(state *SharedState, id, number string) View {
	var ok bool
	form := confirmForm("Delete quotation "+number+"?", &ok)

	done := func() tea.Cmd {
		if !ok {
			return showStatus("Cancelled.")
		}
		return func() tea.Msg {
			if err := state.App.Quotations.Delete(context.Background(), id); err != nil {
				return statusMsg{text: UserMessage(err), err: true}
			}
			return tea.Batch(refreshViews, showStatus("Deleted "+number))()
		}
	}
	return newWizardView(state, "Excluir proposta", form, done)
}
