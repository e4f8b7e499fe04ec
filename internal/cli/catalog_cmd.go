package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/compressorworks/crm/internal/cli/formatter"
	"github.com/compressorworks/crm/internal/domain"
	"github.com/compressorworks/crm/internal/quote"
	"github.com/compressorworks/crm/internal/spreadsheet"
	"github.com/spf13/cobra"
)

func newCatalogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage services, goods and kits",
	}

	kit := &cobra.Command{
		Use:   "kit",
		Short: "Manage kit compositions",
	}
	kit.AddCommand(newKitSetCmd(app), newKitShowCmd(app))

	cmd.AddCommand(
		newCatalogAddCmd(app),
		newCatalogListCmd(app),
		newCatalogToggleCmd(app),
		newCatalogImportCmd(app),
		kit,
	)

	return cmd
}

func newCatalogAddCmd(app *App) *cobra.Command {
	var name, typ, price string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a catalog product",
		RunE: func(cmd *cobra.Command, args []string) error {
			unit, err := quote.ParseAmount(price, 0)
			if err != nil {
				return domain.NewValidationError("unit_price", err)
			}
			p := &domain.Product{
				Name:      name,
				Type:      domain.ProductType(strings.ToLower(strings.TrimSpace(typ))),
				UnitPrice: unit,
			}
			if err := app.Catalog.Create(cmd.Context(), p); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Added %s %s %s", p.Type.Label(), formatter.Bold(p.Name), formatter.ShortID(p.ID))))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Product name")
	cmd.Flags().StringVar(&typ, "type", string(domain.ProductService), "service, good or kit")
	cmd.Flags().StringVar(&price, "price", "", "Unit price (comma or dot decimals)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newCatalogListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog products",
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := app.Catalog.List(cmd.Context(), all)
			if err != nil {
				return err
			}
			if len(products) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No products found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProductList(products))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include inactive products")
	return cmd
}

func newCatalogToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle PRODUCT",
		Short: "Activate or deactivate a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveProductID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Catalog.Get(ctx, id)
			if err != nil {
				return err
			}
			if err := app.Catalog.SetActive(ctx, id, !p.Active); err != nil {
				return err
			}
			state := "active"
			if p.Active {
				state = "inactive"
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("%s is now %s", formatter.Bold(p.Name), state)))
			return nil
		},
	}
}

func newCatalogImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE.xlsx",
		Short: "Create or update products from a spreadsheet",
		Long: "Reads the first sheet of FILE.xlsx. The header row must name the columns\n" +
			"nome/name, tipo/type and preco/unit_price. Products are matched by name.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			products, err := spreadsheet.ReadCatalog(f)
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			res, err := app.Catalog.Import(cmd.Context(), products)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Imported %d new, %d updated", res.Created, res.Updated)))
			return nil
		},
	}
}

func newKitSetCmd(app *App) *cobra.Command {
	var components []string

	cmd := &cobra.Command{
		Use:   "set KIT",
		Short: "Replace a kit's composition",
		Example: `  crm catalog kit set "Kit revisão 40hp" \
    --component "Óleo 20L=1" --component "Filtro de ar=2"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			kitID, err := resolveProductID(ctx, app, args[0])
			if err != nil {
				return err
			}

			comps := make([]domain.KitComponent, 0, len(components))
			for _, spec := range components {
				name, qty, err := parseComponentSpec(spec)
				if err != nil {
					return err
				}
				id, err := resolveProductID(ctx, app, name)
				if err != nil {
					return err
				}
				comps = append(comps, domain.KitComponent{ComponentID: id, Quantity: qty})
			}

			if err := app.Catalog.SetKitComposition(ctx, kitID, comps); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Kit updated with %d components", len(comps))))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&components, "component", nil, "PRODUCT=QTY, repeatable (QTY defaults to 1)")
	return cmd
}

// parseComponentSpec splits "name=qty"; the quantity is optional.
func parseComponentSpec(spec string) (string, float64, error) {
	name, qtyText := spec, ""
	if i := strings.LastIndex(spec, "="); i >= 0 {
		name, qtyText = spec[:i], spec[i+1:]
	}
	qty, err := quote.ParseAmount(qtyText, 1)
	if err != nil {
		return "", 0, domain.NewValidationError("quantity", err)
	}
	return strings.TrimSpace(name), qty, nil
}

func newKitShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show KIT",
		Short: "Show a kit's composition and suggested price",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveProductID(ctx, app, args[0])
			if err != nil {
				return err
			}
			kit, err := app.Catalog.Get(ctx, id)
			if err != nil {
				return err
			}
			leaves, err := app.Catalog.ExpandKit(ctx, id)
			if err != nil {
				return err
			}
			price, err := app.Catalog.SuggestedKitPrice(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatKit(kit, leaves, price))
			return nil
		},
	}
}
