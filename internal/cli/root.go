package cli

import (
	"github.com/compressorworks/crm/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services the commands and the TUI run against.
type App struct {
	Quotations service.QuotationService
	Clients    service.ClientService
	Catalog    service.CatalogService
	Users      service.UserService

	// IsInteractive reports whether stdin is a terminal. When it is, running
	// the bare root command opens the TUI.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "crm" command. The App is read when a
// command runs, so callers may fill it in a PersistentPreRunE.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "crm",
		Short:         "Quotations, clients and catalog for a compressor repair shop",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && app.IsInteractive() {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newClientCmd(app),
		newContactCmd(app),
		newCatalogCmd(app),
		newQuoteCmd(app),
		newUserCmd(app),
		newTUICmd(app),
	)

	return root
}
