package cli

import (
	"fmt"

	"github.com/compressorworks/crm/internal/cli/formatter"
	"github.com/compressorworks/crm/internal/domain"
	"github.com/spf13/cobra"
)

func newClientCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Manage clients",
	}

	cmd.AddCommand(
		newClientAddCmd(app),
		newClientListCmd(app),
		newClientSearchCmd(app),
		newClientShowCmd(app),
		newClientRemoveCmd(app),
	)

	return cmd
}

func newClientAddCmd(app *App) *cobra.Command {
	var c domain.Client

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a client",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.Clients.Save(cmd.Context(), &c)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Created client %s %s", formatter.Bold(c.Name), formatter.ShortID(id))))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&c.Name, "name", "", "Legal name")
	f.StringVar(&c.TradeName, "trade-name", "", "Trade name")
	f.StringVar(&c.FiscalID, "fiscal-id", "", "CNPJ or CPF, punctuation optional")
	f.StringVar(&c.StateRegistration, "state-registration", "", "State registration")
	f.StringVar(&c.Street, "street", "", "Street")
	f.StringVar(&c.Number, "number", "", "Street number")
	f.StringVar(&c.District, "district", "", "District")
	f.StringVar(&c.City, "city", "", "City")
	f.StringVar(&c.State, "state", "", "State (UF)")
	f.StringVar(&c.ZipCode, "zip", "", "CEP")
	f.StringVar(&c.Phone, "phone", "", "Phone")
	f.StringVar(&c.Email, "email", "", "E-mail")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newClientListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every client",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printClients(cmd, app, "")
		},
	}
}

func newClientSearchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "search TERM",
		Short: "Find clients by name, trade name or CNPJ/CPF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printClients(cmd, app, args[0])
		},
	}
}

func printClients(cmd *cobra.Command, app *App, term string) error {
	found, err := app.Clients.Search(cmd.Context(), term)
	if err != nil {
		return err
	}
	if len(found) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No clients found.")
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatClientList(found))
	return nil
}

func newClientShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show CLIENT",
		Short: "Show a client with its contacts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveClientID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			c, err := app.Clients.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatClient(c))
			return nil
		},
	}
}

func newClientRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove CLIENT",
		Short: "Delete a client that has no quotations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveClientID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if err := app.Clients.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Client removed"))
			return nil
		},
	}
}

func newContactCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Manage client contacts",
	}
	cmd.AddCommand(newContactAddCmd(app))
	return cmd
}

func newContactAddCmd(app *App) *cobra.Command {
	var ct domain.Contact

	cmd := &cobra.Command{
		Use:   "add CLIENT",
		Short: "Add a contact person to a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveClientID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if err := app.Clients.AddContact(cmd.Context(), id, ct); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Added contact "+formatter.Bold(ct.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&ct.Name, "name", "", "Contact name")
	cmd.Flags().StringVar(&ct.Role, "role", "", "Role or department")
	cmd.Flags().StringVar(&ct.Phone, "phone", "", "Phone")
	cmd.Flags().StringVar(&ct.Email, "email", "", "E-mail")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
