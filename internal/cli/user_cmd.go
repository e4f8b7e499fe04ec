package cli

import (
	"fmt"
	"strings"

	"github.com/compressorworks/crm/internal/cli/formatter"
	"github.com/compressorworks/crm/internal/domain"
	"github.com/spf13/cobra"
)

func newUserCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage sellers, technicians and admins",
	}
	cmd.AddCommand(newUserAddCmd(app), newUserListCmd(app), newUserCheckCmd(app))
	return cmd
}

func newUserAddCmd(app *App) *cobra.Command {
	var login, name, role, password string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			u := &domain.User{
				Login:  login,
				Name:   name,
				Role:   domain.UserRole(strings.ToLower(strings.TrimSpace(role))),
				Active: true,
			}
			if err := app.Users.Create(cmd.Context(), u, password); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Created user %s (%s)", formatter.Bold(u.Login), u.Role)))
			return nil
		},
	}

	cmd.Flags().StringVar(&login, "login", "", "Login")
	cmd.Flags().StringVar(&name, "name", "", "Full name")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleSeller), "admin, seller or technician")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	_ = cmd.MarkFlagRequired("login")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newUserListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := app.Users.List(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(users))
			for _, u := range users {
				rows = append(rows, []string{formatter.ShortID(u.ID), formatter.Bold(u.Login), u.Name, string(u.Role)})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable([]string{"ID", "LOGIN", "NOME", "PAPEL"}, rows))
			return nil
		},
	}
}

func newUserCheckCmd(app *App) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "check LOGIN",
		Short: "Verify a user's password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := app.Users.Authenticate(cmd.Context(), args[0], password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Password accepted for "+formatter.Bold(u.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Password to check")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
