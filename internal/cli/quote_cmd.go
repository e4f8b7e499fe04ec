package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/compressorworks/crm/internal/cli/formatter"
	"github.com/compressorworks/crm/internal/domain"
	"github.com/compressorworks/crm/internal/repository"
	"github.com/compressorworks/crm/internal/spreadsheet"
	"github.com/spf13/cobra"
)

func newQuoteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "quote",
		Aliases: []string{"q"},
		Short:   "Manage quotations",
	}

	cmd.AddCommand(
		newQuoteListCmd(app),
		newQuoteShowCmd(app),
		newQuoteStatusCmd(app),
		newQuoteRemoveCmd(app),
		newQuoteExportCmd(app),
		newQuoteCopyCmd(app),
	)

	return cmd
}

// parseStatus accepts a status value or its display label.
func parseStatus(s string) (domain.QuotationStatus, error) {
	key := domain.FoldText(s)
	for st := range domain.ValidQuotationStatuses {
		if key == string(st) || key == domain.FoldText(st.Label()) {
			return st, nil
		}
	}
	return "", domain.NewValidationError("status", domain.ErrInvalidValue)
}

func newQuoteListCmd(app *App) *cobra.Command {
	var status, client string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List quotations, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var f repository.QuotationFilter
			if status != "" {
				st, err := parseStatus(status)
				if err != nil {
					return err
				}
				f.Status = st
			}
			if client != "" {
				id, err := resolveClientID(ctx, app, client)
				if err != nil {
					return err
				}
				f.ClientID = id
			}

			list, err := app.Quotations.List(ctx, f)
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No quotations found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatQuotationList(list))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Only quotations in this status (open, approved, rejected)")
	cmd.Flags().StringVar(&client, "client", "", "Only quotations for this client")
	return cmd
}

func loadQuotation(ctx context.Context, app *App, input string) (*domain.Quotation, string, error) {
	id, err := resolveQuotationID(ctx, app, input)
	if err != nil {
		return nil, "", err
	}
	q, err := app.Quotations.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	name := q.ClientID
	if c, err := app.Clients.Get(ctx, q.ClientID); err == nil {
		name = c.Name
	}
	return q, name, nil
}

func newQuoteShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show QUOTE",
		Short: "Show a quotation with its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, clientName, err := loadQuotation(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatQuotation(q, clientName))
			return nil
		},
	}
}

func newQuoteStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status QUOTE STATUS",
		Short: "Mark a quotation open, approved or rejected",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := parseStatus(args[1])
			if err != nil {
				return err
			}
			id, err := resolveQuotationID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Quotations.SetStatus(ctx, id, st); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Status set to "+formatter.StatusPill(st)))
			return nil
		},
	}
}

func newQuoteRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove QUOTE",
		Short: "Delete a quotation and its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveQuotationID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if err := app.Quotations.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Quotation removed"))
			return nil
		},
	}
}

func newQuoteExportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export QUOTE",
		Short: "Write a quotation to an .xlsx workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveQuotationID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if out == "" {
				out = "proposta-" + sanitizeFileName(args[0]) + ".xlsx"
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := spreadsheet.ExportQuotation(ctx, app.Quotations, app.Clients, id, f); err != nil {
				f.Close()
				_ = os.Remove(out)
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Wrote "+out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default proposta-<QUOTE>.xlsx)")
	return cmd
}

func sanitizeFileName(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '-'
		}
		return r
	}, s)
}

func newQuoteCopyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "copy QUOTE NEW_NUMBER",
		Short: "Duplicate a quotation as a new open one",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveQuotationID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			newID, err := app.Quotations.Copy(cmd.Context(), id, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Created %s %s", formatter.Bold(args[1]), formatter.ShortID(newID))))
			return nil
		},
	}
}
