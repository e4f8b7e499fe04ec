package repository

import (
	"context"
	"fmt"

	"github.com/compressorworks/crm/internal/db"
	"github.com/compressorworks/crm/internal/domain"
)

// SQLiteLineItemRepo implements LineItemRepo using a SQLite database.
type SQLiteLineItemRepo struct {
	db db.DBTX
}

// NewSQLiteLineItemRepo creates a new SQLiteLineItemRepo.
func NewSQLiteLineItemRepo(conn db.DBTX) *SQLiteLineItemRepo {
	return &SQLiteLineItemRepo{db: conn}
}

func (r *SQLiteLineItemRepo) Create(ctx context.Context, li *domain.LineItem) error {
	query := `INSERT INTO quotation_items (id, quotation_id, position, type, name, quantity,
		unit_price, line_total, note, labor, travel, lodging)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		li.ID,
		li.QuotationID,
		li.Position,
		string(li.Type),
		li.Name,
		li.Quantity,
		li.UnitPrice,
		li.LineTotal,
		li.Note,
		li.Labor,
		li.Travel,
		li.Lodging,
	)
	if err != nil {
		return fmt.Errorf("inserting line item: %w", err)
	}
	return nil
}

// ListByQuotation returns the quotation's items in position order.
func (r *SQLiteLineItemRepo) ListByQuotation(ctx context.Context, quotationID string) ([]domain.LineItem, error) {
	query := `SELECT id, quotation_id, position, type, name, quantity, unit_price, line_total,
		note, labor, travel, lodging
		FROM quotation_items WHERE quotation_id = ? ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query, quotationID)
	if err != nil {
		return nil, fmt.Errorf("listing line items: %w", err)
	}
	defer rows.Close()

	var out []domain.LineItem
	for rows.Next() {
		var li domain.LineItem
		var typeStr string
		if err := rows.Scan(&li.ID, &li.QuotationID, &li.Position, &typeStr, &li.Name,
			&li.Quantity, &li.UnitPrice, &li.LineTotal, &li.Note,
			&li.Labor, &li.Travel, &li.Lodging); err != nil {
			return nil, fmt.Errorf("scanning line item: %w", err)
		}
		li.Type = domain.ProductType(typeStr)
		out = append(out, li)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating line items: %w", err)
	}
	return out, nil
}

func (r *SQLiteLineItemRepo) DeleteByQuotation(ctx context.Context, quotationID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM quotation_items WHERE quotation_id = ?`, quotationID); err != nil {
		return fmt.Errorf("deleting line items: %w", err)
	}
	return nil
}
