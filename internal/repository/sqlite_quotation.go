package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/compressorworks/crm/internal/db"
	"github.com/compressorworks/crm/internal/domain"
)

// SQLiteQuotationRepo implements QuotationRepo using a SQLite database.
// It persists headers only; line items go through SQLiteLineItemRepo.
type SQLiteQuotationRepo struct {
	db db.DBTX
}

// NewSQLiteQuotationRepo creates a new SQLiteQuotationRepo.
func NewSQLiteQuotationRepo(conn db.DBTX) *SQLiteQuotationRepo {
	return &SQLiteQuotationRepo{db: conn}
}

const quotationColumns = `id, proposal_number, client_id, owner_id, created_date, expiry_date,
	description, equipment, initial_condition, notes, freight_type, payment_terms, delivery_term,
	currency, status, total_value, updated_at`

func (r *SQLiteQuotationRepo) Create(ctx context.Context, q *domain.Quotation) error {
	query := `INSERT INTO quotations (` + quotationColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		q.ID,
		q.ProposalNumber,
		q.ClientID,
		nullableString(q.OwnerID),
		q.CreatedDate.Format(time.RFC3339),
		nullableTimeToString(q.ExpiryDate, dateLayout),
		q.Description,
		q.Equipment,
		q.InitialCondition,
		q.Notes,
		string(q.Terms.FreightType),
		q.Terms.PaymentTerms,
		q.Terms.DeliveryTerm,
		q.Terms.Currency,
		string(q.Status),
		q.Total,
		q.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if db.IsUniqueViolation(err, "proposal_number") {
			return fmt.Errorf("inserting quotation: %w", domain.ErrDuplicateProposalNumber)
		}
		return fmt.Errorf("inserting quotation: %w", err)
	}
	return nil
}

// GetByID returns the quotation header with its items in position order.
func (r *SQLiteQuotationRepo) GetByID(ctx context.Context, id string) (*domain.Quotation, error) {
	query := `SELECT ` + quotationColumns + ` FROM quotations WHERE id = ?`
	q, err := scanQuotation(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("quotation %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	q.Items, err = NewSQLiteLineItemRepo(r.db).ListByQuotation(ctx, id)
	if err != nil {
		return nil, err
	}
	return q, nil
}

func (r *SQLiteQuotationRepo) List(ctx context.Context, f QuotationFilter) ([]QuotationSummary, error) {
	query := `SELECT q.id, q.proposal_number, q.client_id, c.name, q.created_date, q.expiry_date,
			q.status, q.currency, q.total_value,
			(SELECT COUNT(1) FROM quotation_items i WHERE i.quotation_id = q.id)
		FROM quotations q
		JOIN clients c ON c.id = q.client_id
		WHERE 1 = 1`
	var args []any
	if f.Status != "" {
		query += ` AND q.status = ?`
		args = append(args, string(f.Status))
	}
	if f.ClientID != "" {
		query += ` AND q.client_id = ?`
		args = append(args, f.ClientID)
	}
	query += ` ORDER BY q.created_date DESC, q.proposal_number`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing quotations: %w", err)
	}
	defer rows.Close()

	var out []QuotationSummary
	for rows.Next() {
		var s QuotationSummary
		var createdStr, statusStr string
		var expiryStr sql.NullString
		if err := rows.Scan(&s.ID, &s.ProposalNumber, &s.ClientID, &s.ClientName,
			&createdStr, &expiryStr, &statusStr, &s.Currency, &s.Total, &s.ItemCount); err != nil {
			return nil, fmt.Errorf("scanning quotation summary: %w", err)
		}
		s.Status = domain.QuotationStatus(statusStr)
		s.CreatedDate, err = time.Parse(time.RFC3339, createdStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_date: %w", err)
		}
		s.ExpiryDate = parseNullableTime(expiryStr, dateLayout)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating quotations: %w", err)
	}
	return out, nil
}

// Update rewrites every header column except id and created_date.
func (r *SQLiteQuotationRepo) Update(ctx context.Context, q *domain.Quotation) error {
	query := `UPDATE quotations SET proposal_number = ?, client_id = ?, owner_id = ?, expiry_date = ?,
		description = ?, equipment = ?, initial_condition = ?, notes = ?, freight_type = ?,
		payment_terms = ?, delivery_term = ?, currency = ?, status = ?, total_value = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		q.ProposalNumber,
		q.ClientID,
		nullableString(q.OwnerID),
		nullableTimeToString(q.ExpiryDate, dateLayout),
		q.Description,
		q.Equipment,
		q.InitialCondition,
		q.Notes,
		string(q.Terms.FreightType),
		q.Terms.PaymentTerms,
		q.Terms.DeliveryTerm,
		q.Terms.Currency,
		string(q.Status),
		q.Total,
		q.UpdatedAt.Format(time.RFC3339),
		q.ID,
	)
	if err != nil {
		if db.IsUniqueViolation(err, "proposal_number") {
			return fmt.Errorf("updating quotation: %w", domain.ErrDuplicateProposalNumber)
		}
		return fmt.Errorf("updating quotation: %w", err)
	}
	return expectOneRow(res, "quotation", q.ID)
}

func (r *SQLiteQuotationRepo) SetStatus(ctx context.Context, id string, status domain.QuotationStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE quotations SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("setting quotation status: %w", err)
	}
	return expectOneRow(res, "quotation", id)
}

// Delete removes the quotation; its items cascade.
func (r *SQLiteQuotationRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM quotations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting quotation: %w", err)
	}
	return expectOneRow(res, "quotation", id)
}

// ProposalNumberTaken reports whether a quotation other than excludeID
// already uses number.
func (r *SQLiteQuotationRepo) ProposalNumberTaken(ctx context.Context, number, excludeID string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM quotations WHERE proposal_number = ? AND id <> ?`,
		number, excludeID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking proposal number: %w", err)
	}
	return n > 0, nil
}

func scanQuotation(row rowScanner) (*domain.Quotation, error) {
	var q domain.Quotation
	var ownerID, expiryStr sql.NullString
	var createdStr, updatedStr, freightStr, statusStr string
	err := row.Scan(
		&q.ID, &q.ProposalNumber, &q.ClientID, &ownerID, &createdStr, &expiryStr,
		&q.Description, &q.Equipment, &q.InitialCondition, &q.Notes,
		&freightStr, &q.Terms.PaymentTerms, &q.Terms.DeliveryTerm, &q.Terms.Currency,
		&statusStr, &q.Total, &updatedStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning quotation: %w", err)
	}
	q.OwnerID = ownerID.String
	q.Terms.FreightType = domain.FreightType(freightStr)
	q.Status = domain.QuotationStatus(statusStr)
	q.CreatedDate, q.UpdatedAt, err = parseTimestamps(createdStr, updatedStr)
	if err != nil {
		return nil, fmt.Errorf("parsing quotation timestamps: %w", err)
	}
	q.ExpiryDate = parseNullableTime(expiryStr, dateLayout)
	return &q, nil
}
