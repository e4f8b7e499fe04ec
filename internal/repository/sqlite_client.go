package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/compressorworks/crm/internal/db"
	"github.com/compressorworks/crm/internal/domain"
	"github.com/google/uuid"
)

// SQLiteClientRepo implements ClientRepo using a SQLite database.
type SQLiteClientRepo struct {
	db db.DBTX
}

// NewSQLiteClientRepo creates a new SQLiteClientRepo.
func NewSQLiteClientRepo(conn db.DBTX) *SQLiteClientRepo {
	return &SQLiteClientRepo{db: conn}
}

const clientColumns = `id, name, trade_name, fiscal_id, state_registration, street, number, district,
	city, state, zip_code, phone, email, created_at, updated_at`

func (r *SQLiteClientRepo) Create(ctx context.Context, c *domain.Client) error {
	query := `INSERT INTO clients (` + clientColumns + `, name_key, search_key)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.Name,
		c.TradeName,
		c.FiscalID,
		c.StateRegistration,
		c.Street,
		c.Number,
		c.District,
		c.City,
		c.State,
		c.ZipCode,
		c.Phone,
		c.Email,
		c.CreatedAt.Format(time.RFC3339),
		c.UpdatedAt.Format(time.RFC3339),
		c.NameKey(),
		c.SearchKey(),
	)
	if err != nil {
		if db.IsUniqueViolation(err, "fiscal_id") {
			return fmt.Errorf("inserting client: %w", domain.ErrDuplicateFiscalID)
		}
		return fmt.Errorf("inserting client: %w", err)
	}
	return nil
}

// GetByID returns the client with its contacts.
func (r *SQLiteClientRepo) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = ?`
	c, err := scanClient(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("client %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	c.Contacts, err = r.ListContacts(ctx, id)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *SQLiteClientRepo) Exists(ctx context.Context, id string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM clients WHERE id = ?`, id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking client: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteClientRepo) Update(ctx context.Context, c *domain.Client) error {
	query := `UPDATE clients SET name = ?, trade_name = ?, fiscal_id = ?, state_registration = ?,
		street = ?, number = ?, district = ?, city = ?, state = ?, zip_code = ?, phone = ?, email = ?,
		name_key = ?, search_key = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		c.Name,
		c.TradeName,
		c.FiscalID,
		c.StateRegistration,
		c.Street,
		c.Number,
		c.District,
		c.City,
		c.State,
		c.ZipCode,
		c.Phone,
		c.Email,
		c.NameKey(),
		c.SearchKey(),
		c.UpdatedAt.Format(time.RFC3339),
		c.ID,
	)
	if err != nil {
		if db.IsUniqueViolation(err, "fiscal_id") {
			return fmt.Errorf("updating client: %w", domain.ErrDuplicateFiscalID)
		}
		return fmt.Errorf("updating client: %w", err)
	}
	return expectOneRow(res, "client", c.ID)
}

// Delete removes the client; its contacts go with it.
func (r *SQLiteClientRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}
	return expectOneRow(res, "client", id)
}

// Search matches term against the folded name and trade name, or against
// the fiscal identifier when the term is written like one. An empty term
// lists every client. Results are ordered by folded name.
func (r *SQLiteClientRepo) Search(ctx context.Context, term string) ([]domain.ClientSummary, error) {
	query := `SELECT id, name, trade_name, fiscal_id, city FROM clients
		WHERE search_key LIKE ? ESCAPE '\'`
	args := []any{likePattern(domain.FoldText(term))}
	if domain.LooksLikeFiscalID(term) {
		query += ` OR fiscal_id LIKE ? ESCAPE '\'`
		args = append(args, likePattern(domain.DigitsOnly(term)))
	}
	query += ` ORDER BY name_key, name, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching clients: %w", err)
	}
	defer rows.Close()

	var out []domain.ClientSummary
	for rows.Next() {
		var s domain.ClientSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.TradeName, &s.FiscalID, &s.City); err != nil {
			return nil, fmt.Errorf("scanning client summary: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating clients: %w", err)
	}
	return out, nil
}

// ReplaceContacts deletes every contact of the client and inserts contacts
// in order. Contacts without an id get a new one.
func (r *SQLiteClientRepo) ReplaceContacts(ctx context.Context, clientID string, contacts []domain.Contact) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE client_id = ?`, clientID); err != nil {
		return fmt.Errorf("deleting contacts: %w", err)
	}
	query := `INSERT INTO contacts (id, client_id, position, name, role, phone, email)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	for i := range contacts {
		ct := &contacts[i]
		if ct.ID == "" {
			ct.ID = uuid.New().String()
		}
		ct.ClientID = clientID
		if _, err := r.db.ExecContext(ctx, query, ct.ID, clientID, i, ct.Name, ct.Role, ct.Phone, ct.Email); err != nil {
			return fmt.Errorf("inserting contact: %w", err)
		}
	}
	return nil
}

func (r *SQLiteClientRepo) ListContacts(ctx context.Context, clientID string) ([]domain.Contact, error) {
	query := `SELECT id, client_id, name, role, phone, email FROM contacts
		WHERE client_id = ? ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("listing contacts: %w", err)
	}
	defer rows.Close()

	var out []domain.Contact
	for rows.Next() {
		var ct domain.Contact
		if err := rows.Scan(&ct.ID, &ct.ClientID, &ct.Name, &ct.Role, &ct.Phone, &ct.Email); err != nil {
			return nil, fmt.Errorf("scanning contact: %w", err)
		}
		out = append(out, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contacts: %w", err)
	}
	return out, nil
}

func scanClient(row rowScanner) (*domain.Client, error) {
	var c domain.Client
	var createdAtStr, updatedAtStr string
	err := row.Scan(
		&c.ID, &c.Name, &c.TradeName, &c.FiscalID, &c.StateRegistration,
		&c.Street, &c.Number, &c.District, &c.City, &c.State, &c.ZipCode,
		&c.Phone, &c.Email,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning client: %w", err)
	}
	c.CreatedAt, c.UpdatedAt, err = parseTimestamps(createdAtStr, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing client timestamps: %w", err)
	}
	return &c, nil
}

// likePattern wraps s in % wildcards, escaping LIKE metacharacters.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}
