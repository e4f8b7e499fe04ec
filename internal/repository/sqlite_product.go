package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/compressorworks/crm/internal/db"
	"github.com/compressorworks/crm/internal/domain"
	"github.com/google/uuid"
)

// SQLiteProductRepo implements ProductRepo using a SQLite database.
type SQLiteProductRepo struct {
	db db.DBTX
}

// NewSQLiteProductRepo creates a new SQLiteProductRepo.
func NewSQLiteProductRepo(conn db.DBTX) *SQLiteProductRepo {
	return &SQLiteProductRepo{db: conn}
}

const productColumns = `id, name, type, unit_price, active, created_at, updated_at`

func (r *SQLiteProductRepo) Create(ctx context.Context, p *domain.Product) error {
	query := `INSERT INTO products (` + productColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		string(p.Type),
		p.UnitPrice,
		boolToInt(p.Active),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting product: %w", err)
	}
	return nil
}

// GetByID returns the product; kits come with their composition.
func (r *SQLiteProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ?`
	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	if p.IsKit() {
		p.Components, err = r.ListKitComponents(ctx, p.ID)
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (r *SQLiteProductRepo) List(ctx context.Context, includeInactive bool) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	if !includeInactive {
		query += ` WHERE active = 1`
	}
	query += ` ORDER BY name, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	var out []*domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating products: %w", err)
	}
	return out, nil
}

func (r *SQLiteProductRepo) Update(ctx context.Context, p *domain.Product) error {
	query := `UPDATE products SET name = ?, type = ?, unit_price = ?, active = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.Name,
		string(p.Type),
		p.UnitPrice,
		boolToInt(p.Active),
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating product: %w", err)
	}
	return expectOneRow(res, "product", p.ID)
}

func (r *SQLiteProductRepo) SetActive(ctx context.Context, id string, active bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET active = ?, updated_at = ? WHERE id = ?`,
		boolToInt(active), time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("toggling product: %w", err)
	}
	return expectOneRow(res, "product", id)
}

// Delete removes the product. It fails while a kit still lists it as a
// component.
func (r *SQLiteProductRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}
	return expectOneRow(res, "product", id)
}

// ReplaceKitComponents deletes the kit's composition and inserts components
// in order.
func (r *SQLiteProductRepo) ReplaceKitComponents(ctx context.Context, kitID string, components []domain.KitComponent) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM kit_components WHERE kit_id = ?`, kitID); err != nil {
		return fmt.Errorf("deleting kit components: %w", err)
	}
	query := `INSERT INTO kit_components (id, kit_id, component_id, position, quantity)
		VALUES (?, ?, ?, ?, ?)`
	for i := range components {
		kc := &components[i]
		if kc.ID == "" {
			kc.ID = uuid.New().String()
		}
		kc.KitID = kitID
		if _, err := r.db.ExecContext(ctx, query, kc.ID, kitID, kc.ComponentID, i, kc.Quantity); err != nil {
			return fmt.Errorf("inserting kit component: %w", err)
		}
	}
	return nil
}

// ListKitComponents returns the kit's composition joined with the current
// name, type and price of each component.
func (r *SQLiteProductRepo) ListKitComponents(ctx context.Context, kitID string) ([]domain.KitComponent, error) {
	query := `SELECT kc.id, kc.kit_id, kc.component_id, kc.quantity, p.name, p.type, p.unit_price
		FROM kit_components kc
		JOIN products p ON p.id = kc.component_id
		WHERE kc.kit_id = ?
		ORDER BY kc.position`
	rows, err := r.db.QueryContext(ctx, query, kitID)
	if err != nil {
		return nil, fmt.Errorf("listing kit components: %w", err)
	}
	defer rows.Close()

	var out []domain.KitComponent
	for rows.Next() {
		var kc domain.KitComponent
		var typeStr string
		if err := rows.Scan(&kc.ID, &kc.KitID, &kc.ComponentID, &kc.Quantity,
			&kc.ComponentName, &typeStr, &kc.UnitPrice); err != nil {
			return nil, fmt.Errorf("scanning kit component: %w", err)
		}
		kc.ComponentType = domain.ProductType(typeStr)
		out = append(out, kc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating kit components: %w", err)
	}
	return out, nil
}

// ListKitEdges returns every kit -> component link in the catalog.
func (r *SQLiteProductRepo) ListKitEdges(ctx context.Context) ([]KitEdge, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT kit_id, component_id FROM kit_components ORDER BY kit_id, position`)
	if err != nil {
		return nil, fmt.Errorf("listing kit edges: %w", err)
	}
	defer rows.Close()

	var out []KitEdge
	for rows.Next() {
		var e KitEdge
		if err := rows.Scan(&e.KitID, &e.ComponentID); err != nil {
			return nil, fmt.Errorf("scanning kit edge: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating kit edges: %w", err)
	}
	return out, nil
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var p domain.Product
	var typeStr, createdAtStr, updatedAtStr string
	var active int
	err := row.Scan(&p.ID, &p.Name, &typeStr, &p.UnitPrice, &active, &createdAtStr, &updatedAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning product: %w", err)
	}
	p.Type = domain.ProductType(typeStr)
	p.Active = intToBool(active)
	p.CreatedAt, p.UpdatedAt, err = parseTimestamps(createdAtStr, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing product timestamps: %w", err)
	}
	return &p, nil
}
