package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/compressorworks/crm/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stamp = "2024-05-10T12:00:00Z"

// openQuotationDB opens a migrated database holding one client, c-1.
func openQuotationDB(t *testing.T) (*sql.DB, *db.SQLiteUnitOfWork) {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	_, err = database.Exec(`INSERT INTO clients (id, name, fiscal_id, created_at, updated_at)
		VALUES ('c-1', 'Metalúrgica Alfa', '12345678000190', ?, ?)`, stamp, stamp)
	require.NoError(t, err)

	return database, db.NewSQLiteUnitOfWork(database)
}

func insertHeader(ctx context.Context, tx db.DBTX, id, number string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO quotations (id, proposal_number, client_id, created_date, updated_at)
		VALUES (?, ?, 'c-1', ?, ?)`, id, number, stamp, stamp)
	return err
}

func insertItem(ctx context.Context, tx db.DBTX, quotationID string, pos int, itemType string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO quotation_items
		(id, quotation_id, position, type, name, quantity, unit_price, line_total)
		VALUES (?, ?, ?, ?, 'Filtro', 1, 10, 10)`,
		quotationID+"-"+string(rune('a'+pos)), quotationID, pos, itemType)
	return err
}

func countRows(t *testing.T, database *sql.DB, query string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRow(query, args...).Scan(&n))
	return n
}

func headerAndItems(t *testing.T, database *sql.DB, id string) (headers, items int) {
	t.Helper()
	headers = countRows(t, database, `SELECT COUNT(*) FROM quotations WHERE id = ?`, id)
	items = countRows(t, database, `SELECT COUNT(*) FROM quotation_items WHERE quotation_id = ?`, id)
	return headers, items
}

func TestWithinTx_CommitsHeaderAndItems(t *testing.T) {
	database, uow := openQuotationDB(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertHeader(ctx, tx, "q-1", "P-0001"); err != nil {
			return err
		}
		for pos := range 2 {
			if err := insertItem(ctx, tx, "q-1", pos, "good"); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	headers, items := headerAndItems(t, database, "q-1")
	assert.Equal(t, 1, headers)
	assert.Equal(t, 2, items)
}

func TestWithinTx_ErrorRollsBackHeader(t *testing.T) {
	database, uow := openQuotationDB(t)
	errStop := errors.New("stop after header")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertHeader(ctx, tx, "q-2", "P-0002"); err != nil {
			return err
		}
		return errStop
	})
	require.ErrorIs(t, err, errStop)

	headers, _ := headerAndItems(t, database, "q-2")
	assert.Zero(t, headers)
}

func TestWithinTx_FailingItemRollsBackEverything(t *testing.T) {
	database, uow := openQuotationDB(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertHeader(ctx, tx, "q-3", "P-0003"); err != nil {
			return err
		}
		if err := insertItem(ctx, tx, "q-3", 0, "good"); err != nil {
			return err
		}
		// Rejected by the type CHECK constraint.
		return insertItem(ctx, tx, "q-3", 1, "rental")
	})
	require.Error(t, err)

	headers, items := headerAndItems(t, database, "q-3")
	assert.Zero(t, headers)
	assert.Zero(t, items)
}

func TestWithinTx_PanicRollsBackAndRepanics(t *testing.T) {
	database, uow := openQuotationDB(t)

	assert.PanicsWithValue(t, "boom", func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertHeader(ctx, tx, "q-4", "P-0004")
			_ = insertItem(ctx, tx, "q-4", 0, "service")
			panic("boom")
		})
	})

	headers, items := headerAndItems(t, database, "q-4")
	assert.Zero(t, headers)
	assert.Zero(t, items)

	// The single connection is usable again after the rollback.
	require.NoError(t, uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertHeader(ctx, tx, "q-4", "P-0004")
	}))
	headers, _ = headerAndItems(t, database, "q-4")
	assert.Equal(t, 1, headers)
}
