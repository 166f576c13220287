package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists transaction records in PostgreSQL.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore constructs a Postgres-backed ledger store.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Save inserts the record inside its own transaction and returns the stored
// form with the assigned surrogate id and timestamp.
func (s *PostgresStore) Save(ctx context.Context, rec Record) (Record, error) {
	rec.Timestamp = time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Record{}, err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	const query = `INSERT INTO transactions
        (transaction_id, from_wallet_id, to_wallet_id, amount, type, status, description, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id`
	if err := tx.QueryRow(ctx, query,
		rec.TransactionID, rec.FromWalletID, rec.ToWalletID, rec.Amount,
		rec.Type, rec.Status, rec.Description, rec.Timestamp,
	).Scan(&rec.ID); err != nil {
		return Record{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Record{}, err
	}

	return rec, nil
}

// FindByTransactionID fetches a record by its external transaction id.
func (s *PostgresStore) FindByTransactionID(ctx context.Context, transactionID string) (Record, error) {
	const query = `SELECT id, transaction_id, from_wallet_id, to_wallet_id, amount, type, status, description, created_at
        FROM transactions WHERE transaction_id = $1`

	rec, err := scanRecord(s.db.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	return rec, nil
}

// FindByWallet returns every record involving the wallet as either party,
// oldest first.
func (s *PostgresStore) FindByWallet(ctx context.Context, walletID string) ([]Record, error) {
	const query = `SELECT id, transaction_id, from_wallet_id, to_wallet_id, amount, type, status, description, created_at
        FROM transactions
        WHERE from_wallet_id = $1 OR to_wallet_id = $1
        ORDER BY created_at, id`

	rows, err := s.db.Query(ctx, query, walletID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func scanRecord(row pgx.Row) (Record, error) {
	var rec Record
	var createdAt time.Time
	if err := row.Scan(&rec.ID, &rec.TransactionID, &rec.FromWalletID, &rec.ToWalletID,
		&rec.Amount, &rec.Type, &rec.Status, &rec.Description, &createdAt); err != nil {
		return Record{}, err
	}
	rec.Timestamp = createdAt.UTC()
	return rec, nil
}
