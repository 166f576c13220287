package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates no record exists for the requested transaction id.
var ErrNotFound = errors.New("transaction not found")

// SystemWallet is the counterpart identifier used when one side of a
// transaction is not a wallet: the source of deposits and the destination
// of withdrawals.
const SystemWallet = "SYSTEM"

// Transaction types.
const (
	TypeDeposit    = "DEPOSIT"
	TypeWithdrawal = "WITHDRAWAL"
	TypeTransfer   = "TRANSFER"
)

// Terminal statuses. A record is written exactly once, after the outcome of
// all remote calls is known; there is no pending state.
const (
	StatusSuccess = "SUCCESS"
	StatusFailed  = "FAILED"
)

// Record is one entry in the append-only transaction ledger. Amount is a
// non-negative magnitude; direction is encoded by the from/to pair and the
// type, never by sign.
type Record struct {
	ID            int64
	TransactionID string
	FromWalletID  string
	ToWalletID    string
	Amount        decimal.Decimal
	Type          string
	Status        string
	Timestamp     time.Time
	Description   string
}

// Store persists transaction records. Records are immutable once saved.
type Store interface {
	// Save persists a record, assigning the surrogate id and timestamp, and
	// returns the stored form. Infrastructure failures propagate to the
	// enclosing operation.
	Save(ctx context.Context, rec Record) (Record, error)

	// FindByTransactionID returns the record carrying the external
	// transaction id, or ErrNotFound.
	FindByTransactionID(ctx context.Context, transactionID string) (Record, error)

	// FindByWallet returns every record where the wallet appears as either
	// party, ordered by timestamp.
	FindByWallet(ctx context.Context, walletID string) ([]Record, error)
}
