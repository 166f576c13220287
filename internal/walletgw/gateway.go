package walletgw

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrWalletUnavailable indicates the wallet service call failed, timed out,
// or the wallet does not exist. Calls are single-attempt; there is no retry.
var ErrWalletUnavailable = errors.New("wallet service unavailable")

// Snapshot is the wallet state as reported by the wallet service. It is
// fetched on demand and never cached across calls.
type Snapshot struct {
	ID        int64
	WalletID  string
	OwnerName string
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Gateway is the connector to the external wallet service. Balance authority
// lives entirely on the remote side; implementations perform no local
// validation.
type Gateway interface {
	// Fetch returns the current snapshot for the wallet.
	Fetch(ctx context.Context, walletID string) (Snapshot, error)

	// AdjustBalance applies a signed delta to the wallet balance (positive
	// credits, negative debits) and returns the refreshed snapshot. The
	// refresh is a second remote call, so apply and refetch can fail
	// independently.
	AdjustBalance(ctx context.Context, walletID string, delta decimal.Decimal) (Snapshot, error)
}
