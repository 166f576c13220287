package transactions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/walletpay/walletpay/internal/ledger"
	"github.com/walletpay/walletpay/internal/notification"
	"github.com/walletpay/walletpay/internal/walletgw"
)

var (
	// ErrTransactionFailed is signalled to the caller after a FAILED record
	// has been persisted. It wraps the underlying cause, so errors.Is can
	// still distinguish ErrInsufficientBalance from a remote failure.
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrInsufficientBalance indicates the source wallet balance did not
	// cover the requested amount. No balance adjustment is attempted.
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// Service orchestrates transaction flows against the wallet service and the
// local ledger. Every flow follows the same shape: validate, mutate remote
// state, record the outcome. The first remote failure is terminal; there are
// no retries and no compensation.
type Service struct {
	store    ledger.Store
	wallets  walletgw.Gateway
	ids      IDGenerator
	notifier notification.Notifier
	logger   *slog.Logger
}

// NewService constructs the transaction orchestrator.
func NewService(store ledger.Store, wallets walletgw.Gateway, ids IDGenerator, notifier notification.Notifier, logger *slog.Logger) *Service {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	return &Service{store: store, wallets: wallets, ids: ids, notifier: notifier, logger: logger}
}

// DepositInput captures a request to credit a wallet from outside the system.
type DepositInput struct {
	WalletID    string
	Amount      decimal.Decimal
	Description string
}

// WithdrawInput captures a request to debit a wallet out of the system.
type WithdrawInput struct {
	WalletID    string
	Amount      decimal.Decimal
	Description string
}

// TransferInput captures a wallet-to-wallet transfer request.
type TransferInput struct {
	FromWalletID string
	ToWalletID   string
	Amount       decimal.Decimal
	Description  string
}

// Deposit credits the wallet and records the outcome.
func (s *Service) Deposit(ctx context.Context, input DepositInput) (ledger.Record, error) {
	if err := validateAmount(input.Amount); err != nil {
		return ledger.Record{}, err
	}

	rec := ledger.Record{
		TransactionID: s.ids.Next(),
		FromWalletID:  ledger.SystemWallet,
		ToWalletID:    input.WalletID,
		Amount:        input.Amount,
		Type:          ledger.TypeDeposit,
		Description:   input.Description,
	}

	// Existence check only; the snapshot is discarded.
	if _, err := s.wallets.Fetch(ctx, input.WalletID); err != nil {
		return s.recordFailure(ctx, rec, err)
	}

	if _, err := s.wallets.AdjustBalance(ctx, input.WalletID, input.Amount); err != nil {
		return s.recordFailure(ctx, rec, err)
	}

	return s.recordSuccess(ctx, rec, notification.KindDeposit, input.WalletID)
}

// Withdraw debits the wallet after an authoritative balance check and
// records the outcome.
func (s *Service) Withdraw(ctx context.Context, input WithdrawInput) (ledger.Record, error) {
	if err := validateAmount(input.Amount); err != nil {
		return ledger.Record{}, err
	}

	rec := ledger.Record{
		TransactionID: s.ids.Next(),
		FromWalletID:  input.WalletID,
		ToWalletID:    ledger.SystemWallet,
		Amount:        input.Amount,
		Type:          ledger.TypeWithdrawal,
		Description:   input.Description,
	}

	snapshot, err := s.wallets.Fetch(ctx, input.WalletID)
	if err != nil {
		return s.recordFailure(ctx, rec, err)
	}

	if snapshot.Balance.LessThan(input.Amount) {
		return s.recordFailure(ctx, rec, ErrInsufficientBalance)
	}

	if _, err := s.wallets.AdjustBalance(ctx, input.WalletID, input.Amount.Neg()); err != nil {
		return s.recordFailure(ctx, rec, err)
	}

	return s.recordSuccess(ctx, rec, notification.KindWithdrawal, input.WalletID)
}

// Transfer debits the source wallet and credits the destination wallet as
// two sequential, uncoordinated remote calls, then records the outcome. If
// the destination credit fails the source debit is not reversed: the record
// is FAILED while the source balance already reflects the debit.
func (s *Service) Transfer(ctx context.Context, input TransferInput) (ledger.Record, error) {
	if err := validateAmount(input.Amount); err != nil {
		return ledger.Record{}, err
	}

	rec := ledger.Record{
		TransactionID: s.ids.Next(),
		FromWalletID:  input.FromWalletID,
		ToWalletID:    input.ToWalletID,
		Amount:        input.Amount,
		Type:          ledger.TypeTransfer,
		Description:   input.Description,
	}

	source, err := s.wallets.Fetch(ctx, input.FromWalletID)
	if err != nil {
		return s.recordFailure(ctx, rec, err)
	}

	// Destination existence check only.
	if _, err := s.wallets.Fetch(ctx, input.ToWalletID); err != nil {
		return s.recordFailure(ctx, rec, err)
	}

	if source.Balance.LessThan(input.Amount) {
		return s.recordFailure(ctx, rec, fmt.Errorf("%w in source wallet", ErrInsufficientBalance))
	}

	if _, err := s.wallets.AdjustBalance(ctx, input.FromWalletID, input.Amount.Neg()); err != nil {
		return s.recordFailure(ctx, rec, err)
	}

	if _, err := s.wallets.AdjustBalance(ctx, input.ToWalletID, input.Amount); err != nil {
		return s.recordFailure(ctx, rec, err)
	}

	return s.recordSuccess(ctx, rec, notification.KindTransfer, input.ToWalletID)
}

// Get returns the record carrying the external transaction id. Pure read;
// no ledger write on failure.
func (s *Service) Get(ctx context.Context, transactionID string) (ledger.Record, error) {
	return s.store.FindByTransactionID(ctx, transactionID)
}

// ListByWallet returns every record involving the wallet as either party.
func (s *Service) ListByWallet(ctx context.Context, walletID string) ([]ledger.Record, error) {
	return s.store.FindByWallet(ctx, walletID)
}

func (s *Service) recordSuccess(ctx context.Context, rec ledger.Record, kind, walletID string) (ledger.Record, error) {
	rec.Status = ledger.StatusSuccess
	saved, err := s.store.Save(ctx, rec)
	if err != nil {
		return ledger.Record{}, err
	}

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        kind,
			Destination: walletID,
			Body:        fmt.Sprintf("%s %s completed: %s", saved.Type, saved.TransactionID, saved.Amount),
		})
	}

	return saved, nil
}

// recordFailure persists the FAILED record before re-signalling the cause.
// A store failure here propagates as-is; in that case no record exists and
// the caller sees the infrastructure error instead of ErrTransactionFailed.
func (s *Service) recordFailure(ctx context.Context, rec ledger.Record, cause error) (ledger.Record, error) {
	rec.Status = ledger.StatusFailed
	rec.Description = "Failed: " + cause.Error()

	if _, err := s.store.Save(ctx, rec); err != nil {
		return ledger.Record{}, err
	}

	if s.logger != nil {
		s.logger.Warn("transaction failed",
			slog.String("transaction_id", rec.TransactionID),
			slog.String("type", rec.Type),
			slog.Any("cause", cause),
		)
	}

	return ledger.Record{}, fmt.Errorf("%w: %w", ErrTransactionFailed, cause)
}

func validateAmount(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return fmt.Errorf("amount must be positive")
	}
	return nil
}
