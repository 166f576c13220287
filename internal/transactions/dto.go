package transactions

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/walletpay/walletpay/internal/ledger"
)

type depositRequest struct {
	WalletID    string          `json:"walletId"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

type withdrawRequest struct {
	WalletID    string          `json:"walletId"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

type transferRequest struct {
	FromWalletID string          `json:"fromWalletId"`
	ToWalletID   string          `json:"toWalletId"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
}

type recordResponse struct {
	ID            int64           `json:"id"`
	TransactionID string          `json:"transactionId"`
	FromWalletID  string          `json:"fromWalletId"`
	ToWalletID    string          `json:"toWalletId"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type"`
	Status        string          `json:"status"`
	Timestamp     time.Time       `json:"timestamp"`
	Description   string          `json:"description"`
}

func toResponse(rec ledger.Record) recordResponse {
	return recordResponse{
		ID:            rec.ID,
		TransactionID: rec.TransactionID,
		FromWalletID:  rec.FromWalletID,
		ToWalletID:    rec.ToWalletID,
		Amount:        rec.Amount,
		Type:          rec.Type,
		Status:        rec.Status,
		Timestamp:     rec.Timestamp,
		Description:   rec.Description,
	}
}

func toResponseList(recs []ledger.Record) []recordResponse {
	out := make([]recordResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toResponse(rec))
	}
	return out
}
