package walletgw

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// Client talks to the wallet service over HTTP.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient builds a wallet service client rooted at baseURL. The timeout
// bounds each individual remote call.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
	}
}

type walletPayload struct {
	ID        int64           `json:"id"`
	WalletID  string          `json:"walletId"`
	OwnerName string          `json:"ownerName"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type balanceUpdatePayload struct {
	Amount decimal.Decimal `json:"amount"`
}

// Fetch retrieves the wallet snapshot from the wallet service.
func (c *Client) Fetch(ctx context.Context, walletID string) (Snapshot, error) {
	url := fmt.Sprintf("%s/api/wallets/%s", c.baseURL, walletID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: build fetch request: %w", ErrWalletUnavailable, err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: fetch wallet %s: %w", ErrWalletUnavailable, walletID, err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return Snapshot{}, fmt.Errorf("%w: fetch wallet %s: status %d", ErrWalletUnavailable, walletID, resp.StatusCode)
	}

	var payload walletPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Snapshot{}, fmt.Errorf("%w: decode wallet %s: %w", ErrWalletUnavailable, walletID, err)
	}

	return payload.snapshot(), nil
}

// AdjustBalance applies the signed delta server-side, then re-fetches the
// wallet to obtain the refreshed snapshot. The PUT response body is not
// inspected.
func (c *Client) AdjustBalance(ctx context.Context, walletID string, delta decimal.Decimal) (Snapshot, error) {
	url := fmt.Sprintf("%s/api/wallets/%s/balance", c.baseURL, walletID)

	body, err := json.Marshal(balanceUpdatePayload{Amount: delta})
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: encode balance update: %w", ErrWalletUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: build balance update request: %w", ErrWalletUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: update balance of wallet %s: %w", ErrWalletUnavailable, walletID, err)
	}
	drainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Snapshot{}, fmt.Errorf("%w: update balance of wallet %s: status %d", ErrWalletUnavailable, walletID, resp.StatusCode)
	}

	return c.Fetch(ctx, walletID)
}

func (p walletPayload) snapshot() Snapshot {
	return Snapshot{
		ID:        p.ID,
		WalletID:  p.WalletID,
		OwnerName: p.OwnerName,
		Balance:   p.Balance,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
