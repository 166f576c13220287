package transactions_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walletpay/walletpay/internal/ledger"
	"github.com/walletpay/walletpay/internal/logging"
	"github.com/walletpay/walletpay/internal/transactions"
	"github.com/walletpay/walletpay/internal/walletgw"
)

// mapGateway backs the handler tests with a map of wallet balances; unknown
// wallets behave like an unreachable upstream.
type mapGateway struct {
	mu       sync.Mutex
	balances map[string]decimal.Decimal
}

func (g *mapGateway) Fetch(_ context.Context, walletID string) (walletgw.Snapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	balance, ok := g.balances[walletID]
	if !ok {
		return walletgw.Snapshot{}, fmt.Errorf("%w: fetch wallet %s: status 404", walletgw.ErrWalletUnavailable, walletID)
	}
	return walletgw.Snapshot{WalletID: walletID, Balance: balance}, nil
}

func (g *mapGateway) AdjustBalance(_ context.Context, walletID string, delta decimal.Decimal) (walletgw.Snapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	balance, ok := g.balances[walletID]
	if !ok {
		return walletgw.Snapshot{}, fmt.Errorf("%w: fetch wallet %s: status 404", walletgw.ErrWalletUnavailable, walletID)
	}
	g.balances[walletID] = balance.Add(delta)
	return walletgw.Snapshot{WalletID: walletID, Balance: g.balances[walletID]}, nil
}

func newTestApp(t *testing.T, balances map[string]decimal.Decimal) (*fiber.App, ledger.Store) {
	t.Helper()

	gw := &mapGateway{balances: balances}
	store := ledger.NewInMemory()
	svc := transactions.NewService(store, gw, nil, nil, logging.Discard())
	h := transactions.NewHandler(svc)

	app := fiber.New()
	grp := app.Group("/transactions")
	grp.Post("/deposit", h.Deposit)
	grp.Post("/withdraw", h.Withdraw)
	grp.Post("/transfer", h.Transfer)
	grp.Get("/wallet/:walletId", h.ListByWallet)
	grp.Get("/:transactionId", h.Get)

	return app, store
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestDepositEndpointCreatesRecord(t *testing.T) {
	app, _ := newTestApp(t, map[string]decimal.Decimal{"W1": decimal.Zero})

	resp := postJSON(t, app, "/transactions/deposit", `{"walletId":"W1","amount":100,"description":"top up"}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var payload map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "DEPOSIT", payload["type"])
	assert.Equal(t, "SUCCESS", payload["status"])
	assert.Equal(t, "SYSTEM", payload["fromWalletId"])
	assert.Equal(t, "W1", payload["toWalletId"])
	assert.True(t, strings.HasPrefix(payload["transactionId"].(string), "TXN-"))
}

func TestDepositEndpointRejectsInvalidAmount(t *testing.T) {
	app, store := newTestApp(t, map[string]decimal.Decimal{"W1": decimal.Zero})

	resp := postJSON(t, app, "/transactions/deposit", `{"walletId":"W1","amount":-5}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Validation failures happen before a flow starts; no record is written.
	assert.Equal(t, 0, ledger.Count(store))
}

func TestWithdrawEndpointInsufficientBalance(t *testing.T) {
	app, store := newTestApp(t, map[string]decimal.Decimal{"W1": decimal.NewFromInt(30)})

	resp := postJSON(t, app, "/transactions/withdraw", `{"walletId":"W1","amount":50}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, strings.ToLower(string(body)), "insufficient balance")

	// The failed attempt is still ledgered.
	assert.Equal(t, 1, ledger.Count(store))
}

func TestTransferEndpointUpstreamFailure(t *testing.T) {
	app, _ := newTestApp(t, map[string]decimal.Decimal{"W1": decimal.NewFromInt(100)})

	resp := postJSON(t, app, "/transactions/transfer", `{"fromWalletId":"W1","toWalletId":"W404","amount":20}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestGetTransactionEndpoint(t *testing.T) {
	app, _ := newTestApp(t, map[string]decimal.Decimal{"W1": decimal.Zero})

	resp := postJSON(t, app, "/transactions/deposit", `{"walletId":"W1","amount":10}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()

	req := httptest.NewRequest(fiber.MethodGet, "/transactions/"+created["transactionId"].(string), nil)
	getResp, err := app.Test(req)
	require.NoError(t, err)
	defer getResp.Body.Close()
	assert.Equal(t, http.StatusOK, getResp.StatusCode)

	req = httptest.NewRequest(fiber.MethodGet, "/transactions/TXN-unknown", nil)
	missResp, err := app.Test(req)
	require.NoError(t, err)
	defer missResp.Body.Close()
	assert.Equal(t, http.StatusNotFound, missResp.StatusCode)
}

func TestListByWalletEndpoint(t *testing.T) {
	app, _ := newTestApp(t, map[string]decimal.Decimal{"W1": decimal.NewFromInt(50), "W2": decimal.Zero})

	postJSON(t, app, "/transactions/deposit", `{"walletId":"W1","amount":10}`).Body.Close()
	postJSON(t, app, "/transactions/transfer", `{"fromWalletId":"W1","toWalletId":"W2","amount":20}`).Body.Close()

	req := httptest.NewRequest(fiber.MethodGet, "/transactions/wallet/W1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var records []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&records))
	assert.Len(t, records, 2)
}
