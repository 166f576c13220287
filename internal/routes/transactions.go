package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/walletpay/walletpay/internal/transactions"
)

// RegisterTransactionRoutes wires the transaction endpoints.
func RegisterTransactionRoutes(r fiber.Router, h *transactions.Handler) {
	grp := r.Group("/transactions")
	grp.Post("/deposit", h.Deposit)
	grp.Post("/withdraw", h.Withdraw)
	grp.Post("/transfer", h.Transfer)
	grp.Get("/wallet/:walletId", h.ListByWallet)
	grp.Get("/:transactionId", h.Get)
}
