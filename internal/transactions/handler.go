package transactions

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/walletpay/walletpay/internal/ledger"
	"github.com/walletpay/walletpay/internal/walletgw"
)

// Handler exposes the transaction endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a transaction handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Deposit processes a deposit request.
func (h *Handler) Deposit(c *fiber.Ctx) error {
	var req depositRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.WalletID == "" {
		return fiber.NewError(http.StatusBadRequest, "walletId is required")
	}
	if req.Amount.Sign() <= 0 {
		return fiber.NewError(http.StatusBadRequest, "amount must be positive")
	}

	rec, err := h.service.Deposit(c.UserContext(), DepositInput{
		WalletID:    req.WalletID,
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		return mapFlowError(err)
	}

	return c.Status(http.StatusCreated).JSON(toResponse(rec))
}

// Withdraw processes a withdrawal request.
func (h *Handler) Withdraw(c *fiber.Ctx) error {
	var req withdrawRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.WalletID == "" {
		return fiber.NewError(http.StatusBadRequest, "walletId is required")
	}
	if req.Amount.Sign() <= 0 {
		return fiber.NewError(http.StatusBadRequest, "amount must be positive")
	}

	rec, err := h.service.Withdraw(c.UserContext(), WithdrawInput{
		WalletID:    req.WalletID,
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		return mapFlowError(err)
	}

	return c.Status(http.StatusCreated).JSON(toResponse(rec))
}

// Transfer processes a wallet-to-wallet transfer request.
func (h *Handler) Transfer(c *fiber.Ctx) error {
	var req transferRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.FromWalletID == "" || req.ToWalletID == "" {
		return fiber.NewError(http.StatusBadRequest, "fromWalletId and toWalletId are required")
	}
	if req.Amount.Sign() <= 0 {
		return fiber.NewError(http.StatusBadRequest, "amount must be positive")
	}

	rec, err := h.service.Transfer(c.UserContext(), TransferInput{
		FromWalletID: req.FromWalletID,
		ToWalletID:   req.ToWalletID,
		Amount:       req.Amount,
		Description:  req.Description,
	})
	if err != nil {
		return mapFlowError(err)
	}

	return c.Status(http.StatusCreated).JSON(toResponse(rec))
}

// Get returns a single transaction record by its external id.
func (h *Handler) Get(c *fiber.Ctx) error {
	transactionID := c.Params("transactionId")

	rec, err := h.service.Get(c.UserContext(), transactionID)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "transaction not found")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	return c.Status(http.StatusOK).JSON(toResponse(rec))
}

// ListByWallet returns every transaction involving the wallet.
func (h *Handler) ListByWallet(c *fiber.Ctx) error {
	walletID := c.Params("walletId")

	recs, err := h.service.ListByWallet(c.UserContext(), walletID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	return c.Status(http.StatusOK).JSON(toResponseList(recs))
}

func mapFlowError(err error) error {
	switch {
	case errors.Is(err, ErrInsufficientBalance):
		return fiber.NewError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, walletgw.ErrWalletUnavailable):
		return fiber.NewError(http.StatusBadGateway, err.Error())
	default:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
}
