package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/harmony-ledger/harmony/internal/api/dto"
	"github.com/harmony-ledger/harmony/internal/domain"
	"github.com/harmony-ledger/harmony/internal/service"
	"github.com/harmony-ledger/harmony/internal/validator"
	apperrors "github.com/harmony-ledger/harmony/pkg/util/errorutil"
)

// TransactionHandler exposes /finance/trades/:trade_id/transactions.
type TransactionHandler struct {
	transactions *service.TransactionService
	validator    *validator.Validator
}

// NewTransactionHandler constructs handler.
func NewTransactionHandler(transactions *service.TransactionService, v *validator.Validator) *TransactionHandler {
	return &TransactionHandler{transactions: transactions, validator: v}
}

// List handles GET /finance/trades/:trade_id/transactions.
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	owner, tradeID, err := h.scope(c)
	if err != nil {
		return err
	}
	query, err := listQuery(c, h.validator)
	if err != nil {
		return err
	}

	page, err := h.transactions.List(c.UserContext(), owner, tradeID, query)
	if err != nil {
		return err
	}
	items := make([]dto.TransactionItem, 0, len(page.Transactions))
	for _, tx := range page.Transactions {
		items = append(items, dto.NewTransactionItem(tx))
	}
	return apperrors.OK(c, dto.TransactionListResponse{Transactions: items, Total: page.Total})
}

// Create handles POST /finance/trades/:trade_id/transactions.
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	owner, tradeID, err := h.scope(c)
	if err != nil {
		return err
	}
	var req dto.TransactionCreateRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}
	quantity, err := domain.ParseQuantity(req.Quantity.String())
	if err != nil {
		return apperrors.NewBadRequest(err.Error())
	}

	tx, err := h.transactions.Create(c.UserContext(), owner, tradeID, service.TransactionInput{
		Quantity:      quantity,
		IsBaseToQuote: *req.IsBaseToQuote,
		Alias:         req.Alias,
		Remark:        req.Remark,
		OccurrenceAt:  req.OccurrenceAt,
	})
	if err != nil {
		return err
	}
	return apperrors.OK(c, dto.CreatedResponse{ID: tx.ID, CreatedAt: tx.CreatedAt})
}

// Update handles PUT /finance/trades/:trade_id/transactions/:id.
func (h *TransactionHandler) Update(c *fiber.Ctx) error {
	owner, tradeID, err := h.scope(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.TransactionUpdateRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}

	patch := service.TransactionPatch{
		IsBaseToQuote: req.IsBaseToQuote,
		Alias:         req.Alias,
		Remark:        req.Remark,
		OccurrenceAt:  req.OccurrenceAt,
	}
	if req.Quantity != nil {
		quantity, err := domain.ParseQuantity(req.Quantity.String())
		if err != nil {
			return apperrors.NewBadRequest(err.Error())
		}
		patch.Quantity = &quantity
	}

	if _, err := h.transactions.Update(c.UserContext(), owner, tradeID, id, patch); err != nil {
		return err
	}
	return apperrors.OK(c, dto.IDResponse{ID: id})
}

// Delete handles DELETE /finance/trades/:trade_id/transactions/:id and returns
// the removed transaction.
func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	owner, tradeID, err := h.scope(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	tx, err := h.transactions.Delete(c.UserContext(), owner, tradeID, id)
	if err != nil {
		return err
	}
	return apperrors.OK(c, dto.NewTransactionItem(*tx))
}

func (h *TransactionHandler) scope(c *fiber.Ctx) (int64, int64, error) {
	owner, err := subject(c)
	if err != nil {
		return 0, 0, err
	}
	tradeID, err := pathID(c, "trade_id")
	if err != nil {
		return 0, 0, err
	}
	return owner, tradeID, nil
}
