package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/harmony-ledger/harmony/internal/api/dto"
	"github.com/harmony-ledger/harmony/internal/service"
	"github.com/harmony-ledger/harmony/internal/validator"
	apperrors "github.com/harmony-ledger/harmony/pkg/util/errorutil"
)

// TradeHandler exposes /finance/trades.
type TradeHandler struct {
	trades    *service.TradeService
	validator *validator.Validator
}

// NewTradeHandler constructs handler.
func NewTradeHandler(trades *service.TradeService, v *validator.Validator) *TradeHandler {
	return &TradeHandler{trades: trades, validator: v}
}

// List handles GET /finance/trades.
func (h *TradeHandler) List(c *fiber.Ctx) error {
	owner, err := subject(c)
	if err != nil {
		return err
	}
	query, err := listQuery(c, h.validator)
	if err != nil {
		return err
	}

	page, err := h.trades.List(c.UserContext(), owner, query)
	if err != nil {
		return err
	}
	items := make([]dto.TradeItem, 0, len(page.Trades))
	for _, trade := range page.Trades {
		items = append(items, dto.NewTradeItem(trade))
	}
	return apperrors.OK(c, dto.TradeListResponse{Trades: items, Total: page.Total})
}

// Create handles POST /finance/trades.
func (h *TradeHandler) Create(c *fiber.Ctx) error {
	owner, err := subject(c)
	if err != nil {
		return err
	}
	var req dto.TradeCreateRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}

	trade, err := h.trades.Create(c.UserContext(), owner, service.TradeInput{
		BaseObjectID:  req.BaseObjectID,
		QuoteObjectID: req.QuoteObjectID,
		Alias:         req.Alias,
		Remark:        req.Remark,
	})
	if err != nil {
		return err
	}
	return apperrors.OK(c, dto.CreatedResponse{ID: trade.ID, CreatedAt: trade.CreatedAt})
}

// Update handles PUT /finance/trades/:id.
func (h *TradeHandler) Update(c *fiber.Ctx) error {
	owner, err := subject(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.TradeUpdateRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}

	if _, err := h.trades.Update(c.UserContext(), owner, id, service.TradePatch{
		BaseObjectID:  req.BaseObjectID,
		QuoteObjectID: req.QuoteObjectID,
		Alias:         req.Alias,
		Remark:        req.Remark,
	}); err != nil {
		return err
	}
	return apperrors.OK(c, dto.IDResponse{ID: id})
}

// Delete handles DELETE /finance/trades/:id and returns the removed trade.
func (h *TradeHandler) Delete(c *fiber.Ctx) error {
	owner, err := subject(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	trade, err := h.trades.Delete(c.UserContext(), owner, id)
	if err != nil {
		return err
	}
	return apperrors.OK(c, dto.NewTradeItem(*trade))
}
