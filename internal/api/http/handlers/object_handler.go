package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/harmony-ledger/harmony/internal/api/dto"
	"github.com/harmony-ledger/harmony/internal/service"
	"github.com/harmony-ledger/harmony/internal/validator"
	apperrors "github.com/harmony-ledger/harmony/pkg/util/errorutil"
)

// ObjectHandler exposes /finance/objects.
type ObjectHandler struct {
	objects   *service.ObjectService
	validator *validator.Validator
}

// NewObjectHandler constructs handler.
func NewObjectHandler(objects *service.ObjectService, v *validator.Validator) *ObjectHandler {
	return &ObjectHandler{objects: objects, validator: v}
}

// List handles GET /finance/objects.
func (h *ObjectHandler) List(c *fiber.Ctx) error {
	owner, err := subject(c)
	if err != nil {
		return err
	}
	query, err := listQuery(c, h.validator)
	if err != nil {
		return err
	}

	page, err := h.objects.List(c.UserContext(), owner, query)
	if err != nil {
		return err
	}
	items := make([]dto.ObjectItem, 0, len(page.Objects))
	for _, object := range page.Objects {
		items = append(items, dto.NewObjectItem(object))
	}
	return apperrors.OK(c, dto.ObjectListResponse{Objects: items, Total: page.Total})
}

// Create handles POST /finance/objects.
func (h *ObjectHandler) Create(c *fiber.Ctx) error {
	owner, err := subject(c)
	if err != nil {
		return err
	}
	var req dto.ObjectCreateRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}

	object, err := h.objects.Create(c.UserContext(), owner, service.ObjectInput{
		Symbol: req.Symbol,
		Alias:  req.Alias,
		Remark: req.Remark,
	})
	if err != nil {
		return err
	}
	return apperrors.OK(c, dto.CreatedResponse{ID: object.ID, CreatedAt: object.CreatedAt})
}

// Update handles PUT /finance/objects/:id.
func (h *ObjectHandler) Update(c *fiber.Ctx) error {
	owner, err := subject(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.ObjectUpdateRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}

	if _, err := h.objects.Update(c.UserContext(), owner, id, service.ObjectPatch{
		Symbol: req.Symbol,
		Alias:  req.Alias,
		Remark: req.Remark,
	}); err != nil {
		return err
	}
	return apperrors.OK(c, dto.IDResponse{ID: id})
}

// Delete handles DELETE /finance/objects/:id and returns the removed object.
func (h *ObjectHandler) Delete(c *fiber.Ctx) error {
	owner, err := subject(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	object, err := h.objects.Delete(c.UserContext(), owner, id)
	if err != nil {
		return err
	}
	return apperrors.OK(c, dto.NewObjectItem(*object))
}
