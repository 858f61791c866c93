package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/harmony-ledger/harmony/internal/api/dto"
	"github.com/harmony-ledger/harmony/internal/auth"
	"github.com/harmony-ledger/harmony/internal/service"
	"github.com/harmony-ledger/harmony/internal/validator"
	apperrors "github.com/harmony-ledger/harmony/pkg/util/errorutil"
)

func bindJSON(c *fiber.Ctx, v *validator.Validator, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if v == nil {
		return nil
	}
	return validationFailure(v.Validate(out))
}

func validationFailure(err error) error {
	var fields validator.ValidationError
	if errors.As(err, &fields) {
		return apperrors.NewValidationError(fields.Message(), fields.Details())
	}
	return err
}

func pathID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil {
		return 0, apperrors.NewBadRequest(fmt.Sprintf("%s must be an integer", name))
	}
	return id, nil
}

func listQuery(c *fiber.Ctx, v *validator.Validator) (service.ListQuery, error) {
	var params dto.ListParams
	var err error
	if params.ID, err = optionalInt64(c, "id"); err != nil {
		return service.ListQuery{}, err
	}
	if params.Page, err = optionalInt(c, "page"); err != nil {
		return service.ListQuery{}, err
	}
	if params.PageSize, err = optionalInt(c, "page_size"); err != nil {
		return service.ListQuery{}, err
	}
	if err := validationFailure(v.Validate(params)); err != nil {
		return service.ListQuery{}, err
	}

	query := service.ListQuery{ID: params.ID, Page: service.DefaultPage, PageSize: service.DefaultPageSize}
	if params.Page != nil {
		query.Page = *params.Page
	}
	if params.PageSize != nil {
		query.PageSize = *params.PageSize
	}
	return query, nil
}

func optionalInt64(c *fiber.Ctx, key string) (*int64, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, apperrors.NewBadRequest(fmt.Sprintf("%s must be an integer", key))
	}
	return &n, nil
}

func optionalInt(c *fiber.Ctx, key string) (*int, error) {
	n, err := optionalInt64(c, key)
	if err != nil || n == nil {
		return nil, err
	}
	v := int(*n)
	return &v, nil
}

func subject(c *fiber.Ctx) (int64, error) {
	owner, ok := auth.SubjectFromContext(c)
	if !ok {
		return 0, apperrors.NewBadRequest("missing claim")
	}
	return owner, nil
}
