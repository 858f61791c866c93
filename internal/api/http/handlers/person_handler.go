package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/harmony-ledger/harmony/internal/api/dto"
	"github.com/harmony-ledger/harmony/internal/service"
	apperrors "github.com/harmony-ledger/harmony/pkg/util/errorutil"
)

// PersonHandler exposes registration, login and profile endpoints.
type PersonHandler struct {
	persons *service.PersonService
}

// NewPersonHandler constructs handler.
func NewPersonHandler(persons *service.PersonService) *PersonHandler {
	return &PersonHandler{persons: persons}
}

// Register handles POST /person.
func (h *PersonHandler) Register(c *fiber.Ctx) error {
	var req dto.CredentialsRequest
	if err := bindJSON(c, nil, &req); err != nil {
		return err
	}

	_, token, err := h.persons.Register(c.UserContext(), req.Nickname, req.Password)
	if err != nil {
		return err
	}
	return apperrors.OK(c, dto.RegisterResponse{Claim: token})
}

// Claim handles POST /person/claim.
func (h *PersonHandler) Claim(c *fiber.Ctx) error {
	var req dto.CredentialsRequest
	if err := bindJSON(c, nil, &req); err != nil {
		return err
	}

	claim, token, err := h.persons.Login(c.UserContext(), req.Nickname, req.Password)
	if err != nil {
		return err
	}
	return apperrors.OK(c, dto.ClaimResponse{Claim: token, Expire: claim.ExpiresAt})
}

// Show handles GET /person/:id.
func (h *PersonHandler) Show(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	person, err := h.persons.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return apperrors.OK(c, dto.NewPersonResponse(person))
}

// Me handles GET /person for the claim subject.
func (h *PersonHandler) Me(c *fiber.Ctx) error {
	owner, err := subject(c)
	if err != nil {
		return err
	}
	person, err := h.persons.Get(c.UserContext(), owner)
	if err != nil {
		return err
	}
	return apperrors.OK(c, dto.NewPersonResponse(person))
}

// Update handles PUT /person.
func (h *PersonHandler) Update(c *fiber.Ctx) error {
	owner, err := subject(c)
	if err != nil {
		return err
	}
	var req dto.PersonUpdateRequest
	if err := bindJSON(c, nil, &req); err != nil {
		return err
	}

	nickname, err := h.persons.Update(c.UserContext(), owner, service.PersonUpdate{
		Nickname: req.Nickname,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return apperrors.OK(c, dto.PersonUpdateResponse{Nickname: nickname})
}
