package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/harmony-ledger/harmony/pkg/util/errorutil"
)

// ClaimHeader carries the encoded claim on protected requests.
const ClaimHeader = "X-Access-Claim"

const principalKey = "auth_principal"

// RejectionKind classifies why a claim was refused.
type RejectionKind int

const (
	MissingCredential RejectionKind = iota + 1
	MalformedCredential
	ExpiredCredential
)

// Rejection is the single refused outcome of Authenticate. Reason is the only
// text a client ever sees.
type Rejection struct {
	Kind   RejectionKind
	Reason string
}

func (r *Rejection) Error() string {
	return r.Reason
}

var (
	rejectMissing = &Rejection{Kind: MissingCredential, Reason: "missing claim"}
	rejectInvalid = &Rejection{Kind: MalformedCredential, Reason: "invalid claim"}
	rejectExpired = &Rejection{Kind: ExpiredCredential, Reason: "expired claim"}
)

// Authenticate runs the header through decode, decrypt, deserialize and the
// freshness check. present distinguishes an absent header from an empty one.
func (m *ClaimManager) Authenticate(header string, present bool, nowMillis int64) (Claim, *Rejection) {
	if !present {
		return Claim{}, rejectMissing
	}
	claim, err := m.Verify(header)
	if err != nil {
		return Claim{}, rejectInvalid
	}
	if claim.IsExpired(nowMillis) {
		return Claim{}, rejectExpired
	}
	return claim, nil
}

// ClaimMiddleware guards protected routes with X-Access-Claim.
type ClaimMiddleware struct {
	claims *ClaimManager
}

// NewClaimMiddleware constructs middleware.
func NewClaimMiddleware(claims *ClaimManager) *ClaimMiddleware {
	return &ClaimMiddleware{claims: claims}
}

// Handle rejects the request with 400 unless it carries a fresh, authentic claim.
// It performs no I/O; downstream handlers only run for accepted claims.
func (m *ClaimMiddleware) Handle(c *fiber.Ctx) error {
	raw := c.Request().Header.Peek(ClaimHeader)
	claim, rejection := m.claims.Authenticate(string(raw), raw != nil, m.claims.NowMillis())
	if rejection != nil {
		return apperrors.NewBadRequest(rejection.Reason)
	}

	c.Locals(principalKey, claim)
	return c.Next()
}

// ClaimFromContext returns the accepted claim for the current request.
func ClaimFromContext(c *fiber.Ctx) (Claim, bool) {
	claim, ok := c.Locals(principalKey).(Claim)
	return claim, ok
}

// SubjectFromContext returns the authenticated subject id.
func SubjectFromContext(c *fiber.Ctx) (int64, bool) {
	claim, ok := ClaimFromContext(c)
	if !ok {
		return 0, false
	}
	return claim.Subject, true
}
