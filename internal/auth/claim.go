package auth

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/harmony-ledger/harmony/internal/clock"
)

// ClaimTTLMillis is how long an issued claim stays fresh: seven days.
const ClaimTTLMillis int64 = 7 * 24 * 60 * 60 * 1000

// ErrInvalidClaim is the single outcome of a failed verification. Decode,
// decrypt and deserialize failures are indistinguishable.
var ErrInvalidClaim = errors.New("invalid claim")

// Claim is the authenticated identity carried by the X-Access-Claim header.
type Claim struct {
	Subject   int64
	IssuedAt  int64
	ExpiresAt int64
}

// claimPayload is the serialized form. Field names and order are part of the
// wire contract; pointers let Verify tell a missing field from a zero one.
type claimPayload struct {
	Sub *int64 `json:"sub"`
	Iat *int64 `json:"iat"`
	Exp *int64 `json:"exp"`
}

// IsExpired reports whether the claim's window closed before nowMillis.
// A claim is still valid at the exact expiry instant.
func (c Claim) IsExpired(nowMillis int64) bool {
	return c.ExpiresAt < nowMillis
}

// ClaimManager issues and verifies claims with process-wide key material.
type ClaimManager struct {
	sealer Sealer
	clock  clock.Clock
}

// NewClaimManager builds a manager. A nil clock falls back to the system clock.
func NewClaimManager(sealer Sealer, clk clock.Clock) *ClaimManager {
	if clk == nil {
		clk = clock.New()
	}
	return &ClaimManager{sealer: sealer, clock: clk}
}

// NewClaim stamps a claim for subject at the manager's current time.
func (m *ClaimManager) NewClaim(subject int64) Claim {
	issuedAt := clock.NowMillis(m.clock)
	return Claim{
		Subject:   subject,
		IssuedAt:  issuedAt,
		ExpiresAt: issuedAt + ClaimTTLMillis,
	}
}

// Issue creates a fresh claim for subject and returns it with its token.
func (m *ClaimManager) Issue(subject int64) (Claim, string, error) {
	claim := m.NewClaim(subject)
	token, err := m.Encode(claim)
	if err != nil {
		return Claim{}, "", err
	}
	return claim, token, nil
}

// Encode serializes, seals and base64-encodes claim.
func (m *ClaimManager) Encode(claim Claim) (string, error) {
	message, err := json.Marshal(claimPayload{
		Sub: &claim.Subject,
		Iat: &claim.IssuedAt,
		Exp: &claim.ExpiresAt,
	})
	if err != nil {
		return "", fmt.Errorf("marshal claim: %w", err)
	}
	sealed, err := m.sealer.Seal(message)
	if err != nil {
		return "", fmt.Errorf("seal claim: %w", err)
	}
	return EncodeToken(sealed), nil
}

// Verify decodes, opens and deserializes token. It does not check expiry.
func (m *ClaimManager) Verify(token string) (Claim, error) {
	sealed, err := DecodeToken(token)
	if err != nil {
		return Claim{}, ErrInvalidClaim
	}
	message, err := m.sealer.Open(sealed)
	if err != nil {
		return Claim{}, ErrInvalidClaim
	}

	var payload claimPayload
	if err := json.Unmarshal(message, &payload); err != nil {
		return Claim{}, ErrInvalidClaim
	}
	if payload.Sub == nil || payload.Iat == nil || payload.Exp == nil {
		return Claim{}, ErrInvalidClaim
	}
	return Claim{Subject: *payload.Sub, IssuedAt: *payload.Iat, ExpiresAt: *payload.Exp}, nil
}

// NowMillis returns the manager's clock reading in Unix milliseconds.
func (m *ClaimManager) NowMillis() int64 {
	return clock.NowMillis(m.clock)
}
