package dto

import (
	"time"

	"github.com/harmony-ledger/harmony/internal/domain"
)

// CredentialsRequest is the payload of registration and login.
type CredentialsRequest struct {
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

// PersonUpdateRequest changes a profile; absent fields are left alone.
type PersonUpdateRequest struct {
	Nickname *string `json:"nickname"`
	Password *string `json:"password"`
}

// RegisterResponse carries the claim of a freshly registered person.
type RegisterResponse struct {
	Claim string `json:"claim"`
}

// ClaimResponse carries a claim and its expiry in Unix milliseconds.
type ClaimResponse struct {
	Claim  string `json:"claim"`
	Expire int64  `json:"expire"`
}

// PersonResponse is the public view of a person.
type PersonResponse struct {
	ID        int64     `json:"id"`
	Nickname  string    `json:"nickname"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PersonUpdateResponse echoes the nickname when it changed.
type PersonUpdateResponse struct {
	Nickname *string `json:"nickname,omitempty"`
}

// PingResponse reports the server clock in Unix milliseconds.
type PingResponse struct {
	Timestamp int64 `json:"timestamp"`
}

// NewPersonResponse maps a domain person.
func NewPersonResponse(p *domain.Person) PersonResponse {
	return PersonResponse{ID: p.ID, Nickname: p.Nickname, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt}
}
