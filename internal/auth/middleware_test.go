package auth

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/harmony-ledger/harmony/pkg/util/errorutil"
)

func TestAuthenticateStates(t *testing.T) {
	t.Parallel()

	m := newFixedManager(t, issuedAt)
	_, token, err := m.Issue(42)
	require.NoError(t, err)
	expiry := issuedAt + ClaimTTLMillis

	tests := []struct {
		name     string
		header   string
		present  bool
		now      int64
		wantKind RejectionKind
		reason   string
	}{
		{name: "absent header", present: false, now: issuedAt, wantKind: MissingCredential, reason: "missing claim"},
		{name: "empty header", header: "", present: true, now: issuedAt, wantKind: MalformedCredential, reason: "invalid claim"},
		{name: "garbage", header: "%%%", present: true, now: issuedAt, wantKind: MalformedCredential, reason: "invalid claim"},
		{name: "undecryptable", header: EncodeToken(make([]byte, 64)), present: true, now: issuedAt, wantKind: MalformedCredential, reason: "invalid claim"},
		{name: "at expiry", header: token, present: true, now: expiry},
		{name: "one millisecond late", header: token, present: true, now: expiry + 1, wantKind: ExpiredCredential, reason: "expired claim"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			claim, rejection := m.Authenticate(tt.header, tt.present, tt.now)
			if tt.wantKind == 0 {
				require.Nil(t, rejection)
				assert.Equal(t, int64(42), claim.Subject)
				return
			}
			require.NotNil(t, rejection)
			assert.Equal(t, tt.wantKind, rejection.Kind)
			assert.Equal(t, tt.reason, rejection.Reason)
			assert.Equal(t, Claim{}, claim)
		})
	}
}

type envelope struct {
	OK      bool            `json:"ok"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newProtectedApp(m *ClaimManager, reached *bool) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return apperrors.Fail(c, apperrors.ToDomainError(err))
		},
	})
	mw := NewClaimMiddleware(m)
	app.Get("/protected", mw.Handle, func(c *fiber.Ctx) error {
		*reached = true
		subject, ok := SubjectFromContext(c)
		if !ok {
			return fiber.ErrInternalServerError
		}
		return apperrors.OK(c, fiber.Map{"subject": subject})
	})
	return app
}

func doProtected(t *testing.T, app *fiber.App, header *string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != nil {
		req.Header.Set(ClaimHeader, *header)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.Unmarshal(body, &env))
	return resp.StatusCode, env
}

func TestClaimMiddleware(t *testing.T) {
	t.Parallel()

	issuer := newFixedManager(t, issuedAt)
	_, token, err := issuer.Issue(42)
	require.NoError(t, err)
	tampered := "A" + token[1:]
	if tampered == token {
		tampered = "B" + token[1:]
	}

	tests := []struct {
		name        string
		now         int64
		header      *string
		wantStatus  int
		wantMessage string
		wantReached bool
	}{
		{name: "accepted", now: issuedAt, header: &token, wantStatus: http.StatusOK, wantReached: true},
		{name: "accepted at expiry instant", now: issuedAt + ClaimTTLMillis, header: &token, wantStatus: http.StatusOK, wantReached: true},
		{name: "missing header", now: issuedAt, wantStatus: http.StatusBadRequest, wantMessage: "missing claim"},
		{name: "tampered", now: issuedAt, header: &tampered, wantStatus: http.StatusBadRequest, wantMessage: "invalid claim"},
		{name: "expired", now: issuedAt + ClaimTTLMillis + 1, header: &token, wantStatus: http.StatusBadRequest, wantMessage: "expired claim"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			reached := false
			app := newProtectedApp(newFixedManager(t, tt.now), &reached)

			status, env := doProtected(t, app, tt.header)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantStatus, env.Code)
			assert.Equal(t, tt.wantReached, reached)
			if tt.wantReached {
				assert.True(t, env.OK)
				assert.JSONEq(t, `{"subject":42}`, string(env.Data))
				return
			}
			assert.False(t, env.OK)
			assert.Equal(t, tt.wantMessage, env.Message)
			assert.Empty(t, env.Data)
		})
	}
}

func TestClaimFromContextWithoutMiddleware(t *testing.T) {
	t.Parallel()

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		_, ok := SubjectFromContext(c)
		if ok {
			return c.SendStatus(http.StatusOK)
		}
		return c.SendStatus(http.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}
