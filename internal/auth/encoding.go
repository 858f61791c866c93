package auth

import (
	"encoding/base64"
	"errors"
	"strings"
)

// ErrFormat is returned when a token is not valid padded standard base64.
var ErrFormat = errors.New("token is not valid base64")

// EncodeToken renders sealed bytes for the claim header.
func EncodeToken(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// DecodeToken parses a header value produced by EncodeToken.
// Line breaks are rejected even though the stdlib decoder would skip them.
func DecodeToken(token string) ([]byte, error) {
	if strings.ContainsAny(token, "\r\n") {
		return nil, ErrFormat
	}
	data, err := base64.StdEncoding.Strict().DecodeString(token)
	if err != nil {
		return nil, ErrFormat
	}
	return data, nil
}
