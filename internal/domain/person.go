package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxNicknameLength = 20
	MaxPasswordLength = 1024
)

var (
	ErrNicknameEmpty   = errors.New("nickname cannot be empty")
	ErrNicknameTooLong = errors.New("nickname is too long")
	ErrPasswordEmpty   = errors.New("password cannot be empty")
	ErrPasswordTooLong = errors.New("password is too long (maximum 1024 characters)")
)

// Person is an account holder. Its ID is the subject of issued claims.
type Person struct {
	ID           int64
	Nickname     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidateNickname rejects blank nicknames and ones longer than MaxNicknameLength characters.
func ValidateNickname(nickname string) error {
	if strings.TrimSpace(nickname) == "" {
		return ErrNicknameEmpty
	}
	if utf8.RuneCountInString(nickname) > MaxNicknameLength {
		return ErrNicknameTooLong
	}
	return nil
}

// ValidatePassword rejects blank passwords and ones longer than MaxPasswordLength characters.
func ValidatePassword(password string) error {
	if strings.TrimSpace(password) == "" {
		return ErrPasswordEmpty
	}
	if utf8.RuneCountInString(password) > MaxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}
