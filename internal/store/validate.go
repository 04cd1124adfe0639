package store

import (
	"errors"
	"strings"
	"time"

	"github.com/tartampluch/go-wishlist/internal/config"
	"github.com/tartampluch/go-wishlist/internal/engine"
)

// Validation errors shown next to the form field that caused them.
var (
	ErrEmptyName       = errors.New(config.ErrEmptyName)
	ErrInvalidBirthday = errors.New(config.ErrInvalidBirthday)
	ErrNegativePrice   = errors.New(config.ErrNegativePrice)
)

// ValidatePersonInput checks the add/edit person form.
func ValidatePersonInput(name string, day int, month time.Month) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if day < 1 || day > engine.MaxDay(month) {
		return ErrInvalidBirthday
	}
	return nil
}

// ValidateGiftInput checks the add/edit gift form.
func ValidateGiftInput(in GiftInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrEmptyName
	}
	if in.Price != nil && *in.Price < 0 {
		return ErrNegativePrice
	}
	return nil
}
