package ui

import (
	"strconv"
	"strings"

	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// NumericalEntry is an Entry that only accepts digits.
type NumericalEntry struct {
	widget.Entry
}

// NewNumericalEntry creates a new instance of NumericalEntry.
func NewNumericalEntry() *NumericalEntry {
	entry := &NumericalEntry{}
	entry.ExtendBaseWidget(entry)
	return entry
}

// TypedRune filters keystrokes to digits. Pasted text is not filtered,
// so callers attach a Validator when the value matters.
func (e *NumericalEntry) TypedRune(r rune) {
	if r >= '0' && r <= '9' {
		e.Entry.TypedRune(r)
	}
}

// Keyboard requests a numeric keypad on mobile devices.
func (e *NumericalEntry) Keyboard() mobile.KeyboardType {
	return mobile.NumberKeyboard
}

// PriceEntry accepts digits and a single decimal separator ("," or ".").
type PriceEntry struct {
	widget.Entry
}

// NewPriceEntry creates a new instance of PriceEntry.
func NewPriceEntry() *PriceEntry {
	entry := &PriceEntry{}
	entry.ExtendBaseWidget(entry)
	return entry
}

// TypedRune filters keystrokes to a decimal amount.
func (e *PriceEntry) TypedRune(r rune) {
	switch {
	case r >= '0' && r <= '9':
		e.Entry.TypedRune(r)
	case r == ',' || r == '.':
		if !strings.ContainsAny(e.Text, ",.") {
			e.Entry.TypedRune(r)
		}
	}
}

// Keyboard requests a decimal keypad on mobile devices.
func (e *PriceEntry) Keyboard() mobile.KeyboardType {
	return mobile.NumberKeyboard
}

// ParsePrice reads an optional amount. Blank text means no price.
// Both "12,50" and "12.50" are accepted.
func ParsePrice(text string) (*float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.Replace(text, ",", ".", 1), 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
