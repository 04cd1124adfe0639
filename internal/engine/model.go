package engine

import (
	"fmt"
	"strings"

	"github.com/tartampluch/go-wishlist/internal/config"
)

// GiftStatus is the purchase state of a gift.
type GiftStatus int

const (
	StatusPending GiftStatus = iota
	StatusPurchased
)

// Toggle flips between pending and purchased.
func (s GiftStatus) Toggle() GiftStatus {
	switch s {
	case StatusPending:
		return StatusPurchased
	case StatusPurchased:
		return StatusPending
	default:
		return s
	}
}

func (s GiftStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusPurchased:
		return "purchased"
	default:
		return fmt.Sprintf("GiftStatus(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s GiftStatus) MarshalText() ([]byte, error) {
	switch s {
	case StatusPending, StatusPurchased:
		return []byte(s.String()), nil
	default:
		return nil, fmt.Errorf("%s: %d", config.ErrUnknownStatus, int(s))
	}
}

// UnmarshalText accepts the current values and the legacy Spanish ones.
func (s *GiftStatus) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "pending", "pendiente":
		*s = StatusPending
	case "purchased", "comprado":
		*s = StatusPurchased
	default:
		return fmt.Errorf("%s: %q", config.ErrUnknownStatus, string(b))
	}
	return nil
}

// Priority orders pending gifts. The zero value is PriorityMedium.
type Priority int

const (
	PriorityMedium Priority = iota
	PriorityHigh
	PriorityLow
)

// Priorities lists every priority from most to least important.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Rank returns the ordinal weight used when ordering pending gifts.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return config.RankHigh
	case PriorityMedium:
		return config.RankMedium
	case PriorityLow:
		return config.RankLow
	default:
		return 0
	}
}

func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	case PriorityLow:
		return "low"
	default:
		return fmt.Sprintf("Priority(%d)", int(p))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Priority) MarshalText() ([]byte, error) {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return []byte(p.String()), nil
	default:
		return nil, fmt.Errorf("%s: %d", config.ErrUnknownPriority, int(p))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Priority) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "high", "alta":
		*p = PriorityHigh
	case "medium", "media", "":
		*p = PriorityMedium
	case "low", "baja":
		*p = PriorityLow
	default:
		return fmt.Errorf("%s: %q", config.ErrUnknownPriority, string(b))
	}
	return nil
}

// Color tags a person card. The zero value is ColorIndigo.
type Color int

const (
	ColorIndigo Color = iota
	ColorRose
	ColorBlue
	ColorEmerald
	ColorAmber
	ColorViolet
)

// Palette lists every card color in display order.
var Palette = []Color{ColorIndigo, ColorRose, ColorBlue, ColorEmerald, ColorAmber, ColorViolet}

func (c Color) String() string {
	switch c {
	case ColorIndigo:
		return "indigo"
	case ColorRose:
		return "rose"
	case ColorBlue:
		return "blue"
	case ColorEmerald:
		return "emerald"
	case ColorAmber:
		return "amber"
	case ColorViolet:
		return "violet"
	default:
		return fmt.Sprintf("Color(%d)", int(c))
	}
}

// ParseColor maps a palette name back to its Color.
func ParseColor(name string) (Color, error) {
	for _, c := range Palette {
		if c.String() == strings.ToLower(name) {
			return c, nil
		}
	}
	return ColorIndigo, fmt.Errorf("%s: %q", config.ErrUnknownColor, name)
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	switch c {
	case ColorIndigo, ColorRose, ColorBlue, ColorEmerald, ColorAmber, ColorViolet:
		return []byte(c.String()), nil
	default:
		return nil, fmt.Errorf("%s: %d", config.ErrUnknownColor, int(c))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler. An empty value is the default color.
func (c *Color) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*c = ColorIndigo
		return nil
	}
	parsed, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Gift is a wishlist entry owned by exactly one Person.
type Gift struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      GiftStatus `json:"status"`
	Price       *float64   `json:"price,omitempty"`
	Link        string     `json:"link,omitempty"`
	Priority    Priority   `json:"priority"`
}

// Purchased reports whether the gift has been bought.
func (g Gift) Purchased() bool {
	return g.Status == StatusPurchased
}

// Person is someone tracked for gift planning.
type Person struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Birthday    string `json:"birthday"`
	ReminderSet bool   `json:"reminderSet"`
	IsFavorite  bool   `json:"isFavorite"`
	Color       Color  `json:"color"`
	Gifts       []Gift `json:"gifts"`
}

// Clone returns a copy that shares no gift storage with p.
func (p Person) Clone() Person {
	out := p
	out.Gifts = make([]Gift, len(p.Gifts))
	for i, g := range p.Gifts {
		if g.Price != nil {
			price := *g.Price
			g.Price = &price
		}
		out.Gifts[i] = g
	}
	return out
}

// Price is a small helper for building optional prices.
func Price(v float64) *float64 {
	return &v
}
