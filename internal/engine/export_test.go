package engine_test

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-wishlist/internal/config"
	"github.com/tartampluch/go-wishlist/internal/engine"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "45,00", engine.FormatMoney(45))
	assert.Equal(t, "25,50", engine.FormatMoney(25.5))
	assert.Equal(t, "0,00", engine.FormatMoney(0))
}

// TestShareText_Seed checks the full clipboard block for a person with both groups.
func TestShareText_Seed(t *testing.T) {
	mama := engine.SeedPeople()[0]

	expected := "🎂 Regalos para Mamá (15 de Mayo)\n\n" +
		"💰 Presupuesto: 45,00 €\n\n" +
		"⬜ Set de Jardinería Premium\n" +
		"\n" +
		"✅ Colección de Agatha Christie (Comprado) - 45,00 €"

	assert.Equal(t, expected, engine.ShareText(mama))
}

// TestShareText_Cases covers ordering, optional extras and the empty list.
func TestShareText_Cases(t *testing.T) {
	tests := []struct {
		name     string
		person   engine.Person
		contains []string
		excludes []string
	}{
		{
			name:     "Empty list",
			person:   engine.Person{Name: "Leo", Birthday: "3 de Enero"},
			contains: []string{"🎂 Regalos para Leo (3 de Enero)", config.ShareEmpty},
			excludes: []string{"💰", "⬜", "✅"},
		},
		{
			name: "Link without scheme is normalized",
			person: engine.Person{Name: "Leo", Birthday: "3 de Enero", Gifts: []engine.Gift{
				{ID: "g1", Name: "Libro", Link: "amazon.es/libro"},
			}},
			contains: []string{"⬜ Libro 🔗 https://amazon.es/libro"},
			excludes: []string{"💰", config.ShareEmpty},
		},
		{
			name: "Zero price is not printed on the line",
			person: engine.Person{Name: "Leo", Birthday: "3 de Enero", Gifts: []engine.Gift{
				{ID: "g1", Name: "Abrazo", Price: engine.Price(0)},
			}},
			contains: []string{"💰 Presupuesto: 0,00 €", "⬜ Abrazo\n"},
			excludes: []string{"Abrazo -"},
		},
		{
			name: "Only purchased gifts",
			person: engine.Person{Name: "Leo", Birthday: "3 de Enero", Gifts: []engine.Gift{
				{ID: "g1", Name: "Reloj", Status: engine.StatusPurchased, Price: engine.Price(99.9)},
			}},
			contains: []string{"✅ Reloj (Comprado) - 99,90 €"},
			excludes: []string{"⬜", config.ShareEmpty},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.ShareText(tt.person)
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			for _, unwanted := range tt.excludes {
				assert.NotContains(t, got, unwanted)
			}
		})
	}
}

// TestShareText_PriorityOrder verifies pending gifts are listed highest priority first.
func TestShareText_PriorityOrder(t *testing.T) {
	p := engine.Person{Name: "Leo", Birthday: "3 de Enero", Gifts: []engine.Gift{
		{ID: "1", Name: "Bajo", Priority: engine.PriorityLow},
		{ID: "2", Name: "Alto", Priority: engine.PriorityHigh},
		{ID: "3", Name: "Medio"},
	}}

	got := engine.ShareText(p)

	alto := strings.Index(got, "Alto")
	medio := strings.Index(got, "Medio")
	bajo := strings.Index(got, "Bajo")
	assert.Less(t, alto, medio)
	assert.Less(t, medio, bajo)
}

// TestCalendarURL verifies the template link for the next birthday.
func TestCalendarURL(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	mama := engine.SeedPeople()[0]

	raw, err := engine.CalendarURL(mama, now)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "calendar.google.com", u.Host)

	q := u.Query()
	assert.Equal(t, "TEMPLATE", q.Get("action"))
	assert.Equal(t, "Cumpleaños de Mamá", q.Get("text"))
	assert.Equal(t, "20250515/20250516", q.Get("dates"))
	assert.Equal(t, "RRULE:FREQ=YEARLY", q.Get("recur"))
	assert.Equal(t, "Ideas de regalo:\n- Set de Jardinería Premium", q.Get("details"),
		"Only pending gifts are listed as ideas")
}

// TestCalendarURL_NextYear verifies a passed birthday points to next year.
func TestCalendarURL_NextYear(t *testing.T) {
	now := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	p := engine.Person{Name: "Juan", Birthday: "22 de Noviembre"}

	raw, err := engine.CalendarURL(p, now)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "20261122/20261123", u.Query().Get("dates"))
	assert.False(t, u.Query().Has("details"), "No ideas means no details parameter")
}

func TestCalendarURL_Unparseable(t *testing.T) {
	_, err := engine.CalendarURL(engine.Person{Name: "X", Birthday: "pronto"}, time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrBirthdayParse)
}

func TestShoppingAndReviewURLs(t *testing.T) {
	shop, err := url.Parse(engine.ShoppingURL("  Teclado Mecánico "))
	require.NoError(t, err)
	assert.Equal(t, "Teclado Mecánico", shop.Query().Get("q"))
	assert.Equal(t, "shop", shop.Query().Get("tbm"))

	review, err := url.Parse(engine.ReviewURL("Teclado Mecánico"))
	require.NoError(t, err)
	assert.Equal(t, "Teclado Mecánico review", review.Query().Get("search_query"))
}

func TestNormalizeLink(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"amazon.es", "https://amazon.es"},
		{"  www.tienda.com/x ", "https://www.tienda.com/x"},
		{"https://amazon.es", "https://amazon.es"},
		{"http://example.com", "http://example.com"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, engine.NormalizeLink(tt.input), tt.input)
	}
}

func TestLinkHost(t *testing.T) {
	assert.Equal(t, "amazon.es", engine.LinkHost("https://amazon.es/dp/123"))
	assert.Equal(t, "www.tienda.com", engine.LinkHost("www.tienda.com/x"))
	assert.Equal(t, "", engine.LinkHost(""))
}
