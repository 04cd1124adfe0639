package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-wishlist/internal/engine"
	"github.com/tartampluch/go-wishlist/internal/store"
)

// -----------------------------------------------------------------------------
// Person Form Tests
// -----------------------------------------------------------------------------

func TestPersonForm_DefaultsToToday(t *testing.T) {
	app, _, _ := setupTestApp(t)
	f := app.newPersonForm(nil)

	assert.Equal(t, "Mayo", f.month.Selected)
	assert.Equal(t, "1", f.day.Selected)
	assert.Len(t, f.day.Options, 31)
	assert.Equal(t, "Índigo", f.color.Selected)
	assert.False(t, f.errLabel.Visible())
}

// TestPersonForm_DaysFollowMonth verifies February offers 29 days and clamps the selection.
func TestPersonForm_DaysFollowMonth(t *testing.T) {
	app, _, _ := setupTestApp(t)
	f := app.newPersonForm(nil)
	f.day.SetSelected("31")

	f.month.SetSelected("Febrero")
	assert.Len(t, f.day.Options, 29)
	assert.Equal(t, "29", f.day.Selected)

	f.month.SetSelected("Abril")
	assert.Len(t, f.day.Options, 30)
	assert.Equal(t, "29", f.day.Selected)
}

func TestPersonForm_RequiresName(t *testing.T) {
	app, _, _ := setupTestApp(t)
	f := app.newPersonForm(nil)
	f.name.SetText("   ")

	err := f.submit()

	assert.ErrorIs(t, err, store.ErrEmptyName)
	assert.True(t, f.errLabel.Visible())
	assert.Equal(t, "El nombre es obligatorio.", f.errLabel.Text)
	assert.Len(t, app.Store.People(), 2)
}

func TestPersonForm_Add(t *testing.T) {
	app, _, _ := setupTestApp(t)
	f := app.newPersonForm(nil)
	f.name.SetText(" Lucía ")
	f.month.SetSelected("Marzo")
	f.day.SetSelected("3")
	f.color.SetSelected("Esmeralda")

	require.NoError(t, f.submit())

	people := app.Store.People()
	require.Len(t, people, 3)
	added := people[0]
	assert.Equal(t, "Lucía", added.Name)
	assert.Equal(t, "3 de Marzo", added.Birthday)
	assert.Equal(t, engine.ColorEmerald, added.Color)
	assert.Contains(t, app.cards, added.ID, "The new card is rendered")
}

func TestPersonForm_EditPrefill(t *testing.T) {
	app, _, _ := setupTestApp(t)
	mama, _ := app.Store.State().Person("person-1")
	f := app.newPersonForm(&mama)

	assert.Equal(t, "Mamá", f.name.Text)
	assert.Equal(t, "15", f.day.Selected)
	assert.Equal(t, "Mayo", f.month.Selected)
	assert.Equal(t, "Rosa", f.color.Selected)

	f.day.SetSelected("16")
	require.NoError(t, f.submit())

	got, _ := app.Store.State().Person("person-1")
	assert.Equal(t, "16 de Mayo", got.Birthday)
	assert.Len(t, got.Gifts, 2, "Editing keeps the gifts")
}

// TestPersonForm_RenameKeepsReminder edits a person whose birthday is stored in
// lower case; the date is unchanged, so the text and the reminder flag stay.
func TestPersonForm_RenameKeepsReminder(t *testing.T) {
	app, _, _ := setupTestApp(t)
	id := app.Store.AddPerson("Tía Rosa", "15 de mayo", engine.ColorRose)
	app.Store.SetReminder(id)
	p, _ := app.Store.State().Person(id)

	f := app.newPersonForm(&p)
	require.Equal(t, "Mayo", f.month.Selected)
	require.Equal(t, "15", f.day.Selected)

	f.name.SetText("Tía Rosa María")
	require.NoError(t, f.submit())

	got, _ := app.Store.State().Person(id)
	assert.Equal(t, "Tía Rosa María", got.Name)
	assert.Equal(t, "15 de mayo", got.Birthday)
	assert.True(t, got.ReminderSet)

	// Picking another date still clears the reminder.
	f = app.newPersonForm(&got)
	f.day.SetSelected("16")
	require.NoError(t, f.submit())

	got, _ = app.Store.State().Person(id)
	assert.Equal(t, "16 de Mayo", got.Birthday)
	assert.False(t, got.ReminderSet)
}

// TestPersonForm_KeepsUnreadableBirthday edits the name of an imported person
// whose birthday text cannot be parsed.
func TestPersonForm_KeepsUnreadableBirthday(t *testing.T) {
	app, _, _ := setupTestApp(t)
	id := app.Store.AddPerson("Abuelo", "en verano", engine.ColorAmber)
	p, _ := app.Store.State().Person(id)

	f := app.newPersonForm(&p)
	assert.Empty(t, f.month.Selected)
	assert.Empty(t, f.day.Selected)

	f.name.SetText("Abuelo Pepe")
	require.NoError(t, f.submit())

	got, _ := app.Store.State().Person(id)
	assert.Equal(t, "Abuelo Pepe", got.Name)
	assert.Equal(t, "en verano", got.Birthday)
}

func TestPersonForm_AddNeedsDate(t *testing.T) {
	app, _, _ := setupTestApp(t)
	f := app.newPersonForm(nil)
	f.name.SetText("Lucía")
	f.month.ClearSelected()

	assert.ErrorIs(t, f.submit(), store.ErrInvalidBirthday)
	assert.Equal(t, "Elige un día y un mes válidos.", f.errLabel.Text)
}

// -----------------------------------------------------------------------------
// Gift Form Tests
// -----------------------------------------------------------------------------

func TestGiftForm_Defaults(t *testing.T) {
	app, _, _ := setupTestApp(t)
	f := app.newGiftForm("person-2", nil)

	assert.Equal(t, "Media", f.priority.Selected)
	assert.Empty(t, f.price.Text)
}

func TestGiftForm_Validation(t *testing.T) {
	app, _, _ := setupTestApp(t)

	tests := []struct {
		name    string
		gift    string
		price   string
		wantErr error
		wantMsg string
	}{
		{"Blank_Name", " ", "", store.ErrEmptyName, "El nombre es obligatorio."},
		{"Not_A_Number", "Libro", "abc", errInvalidPrice, "El precio debe ser un número positivo."},
		{"Negative", "Libro", "-3", store.ErrNegativePrice, "El precio debe ser un número positivo."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := app.newGiftForm("person-2", nil)
			f.name.SetText(tt.gift)
			f.price.SetText(tt.price)

			err := f.submit()

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantMsg, f.errLabel.Text)
			p, _ := app.Store.State().Person("person-2")
			assert.Len(t, p.Gifts, 2)
		})
	}
}

func TestGiftForm_Add(t *testing.T) {
	app, _, _ := setupTestApp(t)
	f := app.newGiftForm("person-2", nil)
	f.name.SetText("Libro de cocina")
	f.price.SetText("12,50")
	f.link.SetText("tienda.es/libro")
	f.priority.SetSelected("Alta")

	require.NoError(t, f.submit())

	p, _ := app.Store.State().Person("person-2")
	require.Len(t, p.Gifts, 3)
	g := p.Gifts[2]
	assert.Equal(t, "Libro de cocina", g.Name)
	require.NotNil(t, g.Price)
	assert.InDelta(t, 12.5, *g.Price, 1e-9)
	assert.Equal(t, engine.PriorityHigh, g.Priority)
	assert.Equal(t, engine.StatusPending, g.Status)

	// High priority gifts come first on the card.
	assert.Equal(t, g.ID, mustCard(t, app, "person-2").gifts[0].gift.ID)
}

func TestGiftForm_Edit(t *testing.T) {
	app, _, _ := setupTestApp(t)
	mama, _ := app.Store.State().Person("person-1")
	f := app.newGiftForm("person-1", &mama.Gifts[1])

	assert.Equal(t, "Colección de Agatha Christie", f.name.Text)
	assert.Equal(t, "45", f.price.Text)
	assert.Equal(t, "Media", f.priority.Selected)

	f.price.SetText("")
	require.NoError(t, f.submit())

	got, _ := app.Store.State().Person("person-1")
	assert.Nil(t, got.Gifts[1].Price, "A blank price clears it")
	assert.Equal(t, engine.StatusPurchased, got.Gifts[1].Status, "Editing keeps the status")
}
