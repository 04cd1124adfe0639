package ui

import (
	"errors"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-wishlist/internal/config"
	"github.com/tartampluch/go-wishlist/internal/engine"
	"github.com/tartampluch/go-wishlist/internal/store"
)

// errInvalidPrice is reported when the price text is not a number.
var errInvalidPrice = errors.New(config.ErrPriceFormat)

// -----------------------------------------------------------------------------
// Person Form
// -----------------------------------------------------------------------------

// personForm adds a person, or edits one when editing is set.
type personForm struct {
	app     *WishlistApp
	editing *engine.Person

	name     *widget.Entry
	day      *widget.Select
	month    *widget.Select
	color    *widget.Select
	errLabel *widget.Label
}

func (app *WishlistApp) newPersonForm(editing *engine.Person) *personForm {
	f := &personForm{
		app:      app,
		editing:  editing,
		name:     widget.NewEntry(),
		day:      widget.NewSelect(nil, nil),
		color:    widget.NewSelect(app.colorOptions(), nil),
		errLabel: widget.NewLabel(""),
	}
	f.errLabel.Importance = widget.DangerImportance
	f.errLabel.Hide()
	f.day.PlaceHolder = app.GetMsg(config.TKeyLblDay)

	f.month = widget.NewSelect(config.MonthNames[:], func(string) { f.updateDays() })
	f.month.PlaceHolder = app.GetMsg(config.TKeyLblMonth)

	now := app.Clock.Now()
	day, month, color := now.Day(), now.Month(), engine.ColorIndigo
	if editing != nil {
		f.name.SetText(editing.Name)
		color = editing.Color
		if b, ok := engine.ParseBirthday(editing.Birthday); ok {
			day, month = b.Day, b.Month
		} else {
			// Unreadable birthdays stay untouched unless a new date is picked.
			day, month = 0, 0
		}
	}

	if month != 0 {
		f.month.SetSelected(engine.MonthName(month))
		f.day.SetSelected(strconv.Itoa(min(day, engine.MaxDay(month))))
	}
	f.color.SetSelected(app.colorLabel(color))
	return f
}

// updateDays caps the day choices to the selected month (February allows 29).
func (f *personForm) updateDays() {
	month, ok := f.selectedMonth()
	if !ok {
		return
	}
	maxDay := engine.MaxDay(month)
	options := make([]string, maxDay)
	for i := range options {
		options[i] = strconv.Itoa(i + 1)
	}
	f.day.SetOptions(options)

	if d, err := strconv.Atoi(f.day.Selected); err == nil && d > maxDay {
		f.day.SetSelected(strconv.Itoa(maxDay))
	}
}

func (f *personForm) selectedMonth() (time.Month, bool) {
	i := slices.Index(config.MonthNames[:], f.month.Selected)
	if i < 0 {
		return 0, false
	}
	return time.Month(i + 1), true
}

func (f *personForm) items() []*widget.FormItem {
	date := container.NewGridWithColumns(config.LayoutColumnsDouble, f.day, f.month)
	return []*widget.FormItem{
		widget.NewFormItem(f.app.GetMsg(config.TKeyLblName), f.name),
		widget.NewFormItem(f.app.GetMsg(config.TKeyLblBirthday), date),
		widget.NewFormItem(f.app.GetMsg(config.TKeyLblColor), f.color),
	}
}

// submit validates the input and applies it to the store.
func (f *personForm) submit() error {
	day, month, picked := f.pickedDate()

	var birthday string
	switch {
	case picked:
		if err := store.ValidatePersonInput(f.name.Text, day, month); err != nil {
			return f.fail(err)
		}
		birthday = engine.FormatBirthday(day, month)
		if f.editing != nil {
			// The same date written differently keeps its text, so the reminder stays set.
			if b, ok := engine.ParseBirthday(f.editing.Birthday); ok && b.Day == day && b.Month == month {
				birthday = f.editing.Birthday
			}
		}
	case f.editing != nil:
		// The stored birthday could not be read; it is kept until a new date is picked.
		if strings.TrimSpace(f.name.Text) == "" {
			return f.fail(store.ErrEmptyName)
		}
		birthday = f.editing.Birthday
	default:
		return f.fail(store.ErrInvalidBirthday)
	}

	color, _ := f.app.colorFromLabel(f.color.Selected)
	if f.editing != nil {
		f.app.Store.EditPerson(f.editing.ID, f.name.Text, birthday, &color)
	} else {
		f.app.Store.AddPerson(f.name.Text, birthday, color)
	}
	return nil
}

// pickedDate reports the selected day and month, if both are set.
func (f *personForm) pickedDate() (int, time.Month, bool) {
	month, ok := f.selectedMonth()
	if !ok {
		return 0, 0, false
	}
	day, err := strconv.Atoi(f.day.Selected)
	if err != nil {
		return 0, month, false
	}
	return day, month, true
}

func (f *personForm) fail(err error) error {
	key := config.TKeyErrBirthday
	if errors.Is(err, store.ErrEmptyName) {
		key = config.TKeyErrNameRequired
	}
	return showFormError(f.errLabel, f.app.GetMsg(key), err)
}

// showPersonDialog opens the add (nil) or edit person dialog.
func (app *WishlistApp) showPersonDialog(editing *engine.Person) {
	f := app.newPersonForm(editing)
	title := config.TKeyTitleAddPerson
	if editing != nil {
		title = config.TKeyTitleEditPerson
	}
	app.showFormDialog(app.GetMsg(title), widget.NewForm(f.items()...), f.errLabel, f.submit)
}

// -----------------------------------------------------------------------------
// Gift Form
// -----------------------------------------------------------------------------

// giftForm adds a gift to a person, or edits one when editing is set.
type giftForm struct {
	app      *WishlistApp
	personID string
	editing  *engine.Gift

	name        *widget.Entry
	description *widget.Entry
	price       *PriceEntry
	link        *widget.Entry
	priority    *widget.Select
	errLabel    *widget.Label
}

func (app *WishlistApp) newGiftForm(personID string, editing *engine.Gift) *giftForm {
	f := &giftForm{
		app:         app,
		personID:    personID,
		editing:     editing,
		name:        widget.NewEntry(),
		description: widget.NewMultiLineEntry(),
		price:       NewPriceEntry(),
		link:        widget.NewEntry(),
		priority: widget.NewSelect([]string{
			app.GetMsg(config.TKeyPriorityHigh),
			app.GetMsg(config.TKeyPriorityMedium),
			app.GetMsg(config.TKeyPriorityLow),
		}, nil),
		errLabel: widget.NewLabel(""),
	}
	f.errLabel.Importance = widget.DangerImportance
	f.errLabel.Hide()
	f.link.PlaceHolder = config.PlaceholderURL

	priority := engine.PriorityMedium
	if editing != nil {
		f.name.SetText(editing.Name)
		f.description.SetText(editing.Description)
		f.link.SetText(editing.Link)
		if editing.Price != nil {
			f.price.SetText(strconv.FormatFloat(*editing.Price, 'f', -1, 64))
		}
		priority = editing.Priority
	}
	f.priority.SetSelected(app.priorityText(priority))
	return f
}

func (f *giftForm) items() []*widget.FormItem {
	return []*widget.FormItem{
		widget.NewFormItem(f.app.GetMsg(config.TKeyLblGiftName), f.name),
		widget.NewFormItem(f.app.GetMsg(config.TKeyLblDescription), f.description),
		widget.NewFormItem(f.app.GetMsg(config.TKeyLblPrice), f.price),
		widget.NewFormItem(f.app.GetMsg(config.TKeyLblLink), f.link),
		widget.NewFormItem(f.app.GetMsg(config.TKeyLblPriority), f.priority),
	}
}

func (f *giftForm) selectedPriority() engine.Priority {
	for _, p := range engine.Priorities {
		if f.app.priorityText(p) == f.priority.Selected {
			return p
		}
	}
	return engine.PriorityMedium
}

// input reads the form into a store.GiftInput.
func (f *giftForm) input() (store.GiftInput, error) {
	price, err := ParsePrice(f.price.Text)
	if err != nil {
		return store.GiftInput{}, errInvalidPrice
	}
	return store.GiftInput{
		Name:        f.name.Text,
		Description: f.description.Text,
		Price:       price,
		Link:        f.link.Text,
		Priority:    f.selectedPriority(),
	}, nil
}

// submit validates the input and applies it to the store.
func (f *giftForm) submit() error {
	in, err := f.input()
	if err == nil {
		err = store.ValidateGiftInput(in)
	}
	if err != nil {
		key := config.TKeyErrPrice
		if errors.Is(err, store.ErrEmptyName) {
			key = config.TKeyErrNameRequired
		}
		return showFormError(f.errLabel, f.app.GetMsg(key), err)
	}

	if f.editing != nil {
		f.app.Store.EditGift(f.personID, f.editing.ID, in)
	} else {
		f.app.Store.AddGift(f.personID, in)
	}
	return nil
}

// showGiftDialog opens the add (nil) or edit gift dialog.
func (app *WishlistApp) showGiftDialog(personID string, editing *engine.Gift) {
	f := app.newGiftForm(personID, editing)
	title := config.TKeyTitleAddGift
	if editing != nil {
		title = config.TKeyTitleEditGift
	}
	app.showFormDialog(app.GetMsg(title), widget.NewForm(f.items()...), f.errLabel, f.submit)
}

// -----------------------------------------------------------------------------
// Shared
// -----------------------------------------------------------------------------

// showFormDialog keeps the dialog open until submit succeeds, so validation
// errors are shown inline.
func (app *WishlistApp) showFormDialog(title string, form *widget.Form, errLabel *widget.Label, submit func() error) {
	d := dialog.NewCustomWithoutButtons(title, container.NewVBox(form, errLabel), app.MainWindow)

	save := widget.NewButton(app.GetMsg(config.TKeyBtnSave), func() {
		if submit() == nil {
			d.Hide()
		}
	})
	save.Importance = widget.HighImportance
	cancel := widget.NewButton(app.GetMsg(config.TKeyBtnCancel), d.Hide)

	d.SetButtons([]fyne.CanvasObject{cancel, save})
	d.Resize(fyne.NewSize(config.DialogWidth, d.MinSize().Height))
	d.Show()
}

func showFormError(label *widget.Label, text string, err error) error {
	slog.Debug(config.MsgValidation,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyError, err)
	label.SetText(text)
	label.Show()
	return err
}
