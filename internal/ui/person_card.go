package ui

import (
	"log/slog"
	"net/url"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-wishlist/internal/config"
	"github.com/tartampluch/go-wishlist/internal/engine"
)

// personCard is the rendered card of one person. Widgets are kept for tests.
type personCard struct {
	person engine.Person
	root   fyne.CanvasObject
	body   *fyne.Container

	daysLabel   *widget.Label
	budgetLabel *widget.Label

	favoriteBtn *widget.Button
	reminderBtn *widget.Button
	shareBtn    *widget.Button
	editBtn     *widget.Button
	deleteBtn   *widget.Button
	collapseBtn *widget.Button
	addGiftBtn  *widget.Button

	gifts []*giftRow
}

// giftRow is the rendered line of one gift.
type giftRow struct {
	gift      engine.Gift
	root      fyne.CanvasObject
	check     *widget.Check
	shopBtn   *widget.Button
	reviewBtn *widget.Button
	editBtn   *widget.Button
	deleteBtn *widget.Button
}

func (app *WishlistApp) newPersonCard(sp engine.ScheduledPerson) *personCard {
	p := sp.Person
	c := &personCard{person: p}

	name := widget.NewLabelWithStyle(p.Name, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	birthday := widget.NewLabel(p.Birthday)

	c.daysLabel = widget.NewLabel("")
	if sp.Scheduled {
		c.daysLabel.SetText(app.daysText(sp.Days))
		if engine.IsUpcoming(sp.Days) {
			c.daysLabel.Importance = widget.WarningImportance
			c.daysLabel.TextStyle = fyne.TextStyle{Bold: true}
		}
	} else {
		c.daysLabel.Hide()
	}

	favText := config.FavoriteOff
	if p.IsFavorite {
		favText = config.FavoriteOn
	}
	c.favoriteBtn = widget.NewButton(favText, func() { app.Store.ToggleFavorite(p.ID) })
	c.favoriteBtn.Importance = widget.LowImportance

	c.reminderBtn = widget.NewButtonWithIcon(app.reminderText(p), theme.MailSendIcon(), func() { app.setReminder(p) })
	if p.ReminderSet {
		c.reminderBtn.Importance = widget.SuccessImportance
	}
	if !sp.Scheduled {
		c.reminderBtn.Disable()
	}

	c.shareBtn = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnShare), theme.ContentCopyIcon(), nil)
	c.shareBtn.OnTapped = func() { app.sharePerson(p, c.shareBtn) }

	c.editBtn = widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() { app.showPersonDialog(&p) })
	c.deleteBtn = widget.NewButtonWithIcon("", theme.DeleteIcon(), func() { app.confirmDeletePerson(p) })
	c.deleteBtn.Importance = widget.DangerImportance

	c.body = app.buildGiftList(c, p)
	c.collapseBtn = widget.NewButtonWithIcon("", theme.MenuDropDownIcon(), func() { app.toggleCollapsed(c) })
	app.applyCollapsed(c)

	header := container.NewBorder(nil, nil,
		container.NewHBox(c.favoriteBtn, name),
		container.NewHBox(c.collapseBtn, c.editBtn, c.deleteBtn),
	)
	dates := container.NewBorder(nil, nil, birthday, c.daysLabel)
	actions := container.NewGridWithColumns(config.LayoutColumnsDouble, c.reminderBtn, c.shareBtn)

	stripe := canvas.NewRectangle(stripeColor(p.Color))
	stripe.SetMinSize(fyne.NewSize(config.ColorStripeWidth, 0))

	content := container.NewVBox(header, dates, actions, c.body)
	c.root = widget.NewCard("", "", container.NewBorder(nil, nil, stripe, nil, content))
	return c
}

// buildGiftList renders the budget, pending gifts by priority, then the purchased group.
func (app *WishlistApp) buildGiftList(c *personCard, p engine.Person) *fyne.Container {
	box := container.NewVBox()

	c.budgetLabel = widget.NewLabel("")
	if b := engine.Budget(p.Gifts); b.Priced {
		c.budgetLabel.SetText(app.GetDataMsg(config.TKeyBudget, map[string]any{
			"Total": engine.FormatMoney(b.Total),
			"Spent": engine.FormatMoney(b.Spent),
		}))
		box.Add(c.budgetLabel)
	}

	if len(p.Gifts) == 0 {
		empty := widget.NewLabel(app.GetDataMsg(config.TKeyEmptyGifts, map[string]any{"Name": p.Name}))
		empty.Wrapping = fyne.TextWrapWord
		box.Add(empty)
	}

	view := engine.OrderGifts(p.Gifts)
	for _, g := range view.Pending {
		row := app.newGiftRow(p, g)
		c.gifts = append(c.gifts, row)
		box.Add(row.root)
	}
	if len(view.Purchased) > 0 {
		box.Add(widget.NewSeparator())
		box.Add(widget.NewLabelWithStyle(app.GetMsg(config.TKeyPurchasedGroup), fyne.TextAlignLeading, fyne.TextStyle{Italic: true}))
		for _, g := range view.Purchased {
			row := app.newGiftRow(p, g)
			c.gifts = append(c.gifts, row)
			box.Add(row.root)
		}
	}

	c.addGiftBtn = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnAddGift), theme.ContentAddIcon(), func() {
		app.showGiftDialog(p.ID, nil)
	})
	box.Add(c.addGiftBtn)
	return box
}

func (app *WishlistApp) newGiftRow(p engine.Person, g engine.Gift) *giftRow {
	row := &giftRow{gift: g}

	// Set the state before the callback so rendering does not toggle the gift.
	row.check = widget.NewCheck(g.Name, nil)
	row.check.Checked = g.Purchased()
	row.check.OnChanged = func(bool) { app.Store.ToggleGiftStatus(p.ID, g.ID) }

	meta := container.NewHBox(widget.NewLabel(app.priorityText(g.Priority)))
	if g.Price != nil {
		meta.Add(widget.NewLabel(engine.FormatMoney(*g.Price) + " €"))
	}

	row.shopBtn = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnShop), theme.SearchIcon(), func() { app.openLink(engine.ShoppingURL(g.Name)) })
	row.reviewBtn = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnReview), theme.MediaPlayIcon(), func() { app.openLink(engine.ReviewURL(g.Name)) })
	row.editBtn = widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() { app.showGiftDialog(p.ID, &g) })
	row.deleteBtn = widget.NewButtonWithIcon("", theme.DeleteIcon(), func() { app.confirmDeleteGift(p.ID, g) })
	for _, b := range []*widget.Button{row.shopBtn, row.reviewBtn, row.editBtn, row.deleteBtn} {
		b.Importance = widget.LowImportance
	}

	lines := container.NewVBox(container.NewBorder(nil, nil, row.check, meta))
	if g.Description != "" {
		desc := widget.NewLabel(g.Description)
		desc.Wrapping = fyne.TextWrapWord
		lines.Add(desc)
	}
	if g.Link != "" {
		if u, err := url.Parse(engine.NormalizeLink(g.Link)); err == nil {
			lines.Add(widget.NewHyperlink(engine.LinkHost(g.Link), u))
		}
	}
	lines.Add(container.NewHBox(row.shopBtn, row.reviewBtn, row.editBtn, row.deleteBtn))

	row.root = lines
	return row
}

// daysText renders the countdown to a birthday.
func (app *WishlistApp) daysText(days int) string {
	switch days {
	case 0:
		return app.GetMsg(config.TKeyToday)
	case 1:
		return app.GetMsg(config.TKeyOneDay)
	default:
		return app.GetCountMsg(config.TKeyManyDays, days)
	}
}

func (app *WishlistApp) reminderText(p engine.Person) string {
	if p.ReminderSet {
		return app.GetMsg(config.TKeyBtnReminderSet)
	}
	return app.GetMsg(config.TKeyBtnReminder)
}

func (app *WishlistApp) priorityText(p engine.Priority) string {
	switch p {
	case engine.PriorityHigh:
		return app.GetMsg(config.TKeyPriorityHigh)
	case engine.PriorityLow:
		return app.GetMsg(config.TKeyPriorityLow)
	default:
		return app.GetMsg(config.TKeyPriorityMedium)
	}
}

// -----------------------------------------------------------------------------
// Card Actions
// -----------------------------------------------------------------------------

func (app *WishlistApp) toggleCollapsed(c *personCard) {
	app.collapsed[c.person.ID] = !app.collapsed[c.person.ID]
	app.applyCollapsed(c)
}

func (app *WishlistApp) applyCollapsed(c *personCard) {
	if app.collapsed[c.person.ID] {
		c.body.Hide()
		c.collapseBtn.SetIcon(theme.MenuExpandIcon())
		return
	}
	c.body.Show()
	c.collapseBtn.SetIcon(theme.MenuDropDownIcon())
}

// sharePerson copies the gift list and briefly acknowledges it on the button.
func (app *WishlistApp) sharePerson(p engine.Person, btn *widget.Button) {
	app.App.Clipboard().SetContent(engine.ShareText(p))
	slog.Info(config.MsgClipboardCopied,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyPersonID, p.ID)

	if btn == nil {
		return
	}
	btn.SetText(app.GetMsg(config.TKeyBtnCopied))
	btn.SetIcon(theme.ConfirmIcon())
	time.AfterFunc(config.CopiedFeedback, func() {
		fyne.Do(func() {
			btn.SetText(app.GetMsg(config.TKeyBtnShare))
			btn.SetIcon(theme.ContentCopyIcon())
		})
	})
}

// setReminder opens the calendar template link, then marks the reminder as
// set. Whether the user saved the event is unknown, so the flag is optimistic.
func (app *WishlistApp) setReminder(p engine.Person) {
	link, err := engine.CalendarURL(p, app.Clock.Now())
	if err != nil {
		slog.Debug(config.ErrBirthdayParse,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyPersonID, p.ID,
			config.LogKeyError, err)
		return
	}
	if !app.openLink(link) {
		return
	}
	slog.Info(config.MsgReminderOpened,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyPersonID, p.ID)
	app.Store.SetReminder(p.ID)
}

func (app *WishlistApp) confirmDeletePerson(p engine.Person) {
	app.confirm(
		app.GetMsg(config.TKeyTitleDelPerson),
		app.GetDataMsg(config.TKeyMsgDelPerson, map[string]any{"Name": p.Name}),
		func() {
			delete(app.collapsed, p.ID)
			app.Store.DeletePerson(p.ID)
		},
	)
}

func (app *WishlistApp) confirmDeleteGift(personID string, g engine.Gift) {
	app.confirm(
		app.GetMsg(config.TKeyTitleDelGift),
		app.GetDataMsg(config.TKeyMsgDelGift, map[string]any{"Name": g.Name}),
		func() { app.Store.DeleteGift(personID, g.ID) },
	)
}
