package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-wishlist/internal/config"
	"github.com/tartampluch/go-wishlist/internal/engine"
)

// buildMainWindow creates the wishlist window. People are rendered by refresh.
func (app *WishlistApp) buildMainWindow() fyne.Window {
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
	w.Resize(fyne.NewSize(config.MainWindowWidth, config.MainWindowHeight))
	w.SetMaster()
	app.MainWindow = w
	app.peopleBox = container.NewVBox()
	app.rebuildMainContent()
	return w
}

// rebuildMainContent lays out the header again, e.g. after a language change.
func (app *WishlistApp) rebuildMainContent() {
	if app.MainWindow == nil {
		return
	}
	app.MainWindow.SetTitle(app.GetMsg(config.TKeyWinTitle))
	app.MainWindow.SetContent(container.NewBorder(
		app.buildHeader(), nil, nil, nil,
		container.NewVScroll(container.NewPadded(app.peopleBox)),
	))
}

func (app *WishlistApp) buildHeader() fyne.CanvasObject {
	title := widget.NewLabelWithStyle(app.GetMsg(config.TKeyWinTitle), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

	addBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnAddPerson), theme.ContentAddIcon(), func() {
		app.showPersonDialog(nil)
	})
	addBtn.Importance = widget.HighImportance

	calendarBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCalendar), theme.HistoryIcon(), app.ShowCalendarWindow)

	// Accounts are not implemented; the button only explains that.
	loginBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnLogin), theme.AccountIcon(), func() {
		dialog.ShowInformation(app.GetMsg(config.TKeyBtnLogin), app.GetMsg(config.TKeyLoginNotice), app.MainWindow)
	})

	settingsBtn := widget.NewButtonWithIcon("", theme.SettingsIcon(), app.ShowSettingsWindow)

	actions := container.NewHBox(addBtn, calendarBtn, loginBtn, settingsBtn)
	return container.NewPadded(container.NewBorder(nil, nil, title, actions))
}

// renderPeople rebuilds the favorites and contacts sections.
func (app *WishlistApp) renderPeople(people []engine.Person) {
	if app.peopleBox == nil {
		return
	}

	view := engine.OrderPeople(people, app.Clock.Now())
	app.cards = make(map[string]*personCard, len(people))

	var objects []fyne.CanvasObject
	if len(view.Favorites) > 0 {
		objects = append(objects,
			sectionHeader(app.GetMsg(config.TKeySectionFavorites)),
			app.cardGrid(view.Favorites))
	}
	if len(view.Others) > 0 {
		objects = append(objects,
			sectionHeader(app.GetMsg(config.TKeySectionContacts)),
			app.cardGrid(view.Others))
	}
	if len(objects) == 0 {
		empty := widget.NewLabel(app.GetMsg(config.TKeyEmptyPeople))
		empty.Alignment = fyne.TextAlignCenter
		objects = append(objects, empty)
	}

	app.peopleBox.Objects = objects
	app.peopleBox.Refresh()
}

func (app *WishlistApp) cardGrid(people []engine.ScheduledPerson) fyne.CanvasObject {
	cards := make([]fyne.CanvasObject, 0, len(people))
	for _, sp := range people {
		card := app.newPersonCard(sp)
		app.cards[sp.Person.ID] = card
		cards = append(cards, card.root)
	}
	return container.NewGridWithColumns(config.LayoutColumnsCards, cards...)
}

func sectionHeader(text string) fyne.CanvasObject {
	return widget.NewLabelWithStyle(text, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
}
