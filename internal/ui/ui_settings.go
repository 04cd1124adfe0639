package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-wishlist/internal/config"
	"github.com/zalando/go-keyring"
)

// settingsWidgets holds references to UI elements to simplify data retrieval during save.
type settingsWidgets struct {
	langSelect    *widget.Select
	modeSelect    *widget.Select
	urlEntry      *widget.Entry
	userEntry     *widget.Entry
	passEntry     *widget.Entry
	pathEntry     *widget.Entry
	entryPort     *NumericalEntry
	checkReminder *widget.Check
	entryRemValue *NumericalEntry
	btnImport     *widget.Button
}

// ShowSettingsWindow displays the import source, feed server and reminder settings.
func (app *WishlistApp) ShowSettingsWindow() {
	app.settingsWindow = app.showWindow(app.settingsWindow, config.TKeyWinSettings, func() fyne.Window {
		w := app.App.NewWindow(app.GetMsg(config.TKeyWinSettings))
		sw := app.newSettingsWidgets()

		// refreshLayout resizes the window when sections are shown or hidden.
		var refreshLayout func()
		onLayoutChange := func() {
			if refreshLayout != nil {
				refreshLayout()
			}
		}

		sourceCard := app.buildSourceCard(w, sw, onLayoutChange)
		generalCard := app.buildGeneralCard(sw)
		feedCard := app.buildFeedCard(sw, onLayoutChange)

		sw.btnImport.OnTapped = func() {
			if app.applySettings(sw, w) {
				app.runImport()
			}
		}

		btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), func() {
			if app.applySettings(sw, w) {
				w.Close()
			}
		})
		btnSave.Importance = widget.HighImportance
		btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

		footerLabel := widget.NewLabel(fmt.Sprintf(app.GetMsg(config.TKeyLblFooter), config.Version))
		footerLabel.Alignment = fyne.TextAlignCenter
		footerLabel.TextStyle = fyne.TextStyle{Italic: true}

		content := padded(
			sourceCard,
			generalCard,
			feedCard,
			container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
			footerLabel,
		)

		refreshLayout = func() {
			content.Refresh()
			w.Resize(fyne.NewSize(config.SettingsWindowWidth, content.MinSize().Height))
		}

		w.SetContent(content)
		w.SetFixedSize(true)
		w.SetOnClosed(func() { app.settingsWindow = nil })
		refreshLayout()
		return w
	})
}

// newSettingsWidgets creates the form widgets filled from preferences.
func (app *WishlistApp) newSettingsWidgets() *settingsWidgets {
	sw := &settingsWidgets{}

	sw.langSelect = widget.NewSelect(app.SupportedLanguages, nil)
	sw.langSelect.SetSelected(app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage))

	sw.modeSelect = widget.NewSelect([]string{
		app.GetMsg(config.TKeyModeLocal),
		app.GetMsg(config.TKeyModeCardDAV),
	}, nil)

	sw.urlEntry = widget.NewEntry()
	sw.urlEntry.SetText(app.Preferences.String(config.PrefCardDAVURL))
	sw.urlEntry.PlaceHolder = config.PlaceholderURL

	sw.userEntry = widget.NewEntry()
	sw.userEntry.SetText(app.Preferences.String(config.PrefUsername))

	sw.passEntry = widget.NewPasswordEntry()
	if user := sw.userEntry.Text; user != "" {
		if pwd, err := keyring.Get(config.KeyringService, user); err == nil {
			sw.passEntry.SetText(pwd)
		}
	}

	sw.pathEntry = widget.NewEntry()
	sw.pathEntry.SetText(app.Preferences.String(config.PrefLocalPath))

	sw.entryPort = NewNumericalEntry()
	sw.entryPort.SetText(app.Preferences.StringWithFallback(config.PrefServerPort, config.DefaultPort))
	sw.entryPort.Validator = app.validatePort

	sw.checkReminder = widget.NewCheck(app.GetMsg(config.TKeyLblEnableRem), nil)
	sw.checkReminder.Checked = app.Preferences.Bool(config.PrefReminderEnabled)

	sw.entryRemValue = NewNumericalEntry()
	sw.entryRemValue.SetText(strconv.Itoa(app.Preferences.IntWithFallback(config.PrefReminderValue, config.DefaultReminderValue)))

	sw.btnImport = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnImport), theme.DownloadIcon(), nil)
	return sw
}

// validatePort accepts 1-65535.
func (app *WishlistApp) validatePort(s string) error {
	if s == "" {
		return errors.New(app.GetMsg(config.TKeyErrPortReq))
	}
	port, err := strconv.Atoi(s)
	if err != nil {
		return errors.New(app.GetMsg(config.TKeyErrPortNum))
	}
	if port < config.MinPort || port > config.MaxPort {
		return errors.New(app.GetMsg(config.TKeyErrPortRange))
	}
	return nil
}

// buildSourceCard constructs the contacts import UI.
func (app *WishlistApp) buildSourceCard(w fyne.Window, sw *settingsWidgets, onLayoutChange func()) *widget.Card {
	browseBtn := widget.NewButton(app.GetMsg(config.TKeyBtnBrowse), func() {
		d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
			if err == nil && r != nil {
				sw.pathEntry.SetText(r.URI().Path())
				_ = r.Close()
			}
		}, w)
		d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtVCF, config.ExtVCard}))
		d.Show()
	})

	webForm := widget.NewForm(
		widget.NewFormItem(app.GetMsg(config.TKeyLblURL), sw.urlEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblUser), sw.userEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblPass), sw.passEntry),
	)
	localForm := container.NewBorder(nil, nil, nil, browseBtn, sw.pathEntry)

	updateVis := func(mode string) {
		if mode == app.GetMsg(config.TKeyModeCardDAV) {
			webForm.Show()
			localForm.Hide()
		} else {
			webForm.Hide()
			localForm.Show()
		}
		if onLayoutChange != nil {
			onLayoutChange()
		}
	}

	if app.Preferences.String(config.PrefSourceMode) == config.SourceModeWeb {
		sw.modeSelect.SetSelected(app.GetMsg(config.TKeyModeCardDAV))
	} else {
		sw.modeSelect.SetSelected(app.GetMsg(config.TKeyModeLocal))
	}
	updateVis(sw.modeSelect.Selected)
	sw.modeSelect.OnChanged = updateVis

	return widget.NewCard(app.GetMsg(config.TKeyLblSource), "",
		container.NewVBox(sw.modeSelect, webForm, localForm, sw.btnImport))
}

func (app *WishlistApp) buildGeneralCard(sw *settingsWidgets) *widget.Card {
	itemPort := widget.NewFormItem(app.GetMsg(config.TKeyLblPort), sw.entryPort)
	itemPort.HintText = app.GetMsg(config.TKeyHelpPort)

	form := widget.NewForm(
		widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), sw.langSelect),
		itemPort,
	)
	return widget.NewCard(app.GetMsg(config.TKeyLblGeneral), "", form)
}

// buildFeedCard constructs the feed reminder UI.
func (app *WishlistApp) buildFeedCard(sw *settingsWidgets, onLayoutChange func()) *widget.Card {
	row := container.NewBorder(nil, nil, nil, widget.NewLabel(app.GetMsg(config.TKeyLblRemDays)), sw.entryRemValue)

	sw.checkReminder.OnChanged = func(b bool) {
		if b {
			row.Show()
		} else {
			row.Hide()
		}
		if onLayoutChange != nil {
			onLayoutChange()
		}
	}
	if !sw.checkReminder.Checked {
		row.Hide()
	}

	return widget.NewCard(app.GetMsg(config.TKeyLblFeed), "", container.NewVBox(sw.checkReminder, row))
}

// applySettings validates and persists the form, then refreshes everything
// that depends on it. It reports false when the form is invalid.
func (app *WishlistApp) applySettings(sw *settingsWidgets, w fyne.Window) bool {
	if err := sw.entryPort.Validate(); err != nil {
		dialog.ShowError(err, w)
		return false
	}

	slog.Info(config.MsgSettingsSaved, config.LogKeyComponent, config.CompUISet)

	mode := config.SourceModeLocal
	if sw.modeSelect.Selected == app.GetMsg(config.TKeyModeCardDAV) {
		mode = config.SourceModeWeb
	}

	app.Preferences.SetString(config.PrefLanguage, sw.langSelect.Selected)
	app.Preferences.SetString(config.PrefSourceMode, mode)
	app.Preferences.SetString(config.PrefCardDAVURL, sw.urlEntry.Text)
	app.Preferences.SetString(config.PrefUsername, sw.userEntry.Text)
	app.Preferences.SetString(config.PrefLocalPath, sw.pathEntry.Text)

	// Save password to Keyring only if provided
	if sw.userEntry.Text != "" && sw.passEntry.Text != "" {
		if err := keyring.Set(config.KeyringService, sw.userEntry.Text, sw.passEntry.Text); err != nil {
			slog.Error(config.MsgKeyringFail, config.LogKeyError, err, config.LogKeyComponent, config.CompUISet)
		}
	}

	// An empty or zero day count disables the feed reminder regardless of the checkbox.
	days, err := strconv.Atoi(sw.entryRemValue.Text)
	if err != nil || days <= 0 {
		app.Preferences.SetBool(config.PrefReminderEnabled, false)
	} else {
		app.Preferences.SetBool(config.PrefReminderEnabled, sw.checkReminder.Checked)
		app.Preferences.SetInt(config.PrefReminderValue, days)
	}

	port := sw.entryPort.Text
	app.Preferences.SetString(config.PrefServerPort, port)
	if app.Server != nil && port != app.Server.Port {
		app.restartServer(port)
	}

	app.UpdateLocalizer()
	app.RefreshTrayMenu()
	app.rebuildMainContent()
	app.refresh(app.Store.People())
	return true
}
