package ui

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/robfig/cron/v3"
	"github.com/tartampluch/go-wishlist/internal/config"
	"github.com/tartampluch/go-wishlist/internal/engine"
	"github.com/tartampluch/go-wishlist/internal/server"
	"github.com/tartampluch/go-wishlist/internal/store"
	"github.com/zalando/go-keyring"
)

//go:embed Icon.png
var appIconData []byte

// WishlistApp owns the windows, the tray and the background jobs around the store.
// Store mutations and widget updates happen on the Fyne event thread only.
type WishlistApp struct {
	App         fyne.App
	MainWindow  fyne.Window
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Ctx         context.Context

	Store    *store.Store
	Server   *server.FeedServer
	Importer *engine.Importer
	Clock    engine.Clock // Injected clock for testability

	Tray desktop.App
	Menu *fyne.Menu

	TrayStatusItem   *fyne.MenuItem
	TrayShowItem     *fyne.MenuItem
	TraySettingsItem *fyne.MenuItem
	TrayQuitItem     *fyne.MenuItem

	SupportedLanguages []string

	scheduler    *cron.Cron
	serverCancel context.CancelFunc

	// Main window state, rebuilt from the store on every change.
	peopleBox *fyne.Container
	cards     map[string]*personCard
	collapsed map[string]bool

	settingsWindow fyne.Window
	calendarWindow fyne.Window
	calendar       *calendarView

	// Swappable for tests.
	openURL func(*url.URL) error
	confirm func(title, message string, onConfirm func())
}

// NewWishlistApp constructs the application and wires dependencies.
func NewWishlistApp(a fyne.App, ctx context.Context, st *store.Store, srv *server.FeedServer, importer *engine.Importer) *WishlistApp {
	a.SetIcon(fyne.NewStaticResource(config.IconFile, appIconData))

	app := &WishlistApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Store:              st,
		Server:             srv,
		Importer:           importer,
		Clock:              engine.RealClock{},
		SupportedLanguages: config.SupportedLanguages,
		cards:              make(map[string]*personCard),
		collapsed:          make(map[string]bool),
	}
	app.openURL = a.OpenURL
	app.confirm = app.confirmDialog
	return app
}

// Run launches the application services and blocks in the UI loop.
func (app *WishlistApp) Run() {
	app.SetupI18n()
	app.MainWindow = app.buildMainWindow()
	app.Store.Subscribe(func(s store.State) { app.refresh(s.People) })

	app.startServer()

	if desk, ok := app.App.(desktop.App); ok {
		app.Tray = desk
		app.Tray.SetSystemTrayIcon(app.App.Icon())
		app.setupTrayMenu()
		app.MainWindow.SetCloseIntercept(app.MainWindow.Hide)
	} else {
		slog.Warn(config.ErrTrayNotSupported, config.LogKeyComponent, config.CompUI)
	}

	app.refresh(app.Store.People())
	app.startScheduler()

	app.MainWindow.Show()
	app.App.Run()

	app.stopScheduler()
}

// refresh re-renders every view of the people collection and republishes the feed.
func (app *WishlistApp) refresh(people []engine.Person) {
	app.renderPeople(people)
	app.renderCalendar()
	app.publishFeed(people)
}

// publishFeed rebuilds the ICS feed with the current reminder preference.
func (app *WishlistApp) publishFeed(people []engine.Person) {
	if app.Server == nil || app.Server.Builder == nil {
		return
	}
	app.Server.Builder.ReminderTrigger = app.reminderTrigger()

	stats, err := app.Server.Publish(people)
	if err != nil {
		slog.Error(config.ErrICalEncode,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
		return
	}
	app.updateTrayStatus(stats.Today)
}

func (app *WishlistApp) reminderTrigger() string {
	return ReminderTriggerFor(app.Preferences)
}

// ReminderTriggerFor maps the reminder settings to a VALARM trigger, or "" when disabled.
func ReminderTriggerFor(prefs fyne.Preferences) string {
	if !prefs.Bool(config.PrefReminderEnabled) {
		return ""
	}
	return engine.ReminderTrigger(prefs.IntWithFallback(config.PrefReminderValue, config.DefaultReminderValue))
}

// -----------------------------------------------------------------------------
// Feed Server
// -----------------------------------------------------------------------------

// startServer serves the feed until the app context ends or the server is restarted.
func (app *WishlistApp) startServer() {
	ctx, cancel := context.WithCancel(app.Ctx)
	app.serverCancel = cancel
	srv := app.Server

	go func() {
		if err := srv.Start(ctx); err != nil {
			slog.Error(config.ErrServerStartup,
				config.LogKeyError, err,
				config.LogKeyPort, srv.Port,
				config.LogKeyComponent, config.CompUI)

			fyne.Do(func() {
				app.App.SendNotification(fyne.NewNotification(
					config.TitleStartupError,
					fmt.Sprintf(config.MsgPortBusy, srv.Port)))
			})
		}
	}()
}

// restartServer moves the feed to a new port. The published feed is rebuilt
// by the caller through refresh.
func (app *WishlistApp) restartServer(port string) {
	slog.Info(config.MsgServerRestart,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyPort, port)

	if app.serverCancel != nil {
		app.serverCancel()
	}
	app.Server = server.NewFeedServer(port, app.Server.Builder)
	app.startServer()
}

// -----------------------------------------------------------------------------
// Scheduler
// -----------------------------------------------------------------------------

// startScheduler recomputes day counts at local midnight.
func (app *WishlistApp) startScheduler() {
	c := cron.New(cron.WithLocation(time.Local))
	if _, err := c.AddFunc(config.CronMidnight, func() { fyne.Do(app.midnightRefresh) }); err != nil {
		slog.Error(config.ErrCronSchedule,
			config.LogKeyComponent, config.CompCron,
			config.LogKeyError, err)
		return
	}
	c.Start()
	app.scheduler = c
}

func (app *WishlistApp) stopScheduler() {
	if app.scheduler == nil {
		return
	}
	<-app.scheduler.Stop().Done()
	app.scheduler = nil
}

// midnightRefresh runs on the UI thread when the date changes.
func (app *WishlistApp) midnightRefresh() {
	slog.Info(config.MsgMidnightRefresh, config.LogKeyComponent, config.CompCron)
	app.refresh(app.Store.People())
}

// -----------------------------------------------------------------------------
// System Tray
// -----------------------------------------------------------------------------

// setupTrayMenu constructs the system tray menu.
func (app *WishlistApp) setupTrayMenu() {
	// The status line opens the birthday calendar.
	app.TrayStatusItem = fyne.NewMenuItem(config.FallbackTrayLabel, app.ShowCalendarWindow)
	app.TrayShowItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuShow), app.showMainWindow)
	app.TraySettingsItem = fyne.NewMenuItem(app.GetMsg(config.TKeyBtnSettings), app.ShowSettingsWindow)
	app.TrayQuitItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuQuit), app.App.Quit)
	app.TrayQuitItem.IsQuit = true

	app.Menu = fyne.NewMenu(config.AppName,
		app.TrayStatusItem,
		fyne.NewMenuItemSeparator(),
		app.TrayShowItem,
		app.TraySettingsItem,
		fyne.NewMenuItemSeparator(),
		app.TrayQuitItem,
	)

	if app.Tray != nil {
		app.Tray.SetSystemTrayMenu(app.Menu)
	}
}

// RefreshTrayMenu updates localized labels in the tray menu.
func (app *WishlistApp) RefreshTrayMenu() {
	if app.Menu == nil {
		return
	}
	app.TrayShowItem.Label = app.GetMsg(config.TKeyMenuShow)
	app.TraySettingsItem.Label = app.GetMsg(config.TKeyBtnSettings)
	app.TrayQuitItem.Label = app.GetMsg(config.TKeyMenuQuit)
	app.Menu.Refresh()
}

// updateTrayStatus shows how many birthdays fall today.
func (app *WishlistApp) updateTrayStatus(count int) {
	if app.Menu == nil || app.TrayStatusItem == nil {
		return
	}
	app.TrayStatusItem.Label = app.trayStatusLabel(count)
	app.Menu.Refresh()
}

func (app *WishlistApp) trayStatusLabel(count int) string {
	key := config.TKeyTrayStatus
	if count == 0 {
		key = config.TKeyTrayStatusZero
	}
	label := app.GetCountMsg(key, count)
	if label == key {
		return fmt.Sprintf(config.FallbackTrayStatus, count)
	}
	return label
}

func (app *WishlistApp) showMainWindow() {
	if app.MainWindow == nil {
		return
	}
	app.MainWindow.Show()
	app.MainWindow.RequestFocus()
}

// -----------------------------------------------------------------------------
// Contacts Import
// -----------------------------------------------------------------------------

// loadImportConfig assembles the import source from preferences and the keyring.
func (app *WishlistApp) loadImportConfig() engine.ImportConfig {
	cfg := engine.ImportConfig{
		Mode:      app.Preferences.String(config.PrefSourceMode),
		LocalPath: app.Preferences.String(config.PrefLocalPath),
		WebURL:    app.Preferences.String(config.PrefCardDAVURL),
		WebUser:   app.Preferences.String(config.PrefUsername),
	}

	if cfg.WebUser != "" {
		if p, err := keyring.Get(config.KeyringService, cfg.WebUser); err == nil {
			cfg.WebPass = p
		} else {
			slog.Debug(config.MsgPassFail,
				config.LogKeyUser, cfg.WebUser,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)
		}
	}
	return cfg
}

// runImport reads contacts in the background and merges them on the UI thread.
func (app *WishlistApp) runImport() {
	cfg := app.loadImportConfig()
	go func() {
		people, _, err := app.Importer.Import(app.Ctx, cfg)
		fyne.Do(func() { app.finishImport(people, err) })
	}()
}

// finishImport merges imported people and notifies the user. It returns the
// number of people added.
func (app *WishlistApp) finishImport(people []engine.Person, err error) int {
	if err != nil {
		slog.Error(config.MsgImportFailed,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
		app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(config.TKeyNotifImportError)))
		return 0
	}

	added := app.Store.ImportPeople(people)
	app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetCountMsg(config.TKeyNotifImported, added)))
	return added
}

// -----------------------------------------------------------------------------
// Shared Helpers
// -----------------------------------------------------------------------------

// openLink opens an external page, logging failures.
func (app *WishlistApp) openLink(raw string) bool {
	u, err := url.Parse(raw)
	if err == nil {
		err = app.openURL(u)
	}
	if err != nil {
		slog.Error(config.ErrOpenURL,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyURL, raw,
			config.LogKeyError, err)
		return false
	}
	return true
}

// confirmDialog asks before a destructive action.
func (app *WishlistApp) confirmDialog(title, message string, onConfirm func()) {
	d := dialog.NewConfirm(title, message, func(ok bool) {
		if ok {
			onConfirm()
		}
	}, app.MainWindow)
	d.SetConfirmText(app.GetMsg(config.TKeyBtnDelete))
	d.SetDismissText(app.GetMsg(config.TKeyBtnCancel))
	d.Show()
}

// showWindow opens a singleton window or focuses the existing one.
func (app *WishlistApp) showWindow(existing fyne.Window, name string, build func() fyne.Window) fyne.Window {
	if existing != nil {
		slog.Debug(config.MsgWindowFocus,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyWindow, name)
		existing.RequestFocus()
		return existing
	}
	slog.Info(config.MsgWindowOpened,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyWindow, name)
	w := build()
	w.Show()
	return w
}

// padded wraps content the way every secondary window is laid out.
func padded(objects ...fyne.CanvasObject) fyne.CanvasObject {
	return container.NewPadded(container.NewVBox(objects...))
}
