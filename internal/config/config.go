package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client used for contact imports.
var UserAgent = "Go-Wishlist/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Wishlist"
	AppID             = "com.github.tartampluch.go-wishlist"
	KeyringService    = "com.github.tartampluch.go-wishlist"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI
// -----------------------------------------------------------------------------

const (
	CmdRoot          = "go-wishlist"
	CmdList          = "list"
	CmdShare         = "share [name]"
	CmdFeed          = "feed"
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	DescRoot         = "Gift wishlist and birthday planner"
	DescList         = "Print people ordered by upcoming birthday"
	DescShare        = "Print the shareable gift list of a person"
	DescFeed         = "Print the iCalendar birthday feed"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
	FormatListLine   = "%s%-24s %-22s %s\n"
	FavoriteMarker   = "★ "
	NoMarker         = "  "
	ListUnscheduled  = "-"
)

// -----------------------------------------------------------------------------
// Storage
// -----------------------------------------------------------------------------

const (
	// StorageKey holds the whole People collection as one JSON snapshot.
	StorageKey = "visual-gift-wishlist-data"

	// StorageVersion is the current snapshot envelope version.
	StorageVersion = 1

	IDPrefixPerson = "person-"
	IDPrefixGift   = "gift-"
)

// Store action names, logged with every state change.
const (
	ActionAddPerson      = "add_person"
	ActionEditPerson     = "edit_person"
	ActionDeletePerson   = "delete_person"
	ActionToggleFavorite = "toggle_favorite"
	ActionSetReminder    = "set_reminder"
	ActionAddGift        = "add_gift"
	ActionEditGift       = "edit_gift"
	ActionToggleGift     = "toggle_gift_status"
	ActionDeleteGift     = "delete_gift"
	ActionImportPeople   = "import_people"
	ActionReplace        = "replace"
)

// -----------------------------------------------------------------------------
// Birthdays & Gifts
// -----------------------------------------------------------------------------

const (
	// BirthdaySeparator splits "<day> de <month>".
	BirthdaySeparator = " de "

	// FormatBirthday renders a birthday for display and storage.
	FormatBirthday = "%d de %s"

	// MaxFebruaryDay allows leaplings to be entered; non-leap years roll over to March 1.
	MaxFebruaryDay = 29

	// UpcomingWindowDays is the highlight threshold for close birthdays.
	UpcomingWindowDays = 30

	// Priority ranks used to order pending gifts.
	RankHigh   = 3
	RankMedium = 2
	RankLow    = 1

	DefaultLeapYear = 2000 // Leap year fallback for vCard dates like --02-29
	UIDSalt         = "go-wishlist-v1-"
)

// MonthNames is the fixed month table used to read and write birthday text.
var MonthNames = [12]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// WeekdayInitials are the month-grid column headers, Sunday first.
var WeekdayInitials = [7]string{"D", "L", "M", "X", "J", "V", "S"}

// -----------------------------------------------------------------------------
// Export Formats (Clipboard, Calendar, Shopping)
// -----------------------------------------------------------------------------

const (
	ShareHeader      = "🎂 Regalos para %s (%s)\n\n"
	ShareBudget      = "💰 Presupuesto: %s €\n\n"
	SharePending     = "⬜ %s"
	SharePurchased   = "✅ %s (Comprado)"
	SharePrice       = " - %s €"
	ShareLink        = " 🔗 %s"
	ShareEmpty       = "(La lista está vacía)"
	MoneyFormat      = "%.2f"
	CalendarTitle    = "Cumpleaños de %s"
	CalendarDetails  = "Ideas de regalo:"
	CalendarBullet   = "\n- %s"
	CalendarBaseURL  = "https://calendar.google.com/calendar/render"
	CalendarAction   = "TEMPLATE"
	CalendarDateFmt  = "20060102"
	ShoppingBaseURL  = "https://www.google.com/search"
	ShoppingTBM      = "shop"
	ReviewBaseURL    = "https://www.youtube.com/results"
	ReviewSuffix     = " review"
	RRulePrefix      = "RRULE:"
	DefaultURLScheme = "https://"

	ParamAction  = "action"
	ParamText    = "text"
	ParamDates   = "dates"
	ParamDetails = "details"
	ParamRecur   = "recur"
	ParamQuery   = "q"
	ParamTBM     = "tbm"
	ParamSearchQ = "search_query"
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	MainWindowWidth     = 900
	MainWindowHeight    = 700
	SettingsWindowWidth = 600
	CalendarWinWidth    = 640
	CalendarWinHeight   = 520
	DialogWidth         = 420
	CopiedFeedback      = 2 * time.Second
	ColorStripeWidth    = 6
	FormatMonthTitle    = "%s %d"
	FavoriteOn          = "★"
	FavoriteOff         = "☆"

	// Preference Keys
	PrefCardDAVURL      = "carddav_url"
	PrefUsername        = "username"
	PrefLanguage        = "language"
	PrefServerPort      = "server_port"
	PrefSourceMode      = "source_mode"
	PrefLocalPath       = "local_path"
	PrefReminderEnabled = "reminder_enabled"
	PrefReminderValue   = "reminder_value"
)

// IconFile is the embedded application and tray icon.
const IconFile = "Icon.png"

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"es", "en"}

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle         = "win_title"
	TKeyWinSettings      = "win_settings_title"
	TKeyWinCalendar      = "win_calendar_title"
	TKeyBtnAddPerson     = "btn_add_person"
	TKeyBtnCalendar      = "btn_calendar"
	TKeyBtnLogin         = "btn_login"
	TKeyBtnSettings      = "btn_settings"
	TKeyBtnSave          = "btn_save"
	TKeyBtnCancel        = "btn_cancel"
	TKeyBtnDelete        = "btn_delete"
	TKeyBtnAddGift       = "btn_add_gift"
	TKeyBtnReminder      = "btn_reminder"
	TKeyBtnReminderSet   = "btn_reminder_set"
	TKeyBtnShare         = "btn_share"
	TKeyBtnCopied        = "btn_copied"
	TKeyBtnShop          = "btn_shop"
	TKeyBtnReview        = "btn_review"
	TKeyBtnImport        = "btn_import"
	TKeyBtnBrowse        = "btn_browse"
	TKeyLoginNotice      = "login_notice"
	TKeySectionFavorites = "section_favorites"
	TKeySectionContacts  = "section_contacts"
	TKeyEmptyPeople      = "empty_people"
	TKeyEmptyGifts       = "empty_gifts"
	TKeyToday            = "days_today"
	TKeyOneDay           = "days_one"
	TKeyManyDays         = "days_many" // Requires Count
	TKeyPurchasedGroup   = "purchased_group"
	TKeyBudget           = "budget" // Requires Total, Spent
	TKeyLblName          = "lbl_name"
	TKeyLblBirthday      = "lbl_birthday"
	TKeyLblDay           = "lbl_day"
	TKeyLblMonth         = "lbl_month"
	TKeyLblColor         = "lbl_color"
	TKeyLblGiftName      = "lbl_gift_name"
	TKeyLblDescription   = "lbl_description"
	TKeyLblPrice         = "lbl_price"
	TKeyLblLink          = "lbl_link"
	TKeyLblPriority      = "lbl_priority"
	TKeyLblLanguage      = "lbl_language"
	TKeyLblPort          = "lbl_server_port"
	TKeyHelpPort         = "help_port"
	TKeyLblSource        = "lbl_source"
	TKeyLblURL           = "lbl_url"
	TKeyLblUser          = "lbl_user"
	TKeyLblPass          = "lbl_pass"
	TKeyLblEnableRem     = "lbl_enable_reminders"
	TKeyLblRemDays       = "lbl_reminder_days"
	TKeyLblFooter        = "lbl_footer"
	TKeyLblGeneral       = "lbl_general"
	TKeyLblFeed          = "lbl_feed"
	TKeyModeCardDAV      = "mode_carddav"
	TKeyModeLocal        = "mode_local"
	TKeyPriorityHigh     = "priority_high"
	TKeyPriorityMedium   = "priority_medium"
	TKeyPriorityLow      = "priority_low"
	TKeyTitleAddPerson   = "title_add_person"
	TKeyTitleEditPerson  = "title_edit_person"
	TKeyTitleAddGift     = "title_add_gift"
	TKeyTitleEditGift    = "title_edit_gift"
	TKeyTitleDelPerson   = "title_delete_person"
	TKeyMsgDelPerson     = "msg_delete_person" // Requires Name
	TKeyTitleDelGift     = "title_delete_gift"
	TKeyMsgDelGift       = "msg_delete_gift" // Requires Name
	TKeyErrNameRequired  = "err_name_required"
	TKeyErrBirthday      = "err_birthday_invalid"
	TKeyErrPrice         = "err_price_invalid"
	TKeyErrPortReq       = "err_port_required"
	TKeyErrPortNum       = "err_port_number"
	TKeyErrPortRange     = "err_port_range"
	TKeyNotifImported    = "notif_imported" // Requires Count
	TKeyNotifImportError = "notif_import_error"
	TKeyTrayStatus       = "tray_status" // Requires Count > 0
	TKeyTrayStatusZero   = "tray_status_zero"
	TKeyMenuShow         = "menu_show"
	TKeyMenuQuit         = "menu_quit"
	TKeyColorPrefix      = "color_" // Followed by engine.Color.String()
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	SourceModeWeb        = "web"
	SourceModeLocal      = "local"
	DefaultPort          = "18081"
	DefaultLanguage      = "es"
	DefaultReminderValue = 1
	CronMidnight         = "0 0 * * *"
)

// ISO8601 Duration Components for feed reminders
const (
	ISONegativePrefix = "-P"
	ISODay            = "D"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion   = "2.0"
	ICalProdid    = "-//Go Wishlist//Feed//ES"
	ICalCalName   = "Cumpleaños"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "gowishlist"

	// iCal/vCard Fields
	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"
	PropTransp      = "TRANSP"
	ValueTransp     = "TRANSPARENT"

	VCardBDAY = "BDAY"
	VCardFN   = "FN"

	DefaultICalRefresh = 24 * time.Hour
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	// Date layouts used for parsing vCard BDAY fields
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"

	// Limits
	MinPort = 1
	MaxPort = 65535

	// UID Generation
	UIDHashLength   = 8
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s@%s"

	// File Extensions
	ExtVCF   = ".vcf"
	ExtVCard = ".vcard"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 64 * 1024 * 1024 // 64MB of vCards is already a very large address book
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteFeed           = "/birthdays.ics"
	AddrSeparator       = ":"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderAccept          = "Accept"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeNoSniff         = "nosniff"
	// AcceptVCard prefers vCard but accepts the generic types some WebDAV servers send.
	AcceptVCard = "text/vcard, text/x-vcard;q=0.9, */*;q=0.1"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrLocalPathEmpty   = "configuration error: local path is empty"
	ErrWebURLEmpty      = "configuration error: web URL is empty"
	ErrFetcherMissing   = "internal error: network fetcher is not initialized"
	ErrModeUnsupport    = "configuration error: unsupported source mode"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrFetchRequest     = "failed to build address book request"
	ErrFetchNetwork     = "address book download failed"
	ErrFetchStatus      = "address book server returned unexpected status"
	ErrAddressBookSize  = "address book exceeds the download size limit"
	ErrVCardParse       = "failed to parse vCard stream"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrDateParse        = "unable to parse date"
	ErrBirthdayParse    = "unable to parse birthday"
	ErrEmptyName        = "name is required"
	ErrInvalidBirthday  = "birthday is not a valid day of the month"
	ErrNegativePrice    = "price must not be negative"
	ErrPriceFormat      = "price is not a number"
	ErrUnknownStatus    = "unknown gift status"
	ErrUnknownPriority  = "unknown gift priority"
	ErrUnknownColor     = "unknown person color"
	ErrStorageDecode    = "failed to decode wishlist data"
	ErrStorageEncode    = "failed to encode wishlist data"
	ErrStorageVersion   = "unsupported wishlist data version"
	ErrStorageEmpty     = "no wishlist data stored"
	ErrPersonNotFound   = "person not found"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrTrayNotSupported = "system tray not supported on this platform/driver"
	ErrOpenURL          = "failed to open external URL"
	ErrCronSchedule     = "failed to schedule midnight refresh"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Feed initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Fallbacks & Log Messages
// -----------------------------------------------------------------------------

const (
	FallbackName       = "Sin nombre"
	FallbackTrayLabel  = "Go Wishlist"
	FallbackTrayStatus = "Go Wishlist (%d hoy)"

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	TitleStartupError = "Startup Error"

	MsgPortBusy        = "Port %s is busy or unavailable."
	MsgAppStop         = "Application stopped gracefully"
	MsgCtxCancel       = "Context cancelled, shutting down UI"
	MsgAppStarting     = "Starting application"
	MsgServerListen    = "HTTP server listening"
	MsgServerStop      = "Shutting down HTTP server..."
	MsgFeedUpdated     = "Birthday feed updated"
	MsgFeedBuilt       = "Birthday feed generated"
	MsgSkippedCard     = "Skipping malformed vCard"
	MsgSkippedDate     = "Skipping invalid date format"
	MsgImportStarted   = "Contact import started"
	MsgImportDone      = "Contact import finished"
	MsgImportFailed    = "Contact import failed"
	MsgFetchStart      = "Downloading address book"
	MsgFetchStatus     = "Address book server returned error status"
	MsgStateChanged    = "Wishlist state changed"
	MsgStateLoaded     = "Wishlist data loaded"
	MsgSeedFallback    = "Wishlist data missing or corrupt, using seed data"
	MsgPersistFailed   = "Persisting wishlist data failed, keeping in-memory state"
	MsgClipboardCopied = "Gift list copied to clipboard"
	MsgReminderOpened  = "Calendar reminder link opened"
	MsgMidnightRefresh = "Midnight refresh"
	MsgLocaleSkip      = "Skipping non-locale file"
	MsgLocaleBadName   = "Skipping malformed locale filename"
	MsgLocaleLoaded    = "Locale loaded successfully"
	MsgTransMissing    = "Missing translation key"
	MsgPassFail        = "Password retrieval failed (might be empty)"
	MsgLogWarning      = "Warning: %s at %s: %v\n"
	MsgBdayToday       = "Birthday found today"
	MsgValidation      = "Form validation failed"
	MsgWindowOpened    = "Opening window"
	MsgWindowFocus     = "Window already open, requesting focus"
	MsgCalendarRender  = "Birthday calendar rendered"
	MsgSettingsSaved   = "Saving preferences"
	MsgKeyringFail     = "Failed to save credentials to keyring"
	MsgServerRestart   = "Feed server port changed, restarting"

	PlaceholderURL      = "https://..."
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyMode      = "mode"
	LogKeyUser      = "user"
	LogKeyAction    = "action"
	LogKeyPersonID  = "person_id"
	LogKeyGiftID    = "gift_id"
	LogKeyPeople    = "people"
	LogKeyEvents    = "events"
	LogKeyTotal     = "total_cards"
	LogKeyFound     = "birthdays_found"
	LogKeyToday     = "birthdays_today"
	LogKeyImported  = "imported"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyValue     = "value"
	LogKeyStats     = "stats"
	LogKeyName      = "name"
	LogKeyDuration  = "duration_ms"
	LogKeyWindow    = "window"
	LogKeyMonth     = "month"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI       = "ui"
	CompUISet    = "ui_settings"
	CompEngine   = "engine"
	CompImporter = "importer"
	CompServer   = "server"
	CompFetcher  = "fetcher"
	CompStore    = "store"
	CompStorage  = "storage"
	CompCron     = "cron"
	CompMain     = "main"
	CompI18n     = "i18n"
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	LayoutColumnsDouble = 2
	LayoutColumnsCards  = 2
	LayoutColumnsWeek   = 7
)
