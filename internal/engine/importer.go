package engine

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-wishlist/internal/config"
)

// ImportConfig selects where contacts are read from.
type ImportConfig struct {
	Mode      string // config.SourceModeLocal or config.SourceModeWeb
	LocalPath string // Absolute path to the .vcf file
	WebURL    string // CardDAV or WebDAV URL
	WebUser   string // HTTP Basic Auth Username
	WebPass   string // HTTP Basic Auth Password
}

// ImportStats reports what an import found.
type ImportStats struct {
	Cards     int
	Birthdays int
}

// Importer turns vCard contacts with a birthday into People.
type Importer struct {
	Fetcher VCardFetcher
}

// Import reads all cards from the configured source. Cards without a usable
// BDAY are skipped. Person ids are derived from name and date, so importing
// the same address book twice yields the same ids.
func (im *Importer) Import(ctx context.Context, cfg ImportConfig) ([]Person, ImportStats, error) {
	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompImporter,
		config.LogKeyMode, cfg.Mode,
	)
	log.InfoContext(ctx, config.MsgImportStarted)

	reader, err := im.acquireStream(ctx, cfg)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ImportStats{}, ctx.Err()
		}
		return nil, ImportStats{}, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
	}
	defer func() { _ = reader.Close() }()

	if err := ctx.Err(); err != nil {
		return nil, ImportStats{}, err
	}

	people, stats, err := decodePeople(ctx, reader)
	if err != nil {
		return nil, stats, err
	}

	log.Info(config.MsgImportDone,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, stats.Cards),
			slog.Int(config.LogKeyFound, stats.Birthdays),
		),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return people, stats, nil
}

// acquireStream opens the appropriate data source based on configuration.
func (im *Importer) acquireStream(ctx context.Context, cfg ImportConfig) (io.ReadCloser, error) {
	switch cfg.Mode {
	case config.SourceModeLocal:
		if cfg.LocalPath == "" {
			return nil, errors.New(config.ErrLocalPathEmpty)
		}
		return os.Open(cfg.LocalPath)
	case config.SourceModeWeb:
		if cfg.WebURL == "" {
			return nil, errors.New(config.ErrWebURLEmpty)
		}
		if im.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return im.Fetcher.Fetch(ctx, cfg.WebURL, cfg.WebUser, cfg.WebPass)
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, cfg.Mode)
	}
}

func decodePeople(ctx context.Context, r io.Reader) ([]Person, ImportStats, error) {
	var stats ImportStats
	var people []Person

	src := &sourceReader{r: r}
	decoder := vcard.NewDecoder(src)
	for {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}

		card, err := decoder.Decode()
		if errors.Is(src.err, ErrAddressBookSize) {
			// A cut-off address book would import only part of the contacts.
			return nil, stats, src.err
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Keep going: one broken card should not lose the rest of the address book.
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompImporter,
				config.LogKeyError, err)
			continue
		}
		stats.Cards++

		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			continue
		}
		date, err := parseDate(bday.Value)
		if err != nil {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompImporter,
				config.LogKeyValue, bday.Value)
			continue
		}
		stats.Birthdays++

		name := cardName(card)

		people = append(people, Person{
			ID:       contactID(name, date),
			Name:     name,
			Birthday: FormatBirthday(date.Day(), date.Month()),
			Color:    ColorIndigo,
			Gifts:    []Gift{},
		})
	}
	return people, stats, nil
}

// sourceReader remembers the first read error of the address book stream,
// which the vCard decoder may not pass through unchanged.
type sourceReader struct {
	r   io.Reader
	err error
}

func (s *sourceReader) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) && s.err == nil {
		s.err = err
	}
	return n, err
}

// cardName prefers FN, then the structured N field, then a placeholder.
func cardName(card vcard.Card) string {
	if fn := strings.TrimSpace(card.PreferredValue(config.VCardFN)); fn != "" {
		return fn
	}
	if n := card.Name(); n != nil {
		if full := strings.TrimSpace(n.GivenName + " " + n.FamilyName); full != "" {
			return full
		}
	}
	return config.FallbackName
}

// contactID hashes the contact identity into a stable person id.
func contactID(name string, date time.Time) string {
	input := fmt.Sprintf(config.FormatHashInput, name, date.Format(config.DateFormatFullDash), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return config.IDPrefixPerson + hex.EncodeToString(hash[:config.UIDHashLength])
}

// parseDate handles the vCard BDAY formats seen in the wild.
// The year is dropped: only day and month matter for a wishlist.
func parseDate(value string) (time.Time, error) {
	formats := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}
	for _, f := range formats {
		if t, err := time.Parse(f, value); err == nil {
			return time.Date(config.DefaultLeapYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}

	// Truncated dates (--MM-DD). Parsing them alone would lose Feb 29, so a leap year is prefixed.
	for _, f := range []string{config.DateFormatNoYearD, config.DateFormatNoYearB} {
		if t, err := time.Parse("2006"+f, fmt.Sprint(config.DefaultLeapYear)+value); err == nil {
			return t, nil
		}
	}

	return time.Time{}, errors.New(config.ErrDateParse)
}
