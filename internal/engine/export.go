package engine

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/tartampluch/go-wishlist/internal/config"
	"github.com/teambition/rrule-go"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatMoney renders an amount with the Spanish decimal separator, e.g. "45,00".
func FormatMoney(v float64) string {
	return message.NewPrinter(language.Spanish).Sprintf(config.MoneyFormat, v)
}

// ShareText renders a person's gift list as a plain-text block for the clipboard.
// Pending gifts come first in priority order, then purchased gifts.
func ShareText(p Person) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, config.ShareHeader, p.Name, p.Birthday)

	if budget := Budget(p.Gifts); budget.Priced {
		fmt.Fprintf(&sb, config.ShareBudget, FormatMoney(budget.Total))
	}

	view := OrderGifts(p.Gifts)
	if len(view.Pending) == 0 && len(view.Purchased) == 0 {
		sb.WriteString(config.ShareEmpty)
		return sb.String()
	}

	lines := make([]string, 0, len(view.Pending))
	for _, g := range view.Pending {
		lines = append(lines, fmt.Sprintf(config.SharePending, g.Name)+shareExtras(g))
	}
	if len(lines) > 0 {
		sb.WriteString(strings.Join(lines, "\n"))
		sb.WriteString("\n")
	}

	if len(view.Purchased) > 0 {
		if len(view.Pending) > 0 {
			sb.WriteString("\n")
		}
		lines = lines[:0]
		for _, g := range view.Purchased {
			lines = append(lines, fmt.Sprintf(config.SharePurchased, g.Name)+shareExtras(g))
		}
		sb.WriteString(strings.Join(lines, "\n"))
	}
	return sb.String()
}

func shareExtras(g Gift) string {
	var extra string
	if g.Price != nil && *g.Price > 0 {
		extra += fmt.Sprintf(config.SharePrice, FormatMoney(*g.Price))
	}
	if g.Link != "" {
		extra += fmt.Sprintf(config.ShareLink, NormalizeLink(g.Link))
	}
	return extra
}

// CalendarURL builds a calendar template link for an all-day event on the
// next birthday, recurring yearly. Pending gift ideas go in the details.
func CalendarURL(p Person, now time.Time) (string, error) {
	b, ok := ParseBirthday(p.Birthday)
	if !ok {
		return "", fmt.Errorf("%s: %q", config.ErrBirthdayParse, p.Birthday)
	}

	start := NextOccurrence(b, now)
	end := start.AddDate(0, 0, 1)
	recur := rrule.ROption{Freq: rrule.YEARLY}

	q := url.Values{}
	q.Set(config.ParamAction, config.CalendarAction)
	q.Set(config.ParamText, fmt.Sprintf(config.CalendarTitle, p.Name))
	q.Set(config.ParamDates, start.Format(config.CalendarDateFmt)+"/"+end.Format(config.CalendarDateFmt))
	q.Set(config.ParamRecur, config.RRulePrefix+recur.RRuleString())
	if details := giftIdeas(p); details != "" {
		q.Set(config.ParamDetails, details)
	}

	return config.CalendarBaseURL + "?" + q.Encode(), nil
}

// giftIdeas lists pending gift names, highest priority first.
func giftIdeas(p Person) string {
	pending := OrderGifts(p.Gifts).Pending
	if len(pending) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(config.CalendarDetails)
	for _, g := range pending {
		fmt.Fprintf(&sb, config.CalendarBullet, g.Name)
	}
	return sb.String()
}

// ShoppingURL returns a price-comparison search for a gift name.
func ShoppingURL(giftName string) string {
	q := url.Values{}
	q.Set(config.ParamQuery, strings.TrimSpace(giftName))
	q.Set(config.ParamTBM, config.ShoppingTBM)
	return config.ShoppingBaseURL + "?" + q.Encode()
}

// ReviewURL returns a video review search for a gift name.
func ReviewURL(giftName string) string {
	q := url.Values{}
	q.Set(config.ParamSearchQ, strings.TrimSpace(giftName)+config.ReviewSuffix)
	return config.ReviewBaseURL + "?" + q.Encode()
}

// NormalizeLink prefixes https:// when the link carries no http(s) scheme.
func NormalizeLink(link string) string {
	link = strings.TrimSpace(link)
	if link == "" || strings.HasPrefix(link, config.SchemeHTTP) {
		return link
	}
	return config.DefaultURLScheme + link
}

// LinkHost returns the host part of a shopping link for compact display.
// Unparseable links are returned as typed.
func LinkHost(link string) string {
	u, err := url.Parse(NormalizeLink(link))
	if err != nil || u.Host == "" {
		return link
	}
	return u.Host
}
