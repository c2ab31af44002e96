package i18n

import (
	"math"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// localeLayouts carries the Go time layouts used per locale. Unregistered
// locales fall back to the en layouts.
type localeLayouts struct {
	date     string
	clock    string
	dateTime string
}

var layouts = map[string]localeLayouts{
	"en": {date: "Jan 2, 2006", clock: "3:04 PM", dateTime: "Jan 2, 2006 3:04 PM"},
	"es": {date: "2 Jan 2006", clock: "15:04", dateTime: "2 Jan 2006 15:04"},
	"ar": {date: "2006/01/02", clock: "15:04", dateTime: "2006/01/02 15:04"},
	"he": {date: "02.01.2006", clock: "15:04", dateTime: "02.01.2006 15:04"},
}

func layoutsFor(code string) localeLayouts {
	if l, ok := layouts[code]; ok {
		return l
	}
	return layouts[FallbackLocale]
}

// FormatDate formats a date for the active locale. A zero time is treated as
// bad input: it is logged and rendered through time.Time's default string
// form rather than failing.
func (i *I18n) FormatDate(t time.Time) string {
	if t.IsZero() {
		i.log.Warn("formatting zero time", "locale", i.CurrentLocale())
		return t.String()
	}
	return t.Format(layoutsFor(i.CurrentLocale()).date)
}

// FormatTime formats a time of day for the active locale.
func (i *I18n) FormatTime(t time.Time) string {
	if t.IsZero() {
		i.log.Warn("formatting zero time", "locale", i.CurrentLocale())
		return t.String()
	}
	return t.Format(layoutsFor(i.CurrentLocale()).clock)
}

// FormatDateTime formats a date with time of day for the active locale.
func (i *I18n) FormatDateTime(t time.Time) string {
	if t.IsZero() {
		i.log.Warn("formatting zero time", "locale", i.CurrentLocale())
		return t.String()
	}
	return t.Format(layoutsFor(i.CurrentLocale()).dateTime)
}

// FormatNumber formats n with the active locale's digit grouping and decimal
// separator. NaN and infinities are logged and rendered through strconv
// rather than failing.
func (i *I18n) FormatNumber(n float64) string {
	current := i.CurrentLocale()

	if math.IsNaN(n) || math.IsInf(n, 0) {
		i.log.Warn("formatting non-finite number", "locale", current)
		return strconv.FormatFloat(n, 'g', -1, 64)
	}

	printer := message.NewPrinter(language.Make(current))
	return printer.Sprint(number.Decimal(n))
}
