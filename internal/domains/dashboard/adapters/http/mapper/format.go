package mapper

import (
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultLocale groups amounts the way the web client does for rupee budgets.
const DefaultLocale = "en-IN"

const currencySymbol = "₹"

// Formatter renders display strings for the dashboard view.
type Formatter struct {
	printer *message.Printer
	now     func() time.Time
}

// FormatterOption customises a Formatter.
type FormatterOption func(*Formatter)

// WithClock overrides the reference time used for relative timestamps.
func WithClock(now func() time.Time) FormatterOption {
	return func(f *Formatter) {
		if now != nil {
			f.now = now
		}
	}
}

// NewFormatter builds a Formatter for the BCP 47 locale, falling back to
// DefaultLocale when the tag cannot be parsed.
func NewFormatter(locale string, opts ...FormatterOption) *Formatter {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		tag = language.MustParse(DefaultLocale)
	}
	f := &Formatter{printer: message.NewPrinter(tag), now: time.Now}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Rating renders a score with exactly one decimal.
func (f *Formatter) Rating(rating float64) string {
	return strconv.FormatFloat(rating, 'f', 1, 64)
}

// Amount renders a budget bound with locale grouping; a missing bound renders empty.
func (f *Formatter) Amount(value *float64) string {
	if value == nil {
		return ""
	}
	return f.printer.Sprint(number.Decimal(*value, number.MaxFractionDigits(2)))
}

// Budget renders "₹min - ₹max".
func (f *Formatter) Budget(low, high *float64) string {
	return currencySymbol + f.Amount(low) + " - " + currencySymbol + f.Amount(high)
}

// Since renders the distance between at and now in words with an "ago" or
// "in" suffix.
func (f *Formatter) Since(at time.Time) string {
	delta := f.now().Sub(at)
	words := distanceInWords(delta.Abs())
	if delta < 0 {
		return "in " + words
	}
	return words + " ago"
}

const (
	minutesInDay   = 1440
	minutesInMonth = 43200
)

func distanceInWords(d time.Duration) string {
	seconds := d.Seconds()
	minutes := math.Round(d.Minutes())

	switch {
	case seconds < 30:
		return "less than a minute"
	case minutes < 2:
		return "1 minute"
	case minutes < 45:
		return plural(int(minutes), "minute")
	case minutes < 90:
		return "about 1 hour"
	case minutes < minutesInDay:
		return "about " + plural(int(math.Round(minutes/60)), "hour")
	case minutes < 2520:
		return "1 day"
	case minutes < minutesInMonth:
		return plural(int(math.Round(minutes/minutesInDay)), "day")
	case minutes < 2*minutesInMonth:
		return "about " + plural(int(math.Round(minutes/minutesInMonth)), "month")
	}

	months := int(math.Round(minutes / minutesInMonth))
	if months < 12 {
		return plural(months, "month")
	}
	years, rest := months/12, months%12
	switch {
	case rest < 3:
		return "about " + plural(years, "year")
	case rest < 9:
		return "over " + plural(years, "year")
	default:
		return "almost " + plural(years+1, "year")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return strconv.Itoa(n) + " " + unit + "s"
}
