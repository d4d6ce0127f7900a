package i18n

import (
	"fmt"
	"time"

	"golang.org/x/text/message"
)

// Placeholder is shown where no date is available.
const Placeholder = "--"

var monthsDE = [...]string{
	"Jan.", "Feb.", "März", "Apr.", "Mai", "Juni",
	"Juli", "Aug.", "Sept.", "Okt.", "Nov.", "Dez.",
}

// FormatDate renders an ISO date the way a browser's short date style does:
// "Jan 1, 2020" in English and "1. Jan. 2020" in German. Empty or unparsable
// input yields [Placeholder].
func FormatDate(iso string, l Language) string {
	d, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return Placeholder
	}
	if l == German {
		return fmt.Sprintf("%d. %s %d", d.Day(), monthsDE[d.Month()-1], d.Year())
	}
	return d.Format("Jan 2, 2006")
}

// FormatNumber renders n with the grouping separator of l ("4,000" or "4.000").
func FormatNumber(n int, l Language) string {
	return message.NewPrinter(l.Tag()).Sprintf("%d", n)
}
