package shell

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// DefaultLocale is used when no locale is configured.
	DefaultLocale = "en"

	dateLayout = "2006-01-02"
)

// Messages renders locale aware parts of user-facing messages.
type Messages struct {
	printer *message.Printer
}

// NewMessages creates Messages for a BCP 47 locale like "en" or "de-DE".
// Unparsable locales fall back to DefaultLocale.
func NewMessages(locale string) Messages {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Make(DefaultLocale)
	}

	return Messages{printer: message.NewPrinter(tag)}
}

// DefaultMessages returns Messages for DefaultLocale.
func DefaultMessages() Messages {
	return NewMessages(DefaultLocale)
}

// Sprintf formats with the locale's number formatting.
func (m Messages) Sprintf(format string, args ...any) string {
	if m.printer == nil {
		return DefaultMessages().Sprintf(format, args...)
	}

	return m.printer.Sprintf(format, args...)
}

// Amount renders a monetary amount with two decimals, e.g. "3.00" or "3,00".
func (m Messages) Amount(amount decimal.Decimal) string {
	return m.Sprintf("%.2f", amount.Round(2).InexactFloat64())
}

// Date renders a calendar date in ISO form, which reads the same in every locale.
func (m Messages) Date(t time.Time) string {
	return t.UTC().Format(dateLayout)
}
