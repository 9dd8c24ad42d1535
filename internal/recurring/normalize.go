package recurring

import (
	"regexp"
	"strings"
)

// Transactional noise stripped from descriptions before grouping: payment
// method prefixes, embedded dates, masked card fragments, long reference
// numbers, trailing country tokens.
var (
	methodPrefix = regexp.MustCompile(`(?i)^(kortköp|korttransaktion|card purchase|autogiro|betalning|e-faktura|direktbetalning|paypal\s*\*|klarna\s*\*|k\*)\s*`)

	embeddedDate = regexp.MustCompile(`\b\d{2,4}[-./]\d{2}[-./]\d{2,4}\b`)

	maskedCard = regexp.MustCompile(`(\*{2,}\s?\d{2,4}|\b\d{4}\*+\d*)`)

	longReference = regexp.MustCompile(`\b\d{6,}\b`)

	trailingCountry = regexp.MustCompile(`\s+(SE|SWE|NO|NOR|DK|DNK|FI|FIN|GB|GBR|US|USA|DE|NL|IE|LU)$`)

	multiSpace = regexp.MustCompile(`\s{2,}`)
)

// NormalizeRecipient reduces a raw expense description to the merchant name
// used as the grouping key. The result is upper-cased.
func NormalizeRecipient(desc string) string {
	s := strings.TrimSpace(desc)
	s = methodPrefix.ReplaceAllString(s, "")
	s = embeddedDate.ReplaceAllString(s, " ")
	s = maskedCard.ReplaceAllString(s, " ")
	s = longReference.ReplaceAllString(s, " ")
	s = strings.ToUpper(strings.TrimSpace(s))
	s = trailingCountry.ReplaceAllString(s, "")
	s = multiSpace.ReplaceAllString(s, " ")
	return strings.Trim(s, " -/.,*")
}
