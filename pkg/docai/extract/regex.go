package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// Local regex field extraction for text-like documents. No external
// call is made on this path.

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

	// ISO first, then US-style as fallback.
	isoDateRe = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`)
	usDateRe  = regexp.MustCompile(`\b(\d{1,2}/\d{1,2}/\d{4})\b`)

	// $42.50 / €42.50 / £42.50
	symbolAmountRe = regexp.MustCompile(`([$€£])\s?(\d+(?:,\d{3})*(?:\.\d{1,2})?)`)
	// USD 42.50 / 42.50 USD
	codeAmountRe = regexp.MustCompile(`\b(USD|EUR|GBP|IDR)\s?(\d+(?:,\d{3})*(?:\.\d{1,2})?)\b`)
)

var currencyBySymbol = map[string]string{
	"$": "USD",
	"€": "EUR",
	"£": "GBP",
}

// extractTextFields runs the local regex pass over plain text and
// returns whatever structured fields it can find.
func extractTextFields(text string) map[string]any {
	fields := map[string]any{}

	if m := emailRe.FindString(text); m != "" {
		fields["recipient_email"] = m
	}

	if m := isoDateRe.FindString(text); m != "" {
		fields["invoice_date"] = m
	} else if m := usDateRe.FindString(text); m != "" {
		fields["invoice_date"] = m
	}

	if m := symbolAmountRe.FindStringSubmatch(text); m != nil {
		if value, ok := parseAmount(m[2]); ok {
			fields["amount_due"] = map[string]any{
				"value":    value,
				"currency": currencyBySymbol[m[1]],
			}
		}
	} else if m := codeAmountRe.FindStringSubmatch(text); m != nil {
		if value, ok := parseAmount(m[2]); ok {
			fields["amount_due"] = map[string]any{
				"value":    value,
				"currency": m[1],
			}
		}
	}

	return fields
}

func parseAmount(s string) (float64, bool) {
	s = strings.ReplaceAll(s, ",", "")
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// guessDocType derives a coarse document type from text and filename.
func guessDocType(text, filename string) string {
	probe := strings.ToLower(text)
	if len(probe) > 2000 {
		probe = probe[:2000]
	}
	probe += " " + strings.ToLower(filename)

	switch {
	case strings.Contains(probe, "invoice"):
		return "invoice"
	case strings.Contains(probe, "receipt"):
		return "receipt"
	case strings.Contains(probe, "contract") || strings.Contains(probe, "agreement"):
		return "contract"
	case strings.Contains(probe, "resume") || strings.Contains(probe, "curriculum vitae"):
		return "resume"
	default:
		return "document"
	}
}
