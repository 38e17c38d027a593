package summarize

import (
	"fmt"
	"strings"

	"doc-intelligence-be/pkg/docai/sanitize"
)

const (
	minSentenceLen  = 20
	maxSentences    = 3
	fallbackSnippet = 200
)

// Heuristic builds a local summary without any external call: the first
// three substantial sentences, plus trailing clauses for well-known
// extracted fields. Used when every external summarizer is unavailable.
func Heuristic(text string, fields map[string]any) string {
	var picked []string
	for _, sentence := range splitSentences(text) {
		if len(sentence) <= minSentenceLen {
			continue
		}
		picked = append(picked, sentence)
		if len(picked) == maxSentences {
			break
		}
	}

	var summary string
	if len(picked) > 0 {
		summary = strings.Join(picked, " ")
	} else {
		summary = sanitize.Truncate(strings.TrimSpace(text), fallbackSnippet)
	}

	var clauses []string
	if issuer, ok := stringField(fields, "issuer"); ok {
		clauses = append(clauses, fmt.Sprintf("Issued by %s.", issuer))
	}
	if amount, ok := amountField(fields); ok {
		clauses = append(clauses, fmt.Sprintf("Amount: %s.", amount))
	}
	if date, ok := stringField(fields, "invoice_date"); ok {
		clauses = append(clauses, fmt.Sprintf("Dated %s.", date))
	}
	if len(clauses) > 0 {
		summary = strings.TrimSpace(summary + " " + strings.Join(clauses, " "))
	}

	return summary
}

func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder
	for _, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func stringField(fields map[string]any, key string) (string, bool) {
	if fields == nil {
		return "", false
	}
	s, ok := fields[key].(string)
	return s, ok && s != ""
}

func amountField(fields map[string]any) (string, bool) {
	if fields == nil {
		return "", false
	}
	switch amount := fields["amount_due"].(type) {
	case string:
		return amount, amount != ""
	case map[string]any:
		value, okValue := amount["value"]
		currency, _ := amount["currency"].(string)
		if !okValue {
			return "", false
		}
		if currency != "" {
			return fmt.Sprintf("%v %s", value, currency), true
		}
		return fmt.Sprintf("%v", value), true
	default:
		return "", false
	}
}
