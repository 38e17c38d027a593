package extract

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var multiBlankRe = regexp.MustCompile(`\n{3,}`)

// extractHTMLText strips markup and returns the visible text of an
// HTML document.
func extractHTMLText(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	doc.Find("script, style, noscript").Remove()

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}

	var sb strings.Builder
	root.Find("h1, h2, h3, h4, h5, h6, p, li, td, th, pre, blockquote").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return
		}
		sb.WriteString(text)
		sb.WriteByte('\n')
	})

	text := sb.String()
	if text == "" {
		// Fallback for markup without block elements.
		text = strings.TrimSpace(root.Text())
	}
	if text == "" {
		return "", fmt.Errorf("no text content found in html")
	}
	return strings.TrimSpace(multiBlankRe.ReplaceAllString(text, "\n\n")), nil
}
