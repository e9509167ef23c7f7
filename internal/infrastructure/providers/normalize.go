package providers

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"TrendPoster/internal/domain"
)

// stripHTML flattens an HTML fragment to plain text. Provider descriptions
// often carry markup (RSS CDATA bodies, HN story text).
func stripHTML(fragment string) string {
	if !strings.ContainsRune(fragment, '<') && !strings.ContainsRune(fragment, '&') {
		return strings.TrimSpace(fragment)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	return strings.TrimSpace(doc.Text())
}

// description sanitizes and caps provider-supplied free text.
func description(raw string) string {
	text := stripHTML(raw)
	runes := []rune(text)
	if len(runes) > domain.DescriptionLimit {
		return string(runes[:domain.DescriptionLimit])
	}
	return text
}
