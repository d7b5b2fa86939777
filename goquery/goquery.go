// Package goquery implements HTML extraction for syllabus pages using CSS
// selectors. Course and program pages on mdu.se share the same markup
// conventions: a details block with key/value items and a series of text
// sections headed by h2/h3 elements.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// normalizeSpace collapses all whitespace runs into single spaces.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// detailItems walks the page's details block and calls fn with the
// lowercased header and trimmed content of each item.
func detailItems(doc *goquery.Document, fn func(key, value string)) {
	doc.Find("div.mdh-details-block").First().Find("div.mdh-details-block__item").Each(func(_ int, item *goquery.Selection) {
		header := item.Find("div.mdh-details-block__header").First()
		content := item.Find("div.mdh-details-block__content").First()
		if header.Length() == 0 || content.Length() == 0 {
			return
		}
		key := strings.ToLower(strings.TrimSpace(header.Text()))
		value := strings.TrimSpace(content.Text())
		fn(key, value)
	})
}

// sectionContent collects the text of the header's following siblings up to
// the next heading, joined with single spaces.
func sectionContent(header *goquery.Selection) string {
	var parts []string
	for sib := header.Next(); sib.Length() > 0; sib = sib.Next() {
		name := goquery.NodeName(sib)
		if name == "h2" || name == "h3" {
			break
		}
		if text := normalizeSpace(sib.Text()); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// joinParagraphs concatenates the text of all p elements in the section.
func joinParagraphs(section *goquery.Selection) string {
	var parts []string
	section.Find("p").Each(func(_ int, p *goquery.Selection) {
		if text := normalizeSpace(p.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, " ")
}
