// Package scrape holds the field extraction primitives shared by every
// scraping stage. Every metadata field on a detail page follows the same
// "label, then adjacent value" layout, so a single lookup primitive covers
// all of them. The package knows nothing about request sequencing, and a
// missing field always degrades to an empty value instead of an error.
package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Rule describes how to select one field value relative to its label.
type Rule struct {
	Label string // dt text to match
	Find  string // optional selector applied inside the value container
	Attr  string // optional attribute name; empty means text content
	Nth   int    // which match of Find to take, 0 = first
}

// Table maps semantic field names to selection rules. Adapting to markup
// drift means editing the table, not the extraction code.
type Table map[string]Rule

// Lookup resolves a named field against a definition list. Unknown names,
// missing labels, selectors and attributes all yield "".
func (t Table) Lookup(dl *goquery.Selection, name string) string {
	rule, ok := t[name]
	if !ok {
		return ""
	}
	sel := Definition(dl, rule.Label)
	if rule.Find != "" {
		sel = sel.Find(rule.Find).Eq(rule.Nth)
	}
	if rule.Attr != "" {
		return Attr(sel, rule.Attr)
	}
	return Text(sel)
}

// Definition returns the value container (dd) following the dt whose text
// contains label. A missing label yields an empty selection.
func Definition(dl *goquery.Selection, label string) *goquery.Selection {
	var dd *goquery.Selection
	dl.Find("dt").EachWithBreak(func(_ int, dt *goquery.Selection) bool {
		if strings.Contains(dt.Text(), label) {
			dd = dt.NextFiltered("dd")
			return false
		}
		return true
	})
	if dd == nil {
		return dl.Slice(0, 0)
	}
	return dd
}

// Text returns the trimmed text content of sel.
func Text(sel *goquery.Selection) string {
	return strings.TrimSpace(sel.Text())
}

// Attr returns the trimmed attribute value, or "" when the attribute or
// the element itself is absent.
func Attr(sel *goquery.Selection, name string) string {
	v, _ := sel.Attr(name)
	return strings.TrimSpace(v)
}
