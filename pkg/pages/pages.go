// Package pages renders the landing form served to visitors.
package pages

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"github.com/PuerkitoBio/goquery"

	"leadcapture/pkg/lead"
)

//go:embed default.html
var defaultPage []byte

// Pages holds the landing form markup
type Pages struct {
	markup []byte
}

// Load reads the landing form from path, or uses the built-in form when path is empty
func Load(path string) (*Pages, error) {
	if path == "" {
		return &Pages{markup: defaultPage}, nil
	}

	markup, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading landing page: %w", err)
	}
	return &Pages{markup: markup}, nil
}

// Render parses a fresh copy of the form and points its submission at action
func (p *Pages) Render(action, doneURL string, withPhone bool) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(p.markup))
	if err != nil {
		return nil, fmt.Errorf("error parsing landing page: %w", err)
	}

	doc.Find("form").First().SetAttr("action", action)
	if doneURL != "" {
		doc.Find(`input[name="doneurl"]`).SetAttr("value", doneURL)
	}
	if !withPhone {
		doc.Find(".lead-phone").Remove()
	}
	return doc, nil
}

// FillValues writes submitted values back into the form so the visitor can correct them
func FillValues(doc *goquery.Document, values map[string]string) {
	for field, value := range values {
		doc.Find(lead.FieldSelector(field)).Each(func(_ int, control *goquery.Selection) {
			lead.SetFieldValue(control, value)
		})
	}
}

// MarkInvalid shows message above the form and moves focus to the offending field
func MarkInvalid(doc *goquery.Document, field, message string) {
	doc.Find("[autofocus]").RemoveAttr("autofocus")

	target := doc.Find(lead.FieldSelector(field)).First()
	form := target.Closest("form")
	if form.Length() == 0 {
		form = doc.Find("form").First()
	}

	form.PrependHtml(`<div class="lead-error" role="alert"></div>`)
	form.Find(".lead-error").First().SetText(message)

	target.SetAttr("autofocus", "autofocus")
}

// HTML serialises the document
func HTML(doc *goquery.Document) ([]byte, error) {
	html, err := doc.Html()
	if err != nil {
		return nil, fmt.Errorf("error rendering landing page: %w", err)
	}
	return []byte(html), nil
}
