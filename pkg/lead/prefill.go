package lead

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"leadcapture/pkg/models"
)

var prefillFields = []string{models.FieldName, models.FieldEmail, models.FieldPhone}

// FieldSelector matches the controls carrying a lead field: inputs, textareas
// and selects by name, or any of them by class
func FieldSelector(field string) string {
	return fmt.Sprintf(`input[name="%[1]s"], textarea[name="%[1]s"], select[name="%[1]s"], input.%[1]s, textarea.%[1]s, select.%[1]s`, field)
}

// SetFieldValue puts value into a form control the way a browser would show it
func SetFieldValue(control *goquery.Selection, value string) {
	switch goquery.NodeName(control) {
	case "textarea":
		control.SetText(value)
	case "select":
		options := control.Find("option")
		match := options.FilterFunction(func(_ int, option *goquery.Selection) bool {
			v, ok := option.Attr("value")
			if !ok {
				v = option.Text()
			}
			return v == value
		})
		if match.Length() == 0 {
			return
		}
		options.RemoveAttr("selected")
		match.First().SetAttr("selected", "selected")
	default:
		control.SetAttr("value", value)
	}
}

// Prefill copies remembered lead data into matching form inputs. Fields with
// nothing stored, and fields missing from the page, are left untouched.
func Prefill(doc *goquery.Document, store *ContactStore) {
	for _, field := range prefillFields {
		value := store.Get(field)
		if value == "" {
			continue
		}

		doc.Find(FieldSelector(field)).Each(func(_ int, control *goquery.Selection) {
			SetFieldValue(control, value)
		})
	}
}
