package lead

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadcapture/pkg/models"
	"leadcapture/pkg/storage"
)

func TestContactStoreRoundTrip(t *testing.T) {
	mem := storage.NewMemory()
	store := NewContactStore(mem, 0)

	assert.Equal(t, "", store.Get(models.FieldName))

	store.Set(models.FieldName, "Ann", DefaultTTLDays)
	assert.Equal(t, "Ann", store.Get(models.FieldName))

	store.Set(models.FieldName, "Ann", DefaultTTLDays)
	assert.Equal(t, "Ann", store.Get(models.FieldName))
	assert.Equal(t, "Ann", mem.Get("subs_name"))
}

func TestContactStoreUnknownField(t *testing.T) {
	mem := storage.NewMemory()
	store := NewContactStore(mem, 0)

	store.Set(models.FieldCity, "Москва", DefaultTTLDays)
	assert.Equal(t, "", store.Get(models.FieldCity))
	assert.Equal(t, 0, mem.Len())
}

func TestContactStoreWithoutBackend(t *testing.T) {
	store := NewContactStore(nil, 0)
	store.Set(models.FieldEmail, "x@y.com", DefaultTTLDays)
	store.MarkFlag("42")
	assert.Equal(t, "", store.Get(models.FieldEmail))
}

func TestContactStoreSaveAndFlag(t *testing.T) {
	mem := storage.NewMemory()
	store := NewContactStore(mem, 0)

	store.Save(models.ContactRecord{Name: "Ann", Email: "ann@example.com", Phone: "123"}, false)
	store.MarkFlag("news")

	assert.Equal(t, models.ContactRecord{Name: "Ann", Email: "ann@example.com"}, store.Record())
	assert.Equal(t, "1", mem.Get("key_news"))

	store.Save(models.ContactRecord{Name: "Ann", Email: "ann@example.com", Phone: "123"}, true)
	assert.Equal(t, "123", store.Get(models.FieldPhone))
}

const prefillPage = `<html><body>
<form>
  <input type="text" name="lead_name" value="Введите ваше имя">
  <input type="text" class="lead_email">
  <input type="text" name="lead_phone" value="+7">
</form>
</body></html>`

func TestPrefill(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(prefillPage))
	require.NoError(t, err)

	mem := storage.NewMemory()
	store := NewContactStore(mem, 0)
	store.Set(models.FieldEmail, "x@y.com", DefaultTTLDays)

	Prefill(doc, store)

	email, _ := doc.Find(".lead_email").Attr("value")
	assert.Equal(t, "x@y.com", email)

	phone, _ := doc.Find(`input[name="lead_phone"]`).Attr("value")
	assert.Equal(t, "+7", phone, "phone must not be cleared")

	name, _ := doc.Find(`input[name="lead_name"]`).Attr("value")
	assert.Equal(t, "Введите ваше имя", name)
}

func TestPrefillMissingFields(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<form><input name="other"></form>`))
	require.NoError(t, err)

	store := NewContactStore(storage.NewMemory(), 0)
	store.Save(models.ContactRecord{Name: "Ann", Email: "ann@example.com", Phone: "1"}, true)

	assert.NotPanics(t, func() { Prefill(doc, store) })
	_, exists := doc.Find(`input[name="other"]`).Attr("value")
	assert.False(t, exists)
}

func TestContactStoreCapsTTL(t *testing.T) {
	mem := storage.NewMemory()
	store := NewContactStore(mem, 1<<40)

	store.Set(models.FieldEmail, "x@y.com", 1<<40)
	store.MarkFlag("news")

	assert.Equal(t, "x@y.com", store.Get(models.FieldEmail), "an oversized ttl must not wrap into the past")
	assert.Equal(t, "1", mem.Get("key_news"))
	assert.Greater(t, int64(days(1<<40)), int64(0))
	assert.Equal(t, days(MaxTTLDays), days(MaxTTLDays+1))
}

const classPrefillPage = `<form>
  <textarea class="lead_name"></textarea>
  <select class="lead_phone">
    <option value="">-</option>
    <option value="+7 999" selected>+7 999</option>
    <option value="+7 123">+7 123</option>
  </select>
  <select name="lead_email"><option>other@y.com</option><option>x@y.com</option></select>
  <div class="lead_name">label</div>
</form>`

func TestPrefillByClassOnAnyControl(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(classPrefillPage))
	require.NoError(t, err)

	store := NewContactStore(storage.NewMemory(), 0)
	store.Save(models.ContactRecord{Name: "Ann", Email: "x@y.com", Phone: "+7 123"}, true)

	Prefill(doc, store)

	assert.Equal(t, "Ann", doc.Find("textarea.lead_name").Text())
	assert.Equal(t, "label", doc.Find("div.lead_name").Text())

	selected := doc.Find("select.lead_phone option[selected]")
	require.Equal(t, 1, selected.Length())
	assert.Equal(t, "+7 123", selected.AttrOr("value", ""))

	assert.Equal(t, "x@y.com", doc.Find(`select[name="lead_email"] option[selected]`).Text())
}
