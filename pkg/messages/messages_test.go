package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"leadcapture/pkg/lead"
)

func TestNegotiate(t *testing.T) {
	assert.Equal(t, language.Russian, Negotiate(""))
	assert.Equal(t, language.Russian, Negotiate("ru-RU,ru;q=0.9"))
	assert.Equal(t, language.English, Negotiate("en-US,en;q=0.8"))
	assert.Equal(t, language.English, Negotiate("de;q=0.9,en;q=0.5"))
	assert.Equal(t, language.Russian, Negotiate("ja"))
	assert.Equal(t, language.Russian, Negotiate("%%garbage"))
}

func TestFor(t *testing.T) {
	assert.Equal(t, "Пожалуйста, введите ваше имя!", For(language.Russian, lead.ReasonMissingName))
	assert.Equal(t, "Please enter a VALID phone number!", For(language.English, lead.ReasonInvalidPhone))
	assert.Equal(t, "Пожалуйста, введите ваш город!", For(language.French, lead.ReasonMissingCity))
	assert.Equal(t, "SOMETHING_ELSE", For(language.English, lead.Reason("SOMETHING_ELSE")))
}

func TestCatalogComplete(t *testing.T) {
	reasons := []lead.Reason{
		lead.ReasonMissingName, lead.ReasonEmailFieldAbsent, lead.ReasonMissingEmail,
		lead.ReasonInvalidEmail, lead.ReasonInvalidPhone, lead.ReasonMissingPhone, lead.ReasonMissingCity,
	}
	for _, tag := range supported {
		for _, reason := range reasons {
			assert.NotEqual(t, string(reason), For(tag, reason), "%s missing %s", tag, reason)
		}
	}
}
