// Package messages turns lead validation failures into text shown to visitors.
package messages

import (
	"golang.org/x/text/language"

	"leadcapture/pkg/lead"
)

var supported = []language.Tag{
	language.Russian, // default
	language.English,
}

var matcher = language.NewMatcher(supported)

var catalog = map[language.Tag]map[lead.Reason]string{
	language.Russian: {
		lead.ReasonMissingName:      "Пожалуйста, введите ваше имя!",
		lead.ReasonEmailFieldAbsent: "Отсутствует обязательное поле E-mail(lead_email)!",
		lead.ReasonMissingEmail:     "Пожалуйста, введите ваш адрес E-mail!",
		lead.ReasonInvalidEmail:     "Пожалуйста, введите КОРРЕКТНЫЙ адрес E-mail!",
		lead.ReasonInvalidPhone:     "Пожалуйста, введите КОРРЕКТНЫЙ номер телефона!",
		lead.ReasonMissingPhone:     "Пожалуйста, введите ваш номер телефона!",
		lead.ReasonMissingCity:      "Пожалуйста, введите ваш город!",
	},
	language.English: {
		lead.ReasonMissingName:      "Please enter your name!",
		lead.ReasonEmailFieldAbsent: "The required E-mail field (lead_email) is missing!",
		lead.ReasonMissingEmail:     "Please enter your e-mail address!",
		lead.ReasonInvalidEmail:     "Please enter a VALID e-mail address!",
		lead.ReasonInvalidPhone:     "Please enter a VALID phone number!",
		lead.ReasonMissingPhone:     "Please enter your phone number!",
		lead.ReasonMissingCity:      "Please enter your city!",
	},
}

// Negotiate picks the supported language best matching an Accept-Language header
func Negotiate(acceptLanguage string) language.Tag {
	tags, _, _ := language.ParseAcceptLanguage(acceptLanguage)
	_, idx, _ := matcher.Match(tags...)
	return supported[idx]
}

// For returns the visitor-facing text for a rejection reason
func For(tag language.Tag, reason lead.Reason) string {
	texts, ok := catalog[tag]
	if !ok {
		texts = catalog[language.Russian]
	}
	if text, ok := texts[reason]; ok {
		return text
	}
	return string(reason)
}
