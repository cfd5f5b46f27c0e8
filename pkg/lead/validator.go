package lead

import (
	"regexp"
	"strings"

	"leadcapture/pkg/models"
)

// Default placeholder markers left in fields whose prompt text was never replaced
const (
	NamePlaceholder = " ваше "
	CityPlaceholder = " ваш "
)

var (
	emailPattern = regexp.MustCompile(`(?i)^[a-z0-9_\-.+]+@([a-z0-9]+[\-.])*[a-z0-9]+\.[a-z]{2,6}$`)
	phonePattern = regexp.MustCompile(`^(\+?\d+\s*)?(\(\d+\))?\s*-?\s*([\d\- ]*)$`)
)

// Form gives the validator access to the fields a lead form exposes
type Form interface {
	// Lookup returns the field value and whether the form has the field at all
	Lookup(field string) (string, bool)
}

// Fields is a Form backed by a map of field name to value
type Fields map[string]string

func (f Fields) Lookup(field string) (string, bool) {
	value, ok := f[field]
	return value, ok
}

// Policy decides which fields a given form instance requires
type Policy struct {
	// RequirePhone enables the phone format check and, unless AllowEmptyPhone
	// is set, makes an empty phone an error.
	RequirePhone    bool
	AllowEmptyPhone bool
	RequireCity     bool

	NamePlaceholder string
	CityPlaceholder string
}

// BasicPolicy applies to name and e-mail forms
var BasicPolicy = Policy{}

// PhonePolicy applies to forms that also collect a mandatory phone
var PhonePolicy = Policy{RequirePhone: true}

// Validate runs the checks in a fixed order and returns the first failure as *ValidationError
func Validate(form Form, policy Policy) error {
	namePlaceholder := policy.NamePlaceholder
	if namePlaceholder == "" {
		namePlaceholder = NamePlaceholder
	}
	cityPlaceholder := policy.CityPlaceholder
	if cityPlaceholder == "" {
		cityPlaceholder = CityPlaceholder
	}

	if name, ok := form.Lookup(models.FieldName); ok && (name == "" || strings.Contains(name, namePlaceholder)) {
		return &ValidationError{Reason: ReasonMissingName, Field: models.FieldName}
	}

	email, ok := form.Lookup(models.FieldEmail)
	if !ok {
		return &ValidationError{Reason: ReasonEmailFieldAbsent, Field: models.FieldEmail}
	}
	if email == "" {
		return &ValidationError{Reason: ReasonMissingEmail, Field: models.FieldEmail}
	}
	if !ValidEmail(email) {
		return &ValidationError{Reason: ReasonInvalidEmail, Field: models.FieldEmail}
	}

	phone, _ := form.Lookup(models.FieldPhone)
	if policy.RequirePhone && phone != "" && !ValidPhone(phone) {
		return &ValidationError{Reason: ReasonInvalidPhone, Field: models.FieldPhone}
	}
	if policy.RequirePhone && !policy.AllowEmptyPhone && phone == "" {
		return &ValidationError{Reason: ReasonMissingPhone, Field: models.FieldPhone}
	}

	if policy.RequireCity {
		if city, ok := form.Lookup(models.FieldCity); ok && (city == "" || strings.Contains(city, cityPlaceholder)) {
			return &ValidationError{Reason: ReasonMissingCity, Field: models.FieldCity}
		}
	}

	return nil
}

// ValidEmail reports whether the address matches the accepted e-mail syntax
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidPhone reports whether the number matches the loose phone syntax
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}
