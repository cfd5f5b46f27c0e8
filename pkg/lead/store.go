package lead

import (
	"time"

	"leadcapture/pkg/models"
	"leadcapture/pkg/storage"
)

// DefaultTTLDays is how long remembered lead data survives
const DefaultTTLDays = 3650

// MaxTTLDays bounds every expiry so it stays representable as a time.Duration
const MaxTTLDays = 36500

const (
	flagPrefix = "key_"
	flagValue  = "1"
)

// cookie names for each form field
var storageNames = map[string]string{
	models.FieldName:  "subs_name",
	models.FieldEmail: "subs_email",
	models.FieldPhone: "subs_phone",
}

// ContactStore remembers the visitor's name, e-mail and phone.
// Values are never re-validated on read.
type ContactStore struct {
	backend storage.Storage
	ttlDays int
}

// NewContactStore wraps a storage backend; ttlDays <= 0 selects DefaultTTLDays
func NewContactStore(backend storage.Storage, ttlDays int) *ContactStore {
	if ttlDays <= 0 {
		ttlDays = DefaultTTLDays
	}
	if ttlDays > MaxTTLDays {
		ttlDays = MaxTTLDays
	}
	return &ContactStore{backend: backend, ttlDays: ttlDays}
}

// TTLDays is the lifetime applied by Save and MarkFlag
func (s *ContactStore) TTLDays() int {
	return s.ttlDays
}

// Get returns the stored value for a form field, or "" when nothing is stored
func (s *ContactStore) Get(field string) string {
	name, ok := storageNames[field]
	if !ok || s.backend == nil {
		return ""
	}
	return s.backend.Get(name)
}

// Set overwrites a form field value and restarts its expiry
func (s *ContactStore) Set(field, value string, ttlDays int) {
	name, ok := storageNames[field]
	if !ok || s.backend == nil {
		return
	}
	s.backend.Set(name, value, days(ttlDays))
}

// MarkFlag records that the subscription identified by key was submitted
func (s *ContactStore) MarkFlag(key string) {
	if s.backend == nil {
		return
	}
	s.backend.Set(flagPrefix+key, flagValue, days(s.ttlDays))
}

// Record reads everything stored so far
func (s *ContactStore) Record() models.ContactRecord {
	return models.ContactRecord{
		Name:  s.Get(models.FieldName),
		Email: s.Get(models.FieldEmail),
		Phone: s.Get(models.FieldPhone),
	}
}

// Save writes name and e-mail, plus the phone when withPhone is set
func (s *ContactStore) Save(record models.ContactRecord, withPhone bool) {
	s.Set(models.FieldName, record.Name, s.ttlDays)
	s.Set(models.FieldEmail, record.Email, s.ttlDays)
	if withPhone {
		s.Set(models.FieldPhone, record.Phone, s.ttlDays)
	}
}

func days(n int) time.Duration {
	if n > MaxTTLDays {
		n = MaxTTLDays
	}
	return time.Duration(n) * 24 * time.Hour
}
