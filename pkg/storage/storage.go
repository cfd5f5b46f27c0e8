// Package storage provides the key/value backends that remember a visitor's
// lead data between page loads. Backends never fail loudly: a value that
// cannot be read is reported as empty and a value that cannot be written is
// dropped, so callers must tolerate empty values everywhere.
package storage

import "time"

// Storage is the client-side key/value store the lead flow writes to
type Storage interface {
	Get(name string) string
	Set(name, value string, ttl time.Duration)
}
