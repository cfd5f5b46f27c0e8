package storage

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	log "github.com/sirupsen/logrus"
)

const defaultCookiePath = "/"

// CookieOptions controls how lead cookies are scoped and encoded
type CookieOptions struct {
	Domain   string
	Path     string
	Secure   bool
	HashKey  []byte
	BlockKey []byte
}

// CookieBackend opens per-request cookie storages sharing one set of options.
// Without a hash key values are stored URL-escaped so page scripts can read
// them; with a hash key they are signed (and encrypted when a block key is set).
type CookieBackend struct {
	opts  CookieOptions
	codec *securecookie.SecureCookie
}

// NewCookieBackend creates a cookie backend
func NewCookieBackend(opts CookieOptions) *CookieBackend {
	if opts.Path == "" {
		opts.Path = defaultCookiePath
	}

	backend := &CookieBackend{opts: opts}
	if len(opts.HashKey) > 0 {
		var blockKey []byte
		if len(opts.BlockKey) > 0 {
			blockKey = opts.BlockKey
		}
		backend.codec = securecookie.New(opts.HashKey, blockKey)
		// lead cookies outlive the library's 30 day default
		backend.codec.MaxAge(0)
	}
	return backend
}

// Open binds the backend to one request/response pair
func (b *CookieBackend) Open(w http.ResponseWriter, r *http.Request) *Cookies {
	return &Cookies{
		backend: b,
		w:       w,
		r:       r,
		written: make(map[string]string),
	}
}

// Cookies is a Storage reading from the incoming request and writing to the response
type Cookies struct {
	backend *CookieBackend
	w       http.ResponseWriter
	r       *http.Request
	written map[string]string
}

// Get returns the cookie value or an empty string when it is missing or unreadable
func (c *Cookies) Get(name string) string {
	if value, ok := c.written[name]; ok {
		return value
	}
	if c.r == nil {
		return ""
	}

	cookie, err := c.r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.backend.decode(name, cookie.Value)
}

// Set writes the cookie with an expiry ttl from now
func (c *Cookies) Set(name, value string, ttl time.Duration) {
	encoded, err := c.backend.encode(name, value)
	if err != nil {
		log.WithField("prefix", "storage").WithError(err).Warnf("unable to encode cookie %s", name)
		return
	}
	c.written[name] = value

	if c.w == nil {
		return
	}
	http.SetCookie(c.w, &http.Cookie{
		Name:     name,
		Value:    encoded,
		Path:     c.backend.opts.Path,
		Domain:   c.backend.opts.Domain,
		Expires:  time.Now().Add(ttl),
		MaxAge:   int(ttl / time.Second),
		Secure:   c.backend.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (b *CookieBackend) encode(name, value string) (string, error) {
	if b.codec != nil {
		return b.codec.Encode(name, value)
	}
	return escapeComponent(value), nil
}

func (b *CookieBackend) decode(name, raw string) string {
	if b.codec != nil {
		var value string
		if err := b.codec.Decode(name, raw, &value); err != nil {
			log.WithField("prefix", "storage").WithError(err).Debugf("dropping unreadable cookie %s", name)
			return ""
		}
		return value
	}

	value, err := url.PathUnescape(raw)
	if err != nil {
		return ""
	}
	return value
}

const upperhex = "0123456789ABCDEF"

// escapeComponent percent-encodes every byte outside A-Z a-z 0-9 and -_.!~*'()
// so page scripts reading the cookie with decodeURIComponent get the value back.
// url.PathEscape leaves '+' and ':' alone, which readers may turn into a space.
func escapeComponent(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for i := 0; i < len(value); i++ {
		c := value[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
