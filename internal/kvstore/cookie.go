package kvstore

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// DefaultCookiePrefix is prepended to every key to form the cookie name.
const DefaultCookiePrefix = "docsite_"

// MaxCookieSize is the per-cookie limit browsers enforce on name plus value.
const MaxCookieSize = 4096

// ErrCookieTooLarge is returned by Set when the encoded entry would not fit
// in a single cookie.
var ErrCookieTooLarge = errors.New("cookie too large")

// CookieOptions controls the cookies a CookieBackend writes.
type CookieOptions struct {
	Prefix string
	Path   string
	MaxAge time.Duration
	Secure bool
}

func (o CookieOptions) withDefaults() CookieOptions {
	if o.Prefix == "" {
		o.Prefix = DefaultCookiePrefix
	}
	if o.Path == "" {
		o.Path = "/"
	}
	if o.MaxAge == 0 {
		o.MaxAge = 365 * 24 * time.Hour
	}
	return o
}

// CookieBackend stores entries in the reader's cookie jar. It belongs to a
// single request: reads come from the request cookies, writes go to the
// response as Set-Cookie headers. Writes are also remembered locally so a
// read later in the same request observes them.
//
// The jar is already partitioned per origin by the browser, so scope is
// ignored.
type CookieBackend struct {
	r    *http.Request
	w    http.ResponseWriter
	opts CookieOptions

	mu      sync.Mutex
	written map[string]*string // nil value marks a removal
}

// NewCookieBackend returns a backend reading from r and writing to w.
func NewCookieBackend(r *http.Request, w http.ResponseWriter, opts CookieOptions) *CookieBackend {
	return &CookieBackend{
		r:       r,
		w:       w,
		opts:    opts.withDefaults(),
		written: make(map[string]*string),
	}
}

// CookieName returns the cookie that holds key.
func (c *CookieBackend) CookieName(key string) string {
	return c.opts.Prefix + key
}

func (c *CookieBackend) Get(_ context.Context, _ string, key string) (string, bool, error) {
	c.mu.Lock()
	v, seen := c.written[key]
	c.mu.Unlock()
	if seen {
		if v == nil {
			return "", false, nil
		}
		return *v, true, nil
	}

	cookie, err := c.r.Cookie(c.CookieName(key))
	if err != nil {
		return "", false, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return "", false, fmt.Errorf("decoding cookie %s: %w", cookie.Name, err)
	}
	return string(raw), true, nil
}

func (c *CookieBackend) Set(_ context.Context, _ string, key, value string) error {
	name := c.CookieName(key)
	encoded := base64.RawURLEncoding.EncodeToString([]byte(value))
	if len(name)+len(encoded) > MaxCookieSize {
		return fmt.Errorf("%w: %s is %d bytes", ErrCookieTooLarge, name, len(name)+len(encoded))
	}
	http.SetCookie(c.w, &http.Cookie{
		Name:     name,
		Value:    encoded,
		Path:     c.opts.Path,
		MaxAge:   int(c.opts.MaxAge / time.Second),
		Secure:   c.opts.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	c.mu.Lock()
	c.written[key] = &value
	c.mu.Unlock()
	return nil
}

func (c *CookieBackend) Remove(_ context.Context, _ string, key string) error {
	http.SetCookie(c.w, &http.Cookie{
		Name:     c.CookieName(key),
		Value:    "",
		Path:     c.opts.Path,
		MaxAge:   -1,
		Secure:   c.opts.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	c.mu.Lock()
	c.written[key] = nil
	c.mu.Unlock()
	return nil
}
