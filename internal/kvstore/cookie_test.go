package kvstore

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCookieBackendReadsRequestCookie(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{
		Name:  "docsite_hidden_frameworks",
		Value: base64.RawURLEncoding.EncodeToString([]byte(`["react"]`)),
	})
	c := NewCookieBackend(req, httptest.NewRecorder(), CookieOptions{})

	v, ok, err := c.Get(context.Background(), "ignored", "hidden_frameworks")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["react"]`, v)
}

func TestCookieBackendMissingCookie(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	c := NewCookieBackend(req, httptest.NewRecorder(), CookieOptions{})

	_, ok, err := c.Get(context.Background(), "", "hidden_frameworks")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCookieBackendUndecodableCookie(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: "docsite_k", Value: "%%%"})
	c := NewCookieBackend(req, httptest.NewRecorder(), CookieOptions{})

	_, ok, err := c.Get(context.Background(), "", "k")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestCookieBackendSetWritesHeaderAndReadsBack(t *testing.T) {
	ctx := context.Background()
	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	c := NewCookieBackend(req, rec, CookieOptions{Prefix: "x_"})

	require.NoError(t, c.Set(ctx, "", "k", `["svelte"]`))

	v, ok, err := c.Get(ctx, "", "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["svelte"]`, v)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "x_k", cookies[0].Name)
	decoded, err := base64.RawURLEncoding.DecodeString(cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, `["svelte"]`, string(decoded))
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, "/", cookies[0].Path)
}

func TestCookieBackendRemoveExpiresCookie(t *testing.T) {
	ctx := context.Background()
	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{
		Name:  "docsite_k",
		Value: base64.RawURLEncoding.EncodeToString([]byte("v")),
	})
	rec := httptest.NewRecorder()
	c := NewCookieBackend(req, rec, CookieOptions{})

	require.NoError(t, c.Remove(ctx, "", "k"))

	_, ok, err := c.Get(ctx, "", "k")
	require.NoError(t, err)
	assert.False(t, ok, "removal should shadow the request cookie")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestCookieBackendRejectsOversizedValue(t *testing.T) {
	ctx := context.Background()
	rec := httptest.NewRecorder()
	c := NewCookieBackend(httptest.NewRequest("GET", "/", nil), rec, CookieOptions{})

	err := c.Set(ctx, "", "k", strings.Repeat("a", MaxCookieSize))
	require.ErrorIs(t, err, ErrCookieTooLarge)

	_, ok, err := c.Get(ctx, "", "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, rec.Result().Cookies())
}
