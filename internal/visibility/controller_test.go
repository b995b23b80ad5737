package visibility

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/docsite/internal/dom"
	"github.com/ziadkadry99/docsite/internal/kvstore"
)

const page = `<html><body>
<button data-framework-button-hide="react">hide</button>
<button data-framework-button-show="react">show</button>
<div data-framework-content="react">r1</div>
<div data-framework-content="react">r2</div>
<button data-framework-button-hide="svelte">hide</button>
<button data-framework-button-show="svelte">show</button>
<div data-framework-content="svelte">s1</div>
<div data-framework-content="svelte">s2</div>
<div data-framework-content="angular">a1</div>
<div data-framework-content="vue3">v1</div>
</body></html>`

type fixture struct {
	backend *kvstore.MemoryBackend
	adapter *kvstore.Adapter
	doc     *dom.Document
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	backend := kvstore.NewMemoryBackend()
	doc, err := dom.ParseString(page, dom.Attributes{})
	require.NoError(t, err)
	return &fixture{
		backend: backend,
		adapter: kvstore.NewAdapter(backend, "", nil),
		doc:     doc,
	}
}

func (f *fixture) controller() *Controller {
	return New(context.Background(), f.adapter, Options{}, f.doc)
}

func displays(els []dom.Element) []string {
	out := make([]string, len(els))
	for i, el := range els {
		out[i] = el.Style("display")
	}
	return out
}

func assertCategory(t *testing.T, doc *dom.Document, category string, hidden bool) {
	t.Helper()
	content, button := "block", "none"
	if hidden {
		content, button = "none", "block"
	}
	for _, d := range displays(doc.ContentElementsFor(category)) {
		assert.Equal(t, content, d, "content display for %s", category)
	}
	for _, d := range displays(doc.ShowButtonElementsFor(category)) {
		assert.Equal(t, button, d, "show button display for %s", category)
	}
}

func TestNewAppliesOnConstruction(t *testing.T) {
	f := newFixture(t)
	c := f.controller()

	assert.Empty(t, c.Hidden())
	assert.Equal(t, DefaultCategories, c.Visible())
	for _, cat := range DefaultCategories {
		assertCategory(t, f.doc, cat, false)
	}
}

func TestEndToEndScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.controller()

	require.NoError(t, c.Hide(ctx, "svelte"))
	assert.Equal(t, []string{"svelte"}, c.Hidden())
	assertCategory(t, f.doc, "svelte", true)
	for _, cat := range []string{"react", "angular", "vue3"} {
		assertCategory(t, f.doc, cat, false)
	}

	require.NoError(t, c.Hide(ctx, "svelte"))
	assert.Equal(t, []string{"svelte"}, c.Hidden())

	require.NoError(t, c.Show(ctx, "svelte"))
	assert.Empty(t, c.Hidden())
	for _, cat := range DefaultCategories {
		assertCategory(t, f.doc, cat, false)
	}
}

func TestHideIsIdempotent(t *testing.T) {
	ctx := context.Background()
	for _, cat := range DefaultCategories {
		f := newFixture(t)
		once := f.controller()
		require.NoError(t, once.Hide(ctx, cat))

		g := newFixture(t)
		twice := g.controller()
		require.NoError(t, twice.Hide(ctx, cat))
		require.NoError(t, twice.Hide(ctx, cat))

		assert.Equal(t, once.Hidden(), twice.Hidden())
		raw1, _ := f.adapter.GetRaw(ctx, DefaultKey)
		raw2, _ := g.adapter.GetRaw(ctx, DefaultKey)
		assert.Equal(t, raw1, raw2)
	}
}

func TestShowAfterHideRestores(t *testing.T) {
	ctx := context.Background()
	for _, cat := range DefaultCategories {
		f := newFixture(t)
		c := f.controller()
		require.NoError(t, c.Hide(ctx, cat))
		require.True(t, c.IsHidden(cat))

		require.NoError(t, c.Show(ctx, cat))
		assert.False(t, c.IsHidden(cat))
		assert.Contains(t, c.Visible(), cat)
		assertCategory(t, f.doc, cat, false)
	}
}

func TestShowVisibleIsNoop(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.controller()

	require.NoError(t, c.Show(ctx, "react"))
	assert.Empty(t, c.Hidden())
	_, stored := f.adapter.GetRaw(ctx, DefaultKey)
	assert.False(t, stored, "showing a visible category should not write")
}

func TestPersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.controller().Hide(ctx, "react"))

	// A fresh page load against the same storage.
	doc, err := dom.ParseString(page, dom.Attributes{})
	require.NoError(t, err)
	fresh := New(ctx, kvstore.NewAdapter(f.backend, "", nil), Options{}, doc)

	assert.True(t, fresh.IsHidden("react"))
	assertCategory(t, doc, "react", true)
}

func TestCorruptStorageYieldsEmptySet(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.adapter.SetRaw(ctx, DefaultKey, "not json"))

	c := f.controller()
	assert.Empty(t, c.Hidden())
	for _, cat := range DefaultCategories {
		assertCategory(t, f.doc, cat, false)
	}

	// The next write replaces the corrupt value.
	require.NoError(t, c.Hide(ctx, "vue3"))
	raw, _ := f.adapter.GetRaw(ctx, DefaultKey)
	assert.Equal(t, `["vue3"]`, raw)
}

func TestStaleStoredCategoryIsHarmless(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.adapter.SetRaw(ctx, DefaultKey, `["ember","angular"]`))

	c := f.controller()
	assert.Equal(t, []string{"ember", "angular"}, c.Hidden())
	assert.Equal(t, []string{"react", "svelte", "vue3"}, c.Visible())
	assertCategory(t, f.doc, "angular", true)
	assertCategory(t, f.doc, "react", false)

	require.NoError(t, c.Show(ctx, "ember"))
	assert.Equal(t, []string{"angular"}, c.Hidden())
}

func TestHideButtonsUntouched(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.controller()
	require.NoError(t, c.Hide(ctx, "react"))

	for _, d := range displays(f.doc.HideButtonElementsFor("react")) {
		assert.Equal(t, "", d)
	}
}

func TestMissingTargetsAreNoop(t *testing.T) {
	ctx := context.Background()
	c := New(ctx, kvstore.NewAdapter(kvstore.NewMemoryBackend(), "", nil), Options{
		Categories: []string{"go", "rust"},
	}, nil)

	require.NoError(t, c.Hide(ctx, "go"))
	assert.Equal(t, []string{"go"}, c.Hidden())
	assert.Equal(t, []string{"rust"}, c.Visible())
}

func TestBindReappliesToNewPage(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.controller()
	require.NoError(t, c.Hide(ctx, "svelte"))

	next, err := dom.ParseString(page, dom.Attributes{})
	require.NoError(t, err)
	c.Bind(next)
	assertCategory(t, next, "svelte", true)
}

func TestCustomKeyAndCategories(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := New(ctx, f.adapter, Options{Key: "langs", Categories: []string{"go", "python"}}, f.doc)

	require.NoError(t, c.Hide(ctx, "python"))
	raw, ok := f.adapter.GetRaw(ctx, "langs")
	require.True(t, ok)
	assert.Equal(t, `["python"]`, raw)
	assert.Equal(t, []string{"go", "python"}, c.Categories())
}

func TestValidate(t *testing.T) {
	f := newFixture(t)
	c := f.controller()

	assert.NoError(t, c.Validate("react"))
	err := c.Validate("ember")
	assert.True(t, errors.Is(err, ErrUnknownCategory))
}

type failingSet struct{ *kvstore.MemoryBackend }

func (failingSet) Set(context.Context, string, string, string) error {
	return errors.New("storage unavailable")
}

func TestWriteFailureKeepsStateConsistent(t *testing.T) {
	ctx := context.Background()
	doc, err := dom.ParseString(page, dom.Attributes{})
	require.NoError(t, err)
	adapter := kvstore.NewAdapter(failingSet{kvstore.NewMemoryBackend()}, "", nil)
	c := New(ctx, adapter, Options{}, doc)

	err = c.Hide(ctx, "react")
	require.Error(t, err)
	assert.False(t, c.IsHidden("react"))
	assertCategory(t, doc, "react", false)
}

func TestResetShowsEverything(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.controller()
	require.NoError(t, c.Hide(ctx, "react"))
	require.NoError(t, c.Hide(ctx, "svelte"))

	require.NoError(t, c.Reset(ctx))
	assert.Empty(t, c.Hidden())
	for _, cat := range DefaultCategories {
		assertCategory(t, f.doc, cat, false)
	}
	_, ok := f.adapter.GetRaw(ctx, c.Key())
	assert.False(t, ok)
	assert.Equal(t, DefaultKey, c.Key())

	// A fresh controller on the same store starts empty.
	assert.Empty(t, f.controller().Hidden())
}
