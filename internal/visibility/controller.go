// Package visibility keeps category-tagged page regions in step with the
// reader's persisted set of hidden categories.
package visibility

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/ziadkadry99/docsite/internal/dom"
	"github.com/ziadkadry99/docsite/internal/kvstore"
	"github.com/ziadkadry99/docsite/internal/prefs"
	"github.com/ziadkadry99/docsite/internal/sets"
)

// DefaultKey is the storage key holding the hidden categories.
const DefaultKey = "hidden_frameworks"

// DefaultCategories is the category universe used when none is configured.
var DefaultCategories = []string{"react", "svelte", "angular", "vue3"}

// ErrUnknownCategory is returned by Validate for names outside the universe.
var ErrUnknownCategory = errors.New("unknown category")

const (
	displayHidden  = "none"
	displayVisible = "block"
)

// Options configures a Controller.
type Options struct {
	Key        string
	Categories []string
	Logger     *zap.Logger
}

// Controller owns one persisted hidden set and applies it to a page.
//
// It is not safe for concurrent use. Build one per page render; two
// controllers on the same key each keep their own copy of the set.
type Controller struct {
	hidden     *prefs.PersistedSet
	categories []string
	query      dom.Query
	logger     *zap.Logger
}

// New loads the hidden set from adapter and applies it to q once.
func New(ctx context.Context, adapter *kvstore.Adapter, opts Options, q dom.Query) *Controller {
	if opts.Key == "" {
		opts.Key = DefaultKey
	}
	if len(opts.Categories) == 0 {
		opts.Categories = DefaultCategories
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if q == nil {
		q = dom.None
	}

	c := &Controller{
		hidden:     prefs.Load(ctx, adapter, opts.Key),
		categories: slices.Clone(opts.Categories),
		query:      q,
		logger:     opts.Logger,
	}
	c.ApplyAll()
	return c
}

// Key returns the storage key holding the hidden set.
func (c *Controller) Key() string { return c.hidden.Key() }

// Categories returns the category universe.
func (c *Controller) Categories() []string { return slices.Clone(c.categories) }

// Hidden returns the hidden categories in the order they were hidden.
func (c *Controller) Hidden() []string { return c.hidden.Values() }

// Visible returns the categories not hidden, in universe order.
func (c *Controller) Visible() []string {
	return sets.Difference(c.categories, c.hidden.Values())
}

// IsHidden reports whether category is in the hidden set.
func (c *Controller) IsHidden(category string) bool { return c.hidden.Contains(category) }

// Validate returns ErrUnknownCategory if category is not in the universe.
func (c *Controller) Validate(category string) error {
	if !slices.Contains(c.categories, category) {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	return nil
}

// Hide adds category to the hidden set and re-applies the page. Hiding an
// already hidden category only re-applies.
func (c *Controller) Hide(ctx context.Context, category string) error {
	var err error
	if !c.hidden.Contains(category) {
		err = c.hidden.Append(ctx, category)
	}
	c.ApplyAll()
	if err != nil {
		return fmt.Errorf("hiding %s: %w", category, err)
	}
	c.logger.Debug("category hidden", zap.String("category", category))
	return nil
}

// Show removes category from the hidden set and re-applies the page.
// Showing a visible category only re-applies.
func (c *Controller) Show(ctx context.Context, category string) error {
	var err error
	if c.hidden.Contains(category) {
		err = c.hidden.RemoveAt(ctx, c.hidden.IndexOf(category))
	}
	c.ApplyAll()
	if err != nil {
		return fmt.Errorf("showing %s: %w", category, err)
	}
	c.logger.Debug("category shown", zap.String("category", category))
	return nil
}

// Reset forgets the stored preference so every category is visible again,
// and re-applies the page.
func (c *Controller) Reset(ctx context.Context) error {
	err := c.hidden.Clear(ctx)
	c.ApplyAll()
	if err != nil {
		return fmt.Errorf("resetting: %w", err)
	}
	c.logger.Debug("preferences reset")
	return nil
}

// Bind points the controller at a different page and applies to it.
func (c *Controller) Bind(q dom.Query) {
	if q == nil {
		q = dom.None
	}
	c.query = q
	c.ApplyAll()
}

// ApplyAll recomputes every category against the page. Hidden categories
// get their content hidden and their show buttons displayed; everything in
// the symmetric difference of the hidden set and the universe gets the
// reverse.
func (c *Controller) ApplyAll() {
	hidden := c.hidden.Values()
	for _, category := range hidden {
		c.apply(category, displayHidden, displayVisible)
	}
	for _, category := range sets.SymmetricDiff(hidden, c.categories) {
		c.apply(category, displayVisible, displayHidden)
	}
}

func (c *Controller) apply(category, content, showButton string) {
	for _, el := range c.query.ContentElementsFor(category) {
		el.SetDisplay(content)
	}
	for _, el := range c.query.ShowButtonElementsFor(category) {
		el.SetDisplay(showButton)
	}
}
