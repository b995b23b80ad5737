// Package headings tracks which section heading the reader is looking at and
// turns it into a location fragment.
package headings

import (
	"sync"

	"github.com/ziadkadry99/docsite/internal/dom"
)

// ContainerID is the element whose headings are tracked.
const ContainerID = "main-content"

// Heading is an addressable section heading.
type Heading struct {
	ID    string `json:"id"`
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Fragment returns the location fragment for h.
func (h Heading) Fragment() string { return "#" + h.ID }

// Collect returns the h1 and h2 elements with an id inside #main-content, in
// document order.
func Collect(doc *dom.Document) []Heading {
	main := doc.ByID(ContainerID)
	if main == nil {
		return nil
	}
	var out []Heading
	for _, n := range main.FindAll(func(n *dom.Node) bool {
		return (n.Tag() == "h1" || n.Tag() == "h2") && n.ID() != ""
	}) {
		level := 1
		if n.Tag() == "h2" {
			level = 2
		}
		out = append(out, Heading{ID: n.ID(), Level: level, Text: n.Text()})
	}
	return out
}

// Entry is one visibility change for a heading.
type Entry struct {
	ID           string `json:"id"`
	Intersecting bool   `json:"intersecting"`
}

// Observer turns heading visibility changes into location updates. Every
// intersecting entry pushes its fragment to OnLocation, even when the heading
// was already in view.
type Observer struct {
	OnLocation func(fragment string)

	mu       sync.Mutex
	fragment string
}

// NewObserver returns an Observer calling onLocation, which may be nil.
func NewObserver(onLocation func(string)) *Observer {
	return &Observer{OnLocation: onLocation}
}

// Observe records a batch of entries in order.
func (o *Observer) Observe(entries []Entry) {
	for _, e := range entries {
		if !e.Intersecting || e.ID == "" {
			continue
		}
		fragment := "#" + e.ID

		o.mu.Lock()
		o.fragment = fragment
		cb := o.OnLocation
		o.mu.Unlock()

		if cb != nil {
			cb(fragment)
		}
	}
}

// Fragment returns the last fragment pushed, or "".
func (o *Observer) Fragment() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.fragment
}
