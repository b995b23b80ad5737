package site

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageFilter(t *testing.T) {
	f := pageFilter{
		include: []string{"**/*.md"},
		exclude: []string{"**/_*.md", "drafts/**"},
	}

	tests := []struct {
		path string
		want bool
	}{
		{"index.md", true},
		{"guide/setup.md", true},
		{"guide/_partial.md", false},
		{"_hidden.md", false},
		{"drafts/wip.md", false},
		{"image.png", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, f.allows(tt.path), tt.path)
	}
}

func TestPageFilterEmptyInclude(t *testing.T) {
	f := pageFilter{}
	assert.True(t, f.allows("anything/at/all.md"))
}
