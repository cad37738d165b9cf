package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsWord(t *testing.T) {
	tests := []struct {
		text string
		word string
		want bool
	}{
		{"web developer", "web", true},
		{"website builder", "web", false},
		{"smart art", "art", true},
		{"smart", "art", false},
		{"web-development", "development", true},
		{"tamil nadu", "tamil nadu", true},
		{"", "web", false},
		{"react, node", "node", true},
	}

	for _, tt := range tests {
		t.Run(tt.text+"/"+tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, containsWord(tt.text, tt.word))
		})
	}
}

func TestTextMatchers(t *testing.T) {
	var s TextMatcher = SubstringMatcher{}
	var w TextMatcher = WordMatcher{}

	assert.True(t, s.Contains("ecommerce", "commerce"))
	assert.False(t, w.Contains("ecommerce", "commerce"))
	assert.False(t, s.Contains("anything", ""))
	assert.False(t, w.Contains("anything", ""))

	assert.True(t, s.Overlaps("development", "web-development"))
	assert.True(t, w.Overlaps("web-development", "development"))
	assert.False(t, s.Overlaps("design", "plumbing"))
}

func TestNewTextMatcher(t *testing.T) {
	assert.IsType(t, WordMatcher{}, NewTextMatcher("word"))
	assert.IsType(t, WordMatcher{}, NewTextMatcher("WORD"))
	assert.IsType(t, SubstringMatcher{}, NewTextMatcher("substring"))
	assert.IsType(t, SubstringMatcher{}, NewTextMatcher(""))
}
