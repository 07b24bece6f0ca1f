package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "hello @bob", "hello @bob"},
		{"script", "<script>alert(1)</script>hi", "hi"},
		{"tags", "<b>bold</b> text", "bold text"},
		{"null bytes", "a\x00b", "ab"},
		{"whitespace", "  spaced  ", "spaced"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeText(tt.input))
		})
	}
}

func TestSanitizeSearch(t *testing.T) {
	assert.Equal(t, "ali", SanitizeSearch("  ali "))
	assert.Len(t, SanitizeSearch(strings.Repeat("x", 300)), 100)
}
