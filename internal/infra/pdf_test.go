package infra

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateLabel(t *testing.T) {
	assert.Equal(t, "Cafe Latte", truncateLabel("Cafe Latte", 34))

	long := strings.Repeat("a", 40)
	got := truncateLabel(long, 34)
	assert.Equal(t, strings.Repeat("a", 33)+"…", got)

	// Multibyte titles must not be split mid-rune
	accented := strings.Repeat("é", 40)
	got = truncateLabel(accented, 34)
	assert.True(t, utf8.ValidString(got), "truncation split a rune: %q", got)
	assert.Equal(t, 34, utf8.RuneCountInString(got))
}
