package money_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"smeta-backend/internal/money"
)

// normalizeSpaces collapses the non-breaking group separators the Russian
// locale emits into plain spaces so the assertions stay readable.
func normalizeSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == ' ' {
			return ' '
		}
		return r
	}, s)
}

func TestFormatRub(t *testing.T) {
	assert.Equal(t, "1 404 ₽", normalizeSpaces(money.FormatRub(1404)))
	assert.Equal(t, "0 ₽", normalizeSpaces(money.FormatRub(0)))
	assert.Equal(t, "1 234 568 ₽", normalizeSpaces(money.FormatRub(1234567.6)))
}

func TestFormatRub_RoundsToWholeRubles(t *testing.T) {
	assert.Equal(t, "100 ₽", normalizeSpaces(money.FormatRub(99.5)))
}

func TestFormatRubExact(t *testing.T) {
	got := normalizeSpaces(money.FormatRubExact(1404.5))
	assert.Equal(t, "1 404,50 ₽", got)
}
