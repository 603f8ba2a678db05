package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalName(t *testing.T) {
	t.Run("composes decomposed hangul", func(t *testing.T) {
		decomposed := "\u1100\u1161\u11ab"
		assert.Equal(t, "\uac04", CanonicalName(decomposed))
	})

	t.Run("keeps surrounding whitespace", func(t *testing.T) {
		assert.Equal(t, " Acme ", CanonicalName(" Acme "))
	})
}

func TestCleanName(t *testing.T) {
	assert.Equal(t, "Acme", CleanName("  Acme\t"))
	assert.Equal(t, "", CleanName("   "))
	assert.Equal(t, "acme", CleanName("acme"), "case is preserved")
}
