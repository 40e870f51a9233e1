package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEmail_NormalizesAndIsIdempotent(t *testing.T) {
	inputs := []string{"Ana@X.com", "bob.smith@mail.example.org", "c+tag@sub.domain.io"}
	for _, raw := range inputs {
		e, err := ParseEmail(raw)
		require.NoError(t, err, raw)

		again, err := ParseEmail(e.String())
		require.NoError(t, err, raw)
		assert.True(t, e.Equal(again), raw)
		assert.Equal(t, e.String(), again.String())
	}

	e, _ := ParseEmail("Ana@X.com")
	assert.Equal(t, "ana@x.com", e.String())
}

func TestParseEmail_Rejects(t *testing.T) {
	inputs := []string{"", "   ", "ana", "ana.x.com", "ana@x", "ana@@x.com", "a@b@c.com", "ana @x.com", "@x.com", "ana@.com.",
		"a@.b.c", "a@b..c", " ana@x.com ", "ana@x.com\n"}
	for _, raw := range inputs {
		_, err := ParseEmail(raw)
		require.Error(t, err, raw)
		assert.True(t, errors.Is(err, ErrInvalidInput), raw)
		assert.False(t, IsValidEmail(raw), raw)
	}
}

func TestEmail_EqualityByNormalizedValue(t *testing.T) {
	a, _ := ParseEmail("USER@Example.com")
	b, _ := ParseEmail("user@example.COM")
	assert.True(t, a.Equal(b))
	assert.False(t, Email{}.Equal(a))
	assert.True(t, Email{}.IsZero())
}
