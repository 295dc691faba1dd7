package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAuthEmail(t *testing.T) {
	assert.Equal(t, "cook@example.com", NormalizeAuthEmail("  Cook@Example.COM "))
	assert.Empty(t, NormalizeAuthEmail(""))
	assert.Empty(t, NormalizeAuthEmail("not-an-email"))
	assert.Empty(t, NormalizeAuthEmail("Cook <cook@example.com>"))
}

func TestValidatePasswordStrength(t *testing.T) {
	cases := map[string]bool{
		"StrongPass1":  true,
		"Short1a":      false,
		"alllower123":  false,
		"ALLUPPER123":  false,
		"NoDigitsHere": false,
		"mixed12Case":  true,
	}
	for password, strong := range cases {
		err := ValidatePasswordStrength(password)
		if strong {
			assert.NoError(t, err, password)
		} else {
			assert.ErrorIs(t, err, ErrWeakPassword, password)
		}
	}
}
