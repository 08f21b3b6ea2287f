package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"T-Shirts":         "t-shirts",
		"  Hosen & Röcke ": "hosen-r-cke",
		"Schuhe":           "schuhe",
		"--!!--":           "category",
		"":                 "category",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "input %q", in)
	}
}
