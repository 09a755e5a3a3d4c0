package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripMarkup(t *testing.T) {
	cases := map[string]string{
		"plain":                                "plain",
		"<b>Bold</b> and <a href='x'>link</a>": "Bold and link",
		"<script>alert(1)</script>Soup":        "Soup",
		"  Fish &amp; chips <br/> ":            "Fish & chips",
	}
	for in, want := range cases {
		assert.Equal(t, want, StripMarkup(in), in)
	}
}
