package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Pad Thai":            "pad-thai",
		"  Tom Yum Soup  ":    "tom-yum-soup",
		"Chef's Special!":     "chefs-special",
		"Iced  -  Tea":        "iced-tea",
		"--Already-Slugged--": "already-slugged",
		"100% Fresh Juice":    "100-fresh-juice",
	}

	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}
}
