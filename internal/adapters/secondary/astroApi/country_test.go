package astroApi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveCountryCode(t *testing.T) {
	tests := []struct {
		name      string
		country   string
		wantCode  string
		wantExact bool
	}{
		{"exact match", "Turkey", "TR", true},
		{"alternative spelling", "Türkiye", "TR", true},
		{"case insensitive", "gErMaNy", "DE", true},
		{"surrounding spaces", "  France  ", "FR", true},
		{"usa abbreviation", "USA", "US", true},
		{"uk abbreviation", "UK", "GB", true},
		{"unknown falls back to first two letters", "Atlantis", "AT", false},
		{"fallback uses first word only", "Atlantis Major", "AT", false},
		{"digits fall back to US", "12 Islands", "US", false},
		{"one-letter first word falls back to US", "x y", "US", false},
		{"non-ascii letters fall back to US", "Ägypten-Fantasia", "US", false},
		{"single letter falls back to US", "X", "US", false},
		{"empty falls back to US", "", "US", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, exact := ResolveCountryCode(tt.country)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantExact, exact)
		})
	}
}
