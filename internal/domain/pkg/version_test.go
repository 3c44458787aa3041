package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{name: "equal", a: "1.0.0", b: "1.0.0", want: 0},
		{name: "case insensitive equal", a: "V1.0", b: "v1.0", want: 0},
		{name: "string order not numeric", a: "10.0", b: "2.0", want: -1},
		{name: "string order not numeric reversed", a: "2.0", b: "10.0", want: 1},
		{name: "uppercase folded before compare", a: "V10", b: "v9", want: -1},
		{name: "shorter prefix first", a: "1.0", b: "1.0.1", want: -1},
		{name: "longer after prefix", a: "1.0.1", b: "1.0", want: 1},
		{name: "empty before anything", a: "", b: "0", want: -1},
		{name: "both empty", a: "", b: "", want: 0},
		{name: "letters after digits", a: "1.0.a", b: "1.0.9", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompareVersions(tt.a, tt.b))
		})
	}
}

func TestVersionLess_LexicographicLiteral(t *testing.T) {
	assert.True(t, versionLess("10.0", "2.0"))
	assert.False(t, versionLess("2.0", "10.0"))
	assert.True(t, versionLess("V10", "v9"))
}

func TestOrderingDisagrees(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{name: "same order", a: "1.2.0", b: "1.3.0", want: false},
		{name: "double digit minor", a: "1.10.0", b: "1.9.0", want: true},
		{name: "double digit major", a: "10.0", b: "2.0", want: true},
		{name: "not semver", a: "build-7", b: "1.0.0", want: false},
		{name: "equal", a: "1.0.0", b: "1.0.0", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, orderingDisagrees(tt.a, tt.b))
		})
	}
}
