// file: internals/helpers/slug_test.go
package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Demo School", "demo-school"},
		{"  Grade 10 -- Science  ", "grade-10-science"},
		{"Pendidikan Kejuruan #1", "pendidikan-kejuruan-1"},
		{"Éçôle Números", "ecole-numeros"},
		{"___", "item"},
		{"", "item"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in, 0), "input %q", tc.in)
	}
}

func TestSlugifyMaxLen(t *testing.T) {
	got := Slugify("alpha beta gamma", 10)
	assert.Equal(t, "alpha-beta", got)
	assert.LessOrEqual(t, len(got), 10)

	// cut point landing on a hyphen gets trimmed
	assert.Equal(t, "alpha", Slugify("alpha beta", 6))
}
