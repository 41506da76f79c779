package deed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"  JOHN DOE  ", "JOHN DOE"},
		{"john doe.", "JOHN DOE"},
		{"Smith, John", "SMITH JOHN"},
		{"a   b\t\nc", "A B C"},
		{"...", ""},
		{" . , ", ""},
		{"J.P. Morgan, Jr.", "JP MORGAN JR"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, NormalizeText(c.in), "input %q", c.in)
	}
}

func TestNormalizeTextIdempotent(t *testing.T) {
	inputs := []string{"", "  JOHN  DOE. ", "Smith, John", "already upper", "漢字 テスト。"}
	for _, in := range inputs {
		once := NormalizeText(in)
		assert.Equal(t, once, NormalizeText(once), "input %q", in)
	}
}

func TestNormalizeDate(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"   ", ""},
		{"09/24/2020", "09/24/2020"}, // pass-through
		{"2020-09-24", "09/24/2020"}, // ISO reorder
		{"44098", "09/24/2020"},      // spreadsheet serial
		{"44111", "10/07/2020"},
		{"1", "12/31/1899"},
		{"Sept 24, 2020", "Sept 24, 2020"}, // unrecognized: trimmed text
		{"  24/09/2020  ", "24/09/2020"},   // looks US-shaped, passes through
	}
	for _, c := range cases {
		assert.Equal(t, c.want, NormalizeDate(c.in), "input %q", c.in)
	}
}

func TestNormalizeDateIdempotent(t *testing.T) {
	inputs := []string{"", "44111", "2020-09-24", "09/24/2020", "garbage value"}
	for _, in := range inputs {
		once := NormalizeDate(in)
		assert.Equal(t, once, NormalizeDate(once), "input %q", in)
	}
}
