package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"mixed case with underscore and punctuation", "  Expand_Footprint!! ", "expand-footprint"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"already normal", "expand-footprint", "expand-footprint"},
		{"percent encoded", "expand%20footprint", "expand-footprint"},
		{"invalid percent escape kept as-is", "50%-off", "50-off"},
		{"underscore runs", "smart__vending___locker", "smart-vending-locker"},
		{"interior whitespace", "car \t wash", "car-wash"},
		{"leading and trailing hyphens", "--locker--", "locker"},
		{"unicode stripped", "café-machines", "caf-machines"},
		{"numbers kept", "divi-wl-2", "divi-wl-2"},
		{"only invalid chars", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"  Expand_Footprint!! ",
		"expand%20footprint",
		"--Smart  Locker--",
		"vending-machines",
		"",
		"%%%",
		"A_B_C",
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "normalize must be idempotent for %q", in)
	}
}

func TestDecode_InvalidEscapeReturnsInput(t *testing.T) {
	assert.Equal(t, "100%", Decode("100%"))
	assert.Equal(t, "a b", Decode("a%20b"))
}
