package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeHN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"123", "0000123"},
		{"0000123", "0000123"},
		{"  123 ", "0000123"},
		{"1234567", "1234567"},
		{"12345678", "12345678"},
		{"", "0000000"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeHN(tt.in), "input %q", tt.in)
	}
}

func TestNormalizeHNIdempotent(t *testing.T) {
	for _, hn := range []string{"1", "123", "0000123", " 42 ", "1234567", "99999999"} {
		once := NormalizeHN(hn)
		assert.Equal(t, once, NormalizeHN(once))
	}
}

func TestHNKey(t *testing.T) {
	assert.Equal(t, "123", HNKey("123"))
	assert.Equal(t, "123", HNKey("0000123"))
	assert.Equal(t, "123", HNKey(" 0000123 "))
	assert.Equal(t, "0", HNKey("0000000"))
	assert.Equal(t, "", HNKey(""))
}

func TestSameHN(t *testing.T) {
	assert.True(t, SameHN("123", "0000123"))
	assert.True(t, SameHN(" 123", "123 "))
	assert.False(t, SameHN("123", "1234"))
}

func TestMeasuredPEFR(t *testing.T) {
	v := Visit{PEFR: "450"}
	n, ok := v.MeasuredPEFR()
	assert.True(t, ok)
	assert.Equal(t, 450, n)

	for _, raw := range []string{"", "-", "abc"} {
		v := Visit{PEFR: raw}
		_, ok := v.MeasuredPEFR()
		assert.False(t, ok, "raw %q", raw)
	}
}
