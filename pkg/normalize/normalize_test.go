package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentity(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"digits only", "900101145678", "900101145678"},
		{"dashed ic", "900101-14-5678", "900101145678"},
		{"letters and spaces", "IC 123 456", "123456"},
		{"no digits", "n/a", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Identity(tt.in))
		})
	}
}

func TestEmail(t *testing.T) {
	assert.Equal(t, "a@x.com", Email("  A@X.Com "))
	assert.Equal(t, "", Email("   "))
}

func TestPhone(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"leading zero stripped", "0123456789", "123456789"},
		{"formatted", "+60 12-345 6789", "60123456789"},
		{"all zeros", "000", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Phone(tt.in))
		})
	}
}

func TestPhoneDisplay(t *testing.T) {
	tests := []struct {
		name string
		in   string
		cc   string
		want string
	}{
		{"prefix added", "0123456789", "60", "60123456789"},
		{"already prefixed", "60123456789", "60", "60123456789"},
		{"empty stays empty", "", "60", ""},
		{"no bare country code", "000", "60", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PhoneDisplay(tt.in, tt.cc))
		})
	}
}

// Applying a normalizer to its own output must be a no-op.
func TestIdempotence(t *testing.T) {
	inputs := []string{"900101-14-5678", "  A@X.Com ", "0123456789", "", "n/a"}

	for _, in := range inputs {
		assert.Equal(t, Identity(in), Identity(Identity(in)))
		assert.Equal(t, Email(in), Email(Email(in)))
		assert.Equal(t, Phone(in), Phone(Phone(in)))
	}
}

func TestPresent(t *testing.T) {
	assert.True(t, Present("x"))
	assert.False(t, Present(""))
	assert.False(t, Present("  \t"))
}
