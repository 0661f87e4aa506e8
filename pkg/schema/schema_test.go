package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		want   Columns
	}{
		{
			name:   "all roles present",
			header: []string{"Name", "IC", "Email", "Mobile"},
			want:   Columns{Identity: "IC", Email: "Email", Phone: "Mobile"},
		},
		{
			name:   "rank order wins over header order",
			header: []string{"PhoneNumber", "Phone", "Mobile"},
			want:   Columns{Phone: "Mobile"},
		},
		{
			name:   "lower ranked aliases",
			header: []string{"Identification Number", "E-mail", "PhoneNumber"},
			want:   Columns{Identity: "Identification Number", Email: "E-mail", Phone: "PhoneNumber"},
		},
		{
			name:   "nothing recognized",
			header: []string{"Name", "Address", "Remarks"},
			want:   Columns{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.header))
		})
	}
}

func TestColumnsEmpty(t *testing.T) {
	assert.True(t, Columns{}.Empty())
	assert.False(t, Columns{Phone: "Mobile"}.Empty())
}
