package jwtmw

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractBearer(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
		wantOK bool
	}{
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi", true},
		{"no header", "", "", false},
		{"basic auth", "Basic dXNlcjpwYXNz", "", false},
		{"bearer lowercase", "bearer abc", "", false},
		{"no space after Bearer", "Bearerabc", "", false},
		{"empty token", "Bearer ", "", false},
		{"extra segment", "Bearer abc def", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractBearer(tt.header)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
