package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	for i := 0; i < 100; i++ {
		token := New()
		assert.Len(t, token, 8)
		assert.True(t, Valid(token), "token %q", token)
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{"K4QZ71BX", true},
		{"ABCDEFGH", true},
		{"01234567", true},
		{"abcdefgh", false},
		{"K4QZ71B", false},
		{"K4QZ71BX9", false},
		{"K4QZ-1BX", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Valid(tt.token), "token %q", tt.token)
	}
}
