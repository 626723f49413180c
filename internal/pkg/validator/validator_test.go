package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name  string `json:"name" validate:"required,max=10"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"omitempty,oneof=CLIENTE ADMIN"`
	Age   *int   `json:"edad" validate:"omitempty,gte=0"`
}

func TestValidate(t *testing.T) {
	v := New()
	negative := -1

	tests := []struct {
		name    string
		input   sample
		wantErr string
	}{
		{name: "valid", input: sample{Name: "Ana", Email: "ana@x.com"}},
		{name: "missing name", input: sample{Email: "ana@x.com"}, wantErr: "name is required"},
		{name: "bad email", input: sample{Name: "Ana", Email: "nope"}, wantErr: "email must be a valid email"},
		{name: "bad role", input: sample{Name: "Ana", Email: "ana@x.com", Role: "ROOT"}, wantErr: "role must be one of: CLIENTE ADMIN"},
		{name: "negative age", input: sample{Name: "Ana", Email: "ana@x.com", Age: &negative}, wantErr: "edad must be at least 0"},
		{name: "too long", input: sample{Name: "Anastasia-Beatriz", Email: "ana@x.com"}, wantErr: "name must be at most 10 characters"},
		{
			name:    "several",
			input:   sample{},
			wantErr: "name is required; email is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.input)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}
