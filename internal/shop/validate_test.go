package shop

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRegistration_Valid(t *testing.T) {
	errs := validateRegistration("Ana López", "ana@example.com", "secreto123", "secreto123")
	assert.Empty(t, errs)
}

func TestValidateRegistration_EmailFormats(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"ana@example.com", true},
		{"a.b+c@sub.dominio.ar", true},
		{"a@b.c", true},
		{"", false},
		{"sin-arroba.com", false},
		{"ana@sindominio", false},
		{"ana @example.com", false},
		{"ana@ example.com", false},
		{"@example.com", false},
		{"ana@", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			errs := validateRegistration("Ana", tt.email, "secreto123", "secreto123")
			if tt.valid {
				assert.NotContains(t, errs, "email")
			} else {
				assert.Equal(t, MsgEmailInvalid, errs["email"])
			}
		})
	}
}

func TestValidateRegistration_CollectsAllFailures(t *testing.T) {
	errs := validateRegistration("", "bad", "123", "456")

	assert.Len(t, errs, 4)
	assert.Equal(t, MsgNameRequired, errs["name"])
	assert.Equal(t, MsgEmailInvalid, errs["email"])
	assert.Equal(t, MsgPasswordTooShort, errs["password"])
	assert.Equal(t, MsgPasswordMismatch, errs["confirm"])
}

func TestValidateRegistration_PasswordBoundary(t *testing.T) {
	errs := validateRegistration("Ana", "ana@example.com", "123456", "123456")
	assert.NotContains(t, errs, "password")

	errs = validateRegistration("Ana", "ana@example.com", "12345", "12345")
	assert.Equal(t, MsgPasswordTooShort, errs["password"])
}

func TestValidationErrors_ErrorStringIsDeterministic(t *testing.T) {
	errs := ValidationErrors{"password": MsgPasswordTooShort, "email": MsgEmailInvalid}
	assert.Equal(t, "validation failed: email: Email inválido; password: Mínimo 6 caracteres", errs.Error())
}
