package shop

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Registration form error messages, matching the storefront UI copy.
const (
	MsgNameRequired     = "El nombre es requerido"
	MsgEmailInvalid     = "Email inválido"
	MsgPasswordTooShort = "Mínimo 6 caracteres"
	MsgPasswordMismatch = "Las contraseñas no coinciden"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidationErrors maps form fields to their error messages. Produced
// locally, before any network call.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, v[field]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// validateRegistration checks the registration form fields. An empty result
// means the form is valid.
func validateRegistration(name, email, password, confirmPassword string) ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(name) == "" {
		errs["name"] = MsgNameRequired
	}
	if strings.TrimSpace(email) == "" || !emailPattern.MatchString(email) {
		errs["email"] = MsgEmailInvalid
	}
	if len(password) < 6 {
		errs["password"] = MsgPasswordTooShort
	}
	if password != confirmPassword {
		errs["confirm"] = MsgPasswordMismatch
	}
	return errs
}
