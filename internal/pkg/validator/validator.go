package validator

import (
	"regexp"
	"strings"

	"github.com/malithjkd/ai-project-manager/internal/entity"
)

// FieldErrors maps a field name to a human-readable validation message.
// An empty map means the input passed.
type FieldErrors map[string]string

func (fe FieldErrors) Valid() bool {
	return len(fe) == 0
}

// Error carries field-level messages across the usecase boundary so
// handlers can render them without re-running validation.
type Error struct {
	Fields FieldErrors
}

func (e *Error) Error() string {
	return "validation failed"
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateRegister checks a registration payload. The same function runs in
// the HTTP handler and again in the usecase, so both layers reject identical
// inputs.
func ValidateRegister(req entity.RegisterRequest) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(req.Name) == "" {
		errs["name"] = "Name is required."
	}
	if !emailPattern.MatchString(req.Email) {
		errs["email"] = "Invalid email address."
	}
	if len(req.Password) < 6 {
		errs["password"] = "Password must be at least 6 characters long."
	}
	if !entity.IsValidUserRole(req.Role) {
		errs["role"] = "Please select a valid role."
	}

	return errs
}

// ValidateSignIn checks a sign-in payload. Password gets a presence check
// only; length rules belong to registration.
func ValidateSignIn(req entity.SignInRequest) FieldErrors {
	errs := FieldErrors{}

	if !emailPattern.MatchString(req.Email) {
		errs["email"] = "Invalid email address."
	}
	if req.Password == "" {
		errs["password"] = "Password is required."
	}

	return errs
}

// ValidateIdeationForm checks that every required field of a form is filled
// before it is persisted.
func ValidateIdeationForm(form entity.IdeationForm) FieldErrors {
	errs := FieldErrors{}

	required := map[string]string{
		"target_persona":     form.TargetPersona,
		"business_sponsor":   form.BusinessSponsor,
		"originator":         form.Originator,
		"problem_statement":  form.ProblemStatement,
		"solution_statement": form.SolutionStatement,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			errs[field] = "This field is required."
		}
	}

	return errs
}
