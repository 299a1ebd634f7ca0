package validator

import (
	"testing"

	"github.com/malithjkd/ai-project-manager/internal/entity"
)

func validRegisterRequest() entity.RegisterRequest {
	return entity.RegisterRequest{
		Name:     "Jordan Perera",
		Email:    "jordan@example.com",
		Password: "secret1",
		Role:     "Product owner",
	}
}

func TestValidateRegisterAccepts(t *testing.T) {
	errs := ValidateRegister(validRegisterRequest())
	if !errs.Valid() {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateRegisterRejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*entity.RegisterRequest)
		field   string
		message string
	}{
		{
			name:    "blank name",
			mutate:  func(r *entity.RegisterRequest) { r.Name = "   " },
			field:   "name",
			message: "Name is required.",
		},
		{
			name:    "missing at sign",
			mutate:  func(r *entity.RegisterRequest) { r.Email = "jordan.example.com" },
			field:   "email",
			message: "Invalid email address.",
		},
		{
			name:    "missing domain dot",
			mutate:  func(r *entity.RegisterRequest) { r.Email = "jordan@example" },
			field:   "email",
			message: "Invalid email address.",
		},
		{
			name:    "five character password",
			mutate:  func(r *entity.RegisterRequest) { r.Password = "abcde" },
			field:   "password",
			message: "Password must be at least 6 characters long.",
		},
		{
			name:    "unknown role",
			mutate:  func(r *entity.RegisterRequest) { r.Role = "CEO" },
			field:   "role",
			message: "Please select a valid role.",
		},
		{
			name:    "empty role",
			mutate:  func(r *entity.RegisterRequest) { r.Role = "" },
			field:   "role",
			message: "Please select a valid role.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegisterRequest()
			tt.mutate(&req)

			errs := ValidateRegister(req)
			if errs.Valid() {
				t.Fatal("expected validation to fail")
			}
			if got := errs[tt.field]; got != tt.message {
				t.Fatalf("field %q: got %q, want %q", tt.field, got, tt.message)
			}
		})
	}
}

func TestValidateRegisterPasswordBoundary(t *testing.T) {
	req := validRegisterRequest()
	req.Password = "abcdef"

	if errs := ValidateRegister(req); !errs.Valid() {
		t.Fatalf("six character password should pass, got %v", errs)
	}
}

func TestValidateSignIn(t *testing.T) {
	errs := ValidateSignIn(entity.SignInRequest{Email: "a@b.co", Password: "x"})
	if !errs.Valid() {
		t.Fatalf("expected no errors, got %v", errs)
	}

	errs = ValidateSignIn(entity.SignInRequest{Email: "not-an-email", Password: ""})
	if errs["email"] == "" || errs["password"] == "" {
		t.Fatalf("expected both fields flagged, got %v", errs)
	}
}

func TestValidateIdeationForm(t *testing.T) {
	form := entity.IdeationForm{
		TargetPersona:     "Retail banking customers",
		BusinessSponsor:   "Head of Digital",
		Originator:        "Jordan Perera",
		ProblemStatement:  "Onboarding takes three branch visits.",
		SolutionStatement: "A mobile self-service onboarding flow.",
	}
	if errs := ValidateIdeationForm(form); !errs.Valid() {
		t.Fatalf("expected no errors, got %v", errs)
	}

	form.ProblemStatement = ""
	form.Originator = "  "
	errs := ValidateIdeationForm(form)
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %v", errs)
	}
	if errs["problem_statement"] == "" || errs["originator"] == "" {
		t.Fatalf("expected problem_statement and originator flagged, got %v", errs)
	}
}
