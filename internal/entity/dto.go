package entity

// SessionDTO is the wire representation of an ideation session.
type SessionDTO struct {
	SessionID    string        `json:"session_id"`
	State        SessionState  `json:"state"`
	Conversation []ChatMessage `json:"conversation"`
	Form         IdeationForm  `json:"form"`
}

type SendMessageRequest struct {
	Message string `json:"message"`
}

// UpdateFormRequest carries direct user edits. Nil fields are untouched;
// FormNumber and Date are display-only and not editable.
type UpdateFormRequest struct {
	TargetPersona     *string `json:"target_persona,omitempty"`
	BusinessSponsor   *string `json:"business_sponsor,omitempty"`
	Originator        *string `json:"originator,omitempty"`
	DascApproval      *string `json:"dasc_approval,omitempty"`
	ProblemStatement  *string `json:"problem_statement,omitempty"`
	SolutionStatement *string `json:"solution_statement,omitempty"`
}

type SaveFormResponse struct {
	FormID  string `json:"form_id"`
	Message string `json:"message"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type RegisterResult struct {
	Status    RegistrationStatus `json:"status"`
	AccountID string             `json:"account_id"`
	ProfileID string             `json:"profile_id,omitempty"`
	Message   string             `json:"message"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInResult struct {
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
	IDToken   string `json:"id_token"`
	ExpiresIn string `json:"expires_in,omitempty"`
}

// ErrorResponse is the error body every handler writes.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}
