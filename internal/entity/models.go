package entity

import (
	"fmt"
	"time"
)

type ChatRole string

const (
	RoleUser  ChatRole = "user"
	RoleModel ChatRole = "model"
)

func (r ChatRole) Validate() error {
	switch r {
	case RoleUser, RoleModel:
		return nil
	default:
		return fmt.Errorf("unknown chat role: %s", r)
	}
}

// ChatMessage is a single turn in an ideation conversation. Turns are
// immutable once appended; a conversation only grows by appending.
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// SessionState is the workflow state of one ideation session. A session
// accepts a new AI-invoking action only while Idle; anything attempted
// while a call is in flight is rejected, never queued.
type SessionState string

const (
	StateIdle               SessionState = "IDLE"
	StateAwaitingReply      SessionState = "AWAITING_REPLY"
	StateAwaitingExtraction SessionState = "AWAITING_EXTRACTION"
)

// UserRoles is the closed set of role labels a registering user may pick.
var UserRoles = []string{
	"Initiative Originator",
	"Product owner",
	"Benefit manager",
	"Benefit owner",
	"COE member",
}

func IsValidUserRole(role string) bool {
	for _, r := range UserRoles {
		if r == role {
			return true
		}
	}
	return false
}

// IdeationForm is the form a session builds up. FormNumber and Date are
// generated at session start and are display-only; the starred fields
// (TargetPersona, BusinessSponsor, Originator, ProblemStatement,
// SolutionStatement) must be non-empty before the form may be persisted.
type IdeationForm struct {
	FormNumber        string `json:"ideation_form_number"`
	Date              string `json:"date"`
	TargetPersona     string `json:"target_persona"`
	BusinessSponsor   string `json:"business_sponsor"`
	Originator        string `json:"originator"`
	DascApproval      string `json:"dasc_approval,omitempty"`
	ProblemStatement  string `json:"problem_statement"`
	SolutionStatement string `json:"solution_statement"`
}

// StoredIdeationForm is a persisted ideation form record.
type StoredIdeationForm struct {
	ID        string       `json:"id"`
	Form      IdeationForm `json:"form"`
	CreatedAt time.Time    `json:"created_at"`
}

// UserProfile is the profile document written after the identity provider
// has created the credential. It references the provider account by ID and
// never carries a password.
type UserProfile struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// ExportFormat selects the representation of an exported ideation form.
type ExportFormat string

const (
	FormatMarkdown ExportFormat = "markdown"
	FormatPDF      ExportFormat = "pdf"
	FormatDOCX     ExportFormat = "docx"
)

func (f ExportFormat) IsValid() bool {
	switch f {
	case FormatMarkdown, FormatPDF, FormatDOCX:
		return true
	default:
		return false
	}
}
