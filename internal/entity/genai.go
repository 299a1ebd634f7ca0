package entity

// ExtractionKind selects which summary an extraction call produces.
type ExtractionKind string

const (
	ExtractionProblem  ExtractionKind = "problem"
	ExtractionSolution ExtractionKind = "solution"
)

// GenAIContent mirrors one content block of the generateContent wire format.
type GenAIContent struct {
	Role  string      `json:"role,omitempty"`
	Parts []GenAIPart `json:"parts"`
}

type GenAIPart struct {
	Text string `json:"text"`
}

type GenAIGenerationConfig struct {
	ResponseMIMEType string   `json:"responseMimeType,omitempty"`
	Temperature      *float64 `json:"temperature,omitempty"`
}

type GenAIGenerateRequest struct {
	SystemInstruction *GenAIContent          `json:"systemInstruction,omitempty"`
	Contents          []GenAIContent         `json:"contents"`
	GenerationConfig  *GenAIGenerationConfig `json:"generationConfig,omitempty"`
}

type GenAICandidate struct {
	Content      GenAIContent `json:"content"`
	FinishReason string       `json:"finishReason,omitempty"`
}

type GenAIGenerateResponse struct {
	Candidates []GenAICandidate `json:"candidates"`
}

// Text returns the first candidate's text, or "" when the model produced no
// usable text (filtered or empty response). Callers decide how an empty
// reply surfaces to the user.
func (r *GenAIGenerateResponse) Text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	parts := r.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return ""
	}
	return parts[0].Text
}

// ProblemExtraction is the schema-constrained extraction payload for the
// problem kind; SolutionExtraction likewise for the solution kind. A
// well-formed response that violates these shapes is a generation failure.
type ProblemExtraction struct {
	ProblemStatement string `json:"problem_statement"`
}

type SolutionExtraction struct {
	SolutionStatement string `json:"solution_statement"`
}
