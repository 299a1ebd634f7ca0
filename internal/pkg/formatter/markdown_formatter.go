package formatter

import (
	"bytes"
	"fmt"

	"github.com/malithjkd/ai-project-manager/internal/entity"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (mf *MarkdownFormatter) Format(form *entity.StoredIdeationForm) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n", baseTitle)

	for _, f := range formFields(form.Form) {
		switch f.label {
		case "Problem Statement", "Solution Statement":
			fmt.Fprintf(&buf, "## %s\n\n%s\n\n", f.label, f.value)
		default:
			fmt.Fprintf(&buf, "**%s:** %s\n\n", f.label, f.value)
		}
	}

	return buf.Bytes(), nil
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}
