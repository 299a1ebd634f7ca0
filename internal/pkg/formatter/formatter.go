package formatter

import (
	"fmt"

	"github.com/malithjkd/ai-project-manager/internal/entity"
)

const baseTitle = "Project Ideation Form"

type Formatter interface {
	Format(form *entity.StoredIdeationForm) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ExportFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

type field struct {
	label string
	value string
}

// formFields flattens a form into label/value pairs in display order.
func formFields(form entity.IdeationForm) []field {
	return []field{
		{"Ideation Form Number", form.FormNumber},
		{"Date", form.Date},
		{"Target Persona / Customer", form.TargetPersona},
		{"Business Sponsor", form.BusinessSponsor},
		{"Originator", form.Originator},
		{"DASC Approval", form.DascApproval},
		{"Problem Statement", form.ProblemStatement},
		{"Solution Statement", form.SolutionStatement},
	}
}
