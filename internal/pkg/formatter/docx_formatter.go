package formatter

import (
	"bytes"

	"github.com/unidoc/unioffice/document"

	"github.com/malithjkd/ai-project-manager/internal/entity"
)

const (
	docxContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFileExtension = ".docx"
)

type DOCXFormatter struct{}

func NewDOCXFormatter() *DOCXFormatter {
	return &DOCXFormatter{}
}

func (mf *DOCXFormatter) Format(form *entity.StoredIdeationForm) ([]byte, error) {
	doc := document.New()
	defer doc.Close()

	titlePar := doc.AddParagraph()
	titlePar.SetStyle("Heading1")
	titlePar.AddRun().AddText(baseTitle)

	doc.AddParagraph()

	for _, f := range formFields(form.Form) {
		labelPar := doc.AddParagraph()
		labelPar.SetStyle("Heading2")
		labelPar.AddRun().AddText(f.label)

		doc.AddParagraph().AddRun().AddText(f.value)
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (mf *DOCXFormatter) ContentType() string {
	return docxContentType
}

func (mf *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}
