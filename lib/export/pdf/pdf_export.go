package pdfexport

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
	interviewapimodels "techscreen-backend/models/api/interview"
)

const (
	fontFamily = "Helvetica"
	lineHeight = 6.0
	checkBox   = "[ ]"
	checkedBox = "[x]"
)

// GenerateInterviewKit renders the interviewer kit: every question with its
// expected subject area and a checklist of evaluation criteria.
func GenerateInterviewKit(view interviewapimodels.InterviewView) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateInterviewKit panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(view.InterviewName, true)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(fontFamily, "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("%s v%d - page %d", tr(view.ReqID), view.Version, pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont(fontFamily, "B", 16)
	pdf.MultiCell(0, 8, tr(view.InterviewName), "", "L", false)
	pdf.SetFont(fontFamily, "", 10)
	pdf.MultiCell(0, lineHeight, tr(fmt.Sprintf("Requisition: %s   Status: %s   Version: %d", view.ReqID, view.Status, view.Version)), "", "L", false)
	pdf.Ln(4)

	for _, q := range view.Questions {
		writeQuestion(pdf, tr, q)
	}
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	buf := new(bytes.Buffer)
	if err = pdf.Output(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeQuestion(pdf *fpdf.Fpdf, tr func(string) string, q interviewapimodels.QuestionView) {
	pdf.SetFont(fontFamily, "B", 12)
	pdf.MultiCell(0, 7, tr(fmt.Sprintf("Question %d", q.QuestionNumber)), "", "L", false)
	pdf.SetFont(fontFamily, "", 11)
	pdf.MultiCell(0, lineHeight, tr(q.QuestionText), "", "L", false)
	if q.ExpectedAnswer != "" {
		pdf.SetFont(fontFamily, "I", 10)
		pdf.MultiCell(0, lineHeight, tr("Expected answer: "+q.ExpectedAnswer), "", "L", false)
	}
	pdf.Ln(1)
	for _, c := range q.Criteria {
		box := checkBox
		if c.IsChecked {
			box = checkedBox
		}
		pdf.SetFont(fontFamily, "B", 10)
		pdf.MultiCell(0, lineHeight, tr(fmt.Sprintf("%s %s", box, c.Criterion)), "", "L", false)
		pdf.SetFont(fontFamily, "", 10)
		pdf.SetX(pdf.GetX() + 8)
		pdf.MultiCell(0, lineHeight, tr(c.Description), "", "L", false)
	}
	pdf.Ln(4)
}
