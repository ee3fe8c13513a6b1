package xlsexport

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	interviewapimodels "techscreen-backend/models/api/interview"
)

const summarySheet = "Summary"

type Provider interface {
	ExportInterview(view interviewapimodels.InterviewView) (*bytes.Buffer, error)
}

func NewHandler() Provider {
	return impl{}
}

type impl struct{}

var criteriaHeaders = []string{"#", "Criterion", "Description", "Checked"}

// ExportInterview builds a scoring workbook: a summary sheet and one sheet per question.
func (i impl) ExportInterview(view interviewapimodels.InterviewView) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("failed to close xlsx file")
		}
	}()
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, errors.Wrap(err, "rename summary sheet")
	}
	if err := writeSummary(f, view); err != nil {
		return nil, errors.Wrap(err, "write interview summary to xlsx")
	}
	for _, q := range view.Questions {
		if err := writeQuestion(f, q); err != nil {
			return nil, errors.Wrapf(err, "write question %d to xlsx", q.QuestionNumber)
		}
	}
	return f.WriteToBuffer()
}

func QuestionSheetName(number int) string {
	return fmt.Sprintf("Question %d", number)
}

func writeSummary(f *excelize.File, view interviewapimodels.InterviewView) error {
	rows := []struct {
		label string
		value interface{}
	}{
		{"Interview", view.InterviewName},
		{"Requisition", view.ReqID},
		{"Version", view.Version},
		{"Status", string(view.Status)},
		{"Created", view.CreatedAt.Format("2006-01-02 15:04")},
		{"Questions", len(view.Questions)},
	}
	for idx, r := range rows {
		if err := writeLabel(f, summarySheet, idx+1, r.label, r.value); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(summarySheet, "A", "A", 16); err != nil {
		return err
	}
	return f.SetColWidth(summarySheet, "B", "B", 60)
}

func writeQuestion(f *excelize.File, q interviewapimodels.QuestionView) error {
	sheet := QuestionSheetName(q.QuestionNumber)
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := writeLabel(f, sheet, 1, "Question", q.QuestionText); err != nil {
		return err
	}
	if err := writeLabel(f, sheet, 2, "Expected answer", q.ExpectedAnswer); err != nil {
		return err
	}
	row, err := writeHeader(f, sheet, 3, criteriaHeaders)
	if err != nil {
		return err
	}
	if len(q.Criteria) > 0 {
		if err = applyDataCellStyle(f, sheet, 1, row+1, len(criteriaHeaders), row+len(q.Criteria)); err != nil {
			return err
		}
	}
	for idx, c := range q.Criteria {
		row++
		checked := "no"
		if c.IsChecked {
			checked = "yes"
		}
		for col, value := range []interface{}{idx + 1, c.Criterion, c.Description, checked} {
			if err = writeCell(f, sheet, col+1, row, value); err != nil {
				return err
			}
		}
	}
	for col, width := range map[string]float64{"A": 6, "B": 30, "C": 80, "D": 10} {
		if err = f.SetColWidth(sheet, col, col, width); err != nil {
			return err
		}
	}
	return nil
}
