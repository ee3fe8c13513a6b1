package interviewvalidator

import (
	"fmt"

	interviewparser "techscreen-backend/lib/interview/parser"
)

type ErrorKind string

const (
	CountMismatch    ErrorKind = "count_mismatch"
	NumberingError   ErrorKind = "numbering_error"
	CriteriaCount    ErrorKind = "criteria_count"
	MissingText      ErrorKind = "missing_text"
	MissingCriterion ErrorKind = "missing_criterion"
)

// ValidationError describes the first structural violation found.
// Question and Criterion are 1-based, zero when not applicable.
type ValidationError struct {
	Kind      ErrorKind
	Question  int
	Criterion int
	Expected  string
	Actual    string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case CountMismatch:
		return fmt.Sprintf("Expected %s questions, got %s", e.Expected, e.Actual)
	case NumberingError:
		return fmt.Sprintf("Question numbering is incorrect. Expected %s, got %s", e.Expected, e.Actual)
	case CriteriaCount:
		return fmt.Sprintf("Question %d has %s criteria. Expected %s criteria.", e.Question, e.Actual, e.Expected)
	case MissingText:
		return fmt.Sprintf("Question %d is missing question text", e.Question)
	case MissingCriterion:
		return fmt.Sprintf("Question %d, Criterion %d is missing %s", e.Question, e.Criterion, e.Actual)
	}
	return fmt.Sprintf("interview structure is invalid: %s", e.Kind)
}

type Rules struct {
	Questions   int
	CriteriaMin int
	CriteriaMax int
}

var DefaultRules = Rules{Questions: 5, CriteriaMin: 8, CriteriaMax: 10}

type Provider interface {
	Validate(questions []interviewparser.ParsedQuestion) error
}

// WithDefaults replaces unset or inconsistent limits with DefaultRules.
func (r Rules) WithDefaults() Rules {
	if r.Questions <= 0 {
		r.Questions = DefaultRules.Questions
	}
	if r.CriteriaMin <= 0 || r.CriteriaMax < r.CriteriaMin {
		r.CriteriaMin = DefaultRules.CriteriaMin
		r.CriteriaMax = DefaultRules.CriteriaMax
	}
	return r
}

func NewValidator(rules Rules) Provider {
	return impl{rules: rules.WithDefaults()}
}

type impl struct {
	rules Rules
}

// Validate checks the default interview shape.
func Validate(questions []interviewparser.ParsedQuestion) error {
	return impl{rules: DefaultRules}.Validate(questions)
}

// Validate stops at the first violation: question count, then per question
// numbering, criteria count, question text and criterion fields.
func (i impl) Validate(questions []interviewparser.ParsedQuestion) error {
	if len(questions) != i.rules.Questions {
		return &ValidationError{
			Kind:     CountMismatch,
			Expected: fmt.Sprint(i.rules.Questions),
			Actual:   fmt.Sprint(len(questions)),
		}
	}
	for idx, q := range questions {
		number := idx + 1
		if q.Number != number {
			return &ValidationError{
				Kind:     NumberingError,
				Question: number,
				Expected: fmt.Sprint(number),
				Actual:   fmt.Sprint(q.Number),
			}
		}
		if len(q.Criteria) < i.rules.CriteriaMin || len(q.Criteria) > i.rules.CriteriaMax {
			return &ValidationError{
				Kind:     CriteriaCount,
				Question: number,
				Expected: fmt.Sprintf("%d-%d", i.rules.CriteriaMin, i.rules.CriteriaMax),
				Actual:   fmt.Sprint(len(q.Criteria)),
			}
		}
		if q.Text == "" {
			return &ValidationError{Kind: MissingText, Question: number}
		}
		for cIdx, c := range q.Criteria {
			missing := ""
			switch {
			case c.Name == "":
				missing = "name"
			case c.Description == "":
				missing = "description"
			}
			if missing != "" {
				return &ValidationError{
					Kind:      MissingCriterion,
					Question:  number,
					Criterion: cIdx + 1,
					Actual:    missing,
				}
			}
		}
	}
	return nil
}
