package interviewparser

import (
	"strconv"
	"strings"
)

const (
	headerPrefix         = "[Question "
	headerSeparator      = "]: "
	expectedAnswerPrefix = "Expected Answer: "
	fieldSeparator       = ": "
	rulePrefix           = "---"
)

type ParsedCriterion struct {
	Name        string `json:"criterion"`
	Description string `json:"description"`
}

type ParsedQuestion struct {
	Number         int               `json:"question_number"`
	Text           string            `json:"question_text"`
	ExpectedAnswer string            `json:"expected_answer"`
	Criteria       []ParsedCriterion `json:"criteria"`
}

// Parse splits a model reply into question segments in a single pass.
//
// A segment starts at a "[Question N]: text" line. Inside a segment an
// "Expected Answer: " line sets the subject area (the last one wins) and any
// other "name: description" line that does not start with "[" becomes a
// criterion. Lines before the first header are ignored. Parse never fails;
// a malformed reply yields a result that the validator rejects.
func Parse(text string) []ParsedQuestion {
	result := make([]ParsedQuestion, 0, 5)
	var current *ParsedQuestion

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if number, questionText, ok := parseHeader(line); ok {
			if current != nil {
				result = append(result, *current)
			}
			current = &ParsedQuestion{
				Number:   number,
				Text:     questionText,
				Criteria: []ParsedCriterion{},
			}
			continue
		}
		if current == nil {
			continue
		}
		if strings.HasPrefix(line, expectedAnswerPrefix) {
			current.ExpectedAnswer = strings.TrimSpace(strings.TrimPrefix(line, expectedAnswerPrefix))
			continue
		}
		if strings.HasPrefix(line, "[") {
			continue
		}
		name, description, found := strings.Cut(line, fieldSeparator)
		if !found {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" || strings.HasPrefix(name, rulePrefix) {
			continue
		}
		current.Criteria = append(current.Criteria, ParsedCriterion{
			Name:        name,
			Description: strings.TrimSpace(description),
		})
	}

	if current != nil {
		result = append(result, *current)
	}
	return result
}

// parseHeader recognises "[Question N]: text". The number is the last token
// before the first "]: "; a non numeric token means the line is no header.
func parseHeader(line string) (number int, text string, ok bool) {
	if !strings.HasPrefix(line, headerPrefix) {
		return 0, "", false
	}
	head, rest, found := strings.Cut(line, headerSeparator)
	if !found {
		return 0, "", false
	}
	tokens := strings.Fields(head)
	if len(tokens) == 0 {
		return 0, "", false
	}
	number, err := strconv.Atoi(tokens[len(tokens)-1])
	if err != nil {
		return 0, "", false
	}
	return number, strings.TrimSpace(rest), true
}
