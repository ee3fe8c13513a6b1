package prompt

import (
	"fmt"
	"strings"
)

const (
	notSpecified     = "Not specified"
	noWorkContext    = "No additional context provided"
	workOutputLabel  = "Work Output (what they'll deliver/build):"
	workRoleLabel    = "Key Roles and Responsibilities:"
	workKnowledgeLbl = "Critical Knowledge Areas:"
	workCompetLabel  = "Essential Competencies:"
)

// JDFields is the raw input of the enhancement prompt.
type JDFields struct {
	Title       string
	Description string
	Department  string
	Level       string

	WorkOutput       string
	WorkRole         string
	WorkKnowledge    string
	WorkCompetencies string
}

// Shape is the interview structure requested from the model.
type Shape struct {
	Questions   int
	CriteriaMin int
	CriteriaMax int
}

var DefaultShape = Shape{Questions: 5, CriteriaMin: 8, CriteriaMax: 10}

// JDContent renders the job description block shared by both prompts.
func JDContent(title, description, department, level string) string {
	return fmt.Sprintf("TITLE: %s\nDEPARTMENT: %s\nLEVEL: %s\n\nDESCRIPTION:\n%s",
		title,
		orDefault(department),
		orDefault(level),
		description,
	)
}

// WorkContext renders the provided WORK fields as labelled paragraphs.
func WorkContext(f JDFields) string {
	parts := make([]string, 0, 4)
	add := func(label, value string) {
		if strings.TrimSpace(value) != "" {
			parts = append(parts, label+"\n"+value)
		}
	}
	add(workOutputLabel, f.WorkOutput)
	add(workRoleLabel, f.WorkRole)
	add(workKnowledgeLbl, f.WorkKnowledge)
	add(workCompetLabel, f.WorkCompetencies)
	if len(parts) == 0 {
		return noWorkContext
	}
	return strings.Join(parts, "\n\n")
}

func BuildEnhancementPrompt(f JDFields) (system, user string) {
	jdContent := JDContent(f.Title, f.Description, f.Department, f.Level)
	return enhancementSystemPrompt, fmt.Sprintf(enhancementTemplate, WorkContext(f), jdContent)
}

func BuildInterviewPrompt(jdContent string) (system, user string) {
	return BuildInterviewPromptWithShape(jdContent, DefaultShape)
}

func BuildInterviewPromptWithShape(jdContent string, shape Shape) (system, user string) {
	user = fmt.Sprintf(interviewTemplate,
		shape.Questions,
		jdContent,
		shape.Questions,
		shape.CriteriaMin, shape.CriteriaMax,
		shape.CriteriaMin, shape.CriteriaMax,
	)
	return interviewSystemPrompt, user
}

func orDefault(value string) string {
	if value == "" {
		return notSpecified
	}
	return value
}
