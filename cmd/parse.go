package cmd

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	interviewparser "techscreen-backend/lib/interview/parser"
	interviewvalidator "techscreen-backend/lib/interview/validator"
)

type parseReport struct {
	Valid     bool                             `json:"valid"`
	Error     string                           `json:"error,omitempty"`
	Questions []interviewparser.ParsedQuestion `json:"questions"`
}

var parseCmd = &cobra.Command{
	Use:   "parse <file|->",
	Short: "Parse a saved model reply and check its structure",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(cmd, args[0])
		if err != nil {
			return err
		}
		questions, _ := cmd.Flags().GetInt("questions")
		criteriaMin, _ := cmd.Flags().GetInt("criteria-min")
		criteriaMax, _ := cmd.Flags().GetInt("criteria-max")

		report := buildParseReport(text, interviewvalidator.Rules{
			Questions:   questions,
			CriteriaMin: criteriaMin,
			CriteriaMax: criteriaMax,
		})
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err = enc.Encode(report); err != nil {
			return err
		}
		if !report.Valid {
			return errors.New(report.Error)
		}
		return nil
	},
}

func init() {
	parseCmd.Flags().Int("questions", interviewvalidator.DefaultRules.Questions, "Expected number of questions")
	parseCmd.Flags().Int("criteria-min", interviewvalidator.DefaultRules.CriteriaMin, "Minimum criteria per question")
	parseCmd.Flags().Int("criteria-max", interviewvalidator.DefaultRules.CriteriaMax, "Maximum criteria per question")
}

func buildParseReport(text string, rules interviewvalidator.Rules) parseReport {
	parsed := interviewparser.Parse(text)
	report := parseReport{Valid: true, Questions: parsed}
	if report.Questions == nil {
		report.Questions = []interviewparser.ParsedQuestion{}
	}
	if err := interviewvalidator.NewValidator(rules).Validate(parsed); err != nil {
		report.Valid = false
		report.Error = err.Error()
	}
	return report
}

func readInput(cmd *cobra.Command, name string) (string, error) {
	if name == "-" {
		raw, err := io.ReadAll(cmd.InOrStdin())
		return string(raw), err
	}
	raw, err := os.ReadFile(name)
	if err != nil {
		return "", errors.Wrapf(err, "read %s", name)
	}
	return string(raw), nil
}
