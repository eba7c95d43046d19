package application

import (
	"fmt"
	"strconv"
	"strings"

	"docsorter/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// ValidateRuleField checks that a rule key or folder is non-empty and can be
// written to the rule file without being split on the field separator.
func ValidateRuleField(fieldName, value string) error {
	if err := ValidateRequired(fieldName, value); err != nil {
		return err
	}
	if strings.Contains(value, domain.RuleSeparator) {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s cannot contain %q", formatFieldName(fieldName), domain.RuleSeparator),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "sourceDir" -> "source directory")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"key":       "search key",
		"folder":    "destination folder",
		"sourceDir": "source directory",
		"outputDir": "output directory",
		"rulesPath": "rule file",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	return fieldName
}

// ParseChoice parses a 1-based menu selection and checks it against count.
// It returns the 0-based index.
func ParseChoice(input string, count int) (int, error) {
	input = strings.TrimSpace(input)
	n, err := strconv.Atoi(input)
	if err != nil {
		return 0, &InputError{Input: input, Reason: "enter a number"}
	}
	if n < 1 || n > count {
		return 0, &InputError{Input: input, Reason: fmt.Sprintf("choose between 1 and %d", count)}
	}
	return n - 1, nil
}
