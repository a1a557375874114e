package interactive

import (
	"fmt"
	"strings"

	"stratclone-cli/pkg/models"
)

const boolChoices = "('true', 'yes', 'y', 'false', 'no', 'n')"

// ParseBool converts a yes/no style answer to a bool
func ParseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "yes", "y":
		return true, nil
	case "false", "no", "n":
		return false, nil
	default:
		return false, fmt.Errorf("Invalid value, please choose value from %s", boolChoices)
	}
}

// ValidateBool rejects anything ParseBool cannot read
func ValidateBool(raw string) error {
	_, err := ParseBool(raw)
	return err
}

// FormatBool renders a bool the way users are asked to type it
func FormatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// NewYesNoQuestion builds a yes/no question with no default
func NewYesNoQuestion(key, prompt string) *models.Question[bool] {
	return &models.Question[bool]{
		Key:      key,
		Prompt:   prompt,
		Parse:    ParseBool,
		Validate: ValidateBool,
		Format:   FormatBool,
	}
}
