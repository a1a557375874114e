package strategy

import (
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultExtension is appended to names that carry no config extension
const DefaultExtension = ".yml"

var (
	separatorPattern   = regexp.MustCompile(`[\s/\\]+`)
	invalidCharPattern = regexp.MustCompile(`[^A-Za-z0-9_.:\-]`)
)

// Sanitize reduces raw to the characters allowed in a strategy file name.
// The result may be empty.
func Sanitize(raw string) string {
	name := strings.TrimSpace(raw)
	name = separatorPattern.ReplaceAllString(name, "_")
	name = invalidCharPattern.ReplaceAllString(name, "")

	// No hidden files and no ".." components
	return strings.Trim(name, ".")
}

// FormatFileName normalizes raw input into a strategy file name that is safe
// to create inside the strategies directory
func FormatFileName(raw string) string {
	name := Sanitize(raw)
	if name == "" {
		name = "conf"
	}

	if !HasConfigExtension(name) {
		name += DefaultExtension
	}

	return name
}

// HasConfigExtension reports whether name ends in .yml or .yaml
func HasConfigExtension(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yml", ".yaml":
		return true
	default:
		return false
	}
}
