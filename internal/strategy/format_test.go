package strategy

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestFormatFileName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"timestamp only", "conf_2024-01-01:00:00:00", "conf_2024-01-01:00:00:00.yml"},
		{"with note", "conf_2024-01-01:00:00:00__test", "conf_2024-01-01:00:00:00__test.yml"},
		{"keeps yml", "conf_old.yml", "conf_old.yml"},
		{"keeps yaml", "conf_old.yaml", "conf_old.yaml"},
		{"spaces become underscores", "conf_ts__my note", "conf_ts__my_note.yml"},
		{"path separators", "conf_ts__../../etc/passwd", "conf_ts__.._.._etc_passwd.yml"},
		{"drops invalid characters", "conf_ts__a*b?c", "conf_ts__abc.yml"},
		{"trims dots", "conf_ts__v1.", "conf_ts__v1.yml"},
		{"other extension kept and yml appended", "conf_ts__v1.txt", "conf_ts__v1.txt.yml"},
		{"surrounding whitespace", "  conf_ts  ", "conf_ts.yml"},
		{"nothing usable", " ... ", "conf.yml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatFileName(tt.input); got != tt.want {
				t.Errorf("FormatFileName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"test", "test"},
		{" my note ", "my_note"},
		{"é", ""},
		{"***", ""},
		{"..", ""},
		{"v1.2", "v1.2"},
	}

	for _, tt := range tests {
		if got := Sanitize(tt.input); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFormatFileNameProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("result never contains a path separator", prop.ForAll(
		func(s string) bool {
			name := FormatFileName(s)
			return !strings.ContainsAny(name, `/\`)
		},
		gen.AnyString(),
	))

	properties.Property("result always has a config extension", prop.ForAll(
		func(s string) bool {
			return HasConfigExtension(FormatFileName(s))
		},
		gen.AnyString(),
	))

	properties.Property("formatting is idempotent", prop.ForAll(
		func(s string) bool {
			once := FormatFileName(s)
			return FormatFileName(once) == once
		},
		gen.AnyString(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
