package template

import (
	"fmt"
	"strings"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"stratclone-cli/internal/interfaces"
)

// Default prompt templates
const (
	DefaultReplicatePrompt = "Do you want to replicate the previously stored config? [{{ .File }}] (Yes/No) >>> "
	DefaultNotePrompt      = "Add a note to append to the back of the filename (e.g conf_{{ .Timestamp }}__<your_custom_note>.yml) >>> "
)

// Processor implements the PromptRenderer interface
type Processor struct {
	mu    sync.Mutex
	cache map[string]*template.Template
}

// NewProcessor creates a new template processor
func NewProcessor() *Processor {
	return &Processor{
		cache: make(map[string]*template.Template),
	}
}

// Render executes the template text with the provided data. Parsed
// templates are cached by name and text.
func (p *Processor) Render(name, text string, data interfaces.PromptData) (string, error) {
	tmpl, err := p.lookup(name, text)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	return buf.String(), nil
}

// lookup returns the cached template for name and text, parsing it once
func (p *Processor) lookup(name, text string) (*template.Template, error) {
	key := name + "\x00" + text

	p.mu.Lock()
	defer p.mu.Unlock()

	if tmpl, ok := p.cache[key]; ok {
		return tmpl, nil
	}

	tmpl, err := parse(name, text)
	if err != nil {
		return nil, err
	}
	p.cache[key] = tmpl
	return tmpl, nil
}

// Check reports whether text parses as a prompt template
func Check(name, text string) error {
	_, err := parse(name, text)
	return err
}

func parse(name, text string) (*template.Template, error) {
	tmpl := template.New(name).Option("missingkey=error")

	// Register helper functions before parsing
	registerHelpersToTemplate(tmpl)

	tmpl, err := tmpl.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	return tmpl, nil
}

// registerHelpersToTemplate registers both sprig and custom helper functions to a template
func registerHelpersToTemplate(tmpl *template.Template) {
	funcMap := sprig.TxtFuncMap()

	funcMap["truncate"] = truncateFunc

	tmpl.Funcs(funcMap)
}

// truncateFunc truncates a string to a specified length
func truncateFunc(length int, text string) string {
	if len(text) <= length {
		return text
	}

	if length <= 3 {
		return text[:length]
	}

	return text[:length-3] + "..."
}
