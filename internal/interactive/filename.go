package interactive

import (
	"context"
	"fmt"
	"time"

	"stratclone-cli/internal/interfaces"
	"stratclone-cli/internal/strategy"
)

// TimestampLayout renders as YYYY-MM-DD:HH:MM:SS
const TimestampLayout = "2006-01-02:15:04:05"

// NameGenerator derives strategy file names that do not collide with any
// file already in the store
type NameGenerator struct {
	prompter   *Prompter
	store      interfaces.StrategyStore
	format     func(string) string
	now        func() time.Time
	promptText func(timestamp string) (string, error)
}

// NameGeneratorOption customizes a NameGenerator
type NameGeneratorOption func(*NameGenerator)

// WithClock replaces time.Now
func WithClock(now func() time.Time) NameGeneratorOption {
	return func(g *NameGenerator) {
		g.now = now
	}
}

// WithNotePrompt replaces the text asking for the file name note
func WithNotePrompt(fn func(timestamp string) (string, error)) NameGeneratorOption {
	return func(g *NameGenerator) {
		g.promptText = fn
	}
}

// NewNameGenerator creates a generator checking names against store
func NewNameGenerator(p *Prompter, store interfaces.StrategyStore, opts ...NameGeneratorOption) *NameGenerator {
	g := &NameGenerator{
		prompter:   p,
		store:      store,
		format:     strategy.FormatFileName,
		now:        time.Now,
		promptText: DefaultNotePrompt,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// DefaultNotePrompt is the note question used when no template is configured
func DefaultNotePrompt(timestamp string) (string, error) {
	return fmt.Sprintf("Add a note to append to the back of the filename (e.g conf_%s__<your_custom_note>.yml) >>> ", timestamp), nil
}

// Generate asks for an optional note and returns a normalized, unused file
// name. A taken name causes a fresh timestamp and note to be requested.
// Cancellation returns "" with a nil error.
//
// The existence check and the later copy are not atomic; two sessions in the
// same second with the same note can still race.
func (g *NameGenerator) Generate(ctx context.Context) (string, error) {
	for {
		timestamp := g.now().UTC().Format(TimestampLayout)

		text, err := g.promptText(timestamp)
		if err != nil {
			return "", fmt.Errorf("failed to render note prompt: %w", err)
		}

		note, err := g.prompter.surface.Prompt(ctx, text)
		if g.prompter.stopped(ctx) {
			return "", nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to prompt for note: %w", err)
		}

		name := g.format(Candidate(timestamp, note))

		exists, err := g.store.Exists(name)
		if err != nil {
			return "", err
		}
		if exists {
			g.prompter.notifier.Notify(fmt.Sprintf("%s file already exists, please enter a new name.", name))
			continue
		}

		return name, nil
	}
}

// Candidate builds the un-normalized file name for a timestamp and note. A
// note with nothing usable in it is left out.
func Candidate(timestamp, note string) string {
	note = strategy.Sanitize(note)
	if note == "" {
		return "conf_" + timestamp
	}
	return fmt.Sprintf("conf_%s__%s", timestamp, note)
}
