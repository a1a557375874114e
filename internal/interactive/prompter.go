package interactive

import (
	"context"
	"fmt"

	"stratclone-cli/internal/interfaces"
	"stratclone-cli/pkg/models"
)

// RetryNotice follows every rejected answer
const RetryNotice = "Invalid input, please try again."

// Prompter handles interactive user input collection
type Prompter struct {
	surface  interfaces.Surface
	notifier interfaces.Notifier
	session  *models.Session
}

// NewPrompter creates a new interactive prompter
func NewPrompter(surface interfaces.Surface, notifier interfaces.Notifier, session *models.Session) *Prompter {
	return &Prompter{
		surface:  surface,
		notifier: notifier,
		session:  session,
	}
}

// Ask obtains an answer for q, re-prompting until it parses and validates or
// the user cancels. A non-nil input is used as the first answer instead of
// prompting. On cancellation q.Value stays nil and the session's stop flag is
// left set for the caller to observe.
func Ask[T any](ctx context.Context, p *Prompter, q *models.Question[T], input *string) error {
	for {
		var raw string

		if input == nil {
			p.surface.SetDefaultText(q.DefaultText())

			answer, err := p.surface.Prompt(ctx, q.Prompt)
			if p.stopped(ctx) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to prompt for %s: %w", q.Key, err)
			}
			raw = answer
		} else {
			raw = *input
			input = nil
			if p.stopped(ctx) {
				return nil
			}
		}

		if err := accept(q, raw); err != nil {
			q.Reset()
			p.notifier.Notify(err.Error())
			p.notifier.Notify(RetryNotice)
			continue
		}

		return nil
	}
}

// accept coerces and validates raw, setting q.Value only when both pass
func accept[T any](q *models.Question[T], raw string) error {
	value, err := q.Parse(raw)
	if err != nil {
		return err
	}

	if q.Validate != nil {
		if err := q.Validate(raw); err != nil {
			return err
		}
	}

	q.Value = &value
	return nil
}

// stopped polls for cancellation after a suspension point
func (p *Prompter) stopped(ctx context.Context) bool {
	if ctx.Err() != nil {
		p.session.RequestStop()
	}
	return p.session.StopRequested()
}
