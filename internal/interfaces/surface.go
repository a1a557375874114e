package interfaces

import "context"

// Surface is the line-oriented input surface the workflow prompts through
type Surface interface {
	// SetDefaultText pre-fills the next prompt's input
	SetDefaultText(text string)

	// Prompt suspends until one line of text is entered. Cancellation is
	// reported through the session, not as an error.
	Prompt(ctx context.Context, prompt string) (string, error)

	// ClearInput discards any pending input text
	ClearInput()

	// ChangePrompt sets the idle prompt shown outside of a question
	ChangePrompt(prompt string)
}
