package models

// Question is a single prompt whose answer is coerced to T and checked by a
// validator before it is accepted.
type Question[T any] struct {
	Key    string
	Prompt string

	// Default is rendered into the input surface before prompting
	Default *T

	// Parse converts raw text to T and fails with a user-facing message
	Parse func(raw string) (T, error)

	// Validate checks the raw answer against the business rule. Nil means any
	// parsable answer is accepted.
	Validate func(raw string) error

	// Format renders a value back to text for the default
	Format func(T) string

	// Value is nil until an answer has passed Parse and Validate
	Value *T
}

// DefaultText returns the human-readable default, or "" when there is none
func (q *Question[T]) DefaultText() string {
	if q.Default == nil || q.Format == nil {
		return ""
	}
	return q.Format(*q.Default)
}

// Reset clears any accepted value
func (q *Question[T]) Reset() {
	q.Value = nil
}
