package interfaces

// Notifier delivers short user-visible notices
type Notifier interface {
	Notify(msg string)
}

// OutputHandler manages the destinations the workflow reports to
type OutputHandler interface {
	Notifier

	// WriteToClipboard copies content to the system clipboard
	WriteToClipboard(content string) error
}
