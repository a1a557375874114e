package interfaces

// PromptData contains the variables available to prompt templates
type PromptData struct {
	File      string `json:"file"`
	Timestamp string `json:"timestamp"`
}

// PromptRenderer turns configured prompt templates into prompt text
type PromptRenderer interface {
	// Render executes the named template text with the provided data
	Render(name, text string, data PromptData) (string, error)
}
