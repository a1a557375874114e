package models

// Request represents the state of a single stratclone invocation
type Request struct {
	ConfigPath    string
	StrategiesDir string
	Previous      string
	LogLevel      string
	CopyName      bool

	// Answer is a pre-supplied reply to the replicate question. Nil means the
	// user is prompted.
	Answer *string
}

// NewRequest creates a Request with no overrides
func NewRequest() *Request {
	return &Request{}
}
