package orchestrator

import (
	"fmt"
	"io"
	"sync"

	"github.com/atotto/clipboard"
)

// OutputHandler implements the OutputHandler interface
type OutputHandler struct {
	mu sync.Mutex
	w  io.Writer
}

// NewOutputHandler creates a new output handler writing notices to w
func NewOutputHandler(w io.Writer) *OutputHandler {
	return &OutputHandler{w: w}
}

// Notify writes a single notice line
func (h *OutputHandler) Notify(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fmt.Fprintln(h.w, msg)
}

// WriteToClipboard copies content to the system clipboard
func (h *OutputHandler) WriteToClipboard(content string) error {
	return clipboard.WriteAll(content)
}
