package interactive

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"syscall"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"golang.org/x/term"
	"stratclone-cli/internal/interfaces"
	"stratclone-cli/pkg/models"
)

// DefaultIdlePrompt is shown when no question is pending
const DefaultIdlePrompt = ">>> "

// NewConsole returns a survey-backed surface when stdin is a terminal and a
// plain line reader otherwise
func NewConsole(session *models.Session) interfaces.Surface {
	if term.IsTerminal(int(syscall.Stdin)) {
		return NewSurveyConsole(session)
	}
	return NewLineConsole(os.Stdin, os.Stdout, session)
}

// SurveyConsole implements the Surface interface with survey input prompts
type SurveyConsole struct {
	session     *models.Session
	ask         func(survey.Prompt, interface{}, ...survey.AskOpt) error
	defaultText string
	idlePrompt  string
}

// NewSurveyConsole creates a console prompting on the controlling terminal
func NewSurveyConsole(session *models.Session) *SurveyConsole {
	return &SurveyConsole{
		session:    session,
		ask:        survey.AskOne,
		idlePrompt: DefaultIdlePrompt,
	}
}

// SetDefaultText pre-fills the next prompt
func (c *SurveyConsole) SetDefaultText(text string) {
	c.defaultText = text
}

// ClearInput drops any pre-filled text
func (c *SurveyConsole) ClearInput() {
	c.defaultText = ""
}

// ChangePrompt sets the idle prompt
func (c *SurveyConsole) ChangePrompt(prompt string) {
	c.idlePrompt = prompt
}

// Prompt asks for one line of input. Ctrl+C and Ctrl+D request a stop. While
// the session hides input the accepted answer is not echoed back.
func (c *SurveyConsole) Prompt(ctx context.Context, prompt string) (string, error) {
	if ctx.Err() != nil {
		c.session.RequestStop()
		return "", nil
	}

	input := &survey.Input{
		Message: strings.TrimSpace(prompt),
		Default: c.defaultText,
	}
	c.defaultText = ""

	var question survey.Prompt = input
	if c.session.InputHidden() {
		question = &hiddenInput{Input: input}
	}

	var answer string
	if err := c.ask(question, &answer); err != nil {
		if errors.Is(err, terminal.InterruptErr) || errors.Is(err, io.EOF) {
			c.session.RequestStop()
			return "", nil
		}
		return "", err
	}

	return answer, nil
}

// hiddenInput is a survey input that leaves the accepted answer out of the
// summary line it prints
type hiddenInput struct {
	*survey.Input
}

func (h *hiddenInput) Cleanup(config *survey.PromptConfig, val interface{}) error {
	return h.Render(survey.InputQuestionTemplate, survey.InputTemplateData{
		Input:      *h.Input,
		ShowAnswer: true,
		Config:     config,
	})
}

type lineResult struct {
	text string
	err  error
}

// LineConsole implements the Surface interface over a plain reader, for
// piped or redirected stdin
type LineConsole struct {
	in      io.Reader
	out     io.Writer
	session *models.Session

	start sync.Once
	lines chan lineResult
	done  chan struct{}

	defaultText string
	idlePrompt  string
}

// NewLineConsole creates a console reading lines from in
func NewLineConsole(in io.Reader, out io.Writer, session *models.Session) *LineConsole {
	return &LineConsole{
		in:         in,
		out:        out,
		session:    session,
		lines:      make(chan lineResult, 1),
		done:       make(chan struct{}),
		idlePrompt: DefaultIdlePrompt,
	}
}

// SetDefaultText sets the answer used when an empty line is entered
func (c *LineConsole) SetDefaultText(text string) {
	c.defaultText = text
}

// ClearInput drops any pending default
func (c *LineConsole) ClearInput() {
	c.defaultText = ""
}

// ChangePrompt sets the idle prompt
func (c *LineConsole) ChangePrompt(prompt string) {
	c.idlePrompt = prompt
}

// Prompt writes the prompt and waits for the next line. End of input or a
// cancelled context requests a stop.
func (c *LineConsole) Prompt(ctx context.Context, prompt string) (string, error) {
	c.start.Do(func() {
		go c.readLines()
	})

	defaultText := c.defaultText
	c.defaultText = ""

	if defaultText != "" {
		fmt.Fprintf(c.out, "%s[%s] ", prompt, defaultText)
	} else {
		fmt.Fprint(c.out, prompt)
	}

	select {
	case <-ctx.Done():
		fmt.Fprintln(c.out)
		c.session.RequestStop()
		return "", nil

	case res, ok := <-c.lines:
		if !ok || errors.Is(res.err, io.EOF) {
			fmt.Fprintln(c.out)
			c.session.RequestStop()
			return "", nil
		}
		if res.err != nil {
			return "", res.err
		}

		text := res.text
		if strings.TrimSpace(text) == "" && defaultText != "" {
			text = defaultText
		}

		// Input is not echoed by the terminal when stdin is redirected
		if c.session.InputHidden() {
			fmt.Fprintln(c.out)
		} else {
			fmt.Fprintln(c.out, text)
		}

		return text, nil
	}
}

// readLines feeds c.lines until the reader fails, then closes it. The final
// error fits in the buffer so the goroutine exits without a pending Prompt.
func (c *LineConsole) readLines() {
	defer close(c.done)

	reader := bufio.NewReader(c.in)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			c.lines <- lineResult{text: strings.TrimRight(line, "\r\n")}
		}
		if err != nil {
			c.lines <- lineResult{err: err}
			close(c.lines)
			return
		}
	}
}
