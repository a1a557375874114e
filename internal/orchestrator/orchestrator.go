package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"stratclone-cli/internal/interactive"
	"stratclone-cli/internal/interfaces"
	"stratclone-cli/internal/observability"
	"stratclone-cli/internal/template"
	"stratclone-cli/pkg/models"
)

// Notices shown to the user
const (
	NoPreviousStrategyNotice = "No previous strategy found."
	CreatedNotice            = "Created new strategy file %s"
	CopyFailedNotice         = "Failed to create new strategy file %s."
	ActivationFailedNotice   = "Failed to activate strategy file %s."
	PersistFailedNotice      = "Failed to save %s as the previous strategy."
	PromptFailedNotice       = "Failed to read input."
	FileNameFailedNotice     = "Failed to choose a new strategy file name."
)

// Dependencies are the collaborators the workflow delegates to
type Dependencies struct {
	Session   *models.Session
	Surface   interfaces.Surface
	Output    interfaces.OutputHandler
	Store     interfaces.StrategyStore
	Activator interfaces.Activator
	Defaults  interfaces.DefaultStore
	Renderer  interfaces.PromptRenderer
}

// Result describes how a workflow ended
type Result struct {
	// File is the generated strategy file name, if one was chosen
	File      string
	Created   bool
	Cancelled bool
	Err       error
}

// Orchestrator runs the create-from-previous workflow
type Orchestrator struct {
	deps     Dependencies
	prompter *interactive.Prompter

	now             func() time.Time
	replicatePrompt string
	notePrompt      string
	answer          *string
	copyName        bool
}

// Option customizes an Orchestrator
type Option func(*Orchestrator)

// WithClock replaces time.Now for file name timestamps
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		o.now = now
	}
}

// WithPromptTemplates overrides the replicate and note prompt templates.
// Empty strings keep the defaults.
func WithPromptTemplates(replicate, note string) Option {
	return func(o *Orchestrator) {
		if replicate != "" {
			o.replicatePrompt = replicate
		}
		if note != "" {
			o.notePrompt = note
		}
	}
}

// WithAnswer pre-supplies the reply to the replicate question
func WithAnswer(answer string) Option {
	return func(o *Orchestrator) {
		o.answer = &answer
	}
}

// WithClipboard copies each created file name to the clipboard
func WithClipboard(enabled bool) Option {
	return func(o *Orchestrator) {
		o.copyName = enabled
	}
}

// New creates a new orchestrator over the given collaborators
func New(deps Dependencies, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		deps:            deps,
		prompter:        interactive.NewPrompter(deps.Surface, deps.Output, deps.Session),
		now:             time.Now,
		replicatePrompt: template.DefaultReplicatePrompt,
		notePrompt:      template.DefaultNotePrompt,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// CreateNewFromPrevious offers to clone the previous strategy file into a new
// uniquely named file, then activates it and records it as the new default.
// The workflow runs on its own goroutine; the returned channel yields exactly
// one Result and is then closed.
func (o *Orchestrator) CreateNewFromPrevious(ctx context.Context, previous string) <-chan Result {
	results := make(chan Result, 1)

	if previous == "" {
		o.deps.Output.Notify(NoPreviousStrategyNotice)
		results <- Result{}
		close(results)
		return results
	}

	// Take the display before returning so a second call is refused
	release, ok := o.deps.Session.TryAcquire()
	if !ok {
		results <- Result{Err: NewWorkflowActiveError()}
		close(results)
		return results
	}
	o.deps.Surface.ClearInput()

	go func() {
		defer close(results)
		results <- o.run(ctx, previous, release)
	}()

	return results
}

// run performs the workflow steps. Display flags are restored on every path.
func (o *Orchestrator) run(ctx context.Context, previous string, release func()) Result {
	ctx = observability.WithWorkflowID(ctx, uuid.NewString())
	logger := observability.LoggerFromContext(ctx).With("previous", previous)

	defer func() {
		o.deps.Surface.ChangePrompt(interactive.DefaultIdlePrompt)
		release()
	}()

	logger.Debug("workflow started")

	prompt, err := o.deps.Renderer.Render("replicate", o.replicatePrompt, interfaces.PromptData{File: previous})
	if err != nil {
		logger.Error("failed to render replicate prompt", "error", err)
		return Result{Err: NewConfigurationError("failed to render replicate prompt template", err)}
	}

	question := interactive.NewYesNoQuestion("previous_strategy_answer", prompt)
	if err := interactive.Ask(ctx, o.prompter, question, o.answer); err != nil {
		logger.Error("failed to read replicate answer", "error", err)
		o.deps.Output.Notify(PromptFailedNotice)
		return Result{Err: NewPromptError(err)}
	}

	if o.deps.Session.StopRequested() {
		o.deps.Session.ClearStop()
		logger.Info("workflow cancelled")
		return Result{Cancelled: true}
	}

	if !*question.Value {
		logger.Info("replication declined")
		return Result{}
	}

	name, err := o.nameGenerator(previous).Generate(ctx)
	if err != nil {
		logger.Error("failed to generate file name", "error", err)
		o.deps.Output.Notify(FileNameFailedNotice)
		return Result{Err: NewFileNameError(err)}
	}

	if o.deps.Session.StopRequested() {
		o.deps.Session.ClearStop()
		logger.Info("workflow cancelled")
		return Result{Cancelled: true}
	}

	logger = logger.With("file", name)

	if err := o.deps.Store.Copy(previous, name); err != nil {
		logger.Error("failed to copy strategy file", "error", err)
		o.deps.Output.Notify(fmt.Sprintf(CopyFailedNotice, name))
		return Result{File: name, Err: NewCopyError(previous, name, err)}
	}

	o.deps.Output.Notify(fmt.Sprintf(CreatedNotice, name))

	if o.copyName {
		if err := o.deps.Output.WriteToClipboard(name); err != nil {
			logger.Warn("failed to copy file name to clipboard", "error", err)
		}
	}

	if err := o.deps.Activator.Import(ctx, name); err != nil {
		logger.Error("failed to activate strategy file", "error", err)
		o.deps.Output.Notify(fmt.Sprintf(ActivationFailedNotice, name))
		return Result{File: name, Created: true, Err: NewActivationError(name, err)}
	}

	if err := o.deps.Defaults.SavePreviousStrategy(name); err != nil {
		logger.Error("failed to persist previous strategy", "error", err)
		o.deps.Output.Notify(fmt.Sprintf(PersistFailedNotice, name))
		return Result{File: name, Created: true, Err: NewPersistError(name, err)}
	}

	logger.Info("strategy file created")
	return Result{File: name, Created: true}
}

// nameGenerator builds a generator whose note prompt mentions previous
func (o *Orchestrator) nameGenerator(previous string) *interactive.NameGenerator {
	notePrompt := func(timestamp string) (string, error) {
		return o.deps.Renderer.Render("note", o.notePrompt, interfaces.PromptData{
			File:      previous,
			Timestamp: timestamp,
		})
	}

	return interactive.NewNameGenerator(o.prompter, o.deps.Store,
		interactive.WithClock(o.now),
		interactive.WithNotePrompt(notePrompt),
	)
}
