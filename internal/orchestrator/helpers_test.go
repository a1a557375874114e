package orchestrator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spf13/afero"
	"stratclone-cli/internal/strategy"
	"stratclone-cli/internal/template"
	"stratclone-cli/pkg/models"
)

const previousContent = "strategy: pure_market_making\nexchange: binance\nbid_spread: 0.5\n"

var testTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// fakeSurface replays answers and records how the workflow drove it
type fakeSurface struct {
	t       *testing.T
	session *models.Session
	answers []string
	stopAt  int
	err     error

	// gate, when set, holds every prompt until it is closed
	gate chan struct{}

	prompts     []string
	clearInputs int
	idlePrompt  string
}

func (s *fakeSurface) SetDefaultText(text string) {}

func (s *fakeSurface) Prompt(ctx context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	idx := len(s.prompts) - 1

	if !s.session.InputHidden() || !s.session.PlaceholderMode() {
		s.t.Errorf("prompt %q shown without input suppression", prompt)
	}
	if s.gate != nil {
		<-s.gate
	}
	if s.err != nil {
		return "", s.err
	}
	if idx == s.stopAt || idx >= len(s.answers) {
		s.session.RequestStop()
		return "", nil
	}
	return s.answers[idx], nil
}

func (s *fakeSurface) ClearInput() {
	s.clearInputs++
}

func (s *fakeSurface) ChangePrompt(prompt string) {
	s.idlePrompt = prompt
}

type fakeOutput struct {
	notices      []string
	clipboard    []string
	clipboardErr error
}

func (o *fakeOutput) Notify(msg string) {
	o.notices = append(o.notices, msg)
}

func (o *fakeOutput) WriteToClipboard(content string) error {
	o.clipboard = append(o.clipboard, content)
	return o.clipboardErr
}

type fakeActivator struct {
	imported []string
	err      error
}

func (a *fakeActivator) Import(ctx context.Context, name string) error {
	a.imported = append(a.imported, name)
	return a.err
}

type fakeDefaults struct {
	saved []string
	err   error
}

func (d *fakeDefaults) SavePreviousStrategy(name string) error {
	d.saved = append(d.saved, name)
	return d.err
}

var errDiskFull = errors.New("disk full")

// fixture wires an orchestrator over an in-memory strategies directory
type fixture struct {
	fs        afero.Fs
	store     *strategy.Store
	session   *models.Session
	surface   *fakeSurface
	output    *fakeOutput
	activator *fakeActivator
	defaults  *fakeDefaults
}

func newFixture(t *testing.T, answers ...string) *fixture {
	t.Helper()

	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/strategies/conf_old.yml", []byte(previousContent), 0644); err != nil {
		t.Fatal(err)
	}

	session := models.NewSession()
	return &fixture{
		fs:        fs,
		store:     strategy.NewStore(fs, "/strategies"),
		session:   session,
		surface:   &fakeSurface{t: t, session: session, answers: answers, stopAt: -1},
		output:    &fakeOutput{},
		activator: &fakeActivator{},
		defaults:  &fakeDefaults{},
	}
}

func (f *fixture) orchestrator(opts ...Option) *Orchestrator {
	opts = append([]Option{WithClock(func() time.Time { return testTime })}, opts...)
	return New(Dependencies{
		Session:   f.session,
		Surface:   f.surface,
		Output:    f.output,
		Store:     f.store,
		Activator: f.activator,
		Defaults:  f.defaults,
		Renderer:  template.NewProcessor(),
	}, opts...)
}

func (f *fixture) files(t *testing.T) []string {
	t.Helper()
	names, err := f.store.List()
	if err != nil {
		t.Fatal(err)
	}
	return names
}

func (f *fixture) assertFlagsReset(t *testing.T) {
	t.Helper()
	if f.session.InputHidden() || f.session.PlaceholderMode() || f.session.StopRequested() {
		t.Errorf("flags not reset: hidden=%v placeholder=%v stop=%v",
			f.session.InputHidden(), f.session.PlaceholderMode(), f.session.StopRequested())
	}
	if f.surface.idlePrompt != ">>> " {
		t.Errorf("idle prompt = %q, want %q", f.surface.idlePrompt, ">>> ")
	}
}

func waitResult(t *testing.T, results <-chan Result) Result {
	t.Helper()
	select {
	case res, ok := <-results:
		if !ok {
			t.Fatal("result channel closed without a result")
		}
		if _, open := <-results; open {
			t.Fatal("result channel delivered more than one result")
		}
		return res
	case <-time.After(5 * time.Second):
		t.Fatal("workflow did not finish")
	}
	return Result{}
}
