package interactive

import (
	"context"
	"errors"

	"stratclone-cli/pkg/models"
)

// scriptedSurface replays answers in order. Running out of answers behaves
// like end of input.
type scriptedSurface struct {
	session *models.Session
	answers []string
	stopAt  int
	err     error

	prompts  []string
	defaults []string
}

func newScriptedSurface(session *models.Session, answers ...string) *scriptedSurface {
	return &scriptedSurface{
		session: session,
		answers: answers,
		stopAt:  -1,
	}
}

func (s *scriptedSurface) SetDefaultText(text string) {
	s.defaults = append(s.defaults, text)
}

func (s *scriptedSurface) Prompt(ctx context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	idx := len(s.prompts) - 1

	if s.err != nil {
		return "", s.err
	}
	if idx == s.stopAt || idx >= len(s.answers) {
		s.session.RequestStop()
		return "", nil
	}
	return s.answers[idx], nil
}

func (s *scriptedSurface) ClearInput() {}

func (s *scriptedSurface) ChangePrompt(prompt string) {}

type recordingNotifier struct {
	messages []string
}

func (n *recordingNotifier) Notify(msg string) {
	n.messages = append(n.messages, msg)
}

type failingStore struct{}

func (f failingStore) Exists(name string) (bool, error) {
	return false, errors.New("disk unavailable")
}

func (f failingStore) Copy(src, dst string) error {
	return errors.New("disk unavailable")
}

func (f failingStore) List() ([]string, error) {
	return nil, errors.New("disk unavailable")
}
