package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"stratclone-cli/internal/config"
	"stratclone-cli/internal/interactive"
	"stratclone-cli/internal/interfaces"
	"stratclone-cli/internal/observability"
	"stratclone-cli/internal/orchestrator"
	"stratclone-cli/internal/strategy"
	"stratclone-cli/internal/template"
	"stratclone-cli/pkg/models"
)

// environment holds the process-level resources a command runs against
type environment struct {
	fs         afero.Fs
	out        io.Writer
	logOut     io.Writer
	newSurface func(*models.Session) interfaces.Surface
}

func defaultEnvironment() environment {
	return environment{
		fs:         afero.NewOsFs(),
		out:        os.Stdout,
		logOut:     os.Stderr,
		newSurface: interactive.NewConsole,
	}
}

// Run executes the create-from-previous workflow for the configured previous
// strategy. A cancelled or declined workflow is not an error.
func Run(ctx context.Context, request *models.Request) error {
	return run(ctx, request, defaultEnvironment())
}

func run(ctx context.Context, request *models.Request, env environment) error {
	manager, cfg, err := loadConfiguration(request, env)
	if err != nil {
		return err
	}

	logger := observability.Configure(env.logOut, cfg.LogLevel, cfg.LogFormat)
	logger.Debug("configuration loaded", "config", manager.Path(), "strategies_dir", cfg.StrategiesDir)

	session := models.NewSession()
	output := orchestrator.NewOutputHandler(env.out)
	store := strategy.NewStore(env.fs, cfg.StrategiesDir)

	opts := []orchestrator.Option{
		orchestrator.WithPromptTemplates(cfg.ReplicatePrompt, cfg.NotePrompt),
		orchestrator.WithClipboard(cfg.CopyNameToClipboard),
	}
	if request.Answer != nil {
		opts = append(opts, orchestrator.WithAnswer(*request.Answer))
	}

	importer := strategy.NewImporter(store, output)

	orch := orchestrator.New(orchestrator.Dependencies{
		Session:   session,
		Surface:   env.newSurface(session),
		Output:    output,
		Store:     store,
		Activator: importer,
		Defaults:  manager,
		Renderer:  template.NewProcessor(),
	}, opts...)

	result := <-orch.CreateNewFromPrevious(ctx, cfg.PreviousStrategy)
	if result.Err != nil {
		return result.Err
	}

	if result.Cancelled {
		logger.Debug("workflow cancelled by user")
	}
	if active := importer.Active(); active != nil {
		logger.Debug("strategy in effect", "file", active.File, "strategy", active.Strategy)
	}
	return nil
}

// ListStrategies prints the strategy files, marking the previous one
func ListStrategies(request *models.Request, w io.Writer) error {
	env := defaultEnvironment()
	env.out = w
	return listStrategies(request, env)
}

func listStrategies(request *models.Request, env environment) error {
	_, cfg, err := loadConfiguration(request, env)
	if err != nil {
		return err
	}

	names, err := strategy.NewStore(env.fs, cfg.StrategiesDir).List()
	if err != nil {
		return fmt.Errorf("failed to list strategies: %w", err)
	}

	fmt.Fprintf(env.out, "Strategies location: %s\n\n", contractPath(cfg.StrategiesDir))

	if len(names) == 0 {
		fmt.Fprintln(env.out, "Strategies: (none found)")
		return nil
	}

	fmt.Fprintln(env.out, "Strategies:")
	for _, name := range names {
		marker := " "
		if name == cfg.PreviousStrategy {
			marker = "*"
		}
		fmt.Fprintf(env.out, "  %s %s\n", marker, name)
	}

	return nil
}

// ImportStrategy activates an existing strategy file and records it as the
// previous strategy
func ImportStrategy(ctx context.Context, request *models.Request, name string) error {
	return importStrategy(ctx, request, name, defaultEnvironment())
}

func importStrategy(ctx context.Context, request *models.Request, name string, env environment) error {
	manager, cfg, err := loadConfiguration(request, env)
	if err != nil {
		return err
	}
	observability.Configure(env.logOut, cfg.LogLevel, cfg.LogFormat)

	name = strings.TrimSpace(name)
	store := strategy.NewStore(env.fs, cfg.StrategiesDir)

	exists, err := store.Exists(name)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("strategy file %s not found in %s", name, contractPath(cfg.StrategiesDir))
	}

	output := orchestrator.NewOutputHandler(env.out)
	if err := strategy.NewImporter(store, output).Import(ctx, name); err != nil {
		return orchestrator.NewActivationError(name, err)
	}

	if err := manager.SavePreviousStrategy(name); err != nil {
		return orchestrator.NewPersistError(name, err)
	}

	return nil
}

// loadConfiguration loads the config file and applies request overrides
func loadConfiguration(request *models.Request, env environment) (*config.Manager, *interfaces.Config, error) {
	manager := config.NewManagerWithFs(env.fs)

	if _, err := manager.Load(request.ConfigPath); err != nil {
		return nil, nil, orchestrator.NewConfigurationError("failed to load configuration", err)
	}

	manager.SetFlag("strategies_dir", request.StrategiesDir)
	manager.SetFlag("previous_strategy", request.Previous)
	manager.SetFlag("log_level", request.LogLevel)
	manager.SetFlag("copy_name_to_clipboard", request.CopyName)

	cfg, err := manager.Resolve()
	if err != nil {
		return nil, nil, orchestrator.NewConfigurationError("failed to resolve configuration", err)
	}

	if err := manager.Validate(cfg); err != nil {
		return nil, nil, orchestrator.NewConfigurationError(err.Error(), err)
	}

	return manager, cfg, nil
}

// contractPath converts a full path back to use ~ for the home directory
func contractPath(path string) string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path // Return original path if we can't get home dir
	}

	// Add trailing slash to home directory for proper matching
	homeDirWithSlash := homeDir + string(filepath.Separator)
	pathWithSlash := path + string(filepath.Separator)

	if strings.HasPrefix(pathWithSlash, homeDirWithSlash) {
		relativePath := path[len(homeDir):]
		if relativePath == "" {
			return "~"
		}
		return "~" + relativePath
	}

	return path
}
