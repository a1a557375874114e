package strategy

import (
	"context"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
	"stratclone-cli/internal/interfaces"
	"stratclone-cli/internal/observability"
	"stratclone-cli/pkg/models"
)

// Importer implements the Activator interface by loading a strategy file
// from the store and making it the active strategy
type Importer struct {
	store    *Store
	notifier interfaces.Notifier

	mu     sync.Mutex
	active *models.ActiveStrategy
}

// NewImporter creates an importer reading from store
func NewImporter(store *Store, notifier interfaces.Notifier) *Importer {
	return &Importer{
		store:    store,
		notifier: notifier,
	}
}

// Import decodes the named strategy file and activates it
func (i *Importer) Import(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := i.store.Read(name)
	if err != nil {
		return err
	}

	var settings map[string]interface{}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	if len(settings) == 0 {
		return fmt.Errorf("strategy file %s is empty", name)
	}

	strategyName, _ := settings["strategy"].(string)
	if strategyName == "" {
		return fmt.Errorf("strategy file %s does not define a strategy", name)
	}

	i.mu.Lock()
	i.active = &models.ActiveStrategy{
		File:     name,
		Strategy: strategyName,
		Settings: settings,
	}
	i.mu.Unlock()

	observability.LoggerFromContext(ctx).Info("strategy activated", "file", name, "strategy", strategyName)
	i.notifier.Notify(fmt.Sprintf("Configuration from %s file is imported.", name))

	return nil
}

// Active returns the strategy currently in effect, or nil
func (i *Importer) Active() *models.ActiveStrategy {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.active
}
