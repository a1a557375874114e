package interfaces

import "context"

// StrategyStore gives access to the directory of strategy config files
type StrategyStore interface {
	// Exists reports whether a file with this name is present
	Exists(name string) (bool, error)

	// Copy duplicates src into a new file dst, byte for byte
	Copy(src, dst string) error

	// List returns the strategy file names in the directory
	List() ([]string, error)
}

// Activator makes a strategy file the configuration currently in effect
type Activator interface {
	Import(ctx context.Context, name string) error
}
