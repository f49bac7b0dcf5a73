// Package native loads the window-control shared library and resolves its
// optional function table.
package native

import (
	"errors"
	"fmt"
	"os"

	"github.com/bnema/uniwin/internal/logger"
)

// Binder owns the loaded library handle and the table resolved from it.
type Binder struct {
	open func(path string) (Library, error)

	lib   Library
	path  string
	table *Table
	caps  Capabilities
}

// NewBinder creates a binder using the platform loader.
func NewBinder() *Binder {
	return &Binder{open: openLibrary}
}

// NewBinderWithOpener creates a binder with a custom library opener.
func NewBinderWithOpener(open func(path string) (Library, error)) *Binder {
	return &Binder{open: open}
}

// Load opens the library at primaryPath, or fallbackPath when the primary
// artifact is absent or unusable, and resolves the function table. Missing
// optional symbols leave their slot nil; a missing required symbol fails the
// whole load and closes the library again.
func (b *Binder) Load(primaryPath, fallbackPath string) (*Table, Capabilities, error) {
	if b.lib != nil {
		return b.table, b.caps, nil
	}

	lib, path, err := b.openFirst(primaryPath, fallbackPath)
	if err != nil {
		return nil, Capabilities{}, err
	}

	table, caps, err := resolve(lib)
	if err != nil {
		if cerr := lib.Close(); cerr != nil {
			logger.Warn("Closing library after failed resolve", "path", path, "error", cerr)
		}
		return nil, Capabilities{}, fmt.Errorf("%w: %s: %w", ErrLoadFailure, path, err)
	}

	b.lib = lib
	b.path = path
	b.table = table
	b.caps = caps

	logReport(path, caps)
	return table, caps, nil
}

func (b *Binder) openFirst(paths ...string) (Library, string, error) {
	var errs []error
	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			logger.Debug("Native library not found", "path", path)
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}

		logger.Debug("Loading native library", "path", path)
		lib, err := b.open(path)
		if err != nil {
			logger.Warn("Native library failed to open", "path", path, "error", err)
			errs = append(errs, err)
			continue
		}
		return lib, path, nil
	}

	if len(errs) == 0 {
		return nil, "", fmt.Errorf("%w: no library path configured", ErrLoadFailure)
	}
	return nil, "", fmt.Errorf("%w: %w", ErrLoadFailure, errors.Join(errs...))
}

func resolve(lib Library) (*Table, Capabilities, error) {
	table := &Table{}
	resolved := make(map[string]bool, len(symbols))

	var missingCore []string
	for _, s := range symbols {
		if reason, ok := unsupportedSymbols[s.name]; ok {
			logger.Debug("Native symbol unsupported on this platform", "symbol", s.name, "reason", reason)
			continue
		}
		addr, err := lib.Lookup(s.name)
		if err != nil || addr == 0 {
			if s.required {
				missingCore = append(missingCore, s.name)
			} else {
				logger.Debug("Optional native symbol missing", "symbol", s.name, "group", s.group)
			}
			continue
		}
		s.bind(table, addr)
		resolved[s.name] = true
	}

	if len(missingCore) > 0 {
		return nil, Capabilities{}, fmt.Errorf("%w: %v", ErrRequiredSymbol, missingCore)
	}
	return table, newCapabilities(resolved), nil
}

func logReport(path string, caps Capabilities) {
	logger.Info("Native library loaded", "path", path)
	for _, g := range caps.Groups() {
		if g.Complete() {
			logger.Debug("Capability group", "group", g.Name, "status", "ok")
			continue
		}
		logger.Debug("Capability group", "group", g.Name, "status", "partial", "missing", g.Missing)
	}
}

// Loaded reports whether a library is currently bound.
func (b *Binder) Loaded() bool {
	return b.lib != nil
}

// Path returns the path of the loaded library, or "" when unloaded.
func (b *Binder) Path() string {
	return b.path
}

// Table returns the resolved table, or nil when unloaded.
func (b *Binder) Table() *Table {
	return b.table
}

// Capabilities returns the load-time capability report.
func (b *Binder) Capabilities() Capabilities {
	return b.caps
}

// Unload closes the library. It is safe to call on a binder that was never
// loaded or is already unloaded.
func (b *Binder) Unload() error {
	if b.lib == nil {
		return nil
	}

	err := b.lib.Close()
	b.lib = nil
	b.path = ""
	b.table = nil
	b.caps = Capabilities{}

	if err != nil {
		return fmt.Errorf("unloading native library: %w", err)
	}
	logger.Debug("Native library unloaded")
	return nil
}
