package plugin

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Script is a discovered Lua file.
type Script struct {
	Name string
	Path string
}

// Loader discovers scripts from the filesystem.
type Loader struct {
	paths      []string
	discovered map[string]Script
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithPaths sets the script search paths.
func WithPaths(paths ...string) LoaderOption {
	return func(l *Loader) {
		l.paths = paths
	}
}

// NewLoader creates a loader. Without WithPaths it searches
// DefaultScriptPaths for workspaceRoot.
func NewLoader(workspaceRoot string, opts ...LoaderOption) *Loader {
	l := &Loader{
		paths:      DefaultScriptPaths(workspaceRoot),
		discovered: make(map[string]Script),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// DefaultScriptPaths returns the workspace script directory followed by
// the user's.
func DefaultScriptPaths(workspaceRoot string) []string {
	var paths []string
	if workspaceRoot != "" {
		paths = append(paths, filepath.Join(workspaceRoot, ".easyprint", "scripts"))
	}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "easyprint", "scripts"))
	}
	return paths
}

// Paths returns the configured search paths.
func (l *Loader) Paths() []string {
	return l.paths
}

// Discover finds every *.lua file in the search paths, sorted by name.
// When two paths hold the same name the earlier path wins.
func (l *Loader) Discover() ([]Script, error) {
	l.discovered = make(map[string]Script)
	for _, base := range l.paths {
		if err := l.discoverInPath(base); err != nil {
			return nil, fmt.Errorf("discover scripts in %s: %w", base, err)
		}
	}

	scripts := make([]Script, 0, len(l.discovered))
	for _, s := range l.discovered {
		scripts = append(scripts, s)
	}
	sort.Slice(scripts, func(i, j int) bool {
		return scripts[i].Name < scripts[j].Name
	})
	return scripts, nil
}

func (l *Loader) discoverInPath(base string) error {
	entries, err := os.ReadDir(base)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".lua")
		if _, exists := l.discovered[name]; exists {
			continue
		}
		l.discovered[name] = Script{Name: name, Path: filepath.Join(base, entry.Name())}
	}
	return nil
}

// Find returns a script from the last Discover.
func (l *Loader) Find(name string) (Script, error) {
	s, ok := l.discovered[name]
	if !ok {
		return Script{}, fmt.Errorf("%w: %s", ErrScriptNotFound, name)
	}
	return s, nil
}
