package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sync"

	"github.com/dshills/easyprint/internal/config/layer"
	"github.com/dshills/easyprint/internal/config/loader"
	"github.com/dshills/easyprint/internal/config/registry"
	"github.com/dshills/easyprint/internal/config/watcher"
	"github.com/dshills/easyprint/internal/logging"
)

// Workspace relative file names.
const (
	WorkspaceFile = ".easyprint.yaml"
	EditorFile    = ".vscode/settings.json"
	DotEnvFile    = ".env"
	EnvPrefix     = "EASYPRINT_"
)

// Config provides layered access to easyprint settings. It implements
// Source and is safe for concurrent use.
type Config struct {
	mu sync.Mutex

	registry *registry.Registry
	layers   *layer.Manager
	logger   *logging.Logger

	workspaceRoot string
	userFile      string
	environ       []string
	useEnv        bool
	fs            loader.WritableFS

	watcher   *watcher.Watcher
	observers []func(changed []string)
}

// Option configures a Config instance.
type Option func(*Config)

// WithWorkspaceRoot sets the directory holding workspace settings files.
func WithWorkspaceRoot(dir string) Option {
	return func(c *Config) {
		c.workspaceRoot = dir
	}
}

// WithUserFile sets the user TOML file. An empty path disables the layer.
func WithUserFile(path string) Option {
	return func(c *Config) {
		c.userFile = path
	}
}

// WithEnviron replaces the process environment for the env layer.
func WithEnviron(env []string) Option {
	return func(c *Config) {
		c.environ = env
	}
}

// WithoutEnv disables the environment layer.
func WithoutEnv() Option {
	return func(c *Config) {
		c.useEnv = false
	}
}

// WithFileSystem sets the file system used by loaders.
func WithFileSystem(fs loader.WritableFS) Option {
	return func(c *Config) {
		c.fs = fs
	}
}

// WithLogger sets the logger used for fallbacks and reload errors.
func WithLogger(l *logging.Logger) Option {
	return func(c *Config) {
		c.logger = l
	}
}

// New creates a Config holding only the registered defaults and an empty
// session layer. Call Reload to read files and the environment.
func New(opts ...Option) *Config {
	c := &Config{
		registry: registry.New(),
		layers:   layer.NewManager(),
		userFile: DefaultUserFile(),
		useEnv:   true,
		fs:       loader.DefaultFS(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.GetLogger()
	}
	c.logger = c.logger.WithComponent("config")

	RegisterSettings(c.registry)

	defaults := layer.NewLayerWithData(layer.SourceBuiltin, c.registry.Defaults())
	defaults.ReadOnly = true
	c.layers.AddLayer(defaults)
	c.layers.AddLayer(layer.NewLayer(layer.SourceSession))
	return c
}

// Load creates a Config and reads every configured source.
func Load(opts ...Option) (*Config, error) {
	c := New(opts...)
	if err := c.Reload(); err != nil {
		return c, err
	}
	return c, nil
}

// DefaultUserFile returns $XDG_CONFIG_HOME/easyprint/config.toml, or ""
// when no configuration directory is known.
func DefaultUserFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "easyprint", "config.toml")
}

// WorkspaceRoot returns the configured workspace root.
func (c *Config) WorkspaceRoot() string {
	return c.workspaceRoot
}

// Registry returns the settings registry.
func (c *Config) Registry() *registry.Registry {
	return c.registry
}

func (c *Config) loaders() map[layer.Source]loader.Loader {
	ls := make(map[layer.Source]loader.Loader)
	if c.userFile != "" {
		ls[layer.SourceUser] = loader.NewTOMLLoaderWithFS(c.fs, c.userFile)
	}
	if c.workspaceRoot != "" {
		ls[layer.SourceWorkspace] = loader.NewYAMLLoaderWithFS(c.fs, filepath.Join(c.workspaceRoot, WorkspaceFile))
		ls[layer.SourceEditor] = c.editorLoader()
	}
	if c.useEnv {
		env := loader.NewEnvLoader(EnvPrefix)
		if c.environ != nil {
			env.WithEnviron(c.environ)
		}
		if c.workspaceRoot != "" {
			env.WithDotEnv(c.fs, filepath.Join(c.workspaceRoot, DotEnvFile))
		}
		ls[layer.SourceEnv] = env
	}
	return ls
}

func (c *Config) editorLoader() *loader.SettingsLoader {
	return loader.NewSettingsLoaderWithFS(c.fs, filepath.Join(c.workspaceRoot, filepath.FromSlash(EditorFile)), Namespace)
}

// Reload rereads every file and environment layer. A source that fails
// keeps its previous layer; the errors are joined and returned after the
// other sources have been applied.
func (c *Config) Reload() error {
	c.mu.Lock()

	before := c.layers.Merge()
	var errs []error
	for source, l := range c.loaders() {
		data, err := l.Load()
		if err != nil {
			errs = append(errs, fmt.Errorf("loading %s settings: %w", source, err))
			continue
		}
		ly := layer.NewLayerWithData(source, data)
		if fl, ok := l.(interface{ Path() string }); ok {
			ly.Path = fl.Path()
		}
		c.layers.AddLayer(ly)
	}
	changed := layer.ChangedPaths(before, c.layers.Merge())
	observers := append([]func([]string){}, c.observers...)
	c.mu.Unlock()

	if len(changed) > 0 {
		c.logger.Debug("reloaded, %d settings changed", len(changed))
		for _, fn := range observers {
			fn(changed)
		}
	}
	return errors.Join(errs...)
}

// Require returns the effective value for path converted to the setting's
// type. It fails with a *MissingError when no layer holds path.
func (c *Config) Require(path string) (any, error) {
	v, _, ok := c.layers.Get(path)
	if !ok {
		return nil, &MissingError{Path: path}
	}
	if s := c.registry.Get(path); s != nil {
		coerced, err := s.Coerce(v)
		if err != nil {
			return nil, &TypeError{Path: path, Expected: s.Type.String(), Actual: typeName(v)}
		}
		return coerced, nil
	}
	return v, nil
}

// GetOrDefault returns the value for path, or def with a logged warning
// when it is missing or has the wrong type.
func (c *Config) GetOrDefault(path string, def any) any {
	v, err := c.Require(path)
	if err != nil {
		c.logger.Warn("%v, using default %v", err, def)
		return def
	}
	return v
}

// Explain returns the name of the layer that supplies path.
func (c *Config) Explain(path string) (string, bool) {
	_, from, ok := c.layers.Get(path)
	return from, ok
}

// Set stores a runtime override in the session layer.
func (c *Config) Set(path string, value any) error {
	v, err := c.validate(path, value)
	if err != nil {
		return err
	}

	c.mu.Lock()
	before, _, _ := c.layers.Get(path)
	if err := c.layers.Set(layer.SourceSession.String(), path, v); err != nil {
		c.mu.Unlock()
		return err
	}
	observers := append([]func([]string){}, c.observers...)
	c.mu.Unlock()

	if !reflect.DeepEqual(before, v) {
		for _, fn := range observers {
			fn([]string{path})
		}
	}
	return nil
}

// Reset removes a runtime override.
func (c *Config) Reset(path string) error {
	return c.layers.Delete(layer.SourceSession.String(), path)
}

// Update persists path = value into the workspace editor settings file and
// reloads it.
func (c *Config) Update(path string, value any) error {
	if c.workspaceRoot == "" {
		return ErrNoWorkspace
	}
	v, err := c.validate(path, value)
	if err != nil {
		return err
	}
	if err := c.editorLoader().Save(c.fs, path, v); err != nil {
		return fmt.Errorf("updating %s: %w", path, err)
	}
	return c.Reload()
}

func (c *Config) validate(path string, value any) (any, error) {
	s := c.registry.Get(path)
	if s == nil {
		return nil, &UnknownSettingError{Path: path, Suggestions: c.registry.Suggest(path, 3)}
	}
	v, err := s.Coerce(value)
	if err != nil {
		return nil, &TypeError{Path: path, Expected: s.Type.String(), Actual: typeName(value)}
	}
	if err := s.Validate(v); err != nil {
		return nil, fmt.Errorf("setting %s: %w", path, err)
	}
	return v, nil
}

// Settings returns every registered setting with its effective value.
func (c *Config) Settings() map[string]any {
	out := make(map[string]any)
	for _, s := range c.registry.All() {
		if v, err := c.Require(s.Path); err == nil {
			out[s.Path] = v
		}
	}
	return out
}

// OnChange registers fn to be called with the changed paths after a
// reload or Set.
func (c *Config) OnChange(fn func(changed []string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}

// Watch reloads configuration whenever one of the settings files changes.
// Files whose directory does not exist are skipped.
func (c *Config) Watch() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.watcher != nil {
		return nil
	}
	w, err := watcher.New(watcher.WithErrorHandler(func(err error) {
		c.logger.Warn("watch error: %v", err)
	}))
	if err != nil {
		return err
	}

	for _, path := range c.files() {
		if err := w.Watch(path); err != nil && !errors.Is(err, watcher.ErrNoDirectory) {
			_ = w.Close()
			return err
		}
	}
	w.OnChange(func(ev watcher.Event) {
		c.logger.Debug("%s %s", ev.Op, ev.Path)
		if err := c.Reload(); err != nil {
			c.logger.Error("reload after %s: %v", ev.Path, err)
		}
	})
	w.Start()
	c.watcher = w
	return nil
}

// files lists the settings files this Config reads.
func (c *Config) files() []string {
	var files []string
	if c.userFile != "" {
		files = append(files, c.userFile)
	}
	if c.workspaceRoot != "" {
		files = append(files,
			filepath.Join(c.workspaceRoot, WorkspaceFile),
			filepath.Join(c.workspaceRoot, filepath.FromSlash(EditorFile)),
			filepath.Join(c.workspaceRoot, DotEnvFile),
		)
	}
	return files
}

// Close stops watching files.
func (c *Config) Close() error {
	c.mu.Lock()
	w := c.watcher
	c.watcher = nil
	c.mu.Unlock()

	if w == nil {
		return nil
	}
	return w.Close()
}
