// Package app wires configuration, logging, the dispatcher and the script
// host into one application, and tracks the active document.
package app

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/dshills/easyprint/internal/config"
	"github.com/dshills/easyprint/internal/dispatcher"
	"github.com/dshills/easyprint/internal/dispatcher/handler"
	"github.com/dshills/easyprint/internal/dispatcher/handlers/document"
	"github.com/dshills/easyprint/internal/dispatcher/handlers/prints"
	"github.com/dshills/easyprint/internal/input"
	"github.com/dshills/easyprint/internal/logging"
	"github.com/dshills/easyprint/internal/plugin"
	"github.com/dshills/easyprint/internal/plugin/api"
)

// Options configures the application.
type Options struct {
	// WorkspaceRoot is the project directory. It anchors %w and the
	// workspace settings files.
	WorkspaceRoot string

	// UserConfig overrides the user TOML file. Empty uses the default.
	UserConfig string

	// LogLevel sets the logging verbosity.
	LogLevel string

	// JSONLogs writes logs as JSON lines.
	JSONLogs bool

	// LogOutput receives log records. Nil means stderr.
	LogOutput io.Writer

	// ScriptOutput receives print output from scripts. Nil means stdout.
	ScriptOutput io.Writer

	// ScriptTimeout bounds each script run. Zero uses the default.
	ScriptTimeout time.Duration

	// Watch reloads configuration when settings files change.
	Watch bool

	// DryRun reports edits without applying them.
	DryRun bool

	// Metrics records dispatch statistics.
	Metrics bool

	// Clock overrides the time used for %t.
	Clock func() time.Time
}

// Application owns every long-lived component.
type Application struct {
	mu sync.RWMutex

	opts       Options
	logger     *logging.Logger
	config     *config.Config
	dispatcher *dispatcher.Dispatcher
	scripts    *plugin.Loader
	host       *plugin.Host
	doc        *Document
}

// New creates an application. Broken settings files are logged and
// skipped so a bad file never blocks a command.
func New(opts Options) (*Application, error) {
	a := &Application{opts: opts}

	a.initLogger()
	a.initConfig()
	a.initDispatcher()
	if err := a.initScripts(); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *Application) initLogger() {
	cfg := logging.DefaultLoggerConfig()
	cfg.Level = logging.ParseLogLevel(a.opts.LogLevel)
	cfg.JSON = a.opts.JSONLogs
	if a.opts.LogOutput != nil {
		cfg.Output = a.opts.LogOutput
	}
	a.logger = logging.NewLogger(cfg)
	logging.SetLogger(a.logger)
}

func (a *Application) initConfig() {
	opts := []config.Option{
		config.WithWorkspaceRoot(a.opts.WorkspaceRoot),
		config.WithLogger(a.logger),
	}
	if a.opts.UserConfig != "" {
		opts = append(opts, config.WithUserFile(a.opts.UserConfig))
	}

	cfg, err := config.Load(opts...)
	if err != nil {
		a.logger.Warn("configuration: %v", err)
	}
	a.config = cfg

	if a.opts.Watch {
		if err := cfg.Watch(); err != nil {
			a.logger.Warn("watch configuration: %v", err)
		}
	}
}

func (a *Application) initDispatcher() {
	dc := dispatcher.DefaultConfig()
	dc.EnableMetrics = a.opts.Metrics
	d := dispatcher.New(dc)

	d.SetLogger(a.logger)
	d.SetConfig(a.config)
	if a.opts.Clock != nil {
		d.SetClock(a.opts.Clock)
	}
	d.RegisterNamespace(input.Namespace, handler.NewGroup(input.Namespace,
		prints.NewHandler(),
		document.NewHandler(),
	))
	hook := dispatcher.NewLoggingHook(a.logger)
	d.RegisterPreHook(hook)
	d.RegisterPostHook(hook)
	if a.opts.DryRun {
		d.RegisterPreHook(&dispatcher.ReadOnlyHook{})
	}
	a.dispatcher = d
}

func (a *Application) initScripts() error {
	opts := []plugin.HostOption{
		plugin.WithSettings(a.config),
		plugin.WithLogger(a.logger),
	}
	if a.opts.ScriptOutput != nil {
		opts = append(opts, plugin.WithOutput(a.opts.ScriptOutput))
	}
	if a.opts.ScriptTimeout > 0 {
		opts = append(opts, plugin.WithTimeout(a.opts.ScriptTimeout))
	}
	host, err := plugin.NewHost(a.dispatcher, opts...)
	if err != nil {
		return &InitError{Component: "scripts", Err: err}
	}
	a.host = host

	a.scripts = plugin.NewLoader(a.opts.WorkspaceRoot)
	found, err := a.scripts.Discover()
	if err != nil {
		a.logger.Warn("scripts: %v", err)
	}
	a.dispatcher.RegisterNamespace(api.ScriptNamespace, plugin.NewHandler(host))
	for _, name := range plugin.RegisterScripts(a.dispatcher, host, found) {
		a.logger.Debug("script action %s", name)
	}
	return nil
}

// Config returns the layered configuration.
func (a *Application) Config() *config.Config {
	return a.config
}

// Dispatcher returns the action dispatcher.
func (a *Application) Dispatcher() *dispatcher.Dispatcher {
	return a.dispatcher
}

// Logger returns the application logger.
func (a *Application) Logger() *logging.Logger {
	return a.logger
}

// Open reads path and makes it the active document.
func (a *Application) Open(path string) (*Document, error) {
	doc, err := OpenDocument(path)
	if err != nil {
		return nil, err
	}
	a.SetDocument(doc)
	return doc, nil
}

// SetDocument makes doc the active document.
func (a *Application) SetDocument(doc *Document) {
	a.mu.Lock()
	a.doc = doc
	a.mu.Unlock()

	a.dispatcher.SetBuffer(doc.Buffer)
	a.dispatcher.SetCursors(doc.Cursors)
	a.dispatcher.SetFile(doc.Path, a.opts.WorkspaceRoot)
}

// Document returns the active document.
func (a *Application) Document() (*Document, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.doc == nil {
		return nil, ErrNoActiveDocument
	}
	return a.doc, nil
}

// Execute dispatches an action from the command line.
func (a *Application) Execute(name string, args input.ActionArgs) handler.Result {
	return a.dispatcher.Dispatch(input.Action{
		Name:   name,
		Args:   args,
		Source: input.SourceCLI,
	})
}

// RunScript runs a Lua file against the active document.
func (a *Application) RunScript(ctx context.Context, path string) error {
	return a.host.RunFile(ctx, path)
}

// Save writes the active document when it changed.
func (a *Application) Save() (bool, error) {
	doc, err := a.Document()
	if err != nil {
		return false, err
	}
	if !doc.IsModified() {
		return false, nil
	}
	if err := doc.Save(); err != nil {
		return false, err
	}
	a.logger.Debug("saved %s", doc.Path)
	return true, nil
}

// Close stops the script host and the configuration watcher.
func (a *Application) Close() error {
	var first error
	if a.host != nil {
		if err := a.host.Close(); err != nil {
			first = err
		}
	}
	if a.config != nil {
		if err := a.config.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
