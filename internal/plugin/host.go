package plugin

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dshills/easyprint/internal/dispatcher"
	"github.com/dshills/easyprint/internal/logging"
	"github.com/dshills/easyprint/internal/plugin/api"
	plua "github.com/dshills/easyprint/internal/plugin/lua"
)

// Host runs scripts with the ep module available.
type Host struct {
	state *plua.State
	log   *logging.Logger
}

type hostOptions struct {
	settings api.Setter
	logger   *logging.Logger
	output   io.Writer
	timeout  time.Duration
}

// HostOption configures a Host.
type HostOption func(*hostOptions)

// WithSettings lets scripts override settings through ep.config.set.
func WithSettings(s api.Setter) HostOption {
	return func(o *hostOptions) {
		o.settings = s
	}
}

// WithLogger sets the logger for ep.log and script failures.
func WithLogger(l *logging.Logger) HostOption {
	return func(o *hostOptions) {
		o.logger = l
	}
}

// WithOutput redirects the script's print function.
func WithOutput(w io.Writer) HostOption {
	return func(o *hostOptions) {
		o.output = w
	}
}

// WithTimeout bounds each script execution.
func WithTimeout(d time.Duration) HostOption {
	return func(o *hostOptions) {
		o.timeout = d
	}
}

// NewHost creates a host whose scripts act through d.
func NewHost(d *dispatcher.Dispatcher, opts ...HostOption) (*Host, error) {
	o := hostOptions{
		logger:  logging.NullLogger,
		timeout: plua.DefaultTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}

	registry, err := api.DefaultRegistry(&api.Context{
		Dispatcher: d,
		Settings:   o.settings,
		Logger:     o.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build script api: %w", err)
	}

	stateOpts := []plua.StateOption{plua.WithTimeout(o.timeout)}
	if o.output != nil {
		stateOpts = append(stateOpts, plua.WithOutput(o.output))
	}
	state := plua.NewState(stateOpts...)
	state.Preload(api.ModuleName, registry.Loader())

	return &Host{
		state: state,
		log:   o.logger.WithComponent("plugin"),
	}, nil
}

// Run executes Lua source.
func (h *Host) Run(ctx context.Context, code string) error {
	if err := h.state.DoString(ctx, code); err != nil {
		h.log.Warn("script failed: %v", err)
		return err
	}
	return nil
}

// RunFile executes the Lua file at path.
func (h *Host) RunFile(ctx context.Context, path string) error {
	h.log.Debug("running %s", path)
	if err := h.state.DoFile(ctx, path); err != nil {
		h.log.Warn("script failed: %v", err)
		return err
	}
	return nil
}

// Close releases the Lua state.
func (h *Host) Close() error {
	return h.state.Close()
}
