package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/easyprint/internal/app"
	"github.com/dshills/easyprint/internal/dispatcher"
	"github.com/dshills/easyprint/internal/dispatcher/handler"
	"github.com/dshills/easyprint/internal/input"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	workspace     string
	userConfig    string
	logLevel      string
	jsonLogs      bool
	dryRun        bool
	write         bool
	watch         bool
	metrics       bool
	scriptTimeout time.Duration

	line, col       int
	endLine, endCol int

	// app is the application the last command ran against.
	app *app.Application
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:   "easyprint",
		Short: "Insert and manage Python debug print statements",
		Long: `easyprint inserts print, logging and inspection statements for the
Python expression under a position or inside a selection, and comments,
uncomments, deletes or jumps between the statements it inserted.

Positions are 1-based. Without --write the resulting file is printed to
standard output.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if !g.metrics || g.app == nil {
				return nil
			}
			return writeMetrics(cmd.ErrOrStderr(), g.app.Dispatcher().Metrics())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&g.workspace, "workspace", "w", "", "Workspace root (default: current directory)")
	pf.StringVar(&g.userConfig, "config", "", "User settings file (default: user config dir)")
	pf.StringVar(&g.logLevel, "log-level", "warn", "Log level: debug|info|warn|error")
	pf.BoolVar(&g.jsonLogs, "json", false, "Write logs as JSON")
	pf.BoolVarP(&g.dryRun, "dry-run", "n", false, "Report what would change without editing")
	pf.BoolVar(&g.write, "write", false, "Write the result back to the file")
	pf.BoolVar(&g.watch, "watch", false, "Reload settings when their files change while running")
	pf.BoolVar(&g.metrics, "metrics", false, "Print dispatch metrics to stderr after the command")
	pf.DurationVar(&g.scriptTimeout, "script-timeout", 0, "Lua script timeout (default 5s)")
	pf.IntVarP(&g.line, "line", "l", 1, "Cursor line")
	pf.IntVarP(&g.col, "col", "c", 1, "Cursor column")
	pf.IntVar(&g.endLine, "end-line", 0, "Selection end line (0: no selection)")
	pf.IntVar(&g.endCol, "end-col", 0, "Selection end column")

	root.AddCommand(
		newInsertCmd(g),
		newResolveCmd(g),
		newDocumentCmd(g, "comment", "Comment every inserted statement", input.ActionComment),
		newDocumentCmd(g, "uncomment", "Uncomment every inserted statement", input.ActionUncomment),
		newDocumentCmd(g, "toggle", "Toggle the comment on every inserted statement", input.ActionToggleComment),
		newDocumentCmd(g, "delete", "Delete every inserted statement", input.ActionDelete),
		newDocumentCmd(g, "init-py2", "Add the Python 2 print_function header", input.ActionInitPython2),
		newJumpCmd(g),
		newScriptCmd(g),
		newConfigCmd(g),
		newKindsCmd(),
	)
	return root
}

func (g *globalFlags) options(dryRun bool) (app.Options, error) {
	root := g.workspace
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return app.Options{}, err
		}
		root = wd
	}
	return app.Options{
		WorkspaceRoot: root,
		UserConfig:    g.userConfig,
		LogLevel:      g.logLevel,
		JSONLogs:      g.jsonLogs,
		LogOutput:     os.Stderr,
		ScriptTimeout: g.scriptTimeout,
		DryRun:        dryRun || g.dryRun,
		Watch:         g.watch,
		Metrics:       g.metrics,
	}, nil
}

// session opens file at the selected position.
func (g *globalFlags) session(cmd *cobra.Command, file string, dryRun bool) (*app.Application, error) {
	opts, err := g.options(dryRun)
	if err != nil {
		return nil, err
	}
	opts.ScriptOutput = cmd.OutOrStdout()

	a, err := g.newApp(opts)
	if err != nil {
		return nil, err
	}
	doc, err := a.Open(file)
	if err != nil {
		a.Close()
		return nil, err
	}
	if err := doc.Select(g.line, g.col, g.endLine, g.endCol); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (g *globalFlags) newApp(opts app.Options) (*app.Application, error) {
	a, err := app.New(opts)
	if err != nil {
		return nil, err
	}
	g.app = a
	return a, nil
}

// finish reports result and emits the document.
func (g *globalFlags) finish(cmd *cobra.Command, a *app.Application, result handler.Result) error {
	if result.IsError() {
		return result.Error
	}
	if result.Message != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), result.Message)
	}
	if result.Status != handler.StatusOK || g.dryRun {
		return nil
	}
	return g.emit(cmd, a)
}

func (g *globalFlags) emit(cmd *cobra.Command, a *app.Application) error {
	if g.write {
		_, err := a.Save()
		return err
	}
	doc, err := a.Document()
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), doc.Buffer.Text())
	return err
}

func writeMetrics(w io.Writer, m *dispatcher.Metrics) error {
	if m == nil {
		return nil
	}
	snap := m.Snapshot()
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "dispatches\t%d\n", snap.TotalDispatches)
	fmt.Fprintf(tw, "errors\t%d\n", snap.TotalErrors)
	fmt.Fprintf(tw, "average\t%s\n", snap.AverageDuration)
	for _, am := range m.TopActions(snap.ActionCount) {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", am.Name, am.DispatchCount, am.LastStatus, am.MaxDuration)
	}
	return tw.Flush()
}
