package main

import (
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dshills/easyprint/internal/app"
	"github.com/dshills/easyprint/internal/dispatcher/handlers/document"
	"github.com/dshills/easyprint/internal/dispatcher/handlers/prints"
	"github.com/dshills/easyprint/internal/input"
	"github.com/dshills/easyprint/internal/statement"
)

func newInsertCmd(g *globalFlags) *cobra.Command {
	var text string
	cmd := &cobra.Command{
		Use:   "insert <kind> <file>",
		Short: "Insert a statement for the expression at the cursor",
		Long: `Insert a statement of the given kind below the line holding the cursor.
Run "easyprint kinds" to list the available kinds.`,
		Args: cobra.ExactArgs(2),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return statement.Names(), cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveDefault
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := statement.Lookup(args[0])
			if err != nil {
				return err
			}
			a, err := g.session(cmd, args[1], false)
			if err != nil {
				return err
			}
			defer a.Close()

			result := a.Execute(input.PrintAction(kind.Name), input.ActionArgs{Text: text})
			if result.IsOK() && g.dryRun {
				for _, s := range result.GetDataStrings(prints.DataStatements) {
					fmt.Fprintln(cmd.OutOrStdout(), s)
				}
			}
			return g.finish(cmd, a, result)
		},
	}
	cmd.Flags().StringVarP(&text, "text", "t", "", "Expression to print instead of the resolved one")
	return cmd
}

func newResolveCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <file>",
		Short: "Print the expressions a statement would be built for",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.session(cmd, args[0], true)
			if err != nil {
				return err
			}
			defer a.Close()

			result := a.Execute(input.PrintAction("print"), input.ActionArgs{})
			if result.IsError() {
				return result.Error
			}
			for _, expr := range result.GetDataStrings(prints.DataExpressions) {
				fmt.Fprintln(cmd.OutOrStdout(), expr)
			}
			return nil
		},
	}
}

func newDocumentCmd(g *globalFlags, use, short, action string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <file>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.session(cmd, args[0], false)
			if err != nil {
				return err
			}
			defer a.Close()

			result := a.Execute(action, input.ActionArgs{})
			if result.IsOK() && g.dryRun {
				if lines, ok := result.GetData(document.DataLines); ok {
					printLines(cmd, lines)
				}
			}
			return g.finish(cmd, a, result)
		},
	}
}

func newJumpCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:       "jump <next|previous> <file>",
		Short:     "Print the line of the next or previous inserted statement",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"next", "previous"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var action string
			switch args[0] {
			case "next":
				action = input.ActionJumpNext
			case "previous", "prev":
				action = input.ActionJumpPrevious
			default:
				return fmt.Errorf("unknown direction %q (want next or previous)", args[0])
			}

			a, err := g.session(cmd, args[1], true)
			if err != nil {
				return err
			}
			defer a.Close()

			result := a.Execute(action, input.ActionArgs{})
			if result.IsError() {
				return result.Error
			}
			if !result.IsOK() {
				fmt.Fprintln(cmd.ErrOrStderr(), result.Message)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.GetDataInt(document.DataLine)+1)
			return nil
		},
	}
}

func newScriptCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "script <script.lua> <file>",
		Short: "Run a Lua script against a file",
		Long: `Run a Lua script with the "ep" module preloaded. The script sees the
file as the active document and may insert or edit statements through
ep.prints.run.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.session(cmd, args[1], false)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			if err := a.RunScript(ctx, args[0]); err != nil {
				return err
			}

			doc, err := a.Document()
			if err != nil {
				return err
			}
			if g.write && doc.IsModified() {
				_, err := a.Save()
				return err
			}
			return nil
		},
	}
}

func newConfigCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or change settings",
	}

	load := func() (*app.Application, error) {
		opts, err := g.options(false)
		if err != nil {
			return nil, err
		}
		return g.newApp(opts)
	}

	get := &cobra.Command{
		Use:   "get [key]",
		Short: "Print one setting, or all of them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load()
			if err != nil {
				return err
			}
			defer a.Close()

			cfg := a.Config()
			if len(args) == 1 {
				v, err := cfg.Require(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), v)
				return nil
			}

			settings := cfg.Settings()
			keys := make([]string, 0, len(settings))
			for k := range settings {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, k := range keys {
				from, _ := cfg.Explain(k)
				fmt.Fprintf(w, "%s\t%v\t%s\n", k, settings[k], from)
			}
			return w.Flush()
		},
	}

	set := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Persist a setting in the workspace editor settings",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load()
			if err != nil {
				return err
			}
			defer a.Close()
			return a.Config().Update(args[0], args[1])
		},
	}

	cmd.AddCommand(get, set)
	return cmd
}

func newKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the statement kinds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, k := range statement.Kinds() {
				fmt.Fprintf(w, "%s\t%s\n", k.Name, k.Template)
			}
			return w.Flush()
		},
	}
}

func printLines(cmd *cobra.Command, v any) {
	lines, ok := v.([]uint32)
	if !ok {
		return
	}
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = fmt.Sprint(l + 1)
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.Join(parts, " "))
}
