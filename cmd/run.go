/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// run.go implements the "writerd run" command: one-shot dispatch of a
// single tool action from the command line.
//
// Design: run exists for scripting and debugging - the same dispatch
// path the MCP server uses, without a client. Parameters are key=value
// pairs; values parse as JSON scalars first (numbers, booleans) and
// fall back to strings, matching how they would arrive over MCP.

package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jpl-au/writerd/internal/action"
	"github.com/jpl-au/writerd/internal/diff"
	"github.com/jpl-au/writerd/internal/editor"
	"github.com/spf13/cobra"
)

var (
	runWrite bool
	runDiff  bool
)

var runCmd = &cobra.Command{
	Use:   "run <tool> <action> [key=value ...]",
	Short: "Run a single tool action",
	Long: `Run a single tool action and print the result envelope as JSON.

  writerd run document status
  writerd run --file draft.txt structure outline
  writerd run --file draft.txt search replace_all old=teh new=the --write

Numbers and booleans in key=value pairs are parsed as such; quote
values that should stay strings (e.g. text='123').`,
	Args: cobra.MinimumNArgs(2),
	RunE: runRun,
}

func runRun(c *cobra.Command, args []string) error {
	tool, act := args[0], args[1]

	params, err := parseParams(args[2:])
	if err != nil {
		return err
	}

	desk := editor.NewDesktop()
	if path := File(); path != "" {
		if _, err := desk.Open(path); err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
	}

	r := action.New(desk, loadedConfig())
	if a := Author(); a != "" {
		r.SetAuthor(a)
	}

	before := visibleText(desk)
	res := r.Dispatch(tool, act, params)

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	fmt.Fprintln(Out(), string(data))

	if ok, _ := res["success"].(bool); !ok {
		c.SilenceUsage = true
		c.SilenceErrors = true
		return fmt.Errorf("%s %s failed", tool, act)
	}

	if runDiff {
		if after := visibleText(desk); after != before {
			d := diff.Compute(before, after, "before", "after")
			fmt.Fprint(Out(), d.Format(true))
		}
	}

	if runWrite {
		if doc, err := desk.Current(); err == nil && doc.Location() != "" {
			if err := doc.Save(""); err != nil {
				return fmt.Errorf("save %s: %w", doc.Location(), err)
			}
		}
	}
	return nil
}

// visibleText returns the current document's visible text, or "" when no
// writer document is open.
func visibleText(desk *editor.Desktop) string {
	doc, err := desk.Current()
	if err != nil || doc.Type() != editor.Writer {
		return ""
	}
	return doc.VisibleText()
}

// parseParams converts key=value arguments into dispatch parameters.
func parseParams(args []string) (action.Params, error) {
	p := make(action.Params, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q (expected key=value)", arg)
		}
		p[key] = parseValue(value)
	}
	return p, nil
}

// parseValue interprets a parameter value the way JSON decoding would:
// numbers become float64, true/false become bool, everything else stays
// a string.
func parseValue(s string) any {
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}

func init() {
	runCmd.Flags().BoolVar(&runWrite, "write", false, "Save the document after a successful action")
	runCmd.Flags().BoolVar(&runDiff, "diff", false, "Show a coloured diff of the change the action made")
	rootCmd.AddCommand(runCmd)
}
