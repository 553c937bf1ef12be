package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/cellscript/cellscript/cells"
)

func newFunctionsCommand() *cobra.Command {
	var pick bool

	cmd := &cobra.Command{
		Use:   "functions",
		Short: "List the built-in formula functions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fns := cells.MustNewEngine(cells.Config{Grid: emptyGrid{}}).Functions()
			if pick {
				return pickFunction(cmd.OutOrStdout(), fns)
			}
			printFunctions(cmd.OutOrStdout(), fns)
			return nil
		},
	}

	cmd.Flags().BoolVar(&pick, "pick", false, "choose a function interactively and print its name")
	return cmd
}

// emptyGrid satisfies the engine's grid requirement for commands that
// never evaluate cell references.
type emptyGrid struct{}

func (emptyGrid) RawContent(cells.Address) string { return "" }

func printFunctions(w io.Writer, fns []cells.Function) {
	for _, fn := range fns {
		fmt.Fprintf(w, "%-12s %-6s %s\n", fn.Name, arityLabel(fn), fn.Summary)
	}
}

func arityLabel(fn cells.Function) string {
	switch {
	case fn.MaxArgs < 0:
		return fmt.Sprintf("%d..n", fn.MinArgs)
	case fn.MinArgs == fn.MaxArgs:
		return strconv.Itoa(fn.MinArgs)
	default:
		return fmt.Sprintf("%d..%d", fn.MinArgs, fn.MaxArgs)
	}
}

func pickFunction(w io.Writer, fns []cells.Function) error {
	idx, err := fuzzyfinder.Find(
		fns,
		func(i int) string { return fns[i].Name },
		fuzzyfinder.WithPromptString("function> "),
		fuzzyfinder.WithPreviewWindow(func(i, width, height int) string {
			if i < 0 {
				return ""
			}
			return fmt.Sprintf("%s (%s args)\n\n%s", fns[i].Name, arityLabel(fns[i]), fns[i].Summary)
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil
		}
		return err
	}
	fmt.Fprintln(w, fns[idx].Name)
	return nil
}
