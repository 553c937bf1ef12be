package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cellscript/cellscript/cells"
	"github.com/cellscript/cellscript/sheet"
)

func newEvalCommand() *cobra.Command {
	var (
		raw      bool
		formula  string
		encoding string
	)

	cmd := &cobra.Command{
		Use:   "eval <sheet> [ref ...]",
		Short: "Evaluate cells from a sheet file",
		Long: `Evaluate cells from a sheet file (.yaml, .yml or .csv).

Named references are evaluated in the order given; without references
every set cell is evaluated in row-major order. Each line is the
reference and the cell's display value, tab separated.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd.OutOrStdout(), args[0], args[1:], raw, formula, encoding)
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print raw cell content instead of values")
	cmd.Flags().StringVar(&formula, "formula", "", "evaluate one formula against the sheet and print its value")
	cmd.Flags().StringVar(&encoding, "encoding", "", "decode legacy input (latin1, windows-1252)")
	return cmd
}

func runEval(w io.Writer, path string, refs []string, raw bool, formula, encoding string) error {
	s, err := openSheet(path, encoding)
	if err != nil {
		return err
	}
	engine := cells.MustNewEngine(cells.Config{Grid: s})

	if formula != "" {
		fmt.Fprintln(w, engine.EvaluateContent(formula).Display())
		return nil
	}

	addrs, err := resolveRefs(s, refs)
	if err != nil {
		return err
	}
	for _, addr := range addrs {
		if raw {
			fmt.Fprintf(w, "%s\t%s\n", addr, s.RawContent(addr))
			continue
		}
		fmt.Fprintf(w, "%s\t%s\n", addr, engine.Evaluate(addr).Display())
	}
	return nil
}

func resolveRefs(s *sheet.Sheet, refs []string) ([]cells.Address, error) {
	if len(refs) == 0 {
		return s.Addresses(), nil
	}
	out := make([]cells.Address, 0, len(refs))
	for _, ref := range refs {
		addr, err := cells.ParseAddress(ref)
		if err != nil {
			return nil, err
		}
		out = append(out, addr)
	}
	return out, nil
}
