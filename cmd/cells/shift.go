package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cellscript/cellscript/cells"
)

func newShiftCommand() *cobra.Command {
	var rows, cols int

	cmd := &cobra.Command{
		Use:   "shift <formula>",
		Short: "Rewrite a formula's relative references",
		Long: `Rewrite a formula as if it were copied to a cell a number of rows
and columns away. Relative references move; "$" pinned axes stay put.
Text that is not a formula comes back unchanged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := cells.ShiftReferences(args[0], rows, cols)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 0, "rows to move by (negative moves up)")
	cmd.Flags().IntVar(&cols, "cols", 0, "columns to move by (negative moves left)")
	return cmd
}
